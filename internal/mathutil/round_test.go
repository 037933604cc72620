package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLrint_TiesToEven(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{3.5, 4},
		{-0.5, 0},
		{-1.5, -2},
		{41.9, 42},
		{42.0, 42},
		{42.49, 42},
		{7.5, 8},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Lrint(tc.in), "Lrint(%v)", tc.in)
	}
}

func TestClamp(t *testing.T) {
	assert.InDelta(t, 0.0, Clamp(-1, 0, 1), 0)
	assert.InDelta(t, 1.0, Clamp(2, 0, 1), 0)
	assert.InDelta(t, 0.25, Clamp(0.25, 0, 1), 0)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.True(t, IsFinite(-1e300))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}

// TestRamp_MatchesRunningSum verifies the ramp accumulates exactly like a
// hand-written running sum, which downstream bit-exactness depends on.
func TestRamp_MatchesRunningSum(t *testing.T) {
	const steps = 5
	start, target := 50.0, 57.3

	r := NewRamp(start, target, steps)
	delta := (target - start) / steps
	want := start
	for range steps {
		want += delta
		assert.Equal(t, math.Float64bits(want), math.Float64bits(r.Next()))
	}
	assert.InDelta(t, target, r.Value, 1e-12)
}

func TestRamp_Flat(t *testing.T) {
	r := NewRamp(40, 40, 5)
	for range 5 {
		assert.Equal(t, 40.0, r.Next())
	}
}
