package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergy(t *testing.T) {
	a := []float64{1, -2, 3, -4, 5, -6, 7, -8, 9}
	assert.InDelta(t, 285.0, Energy(a), 1e-12)
	assert.InDelta(t, 0.0, Energy(nil), 0)
}

func TestDot_CommonLength(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 2, 2}
	assert.InDelta(t, 12.0, Dot(a, b), 1e-12)
	assert.InDelta(t, 12.0, Dot(b, a), 1e-12)
}

func TestOps_ScaleAndSum(t *testing.T) {
	ops := Float64Ops()
	a := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]float64, len(a))
	ops.Scale(dst, a, 0.5)
	assert.Equal(t, []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4}, dst)
	assert.InDelta(t, 18.0, ops.Sum(dst), 1e-12)
}

func TestOps_Interleave2(t *testing.T) {
	dst := make([]float64, 6)
	Float64Ops().Interleave2(dst, []float64{1, 2, 3}, []float64{4, 5, 6})
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, dst)
}
