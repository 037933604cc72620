package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-pitchfilter/internal/filter"
	"github.com/tphakala/go-pitchfilter/internal/testutil"
)

// seededState returns a zero-history state whose previous lag and gain are
// set, so a frame with the same targets runs at constant parameters.
func seededState(lag, gain float64) *State {
	st := NewState()
	st.Lag = lag
	st.Gain = gain
	return st
}

func constant(v float64) [SubFrames]float64 {
	return [SubFrames]float64{v, v, v, v}
}

// TestFilterSegment_ImpulseEcho feeds a unit impulse through the pre-filter
// at an integer lag. The history stores input+output (2 for the impulse),
// the identity row passes it through and the damping filter spreads the
// gain-scaled copy over five samples centered lag samples later.
func TestFilterSegment_ImpulseEcho(t *testing.T) {
	const (
		lag     = 40
		gain    = 0.4
		impulse = 10
	)

	offset, row := LagPosition(lag)
	require.Equal(t, lag+2, offset)
	require.Equal(t, filter.IdentityRow, row)

	in := testutil.Impulse(FrameLength, impulse, 1)
	out := make([]float64, FrameLength)
	PreFilter(in, out, seededState(lag, gain), constant(lag), constant(gain))

	testutil.AssertAllZero(t, out[:impulse])
	assert.Equal(t, 1.0, out[impulse])

	// Nothing reaches the output before the first interpolation tap.
	firstTap := impulse + offset - (interpOrder - 1)
	testutil.AssertAllZero(t, out[impulse+1:firstTap])

	// Echo centered on impulse+lag: -2*gain*damp[d-2].
	echo := impulse + lag
	for d := range dampOrder {
		want := -2 * gain * filter.DampingCoefficients[d]
		assert.InDelta(t, want, out[echo-2+d], 1e-12, "echo tap %d", d)
	}

	// The damping taps sum to one, so the echo carries -2*gain in total.
	secondTap := firstTap + lag
	var sum float64
	for _, v := range out[firstTap:secondTap] {
		sum += v
	}
	assert.InDelta(t, -2*gain, sum, 1e-12)

	// Between the first echo and the second nothing happens.
	for _, v := range out[echo+dampOrder-2 : secondTap] {
		assert.InDelta(t, 0.0, v, 1e-12)
	}
}

// TestFilterSegment_ZeroGainIdentity verifies zero gains leave the input
// untouched, bit for bit.
func TestFilterSegment_ZeroGainIdentity(t *testing.T) {
	in := testutil.Noise(ExtendedLength, testutil.DefaultAmplitude)
	lags := [SubFrames]float64{55, 60, 62.5, 61.25}

	t.Run("pre", func(t *testing.T) {
		out := make([]float64, FrameLength)
		PreFilter(in[:FrameLength], out, NewState(), lags, constant(0))
		testutil.AssertBitIdentical(t, in[:FrameLength], out)
	})

	t.Run("pre-lookahead", func(t *testing.T) {
		out := make([]float64, ExtendedLength)
		PreFilterLookahead(in, out, NewState(), lags, constant(0))
		testutil.AssertBitIdentical(t, in, out)
	})

	t.Run("gain-search", func(t *testing.T) {
		out := make([]float64, ExtendedLength)
		PreFilterGainSearch(in, out, &TrialOutputs{}, NewState(), lags, constant(0))
		testutil.AssertBitIdentical(t, in, out)
	})

	t.Run("post", func(t *testing.T) {
		out := make([]float64, FrameLength)
		PostFilter(in[:FrameLength], out, NewState(), lags, constant(0))
		testutil.AssertBitIdentical(t, in[:FrameLength], out)
	})
}

// TestFilterSegment_HistoryHoldsSums verifies the working buffer receives
// input+output rather than the raw input.
func TestFilterSegment_HistoryHoldsSums(t *testing.T) {
	in := testutil.Noise(FrameLength, testutil.DefaultAmplitude)
	out := make([]float64, FrameLength)

	p := newParams(ModePre, seededState(50, 0.3), noTrials{})
	p.lag = 50
	p.gain = 0.3
	p.numSamples = StepLength
	p.update()
	p.filterSegment(in, out)

	assert.Equal(t, StepLength, p.index)
	for n := range StepLength {
		assert.Equal(t, in[n]+out[n], p.buffer[HistoryLength+n], "sample %d", n)
	}
}
