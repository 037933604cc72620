package engine

import (
	"github.com/tphakala/go-pitchfilter/internal/filter"
	"github.com/tphakala/go-pitchfilter/internal/mathutil"
)

// params is the working set of one frame call. It is built from a State at
// the start of the frame and discarded after the state has been exported.
type params struct {
	// buffer holds the history followed by the input+output sums of the
	// current frame and its lookahead.
	buffer [WorkBufferLength]float64

	// damper is the working damping filter memory.
	damper [dampOrder]float64

	// coeffs is the interpolation row selected for the current lag.
	coeffs *filter.InterpolationRow

	// gain and lag are the current interpolated values.
	gain float64
	lag  float64

	// lagOffset is the integer distance between the sample being written
	// and the first sample the interpolation reads.
	lagOffset int

	subFrame   int
	mode       Mode
	numSamples int

	// index is the position of the next input/output sample.
	index int

	trials trialRecorder
}

// newParams loads the working set from st.
func newParams(mode Mode, st *State, trials trialRecorder) *params {
	p := &params{
		mode:   mode,
		damper: st.Damper,
		trials: trials,
	}
	// The lookahead region of buffer stays zero.
	copy(p.buffer[:HistoryLength], st.History[:])
	return p
}

// update recomputes the lag offset and interpolation row for the current
// lag and steps the gain-search multipliers.
func (p *params) update() {
	var row int
	p.lagOffset, row = LagPosition(p.lag)
	p.coeffs = filter.Row(row)
	p.trials.advance(p.subFrame)
}

// export writes the tail of the working buffer and the damper memory back
// into st.
func (p *params) export(st *State) {
	copy(st.History[:], p.buffer[FrameLength:FrameLength+HistoryLength])
	st.Damper = p.damper
}

// LagPosition splits a fractional lag into the integer lag offset and the
// interpolation row that realizes the remaining fractional delay. The row
// is always within [0, FracSteps).
func LagPosition(lag float64) (offset, row int) {
	offset = mathutil.Lrint(lag + FilterDelay + lagRoundingBias)
	fraction := float64(offset) - (lag + FilterDelay)
	row = mathutil.Lrint(filter.FracSteps*fraction - rowRoundingBias)
	// A fraction of exactly one rounds up past the last row.
	row = max(0, min(row, filter.FracSteps-1))
	return offset, row
}
