package engine

import "github.com/tphakala/go-pitchfilter/internal/filter"

// TrialOutputs holds, per sub-frame, the change of the output signal caused
// by a differential change of that sub-frame's gain. It spans the frame and
// its lookahead.
type TrialOutputs [SubFrames][ExtendedLength]float64

// trialRecorder observes the per-sample filter core. The gain-search mode
// records differential-gain outputs; every other mode uses noTrials.
type trialRecorder interface {
	// begin prepares a new frame. immediate is set when the frame skips
	// lag/gain interpolation.
	begin(immediate bool)

	// advance is called once per interpolation step of subFrame.
	advance(subFrame int)

	// record is called per sample after the prediction pred (before gain)
	// has been computed.
	record(p *params, pred float64)
}

type noTrials struct{}

func (noTrials) begin(bool)              {}
func (noTrials) advance(int)             {}
func (noTrials) record(*params, float64) {}

// gainTrials runs a separate damping filter per sub-frame over the
// differential-gain signal.
type gainTrials struct {
	out    *TrialOutputs
	damper [SubFrames][dampOrder]float64
	mult   [SubFrames]float64
}

func newGainTrials(out *TrialOutputs) *gainTrials {
	return &gainTrials{out: out}
}

func (g *gainTrials) begin(immediate bool) {
	*g.out = TrialOutputs{}
	g.damper = [SubFrames][dampOrder]float64{}
	g.mult = [SubFrames]float64{}
	if immediate {
		g.mult[0] = maxGainMultiplier
	}
}

// advance ramps the multiplier of the active sub-frame up and the one of
// the previous sub-frame down. Only the upper end is clamped.
func (g *gainTrials) advance(subFrame int) {
	g.mult[subFrame] += GainStep
	if g.mult[subFrame] > maxGainMultiplier {
		g.mult[subFrame] = maxGainMultiplier
	}
	if subFrame > 0 {
		g.mult[subFrame-1] -= GainStep
	}
}

func (g *gainTrials) record(p *params, pred float64) {
	damp := &filter.DampingCoefficients
	coeffs := p.coeffs

	// Samples before the start of the trial outputs count as zero.
	lagIndex := p.index - p.lagOffset
	first := 0
	if lagIndex < 0 {
		first = -lagIndex
	}

	for j := range SubFrames {
		copy(g.damper[j][1:], g.damper[j][:dampOrder-1])
	}

	for j := 0; j <= p.subFrame; j++ {
		trial := &g.out[j]
		var sum float64
		for m := interpOrder - 1; m >= first; m-- {
			sum += float64(trial[lagIndex+m] * coeffs[m])
		}
		g.damper[j][0] = float64(g.mult[j]*pred) + float64(p.gain*sum)
	}

	for j := 0; j <= p.subFrame; j++ {
		var sum float64
		for m := range dampOrder {
			sum -= float64(g.damper[j][m] * damp[m])
		}
		g.out[j][p.index] = sum
	}
}
