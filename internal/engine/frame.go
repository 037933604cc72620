// Package engine implements the pitch pre- and post-filter of a low-bitrate
// speech codec.
//
// The filters are
//
//	pre:  y(z) = x(z) - damper(z) * gain * (x(z) + y(z)) * z^(-lag)
//	post: y(z) = x(z) + damper(z) * gain * (x(z) + y(z)) * z^(-lag)
//
// where lag is fractional and realized by table-driven interpolation. All
// four operating modes share one numerical core; the post-filter is the
// pre-filter with negated (and enhanced) gains.
package engine

import "github.com/tphakala/go-pitchfilter/internal/mathutil"

// Mode selects the operation of the frame filter.
type Mode int

const (
	// ModePre is the encoder pitch pre-filter.
	ModePre Mode = iota

	// ModePreLookahead is the pre-filter followed by the lookahead segment,
	// used to obtain the signal for LPC analysis.
	ModePreLookahead

	// ModeGainSearch is the pre-filter that also records differential-gain
	// outputs for the encoder's gain search. It leaves the state untouched.
	ModeGainSearch

	// ModePost is the decoder pitch post-filter.
	ModePost
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePre:
		return "pre"
	case ModePreLookahead:
		return "pre-lookahead"
	case ModeGainSearch:
		return "gain-search"
	case ModePost:
		return "post"
	default:
		return "unknown"
	}
}

// HasLookahead reports whether the mode filters the lookahead segment.
func (m Mode) HasLookahead() bool {
	return m == ModePreLookahead || m == ModeGainSearch
}

// FrameSize returns the input and output length of one call in mode m.
func (m Mode) FrameSize() int {
	if m.HasLookahead() {
		return ExtendedLength
	}
	return FrameLength
}

// PreFilter runs the encoder pre-filter over one frame.
func PreFilter(in, out []float64, st *State, lags, gains [SubFrames]float64) {
	filterFrame(ModePre, in, out, st, lags, gains, noTrials{})
}

// PreFilterLookahead runs the pre-filter over one frame plus lookahead. The
// state is advanced by the frame only.
func PreFilterLookahead(in, out []float64, st *State, lags, gains [SubFrames]float64) {
	filterFrame(ModePreLookahead, in, out, st, lags, gains, noTrials{})
}

// PreFilterGainSearch runs the pre-filter over one frame plus lookahead and
// writes the differential-gain outputs to trials. st is not modified.
func PreFilterGainSearch(in, out []float64, trials *TrialOutputs, st *State, lags, gains [SubFrames]float64) {
	filterFrame(ModeGainSearch, in, out, st, lags, gains, newGainTrials(trials))
}

// PostFilter runs the decoder post-filter over one frame.
func PostFilter(in, out []float64, st *State, lags, gains [SubFrames]float64) {
	filterFrame(ModePost, in, out, st, lags, gains, noTrials{})
}

// filterFrame filters one frame. in and out must hold mode.FrameSize()
// samples and the lags must lie within [MinLag, MaxLag]; callers validate.
func filterFrame(mode Mode, in, out []float64, st *State, lags, gains [SubFrames]float64, trials trialRecorder) {
	p := newParams(mode, st, trials)

	if mode == ModePost {
		// Negating the gains inverts the filter, the enhancer makes the
		// output more periodic.
		for n := range gains {
			gains[n] *= -Enhancer
		}
	}

	oldLag, oldGain := st.Lag, st.Gain

	// No interpolation if the pitch lag step is big.
	immediate := lags[0] > UpStep*oldLag || lags[0] < DownStep*oldLag
	if immediate {
		oldLag = lags[0]
		oldGain = gains[0]
	}
	trials.begin(immediate)

	p.numSamples = StepLength
	for m := range SubFrames {
		p.subFrame = m
		lag := mathutil.NewRamp(oldLag, lags[m], StepsPerSubFrame)
		gain := mathutil.NewRamp(oldGain, gains[m], StepsPerSubFrame)
		oldLag, oldGain = lags[m], gains[m]

		for range StepsPerSubFrame {
			p.gain = gain.Next()
			p.lag = lag.Next()
			p.update()
			p.filterSegment(in, out)
		}
	}

	if p.mode != ModeGainSearch {
		p.export(st)
		st.Lag = oldLag
		st.Gain = oldGain
	}

	if p.mode.HasLookahead() {
		// The lookahead is filtered with the last sub-frame's settings.
		p.subFrame = SubFrames - 1
		p.numSamples = LookaheadLength
		p.filterSegment(in, out)
	}
}
