package pitchfilter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-pitchfilter/internal/engine"
	"github.com/tphakala/go-pitchfilter/internal/mathutil"
)

// Common errors returned by the pitch filter.
var (
	// ErrInvalidLag indicates a pitch lag outside [MinLag, MaxLag] or not finite.
	ErrInvalidLag = errors.New("invalid pitch lag")

	// ErrInvalidGain indicates a pitch gain that is not finite.
	ErrInvalidGain = errors.New("invalid pitch gain")

	// ErrInvalidBufferSize indicates an input or output buffer of the wrong length.
	ErrInvalidBufferSize = errors.New("invalid buffer size")

	// ErrNilState indicates a nil filter state or trial output buffer.
	ErrNilState = errors.New("nil filter state")

	// ErrInvalidConfig indicates invalid stream configuration parameters.
	ErrInvalidConfig = errors.New("invalid pitch filter configuration")

	// ErrGainSolve indicates the gain search could not determine a correction.
	ErrGainSolve = errors.New("gain refinement failed")
)

// Mode enumerates the filter variants.
type Mode int

const (
	// ModePre is the encoder pre-filter.
	ModePre Mode = Mode(engine.ModePre)

	// ModePreLookahead is the pre-filter including the lookahead segment.
	ModePreLookahead Mode = Mode(engine.ModePreLookahead)

	// ModeGainSearch is the pre-filter recording gain derivatives.
	ModeGainSearch Mode = Mode(engine.ModeGainSearch)

	// ModePost is the decoder post-filter.
	ModePost Mode = Mode(engine.ModePost)
)

// String returns the mode name as accepted by ParseMode.
func (m Mode) String() string {
	return engine.Mode(m).String()
}

// InputLength returns the number of input and output samples of one frame
// call in mode m.
func (m Mode) InputLength() int {
	return engine.Mode(m).FrameSize()
}

func (m Mode) valid() bool {
	return m >= ModePre && m <= ModePost
}

// ParseMode returns the mode named s. Matching ignores case.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m := ModePre; m <= ModePost; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
}

// TrialOutputs holds, per sub-frame, the derivative of the gain-search
// output with respect to that sub-frame's gain. Row j is zero before the
// start of sub-frame j.
type TrialOutputs = engine.TrialOutputs

// State is the filter memory of one stream. The zero value is not ready
// for use; create states with NewState.
type State struct {
	s engine.State
}

// NewState returns the state of a new stream: empty history, lag 50 and
// gain 0.
func NewState() *State {
	st := &State{}
	st.s.Reset()
	return st
}

// Reset returns the state to that of a new stream.
func (st *State) Reset() {
	st.s.Reset()
}

// Clone returns an independent copy of the state.
func (st *State) Clone() *State {
	return &State{s: st.s}
}

// Equal reports whether two states hold identical values.
func (st *State) Equal(other *State) bool {
	if st == nil || other == nil {
		return st == other
	}
	return st.s.Equal(&other.s)
}

// Lag returns the lag the next frame interpolates from.
func (st *State) Lag() float64 {
	return st.s.Lag
}

// Gain returns the gain the next frame interpolates from. After a
// post-filter call this is the enhanced (scaled) gain.
func (st *State) Gain() float64 {
	return st.s.Gain
}

// PreFilter removes the pitch component of one frame. in and out hold
// FrameLength samples and may be the same slice.
func PreFilter(in, out []float64, st *State, lags, gains [SubFrames]float64) error {
	if err := validate(ModePre, in, out, st, lags, gains); err != nil {
		return err
	}
	engine.PreFilter(in, out, &st.s, lags, gains)
	return nil
}

// PreFilterWithLookahead filters one frame and the following lookahead.
// in and out hold ExtendedLength samples. The state advances by the frame
// only, so the next call starts at the first lookahead sample.
func PreFilterWithLookahead(in, out []float64, st *State, lags, gains [SubFrames]float64) error {
	if err := validate(ModePreLookahead, in, out, st, lags, gains); err != nil {
		return err
	}
	engine.PreFilterLookahead(in, out, &st.s, lags, gains)
	return nil
}

// PreFilterGainSearch filters one frame and lookahead like
// PreFilterWithLookahead and writes the gain derivatives to trials. The
// state is not modified.
func PreFilterGainSearch(in, out []float64, trials *TrialOutputs, st *State, lags, gains [SubFrames]float64) error {
	if trials == nil {
		return fmt.Errorf("%w: trial outputs are nil", ErrNilState)
	}
	if err := validate(ModeGainSearch, in, out, st, lags, gains); err != nil {
		return err
	}
	engine.PreFilterGainSearch(in, out, trials, &st.s, lags, gains)
	return nil
}

// PostFilter restores the pitch component of one decoded frame. in and out
// hold FrameLength samples and may be the same slice. The gains are the
// ones passed to PreFilter; they are scaled by -Enhancer internally.
func PostFilter(in, out []float64, st *State, lags, gains [SubFrames]float64) error {
	if err := validate(ModePost, in, out, st, lags, gains); err != nil {
		return err
	}
	engine.PostFilter(in, out, &st.s, lags, gains)
	return nil
}

// validate checks the arguments of a frame call in mode m.
func validate(m Mode, in, out []float64, st *State, lags, gains [SubFrames]float64) error {
	if st == nil {
		return ErrNilState
	}

	size := m.InputLength()
	if len(in) != size {
		return fmt.Errorf("%w: %s input has %d samples, want %d", ErrInvalidBufferSize, m, len(in), size)
	}
	if len(out) != size {
		return fmt.Errorf("%w: %s output has %d samples, want %d", ErrInvalidBufferSize, m, len(out), size)
	}

	return validateParams(lags, gains)
}

func validateParams(lags, gains [SubFrames]float64) error {
	for k := range SubFrames {
		lag := lags[k]
		if !mathutil.IsFinite(lag) || lag < MinLag || lag > MaxLag {
			return fmt.Errorf("%w: sub-frame %d lag %v outside [%d, %d]", ErrInvalidLag, k, lag, MinLag, MaxLag)
		}
		if !mathutil.IsFinite(gains[k]) {
			return fmt.Errorf("%w: sub-frame %d gain %v", ErrInvalidGain, k, gains[k])
		}
	}
	return nil
}
