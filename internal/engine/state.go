package engine

// State is the persistent per-stream filter state carried from one frame to
// the next. A State must not be used by two frame calls at the same time.
type State struct {
	// History holds the most recent input+output sums. Fractional-lag
	// predictions of the next frame read from it.
	History [HistoryLength]float64

	// Damper is the damping filter memory, newest sample first.
	Damper [dampOrder]float64

	// Lag and Gain are the last sub-frame targets of the previous frame and
	// the starting point of the next frame's interpolation.
	Lag  float64
	Gain float64
}

// NewState returns the state of a freshly started stream.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset returns the state to its initial values.
func (s *State) Reset() {
	*s = State{
		Lag:  InitialLag,
		Gain: InitialGain,
	}
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// Equal reports whether two states hold the same values.
func (s *State) Equal(o *State) bool {
	return *s == *o
}
