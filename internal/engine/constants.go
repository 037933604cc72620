package engine

import "github.com/tphakala/go-pitchfilter/internal/filter"

// Frame geometry at the filter's internal 8 kHz rate.
const (
	// FrameLength is the number of samples in one 30 ms frame.
	FrameLength = 240

	// SubFrames is the number of pitch sub-frames per frame. Each carries
	// its own target lag and gain.
	SubFrames = 4

	// SubFrameLength is the number of samples in one sub-frame.
	SubFrameLength = FrameLength / SubFrames

	// StepsPerSubFrame is the number of interpolation steps lag and gain are
	// ramped over within one sub-frame.
	StepsPerSubFrame = 5

	// StepLength is the number of samples filtered per interpolation step.
	StepLength = SubFrameLength / StepsPerSubFrame

	// LookaheadLength is the 3 ms lookahead segment filtered after the frame
	// in the lookahead and gain-search modes.
	LookaheadLength = 24

	// ExtendedLength is the input/output length of the lookahead modes.
	ExtendedLength = FrameLength + LookaheadLength
)

// Lag domain and buffer sizing.
const (
	// MinLag is the smallest supported pitch lag in samples.
	MinLag = 20

	// MaxLag is the largest supported pitch lag in samples.
	MaxLag = 140

	// HistoryLength is the number of past input+output sums kept across
	// frames. It covers MaxLag plus the interpolation filter reach.
	HistoryLength = MaxLag + 50

	// WorkBufferLength holds the history, one frame and the lookahead.
	WorkBufferLength = HistoryLength + FrameLength + LookaheadLength
)

// Filter parameters.
const (
	// FilterDelay is the combined delay of the interpolation and damping
	// filters that the lag offset compensates for.
	FilterDelay = 1.5

	// lagRoundingBias turns the rounding of lag+FilterDelay into a ceiling
	// so the fractional part selects a row in [0, FracSteps).
	lagRoundingBias = 0.5

	// rowRoundingBias centers the fractional part on the table rows.
	rowRoundingBias = 0.5

	// UpStep and DownStep bound the lag change between frames that is still
	// ramped. Larger jumps switch to the new lag immediately.
	UpStep   = 1.5
	DownStep = 0.67

	// Enhancer scales the gains in post-filter mode. It is applied with a
	// negative sign, which turns the pre-filter structure into its inverse.
	Enhancer = 1.3

	// GainStep is the per-step change of the gain-search multipliers.
	GainStep = 0.2

	// maxGainMultiplier caps the gain-search multipliers.
	maxGainMultiplier = 1.0

	// InitialLag and InitialGain seed a new stream's state.
	InitialLag  = 50.0
	InitialGain = 0.0
)

// Shorthands for the coefficient table dimensions.
const (
	interpOrder = filter.InterpOrder
	dampOrder   = filter.DampOrder
)
