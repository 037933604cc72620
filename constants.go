package pitchfilter

import (
	"github.com/tphakala/go-pitchfilter/internal/engine"
	"github.com/tphakala/go-pitchfilter/internal/gainsearch"
)

// Frame geometry.
const (
	// FrameLength is the number of samples in one frame.
	FrameLength = engine.FrameLength

	// SubFrames is the number of sub-frames, each with its own lag and gain.
	SubFrames = engine.SubFrames

	// SubFrameLength is the number of samples in one sub-frame.
	SubFrameLength = engine.SubFrameLength

	// StepsPerSubFrame is the number of interpolation steps per sub-frame.
	StepsPerSubFrame = engine.StepsPerSubFrame

	// LookaheadLength is the number of samples past the frame filtered by
	// the lookahead and gain-search variants.
	LookaheadLength = engine.LookaheadLength

	// ExtendedLength is the frame plus lookahead length.
	ExtendedLength = engine.ExtendedLength
)

// Parameter limits.
const (
	// MinLag is the smallest pitch lag in samples.
	MinLag = engine.MinLag

	// MaxLag is the largest pitch lag in samples.
	MaxLag = engine.MaxLag

	// MaxGain is the upper bound of gains returned by RefineGains.
	MaxGain = gainsearch.MaxGain

	// Enhancer is the factor applied to the gains by the post-filter.
	Enhancer = engine.Enhancer
)

// Initial state of a new stream.
const (
	InitialLag  = engine.InitialLag
	InitialGain = engine.InitialGain
)

// Channel limits.
const (
	maxChannels = 256
)
