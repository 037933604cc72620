package pitchfilter

import "fmt"

// FrameParams are the pitch lags and gains of one frame, one pair per
// sub-frame.
type FrameParams struct {
	Lags  [SubFrames]float64
	Gains [SubFrames]float64
}

// UniformParams returns parameters with the same lag and gain in every
// sub-frame.
func UniformParams(lag, gain float64) FrameParams {
	var p FrameParams
	for k := range SubFrames {
		p.Lags[k] = lag
		p.Gains[k] = gain
	}
	return p
}

// ParamSource supplies the parameters of each frame of a stream. frame
// counts from zero since the stream was created or reset.
type ParamSource interface {
	FrameParams(channel, frame int) (FrameParams, error)
}

// ConstantParams is a ParamSource returning the same parameters for every
// frame and channel.
type ConstantParams FrameParams

// FrameParams implements ParamSource.
func (c ConstantParams) FrameParams(int, int) (FrameParams, error) {
	return FrameParams(c), nil
}

// ParamsFunc adapts a function to a ParamSource.
type ParamsFunc func(channel, frame int) (FrameParams, error)

// FrameParams implements ParamSource.
func (f ParamsFunc) FrameParams(channel, frame int) (FrameParams, error) {
	return f(channel, frame)
}

// SliceParams is a ParamSource for a single channel whose frame
// parameters are known in advance. Frames past the end reuse the last
// entry.
type SliceParams []FrameParams

// FrameParams implements ParamSource.
func (s SliceParams) FrameParams(_, frame int) (FrameParams, error) {
	if len(s) == 0 {
		return FrameParams{}, fmt.Errorf("%w: no frame parameters", ErrInvalidConfig)
	}
	return s[min(frame, len(s)-1)], nil
}
