package pitchfilter

import (
	"fmt"

	"github.com/tphakala/go-pitchfilter/internal/simdops"
)

// stereoChannels is the channel count of interleaved stereo.
const stereoChannels = 2

// PreFilterSignal runs the pre-filter over a whole mono signal starting
// from a new state. The last partial frame is zero-padded; the result has
// the length of signal.
func PreFilterSignal(signal []float64, params ParamSource) ([]float64, error) {
	return filterSignal(ModePre, signal, params)
}

// PostFilterSignal runs the post-filter over a whole mono signal starting
// from a new state. The gains are enhanced by Enhancer, so the result is
// not an exact inverse of PreFilterSignal.
func PostFilterSignal(signal []float64, params ParamSource) ([]float64, error) {
	return filterSignal(ModePost, signal, params)
}

func filterSignal(mode Mode, signal []float64, params ParamSource) ([]float64, error) {
	s, err := NewStream(&Config{
		Mode:     mode,
		Channels: 1,
		Params:   params,
	})
	if err != nil {
		return nil, err
	}

	output, err := s.Process(signal)
	if err != nil {
		return nil, fmt.Errorf("%s filter failed: %w", mode, err)
	}

	tail, err := s.Flush()
	if err != nil {
		return nil, fmt.Errorf("%s flush failed: %w", mode, err)
	}

	return append(output, tail...), nil
}

// PreFilterStereo pre-filters both channels of a stereo signal in
// parallel. Each channel gets its own state.
func PreFilterStereo(left, right []float64, params ParamSource) (leftOut, rightOut []float64, err error) {
	s, err := NewStream(&Config{
		Mode:           ModePre,
		Channels:       stereoChannels,
		Params:         params,
		EnableParallel: true,
	})
	if err != nil {
		return nil, nil, err
	}

	output, err := s.ProcessMulti([][]float64{left, right})
	if err != nil {
		return nil, nil, err
	}

	tail, err := s.FlushMulti()
	if err != nil {
		return nil, nil, err
	}

	return append(output[0], tail[0]...), append(output[1], tail[1]...), nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float64) []float64 {
	n := min(len(left), len(right))
	result := make([]float64, n*stereoChannels)
	if n > 0 {
		simdops.Float64Ops().Interleave2(result, left[:n], right[:n])
	}
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []float64) (left, right []float64) {
	numSamples := len(interleaved) / stereoChannels
	left = make([]float64, numSamples)
	right = make([]float64, numSamples)
	for i := range numSamples {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
