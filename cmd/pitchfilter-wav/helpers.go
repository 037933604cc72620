package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/go-pitchfilter"
	"github.com/tphakala/go-pitchfilter/internal/simdops"
)

// wavInput holds a decoded WAV file as normalized per-channel samples.
type wavInput struct {
	rate     int
	channels int
	bitDepth int
	samples  [][]float64
}

// readWAV decodes a whole WAV file and normalizes it to [-1, 1].
func readWAV(path string, verbose bool) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}
	if format.SampleRate != speechRate {
		log.Printf("Warning: input is %d Hz, the filter is tuned for %d Hz", format.SampleRate, speechRate)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	return &wavInput{
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
		samples:  deinterleave(buf.Data, format.NumChannels, 1/maxValue(bitDepth)),
	}, nil
}

// writeWAV encodes per-channel samples in [-1, 1] as PCM.
func writeWAV(path string, rate, bitDepth int, channels [][]float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := wav.NewEncoder(f, rate, bitDepth, len(channels), wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: rate},
		Data:           interleave(channels, maxValue(bitDepth)),
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	// Close writes the final chunk sizes into the header.
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// maxValue returns the maximum sample value for the given bit depth.
func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample8:
		return maxInt8
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleave converts interleaved int samples to scaled per-channel
// float slices.
func deinterleave(data []int, numChannels int, scale float64) [][]float64 {
	ops := simdops.Float64Ops()
	n := len(data) / numChannels
	result := make([][]float64, numChannels)
	for ch := range numChannels {
		result[ch] = make([]float64, n)
		for i := range n {
			result[ch][i] = float64(data[i*numChannels+ch])
		}
		if n > 0 {
			ops.Scale(result[ch], result[ch], scale)
		}
	}
	return result
}

// interleave converts per-channel float slices in [-1, 1] to interleaved
// int samples, clamping out-of-range values.
func interleave(channels [][]float64, maxVal float64) []int {
	if len(channels) == 0 {
		return nil
	}

	numChannels := len(channels)
	n := len(channels[0])
	result := make([]int, n*numChannels)
	for i := range n {
		for ch := range numChannels {
			sample := min(max(channels[ch][i], -1), 1)
			result[i*numChannels+ch] = int(sample * maxVal)
		}
	}
	return result
}

// refineParams runs the gain search over every frame of signal and returns
// the refined parameters per frame. The search starts each frame from the
// configured gain; frames whose search is degenerate keep it.
func refineParams(signal []float64, lag, gain float64) (pitchfilter.SliceParams, error) {
	start := pitchfilter.UniformParams(lag, gain)
	frames := (len(signal) + pitchfilter.FrameLength - 1) / pitchfilter.FrameLength
	padded := make([]float64, frames*pitchfilter.FrameLength+pitchfilter.LookaheadLength)
	copy(padded, signal)

	st := pitchfilter.NewState()
	out := make([]float64, pitchfilter.ExtendedLength)
	var trials pitchfilter.TrialOutputs
	params := make(pitchfilter.SliceParams, frames)

	for f := range frames {
		in := padded[f*pitchfilter.FrameLength : f*pitchfilter.FrameLength+pitchfilter.ExtendedLength]
		if err := pitchfilter.PreFilterGainSearch(in, out, &trials, st, start.Lags, start.Gains); err != nil {
			return nil, fmt.Errorf("frame %d: %w", f, err)
		}

		refined, err := pitchfilter.RefineGains(out, &trials, start.Gains)
		if errors.Is(err, pitchfilter.ErrGainSolve) {
			refined = start.Gains
		} else if err != nil {
			return nil, fmt.Errorf("frame %d: %w", f, err)
		}

		params[f] = pitchfilter.FrameParams{Lags: start.Lags, Gains: refined}
		if err := pitchfilter.PreFilter(in[:pitchfilter.FrameLength], out[:pitchfilter.FrameLength], st, params[f].Lags, params[f].Gains); err != nil {
			return nil, fmt.Errorf("frame %d: %w", f, err)
		}
	}

	return params, nil
}

// channelParams selects per-channel frame parameters.
func channelParams(perChannel []pitchfilter.SliceParams) pitchfilter.ParamSource {
	return pitchfilter.ParamsFunc(func(channel, frame int) (pitchfilter.FrameParams, error) {
		return perChannel[channel].FrameParams(channel, frame)
	})
}

// filterChannels runs a stream in the given mode over whole channels and
// returns output of the same length.
func filterChannels(mode pitchfilter.Mode, input [][]float64, params pitchfilter.ParamSource, parallel bool) ([][]float64, error) {
	s, err := pitchfilter.NewStream(&pitchfilter.Config{
		Mode:           mode,
		Channels:       len(input),
		Params:         params,
		EnableParallel: parallel,
	})
	if err != nil {
		return nil, err
	}

	output, err := s.ProcessMulti(input)
	if err != nil {
		return nil, fmt.Errorf("%s filter failed: %w", mode, err)
	}

	tail, err := s.FlushMulti()
	if err != nil {
		return nil, fmt.Errorf("%s flush failed: %w", mode, err)
	}

	for ch := range output {
		output[ch] = append(output[ch], tail[ch]...)
	}
	return output, nil
}

// inverseParams scales the gains so the post-filter undoes the pre-filter
// up to rounding instead of enhancing.
func inverseParams(source pitchfilter.ParamSource) pitchfilter.ParamSource {
	return pitchfilter.ParamsFunc(func(channel, frame int) (pitchfilter.FrameParams, error) {
		p, err := source.FrameParams(channel, frame)
		if err != nil {
			return p, err
		}
		for k := range p.Gains {
			p.Gains[k] /= pitchfilter.Enhancer
		}
		return p, nil
	})
}
