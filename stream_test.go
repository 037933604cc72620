package pitchfilter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-pitchfilter/internal/testutil"
)

var testParams = ConstantParams{Lags: testLags, Gains: testGains}

// frameReference filters signal frame by frame with the frame-level API,
// zero-padding the last frame, and returns len(signal) samples.
func frameReference(t *testing.T, filter frameFunc, signal []float64, params ParamSource) []float64 {
	t.Helper()
	st := NewState()
	frames := (len(signal) + FrameLength - 1) / FrameLength
	out := make([]float64, frames*FrameLength)
	in := make([]float64, frames*FrameLength)
	copy(in, signal)

	for f := range frames {
		p, err := params.FrameParams(0, f)
		require.NoError(t, err)
		span := in[f*FrameLength : (f+1)*FrameLength]
		require.NoError(t, filter(span, out[f*FrameLength:(f+1)*FrameLength], st, p.Lags, p.Gains))
	}
	return out[:len(signal)]
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"lookahead_mode", Config{Mode: ModePreLookahead, Channels: 1, Params: testParams}},
		{"gain_search_mode", Config{Mode: ModeGainSearch, Channels: 1, Params: testParams}},
		{"unknown_mode", Config{Mode: Mode(9), Channels: 1, Params: testParams}},
		{"no_channels", Config{Mode: ModePre, Channels: 0, Params: testParams}},
		{"too_many_channels", Config{Mode: ModePre, Channels: maxChannels + 1, Params: testParams}},
		{"nil_params", Config{Mode: ModePost, Channels: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.config.Validate(), ErrInvalidConfig)
			_, err := NewStream(&tt.config)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := NewStream(nil)
	require.ErrorIs(t, err, ErrInvalidConfig)

	valid := Config{Mode: ModePost, Channels: 2, Params: testParams}
	assert.NoError(t, valid.Validate())
}

// TestStream_ChunkingIsTransparent feeds the same signal in irregular
// chunks and compares against frame-level filtering.
func TestStream_ChunkingIsTransparent(t *testing.T) {
	const tail = 100
	signal := testutil.Sine(5*FrameLength+tail, 54.5, testutil.DefaultAmplitude)

	for _, mode := range []Mode{ModePre, ModePost} {
		t.Run(mode.String(), func(t *testing.T) {
			s, err := NewStream(&Config{Mode: mode, Channels: 1, Params: testParams})
			require.NoError(t, err)

			var filter frameFunc = PreFilter
			if mode == ModePost {
				filter = PostFilter
			}
			want := frameReference(t, filter, signal, testParams)

			var got []float64
			rest := signal
			for i, size := range []int{1, 7, 239, 240, 500, 13} {
				out, err := s.Process(rest[:size])
				require.NoError(t, err, "chunk %d", i)
				got = append(got, out...)
				rest = rest[size:]
			}
			out, err := s.Process(rest)
			require.NoError(t, err)
			got = append(got, out...)

			assert.Len(t, got, 5*FrameLength)
			assert.Equal(t, tail, s.Latency())
			assert.Equal(t, 5, s.FramesProcessed())

			flushed, err := s.Flush()
			require.NoError(t, err)
			assert.Len(t, flushed, tail)
			got = append(got, flushed...)

			testutil.AssertBitIdentical(t, want, got)
			assert.Equal(t, 0, s.Latency())
			assert.Equal(t, 6, s.FramesProcessed())

			flushed, err = s.Flush()
			require.NoError(t, err)
			assert.Empty(t, flushed, "second flush has nothing left")
		})
	}
}

func TestStream_ParamsFuncFrameIndex(t *testing.T) {
	var seen []int
	params := ParamsFunc(func(channel, frame int) (FrameParams, error) {
		assert.Equal(t, 0, channel)
		seen = append(seen, frame)
		return UniformParams(40+float64(frame), 0.2), nil
	})

	s, err := NewStream(&Config{Mode: ModePre, Channels: 1, Params: params})
	require.NoError(t, err)

	_, err = s.Process(make([]float64, 3*FrameLength))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, seen)

	st, err := s.State(0)
	require.NoError(t, err)
	assert.InDelta(t, 42.0, st.Lag(), 0)

	s.Reset()
	assert.Equal(t, 0, s.FramesProcessed())
	_, err = s.Process(make([]float64, FrameLength))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 0}, seen)
}

func TestStream_ParamErrors(t *testing.T) {
	errSource := errors.New("pitch tracker failed")
	s, err := NewStream(&Config{
		Mode:     ModePre,
		Channels: 1,
		Params: ParamsFunc(func(_, frame int) (FrameParams, error) {
			if frame == 1 {
				return FrameParams{}, errSource
			}
			return UniformParams(60, 0.3), nil
		}),
	})
	require.NoError(t, err)

	out, err := s.Process(make([]float64, 2*FrameLength))
	require.ErrorIs(t, err, errSource)
	assert.Len(t, out, FrameLength, "frames before the failure are returned")

	// Out-of-range parameters surface as validation errors.
	bad, err := NewStream(&Config{Mode: ModePost, Channels: 1, Params: ConstantParams(UniformParams(10, 0.3))})
	require.NoError(t, err)
	_, err = bad.Process(make([]float64, FrameLength))
	require.ErrorIs(t, err, ErrInvalidLag)
}

// TestStream_RetriesFailedFrame verifies a frame whose parameters fail stays
// buffered and is filtered by the next call once the source recovers.
func TestStream_RetriesFailedFrame(t *testing.T) {
	signal := testutil.Noise(3*FrameLength+100, testutil.DefaultAmplitude)
	want := frameReference(t, PreFilter, signal, testParams)

	failing := true
	s, err := NewStream(&Config{
		Mode:     ModePre,
		Channels: 1,
		Params: ParamsFunc(func(channel, frame int) (FrameParams, error) {
			if failing && frame >= 1 {
				return FrameParams{}, errors.New("lag not ready")
			}
			return testParams.FrameParams(channel, frame)
		}),
	})
	require.NoError(t, err)

	out, err := s.Process(signal[:2*FrameLength])
	require.Error(t, err)
	require.Len(t, out, FrameLength)
	assert.Equal(t, FrameLength, s.Latency(), "failed frame must stay buffered")

	// Flushing while the source still fails keeps the samples as well.
	_, err = s.Flush()
	require.Error(t, err)
	assert.Equal(t, FrameLength, s.Latency())

	failing = false
	rest, err := s.Process(signal[2*FrameLength:])
	require.NoError(t, err)
	out = append(out, rest...)
	tail, err := s.Flush()
	require.NoError(t, err)
	out = append(out, tail...)

	testutil.AssertBitIdentical(t, want, out)
	assert.Equal(t, 4, s.FramesProcessed())
}

func TestStream_ResetMatchesFresh(t *testing.T) {
	signal := testutil.Noise(3*FrameLength, testutil.DefaultAmplitude)

	s, err := NewStream(&Config{Mode: ModePre, Channels: 1, Params: testParams})
	require.NoError(t, err)

	first, err := s.Process(signal)
	require.NoError(t, err)

	_, err = s.Process(signal[:50])
	require.NoError(t, err)
	s.Reset()
	assert.Equal(t, 0, s.Latency())

	second, err := s.Process(signal)
	require.NoError(t, err)
	testutil.AssertBitIdentical(t, first, second)

	st, err := s.State(0)
	require.NoError(t, err)
	assert.False(t, st.Equal(NewState()))

	_, err = s.State(1)
	require.Error(t, err)
}

func TestSliceParams(t *testing.T) {
	params := SliceParams{UniformParams(40, 0.1), UniformParams(80, 0.2)}

	p, err := params.FrameParams(0, 0)
	require.NoError(t, err)
	assert.Equal(t, UniformParams(40, 0.1), p)

	p, err = params.FrameParams(0, 7)
	require.NoError(t, err)
	assert.Equal(t, UniformParams(80, 0.2), p, "past the end reuses the last frame")

	_, err = SliceParams(nil).FrameParams(0, 0)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUniformParams(t *testing.T) {
	p := UniformParams(60.5, 0.25)
	for k := range SubFrames {
		assert.InDelta(t, 60.5, p.Lags[k], 0)
		assert.InDelta(t, 0.25, p.Gains[k], 0)
	}
}
