package pitchfilter

import (
	"fmt"
	"sync"

	"github.com/tphakala/go-pitchfilter/internal/framing"
)

// Config holds stream configuration.
type Config struct {
	// Mode is the filter variant. Only ModePre and ModePost stream; the
	// lookahead variants need samples past the frame.
	Mode Mode

	// Channels is the number of independent audio channels. Each channel
	// has its own filter state.
	Channels int

	// Params supplies the lags and gains of each frame.
	Params ParamSource

	// EnableParallel enables parallel channel processing in ProcessMulti.
	// Channels never share state, so the output is identical to
	// sequential processing.
	EnableParallel bool
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Mode != ModePre && c.Mode != ModePost {
		return fmt.Errorf("%w: mode %s cannot stream", ErrInvalidConfig, c.Mode)
	}

	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	if c.Params == nil {
		return fmt.Errorf("%w: parameter source is nil", ErrInvalidConfig)
	}

	return nil
}

// frameFunc filters one frame in the stream's mode.
type frameFunc func(in, out []float64, st *State, lags, gains [SubFrames]float64) error

// Stream filters audio of arbitrary chunk sizes frame by frame. Samples are
// held back until a full frame is available, so output lags input by at
// most FrameLength-1 samples. A Stream is not safe for concurrent use.
type Stream struct {
	config   Config
	filter   frameFunc
	channels []*channelStream
}

// channelStream holds per-channel state.
type channelStream struct {
	state  *State
	buffer *framing.Buffer
	frame  []float64
	frames int
}

// NewStream creates a stream with the specified configuration.
func NewStream(config *Config) (*Stream, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Stream{
		config:   *config,
		filter:   PreFilter,
		channels: make([]*channelStream, config.Channels),
	}
	if config.Mode == ModePost {
		s.filter = PostFilter
	}

	for i := range s.channels {
		s.channels[i] = &channelStream{
			state:  NewState(),
			buffer: framing.NewBuffer(FrameLength),
			frame:  make([]float64, FrameLength),
		}
	}

	return s, nil
}

// Process filters a chunk of the first channel and returns every complete
// frame produced so far. On error the frames filtered before the failure are
// returned and the failed frame stays buffered for the next call.
func (s *Stream) Process(input []float64) ([]float64, error) {
	return s.processChannel(0, input)
}

// ProcessMulti filters one chunk per channel. When EnableParallel is set,
// channels are processed concurrently.
func (s *Stream) ProcessMulti(input [][]float64) ([][]float64, error) {
	if len(input) != s.config.Channels {
		return nil, fmt.Errorf("expected %d channels, got %d", s.config.Channels, len(input))
	}

	output := make([][]float64, len(input))

	if !s.config.EnableParallel || len(input) <= 1 {
		for ch := range input {
			result, err := s.processChannel(ch, input[ch])
			if err != nil {
				return nil, fmt.Errorf("channel %d: %w", ch, err)
			}
			output[ch] = result
		}
		return output, nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(input))

	for ch := range input {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()

			result, err := s.processChannel(channel, input[channel])
			if err != nil {
				errChan <- fmt.Errorf("channel %d: %w", channel, err)
				return
			}
			output[channel] = result
		}(ch)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}

// processChannel buffers input and filters all complete frames of one
// channel.
func (s *Stream) processChannel(channel int, input []float64) ([]float64, error) {
	if channel >= len(s.channels) {
		return nil, fmt.Errorf("channel %d out of range", channel)
	}

	c := s.channels[channel]
	c.buffer.Write(input)

	output := make([]float64, 0, c.buffer.Frames()*FrameLength)
	// A frame leaves the buffer only once it has been filtered, so a
	// failed frame is retried by the next call.
	for c.buffer.PeekFrame(c.frame) {
		if err := s.filterFrame(channel, c); err != nil {
			return output, err
		}
		c.buffer.Discard(FrameLength)
		output = append(output, c.frame...)
	}

	return output, nil
}

// filterFrame filters c.frame in place with the parameters of the
// channel's next frame.
func (s *Stream) filterFrame(channel int, c *channelStream) error {
	p, err := s.config.Params.FrameParams(channel, c.frames)
	if err != nil {
		return fmt.Errorf("frame %d parameters: %w", c.frames, err)
	}

	if err := s.filter(c.frame, c.frame, c.state, p.Lags, p.Gains); err != nil {
		return fmt.Errorf("frame %d: %w", c.frames, err)
	}

	c.frames++
	return nil
}

// Flush filters the pending samples of the first channel, zero-padded to a
// full frame, and returns the filtered real samples. It should be called
// when no more input will be provided.
func (s *Stream) Flush() ([]float64, error) {
	return s.flushChannel(0)
}

// FlushMulti is Flush for every channel.
func (s *Stream) FlushMulti() ([][]float64, error) {
	output := make([][]float64, len(s.channels))
	for ch := range s.channels {
		result, err := s.flushChannel(ch)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		output[ch] = result
	}
	return output, nil
}

func (s *Stream) flushChannel(channel int) ([]float64, error) {
	c := s.channels[channel]

	n := c.buffer.PeekPartial(c.frame)
	if n == 0 {
		return []float64{}, nil
	}

	if err := s.filterFrame(channel, c); err != nil {
		return nil, err
	}
	c.buffer.Discard(n)

	return append([]float64(nil), c.frame[:n]...), nil
}

// Latency returns the number of samples of the first channel held back
// waiting for a complete frame.
func (s *Stream) Latency() int {
	return s.channels[0].buffer.Available()
}

// FramesProcessed returns the number of frames filtered on the first
// channel, including a flushed partial frame.
func (s *Stream) FramesProcessed() int {
	return s.channels[0].frames
}

// State returns a copy of a channel's current filter state.
func (s *Stream) State(channel int) (*State, error) {
	if channel < 0 || channel >= len(s.channels) {
		return nil, fmt.Errorf("channel %d out of range", channel)
	}
	return s.channels[channel].state.Clone(), nil
}

// Reset clears all filter states and buffered samples.
func (s *Stream) Reset() {
	for _, c := range s.channels {
		c.state.Reset()
		c.buffer.Clear()
		c.frames = 0
	}
}
