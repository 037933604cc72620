// Package framing cuts a sample stream of arbitrary chunk sizes into the
// fixed-size frames the pitch filter operates on.
package framing

// growthFactor is the capacity multiplier when the buffer fills up.
const growthFactor = 2

// Buffer is a circular sample buffer that hands out whole frames.
// It is not safe for concurrent use; each stream channel owns one.
type Buffer struct {
	data      []float64
	frameSize int
	size      int
	readPos   int
	writePos  int
}

// NewBuffer returns a buffer for frames of frameSize samples. The initial
// capacity holds two frames.
func NewBuffer(frameSize int) *Buffer {
	if frameSize < 1 {
		frameSize = 1
	}
	return &Buffer{
		data:      make([]float64, growthFactor*frameSize),
		frameSize: frameSize,
	}
}

// FrameSize returns the frame length in samples.
func (b *Buffer) FrameSize() int {
	return b.frameSize
}

// Write appends samples, growing the buffer when needed.
func (b *Buffer) Write(samples []float64) {
	if len(samples) == 0 {
		return
	}
	if b.size+len(samples) > len(b.data) {
		b.grow(b.size + len(samples))
	}

	// At most two contiguous copies: up to the end, then from the start.
	n := copy(b.data[b.writePos:], samples)
	copy(b.data, samples[n:])
	b.writePos = (b.writePos + len(samples)) % len(b.data)
	b.size += len(samples)
}

// Available returns the number of buffered samples.
func (b *Buffer) Available() int {
	return b.size
}

// Frames returns the number of complete frames buffered.
func (b *Buffer) Frames() int {
	return b.size / b.frameSize
}

// PeekFrame copies the oldest complete frame into dst, which must hold at
// least FrameSize samples, without consuming it. It reports false when no
// complete frame is buffered.
func (b *Buffer) PeekFrame(dst []float64) bool {
	if b.size < b.frameSize {
		return false
	}
	b.peek(dst[:b.frameSize])
	return true
}

// PeekPartial copies up to one frame of buffered samples into dst without
// consuming them and zero-pads dst to FrameSize. It returns the number of
// real samples.
func (b *Buffer) PeekPartial(dst []float64) int {
	n := min(b.size, b.frameSize)
	b.peek(dst[:n])
	clear(dst[n:b.frameSize])
	return n
}

// Discard drops the oldest n buffered samples.
func (b *Buffer) Discard(n int) {
	n = min(n, b.size)
	b.readPos = (b.readPos + n) % len(b.data)
	b.size -= n
}

// Clear drops all buffered samples.
func (b *Buffer) Clear() {
	b.size = 0
	b.readPos = 0
	b.writePos = 0
}

func (b *Buffer) peek(dst []float64) {
	n := copy(dst, b.data[b.readPos:min(len(b.data), b.readPos+len(dst))])
	copy(dst[n:], b.data)
}

// grow increases the capacity to at least minCapacity, keeping order.
func (b *Buffer) grow(minCapacity int) {
	capacity := len(b.data)
	for capacity < minCapacity {
		capacity *= growthFactor
	}

	data := make([]float64, capacity)
	if b.size > 0 {
		if b.readPos < b.writePos {
			copy(data, b.data[b.readPos:b.writePos])
		} else {
			n := copy(data, b.data[b.readPos:])
			copy(data[n:], b.data[:b.writePos])
		}
	}

	b.data = data
	b.readPos = 0
	b.writePos = b.size
}
