package engine

import "github.com/tphakala/go-pitchfilter/internal/filter"

// filterSegment filters p.numSamples samples starting at p.index.
//
// For each sample the fractional-lag prediction is read from the history of
// input+output sums, scaled by the gain, smoothed by the damping filter and
// subtracted from the input. Products are converted explicitly before they
// are accumulated so the compiler cannot fuse them into FMA instructions,
// which would break bit-exactness with other implementations.
func (p *params) filterSegment(in, out []float64) {
	damp := &filter.DampingCoefficients
	coeffs := p.coeffs

	// Write position of the current sample in p.buffer.
	pos := p.index + HistoryLength
	// First sample read by the interpolation filter.
	posLag := pos - p.lagOffset

	for range p.numSamples {
		copy(p.damper[1:], p.damper[:dampOrder-1])

		window := p.buffer[posLag : posLag+interpOrder]
		var pred float64
		for m := range interpOrder {
			pred += float64(window[m] * coeffs[m])
		}
		p.damper[0] = p.gain * pred

		p.trials.record(p, pred)

		var damped float64
		for m := range dampOrder {
			damped += float64(p.damper[m] * damp[m])
		}

		// in and out may be the same slice.
		x := in[p.index]
		y := x - damped
		out[p.index] = y
		p.buffer[pos] = x + y

		p.index++
		pos++
		posLag++
	}
}
