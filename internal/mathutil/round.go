// Package mathutil provides the scalar helpers shared by the pitch filter:
// codec-compatible rounding, clamping and linear parameter ramps.
package mathutil

import "math"

// Lrint rounds x to the nearest integer, ties to even. This matches C lrint
// under the default floating-point rounding mode, which the codec's lag
// quantization relies on for encoder/decoder agreement.
func Lrint(x float64) int {
	return int(math.RoundToEven(x))
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	default:
		return x
	}
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Ramp steps linearly from a start value toward a target over a fixed number
// of increments. The value is accumulated increment by increment, so the
// sequence it produces is bit-identical to a running sum.
type Ramp struct {
	Value float64
	Delta float64
}

// NewRamp returns a ramp that reaches target after steps calls to Next.
func NewRamp(start, target float64, steps int) Ramp {
	return Ramp{
		Value: start,
		Delta: (target - start) / float64(steps),
	}
}

// Next advances the ramp by one increment and returns the new value.
func (r *Ramp) Next() float64 {
	r.Value += r.Delta
	return r.Value
}
