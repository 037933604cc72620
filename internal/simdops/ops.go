// Package simdops provides SIMD-accelerated vector kernels for measurements
// and sample conversion around the pitch filter.
//
// The filter core itself does not use these kernels: its dot products must
// accumulate in a fixed order to stay bit-exact across platforms.
package simdops

import (
	"github.com/tphakala/simd/f64"
)

// Ops provides SIMD-accelerated float64 operations.
// Function pointers allow tests and benchmarks to swap implementations.
type Ops struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []float64) float64

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []float64)

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)
}

var ops64 = Ops{
	DotProductUnsafe: f64.DotProductUnsafe,
	Interleave2:      f64.Interleave2,
	Sum:              f64.Sum,
	Scale:            f64.Scale,
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops {
	return &ops64
}

// Energy returns the sum of squares of a.
func Energy(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return ops64.DotProductUnsafe(a, a)
}

// Dot returns the dot product of a and b over their common length.
func Dot(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	return ops64.DotProductUnsafe(a[:n], b[:n])
}
