// Package analysis measures the effect of the pitch filter on a signal.
package analysis

import (
	"math"

	"github.com/tphakala/go-pitchfilter/internal/simdops"
)

// Decibel conversion.
const (
	powerDBFactor = 10.0

	// Floor keeps ratios finite for silent signals.
	energyFloor = 1e-20
)

// Energy returns the sum of squares of x.
func Energy(x []float64) float64 {
	return simdops.Energy(x)
}

// RMS returns the root mean square of x, or zero for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(Energy(x) / float64(len(x)))
}

// PredictionGain returns the energy ratio of input to residual in dB. It is
// positive when the pre-filter removed periodic structure.
func PredictionGain(input, residual []float64) float64 {
	return powerDBFactor * math.Log10((Energy(input)+energyFloor)/(Energy(residual)+energyFloor))
}

// SNR returns the ratio of the reference energy to the error energy in dB.
// Only the common length of both signals is compared.
func SNR(reference, test []float64) float64 {
	n := min(len(reference), len(test))
	var noise float64
	for i := range n {
		d := reference[i] - test[i]
		noise += d * d
	}
	return powerDBFactor * math.Log10((Energy(reference[:n])+energyFloor)/(noise+energyFloor))
}

// Accumulator sums energies over many frames for a running prediction gain.
type Accumulator struct {
	input    float64
	residual float64
	frames   int
}

// Add accounts one frame.
func (a *Accumulator) Add(input, residual []float64) {
	a.input += Energy(input)
	a.residual += Energy(residual)
	a.frames++
}

// Frames returns the number of frames accounted.
func (a *Accumulator) Frames() int {
	return a.frames
}

// PredictionGain returns the overall prediction gain in dB.
func (a *Accumulator) PredictionGain() float64 {
	return powerDBFactor * math.Log10((a.input+energyFloor)/(a.residual+energyFloor))
}
