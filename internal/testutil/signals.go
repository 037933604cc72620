package testutil

import (
	"math"
	"math/rand/v2"
)

// Default parameters of the generated test signals.
const (
	// DefaultAmplitude keeps generated speech-like signals in 16-bit range.
	DefaultAmplitude = 1000.0

	// noiseSeed makes Noise reproducible across runs.
	noiseSeed = 0x5eed
)

// Impulse returns n samples with a single value amp at index pos.
func Impulse(n, pos int, amp float64) []float64 {
	s := make([]float64, n)
	if pos >= 0 && pos < n {
		s[pos] = amp
	}
	return s
}

// Sine returns n samples of a sine with the given period in samples.
func Sine(n int, period, amp float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = amp * math.Sin(2*math.Pi*float64(i)/period)
	}
	return s
}

// PulseTrain returns n samples of a voiced-speech-like excitation: a pulse
// every period samples smoothed by a short decaying tail.
func PulseTrain(n, period int, amp float64) []float64 {
	const decay = 0.6
	s := make([]float64, n)
	for start := 0; start < n; start += period {
		v := amp
		for i := start; i < n && i < start+period; i++ {
			s[i] = v
			v *= -decay
		}
	}
	return s
}

// Noise returns n reproducible uniformly distributed samples in [-amp, amp].
func Noise(n int, amp float64) []float64 {
	rng := rand.New(rand.NewPCG(noiseSeed, noiseSeed))
	s := make([]float64, n)
	for i := range s {
		s[i] = amp * (2*rng.Float64() - 1)
	}
	return s
}
