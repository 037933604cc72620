package filter

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Response analysis constants.
const (
	// DefaultResponseSize is the FFT length used for frequency responses.
	DefaultResponseSize = 512

	// minResponseSize is the smallest FFT length that resolves a 9-tap filter.
	minResponseSize = 16

	// groupDelayBin is the bin used to estimate low-frequency group delay.
	groupDelayBin = 1
)

// Response is the sampled frequency response of a short FIR filter.
type Response struct {
	// Coefficients holds size/2+1 complex response values from DC to Nyquist.
	Coefficients []complex128

	// Size is the FFT length used to compute the response.
	Size int
}

// FrequencyResponse computes the response of taps on a size-point FFT grid.
// A size below the tap count is raised to the next power of two that fits.
func FrequencyResponse(taps []float64, size int) *Response {
	if size < minResponseSize {
		size = minResponseSize
	}
	for size < len(taps) {
		size *= 2
	}

	padded := make([]float64, size)
	copy(padded, taps)

	fft := fourier.NewFFT(size)
	return &Response{
		Coefficients: fft.Coefficients(nil, padded),
		Size:         size,
	}
}

// Frequency returns the normalized frequency (cycles/sample) of bin k.
func (r *Response) Frequency(k int) float64 {
	return float64(k) / float64(r.Size)
}

// Magnitude returns |H| at bin k.
func (r *Response) Magnitude(k int) float64 {
	return cmplx.Abs(r.Coefficients[k])
}

// MagnitudeAt returns |H| at the bin nearest to the normalized frequency f.
func (r *Response) MagnitudeAt(f float64) float64 {
	k := int(math.Round(f * float64(r.Size)))
	k = max(0, min(k, len(r.Coefficients)-1))
	return r.Magnitude(k)
}

// GroupDelay estimates the low-frequency group delay in samples from the
// phase slope between DC and the first bin.
func (r *Response) GroupDelay() float64 {
	phase := cmplx.Phase(r.Coefficients[groupDelayBin])
	omega := 2 * math.Pi * r.Frequency(groupDelayBin)
	return -phase / omega
}

// DCGain returns the sum of taps.
func DCGain(taps []float64) float64 {
	var sum float64
	for _, c := range taps {
		sum += c
	}
	return sum
}

// FractionalDelay returns the delay of interpolation row k relative to its
// center tap, in samples.
func FractionalDelay(k int) float64 {
	row := Row(k)
	return FrequencyResponse(row[:], DefaultResponseSize).GroupDelay() - centerTap
}
