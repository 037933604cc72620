// Command analyze-pitchfilter prints the characteristics of the pitch
// filter's interpolation and damping filters.
package main

import (
	"fmt"

	"github.com/tphakala/go-pitchfilter/internal/engine"
	"github.com/tphakala/go-pitchfilter/internal/filter"
)

const (
	// Sample rate used to label frequencies
	sampleRate = 8000.0

	// Display precision of the lag table
	lagTableStep = 0.125
	lagTableBase = 60.0
)

// probeFrequencies are the frequencies (Hz) at which magnitudes are shown.
var probeFrequencies = []float64{0, 500, 1000, 2000, 3000, 3500, 4000}

func main() {
	fmt.Println("=== Interpolation Filters ===")
	fmt.Printf("%d rows of %d taps\n\n", filter.FracSteps, filter.InterpOrder)

	fmt.Printf("%-4s %-12s %-10s", "Row", "DC gain", "Delay")
	for _, f := range probeFrequencies[1:] {
		fmt.Printf(" %7.0fHz", f)
	}
	fmt.Println()

	for k := range filter.FracSteps {
		row := filter.Row(k)
		resp := filter.FrequencyResponse(row[:], filter.DefaultResponseSize)
		fmt.Printf("%-4d %-12.8f %+-10.4f", k, filter.DCGain(row[:]), filter.FractionalDelay(k))
		for _, f := range probeFrequencies[1:] {
			fmt.Printf(" %9.4f", resp.MagnitudeAt(f/sampleRate))
		}
		fmt.Println()
	}

	fmt.Println("\n=== Damping Filter ===")
	damp := filter.DampingCoefficients
	resp := filter.FrequencyResponse(damp[:], filter.DefaultResponseSize)
	fmt.Printf("Taps: %v\n", damp)
	fmt.Printf("DC gain: %.6f\n", filter.DCGain(damp[:]))
	fmt.Printf("Group delay: %.4f samples\n", resp.GroupDelay())
	for _, f := range probeFrequencies {
		fmt.Printf("  %6.0f Hz: %.4f\n", f, resp.MagnitudeAt(f/sampleRate))
	}

	fmt.Println("\n=== Lag Quantization ===")
	fmt.Printf("%-8s %-7s %-4s %s\n", "Lag", "Offset", "Row", "Realized delay")
	for i := range filter.FracSteps + 1 {
		lag := lagTableBase + float64(i)*lagTableStep
		offset, row := engine.LagPosition(lag)
		// The window starts offset samples back and its centroid sits
		// FractionalDelay past the center tap. The damper delays the
		// prediction by half its length.
		realized := float64(offset) - float64(filter.InterpOrder/2) - filter.FractionalDelay(row) + float64(filter.DampOrder/2)
		fmt.Printf("%-8.3f %-7d %-4d %.4f\n", lag, offset, row, realized)
	}
}
