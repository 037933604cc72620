package pitchfilter

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-pitchfilter/internal/gainsearch"
)

// RefineGains returns gains corrected to minimize the energy of a
// gain-search output. output and trials come from a PreFilterGainSearch
// call made with gains. The corrected gains are clamped to [0, MaxGain].
// A silent frame returns the clamped input gains.
func RefineGains(output []float64, trials *TrialOutputs, gains [SubFrames]float64) ([SubFrames]float64, error) {
	var refined [SubFrames]float64

	if trials == nil {
		return refined, fmt.Errorf("%w: trial outputs are nil", ErrNilState)
	}
	if len(output) != ExtendedLength {
		return refined, fmt.Errorf("%w: output has %d samples, want %d", ErrInvalidBufferSize, len(output), ExtendedLength)
	}

	signals := make([][]float64, SubFrames)
	for j := range trials {
		signals[j] = trials[j][:]
	}

	result, err := gainsearch.Refine(output, signals, gains[:])
	if err != nil {
		if errors.Is(err, gainsearch.ErrSolve) {
			return refined, fmt.Errorf("%w: %w", ErrGainSolve, err)
		}
		return refined, err
	}

	copy(refined[:], result)
	return refined, nil
}
