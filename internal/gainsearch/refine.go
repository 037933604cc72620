// Package gainsearch refines pitch gains from the differential-gain outputs
// of the gain-search pre-filter.
//
// Trial output j is the derivative of the filter output with respect to the
// gain of sub-frame j. To first order the output for corrected gains g+δ is
// y + Σ δⱼ tⱼ, so the correction that minimizes the output energy solves
// the normal equations G δ = -b with G the Gram matrix of the trials and
// bⱼ = ⟨tⱼ, y⟩.
package gainsearch

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-pitchfilter/internal/mathutil"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Gain limits of refined pitch gains.
const (
	MinGain = 0.0
	MaxGain = 0.45
)

// ErrSolve indicates the trial outputs do not determine a gain correction.
var ErrSolve = errors.New("gain search: normal equations not positive definite")

// Refine returns gains corrected to minimize the energy of output. trials
// holds one derivative signal per gain and every signal must be as long as
// output. A frame whose trials are all zero (for example silence) returns
// the gains clamped but otherwise unchanged.
func Refine(output []float64, trials [][]float64, gains []float64) ([]float64, error) {
	n := len(gains)
	if len(trials) != n {
		return nil, fmt.Errorf("gain search: %d trial signals for %d gains", len(trials), n)
	}
	for j, tr := range trials {
		if len(tr) != len(output) {
			return nil, fmt.Errorf("gain search: trial %d has %d samples, output has %d", j, len(tr), len(output))
		}
	}

	refined := make([]float64, n)
	for j, g := range gains {
		refined[j] = mathutil.Clamp(g, MinGain, MaxGain)
	}

	gram := mat.NewSymDense(n, nil)
	rhs := mat.NewVecDense(n, nil)
	var trace float64
	for j := range n {
		for k := j; k < n; k++ {
			gram.SetSym(j, k, floats.Dot(trials[j], trials[k]))
		}
		trace += gram.At(j, j)
		rhs.SetVec(j, -floats.Dot(trials[j], output))
	}
	if trace == 0 {
		return refined, nil
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(gram); !ok {
		return refined, ErrSolve
	}

	var delta mat.VecDense
	if err := chol.SolveVecTo(&delta, rhs); err != nil {
		return refined, fmt.Errorf("%w: %v", ErrSolve, err)
	}

	for j, g := range gains {
		refined[j] = mathutil.Clamp(g+delta.AtVec(j), MinGain, MaxGain)
	}
	return refined, nil
}
