package gainsearch

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-pitchfilter/internal/testutil"
)

func randomTrials(rng *rand.Rand, n, length int) [][]float64 {
	trials := make([][]float64, n)
	for j := range trials {
		trials[j] = make([]float64, length)
		for i := range trials[j] {
			trials[j][i] = rng.NormFloat64()
		}
	}
	return trials
}

// combine returns -Σ δⱼ tⱼ, the output that the correction δ cancels.
func combine(trials [][]float64, delta []float64) []float64 {
	out := make([]float64, len(trials[0]))
	for j, tr := range trials {
		for i, v := range tr {
			out[i] -= delta[j] * v
		}
	}
	return out
}

// TestRefine_RecoversCorrection verifies an output that is an exact linear
// combination of the trials yields that combination as correction.
func TestRefine_RecoversCorrection(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	trials := randomTrials(rng, 4, 264)
	delta := []float64{0.1, 0.05, -0.02, 0.03}
	gains := []float64{0.2, 0.2, 0.2, 0.2}

	refined, err := Refine(combine(trials, delta), trials, gains)
	require.NoError(t, err)
	for j := range gains {
		assert.InDelta(t, gains[j]+delta[j], refined[j], testutil.DefaultTolerance, "gain %d", j)
	}
	assert.Equal(t, []float64{0.2, 0.2, 0.2, 0.2}, gains, "input gains must not change")
}

func TestRefine_ClampsToGainRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	trials := randomTrials(rng, 4, 264)
	delta := []float64{2, -2, 0.1, 0}
	gains := []float64{0.3, 0.3, 0.3, 0.3}

	refined, err := Refine(combine(trials, delta), trials, gains)
	require.NoError(t, err)
	assert.InDelta(t, MaxGain, refined[0], 0)
	assert.InDelta(t, MinGain, refined[1], 0)
	assert.InDelta(t, 0.4, refined[2], 1e-9)
	assert.InDelta(t, 0.3, refined[3], 1e-9)
}

func TestRefine_SilentFrame(t *testing.T) {
	trials := make([][]float64, 4)
	for j := range trials {
		trials[j] = make([]float64, 264)
	}
	refined, err := Refine(make([]float64, 264), trials, []float64{0.1, 0.5, -0.1, 0.2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, MaxGain, MinGain, 0.2}, refined)
}

func TestRefine_SingularGram(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	trials := randomTrials(rng, 4, 264)
	clear(trials[0])

	refined, err := Refine(trials[1], trials, []float64{0.1, 0.2, 0.3, 0.4})
	require.ErrorIs(t, err, ErrSolve)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, refined)
}

func TestRefine_ShapeMismatch(t *testing.T) {
	trials := randomTrials(rand.New(rand.NewPCG(7, 8)), 3, 10)

	_, err := Refine(make([]float64, 10), trials, []float64{0, 0, 0, 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 trial signals for 4 gains")

	_, err = Refine(make([]float64, 12), trials, []float64{0, 0, 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trial 0 has 10 samples")
}
