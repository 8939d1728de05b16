package pld

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/mat"
)

func sweepTestData(n int) (phase []float64, phat *mat.Dense, phot, photerr, p0 []float64) {
	truth := EclipseParams{
		Midpoint: 0.5,
		Width:    0.1,
		Depth:    0.01,
		T12:      0.01,
		T34:      0.01,
		FluxNorm: 1.0,
	}

	phase = make([]float64, n)
	for i := range phase {
		phase[i] = 0.4 + 0.2*float64(i)/float64(n-1)
	}
	ecl := Eclipse(phase, truth)

	// Two pixels splitting the flux evenly: unit weights make the pixel
	// term a flat baseline of 1.
	phat = mat.NewDense(n, 2, nil)
	phot = make([]float64, n)
	photerr = make([]float64, n)
	for i := 0; i < n; i++ {
		phat.Set(i, 0, 0.5)
		phat.Set(i, 1, 0.5)
		phot[i] = ecl[i]
		photerr[i] = 0.001
	}

	p0 = []float64{1, 1,
		truth.Midpoint, truth.Width, truth.Depth, truth.T12, truth.T34, truth.FluxNorm,
		0, 0, 0}
	return phase, phat, phot, photerr, p0
}

func TestOptimizeBinWidthNoiseFreeFit(t *testing.T) {
	phase, phat, phot, photerr, p0 := sweepTestData(400)

	widths := []float64{0.005, 0.01}
	best, results, err := OptimizeBinWidth(widths, phase, phat, phot, photerr, p0, CurveFit)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// The photometry is generated exactly from the model, so every width
	// must fit down to numerical noise.
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Less(t, r.RedChiSq, 1e-6)
	}
	assert.Less(t, best.RedChiSq, 1e-6)
	require.Len(t, best.Params, len(p0))
	for _, r := range results {
		assert.LessOrEqual(t, best.RedChiSq, r.RedChiSq)
	}

	// The eclipse parameters come back at their true values.
	assert.InDelta(t, 0.5, best.Params[2], 1e-2)  // midpoint
	assert.InDelta(t, 0.1, best.Params[3], 1e-2)  // width
	assert.InDelta(t, 0.01, best.Params[4], 1e-3) // depth
}

func TestOptimizeBinWidthSkipsFailedFit(t *testing.T) {
	phase, phat, phot, photerr, p0 := sweepTestData(100)

	calls := 0
	solve := func(model ModelFunc, design *mat.Dense, obs, start, sigma []float64) ([]float64, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("singular")
		}
		return start, nil
	}

	widths := []float64{0.005, 0.01}
	best, results, err := OptimizeBinWidth(widths, phase, phat, phot, photerr, p0, solve)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 0.01, best.Width)
}

func TestOptimizeBinWidthAllFail(t *testing.T) {
	phase, phat, phot, photerr, p0 := sweepTestData(100)

	solve := func(model ModelFunc, design *mat.Dense, obs, start, sigma []float64) ([]float64, error) {
		return nil, ErrFitDidNotConverge
	}

	_, results, err := OptimizeBinWidth([]float64{0.005, 0.01}, phase, phat, phot, photerr, p0, solve)
	require.Error(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, ErrFitDidNotConverge)
	}
}

func TestOptimizeBinWidthFirstSeenWinsTies(t *testing.T) {
	phase, phat, phot, photerr, p0 := sweepTestData(100)

	// A solver that always returns the same parameters gives every width
	// a comparable fit; the first strictly better result must win, so
	// with identical results the earliest width is kept.
	solve := func(model ModelFunc, design *mat.Dense, obs, start, sigma []float64) ([]float64, error) {
		out := make([]float64, len(start))
		copy(out, start)
		return out, nil
	}

	// The same width listed twice fits identically both times.
	best, _, err := OptimizeBinWidth([]float64{0.01, 0.01}, phase, phat, phot, photerr, p0, solve)
	require.NoError(t, err)
	assert.Equal(t, 0.01, best.Width)
}
