package pld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/mat"
)

func TestChiSquared(t *testing.T) {
	obs := []float64{1.0, 2.0, 3.0}
	model := []float64{1.0, 1.0, 5.0}

	assert.InDelta(t, 5.0, ChiSquared(obs, model, nil), 1e-12)

	sigma := []float64{1.0, 0.5, 2.0}
	assert.InDelta(t, 0.0+4.0+1.0, ChiSquared(obs, model, sigma), 1e-12)
}

func TestReducedChiSquared(t *testing.T) {
	obs := []float64{1, 2, 3, 4, 5}
	model := []float64{1, 2, 3, 4, 6}

	assert.InDelta(t, 1.0/5.0, ReducedChiSquared(obs, model, nil), 1e-12)
}

func TestCurveFitRecoversLine(t *testing.T) {
	// A two-parameter straight line through exact data. The model reads
	// its abscissa from the last design column, like ZenDesign does.
	lineModel := func(par []float64, design *mat.Dense) []float64 {
		rows, cols := design.Dims()
		y := make([]float64, rows)
		for i := 0; i < rows; i++ {
			x := design.At(i, cols-1)
			y[i] = par[0] + par[1]*x
		}
		return y
	}

	n := 50
	design := mat.NewDense(n, 1, nil)
	obs := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n)
		design.Set(i, 0, x)
		obs[i] = 2.0 + 3.0*x
	}

	fit, err := CurveFit(lineModel, design, obs, []float64{1.0, 1.0}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, fit[0], 1e-3)
	assert.InDelta(t, 3.0, fit[1], 1e-3)
}
