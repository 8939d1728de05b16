package pld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/mat"
)

func TestZenPixelWeightsOnly(t *testing.T) {
	// With no eclipse and no ramp the model is just the weighted sum of
	// the pixel fractions.
	x := []float64{0.1, 0.2, 0.3}
	phat := mat.NewDense(3, 2, []float64{
		0.6, 0.4,
		0.5, 0.5,
		0.7, 0.3,
	})
	par := []float64{2.0, 1.0, 0.5, 0.1, 0, 0.01, 0.01, 1.0, 0, 0, 0}

	y := Zen(par, x, phat, 2)
	require.Len(t, y, 3)
	assert.InDelta(t, 2.0*0.6+1.0*0.4, y[0], 1e-12)
	assert.InDelta(t, 2.0*0.5+1.0*0.5, y[1], 1e-12)
	assert.InDelta(t, 2.0*0.7+1.0*0.3, y[2], 1e-12)
}

func TestZenEclipseContribution(t *testing.T) {
	// One pixel with weight 1 gives a flat baseline of 1, so inside the
	// eclipse the model reads 1 - fluxnorm*depth.
	x := []float64{0.5}
	phat := mat.NewDense(1, 1, []float64{1.0})
	par := []float64{1.0, 0.5, 0.1, 0.004, 0.01, 0.01, 2.0, 0, 0, 0}

	y := Zen(par, x, phat, 1)
	assert.InDelta(t, 1.0-2.0*0.004, y[0], 1e-12)
}

func TestZenRamp(t *testing.T) {
	x := []float64{0.0, 1.0, 2.0}
	phat := mat.NewDense(3, 1, []float64{1, 1, 1})
	// Zero pixel weight and depth; only the quadratic ramp remains.
	par := []float64{0.0, 0.5, 0.1, 0, 0.01, 0.01, 1.0, 1.0, 2.0, 3.0}

	y := Zen(par, x, phat, 1)
	assert.InDelta(t, 1.0, y[0], 1e-12)
	assert.InDelta(t, 1.0+2.0+3.0, y[1], 1e-12)
	assert.InDelta(t, 1.0+4.0+12.0, y[2], 1e-12)
}

func TestPackDesignAndZenDesign(t *testing.T) {
	x := []float64{0.1, 0.2, 0.3, 0.4}
	phat := mat.NewDense(4, 2, []float64{
		0.6, 0.4,
		0.5, 0.5,
		0.7, 0.3,
		0.2, 0.8,
	})

	design := PackDesign(phat, x)
	rows, cols := design.Dims()
	require.Equal(t, 4, rows)
	require.Equal(t, 3, cols)
	for i := 0; i < rows; i++ {
		assert.Equal(t, x[i], design.At(i, 2))
	}

	par := []float64{1.5, 0.5, 0.5, 0.1, 0, 0.01, 0.01, 1.0, 0, 0, 0}
	fromDesign := ZenDesign(par, design)
	direct := Zen(par, x, phat, 2)
	assert.Equal(t, direct, fromDesign)
}

func TestNumParams(t *testing.T) {
	assert.Equal(t, 12, NumParams(3))
	assert.Equal(t, 18, NumParams(9))
}
