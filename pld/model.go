// Package pld implements pixel-level decorrelation of photometric time
// series: raw pixel fluxes are reduced to normalized pixel fractions whose
// weighted sum absorbs pointing-induced systematics, leaving an eclipse
// shape and a smooth ramp to carry the astrophysics. The package supplies
// the flux extraction, the eclipse and composite models, data binning, the
// bin-width sweep, and the bookkeeping that maps between full and reduced
// parameter vectors.
package pld

import "gonum.org/v1/gonum/mat"

// Zen evaluates the composite decorrelation model at each phase value in x.
// The parameter vector is laid out as
//
//	[c_0 ... c_{npix-1}, midpoint, width, depth, t12, t34, fluxnorm, a0, a1, a2]
//
// where the c_j weight the pixel-fraction columns of phat, the middle six
// entries are the eclipse parameters, and a0..a2 form a quadratic time ramp.
// The eclipse enters as fluxnorm*(E(x)-1), so it contributes nothing outside
// the event no matter what the pixel weights sum to.
func Zen(par []float64, x []float64, phat mat.Matrix, npix int) []float64 {
	ep := EclipseParams{
		Midpoint: par[npix],
		Width:    par[npix+1],
		Depth:    par[npix+2],
		T12:      par[npix+3],
		T34:      par[npix+4],
		FluxNorm: par[npix+5],
	}
	ecl := Eclipse(x, ep)

	a0 := par[len(par)-3]
	a1 := par[len(par)-2]
	a2 := par[len(par)-1]

	y := make([]float64, len(x))
	for i := range y {
		sum := 0.0
		for j := 0; j < npix; j++ {
			sum += par[j] * phat.At(i, j)
		}
		y[i] = sum + ep.FluxNorm*(ecl[i]-1) + a0 + a1*x[i] + a2*x[i]*x[i]
	}
	return y
}

// ModelFunc evaluates a model on a packed design matrix, returning one value
// per design row. The fitter and sampler only see this shape.
type ModelFunc func(par []float64, design *mat.Dense) []float64

// ZenDesign adapts Zen to the ModelFunc shape: the design matrix carries the
// pixel-fraction columns with phase packed as the final column.
func ZenDesign(par []float64, design *mat.Dense) []float64 {
	rows, cols := design.Dims()
	npix := cols - 1
	x := make([]float64, rows)
	mat.Col(x, npix, design)
	return Zen(par, x, design.Slice(0, rows, 0, npix), npix)
}

// PackDesign builds the design matrix ZenDesign expects: the columns of phat
// followed by x as the last column.
func PackDesign(phat *mat.Dense, x []float64) *mat.Dense {
	rows, npix := phat.Dims()
	d := mat.NewDense(rows, npix+1, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < npix; j++ {
			d.Set(i, j, phat.At(i, j))
		}
		d.Set(i, npix, x[i])
	}
	return d
}

// NumParams returns the length of the full parameter vector for a model with
// npix pixel weights.
func NumParams(npix int) int { return npix + 9 }

// A Sampler explores the posterior of the free model parameters. It returns
// the chain of reduced parameter vectors it visited and the best (lowest
// chi-squared) reduced vector found. The prior supplies values for fixed
// parameters and the starting point for free ones.
type Sampler interface {
	Sample(obs, sigma []float64, model ModelFunc, design *mat.Dense,
		prior []float64, steps []ParamStep) (chain [][]float64, best []float64, err error)
}
