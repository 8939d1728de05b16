package pld

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// A Solver fits the full parameter vector of model to obs, starting from p0,
// weighting residuals by 1/sigma (sigma may be nil for an unweighted fit).
type Solver func(model ModelFunc, design *mat.Dense, obs, p0, sigma []float64) ([]float64, error)

// ErrFitDidNotConverge reports a least-squares fit that failed to reach a
// minimum.
var ErrFitDidNotConverge = errors.New("fit did not converge")

// CurveFit minimizes the chi-squared of model against obs with a Nelder-Mead
// simplex, which needs no analytic gradient of the eclipse shape.
func CurveFit(model ModelFunc, design *mat.Dense, obs, p0, sigma []float64) ([]float64, error) {
	problem := optimize.Problem{
		Func: func(par []float64) float64 {
			return ChiSquared(obs, model(par, design), sigma)
		},
	}

	start := make([]float64, len(p0))
	copy(start, p0)
	result, err := optimize.Minimize(problem, start, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFitDidNotConverge, err)
	}
	if err := result.Status.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFitDidNotConverge, err)
	}
	return result.X, nil
}

// ChiSquared returns sum(((obs-model)/sigma)^2). A nil sigma gives the
// unweighted sum of squared residuals.
func ChiSquared(obs, model, sigma []float64) float64 {
	sum := 0.0
	for i := range obs {
		r := obs[i] - model[i]
		if sigma != nil {
			r /= sigma[i]
		}
		sum += r * r
	}
	return sum
}

// ReducedChiSquared divides the chi-squared by the number of samples, which
// is the statistic the bin-width sweep ranks fits by.
func ReducedChiSquared(obs, model, sigma []float64) float64 {
	return ChiSquared(obs, model, sigma) / float64(len(obs))
}
