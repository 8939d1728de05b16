// Package mcmc provides a Metropolis random-walk sampler over the free
// parameters of a pld model. It is deliberately plain: Gaussian proposals
// with per-parameter widths taken from the step table, a chi-squared
// likelihood, and a fixed burn-in that is discarded from the returned chain.
package mcmc

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/bob-anderson-ok/eclipsePLD/pld"
	"gonum.org/v1/gonum/mat"
)

// Config controls a sampling run. Seed makes runs repeatable; NumSamples
// counts post-burn-in chain entries.
type Config struct {
	NumSamples int
	BurnIn     int
	Seed       int64
}

// Driver is a Metropolis sampler satisfying pld.Sampler.
type Driver struct {
	cfg Config
}

// New returns a Driver with the given configuration.
func New(cfg Config) *Driver {
	return &Driver{cfg: cfg}
}

// Sample walks the free parameters starting from their prior values. Each
// step perturbs every free parameter by a Gaussian draw scaled by its step
// size and accepts the move with probability exp(-(chi2' - chi2)/2). The
// returned chain holds the accepted (or repeated) reduced vectors after
// burn-in, and best is the lowest chi-squared reduced vector seen anywhere
// in the walk.
func (d *Driver) Sample(obs, sigma []float64, model pld.ModelFunc, design *mat.Dense,
	prior []float64, steps []pld.ParamStep) (chain [][]float64, best []float64, err error) {

	if d.cfg.NumSamples <= 0 {
		return nil, nil, fmt.Errorf("invalid sample count %d", d.cfg.NumSamples)
	}
	if d.cfg.BurnIn < 0 {
		return nil, nil, fmt.Errorf("invalid burn-in %d", d.cfg.BurnIn)
	}
	nfree := pld.CountFree(steps)
	if nfree == 0 {
		return nil, nil, errors.New("no free parameters to sample")
	}

	sizes := make([]float64, 0, nfree)
	for _, i := range pld.FreeIndices(steps) {
		sizes = append(sizes, steps[i].Size)
	}

	current, err := pld.ReduceParams(prior, steps)
	if err != nil {
		return nil, nil, err
	}

	chi2 := func(reduced []float64) (float64, error) {
		full, err := pld.ExpandParams(reduced, steps, prior)
		if err != nil {
			return 0, err
		}
		return pld.ChiSquared(obs, model(full, design), sigma), nil
	}

	currentChi2, err := chi2(current)
	if err != nil {
		return nil, nil, err
	}
	best = append([]float64(nil), current...)
	bestChi2 := currentChi2

	rng := rand.New(rand.NewSource(d.cfg.Seed))
	proposal := make([]float64, nfree)
	total := d.cfg.BurnIn + d.cfg.NumSamples
	chain = make([][]float64, 0, d.cfg.NumSamples)

	for step := 0; step < total; step++ {
		for i := range proposal {
			proposal[i] = current[i] + sizes[i]*rng.NormFloat64()
		}
		proposalChi2, err := chi2(proposal)
		if err != nil {
			return nil, nil, err
		}

		if proposalChi2 <= currentChi2 || rng.Float64() < math.Exp(-(proposalChi2-currentChi2)/2) {
			copy(current, proposal)
			currentChi2 = proposalChi2
		}
		if currentChi2 < bestChi2 {
			bestChi2 = currentChi2
			copy(best, current)
		}
		if step >= d.cfg.BurnIn {
			chain = append(chain, append([]float64(nil), current...))
		}
	}

	return chain, best, nil
}
