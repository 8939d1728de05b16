package pld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SweepResult records the outcome of fitting at one candidate bin width.
// Err is non-nil when the fit at that width failed; RedChiSq is only
// meaningful when Err is nil.
type SweepResult struct {
	Width    float64
	RedChiSq float64
	Err      error
}

// FitResult is the winning fit of a bin-width sweep.
type FitResult struct {
	Width    float64
	Params   []float64
	RedChiSq float64
}

// OptimizeBinWidth fits the composite model to the binned photometry at each
// candidate width and returns the fit with the lowest reduced chi-squared,
// along with the per-width results. Widths are tried in the order given and
// ties keep the earlier width. A width whose fit fails is recorded and
// skipped; only when every width fails is an error returned.
func OptimizeBinWidth(widths, phase []float64, phat *mat.Dense, phot, photerr, p0 []float64, solve Solver) (FitResult, []SweepResult, error) {
	best := FitResult{RedChiSq: -1}
	results := make([]SweepResult, 0, len(widths))

	for _, w := range widths {
		b := BinAll(phase, phat, phot, photerr, w)
		norm := stat.Mean(b.Phot, nil)
		for i := range b.Phot {
			b.Phot[i] /= norm
			b.PhotErr[i] /= norm
		}

		design := PackDesign(b.Phat, b.Phase)
		params, err := solve(ZenDesign, design, b.Phot, p0, b.PhotErr)
		if err != nil {
			fmt.Printf("bin width %g: fit failed: %v\n", w, err)
			results = append(results, SweepResult{Width: w, Err: err})
			continue
		}

		model := ZenDesign(params, design)
		red := ReducedChiSquared(b.Phot, model, b.PhotErr)
		results = append(results, SweepResult{Width: w, RedChiSq: red})
		fmt.Printf("bin width %g (%d bins): reduced chi-squared %0.6f\n", w, len(b.Phase), red)

		if best.RedChiSq < 0 || red < best.RedChiSq {
			best = FitResult{Width: w, Params: params, RedChiSq: red}
		}
	}

	if best.RedChiSq < 0 {
		return FitResult{}, results, fmt.Errorf("no bin width produced a converged fit (%d tried)", len(widths))
	}
	return best, results, nil
}
