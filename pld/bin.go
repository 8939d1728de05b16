package pld

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BinData averages y into bins of the given width along x and returns the
// per-bin mean x and mean y. Bin edges start at min(x) and advance by width;
// values at or beyond the last edge fall into the last bin, and bins that
// receive no samples are dropped. A width spanning the whole x range yields a
// single bin.
func BinData(x, y []float64, width float64) (bx, by []float64) {
	bx, by, _ = binAccumulate(x, y, nil, width)
	return bx, by
}

// BinDataErr is BinData with per-sample uncertainties. The returned berr is
// the propagated uncertainty of each bin mean, sqrt(sum(yerr^2))/n.
func BinDataErr(x, y, yerr []float64, width float64) (bx, by, berr []float64) {
	return binAccumulate(x, y, yerr, width)
}

func binAccumulate(x, y, yerr []float64, width float64) (bx, by, berr []float64) {
	edges := binEdges(x, width)
	nb := len(edges)

	counts := make([]int, nb)
	sumX := make([]float64, nb)
	sumY := make([]float64, nb)
	sumErrSq := make([]float64, nb)

	for i, xi := range x {
		k := binIndex(edges, xi)
		counts[k]++
		sumX[k] += xi
		sumY[k] += y[i]
		if yerr != nil {
			sumErrSq[k] += yerr[i] * yerr[i]
		}
	}

	for k := 0; k < nb; k++ {
		if counts[k] == 0 {
			continue
		}
		n := float64(counts[k])
		bx = append(bx, sumX[k]/n)
		by = append(by, sumY[k]/n)
		if yerr != nil {
			berr = append(berr, math.Sqrt(sumErrSq[k])/n)
		}
	}
	return bx, by, berr
}

// binEdges returns the left edge of each bin: min(x), min(x)+width, ...,
// stopping short of max(x).
func binEdges(x []float64, width float64) []float64 {
	lo := floats.Min(x)
	hi := floats.Max(x)
	var edges []float64
	for k := 0; ; k++ {
		e := lo + float64(k)*width
		if e >= hi {
			break
		}
		edges = append(edges, e)
	}
	if len(edges) == 0 {
		edges = []float64{lo}
	}
	return edges
}

// binIndex finds k such that edges[k] <= xi < edges[k+1], with the last bin
// open on the right.
func binIndex(edges []float64, xi float64) int {
	k := sort.SearchFloat64s(edges, xi)
	if k == len(edges) || edges[k] != xi {
		k--
	}
	if k < 0 {
		k = 0
	}
	if k > len(edges)-1 {
		k = len(edges) - 1
	}
	return k
}

// BinnedSet holds one photometric series binned to a common set of phase
// bins: the binned pixel fractions, photometry and its uncertainty all share
// the bin occupancy determined by Phase.
type BinnedSet struct {
	Phase   []float64
	Phat    *mat.Dense
	Phot    []float64
	PhotErr []float64
}

// BinAll bins the photometry, its uncertainty, and every pixel-fraction
// column of phat against phase with the given bin width. Because bin
// occupancy depends only on phase, all binned series come back the same
// length.
func BinAll(phase []float64, phat *mat.Dense, phot, photerr []float64, width float64) BinnedSet {
	binPhase, binPhot, binErr := BinDataErr(phase, phot, photerr, width)

	_, npix := phat.Dims()
	binPhat := mat.NewDense(len(binPhase), npix, nil)
	col := make([]float64, len(phase))
	for j := 0; j < npix; j++ {
		mat.Col(col, j, phat)
		_, binCol := BinData(phase, col, width)
		binPhat.SetCol(j, binCol)
	}

	return BinnedSet{
		Phase:   binPhase,
		Phat:    binPhat,
		Phot:    binPhot,
		PhotErr: binErr,
	}
}
