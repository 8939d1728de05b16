package pld

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// A Pixel addresses one detector pixel in a frame, row-major.
type Pixel struct {
	Row int
	Col int
}

// ErrPixelOutOfRange reports a pixel coordinate that falls outside a frame.
var ErrPixelOutOfRange = errors.New("pixel coordinate outside frame bounds")

// ExtractFlux reads the time series of the given pixels out of a stack of
// frames. It returns three nframes-by-npix matrices: p holds the raw flux of
// each pixel, phat holds each frame's fluxes normalized so every row sums to
// one, and dP holds phat with each column's mean subtracted. Every requested
// pixel must lie inside every frame.
func ExtractFlux(frames [][][]float64, pixels []Pixel) (p, phat, dP *mat.Dense, err error) {
	if len(frames) == 0 {
		return nil, nil, nil, errors.New("no frames to extract from")
	}
	if len(pixels) == 0 {
		return nil, nil, nil, errors.New("no pixels selected")
	}

	nframes := len(frames)
	npix := len(pixels)
	p = mat.NewDense(nframes, npix, nil)
	for i, frame := range frames {
		for j, px := range pixels {
			if px.Row < 0 || px.Row >= len(frame) || px.Col < 0 || px.Col >= len(frame[px.Row]) {
				return nil, nil, nil, fmt.Errorf("%w: pixel (%d,%d) in frame %d of %d rows",
					ErrPixelOutOfRange, px.Row, px.Col, i, len(frame))
			}
			p.Set(i, j, frame[px.Row][px.Col])
		}
	}

	phat = mat.NewDense(nframes, npix, nil)
	for i := 0; i < nframes; i++ {
		total := floats.Sum(p.RawRowView(i))
		for j := 0; j < npix; j++ {
			phat.Set(i, j, p.At(i, j)/total)
		}
	}

	dP = mat.NewDense(nframes, npix, nil)
	col := make([]float64, nframes)
	for j := 0; j < npix; j++ {
		mat.Col(col, j, phat)
		mean := stat.Mean(col, nil)
		for i := 0; i < nframes; i++ {
			dP.Set(i, j, phat.At(i, j)-mean)
		}
	}

	return p, phat, dP, nil
}

// FilterGood keeps only the rows of m whose good flag is set. An all-false
// mask yields an empty matrix.
func FilterGood(m *mat.Dense, good []bool) *mat.Dense {
	_, cols := m.Dims()
	kept := 0
	for _, g := range good {
		if g {
			kept++
		}
	}
	if kept == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(kept, cols, nil)
	r := 0
	for i, g := range good {
		if !g {
			continue
		}
		for j := 0; j < cols; j++ {
			out.Set(r, j, m.At(i, j))
		}
		r++
	}
	return out
}

// FilterGoodVec keeps only the entries of v whose good flag is set.
func FilterGoodVec(v []float64, good []bool) []float64 {
	out := make([]float64, 0, len(v))
	for i, g := range good {
		if g {
			out = append(out, v[i])
		}
	}
	return out
}
