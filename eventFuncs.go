package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/astrogo/fitsio"
	"github.com/bob-anderson-ok/eclipsePLD/pld"
)

// loadFrameCube reads the primary HDU of a FITS file as a stack of frames,
// frames[k][row][col]. A 3-axis image is taken as (x, y, time); a 4-axis
// image keeps only the first volume of the slowest axis, which is how
// multi-channel exports arrive.
func loadFrameCube(path string) (frames [][][]float64, err error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	f, err := fitsio.Open(r)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	primaryHDU := f.HDU(0)
	img, ok := primaryHDU.(fitsio.Image)
	if !ok {
		return nil, fmt.Errorf("primary HDU of %q is not an image", path)
	}

	hdr := img.Header()
	axes := hdr.Axes()
	if len(axes) != 3 && len(axes) != 4 {
		return nil, fmt.Errorf("expected a 3- or 4-axis image in %q, got %d axes", path, len(axes))
	}
	ncols := axes[0]
	nrows := axes[1]
	nframes := axes[2]

	data, err := readImageAsFloat64(img, hdr.Bitpix())
	if err != nil {
		return nil, fmt.Errorf("reading image data from %q: %w", path, err)
	}
	if len(data) < ncols*nrows*nframes {
		return nil, fmt.Errorf("image data in %q is short: %d values for %dx%dx%d",
			path, len(data), ncols, nrows, nframes)
	}

	frames = make([][][]float64, nframes)
	for k := 0; k < nframes; k++ {
		frame := make([][]float64, nrows)
		for i := 0; i < nrows; i++ {
			row := make([]float64, ncols)
			base := (k*nrows + i) * ncols
			copy(row, data[base:base+ncols])
			frame[i] = row
		}
		frames[k] = frame
	}
	return frames, nil
}

func readImageAsFloat64(img fitsio.Image, bitpix int) ([]float64, error) {
	switch bitpix {
	case -64:
		var data []float64
		if err := img.Read(&data); err != nil {
			return nil, err
		}
		return data, nil
	case -32:
		var raw []float32
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		data := make([]float64, len(raw))
		for i, v := range raw {
			data[i] = float64(v)
		}
		return data, nil
	case 16:
		var raw []int16
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		data := make([]float64, len(raw))
		for i, v := range raw {
			data[i] = float64(v)
		}
		return data, nil
	case 32:
		var raw []int32
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		data := make([]float64, len(raw))
		for i, v := range raw {
			data[i] = float64(v)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported BITPIX %d", bitpix)
	}
}

// loadPhotometry reads and sanity checks the json5 photometry file.
func loadPhotometry(path string) (photometryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return photometryFile{}, err
	}
	phot, err := parsePhotometryFile(data)
	if err != nil {
		return photometryFile{}, fmt.Errorf("format error in %q: %w", path, err)
	}

	n := len(phot.Phase)
	if n == 0 {
		return photometryFile{}, fmt.Errorf("photometry file %q has no phase entries", path)
	}
	if len(phot.Good) != n || len(phot.Aplev) != n || len(phot.Aperr) != n {
		return photometryFile{}, fmt.Errorf(
			"photometry file %q has mismatched array lengths: phase %d, good %d, aplev %d, aperr %d",
			path, n, len(phot.Good), len(phot.Aplev), len(phot.Aperr))
	}
	return phot, nil
}

// selectBrightestPixels averages the good frames over time and picks the
// npix brightest pixels inside a boxSize-wide box centered on the target,
// brightest first. These are the pixels whose normalized fractions carry the
// pointing signal.
func selectBrightestPixels(frames [][][]float64, good []bool, xCenter, yCenter float64,
	boxSize, npix int) ([]pld.Pixel, error) {

	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames given")
	}
	nrows := len(frames[0])
	ncols := len(frames[0][0])

	half := boxSize / 2
	rowLo := int(yCenter+0.5) - half
	colLo := int(xCenter+0.5) - half
	if rowLo < 0 || colLo < 0 || rowLo+boxSize > nrows || colLo+boxSize > ncols {
		return nil, fmt.Errorf("%dx%d box at center (%0.1f,%0.1f) extends beyond the %dx%d frame",
			boxSize, boxSize, xCenter, yCenter, ncols, nrows)
	}
	if npix > boxSize*boxSize {
		return nil, fmt.Errorf("cannot select %d pixels from a %dx%d box", npix, boxSize, boxSize)
	}

	ngood := 0
	meanFlux := make([]float64, boxSize*boxSize)
	for k, frame := range frames {
		if k < len(good) && !good[k] {
			continue
		}
		ngood++
		for i := 0; i < boxSize; i++ {
			for j := 0; j < boxSize; j++ {
				meanFlux[i*boxSize+j] += frame[rowLo+i][colLo+j]
			}
		}
	}
	if ngood == 0 {
		return nil, fmt.Errorf("no good frames to average")
	}
	for i := range meanFlux {
		meanFlux[i] /= float64(ngood)
	}

	order := make([]int, len(meanFlux))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return meanFlux[order[a]] > meanFlux[order[b]] })

	pixels := make([]pld.Pixel, npix)
	for i := 0; i < npix; i++ {
		idx := order[i]
		pixels[i] = pld.Pixel{Row: rowLo + idx/boxSize, Col: colLo + idx%boxSize}
	}
	return pixels, nil
}
