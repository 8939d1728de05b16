package main

import (
	"sort"

	json "github.com/KevinWang15/go-json5"
)

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// json(5) arrays arrive as []interface{}; these helpers coerce them to the
// concrete slice types the event structure wants.
func toFloat64Slice(v interface{}) ([]float64, bool) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]float64, len(raw))
	for i, item := range raw {
		f, ok := item.(float64)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func toStringSlice(v interface{}) ([]string, bool) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

// photometryFile mirrors the json5 photometry export: per-frame phase, good
// flags (1 = usable), aperture photometry and its uncertainty, plus the mean
// target center in detector coordinates.
type photometryFile struct {
	Phase   []float64 `json:"phase"`
	Good    []float64 `json:"good"`
	Aplev   []float64 `json:"aplev"`
	Aperr   []float64 `json:"aperr"`
	XCenter float64   `json:"x_center"`
	YCenter float64   `json:"y_center"`
}

func parsePhotometryFile(data []byte) (photometryFile, error) {
	var phot photometryFile
	err := json.Unmarshal(data, &phot)
	return phot, err
}

func validateJsonFileAndFillEvent(jsonTable map[string]interface{}, event *EclipseEvent) (string, bool) {
	msg := "No problem found in json file" // Initialize msg to presumed success.

	showInput, ok := getLeafValue(jsonTable, "show_input_bool")
	if !ok {
		event.ShowInput = false // default to false if this field is missing
	} else {
		event.ShowInput, ok = showInput.(bool)
		if !ok {
			msg = "show_input_bool: is not a bool"
			return msg, false
		}
	}

	title, ok := getLeafValue(jsonTable, "title")
	if ok {
		event.Title, ok = title.(string)
		if !ok {
			msg = "title: is not a string"
			return msg, false
		}
	}

	framesPath, ok := getLeafValue(jsonTable, "path_to_frames_fits")
	if !ok {
		msg = "path_to_frames_fits: not found"
		return msg, false
	}
	event.PathToFramesFits, ok = framesPath.(string)
	if !ok {
		msg = "path_to_frames_fits: is not a string"
		return msg, false
	}

	photPath, ok := getLeafValue(jsonTable, "path_to_photometry_file")
	if !ok {
		msg = "path_to_photometry_file: not found"
		return msg, false
	}
	event.PathToPhotometryFile, ok = photPath.(string)
	if !ok {
		msg = "path_to_photometry_file: is not a string"
		return msg, false
	}

	numPixels, ok := getLeafValue(jsonTable, "num_pixels")
	if !ok {
		msg = "num_pixels: not found"
		return msg, false
	}
	npix, ok := numPixels.(float64)
	if !ok {
		msg = "num_pixels: is not a number"
		return msg, false
	}
	event.NumPixels = int(npix)

	boxSize, ok := getLeafValue(jsonTable, "box_size_pixels")
	if !ok {
		event.BoxSizePixels = 9 // Default box around the target center
	} else {
		size, ok := boxSize.(float64)
		if !ok {
			msg = "box_size_pixels: is not a number"
			return msg, false
		}
		event.BoxSizePixels = int(size)
	}

	period, ok := getLeafValue(jsonTable, "period_days")
	if !ok {
		msg = "period_days: not found"
		return msg, false
	}
	event.PeriodDays, ok = period.(float64)
	if !ok {
		msg = "period_days: is not a float64"
		return msg, false
	}

	// Candidate bin widths may be given as an explicit list; otherwise a
	// start/end/step range in seconds is used.
	widths, ok := getLeafValue(jsonTable, "bin_widths_secs")
	if ok {
		event.BinWidthsSecs, ok = toFloat64Slice(widths)
		if !ok {
			msg = "bin_widths_secs: is not an array of numbers"
			return msg, false
		}
		if len(event.BinWidthsSecs) == 0 {
			msg = "bin_widths_secs: must not be empty"
			return msg, false
		}
		// The sweep scans widths in increasing order; ties favor the
		// finer width.
		sort.Float64s(event.BinWidthsSecs)
	} else {
		event.BinWidthStartSecs = 4.0
		event.BinWidthEndSecs = 128.0
		event.BinWidthStepSecs = 4.0

		startSecs, ok := getLeafValue(jsonTable, "bin_width_start_secs")
		if ok {
			event.BinWidthStartSecs, ok = startSecs.(float64)
			if !ok {
				msg = "bin_width_start_secs: is not a float64"
				return msg, false
			}
		}
		endSecs, ok := getLeafValue(jsonTable, "bin_width_end_secs")
		if ok {
			event.BinWidthEndSecs, ok = endSecs.(float64)
			if !ok {
				msg = "bin_width_end_secs: is not a float64"
				return msg, false
			}
		}
		stepSecs, ok := getLeafValue(jsonTable, "bin_width_step_secs")
		if ok {
			event.BinWidthStepSecs, ok = stepSecs.(float64)
			if !ok {
				msg = "bin_width_step_secs: is not a float64"
				return msg, false
			}
		}
		if event.BinWidthStartSecs <= 0 || event.BinWidthStepSecs <= 0 ||
			event.BinWidthEndSecs < event.BinWidthStartSecs {
			msg = "bin width range: start and step must be positive and end must not precede start"
			return msg, false
		}
		for w := event.BinWidthStartSecs; w <= event.BinWidthEndSecs; w += event.BinWidthStepSecs {
			event.BinWidthsSecs = append(event.BinWidthsSecs, w)
		}
	}

	params, ok := getLeafValue(jsonTable, "params")
	if !ok {
		msg = "params: not found"
		return msg, false
	}
	event.Params, ok = toFloat64Slice(params)
	if !ok {
		msg = "params: is not an array of numbers"
		return msg, false
	}

	stepSize, ok := getLeafValue(jsonTable, "stepsize")
	if !ok {
		msg = "stepsize: not found"
		return msg, false
	}
	event.StepSizes, ok = toFloat64Slice(stepSize)
	if !ok {
		msg = "stepsize: is not an array of numbers"
		return msg, false
	}

	parName, ok := getLeafValue(jsonTable, "parname")
	if !ok {
		msg = "parname: not found"
		return msg, false
	}
	event.ParNames, ok = toStringSlice(parName)
	if !ok {
		msg = "parname: is not an array of strings"
		return msg, false
	}

	if len(event.StepSizes) != len(event.Params) {
		msg = "stepsize: length does not match params"
		return msg, false
	}
	if len(event.ParNames) != len(event.Params) {
		msg = "parname: length does not match params"
		return msg, false
	}

	// The mcmc group is optional; defaults give a short exploratory run.
	event.MCMCNumSamples = 10000
	event.MCMCBurnIn = 1000
	event.MCMCSeed = 1

	_, ok = getLeafValue(jsonTable, "mcmc")
	if ok {
		v, ok := getLeafValue(jsonTable, "mcmc", "num_samples")
		if ok {
			value, ok := v.(float64)
			if !ok {
				msg = "mcmc.num_samples: is not a number"
				return msg, false
			}
			event.MCMCNumSamples = int(value)
		}

		v, ok = getLeafValue(jsonTable, "mcmc", "burn_in")
		if ok {
			value, ok := v.(float64)
			if !ok {
				msg = "mcmc.burn_in: is not a number"
				return msg, false
			}
			event.MCMCBurnIn = int(value)
		}

		v, ok = getLeafValue(jsonTable, "mcmc", "seed")
		if ok {
			value, ok := v.(float64)
			if !ok {
				msg = "mcmc.seed: is not a number"
				return msg, false
			}
			event.MCMCSeed = int64(value)
		}
	}

	return msg, true
}
