package pld

import (
	"errors"
	"fmt"
)

// StepKind says how a model parameter participates in a fit.
type StepKind int

const (
	// StepFree parameters are varied by the fitter.
	StepFree StepKind = iota
	// StepFixed parameters keep their prior value.
	StepFixed
	// StepTied parameters copy the value of another parameter.
	StepTied
)

// ParamStep is the fit role of one parameter of the full parameter vector.
// Size is the proposal width for a free parameter; TiedTo is the full-vector
// index a tied parameter copies from.
type ParamStep struct {
	Kind   StepKind
	Size   float64
	TiedTo int
}

// ErrParameterCountMismatch reports a reduced parameter vector whose length
// does not match the number of free entries in the step table.
var ErrParameterCountMismatch = errors.New("reduced parameter count does not match free step count")

// ParseStepSizes converts a numeric step-size vector into step descriptors:
// a positive entry is a free parameter with that proposal width, zero holds
// the parameter fixed, and a negative entry -n ties the parameter to full
// index n-1.
func ParseStepSizes(stepsize []float64) ([]ParamStep, error) {
	steps := make([]ParamStep, len(stepsize))
	for i, s := range stepsize {
		switch {
		case s > 0:
			steps[i] = ParamStep{Kind: StepFree, Size: s}
		case s == 0:
			steps[i] = ParamStep{Kind: StepFixed}
		default:
			target := int(-s) - 1
			if target < 0 || target >= len(stepsize) {
				return nil, fmt.Errorf("step %d ties to index %d, outside the %d-parameter vector",
					i, target, len(stepsize))
			}
			steps[i] = ParamStep{Kind: StepTied, TiedTo: target}
		}
	}
	return steps, nil
}

// CountFree returns the number of free entries in steps.
func CountFree(steps []ParamStep) int {
	n := 0
	for _, s := range steps {
		if s.Kind == StepFree {
			n++
		}
	}
	return n
}

// FreeIndices returns the full-vector index of each free parameter, in
// order. Element k of a reduced vector corresponds to full index
// FreeIndices(steps)[k].
func FreeIndices(steps []ParamStep) []int {
	var idx []int
	for i, s := range steps {
		if s.Kind == StepFree {
			idx = append(idx, i)
		}
	}
	return idx
}

// ReduceParams projects a full parameter vector down to its free entries.
func ReduceParams(full []float64, steps []ParamStep) ([]float64, error) {
	if len(full) != len(steps) {
		return nil, fmt.Errorf("%w: %d parameters, %d steps",
			ErrParameterCountMismatch, len(full), len(steps))
	}
	var reduced []float64
	for i, s := range steps {
		if s.Kind == StepFree {
			reduced = append(reduced, full[i])
		}
	}
	return reduced, nil
}

// ExpandParams rebuilds a full parameter vector from the reduced vector of
// free values: free slots take the reduced values in order, fixed slots take
// their prior value, and tied slots copy the resolved value of their target.
// A tied parameter must point at a free or fixed parameter; ties to another
// tied parameter are rejected.
func ExpandParams(reduced []float64, steps []ParamStep, prior []float64) ([]float64, error) {
	if len(prior) != len(steps) {
		return nil, fmt.Errorf("%w: %d priors, %d steps",
			ErrParameterCountMismatch, len(prior), len(steps))
	}
	if nfree := CountFree(steps); len(reduced) != nfree {
		return nil, fmt.Errorf("%w: %d reduced values, %d free steps",
			ErrParameterCountMismatch, len(reduced), nfree)
	}

	full := make([]float64, len(steps))
	k := 0
	for i, s := range steps {
		switch s.Kind {
		case StepFree:
			full[i] = reduced[k]
			k++
		case StepFixed:
			full[i] = prior[i]
		}
	}
	for i, s := range steps {
		if s.Kind != StepTied {
			continue
		}
		if steps[s.TiedTo].Kind == StepTied {
			return nil, fmt.Errorf("parameter %d ties to parameter %d, which is itself tied", i, s.TiedTo)
		}
		full[i] = full[s.TiedTo]
	}
	return full, nil
}
