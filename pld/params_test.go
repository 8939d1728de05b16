package pld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStepSizes(t *testing.T) {
	steps, err := ParseStepSizes([]float64{0.5, 0, -1, 2.0})
	require.NoError(t, err)

	assert.Equal(t, ParamStep{Kind: StepFree, Size: 0.5}, steps[0])
	assert.Equal(t, ParamStep{Kind: StepFixed}, steps[1])
	assert.Equal(t, ParamStep{Kind: StepTied, TiedTo: 0}, steps[2])
	assert.Equal(t, ParamStep{Kind: StepFree, Size: 2.0}, steps[3])

	assert.Equal(t, 2, CountFree(steps))
	assert.Equal(t, []int{0, 3}, FreeIndices(steps))
}

func TestParseStepSizesBadTieTarget(t *testing.T) {
	_, err := ParseStepSizes([]float64{1, -20})
	require.Error(t, err)
}

func TestExpandParams(t *testing.T) {
	// Three pixel weights plus the nine model parameters; entries 3, 6
	// and 7 are held fixed.
	stepsize := []float64{1, 1, 1, 0, 1, 1, 0, 0, 1, 1, 1, 1}
	steps, err := ParseStepSizes(stepsize)
	require.NoError(t, err)
	require.Equal(t, 9, CountFree(steps))

	prior := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}
	reduced := []float64{0, 1, 2, 4, 5, 8, 9, 10, 11}

	full, err := ExpandParams(reduced, steps, prior)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 13, 4, 5, 16, 17, 8, 9, 10, 11}, full)
}

func TestExpandParamsTied(t *testing.T) {
	// Parameter 2 copies parameter 0, which is free; parameter 3 copies
	// parameter 1, which is fixed.
	steps, err := ParseStepSizes([]float64{1, 0, -1, -2})
	require.NoError(t, err)

	prior := []float64{5, 6, 7, 8}
	full, err := ExpandParams([]float64{42}, steps, prior)
	require.NoError(t, err)
	assert.Equal(t, []float64{42, 6, 42, 6}, full)
}

func TestExpandParamsRejectsTieChain(t *testing.T) {
	// Parameter 2 ties to parameter 1, which is itself tied.
	steps, err := ParseStepSizes([]float64{1, -1, -2})
	require.NoError(t, err)

	_, err = ExpandParams([]float64{1}, steps, []float64{0, 0, 0})
	require.Error(t, err)
}

func TestExpandParamsCountMismatch(t *testing.T) {
	steps, err := ParseStepSizes([]float64{1, 1, 0})
	require.NoError(t, err)

	_, err = ExpandParams([]float64{1}, steps, []float64{0, 0, 0})
	require.ErrorIs(t, err, ErrParameterCountMismatch)

	_, err = ExpandParams([]float64{1, 2}, steps, []float64{0, 0})
	require.ErrorIs(t, err, ErrParameterCountMismatch)
}

func TestReduceExpandRoundTrip(t *testing.T) {
	steps, err := ParseStepSizes([]float64{1, 0, 1, -2, 1})
	require.NoError(t, err)

	full := []float64{1, 2, 3, 2, 5} // entry 3 already matches its tie target
	reduced, err := ReduceParams(full, steps)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5}, reduced)

	rebuilt, err := ExpandParams(reduced, steps, full)
	require.NoError(t, err)
	assert.Equal(t, full, rebuilt)
}

func TestReduceParamsLengthMismatch(t *testing.T) {
	steps, err := ParseStepSizes([]float64{1, 1})
	require.NoError(t, err)

	_, err = ReduceParams([]float64{1}, steps)
	require.ErrorIs(t, err, ErrParameterCountMismatch)
}
