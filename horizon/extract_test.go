package horizon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func denseRun(steps, cols int) *mat.Dense {
	d := mat.NewDense(steps, cols, nil)
	for i := 0; i < steps; i++ {
		for j := 0; j < cols; j++ {
			// value encodes step and column, step i+1 lives in row i
			d.Set(i, j, float64((i+1)*10+j))
		}
	}
	return d
}

func TestExtract(t *testing.T) {
	testData := map[string]struct {
		dense    mat.Matrix
		steps    []int
		expected [][]float64
		err      error
	}{
		"sparse horizon": {
			dense:    denseRun(9, 2),
			steps:    []int{1, 3, 4, 5, 7, 9},
			expected: [][]float64{{10, 11}, {30, 31}, {40, 41}, {50, 51}, {70, 71}, {90, 91}},
		},
		"single step": {
			dense:    denseRun(1, 2),
			steps:    []int{1},
			expected: [][]float64{{10, 11}},
		},
		"order and duplicates preserved": {
			dense:    denseRun(4, 1),
			steps:    []int{4, 1, 1},
			expected: [][]float64{{40}, {10}, {10}},
		},
		"step beyond dense run": {
			dense: denseRun(5, 2),
			steps: []int{1, 7},
			err:   ErrStepOutOfRange,
		},
		"zero step": {
			dense: denseRun(5, 2),
			steps: []int{0},
			err:   ErrStepOutOfRange,
		},
		"negative step": {
			dense: denseRun(5, 2),
			steps: []int{-1},
			err:   ErrStepOutOfRange,
		},
		"no dense run": {
			steps: []int{1},
			err:   ErrStepOutOfRange,
		},
		"no steps": {
			dense: denseRun(5, 2),
			err:   ErrEmptyHorizon,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := Extract(td.dense, td.steps)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)

			r, _ := res.Dims()
			require.Equal(t, len(td.expected), r)
			for i, row := range td.expected {
				assert.Equal(t, row, mat.Row(nil, i, res))
			}
		})
	}
}
