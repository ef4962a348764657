package horizon

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Extract picks rows out of a dense forecast run where row i holds step i+1. The result has one
// row per entry of steps, in the order given, so row k is dense[steps[k]-1]. Steps outside of
// 1..rows(dense) are an error rather than being dropped.
func Extract(dense mat.Matrix, steps []int) (*mat.Dense, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyHorizon
	}
	if dense == nil {
		return nil, fmt.Errorf("no dense forecast for step %d, %w", steps[0], ErrStepOutOfRange)
	}
	rows, cols := dense.Dims()
	for i, step := range steps {
		if step < 1 || step > rows {
			return nil, fmt.Errorf("at %d step %d is outside of 1..%d, %w", i, step, rows, ErrStepOutOfRange)
		}
	}

	out := mat.NewDense(len(steps), cols, nil)
	for i, step := range steps {
		out.SetRow(i, mat.Row(nil, step-1, dense))
	}
	return out, nil
}
