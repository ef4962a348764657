// Package mat holds small helpers around gonum dense matrices along with a tolerance based
// comparison of two matrices.
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var ErrColMismatch = errors.New("column size mismatch")

func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if n < 0 {
		n = 0
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// ToArray copies a matrix into row slices
func ToArray(x mat.Matrix) [][]float64 {
	if x == nil {
		return nil
	}
	m, _ := x.Dims()
	out := make([][]float64, m)
	for i := 0; i < m; i++ {
		out[i] = mat.Row(nil, i, x)
	}
	return out
}

// Identity returns a k x k identity matrix
func Identity(k int) *mat.Dense {
	id := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		id.Set(i, i, 1)
	}
	return id
}
