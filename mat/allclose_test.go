package mat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestAllClose(t *testing.T) {
	testData := map[string]struct {
		actual  mat.Matrix
		desired mat.Matrix
		opt     *AllCloseOptions
		err     error
	}{
		"both nil": {},
		"one nil": {
			actual: mat.NewDense(1, 1, []float64{1}),
			err:    ErrShapeMismatch,
		},
		"identical": {
			actual:  mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			desired: mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
		},
		"within relative tolerance": {
			actual:  mat.NewDense(1, 2, []float64{1e6 + 0.05, -3}),
			desired: mat.NewDense(1, 2, []float64{1e6, -3}),
		},
		"within absolute tolerance near zero": {
			actual:  mat.NewDense(1, 1, []float64{5e-9}),
			desired: mat.NewDense(1, 1, []float64{0}),
		},
		"outside tolerance": {
			actual:  mat.NewDense(1, 2, []float64{1, 2.001}),
			desired: mat.NewDense(1, 2, []float64{1, 2}),
			err:     ErrNotClose,
		},
		"loose tolerance": {
			actual:  mat.NewDense(1, 2, []float64{1, 2.001}),
			desired: mat.NewDense(1, 2, []float64{1, 2}),
			opt:     &AllCloseOptions{RTol: 1e-2},
		},
		"row mismatch": {
			actual:  mat.NewDense(2, 1, []float64{1, 2}),
			desired: mat.NewDense(1, 1, []float64{1}),
			err:     ErrShapeMismatch,
		},
		"col mismatch": {
			actual:  mat.NewDense(1, 2, []float64{1, 2}),
			desired: mat.NewDense(1, 1, []float64{1}),
			err:     ErrShapeMismatch,
		},
		"nan equal": {
			actual:  mat.NewDense(1, 2, []float64{math.NaN(), 1}),
			desired: mat.NewDense(1, 2, []float64{math.NaN(), 1}),
		},
		"nan not equal": {
			actual:  mat.NewDense(1, 1, []float64{math.NaN()}),
			desired: mat.NewDense(1, 1, []float64{math.NaN()}),
			opt:     &AllCloseOptions{RTol: DefaultRTol},
			err:     ErrNotClose,
		},
		"nan against number": {
			actual:  mat.NewDense(1, 1, []float64{math.NaN()}),
			desired: mat.NewDense(1, 1, []float64{1}),
			err:     ErrNotClose,
		},
		"matching infinities": {
			actual:  mat.NewDense(1, 1, []float64{math.Inf(1)}),
			desired: mat.NewDense(1, 1, []float64{math.Inf(1)}),
		},
		"opposite infinities": {
			actual:  mat.NewDense(1, 1, []float64{math.Inf(1)}),
			desired: mat.NewDense(1, 1, []float64{math.Inf(-1)}),
			err:     ErrNotClose,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := AllClose(td.actual, td.desired, td.opt)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAllCloseRows(t *testing.T) {
	testData := map[string]struct {
		actual  [][]float64
		desired [][]float64
		err     error
	}{
		"empty":          {},
		"close":          {[][]float64{{1, 2}, {3, 4}}, [][]float64{{1, 2}, {3, 4 + 1e-12}}, nil},
		"length":         {[][]float64{{1}}, [][]float64{{1}, {2}}, ErrShapeMismatch},
		"ragged":         {[][]float64{{1, 2}, {3}}, [][]float64{{1, 2}, {3, 4}}, ErrShapeMismatch},
		"first mismatch": {[][]float64{{1, 2}, {3, 5}}, [][]float64{{1, 2}, {3, 4}}, ErrNotClose},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := AllCloseRows(td.actual, td.desired, nil)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
