package models

import (
	"testing"

	mat_ "github.com/aouyang1/go-vecm/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestOLSOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *OLSOptions
		err      error
		expected *OLSOptions
	}{
		"nil": {nil, nil, NewDefaultOLSOptions()},
		"valid": {
			&OLSOptions{
				FitIntercept: true,
			}, nil,
			&OLSOptions{
				FitIntercept: true,
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorAs(t, err, &td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestOLSRegression(t *testing.T) {
	tol := 1e-5
	testData := map[string]struct {
		x         [][]float64
		y         []float64
		opt       *OLSOptions
		intercept float64
		coef      []float64
	}{
		"ols model intercept": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:         []float64{2, 31, 109, 62, 87},
			intercept: 2.0,
			coef:      []float64{3.0, 4.0},
		},
		"ols model no intercept": {
			x: [][]float64{
				{1, 0, 0},
				{1, 3, 5},
				{1, 9, 20},
				{1, 12, 6},
				{1, 15, 10},
			},
			y: []float64{2, 31, 109, 62, 87},
			opt: &OLSOptions{
				FitIntercept: false,
			},
			intercept: 0.0,
			coef:      []float64{2.0, 3.0, 4.0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, err := mat_.NewDenseFromArray(td.x)
			require.Nil(t, err)

			y := mat.NewDense(len(td.y), 1, td.y)

			model, err := NewOLSRegression(td.opt)
			require.Nil(t, err)

			testModel(t, model, x, y, td.intercept, td.coef, tol)
		})
	}
}

func BenchmarkOLSRegression(b *testing.B) {
	x, y, err := generateBenchData(1000, 100)
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < b.N; i++ {
		model, err := NewOLSRegression(
			&OLSOptions{
				FitIntercept: false,
			},
		)
		if err != nil {
			b.Error(err)
			continue
		}
		if err := model.Fit(x, y); err != nil {
			b.Error(err)
			continue
		}
	}
}

func TestOLSRegressionErrors(t *testing.T) {
	testData := map[string]struct {
		x   [][]float64
		y   []float64
		err error
	}{
		"target length": {
			x:   [][]float64{{1}, {2}},
			y:   []float64{1},
			err: ErrTargetLenMismatch,
		},
		"underdetermined": {
			x:   [][]float64{{1, 2, 3}},
			y:   []float64{1},
			err: ErrUnderdetermined,
		},
		"collinear features": {
			x:   [][]float64{{1, 2}, {2, 4}, {3, 6}, {4, 8}},
			y:   []float64{1, 2, 3, 4},
			err: ErrSingularDesign,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, err := mat_.NewDenseFromArray(td.x)
			require.Nil(t, err)

			model, err := NewOLSRegression(&OLSOptions{FitIntercept: false})
			require.Nil(t, err)

			err = model.Fit(x, mat.NewDense(len(td.y), 1, td.y))
			assert.ErrorIs(t, err, td.err)
		})
	}
}

func TestMultiOLS(t *testing.T) {
	x, err := mat_.NewDenseFromArray([][]float64{
		{1, 0},
		{1, 3},
		{1, 9},
		{1, 12},
		{1, 15},
	})
	require.Nil(t, err)

	// first column is exact, second has residuals that sum to zero with the constant
	y, err := mat_.NewDenseFromArray([][]float64{
		{2, 1},
		{8, -1},
		{20, 1},
		{26, -1},
		{32, 0},
	})
	require.Nil(t, err)

	coef, intercept, resid, err := MultiOLS(x, y, &OLSOptions{FitIntercept: false})
	require.Nil(t, err)

	assert.Equal(t, []float64{0, 0}, intercept)
	assert.InDeltaSlice(t, []float64{2, 2}, mat.Col(nil, 0, coef), 1e-9)
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0, 0}, mat.Col(nil, 0, resid), 1e-9)

	var fitted mat.Dense
	fitted.Mul(x, coef)
	for i := 0; i < 5; i++ {
		assert.InDelta(t, y.At(i, 1), fitted.At(i, 1)+resid.At(i, 1), 1e-9)
	}

	_, _, _, err = MultiOLS(nil, y, &OLSOptions{FitIntercept: false})
	assert.ErrorIs(t, err, ErrNoTrainingMatrix)

	_, _, _, err = MultiOLS(x, nil, nil)
	assert.ErrorIs(t, err, ErrNoTargetMatrix)
}

func TestMultiOLSIntercept(t *testing.T) {
	y, err := mat_.NewDenseFromArray([][]float64{
		{2, 1},
		{8, -1},
		{20, -1},
		{26, 1},
		{32, 0},
	})
	require.Nil(t, err)

	testData := map[string]struct {
		x         [][]float64
		coef      [][]float64
		intercept []float64
		resid     [][]float64
	}{
		"with features": {
			x:         [][]float64{{0}, {3}, {9}, {12}, {15}},
			coef:      [][]float64{{2, 0}},
			intercept: []float64{2, 0},
			resid:     [][]float64{{0, 1}, {0, -1}, {0, -1}, {0, 1}, {0, 0}},
		},
		"intercept only": {
			intercept: []float64{17.6, 0},
			resid:     [][]float64{{-15.6, 1}, {-9.6, -1}, {2.4, -1}, {8.4, 1}, {14.4, 0}},
		},
	}

	// the second column is orthogonal to the features and has zero mean
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			var x mat.Matrix
			if td.x != nil {
				xd, err := mat_.NewDenseFromArray(td.x)
				require.Nil(t, err)
				x = xd
			}

			coef, intercept, resid, err := MultiOLS(x, y, nil)
			require.Nil(t, err)

			assert.InDeltaSlice(t, td.intercept, intercept, 1e-9)
			if td.coef == nil {
				assert.Nil(t, coef)
			} else {
				assert.NoError(t, mat_.AllCloseRows(mat_.ToArray(coef), td.coef, nil))
			}
			assert.NoError(t, mat_.AllCloseRows(mat_.ToArray(resid), td.resid, &mat_.AllCloseOptions{ATol: 1e-9}))
		})
	}
}

func TestOLSRegressionInterceptOnly(t *testing.T) {
	model, err := NewOLSRegression(nil)
	require.Nil(t, err)

	require.Nil(t, model.Fit(nil, mat.NewDense(4, 1, []float64{1, 2, 3, 6})))
	assert.InDelta(t, 3.0, model.Intercept(), 1e-9)
	assert.Empty(t, model.Coef())

	_, err = model.Predict(nil)
	assert.ErrorIs(t, err, ErrNoDesignMatrix)
}
