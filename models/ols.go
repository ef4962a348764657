// Package models contains the least squares regression used by the VECM estimator's auxiliary
// regressions
package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// singularTol is the smallest allowed ratio between a diagonal element of R and the largest one
const singularTol = 1e-12

type OLSOptions struct {
	FitIntercept bool
}

func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
	}
}

func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		return NewDefaultOLSOptions(), nil
	}
	return o, nil
}

// OLSRegression computes ordinary least squares using QR factorization
type OLSRegression struct {
	opt       *OLSOptions
	coef      []float64
	intercept float64
}

func NewOLSRegression(opt *OLSOptions) (*OLSRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLSRegression{
		opt: opt,
	}, nil
}

// withOnes prepends a column of ones to x. A nil x yields the m x 1 column of ones alone.
func withOnes(x mat.Matrix, m int) mat.Matrix {
	ones := make([]float64, m)
	floats.AddConst(1.0, ones)
	onesMx := mat.NewDense(m, 1, ones)
	if x == nil {
		return onesMx
	}

	var xWithOnes mat.Dense
	xWithOnes.Augment(onesMx, x)
	return &xWithOnes
}

// Fit solves for the coefficients of a single target column y given the design matrix x. With
// an intercept a nil x fits the intercept alone.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if x == nil && !o.opt.FitIntercept {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	ym, _ := y.Dims()

	m := ym
	if x != nil {
		m, _ = x.Dims()
	}
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d row, %w", m, ym, ErrTargetLenMismatch)
	}

	if o.opt.FitIntercept {
		x = withOnes(x, m)
	}
	_, n := x.Dims()
	if m < n {
		return fmt.Errorf("%d observations for %d features, %w", m, n, ErrUnderdetermined)
	}

	yT := y.T()

	qr := new(mat.QR)
	qr.Factorize(x)

	q := new(mat.Dense)
	r := new(mat.Dense)

	qr.QTo(q)
	qr.RTo(r)
	yq := new(mat.Dense)
	yq.Mul(yT, q)

	var maxDiag float64
	for i := 0; i < n; i++ {
		maxDiag = math.Max(maxDiag, math.Abs(r.At(i, i)))
	}

	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		if math.Abs(r.At(i, i)) <= singularTol*maxDiag {
			return fmt.Errorf("feature %d, %w", i, ErrSingularDesign)
		}
		c[i] = yq.At(0, i)
		for j := i + 1; j < n; j++ {
			c[i] -= c[j] * r.At(i, j)
		}
		c[i] /= r.At(i, i)
	}

	if o.opt.FitIntercept {
		o.intercept = c[0]
		o.coef = c[1:]
	} else {
		o.coef = c
	}

	return nil
}

func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}

	coef := o.coef
	if o.opt.FitIntercept {
		m, _ := x.Dims()
		coef = append([]float64{o.intercept}, o.coef...)
		x = withOnes(x, m)
	}
	n := len(coef)

	xT := x.T()
	xn, _ := xT.Dims()
	if xn != n {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", xn, n, ErrFeatureLenMismatch)
	}
	coefMx := mat.NewDense(1, n, coef)

	var res mat.Dense
	res.Mul(coefMx, xT)
	return res.RawRowView(0), nil
}

func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}

// MultiOLS regresses every column of y on x. It returns the ncols(x) x ncols(y) coefficient
// matrix B, the intercept of every column (zero without one) and the residuals. A nil x is only
// allowed with an intercept, in which case B is nil and the residuals are y demeaned.
func MultiOLS(x, y mat.Matrix, opt *OLSOptions) (*mat.Dense, []float64, *mat.Dense, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, nil, nil, err
	}
	if x == nil && !opt.FitIntercept {
		return nil, nil, nil, ErrNoTrainingMatrix
	}
	if y == nil {
		return nil, nil, nil, ErrNoTargetMatrix
	}
	ym, yn := y.Dims()

	var coef *mat.Dense
	if x != nil {
		_, n := x.Dims()
		coef = mat.NewDense(n, yn, nil)
	}
	intercept := make([]float64, yn)
	resid := mat.NewDense(ym, yn, nil)
	for j := 0; j < yn; j++ {
		model, err := NewOLSRegression(opt)
		if err != nil {
			return nil, nil, nil, err
		}
		target := mat.NewDense(ym, 1, mat.Col(nil, j, y))
		if err := model.Fit(x, target); err != nil {
			return nil, nil, nil, fmt.Errorf("unable to fit target column %d, %w", j, err)
		}
		intercept[j] = model.Intercept()

		if coef == nil {
			for i := 0; i < ym; i++ {
				resid.Set(i, j, target.At(i, 0)-intercept[j])
			}
			continue
		}
		coef.SetCol(j, model.Coef())

		predicted, err := model.Predict(x)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("unable to predict target column %d, %w", j, err)
		}
		for i := 0; i < ym; i++ {
			resid.Set(i, j, target.At(i, 0)-predicted[i])
		}
	}
	return coef, intercept, resid, nil
}
