// Package vecm estimates a Vector Error Correction Model by Johansen maximum likelihood and
// produces dense multi-step forecasts from its levels VAR representation.
//
//	Δy_t = α β' y_{t-1} + Γ_1 Δy_{t-1} + ... + Γ_{p-1} Δy_{t-p+1} + c + u_t
//
// Observations are stored one row per period and one column per variable.
package vecm

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-vecm/models"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoData                   = errors.New("no observations to fit")
	ErrTooFewVariables          = errors.New("at least two variables are required")
	ErrInsufficientObservations = errors.New("insufficient observations for the number of lags")
	ErrInvalidRank              = errors.New("cointegration rank must be between 1 and the number of variables minus one")
	ErrNegativeLags             = errors.New("number of lagged differences cannot be negative")
	ErrUnknownDeterministic     = errors.New("unknown deterministic term")
	ErrSingularMoment           = errors.New("moment matrix is not positive definite")
	ErrInvalidSteps             = errors.New("number of steps must be at least 1")
	ErrInvalidAlpha             = errors.New("alpha must be in (0, 1)")
	ErrNoFittedValues           = errors.New("model has no training data for fitted values")
	ErrInvalidModel             = errors.New("invalid model")
)

// VECM holds the estimation options. A single VECM can fit many datasets.
type VECM struct {
	opt *Options
}

// New creates a VECM estimator with the given options. If none are provided the defaults are used.
func New(opt *Options) (*VECM, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to validate options, %w", err)
	}
	return &VECM{opt: opt}, nil
}

// Options returns a copy of the estimation options
func (v *VECM) Options() Options {
	return *v.opt
}

// design holds the regression matrices of the error correction form
type design struct {
	dY *mat.Dense // T x K differences
	y1 *mat.Dense // T x K lagged levels
	dX *mat.Dense // T x K*DiffLags lagged differences, nil without lags
}

func (v *VECM) buildDesign(y mat.Matrix) design {
	nobs, k := y.Dims()
	p := v.opt.KAr()
	t := nobs - p
	m := k * v.opt.DiffLags

	d := design{
		dY: mat.NewDense(t, k, nil),
		y1: mat.NewDense(t, k, nil),
	}
	if m > 0 {
		d.dX = mat.NewDense(t, m, nil)
	}

	for j := 0; j < t; j++ {
		row := j + p
		for c := 0; c < k; c++ {
			d.dY.Set(j, c, y.At(row, c)-y.At(row-1, c))
			d.y1.Set(j, c, y.At(row-1, c))
		}
		for lag := 1; lag <= v.opt.DiffLags; lag++ {
			for c := 0; c < k; c++ {
				d.dX.Set(j, (lag-1)*k+c, y.At(row-lag, c)-y.At(row-lag-1, c))
			}
		}
	}
	return d
}

// shortRun regresses y on the lagged differences, with an unrestricted constant when the model
// has one. It returns the coefficients (nil without lagged differences), the constant and the
// residuals. Without either regressor y is its own residual.
func (v *VECM) shortRun(d design, y *mat.Dense) (*mat.Dense, []float64, *mat.Dense, error) {
	opt := &models.OLSOptions{FitIntercept: v.opt.Deterministic == DeterministicConstOutside}
	var x mat.Matrix
	if d.dX != nil {
		x = d.dX
	}
	if x == nil && !opt.FitIntercept {
		_, k := y.Dims()
		return nil, make([]float64, k), y, nil
	}
	return models.MultiOLS(x, y, opt)
}

// Fit estimates the model on y, an nobs x K matrix of levels
func (v *VECM) Fit(y mat.Matrix) (*Results, error) {
	if v == nil || v.opt == nil {
		return nil, ErrInvalidModel
	}
	if y == nil {
		return nil, ErrNoData
	}
	nobs, k := y.Dims()
	if k < 2 {
		return nil, fmt.Errorf("got %d variables, %w", k, ErrTooFewVariables)
	}
	r := v.opt.CointRank
	if r >= k {
		return nil, fmt.Errorf("rank %d with %d variables, %w", r, k, ErrInvalidRank)
	}

	p := v.opt.KAr()
	t := nobs - p
	m := k*v.opt.DiffLags + v.opt.Deterministic.numTerms()
	if t <= m || t < k {
		return nil, fmt.Errorf(
			"%d observations leave %d rows for %d regressors and %d variables, %w",
			nobs, t, m, k, ErrInsufficientObservations,
		)
	}

	d := v.buildDesign(y)

	// concentrate out the short run dynamics
	_, _, r0, err := v.shortRun(d, d.dY)
	if err != nil {
		return nil, fmt.Errorf("unable to regress differences on lagged differences, %w", err)
	}
	_, _, r1, err := v.shortRun(d, d.y1)
	if err != nil {
		return nil, fmt.Errorf("unable to regress lagged levels on lagged differences, %w", err)
	}

	s00 := moment(r0, r0, t)
	s01 := moment(r0, r1, t)
	s11 := moment(r1, r1, t)

	beta, eigvals, err := johansen(s00, s01, s11, r)
	if err != nil {
		return nil, err
	}

	// alpha = S01 β (β' S11 β)^-1
	var bsb mat.Dense
	bsb.Product(beta.T(), s11, beta)
	var bsbInv mat.Dense
	if err := bsbInv.Inverse(&bsb); err != nil {
		return nil, fmt.Errorf("unable to invert beta' S11 beta, %v, %w", err, ErrSingularMoment)
	}
	var alpha mat.Dense
	alpha.Product(s01, beta, &bsbInv)

	var pi mat.Dense
	pi.Mul(&alpha, beta.T())

	// short run coefficients from Δy - y_{-1} Π'
	var z mat.Dense
	z.Mul(d.y1, pi.T())
	z.Sub(d.dY, &z)

	res := &Results{
		opt:     v.opt,
		k:       k,
		alpha:   mat.DenseCopyOf(&alpha),
		beta:    beta,
		eigvals: eigvals,
		y:       mat.DenseCopyOf(y),
	}

	coef, constant, u, err := v.shortRun(d, &z)
	if err != nil {
		return nil, fmt.Errorf("unable to estimate short run coefficients, %w", err)
	}
	res.constant = constant
	if coef != nil {
		res.gamma = mat.DenseCopyOf(coef.T())
	}

	res.sigmaU = symmetrize(moment(u, u, t))
	res.lastObs = mat.DenseCopyOf(res.y.Slice(nobs-p, nobs, 0, k))
	res.init()
	if err := res.computeFit(); err != nil {
		return nil, err
	}
	return res, nil
}

// moment computes a'b / t
func moment(a, b mat.Matrix, t int) *mat.Dense {
	var s mat.Dense
	s.Mul(a.T(), b)
	s.Scale(1/float64(t), &s)
	return &s
}

// johansen solves the reduced rank eigenproblem of S11^-1/2 S10 S00^-1 S01 S11^-1/2 and returns
// the r leading cointegrating vectors normalised so the top r x r block is the identity, along
// with every eigenvalue in descending order.
func johansen(s00, s01, s11 *mat.Dense, r int) (*mat.Dense, []float64, error) {
	k, _ := s11.Dims()

	s11h, err := invSqrtSym(s11)
	if err != nil {
		return nil, nil, fmt.Errorf("S11, %w", err)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(symmetrize(s00)); !ok {
		return nil, nil, fmt.Errorf("S00, %w", ErrSingularMoment)
	}
	var s00Inv mat.SymDense
	if err := chol.InverseTo(&s00Inv); err != nil {
		return nil, nil, fmt.Errorf("unable to invert S00, %v, %w", err, ErrSingularMoment)
	}

	var prod mat.Dense
	prod.Product(s11h, s01.T(), &s00Inv, s01, s11h)

	var eig mat.EigenSym
	if ok := eig.Factorize(symmetrize(&prod), true); !ok {
		return nil, nil, fmt.Errorf("eigen decomposition did not converge, %w", ErrSingularMoment)
	}
	ascending := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	eigvals := make([]float64, k)
	lead := mat.NewDense(k, r, nil)
	for i := 0; i < k; i++ {
		eigvals[i] = ascending[k-1-i]
	}
	for j := 0; j < r; j++ {
		lead.SetCol(j, mat.Col(nil, k-1-j, &vecs))
	}

	var betaTilde mat.Dense
	betaTilde.Mul(s11h, lead)

	var topInv mat.Dense
	if err := topInv.Inverse(betaTilde.Slice(0, r, 0, r)); err != nil {
		return nil, nil, fmt.Errorf("unable to normalise cointegrating vectors, %v, %w", err, ErrSingularMoment)
	}
	var beta mat.Dense
	beta.Mul(&betaTilde, &topInv)
	return &beta, eigvals, nil
}

// invSqrtSym returns V diag(1/sqrt(w)) V' for a symmetric positive definite matrix
func invSqrtSym(a *mat.Dense) (*mat.Dense, error) {
	var eig mat.EigenSym
	if ok := eig.Factorize(symmetrize(a), true); !ok {
		return nil, ErrSingularMoment
	}
	w := eig.Values(nil)
	var v mat.Dense
	eig.VectorsTo(&v)

	scale := make([]float64, len(w))
	for i, val := range w {
		if val <= 0 || math.IsNaN(val) {
			return nil, fmt.Errorf("eigenvalue %g, %w", val, ErrSingularMoment)
		}
		scale[i] = 1 / math.Sqrt(val)
	}

	var out mat.Dense
	out.Product(&v, mat.NewDiagDense(len(scale), scale), v.T())
	return &out, nil
}

func symmetrize(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, (a.At(i, j)+a.At(j, i))/2)
		}
	}
	return s
}
