package vecm

import (
	"fmt"
	"math"

	mat_ "github.com/aouyang1/go-vecm/mat"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Results is a fitted VECM. It can forecast without the training data, which is only kept to
// report fitted values and residuals.
type Results struct {
	opt *Options
	k   int

	alpha    *mat.Dense // K x r
	beta     *mat.Dense // K x r
	gamma    *mat.Dense // K x K*DiffLags, nil without lagged differences
	constant []float64
	sigmaU   *mat.SymDense
	eigvals  []float64

	y       *mat.Dense // training levels, nil when built from a model
	lastObs *mat.Dense // last k_ar training rows
	varRep  []*mat.Dense
	fitted  *mat.Dense
	scores  []Scores
}

// init derives the levels VAR coefficients
//
//	A_1 = Π + I + Γ_1, A_i = Γ_i - Γ_{i-1}, A_p = -Γ_{p-1}
func (r *Results) init() {
	p := r.opt.KAr()
	k := r.k

	pi := r.Pi()
	r.varRep = make([]*mat.Dense, p)
	for i := 0; i < p; i++ {
		a := mat.NewDense(k, k, nil)
		if i == 0 {
			a.Add(pi, mat_.Identity(k))
		}
		if i < p-1 {
			a.Add(a, r.gammaLag(i))
		}
		if i > 0 {
			a.Sub(a, r.gammaLag(i-1))
		}
		r.varRep[i] = a
	}
}

// gammaLag returns Γ_{i+1}, the K x K block of the i-th lagged difference
func (r *Results) gammaLag(i int) mat.Matrix {
	return r.gamma.Slice(0, r.k, i*r.k, (i+1)*r.k)
}

// computeFit fills in-sample one step predictions for every row from k_ar on
func (r *Results) computeFit() error {
	if r.y == nil {
		return ErrNoFittedValues
	}
	nobs, k := r.y.Dims()
	p := r.opt.KAr()

	r.fitted = mat.NewDense(nobs, k, nil)
	for i := 0; i < p; i++ {
		for c := 0; c < k; c++ {
			r.fitted.Set(i, c, math.NaN())
		}
	}
	for t := p; t < nobs; t++ {
		r.fitted.SetRow(t, r.step(func(lag int) []float64 {
			return r.y.RawRowView(t - lag)
		}))
	}

	r.scores = make([]Scores, k)
	for c := 0; c < k; c++ {
		s, err := NewScores(mat.Col(nil, c, r.fitted)[p:], mat.Col(nil, c, r.y)[p:])
		if err != nil {
			return fmt.Errorf("unable to score column %d, %w", c, err)
		}
		r.scores[c] = *s
	}
	return nil
}

// step evaluates c + Σ A_i y_{t-i} where lagged returns y_{t-lag}
func (r *Results) step(lagged func(lag int) []float64) []float64 {
	out := make([]float64, r.k)
	copy(out, r.constant)
	for lag := 1; lag <= len(r.varRep); lag++ {
		a := r.varRep[lag-1]
		prev := lagged(lag)
		for eq := 0; eq < r.k; eq++ {
			for j := 0; j < r.k; j++ {
				out[eq] += a.At(eq, j) * prev[j]
			}
		}
	}
	return out
}

// Predict returns a dense steps x K forecast where row i holds step i+1 after the last training
// observation
func (r *Results) Predict(steps int) (*mat.Dense, error) {
	if steps < 1 {
		return nil, fmt.Errorf("got %d steps, %w", steps, ErrInvalidSteps)
	}
	p := len(r.varRep)
	k := r.k

	out := mat.NewDense(p+steps, k, nil)
	for i := 0; i < p; i++ {
		out.SetRow(i, r.lastObs.RawRowView(i))
	}
	for s := 0; s < steps; s++ {
		row := p + s
		out.SetRow(row, r.step(func(lag int) []float64 {
			return out.RawRowView(row - lag)
		}))
	}
	return mat.DenseCopyOf(out.Slice(p, p+steps, 0, k)), nil
}

// PredictInterval returns the dense point forecast together with the lower and upper bounds of
// the 1-alpha prediction interval. The forecast error variance comes from the moving average
// representation Φ_0 = I, Φ_i = Σ_j Φ_{i-j} A_j.
func (r *Results) PredictInterval(steps int, alpha float64) (*mat.Dense, *mat.Dense, *mat.Dense, error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, nil, nil, fmt.Errorf("got %v, %w", alpha, ErrInvalidAlpha)
	}
	point, err := r.Predict(steps)
	if err != nil {
		return nil, nil, nil, err
	}

	q := distuv.UnitNormal.Quantile(1 - alpha/2)
	phi := r.maCoefs(steps)

	lower := mat.NewDense(steps, r.k, nil)
	upper := mat.NewDense(steps, r.k, nil)
	mse := mat.NewDense(r.k, r.k, nil)
	var term mat.Dense
	for h := 0; h < steps; h++ {
		term.Product(phi[h], r.sigmaU, phi[h].T())
		mse.Add(mse, &term)
		for c := 0; c < r.k; c++ {
			half := q * math.Sqrt(mse.At(c, c))
			lower.Set(h, c, point.At(h, c)-half)
			upper.Set(h, c, point.At(h, c)+half)
		}
	}
	return point, lower, upper, nil
}

// maCoefs returns the first n moving average coefficient matrices
func (r *Results) maCoefs(n int) []*mat.Dense {
	p := len(r.varRep)
	phi := make([]*mat.Dense, n)
	phi[0] = mat_.Identity(r.k)
	var term mat.Dense
	for i := 1; i < n; i++ {
		phi[i] = mat.NewDense(r.k, r.k, nil)
		for j := 1; j <= min(i, p); j++ {
			term.Mul(phi[i-j], r.varRep[j-1])
			phi[i].Add(phi[i], &term)
		}
	}
	return phi
}

// Alpha returns the K x r loading matrix
func (r *Results) Alpha() *mat.Dense {
	return mat.DenseCopyOf(r.alpha)
}

// Beta returns the K x r cointegrating vectors with the top r x r block normalised to identity
func (r *Results) Beta() *mat.Dense {
	return mat.DenseCopyOf(r.beta)
}

// Gamma returns the K x K*DiffLags short run coefficients, nil if there are no lagged differences
func (r *Results) Gamma() *mat.Dense {
	if r.gamma == nil {
		return nil
	}
	return mat.DenseCopyOf(r.gamma)
}

// Const returns the unrestricted constant, all zeros without deterministic terms
func (r *Results) Const() []float64 {
	out := make([]float64, len(r.constant))
	copy(out, r.constant)
	return out
}

func (r *Results) SigmaU() *mat.SymDense {
	return mat.NewSymDense(r.k, append([]float64(nil), r.sigmaU.RawSymmetric().Data...))
}

// Eigenvalues returns the eigenvalues of the reduced rank problem in descending order
func (r *Results) Eigenvalues() []float64 {
	out := make([]float64, len(r.eigvals))
	copy(out, r.eigvals)
	return out
}

// Pi returns the K x K long run impact matrix αβ'
func (r *Results) Pi() *mat.Dense {
	var pi mat.Dense
	pi.Mul(r.alpha, r.beta.T())
	return &pi
}

// KAr is the lag order of the levels VAR
func (r *Results) KAr() int {
	return r.opt.KAr()
}

// NumVars is the number of endogenous variables
func (r *Results) NumVars() int {
	return r.k
}

// Options returns a copy of the options used for estimation
func (r *Results) Options() Options {
	return *r.opt
}

// VARRep returns the k_ar coefficient matrices of the levels VAR
func (r *Results) VARRep() []*mat.Dense {
	out := make([]*mat.Dense, len(r.varRep))
	for i, a := range r.varRep {
		out[i] = mat.DenseCopyOf(a)
	}
	return out
}

// FittedValues returns nobs x K one step in-sample predictions. The first k_ar rows are NaN.
func (r *Results) FittedValues() (*mat.Dense, error) {
	if r.fitted == nil {
		return nil, ErrNoFittedValues
	}
	return mat.DenseCopyOf(r.fitted), nil
}

// Residuals returns the training levels minus the fitted values. The first k_ar rows are NaN.
func (r *Results) Residuals() (*mat.Dense, error) {
	if r.fitted == nil {
		return nil, ErrNoFittedValues
	}
	var resid mat.Dense
	resid.Sub(r.y, r.fitted)
	return &resid, nil
}

// Scores returns the in-sample fit scores per variable
func (r *Results) Scores() []Scores {
	out := make([]Scores, len(r.scores))
	copy(out, r.scores)
	return out
}
