package vecm

import (
	"fmt"

	mat_ "github.com/aouyang1/go-vecm/mat"
	"gonum.org/v1/gonum/mat"
)

// Model represents a serializeable format of a fitted VECM storing the options, coefficients and
// the last k_ar observations needed to forecast
type Model struct {
	Options          *Options    `json:"options"`
	Alpha            [][]float64 `json:"alpha"`
	Beta             [][]float64 `json:"beta"`
	Gamma            [][]float64 `json:"gamma,omitempty"`
	Const            []float64   `json:"const"`
	SigmaU           [][]float64 `json:"sigma_u"`
	Eigenvalues      []float64   `json:"eigenvalues"`
	LastObservations [][]float64 `json:"last_observations"`
	Scores           []Scores    `json:"scores,omitempty"`
}

// Model returns the serializeable format of the fitted coefficients
func (r *Results) Model() Model {
	opt := *r.opt
	m := Model{
		Options:          &opt,
		Alpha:            mat_.ToArray(r.alpha),
		Beta:             mat_.ToArray(r.beta),
		Const:            r.Const(),
		SigmaU:           mat_.ToArray(r.sigmaU),
		Eigenvalues:      r.Eigenvalues(),
		LastObservations: mat_.ToArray(r.lastObs),
		Scores:           r.Scores(),
	}
	if r.gamma != nil {
		m.Gamma = mat_.ToArray(r.gamma)
	}
	return m
}

// NewResultsFromModel creates fitted results from a Model. The results forecast immediately and
// do not need to be trained again, but carry no fitted values.
func NewResultsFromModel(m Model) (*Results, error) {
	opt, err := m.Options.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to validate model options, %w", err)
	}

	k := len(m.Alpha)
	if k < 2 {
		return nil, fmt.Errorf("alpha has %d rows, %w", k, ErrInvalidModel)
	}
	rank := opt.CointRank
	p := opt.KAr()

	alpha, err := denseOfShape("alpha", m.Alpha, k, rank)
	if err != nil {
		return nil, err
	}
	beta, err := denseOfShape("beta", m.Beta, k, rank)
	if err != nil {
		return nil, err
	}
	sigma, err := denseOfShape("sigma_u", m.SigmaU, k, k)
	if err != nil {
		return nil, err
	}
	lastObs, err := denseOfShape("last_observations", m.LastObservations, p, k)
	if err != nil {
		return nil, err
	}

	var gamma *mat.Dense
	if opt.DiffLags > 0 {
		if gamma, err = denseOfShape("gamma", m.Gamma, k, k*opt.DiffLags); err != nil {
			return nil, err
		}
	}

	constant := make([]float64, k)
	if len(m.Const) > 0 {
		if len(m.Const) != k {
			return nil, fmt.Errorf("const has %d values, expected %d, %w", len(m.Const), k, ErrInvalidModel)
		}
		copy(constant, m.Const)
	}

	r := &Results{
		opt:      opt,
		k:        k,
		alpha:    alpha,
		beta:     beta,
		gamma:    gamma,
		constant: constant,
		sigmaU:   symmetrize(sigma),
		eigvals:  append([]float64(nil), m.Eigenvalues...),
		lastObs:  lastObs,
		scores:   append([]Scores(nil), m.Scores...),
	}
	r.init()
	return r, nil
}

func denseOfShape(name string, x [][]float64, rows, cols int) (*mat.Dense, error) {
	if len(x) != rows {
		return nil, fmt.Errorf("%s has %d rows, expected %d, %w", name, len(x), rows, ErrInvalidModel)
	}
	for i, row := range x {
		if len(row) != cols {
			return nil, fmt.Errorf("%s row %d has %d values, expected %d, %w", name, i, len(row), cols, ErrInvalidModel)
		}
	}
	d, err := mat_.NewDenseFromArray(x)
	if err != nil {
		return nil, fmt.Errorf("unable to load %s, %v, %w", name, err, ErrInvalidModel)
	}
	return d, nil
}
