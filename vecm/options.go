package vecm

import (
	"fmt"
)

const (
	DefaultDiffLags  = 1
	DefaultCointRank = 1
)

// Deterministic names the deterministic terms added to the model
type Deterministic string

const (
	// DeterministicNone fits no deterministic terms
	DeterministicNone Deterministic = "n"

	// DeterministicConstOutside adds an unrestricted constant outside of the cointegration relation
	DeterministicConstOutside Deterministic = "co"
)

func (d Deterministic) Valid() bool {
	switch d {
	case DeterministicNone, DeterministicConstOutside:
		return true
	}
	return false
}

// numTerms is the number of deterministic columns appended to the lagged differences
func (d Deterministic) numTerms() int {
	if d == DeterministicConstOutside {
		return 1
	}
	return 0
}

// Options configures the VECM estimation. DiffLags is the number of lagged differences in the
// short run dynamics, so the levels VAR has DiffLags+1 lags.
type Options struct {
	DiffLags      int           `json:"diff_lags"`
	CointRank     int           `json:"coint_rank"`
	Deterministic Deterministic `json:"deterministic"`
}

func NewDefaultOptions() *Options {
	return &Options{
		DiffLags:      DefaultDiffLags,
		CointRank:     DefaultCointRank,
		Deterministic: DeterministicNone,
	}
}

// Validate returns a validated copy of the options. Nil options are replaced with the defaults
// and an empty deterministic term means none.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	opt := *o
	if opt.DiffLags < 0 {
		return nil, fmt.Errorf("diff lags of %d, %w", opt.DiffLags, ErrNegativeLags)
	}
	if opt.CointRank < 1 {
		return nil, fmt.Errorf("cointegration rank of %d, %w", opt.CointRank, ErrInvalidRank)
	}
	if opt.Deterministic == "" {
		opt.Deterministic = DeterministicNone
	}
	if !opt.Deterministic.Valid() {
		return nil, fmt.Errorf("%q, %w", opt.Deterministic, ErrUnknownDeterministic)
	}
	return &opt, nil
}

// KAr is the lag order of the levels VAR representation
func (o *Options) KAr() int {
	return o.DiffLags + 1
}
