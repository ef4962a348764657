package forecaster

import (
	"github.com/aouyang1/go-vecm/vecm"
)

// DefaultCoverage is the prediction interval coverage used when plotting
const DefaultCoverage = 0.95

// Options configures the forecaster. The VECM options control the underlying estimation.
type Options struct {
	VECMOptions *vecm.Options `json:"vecm_options"`
}

// NewDefaultOptions returns a set of default forecaster options
func NewDefaultOptions() *Options {
	return &Options{
		VECMOptions: vecm.NewDefaultOptions(),
	}
}
