package forecaster

import (
	mat_ "github.com/aouyang1/go-vecm/mat"
	"github.com/aouyang1/go-vecm/period"
	"gonum.org/v1/gonum/mat"
)

// Results holds one forecast row per horizon entry in the horizon's order. Lower and Upper are
// only set for interval predictions.
type Results struct {
	Index    []period.Period `json:"index"`
	Columns  []string        `json:"columns"`
	Forecast [][]float64     `json:"forecast"`
	Lower    [][]float64     `json:"lower,omitempty"`
	Upper    [][]float64     `json:"upper,omitempty"`
}

// Len returns the number of forecast rows
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Forecast)
}

// Matrix returns the forecast as a rows x columns dense matrix
func (r *Results) Matrix() (*mat.Dense, error) {
	return mat_.NewDenseFromArray(r.Forecast)
}

// Col returns the forecast of a single column, nil if the column does not exist
func (r *Results) Col(name string) []float64 {
	for c, col := range r.Columns {
		if col != name {
			continue
		}
		out := make([]float64, len(r.Forecast))
		for i, row := range r.Forecast {
			out[i] = row[c]
		}
		return out
	}
	return nil
}
