package mat

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrShapeMismatch = errors.New("matrices have different shapes")
	ErrNotClose      = errors.New("values are not close")
)

const (
	DefaultRTol = 1e-7
	DefaultATol = 1e-8
)

// AllCloseOptions configures the element-wise tolerance check |actual-desired| <= ATol + RTol*|desired|
type AllCloseOptions struct {
	RTol     float64
	ATol     float64
	EqualNaN bool
}

func NewDefaultAllCloseOptions() *AllCloseOptions {
	return &AllCloseOptions{
		RTol:     DefaultRTol,
		ATol:     DefaultATol,
		EqualNaN: true,
	}
}

// AllClose checks two matrices element by element and returns an error describing the first
// element outside of tolerance. A nil option uses the defaults.
func AllClose(actual, desired mat.Matrix, opt *AllCloseOptions) error {
	if opt == nil {
		opt = NewDefaultAllCloseOptions()
	}
	if actual == nil || desired == nil {
		if actual == nil && desired == nil {
			return nil
		}
		return fmt.Errorf("one of the matrices is nil, %w", ErrShapeMismatch)
	}

	ar, ac := actual.Dims()
	dr, dc := desired.Dims()
	if ar != dr || ac != dc {
		return fmt.Errorf("actual is %dx%d, desired is %dx%d, %w", ar, ac, dr, dc, ErrShapeMismatch)
	}

	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			a := actual.At(i, j)
			d := desired.At(i, j)
			if !isClose(a, d, opt) {
				return fmt.Errorf(
					"at row %d col %d actual %v, desired %v, diff %v exceeds %v, %w",
					i, j, a, d, math.Abs(a-d), opt.ATol+opt.RTol*math.Abs(d), ErrNotClose,
				)
			}
		}
	}
	return nil
}

// AllCloseRows is AllClose for row slices. Ragged rows are a shape mismatch.
func AllCloseRows(actual, desired [][]float64, opt *AllCloseOptions) error {
	if opt == nil {
		opt = NewDefaultAllCloseOptions()
	}
	if len(actual) != len(desired) {
		return fmt.Errorf("actual has %d rows, desired has %d rows, %w", len(actual), len(desired), ErrShapeMismatch)
	}
	for i := range actual {
		if len(actual[i]) != len(desired[i]) {
			return fmt.Errorf("at row %d actual has %d values, desired has %d, %w", i, len(actual[i]), len(desired[i]), ErrShapeMismatch)
		}
		for j := range actual[i] {
			a, d := actual[i][j], desired[i][j]
			if !isClose(a, d, opt) {
				return fmt.Errorf(
					"at row %d col %d actual %v, desired %v, diff %v exceeds %v, %w",
					i, j, a, d, math.Abs(a-d), opt.ATol+opt.RTol*math.Abs(d), ErrNotClose,
				)
			}
		}
	}
	return nil
}

func isClose(a, d float64, opt *AllCloseOptions) bool {
	aNan, dNan := math.IsNaN(a), math.IsNaN(d)
	if aNan || dNan {
		return aNan && dNan && opt.EqualNaN
	}
	if math.IsInf(a, 0) || math.IsInf(d, 0) {
		return a == d
	}
	return math.Abs(a-d) <= opt.ATol+opt.RTol*math.Abs(d)
}
