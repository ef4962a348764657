package timedataset

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-vecm/period"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrNonMontonic        = errors.New("period index is not monotonic")
	ErrIrregularIndex     = errors.New("period index is not regularly spaced")
	ErrFreqMismatch       = errors.New("period index has mixed frequencies")
	ErrDatasetLenMismatch = errors.New("period index has a different length than observations")
	ErrColMismatch        = errors.New("row has a different number of values than columns")
	ErrUnknownColumn      = errors.New("unknown column")
	ErrRowOutOfBounds     = errors.New("row is out of bounds")
	ErrInvalidBounds      = errors.New("upper bound must be greater than lower bound")
)

// TimeDataset represents a multivariate time series indexed by regular periods. Y stores one row
// per period and one value per column.
type TimeDataset struct {
	Index   Index       `json:"index"`
	Columns []string    `json:"columns"`
	Y       [][]float64 `json:"y"`
}

// NewDataset returns an instance of a TimeDataset given a period index, column names and value rows.
// The index must be strictly increasing with no gaps and every row must match the columns.
func NewDataset(index []period.Period, columns []string, y [][]float64) (*TimeDataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(index) != len(y) {
		return nil, fmt.Errorf(
			"period index has length of %d, but values has a length of %d, %w",
			len(index), len(y), ErrDatasetLenMismatch,
		)
	}
	for i, row := range y {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("at row %d expected %d values, but got %d, %w", i, len(columns), len(row), ErrColMismatch)
		}
	}
	if err := Index(index).Validate(); err != nil {
		return nil, err
	}

	td := &TimeDataset{
		Index:   make(Index, len(index)),
		Columns: make([]string, len(columns)),
		Y:       make([][]float64, len(y)),
	}
	copy(td.Index, index)
	copy(td.Columns, columns)
	for i, row := range y {
		td.Y[i] = make([]float64, len(row))
		copy(td.Y[i], row)
	}
	return td, nil
}

// NewDatasetFromMatrix builds a TimeDataset from an nobs x ncols matrix
func NewDatasetFromMatrix(index []period.Period, columns []string, m mat.Matrix) (*TimeDataset, error) {
	if m == nil {
		return nil, ErrNoTrainingData
	}
	r, _ := m.Dims()
	y := make([][]float64, r)
	for i := 0; i < r; i++ {
		y[i] = mat.Row(nil, i, m)
	}
	return NewDataset(index, columns, y)
}

func (td *TimeDataset) Copy() *TimeDataset {
	if td == nil {
		return nil
	}
	out := &TimeDataset{
		Index:   make(Index, len(td.Index)),
		Columns: make([]string, len(td.Columns)),
		Y:       make([][]float64, len(td.Y)),
	}
	copy(out.Index, td.Index)
	copy(out.Columns, td.Columns)
	for i, row := range td.Y {
		out.Y[i] = make([]float64, len(row))
		copy(out.Y[i], row)
	}
	return out
}

// Len returns the number of rows
func (td *TimeDataset) Len() int {
	if td == nil {
		return 0
	}
	return len(td.Y)
}

// Cutoff returns the last period of the dataset. Relative forecast horizons are measured from
// this period.
func (td *TimeDataset) Cutoff() period.Period {
	if td == nil {
		return period.Period{}
	}
	return td.Index.EndPeriod()
}

// Slice returns a copy of rows [i, j)
func (td *TimeDataset) Slice(i, j int) (*TimeDataset, error) {
	if td == nil {
		return nil, ErrNoTrainingData
	}
	if i < 0 || j > td.Len() || i >= j {
		return nil, fmt.Errorf("cannot slice rows [%d, %d) of %d, %w", i, j, td.Len(), ErrRowOutOfBounds)
	}
	return NewDataset(td.Index[i:j], td.Columns, td.Y[i:j])
}

// Matrix returns the values as an nobs x ncols dense matrix
func (td *TimeDataset) Matrix() *mat.Dense {
	if td == nil || len(td.Y) == 0 || len(td.Columns) == 0 {
		return nil
	}
	data := make([]float64, 0, len(td.Y)*len(td.Columns))
	for _, row := range td.Y {
		data = append(data, row...)
	}
	return mat.NewDense(len(td.Y), len(td.Columns), data)
}

// Col returns a copy of the values of a single column
func (td *TimeDataset) Col(name string) ([]float64, error) {
	for c, col := range td.Columns {
		if col != name {
			continue
		}
		out := make([]float64, len(td.Y))
		for i, row := range td.Y {
			out[i] = row[c]
		}
		return out, nil
	}
	return nil, fmt.Errorf("%q, %w", name, ErrUnknownColumn)
}

// DropNan removes every row containing at least one NaN. The result may have a gapped index
// and is not validated.
func (td *TimeDataset) DropNan() *TimeDataset {
	if td == nil {
		return nil
	}
	out := &TimeDataset{
		Index:   make(Index, 0, len(td.Index)),
		Columns: make([]string, len(td.Columns)),
		Y:       make([][]float64, 0, len(td.Y)),
	}
	copy(out.Columns, td.Columns)
	for i, row := range td.Y {
		hasNan := false
		for _, v := range row {
			if math.IsNaN(v) {
				hasNan = true
				break
			}
		}
		if hasNan {
			continue
		}
		r := make([]float64, len(row))
		copy(r, row)
		out.Index = append(out.Index, td.Index[i])
		out.Y = append(out.Y, r)
	}
	return out
}
