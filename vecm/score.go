package vecm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var ErrResLenMismatch = errors.New("predicted and actual have different lengths")

// Scores tracks the in-sample fit of a single variable. Rows without a fitted value are skipped.
type Scores struct {
	MSE  float64 `json:"mean_squared_error"`
	MAPE float64 `json:"mean_absolute_percent_error"`
	R2   float64 `json:"r_squared"`
}

// NewScores calculates the fit scores given the predicted and actual input slice values
func NewScores(predicted, actual []float64) (*Scores, error) {
	mse, err := MSE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean squared error, %w", err)
	}
	mape, err := MAPE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute percent error, %w", err)
	}
	rs, err := RSquared(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute r-squared, %w", err)
	}

	return &Scores{
		MSE:  mse,
		MAPE: mape,
		R2:   rs,
	}, nil
}

// MSE computes the mean squared error over the pairs where both values are present.
// A score of 0 means a perfect match with no errors.
func MSE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}

	var mse float64
	var n int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		mse += math.Pow(actual[i]-predicted[i], 2.0)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return mse / float64(n), nil
}

// MAPE calculates the mean absolute percent error, skipping zero actuals.
// A score of 0 means a perfect match with no errors.
func MAPE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}

	var mape float64
	var n int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) || actual[i] == 0 {
			continue
		}
		mape += math.Abs((actual[i] - predicted[i]) / actual[i])
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return mape / float64(n), nil
}

// RSquared computes the r squared value between the predicted and actual where 1.0 means perfect
// fit and 0 represents no relationship
func RSquared(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}

	predictCopy := make([]float64, 0, len(predicted))
	actualCopy := make([]float64, 0, len(actual))
	for i := 0; i < len(predicted); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		predictCopy = append(predictCopy, predicted[i])
		actualCopy = append(actualCopy, actual[i])
	}
	r2 := stat.RSquaredFrom(predictCopy, actualCopy, nil)
	if math.IsNaN(r2) {
		return 1.0, nil
	}
	return r2, nil
}
