// Package modelselection splits time indexed datasets into chronological training and test sets
package modelselection

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/aouyang1/go-vecm/horizon"
	"github.com/aouyang1/go-vecm/timedataset"
)

var ErrInvalidInput = errors.New("invalid split input")

const (
	DefaultTestSize = 0.25
	MinSplitRows    = 2
)

// SplitOptions controls the size of each partition. Sizes in (0, 1) are fractions of the
// dataset, sizes >= 1 are row counts and 0 means unset. When a Horizon is given it takes
// precedence over the sizes.
type SplitOptions struct {
	TestSize  float64
	TrainSize float64
	Horizon   *horizon.Horizon
}

func NewDefaultSplitOptions() *SplitOptions {
	return &SplitOptions{
		TestSize: DefaultTestSize,
	}
}

// TemporalTrainTestSplit divides td into a leading training set and a trailing test set without
// shuffling. Both partitions are non-empty copies and train precedes test.
func TemporalTrainTestSplit(td *timedataset.TimeDataset, opt *SplitOptions) (*timedataset.TimeDataset, *timedataset.TimeDataset, error) {
	if opt == nil {
		opt = NewDefaultSplitOptions()
	}
	n := td.Len()
	if n < MinSplitRows {
		return nil, nil, fmt.Errorf("need at least %d rows, but got %d, %w", MinSplitRows, n, ErrInvalidInput)
	}

	if opt.Horizon != nil {
		return splitByHorizon(td, opt.Horizon)
	}

	nTrain, nTest, err := splitSizes(n, opt.TrainSize, opt.TestSize)
	if err != nil {
		return nil, nil, err
	}

	train, err := td.Slice(0, nTrain)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to slice training set, %v, %w", err, ErrInvalidInput)
	}
	test, err := td.Slice(nTrain, nTrain+nTest)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to slice test set, %v, %w", err, ErrInvalidInput)
	}
	return train, test, nil
}

func splitSizes(n int, trainSize, testSize float64) (int, int, error) {
	if trainSize < 0 || testSize < 0 || math.IsNaN(trainSize) || math.IsNaN(testSize) {
		return 0, 0, fmt.Errorf("sizes must be non-negative, train %v test %v, %w", trainSize, testSize, ErrInvalidInput)
	}
	if trainSize == 0 && testSize == 0 {
		testSize = DefaultTestSize
	}

	nTest, err := resolveSize(n, testSize, math.Ceil)
	if err != nil {
		return 0, 0, fmt.Errorf("test size, %w", err)
	}
	nTrain, err := resolveSize(n, trainSize, math.Floor)
	if err != nil {
		return 0, 0, fmt.Errorf("train size, %w", err)
	}

	switch {
	case testSize == 0:
		nTest = n - nTrain
	case trainSize == 0:
		nTrain = n - nTest
	}

	if nTrain+nTest > n {
		return 0, 0, fmt.Errorf("train %d and test %d exceed %d rows, %w", nTrain, nTest, n, ErrInvalidInput)
	}
	if nTrain < 1 || nTest < 1 {
		return 0, 0, fmt.Errorf("split of %d rows gives %d train and %d test rows, %w", n, nTrain, nTest, ErrInvalidInput)
	}
	return nTrain, nTest, nil
}

func resolveSize(n int, size float64, round func(float64) float64) (int, error) {
	switch {
	case size == 0:
		return 0, nil
	case size < 1:
		return int(round(size * float64(n))), nil
	case size != math.Trunc(size):
		return 0, fmt.Errorf("row count %v is not an integer, %w", size, ErrInvalidInput)
	case int(size) > n:
		return 0, fmt.Errorf("row count %v exceeds %d rows, %w", size, n, ErrInvalidInput)
	}
	return int(size), nil
}

// splitByHorizon keeps the last max(fh) rows out of training and uses the rows at the horizon's
// steps as the test set. The test set is not revalidated since it may skip periods.
func splitByHorizon(td *timedataset.TimeDataset, fh *horizon.Horizon) (*timedataset.TimeDataset, *timedataset.TimeDataset, error) {
	if !fh.IsRelative() {
		return nil, nil, fmt.Errorf("%v, %w", horizon.ErrNotRelative, ErrInvalidInput)
	}
	steps := fh.Steps()
	minStep, _ := fh.Min()
	maxStep, _ := fh.Max()
	if minStep < 1 {
		return nil, nil, fmt.Errorf("horizon step %d must be positive, %w", minStep, ErrInvalidInput)
	}

	n := td.Len()
	nTrain := n - maxStep
	if nTrain < 1 {
		return nil, nil, fmt.Errorf("horizon max %d leaves no training rows out of %d, %w", maxStep, n, ErrInvalidInput)
	}

	train, err := td.Slice(0, nTrain)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to slice training set, %v, %w", err, ErrInvalidInput)
	}

	// rows are taken in time order once each, so a sparse horizon gives a gapped test index
	steps = slices.Compact(slices.Sorted(slices.Values(steps)))
	testIdx := make(timedataset.Index, 0, len(steps))
	testY := make([][]float64, 0, len(steps))
	for _, step := range steps {
		row := nTrain - 1 + step
		testIdx = append(testIdx, td.Index[row])
		testY = append(testY, td.Y[row])
	}
	test := &timedataset.TimeDataset{
		Index:   testIdx,
		Columns: append([]string(nil), td.Columns...),
		Y:       testY,
	}
	return train, test.Copy(), nil
}
