package forecaster

import (
	"fmt"

	"github.com/aouyang1/go-vecm/horizon"
	"github.com/aouyang1/go-vecm/period"
	"github.com/aouyang1/go-vecm/timedataset"
	"github.com/aouyang1/go-vecm/vecm"
	"gonum.org/v1/gonum/mat"
)

// StepVECM is a thin forecaster over the dense VECM forecast. It ignores the horizon at fit and
// answers a horizon by forecasting steps 1..max and taking row step-1 for every entry. Only out
// of sample steps are supported.
type StepVECM struct {
	engine *vecm.VECM

	res     *vecm.Results
	cutoff  period.Period
	columns []string
}

func NewStepVECM(opt *vecm.Options) (*StepVECM, error) {
	engine, err := vecm.New(opt)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize vecm, %w", err)
	}
	return &StepVECM{engine: engine}, nil
}

// Fit estimates the model on y. The horizon is unused.
func (s *StepVECM) Fit(y *timedataset.TimeDataset, _ *horizon.Horizon) error {
	if y == nil {
		return timedataset.ErrNoTrainingData
	}
	td, err := timedataset.NewDataset(y.Index, y.Columns, y.Y)
	if err != nil {
		return fmt.Errorf("unable to validate training data, %w", err)
	}
	res, err := s.engine.Fit(td.Matrix())
	if err != nil {
		return fmt.Errorf("unable to fit vecm, %w", err)
	}
	s.res = res
	s.cutoff = td.Cutoff()
	s.columns = append([]string(nil), td.Columns...)
	return nil
}

// PredictDense returns the dense forecast of steps 1..steps where row i is step i+1
func (s *StepVECM) PredictDense(steps int) (*mat.Dense, error) {
	if s.res == nil {
		return nil, ErrUntrainedForecaster
	}
	return s.res.Predict(steps)
}

// Predict forecasts up to the largest step of fh and re-indexes the dense run at fh's steps
func (s *StepVECM) Predict(fh *horizon.Horizon) (*Results, error) {
	if s.res == nil {
		return nil, ErrUntrainedForecaster
	}
	if fh == nil {
		return nil, ErrNoHorizon
	}
	rel, err := fh.ToRelative(s.cutoff)
	if err != nil {
		return nil, fmt.Errorf("unable to convert horizon, %w", err)
	}
	minStep, err := rel.Min()
	if err != nil {
		return nil, err
	}
	if minStep < 1 {
		return nil, fmt.Errorf("step %d is not after the cutoff, %w", minStep, horizon.ErrStepOutOfRange)
	}
	maxStep, err := rel.Max()
	if err != nil {
		return nil, err
	}

	dense, err := s.res.Predict(maxStep)
	if err != nil {
		return nil, fmt.Errorf("unable to predict %d steps, %w", maxStep, err)
	}
	sparse, err := horizon.Extract(dense, rel.Steps())
	if err != nil {
		return nil, fmt.Errorf("unable to extract horizon steps, %w", err)
	}

	abs, err := rel.ToAbsolute(s.cutoff)
	if err != nil {
		return nil, fmt.Errorf("unable to index horizon, %w", err)
	}
	rows, _ := sparse.Dims()
	res := &Results{
		Index:    abs.Periods(),
		Columns:  append([]string(nil), s.columns...),
		Forecast: make([][]float64, rows),
	}
	for i := 0; i < rows; i++ {
		res.Forecast[i] = mat.Row(nil, i, sparse)
	}
	return res, nil
}
