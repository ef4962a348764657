// Package forecaster provides horizon aware forecasters for multivariate time series. Models are
// fit on a time indexed dataset and asked for predictions at a forecast horizon, either relative
// steps from the end of training or absolute periods.
package forecaster

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-vecm/horizon"
	"github.com/aouyang1/go-vecm/period"
	"github.com/aouyang1/go-vecm/timedataset"
	"github.com/aouyang1/go-vecm/vecm"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrUntrainedForecaster = errors.New("forecaster has not been trained yet")
	ErrNoHorizon           = errors.New("no forecast horizon provided at fit or predict")
	ErrHorizonMismatch     = errors.New("predict horizon differs from the horizon given at fit")
	ErrHorizonOutOfRange   = errors.New("horizon step is before the start of the training data")
	ErrNoOptionsInModel    = errors.New("no options set in model")
	ErrInvalidCoverage     = errors.New("coverage must be in (0, 1)")
)

// Forecaster fits a model on a time indexed dataset and predicts at a forecast horizon. The
// horizon given at fit is optional and becomes the default for predict.
type Forecaster interface {
	Fit(y *timedataset.TimeDataset, fh *horizon.Horizon) error
	Predict(fh *horizon.Horizon) (*Results, error)
}

var (
	_ Forecaster = (*VECM)(nil)
	_ Forecaster = (*StepVECM)(nil)
)

// VECM forecasts a multivariate series with a vector error correction model. Out of sample steps
// come from a single dense forecast up to the largest step and in sample steps are served from the
// fitted values.
type VECM struct {
	opt    *Options
	engine *vecm.VECM

	res             *vecm.Results
	fitTrainingData *timedataset.TimeDataset
	cutoff          period.Period
	columns         []string
	fh              *horizon.Horizon
}

// New creates a new VECM forecaster using the provided options. If no options are provided a
// default is used.
func New(opt *Options) (*VECM, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	engine, err := vecm.New(opt.VECMOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize vecm, %w", err)
	}
	engineOpt := engine.Options()
	return &VECM{
		opt:    &Options{VECMOptions: &engineOpt},
		engine: engine,
	}, nil
}

// NewFromModel creates a forecaster from a model generated by a previous call to Model(). It can
// predict out of sample steps immediately without training. In sample steps need the training
// data and return an error.
func NewFromModel(model Model) (*VECM, error) {
	if model.Options == nil {
		return nil, ErrNoOptionsInModel
	}
	f, err := New(model.Options)
	if err != nil {
		return nil, err
	}
	res, err := vecm.NewResultsFromModel(model.VECM)
	if err != nil {
		return nil, fmt.Errorf("unable to load vecm model, %w", err)
	}
	if len(model.Columns) != res.NumVars() {
		return nil, fmt.Errorf(
			"model has %d columns, but %d variables, %w",
			len(model.Columns), res.NumVars(), vecm.ErrInvalidModel,
		)
	}
	if model.Horizon != nil {
		if f.fh, err = horizon.NewRelative(model.Horizon.Steps()...); err != nil {
			return nil, fmt.Errorf("unable to load model horizon, %w", err)
		}
	}
	f.res = res
	f.cutoff = model.Cutoff
	f.columns = append([]string(nil), model.Columns...)
	return f, nil
}

// Fit validates the training data, records its cutoff and the optional forecast horizon, and
// estimates the model
func (f *VECM) Fit(y *timedataset.TimeDataset, fh *horizon.Horizon) error {
	if y == nil {
		return timedataset.ErrNoTrainingData
	}
	td, err := timedataset.NewDataset(y.Index, y.Columns, y.Y)
	if err != nil {
		return fmt.Errorf("unable to validate training data, %w", err)
	}

	var fitHorizon *horizon.Horizon
	if fh != nil {
		if fitHorizon, err = fh.ToRelative(td.Cutoff()); err != nil {
			return fmt.Errorf("unable to convert fit horizon, %w", err)
		}
	}

	res, err := f.engine.Fit(td.Matrix())
	if err != nil {
		return fmt.Errorf("unable to fit vecm, %w", err)
	}

	f.res = res
	f.fitTrainingData = td
	f.cutoff = td.Cutoff()
	f.columns = append([]string(nil), td.Columns...)
	f.fh = fitHorizon
	return nil
}

// Predict returns one forecast row per horizon entry in the horizon's order. A nil horizon uses
// the horizon given at fit.
func (f *VECM) Predict(fh *horizon.Horizon) (*Results, error) {
	return f.predict(fh, 0)
}

// PredictInterval is Predict with lower and upper bounds of the given coverage, e.g. 0.95. In
// sample steps have NaN bounds.
func (f *VECM) PredictInterval(fh *horizon.Horizon, coverage float64) (*Results, error) {
	if !(coverage > 0 && coverage < 1) {
		return nil, fmt.Errorf("got %v, %w", coverage, ErrInvalidCoverage)
	}
	return f.predict(fh, coverage)
}

func (f *VECM) resolveHorizon(fh *horizon.Horizon) (*horizon.Horizon, error) {
	if fh == nil {
		if f.fh == nil {
			return nil, ErrNoHorizon
		}
		return f.fh, nil
	}
	rel, err := fh.ToRelative(f.cutoff)
	if err != nil {
		return nil, fmt.Errorf("unable to convert horizon, %w", err)
	}
	if f.fh != nil && !f.fh.Equal(rel) {
		return nil, fmt.Errorf("fit %s, predict %s, %w", f.fh, rel, ErrHorizonMismatch)
	}
	return rel, nil
}

func (f *VECM) predict(fh *horizon.Horizon, coverage float64) (*Results, error) {
	if f == nil || f.res == nil {
		return nil, ErrUntrainedForecaster
	}
	rel, err := f.resolveHorizon(fh)
	if err != nil {
		return nil, err
	}
	abs, err := rel.ToAbsolute(f.cutoff)
	if err != nil {
		return nil, fmt.Errorf("unable to index horizon, %w", err)
	}

	steps := rel.Steps()
	withInterval := coverage > 0

	res := &Results{
		Index:    abs.Periods(),
		Columns:  append([]string(nil), f.columns...),
		Forecast: make([][]float64, len(steps)),
	}
	if withInterval {
		res.Lower = make([][]float64, len(steps))
		res.Upper = make([][]float64, len(steps))
	}

	// out of sample steps are extracted from one dense run
	var outPos []int
	var outSteps []int
	for i, step := range steps {
		if step > 0 {
			outPos = append(outPos, i)
			outSteps = append(outSteps, step)
		}
	}
	if len(outSteps) > 0 {
		oos, err := horizon.NewRelative(outSteps...)
		if err != nil {
			return nil, err
		}
		maxStep, err := oos.Max()
		if err != nil {
			return nil, err
		}

		var point, lower, upper *mat.Dense
		if withInterval {
			point, lower, upper, err = f.res.PredictInterval(maxStep, 1-coverage)
		} else {
			point, err = f.res.Predict(maxStep)
		}
		if err != nil {
			return nil, fmt.Errorf("unable to predict %d steps, %w", maxStep, err)
		}

		if err := scatterRows(res.Forecast, point, outSteps, outPos); err != nil {
			return nil, err
		}
		if withInterval {
			if err := scatterRows(res.Lower, lower, outSteps, outPos); err != nil {
				return nil, err
			}
			if err := scatterRows(res.Upper, upper, outSteps, outPos); err != nil {
				return nil, err
			}
		}
	}

	for i, step := range steps {
		if step > 0 {
			continue
		}
		row, err := f.fittedRow(step)
		if err != nil {
			return nil, err
		}
		res.Forecast[i] = row
		if withInterval {
			res.Lower[i] = nanRow(len(f.columns))
			res.Upper[i] = nanRow(len(f.columns))
		}
	}
	return res, nil
}

// scatterRows extracts the steps from a dense run and writes them to dst at the given positions
func scatterRows(dst [][]float64, dense mat.Matrix, steps, pos []int) error {
	sparse, err := horizon.Extract(dense, steps)
	if err != nil {
		return fmt.Errorf("unable to extract horizon steps, %w", err)
	}
	for i, p := range pos {
		dst[p] = mat.Row(nil, i, sparse)
	}
	return nil
}

// fittedRow returns the fitted values at step <= 0 where 0 is the cutoff
func (f *VECM) fittedRow(step int) ([]float64, error) {
	fitted, err := f.res.FittedValues()
	if err != nil {
		return nil, fmt.Errorf("unable to serve in sample step %d, %w", step, err)
	}
	n, _ := fitted.Dims()
	row := n - 1 + step
	if row < 0 {
		return nil, fmt.Errorf("step %d with %d training rows, %w", step, n, ErrHorizonOutOfRange)
	}
	return mat.Row(nil, row, fitted), nil
}

func nanRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.NaN()
	}
	return row
}

// Model generates a serializeable representation of the options, cutoff and the fitted VECM.
// This can be used to initialize a new forecaster for immediate predictions skipping training.
func (f *VECM) Model() (Model, error) {
	if f == nil || f.res == nil {
		return Model{}, ErrUntrainedForecaster
	}
	return Model{
		Options: f.opt,
		Cutoff:  f.cutoff,
		Columns: append([]string(nil), f.columns...),
		Horizon: f.fh,
		VECM:    f.res.Model(),
	}, nil
}

// TrainingData returns the training data used to fit the current forecaster model
func (f *VECM) TrainingData() *timedataset.TimeDataset {
	return f.fitTrainingData
}

// Cutoff returns the last training period. Relative horizons are measured from it.
func (f *VECM) Cutoff() period.Period {
	return f.cutoff
}

// Horizon returns the relative horizon given at fit, nil if none was given
func (f *VECM) Horizon() *horizon.Horizon {
	return f.fh
}

// VECMResults returns the underlying fitted model
func (f *VECM) VECMResults() *vecm.Results {
	return f.res
}

// FitResults returns the in sample fitted values over the training index. Rows before the first
// fitted value are NaN.
func (f *VECM) FitResults() (*Results, error) {
	if f == nil || f.res == nil {
		return nil, ErrUntrainedForecaster
	}
	if f.fitTrainingData == nil {
		return nil, vecm.ErrNoFittedValues
	}
	fitted, err := f.res.FittedValues()
	if err != nil {
		return nil, err
	}
	n, _ := fitted.Dims()
	res := &Results{
		Index:    append([]period.Period(nil), f.fitTrainingData.Index...),
		Columns:  append([]string(nil), f.columns...),
		Forecast: make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		res.Forecast[i] = mat.Row(nil, i, fitted)
	}
	return res, nil
}
