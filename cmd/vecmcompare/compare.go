package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	forecaster "github.com/aouyang1/go-vecm"
	"github.com/aouyang1/go-vecm/horizon"
	"github.com/aouyang1/go-vecm/internal/config"
	mat_ "github.com/aouyang1/go-vecm/mat"
	"github.com/aouyang1/go-vecm/modelselection"
	"github.com/aouyang1/go-vecm/timedataset"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

var ErrMismatch = errors.New("forecaster and reference disagree")

// Report summarizes one comparison run
type Report struct {
	RunID      string      `json:"run_id" yaml:"run_id"`
	Seed       uint64      `json:"seed" yaml:"seed"`
	Columns    []string    `json:"columns" yaml:"columns"`
	TrainRows  int         `json:"train_rows" yaml:"train_rows"`
	TestRows   int         `json:"test_rows" yaml:"test_rows"`
	Cutoff     string      `json:"cutoff" yaml:"cutoff"`
	Horizon    []int       `json:"horizon" yaml:"horizon"`
	Index      []string    `json:"index" yaml:"index"`
	Forecast   [][]float64 `json:"forecast" yaml:"forecast"`
	Reference  [][]float64 `json:"reference" yaml:"reference"`
	MaxAbsDiff float64     `json:"max_abs_diff" yaml:"max_abs_diff"`
	Passed     bool        `json:"passed" yaml:"passed"`
	Mismatch   string      `json:"mismatch,omitempty" yaml:"mismatch,omitempty"`
}

// Compare generates the synthetic table, fits both forecasters on the training split and compares
// their forecasts at the configured horizon. A disagreement is reported, not returned as an error.
func Compare(cfg *config.Config, runID string, logger zerolog.Logger) (*Report, error) {
	startPeriod, err := cfg.Data.StartPeriod()
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(cfg.Data.Seed, cfg.Data.Seed))
	index := timedataset.GenerateIndex(startPeriod, cfg.Data.Rows)
	y, err := timedataset.GenerateRandIntTable(rng, index, cfg.Data.Columns, cfg.Data.Low, cfg.Data.High)
	if err != nil {
		return nil, fmt.Errorf("unable to generate table, %w", err)
	}

	train, test, err := modelselection.TemporalTrainTestSplit(y, &modelselection.SplitOptions{TestSize: cfg.Compare.TestSize})
	if err != nil {
		return nil, fmt.Errorf("unable to split table, %w", err)
	}
	logger.Info().
		Int("train_rows", train.Len()).
		Int("test_rows", test.Len()).
		Str("cutoff", train.Cutoff().String()).
		Msg("split synthetic table")

	fh, err := horizon.NewRelative(cfg.Compare.Horizon...)
	if err != nil {
		return nil, fmt.Errorf("unable to build horizon, %w", err)
	}

	opt := &forecaster.Options{VECMOptions: cfg.Model.VECMOptions()}
	sut, err := forecaster.New(opt)
	if err != nil {
		return nil, err
	}
	if err := sut.Fit(train, fh); err != nil {
		return nil, fmt.Errorf("unable to fit forecaster, %w", err)
	}
	actual, err := sut.Predict(fh)
	if err != nil {
		return nil, fmt.Errorf("unable to predict with forecaster, %w", err)
	}
	logger.Debug().Str("horizon", fh.String()).Msg("forecaster predicted")

	ref, err := forecaster.NewStepVECM(opt.VECMOptions)
	if err != nil {
		return nil, err
	}
	if err := ref.Fit(train, fh); err != nil {
		return nil, fmt.Errorf("unable to fit reference, %w", err)
	}
	expected, err := ref.Predict(fh)
	if err != nil {
		return nil, fmt.Errorf("unable to predict with reference, %w", err)
	}
	logger.Debug().Str("horizon", fh.String()).Msg("reference predicted")

	report := &Report{
		RunID:     runID,
		Seed:      cfg.Data.Seed,
		Columns:   actual.Columns,
		TrainRows: train.Len(),
		TestRows:  test.Len(),
		Cutoff:    train.Cutoff().String(),
		Horizon:   fh.Steps(),
		Forecast:  actual.Forecast,
		Reference: expected.Forecast,
		Passed:    true,
	}
	for _, p := range actual.Index {
		report.Index = append(report.Index, p.String())
	}
	report.MaxAbsDiff = maxAbsDiff(actual.Forecast, expected.Forecast)

	tol := &mat_.AllCloseOptions{RTol: cfg.Compare.RTol, ATol: cfg.Compare.ATol, EqualNaN: true}
	if err := mat_.AllCloseRows(actual.Forecast, expected.Forecast, tol); err != nil {
		if !errors.Is(err, mat_.ErrNotClose) && !errors.Is(err, mat_.ErrShapeMismatch) {
			return nil, err
		}
		report.Passed = false
		report.Mismatch = err.Error()
		logger.Warn().Err(err).Msg("forecasts disagree")
	} else {
		logger.Info().Float64("max_abs_diff", report.MaxAbsDiff).Msg("forecasts agree")
	}

	if cfg.Report.Plot != "" {
		if err := writePlot(sut, fh, cfg.Report.Plot); err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.Report.Plot).Msg("wrote plot")
	}
	if cfg.Report.ModelOut != "" {
		if err := writeModel(sut, cfg.Report.ModelOut); err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.Report.ModelOut).Msg("wrote model")
	}
	return report, nil
}

// maxAbsDiff returns the largest elementwise difference, ignoring positions where either is NaN
func maxAbsDiff(a, b [][]float64) float64 {
	var out float64
	for i := 0; i < len(a) && i < len(b); i++ {
		for j := 0; j < len(a[i]) && j < len(b[i]); j++ {
			d := math.Abs(a[i][j] - b[i][j])
			if !math.IsNaN(d) {
				out = math.Max(out, d)
			}
		}
	}
	return out
}

func writePlot(f *forecaster.VECM, fh *horizon.Horizon, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create plot file, %w", err)
	}
	defer file.Close()

	if err := f.PlotFit(file, fh); err != nil {
		return fmt.Errorf("unable to plot fit, %w", err)
	}
	return nil
}

func writeModel(f *forecaster.VECM, path string) error {
	m, err := f.Model()
	if err != nil {
		return err
	}
	bytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal model, %w", err)
	}
	return os.WriteFile(path, bytes, 0o644)
}
