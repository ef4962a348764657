// Package config loads the vecmcompare settings from a yaml file, defaults and VECM_ environment
// variables
package config

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-vecm/period"
	"github.com/aouyang1/go-vecm/vecm"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidRows     = errors.New("rows must be at least 4")
	ErrInvalidColumns  = errors.New("at least two distinct columns are required")
	ErrInvalidBounds   = errors.New("low must be less than high")
	ErrInvalidHorizon  = errors.New("horizon steps must be positive")
	ErrInvalidTestSize = errors.New("test size must be in the open interval (0, 1)")
	ErrInvalidFormat   = errors.New("unknown report format")
	ErrInvalidTol      = errors.New("tolerances must be non-negative")
)

// Report formats
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Config is the complete vecmcompare configuration
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Model   ModelConfig   `mapstructure:"model"`
	Compare CompareConfig `mapstructure:"compare"`
	Report  ReportConfig  `mapstructure:"report"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig describes the synthetic integer table
type DataConfig struct {
	Seed    uint64   `mapstructure:"seed"`
	Rows    int      `mapstructure:"rows"`
	Start   string   `mapstructure:"start"`
	Freq    string   `mapstructure:"freq"`
	Columns []string `mapstructure:"columns"`
	Low     int      `mapstructure:"low"`  // inclusive
	High    int      `mapstructure:"high"` // exclusive
}

// ModelConfig mirrors the VECM estimation options
type ModelConfig struct {
	DiffLags      int    `mapstructure:"diff_lags"`
	CointRank     int    `mapstructure:"coint_rank"`
	Deterministic string `mapstructure:"deterministic"`
}

// CompareConfig controls the split, horizon and tolerance of the comparison
type CompareConfig struct {
	Horizon  []int   `mapstructure:"horizon"`
	TestSize float64 `mapstructure:"test_size"`
	RTol     float64 `mapstructure:"rtol"`
	ATol     float64 `mapstructure:"atol"`
}

// ReportConfig selects the report format and optional outputs. Empty paths disable the output.
type ReportConfig struct {
	Format     string `mapstructure:"format"`
	Plot       string `mapstructure:"plot"`
	ModelOut   string `mapstructure:"model_out"`
	CPUProfile string `mapstructure:"cpu_profile"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// DefaultConfig returns the configuration of the 23 x 2 monthly comparison
func DefaultConfig() *Config {
	opt := vecm.NewDefaultOptions()
	return &Config{
		Data: DataConfig{
			Seed:    42,
			Rows:    23,
			Start:   "2005-01",
			Freq:    "M",
			Columns: []string{"A", "B"},
			Low:     0,
			High:    100,
		},
		Model: ModelConfig{
			DiffLags:      opt.DiffLags,
			CointRank:     opt.CointRank,
			Deterministic: string(opt.Deterministic),
		},
		Compare: CompareConfig{
			Horizon:  []int{1, 3, 4, 5, 7, 9},
			TestSize: 0.25,
			RTol:     1e-7,
			ATol:     1e-8,
		},
		Report: ReportConfig{
			Format: FormatTable,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// StartPeriod parses the first period of the synthetic index
func (c DataConfig) StartPeriod() (period.Period, error) {
	freq, err := period.ParseFreq(c.Freq)
	if err != nil {
		return period.Period{}, err
	}
	return period.Parse(c.Start, freq)
}

// VECMOptions converts the model section to estimation options
func (c ModelConfig) VECMOptions() *vecm.Options {
	return &vecm.Options{
		DiffLags:      c.DiffLags,
		CointRank:     c.CointRank,
		Deterministic: vecm.Deterministic(c.Deterministic),
	}
}

// Validate checks every section of the configuration
func (c *Config) Validate() error {
	if c.Data.Rows < 4 {
		return fmt.Errorf("got %d, %w", c.Data.Rows, ErrInvalidRows)
	}
	if len(c.Data.Columns) < 2 {
		return ErrInvalidColumns
	}
	seen := make(map[string]struct{}, len(c.Data.Columns))
	for _, col := range c.Data.Columns {
		if _, exists := seen[col]; exists {
			return fmt.Errorf("duplicate column %q, %w", col, ErrInvalidColumns)
		}
		seen[col] = struct{}{}
	}
	if c.Data.Low >= c.Data.High {
		return fmt.Errorf("low %d, high %d, %w", c.Data.Low, c.Data.High, ErrInvalidBounds)
	}
	if _, err := c.Data.StartPeriod(); err != nil {
		return fmt.Errorf("invalid start period, %w", err)
	}

	if _, err := c.Model.VECMOptions().Validate(); err != nil {
		return fmt.Errorf("invalid model options, %w", err)
	}

	if len(c.Compare.Horizon) == 0 {
		return fmt.Errorf("empty horizon, %w", ErrInvalidHorizon)
	}
	for _, step := range c.Compare.Horizon {
		if step < 1 {
			return fmt.Errorf("step %d, %w", step, ErrInvalidHorizon)
		}
	}
	if c.Compare.TestSize <= 0 || c.Compare.TestSize >= 1 {
		return fmt.Errorf("got %.3f, %w", c.Compare.TestSize, ErrInvalidTestSize)
	}
	if c.Compare.RTol < 0 || c.Compare.ATol < 0 {
		return ErrInvalidTol
	}

	switch c.Report.Format {
	case FormatJSON, FormatYAML, FormatTable:
	default:
		return fmt.Errorf("%q, %w", c.Report.Format, ErrInvalidFormat)
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level, %w", err)
	}
	return nil
}
