// Package logging builds the zerolog logger used by the command line tools
package logging

import (
	"io"
	"time"

	"github.com/aouyang1/go-vecm/internal/config"
	"github.com/rs/zerolog"
)

// NewFromConfig creates a logger writing to w. Unknown levels fall back to info and the console
// format writes human readable lines instead of JSON.
func NewFromConfig(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" || cfg.Format == "pretty" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// WithRunID tags every event of the logger with the run identifier
func WithRunID(l zerolog.Logger, runID string) zerolog.Logger {
	return l.With().Str("run_id", runID).Logger()
}
