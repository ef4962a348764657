package logging

import (
	"bytes"
	"testing"

	"github.com/aouyang1/go-vecm/internal/config"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig(t *testing.T) {
	testData := map[string]struct {
		cfg       config.LoggingConfig
		debugSeen bool
		infoSeen  bool
	}{
		"debug": {
			cfg:       config.LoggingConfig{Level: "debug", Format: "json"},
			debugSeen: true,
			infoSeen:  true,
		},
		"info": {
			cfg:      config.LoggingConfig{Level: "info", Format: "json"},
			infoSeen: true,
		},
		"warn": {
			cfg: config.LoggingConfig{Level: "warn", Format: "json"},
		},
		"unknown level falls back to info": {
			cfg:      config.LoggingConfig{Level: "loud", Format: "json"},
			infoSeen: true,
		},
		"empty level falls back to info": {
			cfg:      config.LoggingConfig{Format: "json"},
			infoSeen: true,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewFromConfig(td.cfg, &buf)
			l.Debug().Msg("debug message")
			l.Info().Msg("info message")

			assert.Equal(t, td.debugSeen, bytes.Contains(buf.Bytes(), []byte("debug message")))
			assert.Equal(t, td.infoSeen, bytes.Contains(buf.Bytes(), []byte("info message")))
		})
	}
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	l := WithRunID(NewFromConfig(config.LoggingConfig{Level: "info", Format: "json"}, &buf), "abc")
	l.Info().Int("rows", 23).Msg("fit")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "abc", event["run_id"])
	assert.Equal(t, "fit", event["message"])
	assert.Equal(t, float64(23), event["rows"])
	assert.Equal(t, "info", event["level"])
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(config.LoggingConfig{Level: "info", Format: "console"}, &buf)
	l.Info().Str("column", "A").Msg("fit")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "fit")
	assert.Contains(t, out, "column=A")
	assert.NotContains(t, out, "{")
}
