package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujay090/Dynamic-form-sub001/internal/config"
)

func TestNewHandler_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(newHandler(config.LogConfig{Level: "info", Format: "json"}, &buf))
	logger.Debug("hidden")
	logger.Info("record submitted", slog.String("form_type", "student"))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "record submitted", m["msg"])
	assert.Equal(t, "student", m["form_type"])
	assert.NotContains(t, m, "source")
}

func TestNewHandler_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(newHandler(config.LogConfig{Level: "debug", Format: "TEXT"}, &buf))
	logger.Debug("catalog reloaded")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=\"catalog reloaded\"")
	assert.Contains(t, out, "source=")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestBuildVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dev (commit: unknown, built: unknown)", BuildVersion())
}
