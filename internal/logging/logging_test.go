package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"err", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.name))
		})
	}
}

func TestSetup_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := setup(&buf, "warn", "json")

	logger.Info("dropped")
	logger.Warn("kept", "node", "pve1")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "pve1", record["node"])
	assert.Equal(t, "WARN", record["level"])
	assert.Same(t, logger, slog.Default())
}

func TestSetup_Text(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := setup(&buf, "info", "text")
	logger.Info("topology built", "nodes", 3)

	out := buf.String()
	assert.Contains(t, out, "topology built")
	assert.Contains(t, out, "nodes=3")
	assert.NotContains(t, out, "\x1b[", "no colors when not writing to a terminal")
}

func TestContextLogger(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	logger := Discard()
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}
