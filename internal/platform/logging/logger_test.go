package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{
		Level:   "info",
		Format:  "json",
		Service: "quotevault",
		Version: "test",
	}, &buf)

	logger.Info("hello", slog.String("key", "value"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "quotevault", entry["service_name"])
	assert.Equal(t, "test", entry["service_version"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "warn", Format: "json"}, &buf)

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "info", Format: "text"}, &buf)
	logger.Info("plain")

	assert.Contains(t, buf.String(), "msg=plain")
}

func TestNewWithWriter_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)

	logger.Info("login attempt",
		slog.String("username", "admin"),
		slog.String("password", "hunter2"),
		slog.String("api_key", "sk-123456"),
	)

	out := buf.String()
	assert.Contains(t, out, "admin")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "sk-123456")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)

	ctx := WithContext(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-42")

	FromContext(ctx).Info("traced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
}

func TestMultiHandler_FansOut(t *testing.T) {
	var first, second bytes.Buffer

	handler := NewMultiHandler(
		slog.NewJSONHandler(&first, nil),
		slog.NewJSONHandler(&second, nil),
	)

	slog.New(handler).Info("both sinks")

	assert.Contains(t, first.String(), "both sinks")
	assert.Contains(t, second.String(), "both sinks")
}

func TestMultiHandler_RespectsLevels(t *testing.T) {
	var debugSink, errorSink bytes.Buffer

	handler := NewMultiHandler(
		slog.NewJSONHandler(&debugSink, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&errorSink, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	logger := slog.New(handler)
	logger.Debug("quiet")

	assert.Contains(t, debugSink.String(), "quiet")
	assert.Empty(t, strings.TrimSpace(errorSink.String()))
}
