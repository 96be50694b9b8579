package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-dashboard/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestNewLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "info", Format: "json", Service: "tariff-dashboard"})

	logger.Debug("hidden")
	logger.Info("visible", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "tariff-dashboard", entry["service"])
	assert.Equal(t, "v", entry["k"])
}

func TestNewLoggerTo_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LoggerConfig{Level: "debug", Format: "text", Service: "svc"})

	logger.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "service=svc")
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithRequestID(ctx, "abc")
	assert.Equal(t, "abc", GetRequestID(ctx))
}

func TestStartSpan_Nesting(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-9")

	ctx, parent := StartSpan(ctx, "GET /api/report")
	_, child := StartSpan(ctx, "advisor.evaluate")

	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.NotEqual(t, parent.SpanID, child.SpanID)
	assert.Equal(t, "req-9", child.Tags["request_id"])
	assert.Same(t, parent, GetSpan(ctx))
	assert.Nil(t, GetSpan(context.Background()))
}

func TestSpan_End(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, span := StartSpan(context.Background(), "advisor.evaluate")
	span.SetTag("scenario", "Steel")
	span.SetError(errors.New("trade volume must be positive"))
	span.End(logger)

	require.NotNil(t, span.EndTime)
	require.NotNil(t, span.Duration)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "span finished", entry["msg"])
	assert.Equal(t, "Steel", entry["tag.scenario"])
	assert.Equal(t, "ERROR", entry["status"])
	assert.Equal(t, "trade volume must be positive", entry["error"])
}

func TestSpan_EndWithoutLogger(t *testing.T) {
	_, span := StartSpan(context.Background(), "op")
	span.End(nil)
	assert.NotNil(t, span.Duration)
}
