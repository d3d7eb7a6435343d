package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, sonic.UnmarshalString(line, &entry))
		out = append(out, entry)
	}
	return out
}

func TestLogger_WritesFieldsAndTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf, Fields: []any{"service", "futsal-ledger"}})

	traceID, _ := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	spanID, _ := trace.SpanIDFromHex("0123456789abcdef")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.Debug("hidden")
	logger.InfoContext(ctx, "attendance recorded", "date", "2025-10-20", "player_ids", []int64{1, 2})
	logger.With("component", "test").Warn("careful", "error", errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "attendance recorded", lines[0]["msg"])
	assert.Equal(t, "futsal-ledger", lines[0]["service"])
	assert.Equal(t, "2025-10-20", lines[0]["date"])
	assert.Equal(t, "0123456789abcdef0123456789abcdef", lines[0]["trace_id"])
	assert.Equal(t, "0123456789abcdef", lines[0]["span_id"])

	assert.Equal(t, "WARN", lines[1]["level"])
	assert.Equal(t, "test", lines[1]["component"])
	assert.Equal(t, "boom", lines[1]["error"])
}

func TestLogger_OddArgsAndNilReceiver(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})
	logger.Info("odd", "dangling")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "dangling")

	var nilLogger *Logger
	assert.NotPanics(t, func() { nilLogger.Info("ignored") })
	assert.NoError(t, nilLogger.Sync())
}

func TestLogger_Named(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf}).Named("roster")
	logger.Info("player added")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "roster", lines[0]["logger"])
}

func TestContextLogger(t *testing.T) {
	logger := NewNop()
	ctx := WithContext(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, Default(), FromContext(context.Background()))
}

func TestSetDefault(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	logger := NewNop()
	SetDefault(logger)
	assert.Same(t, logger, Default())

	SetDefault(nil)
	assert.NotNil(t, Default())
}
