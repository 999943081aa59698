package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func newBufferLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New(&Config{
		Level:       level,
		ServiceName: "scheduler-api",
		Environment: "test",
		Version:     "1.0.0",
		Output:      buf,
	}), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLogger_BaseAttributes(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	logger.WithComponent("sequencer").WithError(errors.New("boom")).Info("Sequenced")

	entry := decodeLine(t, buf)
	assert.Equal(t, "scheduler-api", entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "sequencer", entry["component"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "Sequenced", entry["msg"])
}

func TestLogger_WithContext(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")

	logger.Performance(ctx, "GenerateSchedule", 1500*time.Millisecond, true, map[string]any{"blocks": 12})

	entry := decodeLine(t, buf)
	assert.Equal(t, "req-1", entry["requestId"])
	assert.Equal(t, "corr-1", entry["correlationId"])
	assert.Equal(t, "GenerateSchedule", entry["operation"])
	assert.EqualValues(t, 1500, entry["durationMs"])
	assert.EqualValues(t, 12, entry["blocks"])
	assert.NotContains(t, entry, "traceId")
}

func TestLogger_WithContextSpan(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	provider := sdktrace.NewTracerProvider()
	ctx, span := provider.Tracer("test").Start(context.Background(), "schedule.generate")
	defer span.End()

	logger.WithContext(ctx).Info("Generating")

	entry := decodeLine(t, buf)
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["traceId"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["spanId"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn)

	logger.KafkaPublish(context.Background(), "topic", "type", true, time.Millisecond)
	assert.Zero(t, buf.Len())

	logger.KafkaConsume(context.Background(), "topic", "type", false)
	entry := decodeLine(t, buf)
	assert.Equal(t, "ERROR", entry["level"])
}

func TestLogger_HTTPRequestLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{200, "INFO"},
		{404, "WARN"},
		{503, "ERROR"},
	}

	for _, tt := range tests {
		logger, buf := newBufferLogger(LevelDebug)
		logger.HTTPRequest(context.Background(), "GET", "/api/v1/skus", tt.status, time.Millisecond, "127.0.0.1", "test")

		entry := decodeLine(t, buf)
		assert.Equal(t, tt.level, entry["level"])
		assert.EqualValues(t, tt.status, entry["status"])
	}
}
