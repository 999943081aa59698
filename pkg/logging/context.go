package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	correlationIDKey
)

// ContextWithRequestID stores the HTTP request ID
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ContextWithCorrelationID stores the ID that ties an API call to the events it emits
func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// RequestID returns the request ID in ctx, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// CorrelationID returns the correlation ID in ctx, or ""
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// WithContext adds request, correlation and trace identifiers found in ctx.
// Trace identifiers come from the active OTel span.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	var attrs []any
	if id := RequestID(ctx); id != "" {
		attrs = append(attrs, "requestId", id)
	}
	if id := CorrelationID(ctx); id != "" {
		attrs = append(attrs, "correlationId", id)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs, "traceId", sc.TraceID().String(), "spanId", sc.SpanID().String())
	}
	if len(attrs) == 0 {
		return l
	}
	return l.with(attrs...)
}
