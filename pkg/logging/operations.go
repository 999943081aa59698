package logging

import (
	"context"
	"log/slog"
	"time"
)

// Performance logs the duration and outcome of a scheduling operation
func (l *Logger) Performance(ctx context.Context, operation string, duration time.Duration, success bool, details map[string]any) {
	attrs := make([]any, 0, 6+len(details)*2)
	attrs = append(attrs, "operation", operation, "durationMs", duration.Milliseconds(), "success", success)
	for k, v := range details {
		attrs = append(attrs, k, v)
	}
	l.WithContext(ctx).Info("Operation finished", attrs...)
}

// HTTPRequest logs a served request. 4xx is a warning, 5xx an error.
func (l *Logger) HTTPRequest(ctx context.Context, method, path string, status int, duration time.Duration, clientIP, userAgent string) {
	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	l.WithContext(ctx).Log(ctx, level, "HTTP request",
		"method", method,
		"path", path,
		"status", status,
		"durationMs", duration.Milliseconds(),
		"clientIP", clientIP,
		"userAgent", userAgent,
	)
}

// DatabaseQuery logs a MongoDB operation; failures are errors, the rest debug
func (l *Logger) DatabaseQuery(ctx context.Context, collection, operation string, duration time.Duration, success bool) {
	l.WithContext(ctx).Log(ctx, outcomeLevel(success), "Database query",
		"collection", collection,
		"operation", operation,
		"durationMs", duration.Milliseconds(),
		"success", success,
	)
}

// KafkaPublish logs an emitted CloudEvent
func (l *Logger) KafkaPublish(ctx context.Context, topic, eventType string, success bool, duration time.Duration) {
	l.WithContext(ctx).Log(ctx, outcomeLevel(success), "Kafka publish",
		"topic", topic,
		"eventType", eventType,
		"success", success,
		"durationMs", duration.Milliseconds(),
	)
}

// KafkaConsume logs a handled feedback event
func (l *Logger) KafkaConsume(ctx context.Context, topic, eventType string, success bool) {
	l.WithContext(ctx).Log(ctx, outcomeLevel(success), "Kafka consume",
		"topic", topic,
		"eventType", eventType,
		"success", success,
	)
}

// WorkflowStart logs a Temporal workflow start
func (l *Logger) WorkflowStart(ctx context.Context, workflowType, workflowID string) {
	l.WithContext(ctx).Info("Workflow started",
		"workflowType", workflowType,
		"workflowId", workflowID,
	)
}

func outcomeLevel(success bool) slog.Level {
	if success {
		return slog.LevelDebug
	}
	return slog.LevelError
}
