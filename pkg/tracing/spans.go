package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys owned by the scheduler
const (
	AttrStrategy      = attribute.Key("aips.schedule.strategy")
	AttrOrderCount    = attribute.Key("aips.schedule.orders")
	AttrLineCount     = attribute.Key("aips.schedule.lines")
	AttrMatrixSKUs    = attribute.Key("aips.matrix.skus")
	AttrMatrixVariant = attribute.Key("aips.matrix.variance")
	AttrScenario      = attribute.Key("aips.scenario.name")
)

// Finish sets the span status from err and ends the span
func Finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// TracedOperation runs fn inside a child span named name
func TracedOperation[T any](ctx context.Context, tracer trace.Tracer, name string, fn func(context.Context) (T, error), attrs ...attribute.KeyValue) (T, error) {
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	result, err := fn(ctx)
	Finish(span, err)
	return result, err
}

// ScheduleSpanAttributes describes a sequencing run
func ScheduleSpanAttributes(strategy string, orders, lines int) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrStrategy.String(strategy),
		AttrOrderCount.Int(orders),
		AttrLineCount.Int(lines),
	}
}

// MatrixSpanAttributes describes a changeover matrix build
func MatrixSpanAttributes(skus int, variance bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrMatrixSKUs.Int(skus),
		AttrMatrixVariant.Bool(variance),
	}
}

// ScenarioSpanAttributes describes a what-if scenario
func ScenarioSpanAttributes(name string, excludedLines int) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrScenario.String(name),
		attribute.Int("aips.scenario.excluded_lines", excludedLines),
	}
}

// MessagingSpanAttributes follows the OTel messaging conventions
func MessagingSpanAttributes(system, destination, operation string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("messaging.system", system),
		attribute.String("messaging.destination.name", destination),
		attribute.String("messaging.operation", operation),
	}
}

// DatabaseSpanAttributes follows the OTel database conventions
func DatabaseSpanAttributes(system, database, operation, collection string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", system),
		attribute.String("db.name", database),
		attribute.String("db.operation", operation),
	}
	if collection != "" {
		attrs = append(attrs, attribute.String("db.mongodb.collection", collection))
	}
	return attrs
}
