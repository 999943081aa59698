package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	traceParentKey = "traceparent"
	traceStateKey  = "tracestate"
)

// eventCarrier adapts the CloudEvents distributed tracing extension to the
// OTel text map interface
type eventCarrier struct {
	parent string
	state  string
}

func (c *eventCarrier) Get(key string) string {
	switch key {
	case traceParentKey:
		return c.parent
	case traceStateKey:
		return c.state
	}
	return ""
}

func (c *eventCarrier) Set(key, value string) {
	switch key {
	case traceParentKey:
		c.parent = value
	case traceStateKey:
		c.state = value
	}
}

func (c *eventCarrier) Keys() []string {
	return []string{traceParentKey, traceStateKey}
}

// EventTraceContext returns the traceparent and tracestate extension values
// for the span in ctx. Both are empty without a sampled span or propagator.
func EventTraceContext(ctx context.Context) (traceParent, traceState string) {
	carrier := &eventCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier.parent, carrier.state
}

// ContextFromEvent continues the trace carried by a CloudEvent
func ContextFromEvent(ctx context.Context, traceParent, traceState string) context.Context {
	if traceParent == "" {
		return ctx
	}
	return otel.GetTextMapPropagator().Extract(ctx, &eventCarrier{parent: traceParent, state: traceState})
}

// TraceID returns the hex trace ID of the span in ctx, or ""
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
