package kafka

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dallyp22/Scheduler-VS/pkg/cloudevents"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
	"github.com/dallyp22/Scheduler-VS/pkg/metrics"
	"github.com/dallyp22/Scheduler-VS/pkg/tracing"
)

// EventProducer publishes CloudEvents to a topic
type EventProducer interface {
	PublishEvent(ctx context.Context, topic string, event *cloudevents.SchedulingCloudEvent) error
	Close() error
}

func addEventAttributes(span trace.Span, event *cloudevents.SchedulingCloudEvent) {
	span.SetAttributes(
		attribute.String("messaging.kafka.event_type", event.Type),
		attribute.String("messaging.message_id", event.ID),
	)
	if event.CorrelationID != "" {
		span.SetAttributes(attribute.String("aips.correlation_id", event.CorrelationID))
	}
	if event.ScheduleID != "" {
		span.SetAttributes(attribute.String("aips.schedule_id", event.ScheduleID))
	}
}

// InstrumentedProducer wraps a producer with metrics and tracing
type InstrumentedProducer struct {
	producer EventProducer
	metrics  *metrics.Metrics
	logger   *logging.Logger
	tracer   trace.Tracer
}

// NewInstrumentedProducer creates a new instrumented producer
func NewInstrumentedProducer(producer EventProducer, m *metrics.Metrics, logger *logging.Logger) *InstrumentedProducer {
	return &InstrumentedProducer{
		producer: producer,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("kafka-producer"),
	}
}

// PublishEvent publishes a CloudEvent and propagates the span as W3C trace context
func (p *InstrumentedProducer) PublishEvent(ctx context.Context, topic string, event *cloudevents.SchedulingCloudEvent) error {
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "kafka.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(tracing.MessagingSpanAttributes("kafka", topic, "publish")...),
	)
	addEventAttributes(span, event)

	if parent, state := tracing.EventTraceContext(ctx); parent != "" {
		event.TraceParent = parent
		event.TraceState = state
	}

	err := p.producer.PublishEvent(ctx, topic, event)
	duration := time.Since(start)

	success := err == nil
	if p.metrics != nil {
		p.metrics.RecordKafkaPublish(topic, event.Type, success, duration)
	}
	if p.logger != nil {
		p.logger.KafkaPublish(ctx, topic, event.Type, success, duration)
	}

	tracing.Finish(span, err)
	return err
}

// Close closes the underlying producer
func (p *InstrumentedProducer) Close() error {
	return p.producer.Close()
}

// InstrumentedConsumer wraps a Consumer with metrics and tracing
type InstrumentedConsumer struct {
	consumer *Consumer
	metrics  *metrics.Metrics
	logger   *logging.Logger
	tracer   trace.Tracer
}

// NewInstrumentedConsumer creates a new instrumented consumer
func NewInstrumentedConsumer(consumer *Consumer, m *metrics.Metrics, logger *logging.Logger) *InstrumentedConsumer {
	return &InstrumentedConsumer{
		consumer: consumer,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("kafka-consumer"),
	}
}

// Subscribe subscribes to a topic with an instrumented handler
func (c *InstrumentedConsumer) Subscribe(topic string, eventType string, handler EventHandler) {
	c.consumer.Subscribe(topic, eventType, c.instrumentHandler(topic, handler))
}

// instrumentHandler continues the producer's trace and records the outcome
func (c *InstrumentedConsumer) instrumentHandler(topic string, handler EventHandler) EventHandler {
	return func(ctx context.Context, event *cloudevents.SchedulingCloudEvent) error {
		start := time.Now()

		ctx = tracing.ContextFromEvent(ctx, event.TraceParent, event.TraceState)

		ctx, span := c.tracer.Start(ctx, "kafka.consume",
			trace.WithSpanKind(trace.SpanKindConsumer),
			trace.WithAttributes(tracing.MessagingSpanAttributes("kafka", topic, "receive")...),
			trace.WithAttributes(attribute.String("messaging.kafka.consumer_group", c.consumer.config.ConsumerGroup)),
		)
		addEventAttributes(span, event)

		err := handler(ctx, event)

		success := err == nil
		if c.metrics != nil {
			c.metrics.RecordKafkaConsume(topic, event.Type, success)
		}
		if c.logger != nil {
			c.logger.KafkaConsume(ctx, topic, event.Type, success)
		}

		span.SetAttributes(attribute.Int64("messaging.processing_duration_ms", time.Since(start).Milliseconds()))
		tracing.Finish(span, err)
		return err
	}
}

// Start starts the instrumented consumer
func (c *InstrumentedConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

// Close closes the underlying consumer
func (c *InstrumentedConsumer) Close() error {
	return c.consumer.Close()
}
