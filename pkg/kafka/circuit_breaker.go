package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/dallyp22/Scheduler-VS/pkg/cloudevents"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
	"github.com/dallyp22/Scheduler-VS/pkg/metrics"
	"github.com/dallyp22/Scheduler-VS/pkg/resilience"
)

// CircuitBreakerProducer wraps a producer with circuit breaker protection
type CircuitBreakerProducer struct {
	producer       EventProducer
	circuitBreaker *resilience.CircuitBreaker
}

// NewCircuitBreakerProducer creates a new circuit breaker protected Kafka producer
func NewCircuitBreakerProducer(producer EventProducer, m *metrics.Metrics, logger *logging.Logger) *CircuitBreakerProducer {
	config := &resilience.CircuitBreakerConfig{
		Name:                  "kafka-producer",
		MaxRequests:           5,
		Interval:              time.Minute,
		Timeout:               30 * time.Second,
		FailureThreshold:      5,
		FailureRatioThreshold: 0.5,
		MinRequestsToTrip:     10,
	}

	slogLogger := slog.Default()
	if logger != nil && logger.Logger != nil {
		slogLogger = logger.Logger
	}

	var observer resilience.StateObserver
	if m != nil {
		observer = m
	}

	return &CircuitBreakerProducer{
		producer:       producer,
		circuitBreaker: resilience.NewCircuitBreaker(config, slogLogger, observer),
	}
}

// PublishEvent publishes a CloudEvent with circuit breaker protection
func (p *CircuitBreakerProducer) PublishEvent(ctx context.Context, topic string, event *cloudevents.SchedulingCloudEvent) error {
	_, err := p.circuitBreaker.Execute(ctx, func() (interface{}, error) {
		return nil, p.producer.PublishEvent(ctx, topic, event)
	})
	return err
}

// Close closes the underlying producer
func (p *CircuitBreakerProducer) Close() error {
	return p.producer.Close()
}

// NewProductionProducer creates a Kafka producer with instrumentation and a circuit breaker
func NewProductionProducer(config *Config, m *metrics.Metrics, logger *logging.Logger) *CircuitBreakerProducer {
	instrumented := NewInstrumentedProducer(NewProducer(config), m, logger)
	return NewCircuitBreakerProducer(instrumented, m, logger)
}

// NewProductionConsumer creates a Kafka consumer with instrumentation
func NewProductionConsumer(config *Config, m *metrics.Metrics, logger *logging.Logger) *InstrumentedConsumer {
	return NewInstrumentedConsumer(NewConsumer(config, logger), m, logger)
}
