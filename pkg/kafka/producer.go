package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dallyp22/Scheduler-VS/pkg/cloudevents"
)

// CloudEvent header names
const (
	HeaderSpecVersion   = "ce-specversion"
	HeaderType          = "ce-type"
	HeaderSource        = "ce-source"
	HeaderID            = "ce-id"
	HeaderTime          = "ce-time"
	HeaderContentType   = "content-type"
	HeaderCorrelationID = "ce-" + cloudevents.ExtCorrelationID
	HeaderWorkflowID    = "ce-" + cloudevents.ExtWorkflowID
	HeaderScheduleID    = "ce-" + cloudevents.ExtScheduleID
	HeaderTraceParent   = "ce-traceparent"
	HeaderTraceState    = "ce-tracestate"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer handles publishing messages to Kafka topics
type Producer struct {
	mu        sync.Mutex
	writers   map[string]messageWriter
	config    *Config
	newWriter func(topic string) messageWriter
}

// NewProducer creates a new Kafka producer
func NewProducer(config *Config) *Producer {
	p := &Producer{
		writers: make(map[string]messageWriter),
		config:  config,
	}
	p.newWriter = p.kafkaWriter
	return p
}

func (p *Producer) kafkaWriter(topic string) messageWriter {
	return &kafka.Writer{
		Addr:         kafka.TCP(p.config.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    p.config.BatchSize,
		BatchTimeout: p.config.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(p.config.RequiredAcks),
		Async:        false,
	}
}

// getWriter returns a writer for the specified topic, creating one if necessary
func (p *Producer) getWriter(topic string) messageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, exists := p.writers[topic]; exists {
		return writer
	}
	writer := p.newWriter(topic)
	p.writers[topic] = writer
	return writer
}

// PublishEvent publishes a CloudEvent to the specified topic
func (p *Producer) PublishEvent(ctx context.Context, topic string, event *cloudevents.SchedulingCloudEvent) error {
	msg, err := toMessage(event)
	if err != nil {
		return err
	}

	if err := p.getWriter(topic).WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event to topic %s: %w", topic, err)
	}
	return nil
}

// PublishBatch publishes multiple events to a topic in one write
func (p *Producer) PublishBatch(ctx context.Context, topic string, events []*cloudevents.SchedulingCloudEvent) error {
	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := toMessage(event)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.getWriter(topic).WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to publish batch to topic %s: %w", topic, err)
	}
	return nil
}

// Close closes all writers
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close writer for topic %s: %w", topic, err)
		}
	}
	return lastErr
}

// toMessage encodes an event as structured JSON with binary-mode ce-* headers
func toMessage(event *cloudevents.SchedulingCloudEvent) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Subject),
		Value: data,
		Headers: []kafka.Header{
			{Key: HeaderSpecVersion, Value: []byte(event.SpecVersion)},
			{Key: HeaderType, Value: []byte(event.Type)},
			{Key: HeaderSource, Value: []byte(event.Source)},
			{Key: HeaderID, Value: []byte(event.ID)},
			{Key: HeaderTime, Value: []byte(event.Time.Format(time.RFC3339))},
			{Key: HeaderContentType, Value: []byte(event.DataContentType)},
		},
		Time: event.Time,
	}

	optional := []struct{ key, value string }{
		{HeaderCorrelationID, event.CorrelationID},
		{HeaderWorkflowID, event.WorkflowID},
		{HeaderScheduleID, event.ScheduleID},
		{HeaderTraceParent, event.TraceParent},
		{HeaderTraceState, event.TraceState},
	}
	for _, h := range optional {
		if h.value != "" {
			msg.Headers = append(msg.Headers, kafka.Header{Key: h.key, Value: []byte(h.value)})
		}
	}

	return msg, nil
}
