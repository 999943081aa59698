package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dallyp22/Scheduler-VS/pkg/cloudevents"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
)

// EventHandler handles one CloudEvent
type EventHandler func(ctx context.Context, event *cloudevents.SchedulingCloudEvent) error

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// route dispatches a topic's events by CloudEvent type
type route map[string]EventHandler

// Consumer reads CloudEvents from subscribed topics in one consumer group.
// A message is committed once its handler succeeds, once it cannot be parsed,
// or once the handler has failed HandlerAttempts times.
type Consumer struct {
	config    *Config
	logger    *logging.Logger
	routes    map[string]route
	newReader func(topic string) messageReader

	mu      sync.Mutex
	readers []messageReader
}

// NewConsumer creates a consumer; readers are opened by Start
func NewConsumer(config *Config, logger *logging.Logger) *Consumer {
	if logger == nil {
		logger = logging.Nop()
	}
	c := &Consumer{
		config: config,
		logger: logger.WithComponent("kafka-consumer"),
		routes: make(map[string]route),
	}
	c.newReader = c.groupReader
	return c
}

// Subscribe registers handler for eventType on topic. Call before Start.
func (c *Consumer) Subscribe(topic string, eventType string, handler EventHandler) {
	r, ok := c.routes[topic]
	if !ok {
		r = route{}
		c.routes[topic] = r
	}
	r[eventType] = handler
}

func (c *Consumer) groupReader(topic string) messageReader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        c.config.Brokers,
		GroupID:        c.config.ConsumerGroup,
		Topic:          topic,
		MinBytes:       c.config.MinBytes,
		MaxBytes:       c.config.MaxBytes,
		MaxWait:        c.config.MaxWait,
		CommitInterval: c.config.CommitTimeout,
	})
}

func (c *Consumer) openReader(topic string) messageReader {
	reader := c.newReader(topic)
	c.mu.Lock()
	c.readers = append(c.readers, reader)
	c.mu.Unlock()
	return reader
}

// Start consumes every subscribed topic until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	for topic := range c.routes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.consumeTopic(ctx, topic)
		}()
	}
	wg.Wait()
	return ctx.Err()
}

func (c *Consumer) consumeTopic(ctx context.Context, topic string) {
	reader := c.openReader(topic)
	log := c.logger.With("topic", topic, "group", c.config.ConsumerGroup)
	log.Info("Consuming topic")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Stopped consuming topic")
				return
			}
			log.Error("Fetch failed", "error", err)
			continue
		}

		c.process(ctx, topic, msg)

		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error("Commit failed", "offset", msg.Offset, "error", err)
		}
	}
}

// process parses and dispatches msg, retrying the handler with linear backoff
func (c *Consumer) process(ctx context.Context, topic string, msg kafka.Message) {
	event, err := parseMessage(msg)
	if err != nil {
		c.logger.Error("Dropping unparseable message", "topic", topic, "offset", msg.Offset, "error", err)
		return
	}

	handler, ok := c.routes[topic][event.Type]
	if !ok {
		c.logger.Debug("No handler for event type", "topic", topic, "eventType", event.Type)
		return
	}
	if event.CorrelationID != "" {
		ctx = logging.ContextWithCorrelationID(ctx, event.CorrelationID)
	}

	attempts := max(c.config.HandlerAttempts, 1)
	for attempt := 1; ; attempt++ {
		err = handler(ctx, event)
		if err == nil {
			return
		}
		if attempt >= attempts {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(attempt) * c.config.RetryBackoff):
		}
	}

	c.logger.WithContext(ctx).Error("Dropping event after failed attempts",
		"topic", topic,
		"eventType", event.Type,
		"eventId", event.ID,
		"attempts", attempts,
		"error", err,
	)
}

// parseMessage decodes a CloudEvent; Kafka headers override body attributes
func parseMessage(msg kafka.Message) (*cloudevents.SchedulingCloudEvent, error) {
	var event cloudevents.SchedulingCloudEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	fields := map[string]*string{
		HeaderCorrelationID: &event.CorrelationID,
		HeaderWorkflowID:    &event.WorkflowID,
		HeaderScheduleID:    &event.ScheduleID,
		HeaderTraceParent:   &event.TraceParent,
		HeaderTraceState:    &event.TraceState,
	}
	for _, header := range msg.Headers {
		if field, ok := fields[header.Key]; ok {
			*field = string(header.Value)
		}
	}
	return &event, nil
}

// Close closes every opened reader
func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for _, reader := range c.readers {
		if err := reader.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close kafka reader: %w", err)
		}
	}
	return firstErr
}
