package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/pkg/cloudevents"
	"github.com/dallyp22/Scheduler-VS/pkg/kafka"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
)

// FeedbackRecorder stores shop-floor actuals
type FeedbackRecorder interface {
	RecordChangeoverActual(ctx context.Context, actual domain.ChangeoverActual, source string) error
	RecordProductionActual(ctx context.Context, actual domain.ProductionActual, source string) error
}

// Subscriber registers event handlers on a topic
type Subscriber interface {
	Subscribe(topic string, eventType string, handler kafka.EventHandler)
}

// FeedbackConsumer turns production feedback events into recorded actuals
type FeedbackConsumer struct {
	recorder FeedbackRecorder
	logger   *logging.Logger
}

// NewFeedbackConsumer creates a new FeedbackConsumer
func NewFeedbackConsumer(recorder FeedbackRecorder, logger *logging.Logger) *FeedbackConsumer {
	return &FeedbackConsumer{
		recorder: recorder,
		logger:   logger.WithComponent("feedback-consumer"),
	}
}

// Register subscribes the feedback handlers on the production feedback topic
func (c *FeedbackConsumer) Register(subscriber Subscriber) {
	subscriber.Subscribe(kafka.Topics.ProductionFeedback, domain.EventTypeChangeoverRecorded, c.HandleChangeoverRecorded)
	subscriber.Subscribe(kafka.Topics.ProductionFeedback, domain.EventTypeProductionRecorded, c.HandleProductionRecorded)
}

// HandleChangeoverRecorded records a measured changeover
func (c *FeedbackConsumer) HandleChangeoverRecorded(ctx context.Context, event *cloudevents.SchedulingCloudEvent) error {
	var actual domain.ChangeoverActual
	if err := decodeData(event, &actual); err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("Dropping malformed changeover event", "eventId", event.ID)
		return nil
	}
	if actual.RecordedAt.IsZero() {
		actual.RecordedAt = eventTime(event)
	}

	if err := c.recorder.RecordChangeoverActual(ctx, actual, domain.FeedbackSourceKafka); err != nil {
		if errors.Is(err, domain.ErrInvalidActual) {
			c.logger.WithContext(ctx).WithError(err).Warn("Dropping invalid changeover actual", "eventId", event.ID)
			return nil
		}
		return fmt.Errorf("failed to record changeover actual: %w", err)
	}
	return nil
}

// HandleProductionRecorded records measured production performance
func (c *FeedbackConsumer) HandleProductionRecorded(ctx context.Context, event *cloudevents.SchedulingCloudEvent) error {
	var actual domain.ProductionActual
	if err := decodeData(event, &actual); err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("Dropping malformed production event", "eventId", event.ID)
		return nil
	}
	if actual.RecordedAt.IsZero() {
		actual.RecordedAt = eventTime(event)
	}

	if err := c.recorder.RecordProductionActual(ctx, actual, domain.FeedbackSourceKafka); err != nil {
		if errors.Is(err, domain.ErrInvalidActual) {
			c.logger.WithContext(ctx).WithError(err).Warn("Dropping invalid production actual", "eventId", event.ID)
			return nil
		}
		return fmt.Errorf("failed to record production actual: %w", err)
	}
	return nil
}

// decodeData re-encodes the generic payload of a parsed event into out
func decodeData(event *cloudevents.SchedulingCloudEvent, out interface{}) error {
	if event.Data == nil {
		return fmt.Errorf("event %s has no data", event.ID)
	}
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func eventTime(event *cloudevents.SchedulingCloudEvent) time.Time {
	if event.Time.IsZero() {
		return time.Now().UTC()
	}
	return event.Time
}
