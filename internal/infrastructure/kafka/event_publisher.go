package kafka

import (
	"context"
	"fmt"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/pkg/cloudevents"
	"github.com/dallyp22/Scheduler-VS/pkg/kafka"
)

// EventPublisher implements domain.EventPublisher using Kafka
type EventPublisher struct {
	producer     kafka.EventProducer
	eventFactory *cloudevents.EventFactory
	topic        string
}

// NewEventPublisher creates a new Kafka-based event publisher
func NewEventPublisher(
	producer kafka.EventProducer,
	eventFactory *cloudevents.EventFactory,
	topic string,
) *EventPublisher {
	return &EventPublisher{
		producer:     producer,
		eventFactory: eventFactory,
		topic:        topic,
	}
}

// Publish converts a domain event to a CloudEvent and publishes it
func (p *EventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	var ce *cloudevents.SchedulingCloudEvent
	switch e := event.(type) {
	case *domain.ScheduleGeneratedEvent:
		ce = p.eventFactory.CreateEvent(ctx, e.EventType(), "schedule/"+e.ScheduleID, e).WithScheduleID(e.ScheduleID)
	case *domain.MatrixRebuiltEvent:
		ce = p.eventFactory.CreateEvent(ctx, e.EventType(), "matrix/"+e.MatrixVersion, e)
	case *domain.ScenarioCompletedEvent:
		ce = p.eventFactory.CreateEvent(ctx, e.EventType(), "scenario/"+e.ScenarioName, e)
	default:
		ce = p.eventFactory.CreateEvent(ctx, event.EventType(), "", event)
	}
	ce.Time = event.OccurredAt().UTC()

	if err := p.producer.PublishEvent(ctx, p.topic, ce); err != nil {
		return fmt.Errorf("failed to publish event to kafka: %w", err)
	}
	return nil
}

// PublishAll publishes multiple domain events to Kafka
func (p *EventPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
