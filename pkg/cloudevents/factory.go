package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dallyp22/Scheduler-VS/pkg/logging"
)

// EventFactory creates CloudEvents for scheduler domain events
type EventFactory struct {
	source string
	now    func() time.Time
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source, now: time.Now}
}

// Source returns the source the factory stamps on events
func (f *EventFactory) Source() string {
	return f.source
}

// CreateEvent creates a new SchedulingCloudEvent with the given parameters
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *SchedulingCloudEvent {
	event := &SchedulingCloudEvent{
		SpecVersion:     SpecVersion,
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            f.now().UTC(),
		DataContentType: DefaultDataContentType,
		Data:            data,
		Extensions:      make(map[string]interface{}),
	}

	event.CorrelationID = logging.CorrelationID(ctx)

	return event
}

// CreateEventWithCorrelation creates an event with correlation tracking
func (f *EventFactory) CreateEventWithCorrelation(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
	correlationID string,
	workflowID string,
) *SchedulingCloudEvent {
	event := f.CreateEvent(ctx, eventType, subject, data)
	event.CorrelationID = correlationID
	event.WorkflowID = workflowID
	return event
}

// WithScheduleID tags the event with the schedule run it belongs to
func (e *SchedulingCloudEvent) WithScheduleID(scheduleID string) *SchedulingCloudEvent {
	e.ScheduleID = scheduleID
	return e
}
