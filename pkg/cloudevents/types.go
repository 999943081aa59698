package cloudevents

import (
	"time"
)

// Event sources
const (
	SourceSchedulerAPI     = "/aips/scheduler-api"
	SourceScenarioWorker   = "/aips/scenario-worker"
	SourceShopFloor        = "/aips/shop-floor"
	SpecVersion            = "1.0"
	DefaultDataContentType = "application/json"
)

// Extension attribute names
const (
	ExtCorrelationID = "aipscorrelationid"
	ExtWorkflowID    = "aipsworkflowid"
	ExtScheduleID    = "aipsscheduleid"
)

// SchedulingCloudEvent represents a CloudEvents v1.0 compliant event for the scheduler
type SchedulingCloudEvent struct {
	SpecVersion     string                 `json:"specversion"`
	Type            string                 `json:"type"`
	Source          string                 `json:"source"`
	Subject         string                 `json:"subject,omitempty"`
	ID              string                 `json:"id"`
	Time            time.Time              `json:"time"`
	DataContentType string                 `json:"datacontenttype"`
	Data            interface{}            `json:"data"`
	Extensions      map[string]interface{} `json:"-"`

	CorrelationID string `json:"aipscorrelationid,omitempty"`
	WorkflowID    string `json:"aipsworkflowid,omitempty"`
	ScheduleID    string `json:"aipsscheduleid,omitempty"`

	// W3C trace context
	TraceParent string `json:"traceparent,omitempty"`
	TraceState  string `json:"tracestate,omitempty"`
}
