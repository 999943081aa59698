package domain

import "time"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// Event types
const (
	EventTypeScheduleGenerated  = "aips.schedule.generated"
	EventTypeMatrixRebuilt      = "aips.matrix.rebuilt"
	EventTypeScenarioCompleted  = "aips.scenario.completed"
	EventTypeChangeoverRecorded = "aips.changeover.recorded"
	EventTypeProductionRecorded = "aips.production.recorded"
)

// ScheduleGeneratedEvent is published when a scheduling run is stored
type ScheduleGeneratedEvent struct {
	ScheduleID             string    `json:"scheduleId"`
	Strategy               string    `json:"strategy"`
	WindowStart            time.Time `json:"windowStart"`
	WindowEnd              time.Time `json:"windowEnd"`
	BlockCount             int       `json:"blockCount"`
	UnscheduledCount       int       `json:"unscheduledCount"`
	TotalChangeoverMinutes int       `json:"totalChangeoverMinutes"`
	AvgUtilization         float64   `json:"avgUtilization"`
	MatrixVersion          string    `json:"matrixVersion"`
	GeneratedAt            time.Time `json:"generatedAt"`
}

func (e *ScheduleGeneratedEvent) EventType() string     { return EventTypeScheduleGenerated }
func (e *ScheduleGeneratedEvent) OccurredAt() time.Time { return e.GeneratedAt }

// MatrixRebuiltEvent is published when the matrix cache is rebuilt for a new SKU set
type MatrixRebuiltEvent struct {
	MatrixVersion string    `json:"matrixVersion"`
	SKUCount      int       `json:"skuCount"`
	CellCount     int       `json:"cellCount"`
	Seeded        bool      `json:"seeded"`
	RebuiltAt     time.Time `json:"rebuiltAt"`
}

func (e *MatrixRebuiltEvent) EventType() string     { return EventTypeMatrixRebuilt }
func (e *MatrixRebuiltEvent) OccurredAt() time.Time { return e.RebuiltAt }

// ScenarioCompletedEvent is published when a what-if scenario finishes
type ScenarioCompletedEvent struct {
	ScenarioName      string    `json:"scenarioName"`
	BlockCount        int       `json:"blockCount"`
	ChangeoverSavings int       `json:"changeoverSavings"`
	UtilizationDelta  float64   `json:"utilizationDelta"`
	OnTimeDelta       float64   `json:"onTimeDelta"`
	CompletedAt       time.Time `json:"completedAt"`
}

func (e *ScenarioCompletedEvent) EventType() string     { return EventTypeScenarioCompleted }
func (e *ScenarioCompletedEvent) OccurredAt() time.Time { return e.CompletedAt }
