package application

import (
	"time"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

// ChangeoverDTO represents a computed changeover in responses
type ChangeoverDTO struct {
	FromSKUID   string `json:"fromSkuId"`
	ToSKUID     string `json:"toSkuId"`
	FromSKUCode string `json:"fromSkuCode"`
	ToSKUCode   string `json:"toSkuCode"`
	domain.ChangeoverResult
}

// MatrixDTO represents the changeover matrix in responses
type MatrixDTO struct {
	Version             string                    `json:"version"`
	SKUIDs              []string                  `json:"skuIds"`
	Size                int                       `json:"size"`
	Cells               []domain.ChangeoverCell   `json:"cells"`
	ComplexityBreakdown map[domain.Complexity]int `json:"complexityBreakdown"`
}

// SequenceStepDTO is one transition of a sequence cost
type SequenceStepDTO struct {
	FromSKUID  string            `json:"fromSkuId"`
	ToSKUID    string            `json:"toSkuId"`
	Minutes    int               `json:"minutes"`
	Complexity domain.Complexity `json:"complexity"`
}

// SequenceCostDTO represents the cost of a SKU sequence
type SequenceCostDTO struct {
	SKUIDs       []string          `json:"skuIds"`
	TotalMinutes int               `json:"totalMinutes"`
	Steps        []SequenceStepDTO `json:"steps"`
}

// BlockDTO is a schedule block with its status projected at a point in time
type BlockDTO struct {
	domain.ScheduleBlock
	SetupStart time.Time          `json:"setupStart"`
	Status     domain.BlockStatus `json:"status"`
}

// ScheduleDTO represents a stored scheduling run in responses
type ScheduleDTO struct {
	ScheduleID    string                    `json:"scheduleId"`
	Name          string                    `json:"name"`
	Strategy      string                    `json:"strategy"`
	Window        domain.Window             `json:"window"`
	MatrixVersion string                    `json:"matrixVersion"`
	CreatedAt     time.Time                 `json:"createdAt"`
	At            time.Time                 `json:"at"`
	Blocks        []BlockDTO                `json:"blocks"`
	Unscheduled   []domain.UnscheduledOrder `json:"unscheduled"`
	Metrics       domain.ScheduleMetrics    `json:"metrics"`
	Issues        []domain.ValidationIssue  `json:"issues"`
}

// ScheduleSummaryDTO represents a stored run in listings
type ScheduleSummaryDTO struct {
	ScheduleID       string    `json:"scheduleId"`
	Name             string    `json:"name"`
	Strategy         string    `json:"strategy"`
	BlockCount       int       `json:"blockCount"`
	UnscheduledCount int       `json:"unscheduledCount"`
	AvgUtilization   float64   `json:"avgUtilization"`
	CreatedAt        time.Time `json:"createdAt"`
}
