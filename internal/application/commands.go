package application

import (
	"time"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

// UpsertSKUCommand creates or replaces a SKU
type UpsertSKUCommand struct {
	SKU domain.SKU
}

// ListOrdersQuery lists orders, optionally filtered by status
type ListOrdersQuery struct {
	Status string
}

// ComputeChangeoverQuery asks for the cost of one changeover
type ComputeChangeoverQuery struct {
	FromSKUID string
	ToSKUID   string
}

// MatrixQuery asks for the changeover matrix of the registry
type MatrixQuery struct {
	Variance bool
	Seed     *int64
}

// SequenceCostQuery asks for the changeover cost along a SKU sequence
type SequenceCostQuery struct {
	SKUIDs []string
}

// GenerateScheduleCommand runs the sequencer over the open order backlog.
// A nil window bound defaults to now and now plus the configured window length.
type GenerateScheduleCommand struct {
	Name            string
	WindowStart     *time.Time
	WindowEnd       *time.Time
	OrderSort       domain.OrderSort
	ExcludedLines   []string
	SimulateActuals bool
}

// GetScheduleQuery reads a stored run with statuses projected at At
type GetScheduleQuery struct {
	ScheduleID string
	At         *time.Time
}

// GetBlocksQuery reads the blocks of a stored run
type GetBlocksQuery struct {
	ScheduleID string
	LineID     string
	At         *time.Time
}

// RunScenariosCommand runs what-if scenarios against a baseline
type RunScenariosCommand struct {
	WindowStart *time.Time
	WindowEnd   *time.Time
	Baseline    *ScenarioConfig
	Scenarios   []ScenarioConfig
}
