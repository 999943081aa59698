package activities

import (
	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
)

// ScenarioActivities contains the what-if scheduling activities
type ScenarioActivities struct {
	strategy domain.SequencingStrategy
	logger   *logging.Logger
}

// NewScenarioActivities creates a new ScenarioActivities instance
func NewScenarioActivities(strategy domain.SequencingStrategy, logger *logging.Logger) *ScenarioActivities {
	return &ScenarioActivities{
		strategy: strategy,
		logger:   logger,
	}
}
