package activities

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/dallyp22/Scheduler-VS/internal/application"
	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/internal/workflows"
)

// RunScenario sequences the order backlog under one scenario configuration
// and aggregates its metrics
func (a *ScenarioActivities) RunScenario(ctx context.Context, req application.ScenarioRequest) (*application.ScenarioOutcome, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Running scenario",
		"scenario", req.Config.Name,
		"orders", len(req.Input.Orders),
		"excludedLines", req.Config.ExcludedLines,
	)

	if req.Config.Name == "" {
		return nil, temporal.NewNonRetryableApplicationError("scenario name is required", workflows.ValidationErrorType, nil)
	}
	if _, err := domain.NewWindow(req.Input.Window.Start, req.Input.Window.End); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), workflows.ValidationErrorType, err)
	}

	start := time.Now()
	outcome, err := application.RunScenario(ctx, a.strategy, req.Input, req.Config)
	a.logger.Performance(ctx, "run_scenario", time.Since(start), err == nil, map[string]any{
		"scenario": req.Config.Name,
		"strategy": a.strategy.Name(),
	})
	if err != nil {
		logger.Error("Scenario run failed", "scenario", req.Config.Name, "error", err)
		return nil, fmt.Errorf("scenario run failed: %w", err)
	}

	logger.Info("Scenario completed",
		"scenario", outcome.Name,
		"blocks", outcome.BlockCount,
		"unscheduled", outcome.UnscheduledCount,
		"changeoverMinutes", outcome.Metrics.TotalChangeoverMinutes,
	)
	return &outcome, nil
}
