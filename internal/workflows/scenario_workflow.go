package workflows

import (
	"fmt"

	"go.temporal.io/sdk/workflow"

	"github.com/dallyp22/Scheduler-VS/internal/application"
)

// ScenarioWorkflow runs the baseline and every what-if scenario as parallel
// activities and compares each scenario to the baseline.
// Results keep the order of input.Scenarios.
func ScenarioWorkflow(ctx workflow.Context, input application.ScenarioInput) (*application.ScenarioReport, error) {
	logger := workflow.GetLogger(ctx)
	workflowID := workflow.GetInfo(ctx).WorkflowExecution.ID

	logger.Info("Starting scenario workflow",
		"workflowId", workflowID,
		"scenarios", len(input.Scenarios),
		"orders", len(input.Orders),
	)

	ctx = workflow.WithActivityOptions(ctx, GetScenarioActivityOptions())

	baselineFuture := workflow.ExecuteActivity(ctx, RunScenarioActivity, application.ScenarioRequest{
		Input:  input,
		Config: input.Baseline,
	})

	futures := make([]workflow.Future, len(input.Scenarios))
	for i, cfg := range input.Scenarios {
		futures[i] = workflow.ExecuteActivity(ctx, RunScenarioActivity, application.ScenarioRequest{
			Input:  input,
			Config: cfg,
		})
	}

	var baseline application.ScenarioOutcome
	if err := baselineFuture.Get(ctx, &baseline); err != nil {
		logger.Error("Baseline scenario failed", "error", err)
		return nil, fmt.Errorf("baseline scenario failed: %w", err)
	}

	report := &application.ScenarioReport{
		WorkflowID: workflowID,
		Baseline:   baseline,
		Results:    make([]application.ScenarioResult, 0, len(input.Scenarios)),
	}

	for i, future := range futures {
		var outcome application.ScenarioOutcome
		if err := future.Get(ctx, &outcome); err != nil {
			logger.Error("Scenario failed", "scenario", input.Scenarios[i].Name, "error", err)
			return nil, fmt.Errorf("scenario %q failed: %w", input.Scenarios[i].Name, err)
		}
		report.Results = append(report.Results, application.ScenarioResult{
			Outcome:    outcome,
			Comparison: application.CompareScenario(baseline, outcome),
		})
	}

	logger.Info("Scenario workflow completed",
		"workflowId", workflowID,
		"baselineChangeoverMinutes", baseline.Metrics.TotalChangeoverMinutes,
	)

	return report, nil
}
