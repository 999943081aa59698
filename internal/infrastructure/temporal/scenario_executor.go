package temporal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"github.com/dallyp22/Scheduler-VS/internal/application"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
	"github.com/dallyp22/Scheduler-VS/pkg/metrics"
	pkgtemporal "github.com/dallyp22/Scheduler-VS/pkg/temporal"
)

// WorkflowStarter starts Temporal workflow executions
type WorkflowStarter interface {
	StartWorkflow(ctx context.Context, workflowID, taskQueue, workflowName string, args ...interface{}) (client.WorkflowRun, error)
}

// ScenarioExecutor runs what-if scenarios as a Temporal workflow so each
// scenario is sequenced by an activity on the worker fleet
type ScenarioExecutor struct {
	starter WorkflowStarter
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// NewScenarioExecutor creates a workflow-backed scenario executor
func NewScenarioExecutor(starter WorkflowStarter, m *metrics.Metrics, logger *logging.Logger) *ScenarioExecutor {
	return &ScenarioExecutor{
		starter: starter,
		metrics: m,
		logger:  logger.WithComponent("scenario-executor"),
	}
}

// Execute starts the scenario workflow and waits for its report
func (e *ScenarioExecutor) Execute(ctx context.Context, input application.ScenarioInput) (*application.ScenarioReport, error) {
	workflowID := "scenario-" + uuid.New().String()

	run, err := e.starter.StartWorkflow(ctx, workflowID, pkgtemporal.TaskQueues.Scenarios, pkgtemporal.WorkflowNames.Scenario, input)
	if err != nil {
		return nil, fmt.Errorf("failed to start scenario workflow: %w", err)
	}

	e.metrics.RecordWorkflowStarted(pkgtemporal.WorkflowNames.Scenario)
	e.logger.WorkflowStart(ctx, pkgtemporal.WorkflowNames.Scenario, run.GetID())

	var report application.ScenarioReport
	if err := run.Get(ctx, &report); err != nil {
		return nil, fmt.Errorf("scenario workflow %s failed: %w", run.GetID(), err)
	}
	if report.WorkflowID == "" {
		report.WorkflowID = run.GetID()
	}
	return &report, nil
}
