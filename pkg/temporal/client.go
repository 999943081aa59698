package temporal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	tlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
)

// Config holds Temporal client configuration
type Config struct {
	HostPort  string
	Namespace string
	Identity  string
	// WorkflowTimeout bounds a whole workflow execution, 0 means unbounded
	WorkflowTimeout time.Duration
}

// DefaultConfig targets a local dev server
func DefaultConfig() *Config {
	return &Config{
		HostPort:        "localhost:7233",
		Namespace:       "default",
		Identity:        "aips-scheduler",
		WorkflowTimeout: 30 * time.Minute,
	}
}

// TaskQueues lists the scheduler task queues
var TaskQueues = struct {
	Scenarios string
}{
	Scenarios: "aips-scenarios-queue",
}

// WorkflowNames lists the registered scheduler workflows
var WorkflowNames = struct {
	Scenario string
}{
	Scenario: "ScenarioWorkflow",
}

// Client is a Temporal client whose SDK logs go to the service logger
type Client struct {
	sdk    client.Client
	config *Config
}

// NewClient dials the frontend and verifies it is serving
func NewClient(ctx context.Context, config *Config, logger *slog.Logger) (*Client, error) {
	opts := client.Options{
		HostPort:  config.HostPort,
		Namespace: config.Namespace,
		Identity:  config.Identity,
	}
	if logger != nil {
		opts.Logger = tlog.NewStructuredLogger(logger.With("component", "temporal-sdk"))
	}

	sdk, err := client.DialContext(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to dial Temporal at %s: %w", config.HostPort, err)
	}
	if _, err := sdk.CheckHealth(ctx, &client.CheckHealthRequest{}); err != nil {
		sdk.Close()
		return nil, fmt.Errorf("temporal health check failed: %w", err)
	}

	return &Client{sdk: sdk, config: config}, nil
}

// Client exposes the SDK client
func (c *Client) Client() client.Client {
	return c.sdk
}

func (c *Client) Close() {
	c.sdk.Close()
}

// StartWorkflow starts workflowName on taskQueue under the configured
// execution timeout. A workflow ID is never reused.
func (c *Client) StartWorkflow(ctx context.Context, workflowID, taskQueue, workflowName string, args ...interface{}) (client.WorkflowRun, error) {
	return c.sdk.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:                       workflowID,
		TaskQueue:                taskQueue,
		WorkflowExecutionTimeout: c.config.WorkflowTimeout,
		WorkflowIDReusePolicy:    enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}, workflowName, args...)
}

// WorkerOptions sizes a worker's pollers and execution slots
type WorkerOptions struct {
	TaskQueue               string
	Pollers                 int
	MaxConcurrentActivities int
	MaxConcurrentWorkflows  int
}

// DefaultWorkerOptions sizes a worker for CPU-bound scenario activities
func DefaultWorkerOptions(taskQueue string) *WorkerOptions {
	return &WorkerOptions{
		TaskQueue:               taskQueue,
		Pollers:                 2,
		MaxConcurrentActivities: 10,
		MaxConcurrentWorkflows:  20,
	}
}

// NewWorker creates a worker bound to opts.TaskQueue
func (c *Client) NewWorker(opts *WorkerOptions) worker.Worker {
	return worker.New(c.sdk, opts.TaskQueue, worker.Options{
		Identity:                               c.config.Identity,
		MaxConcurrentActivityExecutionSize:     opts.MaxConcurrentActivities,
		MaxConcurrentWorkflowTaskExecutionSize: opts.MaxConcurrentWorkflows,
		MaxConcurrentActivityTaskPollers:       opts.Pollers,
		MaxConcurrentWorkflowTaskPollers:       opts.Pollers,
	})
}
