package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dallyp22/Scheduler-VS/internal/activities"
	"github.com/dallyp22/Scheduler-VS/internal/config"
	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/internal/workflows"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
	"github.com/dallyp22/Scheduler-VS/pkg/temporal"
)

const serviceName = "scenario-worker"

func main() {
	logger := logging.New(logging.DefaultConfig(serviceName))
	logger.SetDefault()

	logger.Info("Starting scenario worker")

	cfg := config.Load(serviceName)

	ctx := context.Background()
	temporalClient, err := temporal.NewClient(ctx, cfg.Temporal, logger.Logger)
	if err != nil {
		logger.WithError(err).Error("Failed to create Temporal client")
		os.Exit(1)
	}
	defer temporalClient.Close()
	logger.Info("Connected to Temporal", "hostPort", cfg.Temporal.HostPort, "namespace", cfg.Temporal.Namespace)

	scenarioActivities := activities.NewScenarioActivities(domain.NewGreedyFirstFit(), logger)

	w := temporalClient.NewWorker(temporal.DefaultWorkerOptions(temporal.TaskQueues.Scenarios))
	w.RegisterWorkflow(workflows.ScenarioWorkflow)
	w.RegisterActivity(scenarioActivities)

	if err := w.Start(); err != nil {
		logger.WithError(err).Error("Worker failed to start")
		os.Exit(1)
	}
	logger.Info("Worker started", "taskQueue", temporal.TaskQueues.Scenarios)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down worker...")

	w.Stop()
	logger.Info("Worker stopped")
}
