package application

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/pkg/tracing"
)

// BaselineScenarioName names the unmodified run scenarios are compared against
const BaselineScenarioName = "baseline"

// ScenarioConfig describes one what-if variation of a scheduling run
type ScenarioConfig struct {
	Name          string           `json:"name"`
	OrderSort     domain.OrderSort `json:"orderSort,omitempty"`
	ExcludedLines []string         `json:"excludedLines,omitempty"`
	VarianceSeed  *int64           `json:"varianceSeed,omitempty"`
}

// ScenarioInput is the frozen planning data every scenario of a request runs against
type ScenarioInput struct {
	Window    domain.Window            `json:"window"`
	Now       time.Time                `json:"now"`
	Orders    []domain.ProductionOrder `json:"orders"`
	Lines     []domain.ProductionLine  `json:"lines"`
	SKUs      []domain.SKU             `json:"skus"`
	Baseline  ScenarioConfig           `json:"baseline"`
	Scenarios []ScenarioConfig         `json:"scenarios"`
}

// ScenarioRequest is the payload of a single scenario run on a worker
type ScenarioRequest struct {
	Input  ScenarioInput  `json:"input"`
	Config ScenarioConfig `json:"config"`
}

// ScenarioOutcome is the result of running one scenario
type ScenarioOutcome struct {
	Name             string                 `json:"name"`
	BlockCount       int                    `json:"blockCount"`
	UnscheduledCount int                    `json:"unscheduledCount"`
	Metrics          domain.ScheduleMetrics `json:"metrics"`
}

// ScenarioComparison compares a scenario to the baseline. Positive savings
// mean fewer changeover minutes; deltas are scenario minus baseline.
type ScenarioComparison struct {
	ChangeoverSavings int     `json:"changeoverSavings"`
	UtilizationDelta  float64 `json:"utilizationDelta"`
	MakespanDelta     float64 `json:"makespanDelta"`
	OnTimeDelta       float64 `json:"onTimeDelta"`
}

// ScenarioResult pairs an outcome with its comparison to the baseline
type ScenarioResult struct {
	Outcome    ScenarioOutcome    `json:"outcome"`
	Comparison ScenarioComparison `json:"comparison"`
}

// ScenarioReport is the answer to a scenario request
type ScenarioReport struct {
	WorkflowID string           `json:"workflowId,omitempty"`
	Baseline   ScenarioOutcome  `json:"baseline"`
	Results    []ScenarioResult `json:"results"`
}

// ScenarioExecutor runs every scenario of an input and compares them to the baseline
type ScenarioExecutor interface {
	Execute(ctx context.Context, input ScenarioInput) (*ScenarioReport, error)
}

// RunScenario runs the sequencer and aggregator for one scenario. The
// input is never mutated.
func RunScenario(ctx context.Context, strategy domain.SequencingStrategy, input ScenarioInput, cfg ScenarioConfig) (ScenarioOutcome, error) {
	opts := domain.MatrixOptions{Version: cfg.Name}
	if cfg.VarianceSeed != nil {
		opts.Variance = domain.NewSeededVariance(*cfg.VarianceSeed)
	}
	matrix := domain.BuildMatrix(input.SKUs, opts)

	lines := domain.WithoutLines(input.Lines, cfg.ExcludedLines)
	seqInput := domain.SequenceInput{
		Orders: domain.SortOrders(input.Orders, cfg.OrderSort),
		Lines:  lines,
		SKUs:   domain.IndexSKUs(input.SKUs),
		Matrix: matrix,
		Window: input.Window,
	}
	result, err := tracing.TracedOperation(ctx, otel.Tracer("scheduler-scenarios"), "scenario.run",
		func(ctx context.Context) (domain.ScheduleResult, error) {
			return strategy.Sequence(ctx, seqInput)
		},
		tracing.ScenarioSpanAttributes(cfg.Name, len(cfg.ExcludedLines))...,
	)
	if err != nil {
		return ScenarioOutcome{}, fmt.Errorf("scenario %q: %w", cfg.Name, err)
	}

	return ScenarioOutcome{
		Name:             cfg.Name,
		BlockCount:       len(result.Scheduled),
		UnscheduledCount: len(result.Unscheduled),
		Metrics:          domain.AggregateMetrics(result.Scheduled, domain.ActiveLines(lines), input.Window, input.Now),
	}, nil
}

// CompareScenario compares an outcome against the baseline outcome
func CompareScenario(baseline, outcome ScenarioOutcome) ScenarioComparison {
	return ScenarioComparison{
		ChangeoverSavings: baseline.Metrics.TotalChangeoverMinutes - outcome.Metrics.TotalChangeoverMinutes,
		UtilizationDelta:  outcome.Metrics.AvgUtilization - baseline.Metrics.AvgUtilization,
		MakespanDelta:     outcome.Metrics.Makespan - baseline.Metrics.Makespan,
		OnTimeDelta:       outcome.Metrics.OnTimePercentage - baseline.Metrics.OnTimePercentage,
	}
}

// LocalScenarioExecutor runs scenarios in-process, one after another
type LocalScenarioExecutor struct {
	strategy domain.SequencingStrategy
}

// NewLocalScenarioExecutor creates an in-process executor
func NewLocalScenarioExecutor(strategy domain.SequencingStrategy) *LocalScenarioExecutor {
	return &LocalScenarioExecutor{strategy: strategy}
}

// Execute runs the baseline and then every scenario
func (e *LocalScenarioExecutor) Execute(ctx context.Context, input ScenarioInput) (*ScenarioReport, error) {
	baseline, err := RunScenario(ctx, e.strategy, input, input.Baseline)
	if err != nil {
		return nil, err
	}

	report := &ScenarioReport{
		Baseline: baseline,
		Results:  make([]ScenarioResult, 0, len(input.Scenarios)),
	}
	for _, cfg := range input.Scenarios {
		outcome, err := RunScenario(ctx, e.strategy, input, cfg)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, ScenarioResult{
			Outcome:    outcome,
			Comparison: CompareScenario(baseline, outcome),
		})
	}
	return report, nil
}
