package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	apperrors "github.com/dallyp22/Scheduler-VS/pkg/errors"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
	"github.com/dallyp22/Scheduler-VS/pkg/metrics"
	"github.com/dallyp22/Scheduler-VS/pkg/tracing"
)

// Repositories bundles the persistence ports the service works against
type Repositories struct {
	SKUs      domain.SKURepository
	Lines     domain.LineRepository
	Orders    domain.OrderRepository
	Schedules domain.ScheduleRepository
	Actuals   domain.ActualsRepository
}

// Option configures a SchedulingService
type Option func(*SchedulingService)

// WithClock overrides the time source
func WithClock(clock func() time.Time) Option {
	return func(s *SchedulingService) { s.clock = clock }
}

// WithStrategy overrides the sequencing strategy
func WithStrategy(strategy domain.SequencingStrategy) Option {
	return func(s *SchedulingService) { s.strategy = strategy }
}

// WithScheduleWindow sets the default window length
func WithScheduleWindow(d time.Duration) Option {
	return func(s *SchedulingService) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithVarianceSeed sets the seed used for variance requests that carry none
func WithVarianceSeed(seed *int64) Option {
	return func(s *SchedulingService) { s.varianceSeed = seed }
}

// WithScenarioExecutor overrides the in-process scenario executor
func WithScenarioExecutor(executor ScenarioExecutor) Option {
	return func(s *SchedulingService) {
		if executor != nil {
			s.executor = executor
		}
	}
}

// WithActualsSimulator enables synthetic actuals for demo runs
func WithActualsSimulator(simulator domain.ActualsSimulator) Option {
	return func(s *SchedulingService) { s.simulator = simulator }
}

// SchedulingService handles changeover and scheduling use cases
type SchedulingService struct {
	repos        Repositories
	publisher    domain.EventPublisher
	cache        *MatrixCache
	strategy     domain.SequencingStrategy
	executor     ScenarioExecutor
	simulator    domain.ActualsSimulator
	metrics      *metrics.Metrics
	logger       *logging.Logger
	tracer       trace.Tracer
	clock        func() time.Time
	window       time.Duration
	varianceSeed *int64
}

// NewSchedulingService creates a new SchedulingService. The publisher may be
// nil, in which case domain events are dropped.
func NewSchedulingService(
	repos Repositories,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
	opts ...Option,
) *SchedulingService {
	strategy := domain.NewGreedyFirstFit()
	s := &SchedulingService{
		repos:     repos,
		publisher: publisher,
		cache:     NewMatrixCache(m),
		strategy:  strategy,
		executor:  NewLocalScenarioExecutor(strategy),
		metrics:   m,
		logger:    logger.WithComponent("scheduling-service"),
		tracer:    otel.Tracer("scheduling-service"),
		clock:     time.Now,
		window:    domain.DefaultWindowLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cache exposes the matrix cache
func (s *SchedulingService) Cache() *MatrixCache {
	return s.cache
}

// ListSKUs lists every SKU
func (s *SchedulingService) ListSKUs(ctx context.Context) ([]domain.SKU, error) {
	skus, err := s.repos.SKUs.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list skus")
		return nil, fmt.Errorf("failed to list skus: %w", err)
	}
	return skus, nil
}

// GetSKU retrieves a SKU by ID
func (s *SchedulingService) GetSKU(ctx context.Context, skuID string) (*domain.SKU, error) {
	sku, err := s.repos.SKUs.FindByID(ctx, skuID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get sku", "skuId", skuID)
		return nil, fmt.Errorf("failed to get sku: %w", err)
	}
	if sku == nil {
		return nil, apperrors.ErrNotFoundWithID("sku", skuID).Wrap(domain.ErrSKUNotFound)
	}
	return sku, nil
}

// UpsertSKU creates or replaces a SKU, bumps its version and invalidates the matrix cache
func (s *SchedulingService) UpsertSKU(ctx context.Context, cmd UpsertSKUCommand) (*domain.SKU, error) {
	sku := cmd.SKU
	if err := sku.Validate(); err != nil {
		return nil, apperrors.ErrValidation(err.Error()).Wrap(err)
	}

	existing, err := s.repos.SKUs.FindByID(ctx, sku.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get sku", "skuId", sku.ID)
		return nil, fmt.Errorf("failed to get sku: %w", err)
	}
	sku.Version = 1
	if existing != nil {
		sku.Version = existing.Version + 1
	}
	sku.UpdatedAt = s.clock().UTC()

	if err := s.repos.SKUs.Save(ctx, &sku); err != nil {
		s.logger.WithError(err).Error("Failed to save sku", "skuId", sku.ID)
		return nil, fmt.Errorf("failed to save sku: %w", err)
	}
	s.cache.Invalidate()

	s.logger.Info("Upserted sku", "skuId", sku.ID, "version", sku.Version)
	return &sku, nil
}

// ListLines lists every production line
func (s *SchedulingService) ListLines(ctx context.Context) ([]domain.ProductionLine, error) {
	lines, err := s.repos.Lines.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list lines")
		return nil, fmt.Errorf("failed to list lines: %w", err)
	}
	return lines, nil
}

// ListOrders lists orders, optionally filtered by status
func (s *SchedulingService) ListOrders(ctx context.Context, query ListOrdersQuery) ([]domain.ProductionOrder, error) {
	var statuses []domain.OrderStatus
	if query.Status != "" {
		status := domain.OrderStatus(strings.ToUpper(query.Status))
		switch status {
		case domain.OrderStatusPlanned, domain.OrderStatusScheduled, domain.OrderStatusInProgress,
			domain.OrderStatusCompleted, domain.OrderStatusCancelled:
			statuses = append(statuses, status)
		default:
			return nil, apperrors.ErrValidationWithFields("invalid order status", map[string]string{"status": query.Status})
		}
	}

	orders, err := s.repos.Orders.FindByStatus(ctx, statuses...)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ComputeChangeover computes the changeover between two registered SKUs
func (s *SchedulingService) ComputeChangeover(ctx context.Context, query ComputeChangeoverQuery) (*ChangeoverDTO, error) {
	from, err := s.GetSKU(ctx, query.FromSKUID)
	if err != nil {
		return nil, err
	}
	to, err := s.GetSKU(ctx, query.ToSKUID)
	if err != nil {
		return nil, err
	}
	return ToChangeoverDTO(*from, *to, domain.ComputeChangeover(*from, *to)), nil
}

// GetMatrix returns the matrix of every registered SKU. The exact matrix and
// the matrix for the configured variance seed are served from the cache. Any
// other seed, or no seed at all, builds a fresh matrix every time.
func (s *SchedulingService) GetMatrix(ctx context.Context, query MatrixQuery) (*domain.ChangeoverMatrix, error) {
	skus, err := s.ListSKUs(ctx)
	if err != nil {
		return nil, err
	}

	if !query.Variance {
		return s.matrixFor(ctx, skus, nil)
	}
	seed := query.Seed
	if seed == nil {
		seed = s.varianceSeed
	}
	switch {
	case seed == nil:
		random := s.clock().UnixNano()
		return s.buildMatrix(ctx, skus, &random, "unseeded"), nil
	case s.varianceSeed != nil && *seed == *s.varianceSeed:
		return s.matrixFor(ctx, skus, seed)
	default:
		return s.buildMatrix(ctx, skus, seed, MatrixFingerprint(skus, seed)[:12]), nil
	}
}

// ChangeoversForSKU returns every matrix cell a SKU takes part in
func (s *SchedulingService) ChangeoversForSKU(ctx context.Context, skuID string) ([]domain.ChangeoverCell, error) {
	matrix, err := s.GetMatrix(ctx, MatrixQuery{})
	if err != nil {
		return nil, err
	}
	cells := matrix.ForSKU(skuID)
	if cells == nil {
		return nil, apperrors.ErrNotFoundWithID("sku", skuID).Wrap(domain.ErrSKUNotFound)
	}
	return cells, nil
}

// FastestChangeovers returns the cheapest non-self pairs
func (s *SchedulingService) FastestChangeovers(ctx context.Context, limit int) ([]domain.ChangeoverCell, error) {
	matrix, err := s.GetMatrix(ctx, MatrixQuery{})
	if err != nil {
		return nil, err
	}
	return matrix.FastestPairs(limit), nil
}

// SlowestChangeovers returns the most expensive non-self pairs
func (s *SchedulingService) SlowestChangeovers(ctx context.Context, limit int) ([]domain.ChangeoverCell, error) {
	matrix, err := s.GetMatrix(ctx, MatrixQuery{})
	if err != nil {
		return nil, err
	}
	return matrix.SlowestPairs(limit), nil
}

// SequenceCost prices a SKU sequence transition by transition
func (s *SchedulingService) SequenceCost(ctx context.Context, query SequenceCostQuery) (*SequenceCostDTO, error) {
	if len(query.SKUIDs) == 0 {
		return nil, apperrors.ErrValidation(domain.ErrEmptySequence.Error()).Wrap(domain.ErrEmptySequence)
	}
	matrix, err := s.GetMatrix(ctx, MatrixQuery{})
	if err != nil {
		return nil, err
	}

	dto := &SequenceCostDTO{
		SKUIDs:       query.SKUIDs,
		TotalMinutes: matrix.SequenceCost(query.SKUIDs),
		Steps:        make([]SequenceStepDTO, 0, len(query.SKUIDs)),
	}
	for i := 1; i < len(query.SKUIDs); i++ {
		from, to := query.SKUIDs[i-1], query.SKUIDs[i]
		step := SequenceStepDTO{FromSKUID: from, ToSKUID: to, Complexity: domain.ComplexitySimple}
		if from != to {
			step.Minutes, step.Complexity = matrix.ChangeoverMinutes(from, to)
		}
		dto.Steps = append(dto.Steps, step)
	}
	return dto, nil
}

// GenerateSchedule sequences the open backlog, stores the run and publishes
// a ScheduleGeneratedEvent. A publish failure is logged and does not fail the run.
func (s *SchedulingService) GenerateSchedule(ctx context.Context, cmd GenerateScheduleCommand) (*ScheduleDTO, error) {
	started := time.Now()
	now := s.clock()

	window, err := s.resolveWindow(cmd.WindowStart, cmd.WindowEnd, now)
	if err != nil {
		return nil, err
	}

	skus, lines, orders, err := s.loadPlanningData(ctx)
	if err != nil {
		return nil, err
	}
	matrix, err := s.matrixFor(ctx, skus, nil)
	if err != nil {
		return nil, err
	}

	lines = domain.WithoutLines(lines, cmd.ExcludedLines)
	input := domain.SequenceInput{
		Orders: domain.SortOrders(orders, cmd.OrderSort),
		Lines:  lines,
		SKUs:   domain.IndexSKUs(skus),
		Matrix: matrix,
		Window: window,
	}

	result, err := tracing.TracedOperation(ctx, s.tracer, "schedule.sequence",
		func(ctx context.Context) (domain.ScheduleResult, error) {
			return s.strategy.Sequence(ctx, input)
		},
		tracing.ScheduleSpanAttributes(s.strategy.Name(), len(input.Orders), len(lines))...,
	)
	if err != nil {
		s.metrics.RecordScheduleRun(s.strategy.Name(), false, time.Since(started))
		s.logger.WithContext(ctx).WithError(err).Error("Sequencing failed")
		return nil, fmt.Errorf("failed to sequence orders: %w", err)
	}

	if cmd.SimulateActuals && s.simulator != nil {
		result.Scheduled = s.simulator.Simulate(result.Scheduled, now)
	}

	scheduleMetrics := domain.AggregateMetrics(result.Scheduled, domain.ActiveLines(lines), window, now)
	name := cmd.Name
	if name == "" {
		name = "Schedule " + window.Start.UTC().Format("2006-01-02 15:04")
	}
	schedule := domain.NewSchedule(generateScheduleID(), name, s.strategy.Name(), window, result, scheduleMetrics, matrix.Version, now.UTC())

	if err := s.repos.Schedules.Save(ctx, schedule); err != nil {
		s.metrics.RecordScheduleRun(s.strategy.Name(), false, time.Since(started))
		s.logger.WithError(err).Error("Failed to save schedule", "scheduleId", schedule.ScheduleID)
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	s.observeRun(ctx, schedule, time.Since(started))
	s.publishEvents(ctx, schedule.GetDomainEvents())
	schedule.ClearDomainEvents()

	return ToScheduleDTO(schedule, scheduleMetrics, now), nil
}

// ListSchedules lists the most recent runs
func (s *SchedulingService) ListSchedules(ctx context.Context, limit int) ([]ScheduleSummaryDTO, error) {
	schedules, err := s.repos.Schedules.FindRecent(ctx, limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list schedules")
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return ToScheduleSummaryDTOs(schedules), nil
}

// GetSchedule retrieves a stored run with actuals attached and statuses
// and metrics recomputed at the query time
func (s *SchedulingService) GetSchedule(ctx context.Context, query GetScheduleQuery) (*ScheduleDTO, error) {
	schedule, at, err := s.loadSchedule(ctx, query.ScheduleID, query.At)
	if err != nil {
		return nil, err
	}
	lines, err := s.ListLines(ctx)
	if err != nil {
		return nil, err
	}
	metrics := s.metricsAt(schedule, lines, at)
	return ToScheduleDTO(schedule, metrics, at), nil
}

// GetScheduleBlocks retrieves the blocks of a run, optionally for one line
func (s *SchedulingService) GetScheduleBlocks(ctx context.Context, query GetBlocksQuery) ([]BlockDTO, error) {
	schedule, at, err := s.loadSchedule(ctx, query.ScheduleID, query.At)
	if err != nil {
		return nil, err
	}
	return ToBlockDTOs(schedule.BlocksForLine(query.LineID), at), nil
}

// GetScheduleMetrics recomputes the metrics of a stored run at the query time
func (s *SchedulingService) GetScheduleMetrics(ctx context.Context, query GetScheduleQuery) (*domain.ScheduleMetrics, error) {
	schedule, at, err := s.loadSchedule(ctx, query.ScheduleID, query.At)
	if err != nil {
		return nil, err
	}
	lines, err := s.ListLines(ctx)
	if err != nil {
		return nil, err
	}
	metrics := s.metricsAt(schedule, lines, at)
	return &metrics, nil
}

// RunScenarios runs what-if scenarios over the current backlog and compares
// each to the baseline
func (s *SchedulingService) RunScenarios(ctx context.Context, cmd RunScenariosCommand) (*ScenarioReport, error) {
	if len(cmd.Scenarios) == 0 {
		return nil, apperrors.ErrValidation("at least one scenario is required")
	}
	seen := make(map[string]bool, len(cmd.Scenarios))
	for _, sc := range cmd.Scenarios {
		if sc.Name == "" || sc.Name == BaselineScenarioName {
			return nil, apperrors.ErrValidationWithFields("invalid scenario name", map[string]string{"name": sc.Name})
		}
		if seen[sc.Name] {
			return nil, apperrors.ErrValidationWithFields("duplicate scenario name", map[string]string{"name": sc.Name})
		}
		seen[sc.Name] = true
	}

	now := s.clock()
	window, err := s.resolveWindow(cmd.WindowStart, cmd.WindowEnd, now)
	if err != nil {
		return nil, err
	}
	skus, lines, orders, err := s.loadPlanningData(ctx)
	if err != nil {
		return nil, err
	}

	baseline := ScenarioConfig{Name: BaselineScenarioName}
	if cmd.Baseline != nil {
		baseline = *cmd.Baseline
		baseline.Name = BaselineScenarioName
	}

	input := ScenarioInput{
		Window:    window,
		Now:       now.UTC(),
		Orders:    orders,
		Lines:     lines,
		SKUs:      skus,
		Baseline:  baseline,
		Scenarios: cmd.Scenarios,
	}

	started := time.Now()
	report, err := s.executor.Execute(ctx, input)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Scenario run failed")
		return nil, fmt.Errorf("failed to run scenarios: %w", err)
	}
	s.logger.Performance(ctx, "run_scenarios", time.Since(started), true, map[string]any{
		"scenarios":  len(cmd.Scenarios),
		"workflowId": report.WorkflowID,
	})

	events := make([]domain.DomainEvent, 0, len(report.Results))
	for _, r := range report.Results {
		events = append(events, &domain.ScenarioCompletedEvent{
			ScenarioName:      r.Outcome.Name,
			BlockCount:        r.Outcome.BlockCount,
			ChangeoverSavings: r.Comparison.ChangeoverSavings,
			UtilizationDelta:  r.Comparison.UtilizationDelta,
			OnTimeDelta:       r.Comparison.OnTimeDelta,
			CompletedAt:       s.clock().UTC(),
		})
	}
	s.publishEvents(ctx, events)

	return report, nil
}

// RecordChangeoverActual stores a measured changeover. Cached matrices are
// dropped so the next build picks up the new history.
func (s *SchedulingService) RecordChangeoverActual(ctx context.Context, actual domain.ChangeoverActual, source string) error {
	if actual.RecordedAt.IsZero() {
		actual.RecordedAt = s.clock().UTC()
	}
	if err := actual.Validate(); err != nil {
		return apperrors.ErrValidation(err.Error()).Wrap(err)
	}

	if err := s.repos.Actuals.SaveChangeover(ctx, actual); err != nil {
		s.logger.WithError(err).Error("Failed to save changeover actual", "fromSkuId", actual.FromSKUID, "toSkuId", actual.ToSKUID)
		return fmt.Errorf("failed to save changeover actual: %w", err)
	}
	s.cache.Invalidate()
	s.metrics.RecordFeedback("changeover", source)

	s.logger.Info("Recorded changeover actual",
		"fromSkuId", actual.FromSKUID,
		"toSkuId", actual.ToSKUID,
		"lineId", actual.LineID,
		"actualMinutes", actual.ActualMinutes,
		"source", source,
	)
	return nil
}

// RecordProductionActual stores measured production performance for an order
func (s *SchedulingService) RecordProductionActual(ctx context.Context, actual domain.ProductionActual, source string) error {
	if actual.RecordedAt.IsZero() {
		actual.RecordedAt = s.clock().UTC()
	}
	if err := actual.Validate(); err != nil {
		return apperrors.ErrValidation(err.Error()).Wrap(err)
	}

	if err := s.repos.Actuals.SaveProduction(ctx, actual); err != nil {
		s.logger.WithError(err).Error("Failed to save production actual", "orderId", actual.OrderID)
		return fmt.Errorf("failed to save production actual: %w", err)
	}
	s.metrics.RecordFeedback("production", source)

	s.logger.Info("Recorded production actual", "orderId", actual.OrderID, "oee", actual.OEE, "source", source)
	return nil
}

func (s *SchedulingService) resolveWindow(start, end *time.Time, now time.Time) (domain.Window, error) {
	from := now
	if start != nil {
		from = *start
	}
	to := from.Add(s.window)
	if end != nil {
		to = *end
	}

	window, err := domain.NewWindow(from, to)
	if err != nil {
		return domain.Window{}, apperrors.ErrValidationWithFields("window end must not be before window start", map[string]string{
			"windowEnd": to.Format(time.RFC3339),
		}).Wrap(err)
	}
	return window, nil
}

func (s *SchedulingService) loadPlanningData(ctx context.Context) ([]domain.SKU, []domain.ProductionLine, []domain.ProductionOrder, error) {
	skus, err := s.ListSKUs(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	lines, err := s.ListLines(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	orders, err := s.repos.Orders.FindByStatus(ctx, domain.OrderStatusPlanned, domain.OrderStatusScheduled)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load open orders")
		return nil, nil, nil, fmt.Errorf("failed to load open orders: %w", err)
	}
	return skus, lines, orders, nil
}

func (s *SchedulingService) loadSchedule(ctx context.Context, scheduleID string, at *time.Time) (*domain.Schedule, time.Time, error) {
	schedule, err := s.repos.Schedules.FindByID(ctx, scheduleID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get schedule", "scheduleId", scheduleID)
		return nil, time.Time{}, fmt.Errorf("failed to get schedule: %w", err)
	}
	if schedule == nil {
		return nil, time.Time{}, apperrors.ErrNotFoundWithID("schedule", scheduleID).Wrap(domain.ErrScheduleNotFound)
	}

	orderIDs := make([]string, 0, len(schedule.Blocks))
	for _, b := range schedule.Blocks {
		orderIDs = append(orderIDs, b.OrderID)
	}
	actuals, err := s.repos.Actuals.ProductionByOrder(ctx, orderIDs)
	if err != nil {
		// stored plan is still valid without actuals
		s.logger.WithContext(ctx).WithError(err).Warn("Failed to load production actuals", "scheduleId", scheduleID)
	} else {
		schedule.ApplyProductionActuals(actuals)
	}

	projectAt := s.clock()
	if at != nil {
		projectAt = *at
	}
	return schedule, projectAt, nil
}

func (s *SchedulingService) metricsAt(schedule *domain.Schedule, lines []domain.ProductionLine, at time.Time) domain.ScheduleMetrics {
	// lines of the run: active now, or carrying blocks of this run
	used := make(map[string]bool)
	for _, b := range schedule.Blocks {
		used[b.LineID] = true
	}
	scope := make([]domain.ProductionLine, 0, len(lines))
	for _, l := range lines {
		if l.IsActive() || used[l.ID] {
			scope = append(scope, l)
		}
	}
	return domain.AggregateMetrics(schedule.Blocks, scope, schedule.Window, at)
}

// matrixFor returns the cached matrix for the SKU set, building it on a miss
func (s *SchedulingService) matrixFor(ctx context.Context, skus []domain.SKU, seed *int64) (*domain.ChangeoverMatrix, error) {
	key := MatrixFingerprint(skus, seed)
	generation := s.cache.Generation()
	if m, ok := s.cache.Get(key); ok {
		return m, nil
	}

	m := s.buildMatrix(ctx, skus, seed, key[:12])
	if !s.cache.Put(key, m, generation) {
		s.logger.WithContext(ctx).Debug("Matrix invalidated during build, not caching", "version", m.Version)
	}

	s.publishEvents(ctx, []domain.DomainEvent{&domain.MatrixRebuiltEvent{
		MatrixVersion: m.Version,
		SKUCount:      len(m.SKUIDs()),
		CellCount:     m.Size(),
		Seeded:        seed != nil,
		RebuiltAt:     s.clock().UTC(),
	}})
	return m, nil
}

func (s *SchedulingService) buildMatrix(ctx context.Context, skus []domain.SKU, seed *int64, version string) *domain.ChangeoverMatrix {
	history, err := s.repos.Actuals.ChangeoverHistory(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Building matrix without changeover history")
		history = nil
	}

	opts := domain.MatrixOptions{History: history, Version: version}
	if seed != nil {
		opts.Variance = domain.NewSeededVariance(*seed)
	}

	_, span := s.tracer.Start(ctx, "matrix.build",
		trace.WithAttributes(tracing.MatrixSpanAttributes(len(skus), seed != nil)...))
	started := time.Now()
	m := domain.BuildMatrix(skus, opts)
	s.metrics.RecordMatrixBuild(time.Since(started))
	span.End()

	return m
}

func (s *SchedulingService) observeRun(ctx context.Context, schedule *domain.Schedule, duration time.Duration) {
	s.metrics.RecordScheduleRun(schedule.Strategy, true, duration)
	for _, b := range schedule.Blocks {
		complexity := ""
		if b.ChangeoverType != nil {
			complexity = string(*b.ChangeoverType)
		}
		s.metrics.RecordBlock(b.LineID, complexity, b.ChangeoverMinutes)
	}
	for lineID, utilization := range schedule.Metrics.LineUtilization {
		s.metrics.SetLineUtilization(lineID, utilization)
	}

	log := s.logger.WithContext(ctx)
	for _, u := range schedule.Unscheduled {
		s.metrics.RecordUnscheduled(string(u.Reason))
		log.Warn("Order not scheduled", "orderId", u.Order.ID, "skuId", u.Order.SKUID, "reason", u.Reason)
	}

	s.logger.Performance(ctx, "generate_schedule", duration, true, map[string]any{
		"scheduleId":        schedule.ScheduleID,
		"blocks":            len(schedule.Blocks),
		"unscheduled":       len(schedule.Unscheduled),
		"changeoverMinutes": schedule.Metrics.TotalChangeoverMinutes,
		"avgUtilization":    schedule.Metrics.AvgUtilization,
	})
}

func (s *SchedulingService) publishEvents(ctx context.Context, events []domain.DomainEvent) {
	if s.publisher == nil {
		return
	}
	for _, event := range events {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("Failed to publish event", "eventType", event.EventType())
		}
	}
}

func generateScheduleID() string {
	return "SCH-" + strings.ToUpper(uuid.New().String()[:8])
}
