package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	apperrors "github.com/dallyp22/Scheduler-VS/pkg/errors"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
	"github.com/dallyp22/Scheduler-VS/pkg/metrics"
)

var testNow = time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC)

type serviceMocks struct {
	skus      *MockSKURepository
	lines     *MockLineRepository
	orders    *MockOrderRepository
	schedules *MockScheduleRepository
	actuals   *MockActualsRepository
	publisher *MockEventPublisher
}

func newTestService(opts ...Option) (*SchedulingService, *serviceMocks) {
	mocks := &serviceMocks{
		skus:      new(MockSKURepository),
		lines:     new(MockLineRepository),
		orders:    new(MockOrderRepository),
		schedules: new(MockScheduleRepository),
		actuals:   new(MockActualsRepository),
		publisher: new(MockEventPublisher),
	}
	repos := Repositories{
		SKUs:      mocks.skus,
		Lines:     mocks.lines,
		Orders:    mocks.orders,
		Schedules: mocks.schedules,
		Actuals:   mocks.actuals,
	}
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	service := NewSchedulingService(repos, mocks.publisher, metrics.New(metrics.DefaultConfig("test")), logging.Nop(), opts...)
	return service, mocks
}

func createTestSKU(id string, family domain.ProductFamily, color string, lines ...string) domain.SKU {
	return domain.SKU{
		ID:            id,
		Code:          "CODE-" + id,
		Name:          "Test " + id,
		Family:        family,
		Production:    domain.ProductionParameters{StandardRate: 3000},
		Attributes:    domain.PhysicalAttributes{Color: color},
		Compatibility: domain.LineCompatibility{AllowedLines: lines},
		Version:       1,
	}
}

func createTestSKUs() []domain.SKU {
	return []domain.SKU{
		createTestSKU("sku-w", domain.FamilyB, "clear", "line-9"),
		createTestSKU("sku-x", domain.FamilyA, "red", "line-1"),
		createTestSKU("sku-y", domain.FamilyA, "blue", "line-1"),
	}
}

func createTestLines() []domain.ProductionLine {
	return []domain.ProductionLine{
		{ID: "line-1", Name: "Line 1", Status: domain.LineStatusActive},
		{ID: "line-2", Name: "Line 2", Status: domain.LineStatusMaintenance},
	}
}

func createTestOrders() []domain.ProductionOrder {
	return []domain.ProductionOrder{
		{ID: "ord-1", OrderNumber: "PO-1", SKUID: "sku-x", Quantity: 6000, Priority: 5, DueDate: testNow.Add(4 * time.Hour), Status: domain.OrderStatusPlanned},
		{ID: "ord-2", OrderNumber: "PO-2", SKUID: "sku-y", Quantity: 3000, Priority: 1, DueDate: testNow.Add(3 * time.Hour), Status: domain.OrderStatusPlanned},
		{ID: "ord-3", OrderNumber: "PO-3", SKUID: "sku-w", Quantity: 100, Priority: 5, DueDate: testNow.Add(8 * time.Hour), Status: domain.OrderStatusPlanned},
	}
}

func (m *serviceMocks) withPlanningData() {
	m.skus.On("FindAll", mock.Anything).Return(createTestSKUs(), nil)
	m.lines.On("FindAll", mock.Anything).Return(createTestLines(), nil)
	m.orders.On("FindByStatus", mock.Anything, []domain.OrderStatus{domain.OrderStatusPlanned, domain.OrderStatusScheduled}).
		Return(createTestOrders(), nil)
	m.actuals.On("ChangeoverHistory", mock.Anything).Return(map[domain.PairKey]domain.ChangeoverHistory{}, nil)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestSchedulingService_GenerateSchedule(t *testing.T) {
	service, mocks := newTestService()
	mocks.withPlanningData()
	mocks.schedules.On("Save", mock.Anything, mock.AnythingOfType("*domain.Schedule")).Return(nil)
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	dto, err := service.GenerateSchedule(context.Background(), GenerateScheduleCommand{})
	require.NoError(t, err)

	assert.Regexp(t, `^SCH-[0-9A-F]{8}$`, dto.ScheduleID)
	assert.Equal(t, "greedy_first_fit", dto.Strategy)
	assert.Equal(t, testNow, dto.Window.Start)
	assert.Equal(t, testNow.Add(24*time.Hour), dto.Window.End)
	assert.Len(t, dto.MatrixVersion, 12)

	require.Len(t, dto.Blocks, 2)
	first, second := dto.Blocks[0], dto.Blocks[1]
	assert.Equal(t, "BLK-ord-1", first.ID)
	assert.Equal(t, 120, first.ProductionMinutes)
	assert.Equal(t, 0, first.ChangeoverMinutes)
	assert.Nil(t, first.ChangeoverType)
	assert.Equal(t, testNow.Add(2*time.Hour), first.EndTime)
	assert.Equal(t, domain.BlockStatusRunning, first.Status)

	assert.Equal(t, first.EndTime, second.StartTime)
	assert.Equal(t, 28, second.ChangeoverMinutes)
	require.NotNil(t, second.ChangeoverType)
	assert.Equal(t, domain.ComplexityModerate, *second.ChangeoverType)
	assert.Equal(t, "sku-x", second.PreviousSKUID)
	assert.Equal(t, domain.BlockStatusPlanned, second.Status)

	require.Len(t, dto.Unscheduled, 1)
	assert.Equal(t, "ord-3", dto.Unscheduled[0].Order.ID)
	assert.Equal(t, domain.ReasonNoCompatibleLine, dto.Unscheduled[0].Reason)

	assert.InDelta(t, 12.5, dto.Metrics.LineUtilization["line-1"], 1e-9)
	assert.InDelta(t, 12.5, dto.Metrics.AvgUtilization, 1e-9)
	assert.Equal(t, 28, dto.Metrics.TotalChangeoverMinutes)

	require.Len(t, dto.Issues, 1)
	assert.Equal(t, domain.IssueLate, dto.Issues[0].Type)
	assert.Equal(t, domain.SeverityWarning, dto.Issues[0].Severity)
	assert.Equal(t, "BLK-ord-2", dto.Issues[0].BlockID)
	assert.Contains(t, dto.Issues[0].Message, "28m0s")

	mocks.schedules.AssertNumberOfCalls(t, "Save", 1)
	mocks.publisher.AssertCalled(t, "Publish", mock.Anything, mock.AnythingOfType("*domain.ScheduleGeneratedEvent"))
	mocks.publisher.AssertCalled(t, "Publish", mock.Anything, mock.AnythingOfType("*domain.MatrixRebuiltEvent"))
}

func TestSchedulingService_GenerateSchedule_Options(t *testing.T) {
	service, mocks := newTestService()
	mocks.withPlanningData()
	mocks.schedules.On("Save", mock.Anything, mock.Anything).Return(nil)
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	start := testNow.Add(time.Hour)
	end := start.Add(8 * time.Hour)
	dto, err := service.GenerateSchedule(context.Background(), GenerateScheduleCommand{
		Name:        "night shift",
		WindowStart: &start,
		WindowEnd:   &end,
		OrderSort:   domain.OrderSortDueDate,
	})
	require.NoError(t, err)

	assert.Equal(t, "night shift", dto.Name)
	assert.Equal(t, end, dto.Window.End)
	require.Len(t, dto.Blocks, 2)
	assert.Equal(t, "ord-2", dto.Blocks[0].OrderID)
	assert.Equal(t, start, dto.Blocks[0].StartTime)
}

func TestSchedulingService_GenerateSchedule_ExcludedLine(t *testing.T) {
	service, mocks := newTestService()
	mocks.withPlanningData()
	mocks.schedules.On("Save", mock.Anything, mock.Anything).Return(nil)
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	dto, err := service.GenerateSchedule(context.Background(), GenerateScheduleCommand{ExcludedLines: []string{"line-1"}})
	require.NoError(t, err)

	assert.Empty(t, dto.Blocks)
	assert.Len(t, dto.Unscheduled, 3)
	assert.Equal(t, 0.0, dto.Metrics.AvgUtilization)
}

func TestSchedulingService_GenerateSchedule_PublishFailureIsNotFatal(t *testing.T) {
	service, mocks := newTestService()
	mocks.withPlanningData()
	mocks.schedules.On("Save", mock.Anything, mock.Anything).Return(nil)
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	dto, err := service.GenerateSchedule(context.Background(), GenerateScheduleCommand{})

	require.NoError(t, err)
	assert.Len(t, dto.Blocks, 2)
}

func TestSchedulingService_GenerateSchedule_Errors(t *testing.T) {
	t.Run("invalid window", func(t *testing.T) {
		service, mocks := newTestService()
		end := testNow.Add(-time.Hour)

		_, err := service.GenerateSchedule(context.Background(), GenerateScheduleCommand{WindowEnd: &end})

		require.Error(t, err)
		assertAppErrorCode(t, err, apperrors.CodeValidationError)
		assert.ErrorIs(t, err, domain.ErrInvalidWindow)
		mocks.skus.AssertNotCalled(t, "FindAll", mock.Anything)
	})

	t.Run("save failure", func(t *testing.T) {
		service, mocks := newTestService()
		mocks.withPlanningData()
		mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
		mocks.schedules.On("Save", mock.Anything, mock.Anything).Return(errors.New("write conflict"))

		_, err := service.GenerateSchedule(context.Background(), GenerateScheduleCommand{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save schedule")
		mocks.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.AnythingOfType("*domain.ScheduleGeneratedEvent"))
	})

	t.Run("order load failure", func(t *testing.T) {
		service, mocks := newTestService()
		mocks.skus.On("FindAll", mock.Anything).Return(createTestSKUs(), nil)
		mocks.lines.On("FindAll", mock.Anything).Return(createTestLines(), nil)
		mocks.orders.On("FindByStatus", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		_, err := service.GenerateSchedule(context.Background(), GenerateScheduleCommand{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load open orders")
	})
}

func TestSchedulingService_GenerateSchedule_SimulatedActuals(t *testing.T) {
	service, mocks := newTestService(WithActualsSimulator(domain.NewSeededActuals(7)))
	mocks.withPlanningData()
	mocks.schedules.On("Save", mock.Anything, mock.Anything).Return(nil)
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	start := testNow.Add(-10 * time.Hour)
	plain, err := service.GenerateSchedule(context.Background(), GenerateScheduleCommand{WindowStart: &start})
	require.NoError(t, err)
	for _, b := range plain.Blocks {
		assert.Nil(t, b.ActualRate)
	}

	simulated, err := service.GenerateSchedule(context.Background(), GenerateScheduleCommand{WindowStart: &start, SimulateActuals: true})
	require.NoError(t, err)
	require.Len(t, simulated.Blocks, 2)
	for _, b := range simulated.Blocks {
		assert.Equal(t, domain.BlockStatusCompleted, b.Status)
		require.NotNil(t, b.ActualRate)
		require.NotNil(t, b.OEE)
		assert.GreaterOrEqual(t, *b.ActualRate, b.TargetRate*0.85)
		assert.InDelta(t, 0.825, *b.OEE, 0.125)
	}
	assert.Equal(t, 2, simulated.Metrics.CompletedOrders)
	assert.Greater(t, simulated.Metrics.AvgOEE, 0.0)
}

func TestSchedulingService_MatrixCache(t *testing.T) {
	service, mocks := newTestService()
	mocks.withPlanningData()
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	first, err := service.GetMatrix(ctx, MatrixQuery{})
	require.NoError(t, err)
	second, err := service.GetMatrix(ctx, MatrixQuery{})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 9, first.Size())
	assert.Equal(t, 1, service.Cache().Len())
	mocks.actuals.AssertNumberOfCalls(t, "ChangeoverHistory", 1)
	mocks.publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestSchedulingService_MatrixVariance(t *testing.T) {
	configured := int64(42)
	service, mocks := newTestService(WithVarianceSeed(&configured))
	mocks.withPlanningData()
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	seed := int64(42)
	seeded, err := service.GetMatrix(ctx, MatrixQuery{Variance: true, Seed: &seed})
	require.NoError(t, err)
	defaulted, err := service.GetMatrix(ctx, MatrixQuery{Variance: true})
	require.NoError(t, err)
	assert.Same(t, seeded, defaulted)

	exact, err := service.GetMatrix(ctx, MatrixQuery{})
	require.NoError(t, err)
	assert.NotEqual(t, exact.Version, seeded.Version)
	assert.Equal(t, 2, service.Cache().Len())

	other := int64(7)
	first, err := service.GetMatrix(ctx, MatrixQuery{Variance: true, Seed: &other})
	require.NoError(t, err)
	second, err := service.GetMatrix(ctx, MatrixQuery{Variance: true, Seed: &other})
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Version, second.Version)
	assert.Equal(t, first.Cells(), second.Cells())
	assert.NotEqual(t, seeded.Version, first.Version)
	assert.Equal(t, 2, service.Cache().Len())
}

func TestSchedulingService_MatrixVariance_Unseeded(t *testing.T) {
	service, mocks := newTestService()
	mocks.withPlanningData()
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	unseeded, err := service.GetMatrix(context.Background(), MatrixQuery{Variance: true})
	require.NoError(t, err)
	assert.Equal(t, "unseeded", unseeded.Version)
	assert.Equal(t, 0, service.Cache().Len())
}

func TestSchedulingService_MatrixCache_ClientSeedsAreNotCached(t *testing.T) {
	service, mocks := newTestService()
	mocks.withPlanningData()
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, err := service.GetMatrix(ctx, MatrixQuery{})
	require.NoError(t, err)

	for i := int64(0); i < 200; i++ {
		seed := i
		_, err := service.GetMatrix(ctx, MatrixQuery{Variance: true, Seed: &seed})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, service.Cache().Len())
	mocks.publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestSchedulingService_UpsertSKU(t *testing.T) {
	service, mocks := newTestService()
	mocks.withPlanningData()
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, err := service.GetMatrix(ctx, MatrixQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, service.Cache().Len())

	existing := createTestSKU("sku-x", domain.FamilyA, "red", "line-1")
	existing.Version = 3
	mocks.skus.On("FindByID", mock.Anything, "sku-x").Return(&existing, nil)
	mocks.skus.On("Save", mock.Anything, mock.AnythingOfType("*domain.SKU")).Return(nil)

	update := createTestSKU("sku-x", domain.FamilyA, "green", "line-1", "line-2")
	sku, err := service.UpsertSKU(ctx, UpsertSKUCommand{SKU: update})
	require.NoError(t, err)

	assert.Equal(t, 4, sku.Version)
	assert.Equal(t, testNow, sku.UpdatedAt)
	assert.Equal(t, "green", sku.Attributes.Color)
	assert.Equal(t, 0, service.Cache().Len())
}

func TestSchedulingService_UpsertSKU_New(t *testing.T) {
	service, mocks := newTestService()
	mocks.skus.On("FindByID", mock.Anything, "sku-new").Return(nil, nil)
	mocks.skus.On("Save", mock.Anything, mock.Anything).Return(nil)

	sku, err := service.UpsertSKU(context.Background(), UpsertSKUCommand{SKU: createTestSKU("sku-new", domain.FamilyC, "white")})

	require.NoError(t, err)
	assert.Equal(t, 1, sku.Version)
}

func TestSchedulingService_UpsertSKU_Invalid(t *testing.T) {
	service, mocks := newTestService()

	_, err := service.UpsertSKU(context.Background(), UpsertSKUCommand{SKU: createTestSKU("sku-bad", "Z", "red")})

	require.Error(t, err)
	assertAppErrorCode(t, err, apperrors.CodeValidationError)
	assert.ErrorIs(t, err, domain.ErrInvalidSKU)
	mocks.skus.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSchedulingService_GetSKU_NotFound(t *testing.T) {
	service, mocks := newTestService()
	mocks.skus.On("FindByID", mock.Anything, "sku-404").Return(nil, nil)

	_, err := service.GetSKU(context.Background(), "sku-404")

	require.Error(t, err)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
	assert.ErrorIs(t, err, domain.ErrSKUNotFound)
}

func TestSchedulingService_ComputeChangeover(t *testing.T) {
	service, mocks := newTestService()
	x := createTestSKU("sku-x", domain.FamilyA, "red", "line-1")
	y := createTestSKU("sku-y", domain.FamilyA, "blue", "line-1")
	mocks.skus.On("FindByID", mock.Anything, "sku-x").Return(&x, nil)
	mocks.skus.On("FindByID", mock.Anything, "sku-y").Return(&y, nil)

	dto, err := service.ComputeChangeover(context.Background(), ComputeChangeoverQuery{FromSKUID: "sku-x", ToSKUID: "sku-y"})

	require.NoError(t, err)
	assert.Equal(t, "CODE-sku-x", dto.FromSKUCode)
	assert.Equal(t, 28, dto.Time.Total)
	assert.Equal(t, domain.ComplexityModerate, dto.Complexity)
}

func TestSchedulingService_ListOrders(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		statuses []domain.OrderStatus
		wantCode string
	}{
		{name: "all orders", statuses: nil},
		{name: "lower case status", status: "planned", statuses: []domain.OrderStatus{domain.OrderStatusPlanned}},
		{name: "unknown status", status: "SHIPPED", wantCode: apperrors.CodeValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mocks := newTestService()
			mocks.orders.On("FindByStatus", mock.Anything, tt.statuses).Return(createTestOrders(), nil)

			orders, err := service.ListOrders(context.Background(), ListOrdersQuery{Status: tt.status})

			if tt.wantCode != "" {
				require.Error(t, err)
				assertAppErrorCode(t, err, tt.wantCode)
				mocks.orders.AssertNotCalled(t, "FindByStatus", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Len(t, orders, 3)
		})
	}
}

func TestSchedulingService_SequenceCost(t *testing.T) {
	service, mocks := newTestService()
	mocks.withPlanningData()
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	dto, err := service.SequenceCost(context.Background(), SequenceCostQuery{SKUIDs: []string{"sku-x", "sku-x", "sku-y", "sku-unknown"}})
	require.NoError(t, err)

	require.Len(t, dto.Steps, 3)
	assert.Equal(t, 0, dto.Steps[0].Minutes)
	assert.Equal(t, 28, dto.Steps[1].Minutes)
	assert.Equal(t, domain.FallbackChangeoverMinutes, dto.Steps[2].Minutes)
	assert.Equal(t, 28+domain.FallbackChangeoverMinutes, dto.TotalMinutes)

	_, err = service.SequenceCost(context.Background(), SequenceCostQuery{})
	require.Error(t, err)
	assertAppErrorCode(t, err, apperrors.CodeValidationError)
	assert.ErrorIs(t, err, domain.ErrEmptySequence)
}

func TestSchedulingService_ChangeoversForSKU(t *testing.T) {
	service, mocks := newTestService()
	mocks.withPlanningData()
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	cells, err := service.ChangeoversForSKU(ctx, "sku-x")
	require.NoError(t, err)
	assert.NotEmpty(t, cells)

	_, err = service.ChangeoversForSKU(ctx, "sku-404")
	require.Error(t, err)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)

	fastest, err := service.FastestChangeovers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, fastest, 1)
	slowest, err := service.SlowestChangeovers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, slowest, 1)
	assert.LessOrEqual(t, fastest[0].Time.Total, slowest[0].Time.Total)
}

func createStoredSchedule() *domain.Schedule {
	moderate := domain.ComplexityModerate
	window := domain.Window{Start: testNow, End: testNow.Add(24 * time.Hour)}
	result := domain.ScheduleResult{Scheduled: []domain.ScheduleBlock{
		{
			ID: "BLK-ord-1", OrderID: "ord-1", SKUID: "sku-x", LineID: "line-1",
			StartTime: testNow, ProductionStart: testNow, EndTime: testNow.Add(2 * time.Hour),
			Duration: 120, ProductionMinutes: 120, Quantity: 6000, TargetRate: 3000,
			DueDate: testNow.Add(4 * time.Hour),
		},
		{
			ID: "BLK-ord-2", OrderID: "ord-2", SKUID: "sku-y", LineID: "line-1",
			StartTime: testNow.Add(2 * time.Hour), ProductionStart: testNow.Add(148 * time.Minute), EndTime: testNow.Add(208 * time.Minute),
			Duration: 88, ChangeoverMinutes: 28, ProductionMinutes: 60, ChangeoverType: &moderate, PreviousSKUID: "sku-x",
			Quantity: 3000, TargetRate: 3000, DueDate: testNow.Add(3 * time.Hour),
		},
	}}
	metrics := domain.AggregateMetrics(result.Scheduled, createTestLines(), window, testNow)
	return domain.NewSchedule("SCH-TEST0001", "stored", "greedy_first_fit", window, result, metrics, "abc", testNow)
}

func TestSchedulingService_GetScheduleBlocks(t *testing.T) {
	service, mocks := newTestService()
	mocks.schedules.On("FindByID", mock.Anything, "SCH-TEST0001").Return(createStoredSchedule(), nil)
	mocks.actuals.On("ProductionByOrder", mock.Anything, []string{"ord-1", "ord-2"}).Return(map[string]domain.ProductionActual{
		"ord-1": {OrderID: "ord-1", ActualRate: 2900, OEE: 0.8},
	}, nil)

	at := testNow.Add(130 * time.Minute)
	blocks, err := service.GetScheduleBlocks(context.Background(), GetBlocksQuery{ScheduleID: "SCH-TEST0001", LineID: "line-1", At: &at})
	require.NoError(t, err)

	require.Len(t, blocks, 2)
	assert.Equal(t, domain.BlockStatusCompleted, blocks[0].Status)
	require.NotNil(t, blocks[0].ActualRate)
	assert.Equal(t, 2900.0, *blocks[0].ActualRate)
	assert.Equal(t, domain.BlockStatusChangeover, blocks[1].Status)
	assert.Equal(t, blocks[1].StartTime, blocks[1].SetupStart)

	other, err := service.GetScheduleBlocks(context.Background(), GetBlocksQuery{ScheduleID: "SCH-TEST0001", LineID: "line-2"})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSchedulingService_GetScheduleMetrics(t *testing.T) {
	service, mocks := newTestService()
	mocks.schedules.On("FindByID", mock.Anything, "SCH-TEST0001").Return(createStoredSchedule(), nil)
	mocks.actuals.On("ProductionByOrder", mock.Anything, mock.Anything).Return(map[string]domain.ProductionActual{
		"ord-1": {OrderID: "ord-1", ActualRate: 2900, OEE: 0.8},
		"ord-2": {OrderID: "ord-2", ActualRate: 3000, OEE: 0.9},
	}, nil)
	mocks.lines.On("FindAll", mock.Anything).Return(createTestLines(), nil)

	at := testNow.Add(6 * time.Hour)
	m, err := service.GetScheduleMetrics(context.Background(), GetScheduleQuery{ScheduleID: "SCH-TEST0001", At: &at})
	require.NoError(t, err)

	assert.Equal(t, 2, m.CompletedOrders)
	assert.InDelta(t, 50.0, m.OnTimePercentage, 1e-9)
	assert.InDelta(t, 0.85, m.AvgOEE, 1e-9)
	assert.InDelta(t, 100.0, m.ScheduleAdherence, 1e-9)
}

func TestSchedulingService_GetSchedule_ActualsUnavailable(t *testing.T) {
	service, mocks := newTestService()
	mocks.schedules.On("FindByID", mock.Anything, "SCH-TEST0001").Return(createStoredSchedule(), nil)
	mocks.actuals.On("ProductionByOrder", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	mocks.lines.On("FindAll", mock.Anything).Return(createTestLines(), nil)

	dto, err := service.GetSchedule(context.Background(), GetScheduleQuery{ScheduleID: "SCH-TEST0001"})
	require.NoError(t, err)

	assert.Equal(t, testNow, dto.At)
	assert.Len(t, dto.Blocks, 2)
	assert.NotNil(t, dto.Unscheduled)
}

func TestSchedulingService_GetSchedule_NotFound(t *testing.T) {
	service, mocks := newTestService()
	mocks.schedules.On("FindByID", mock.Anything, "SCH-404").Return(nil, nil)

	_, err := service.GetSchedule(context.Background(), GetScheduleQuery{ScheduleID: "SCH-404"})

	require.Error(t, err)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
}

func TestSchedulingService_ListSchedules(t *testing.T) {
	service, mocks := newTestService()
	mocks.schedules.On("FindRecent", mock.Anything, 10).Return([]*domain.Schedule{createStoredSchedule()}, nil)

	summaries, err := service.ListSchedules(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "SCH-TEST0001", summaries[0].ScheduleID)
	assert.Equal(t, 2, summaries[0].BlockCount)
}

func TestSchedulingService_RunScenarios(t *testing.T) {
	executor := new(MockScenarioExecutor)
	service, mocks := newTestService(WithScenarioExecutor(executor))
	mocks.withPlanningData()
	mocks.publisher.On("Publish", mock.Anything, mock.AnythingOfType("*domain.ScenarioCompletedEvent")).Return(nil)

	report := &ScenarioReport{
		WorkflowID: "scenario-1",
		Baseline:   ScenarioOutcome{Name: BaselineScenarioName},
		Results: []ScenarioResult{{
			Outcome:    ScenarioOutcome{Name: "by-due-date", BlockCount: 2},
			Comparison: ScenarioComparison{ChangeoverSavings: 10},
		}},
	}
	executor.On("Execute", mock.Anything, mock.MatchedBy(func(in ScenarioInput) bool {
		return in.Baseline.Name == BaselineScenarioName &&
			len(in.Scenarios) == 1 &&
			len(in.Orders) == 3 &&
			in.Window.Start.Equal(testNow)
	})).Return(report, nil)

	got, err := service.RunScenarios(context.Background(), RunScenariosCommand{
		Baseline:  &ScenarioConfig{Name: "ignored", OrderSort: domain.OrderSortPriority},
		Scenarios: []ScenarioConfig{{Name: "by-due-date", OrderSort: domain.OrderSortDueDate}},
	})
	require.NoError(t, err)

	assert.Equal(t, "scenario-1", got.WorkflowID)
	executor.AssertExpectations(t)
	mocks.publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestSchedulingService_RunScenarios_Validation(t *testing.T) {
	tests := []struct {
		name      string
		scenarios []ScenarioConfig
	}{
		{name: "no scenarios"},
		{name: "empty name", scenarios: []ScenarioConfig{{Name: ""}}},
		{name: "reserved name", scenarios: []ScenarioConfig{{Name: BaselineScenarioName}}},
		{name: "duplicate name", scenarios: []ScenarioConfig{{Name: "a"}, {Name: "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := new(MockScenarioExecutor)
			service, _ := newTestService(WithScenarioExecutor(executor))

			_, err := service.RunScenarios(context.Background(), RunScenariosCommand{Scenarios: tt.scenarios})

			require.Error(t, err)
			assertAppErrorCode(t, err, apperrors.CodeValidationError)
			executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestSchedulingService_RecordChangeoverActual(t *testing.T) {
	service, mocks := newTestService()
	mocks.withPlanningData()
	mocks.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	mocks.actuals.On("SaveChangeover", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	_, err := service.GetMatrix(ctx, MatrixQuery{})
	require.NoError(t, err)

	err = service.RecordChangeoverActual(ctx, domain.ChangeoverActual{FromSKUID: "sku-x", ToSKUID: "sku-y", LineID: "line-1", ActualMinutes: 31}, domain.FeedbackSourceAPI)
	require.NoError(t, err)

	assert.Equal(t, 0, service.Cache().Len())
	mocks.actuals.AssertCalled(t, "SaveChangeover", mock.Anything, mock.MatchedBy(func(a domain.ChangeoverActual) bool {
		return a.RecordedAt.Equal(testNow) && a.ActualMinutes == 31
	}))
}

func TestSchedulingService_RecordActual_Invalid(t *testing.T) {
	service, mocks := newTestService()
	ctx := context.Background()

	err := service.RecordChangeoverActual(ctx, domain.ChangeoverActual{FromSKUID: "sku-x"}, domain.FeedbackSourceAPI)
	require.Error(t, err)
	assertAppErrorCode(t, err, apperrors.CodeValidationError)
	assert.ErrorIs(t, err, domain.ErrInvalidActual)

	err = service.RecordProductionActual(ctx, domain.ProductionActual{OrderID: "ord-1", OEE: 1.2}, domain.FeedbackSourceAPI)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidActual)

	mocks.actuals.AssertNotCalled(t, "SaveChangeover", mock.Anything, mock.Anything)
	mocks.actuals.AssertNotCalled(t, "SaveProduction", mock.Anything, mock.Anything)
}

func TestSchedulingService_RecordProductionActual(t *testing.T) {
	service, mocks := newTestService()
	mocks.actuals.On("SaveProduction", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	mocks.actuals.On("SaveProduction", mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()
	actual := domain.ProductionActual{OrderID: "ord-1", LineID: "line-1", ActualRate: 2950, OEE: 0.84}

	err := service.RecordProductionActual(ctx, actual, domain.FeedbackSourceKafka)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save production actual")

	require.NoError(t, service.RecordProductionActual(ctx, actual, domain.FeedbackSourceKafka))
}
