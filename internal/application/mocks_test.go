package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

type MockSKURepository struct {
	mock.Mock
}

func (m *MockSKURepository) Save(ctx context.Context, sku *domain.SKU) error {
	args := m.Called(ctx, sku)
	return args.Error(0)
}

func (m *MockSKURepository) FindByID(ctx context.Context, skuID string) (*domain.SKU, error) {
	args := m.Called(ctx, skuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SKU), args.Error(1)
}

func (m *MockSKURepository) FindAll(ctx context.Context) ([]domain.SKU, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SKU), args.Error(1)
}

type MockLineRepository struct {
	mock.Mock
}

func (m *MockLineRepository) Save(ctx context.Context, line *domain.ProductionLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockLineRepository) FindAll(ctx context.Context) ([]domain.ProductionLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductionLine), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, order *domain.ProductionOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, statuses ...domain.OrderStatus) ([]domain.ProductionOrder, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductionOrder), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) FindByID(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) FindRecent(ctx context.Context, limit int) ([]*domain.Schedule, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Schedule), args.Error(1)
}

type MockActualsRepository struct {
	mock.Mock
}

func (m *MockActualsRepository) SaveChangeover(ctx context.Context, actual domain.ChangeoverActual) error {
	args := m.Called(ctx, actual)
	return args.Error(0)
}

func (m *MockActualsRepository) SaveProduction(ctx context.Context, actual domain.ProductionActual) error {
	args := m.Called(ctx, actual)
	return args.Error(0)
}

func (m *MockActualsRepository) ChangeoverHistory(ctx context.Context) (map[domain.PairKey]domain.ChangeoverHistory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.PairKey]domain.ChangeoverHistory), args.Error(1)
}

func (m *MockActualsRepository) ProductionByOrder(ctx context.Context, orderIDs []string) (map[string]domain.ProductionActual, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ProductionActual), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockScenarioExecutor struct {
	mock.Mock
}

func (m *MockScenarioExecutor) Execute(ctx context.Context, input ScenarioInput) (*ScenarioReport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ScenarioReport), args.Error(1)
}
