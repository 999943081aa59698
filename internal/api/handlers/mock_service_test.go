package handlers

import (
	"context"

	"github.com/dallyp22/Scheduler-VS/internal/application"
	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

type mockSchedulingService struct {
	listSKUsFn           func(ctx context.Context) ([]domain.SKU, error)
	getSKUFn             func(ctx context.Context, skuID string) (*domain.SKU, error)
	upsertSKUFn          func(ctx context.Context, cmd application.UpsertSKUCommand) (*domain.SKU, error)
	listLinesFn          func(ctx context.Context) ([]domain.ProductionLine, error)
	listOrdersFn         func(ctx context.Context, query application.ListOrdersQuery) ([]domain.ProductionOrder, error)
	computeChangeoverFn  func(ctx context.Context, query application.ComputeChangeoverQuery) (*application.ChangeoverDTO, error)
	getMatrixFn          func(ctx context.Context, query application.MatrixQuery) (*domain.ChangeoverMatrix, error)
	changeoversForSKUFn  func(ctx context.Context, skuID string) ([]domain.ChangeoverCell, error)
	fastestFn            func(ctx context.Context, limit int) ([]domain.ChangeoverCell, error)
	slowestFn            func(ctx context.Context, limit int) ([]domain.ChangeoverCell, error)
	sequenceCostFn       func(ctx context.Context, query application.SequenceCostQuery) (*application.SequenceCostDTO, error)
	generateScheduleFn   func(ctx context.Context, cmd application.GenerateScheduleCommand) (*application.ScheduleDTO, error)
	listSchedulesFn      func(ctx context.Context, limit int) ([]application.ScheduleSummaryDTO, error)
	getScheduleFn        func(ctx context.Context, query application.GetScheduleQuery) (*application.ScheduleDTO, error)
	getScheduleBlocksFn  func(ctx context.Context, query application.GetBlocksQuery) ([]application.BlockDTO, error)
	getScheduleMetricsFn func(ctx context.Context, query application.GetScheduleQuery) (*domain.ScheduleMetrics, error)
	runScenariosFn       func(ctx context.Context, cmd application.RunScenariosCommand) (*application.ScenarioReport, error)
	recordChangeoverFn   func(ctx context.Context, actual domain.ChangeoverActual, source string) error
	recordProductionFn   func(ctx context.Context, actual domain.ProductionActual, source string) error
}

func (m *mockSchedulingService) ListSKUs(ctx context.Context) ([]domain.SKU, error) {
	if m.listSKUsFn == nil {
		panic("ListSKUs not implemented")
	}
	return m.listSKUsFn(ctx)
}

func (m *mockSchedulingService) GetSKU(ctx context.Context, skuID string) (*domain.SKU, error) {
	if m.getSKUFn == nil {
		panic("GetSKU not implemented")
	}
	return m.getSKUFn(ctx, skuID)
}

func (m *mockSchedulingService) UpsertSKU(ctx context.Context, cmd application.UpsertSKUCommand) (*domain.SKU, error) {
	if m.upsertSKUFn == nil {
		panic("UpsertSKU not implemented")
	}
	return m.upsertSKUFn(ctx, cmd)
}

func (m *mockSchedulingService) ListLines(ctx context.Context) ([]domain.ProductionLine, error) {
	if m.listLinesFn == nil {
		panic("ListLines not implemented")
	}
	return m.listLinesFn(ctx)
}

func (m *mockSchedulingService) ListOrders(ctx context.Context, query application.ListOrdersQuery) ([]domain.ProductionOrder, error) {
	if m.listOrdersFn == nil {
		panic("ListOrders not implemented")
	}
	return m.listOrdersFn(ctx, query)
}

func (m *mockSchedulingService) ComputeChangeover(ctx context.Context, query application.ComputeChangeoverQuery) (*application.ChangeoverDTO, error) {
	if m.computeChangeoverFn == nil {
		panic("ComputeChangeover not implemented")
	}
	return m.computeChangeoverFn(ctx, query)
}

func (m *mockSchedulingService) GetMatrix(ctx context.Context, query application.MatrixQuery) (*domain.ChangeoverMatrix, error) {
	if m.getMatrixFn == nil {
		panic("GetMatrix not implemented")
	}
	return m.getMatrixFn(ctx, query)
}

func (m *mockSchedulingService) ChangeoversForSKU(ctx context.Context, skuID string) ([]domain.ChangeoverCell, error) {
	if m.changeoversForSKUFn == nil {
		panic("ChangeoversForSKU not implemented")
	}
	return m.changeoversForSKUFn(ctx, skuID)
}

func (m *mockSchedulingService) FastestChangeovers(ctx context.Context, limit int) ([]domain.ChangeoverCell, error) {
	if m.fastestFn == nil {
		panic("FastestChangeovers not implemented")
	}
	return m.fastestFn(ctx, limit)
}

func (m *mockSchedulingService) SlowestChangeovers(ctx context.Context, limit int) ([]domain.ChangeoverCell, error) {
	if m.slowestFn == nil {
		panic("SlowestChangeovers not implemented")
	}
	return m.slowestFn(ctx, limit)
}

func (m *mockSchedulingService) SequenceCost(ctx context.Context, query application.SequenceCostQuery) (*application.SequenceCostDTO, error) {
	if m.sequenceCostFn == nil {
		panic("SequenceCost not implemented")
	}
	return m.sequenceCostFn(ctx, query)
}

func (m *mockSchedulingService) GenerateSchedule(ctx context.Context, cmd application.GenerateScheduleCommand) (*application.ScheduleDTO, error) {
	if m.generateScheduleFn == nil {
		panic("GenerateSchedule not implemented")
	}
	return m.generateScheduleFn(ctx, cmd)
}

func (m *mockSchedulingService) ListSchedules(ctx context.Context, limit int) ([]application.ScheduleSummaryDTO, error) {
	if m.listSchedulesFn == nil {
		panic("ListSchedules not implemented")
	}
	return m.listSchedulesFn(ctx, limit)
}

func (m *mockSchedulingService) GetSchedule(ctx context.Context, query application.GetScheduleQuery) (*application.ScheduleDTO, error) {
	if m.getScheduleFn == nil {
		panic("GetSchedule not implemented")
	}
	return m.getScheduleFn(ctx, query)
}

func (m *mockSchedulingService) GetScheduleBlocks(ctx context.Context, query application.GetBlocksQuery) ([]application.BlockDTO, error) {
	if m.getScheduleBlocksFn == nil {
		panic("GetScheduleBlocks not implemented")
	}
	return m.getScheduleBlocksFn(ctx, query)
}

func (m *mockSchedulingService) GetScheduleMetrics(ctx context.Context, query application.GetScheduleQuery) (*domain.ScheduleMetrics, error) {
	if m.getScheduleMetricsFn == nil {
		panic("GetScheduleMetrics not implemented")
	}
	return m.getScheduleMetricsFn(ctx, query)
}

func (m *mockSchedulingService) RunScenarios(ctx context.Context, cmd application.RunScenariosCommand) (*application.ScenarioReport, error) {
	if m.runScenariosFn == nil {
		panic("RunScenarios not implemented")
	}
	return m.runScenariosFn(ctx, cmd)
}

func (m *mockSchedulingService) RecordChangeoverActual(ctx context.Context, actual domain.ChangeoverActual, source string) error {
	if m.recordChangeoverFn == nil {
		panic("RecordChangeoverActual not implemented")
	}
	return m.recordChangeoverFn(ctx, actual, source)
}

func (m *mockSchedulingService) RecordProductionActual(ctx context.Context, actual domain.ProductionActual, source string) error {
	if m.recordProductionFn == nil {
		panic("RecordProductionActual not implemented")
	}
	return m.recordProductionFn(ctx, actual, source)
}
