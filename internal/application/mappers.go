package application

import (
	"time"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

// ToChangeoverDTO converts a changeover result to a DTO
func ToChangeoverDTO(from, to domain.SKU, result domain.ChangeoverResult) *ChangeoverDTO {
	return &ChangeoverDTO{
		FromSKUID:        from.ID,
		ToSKUID:          to.ID,
		FromSKUCode:      from.Code,
		ToSKUCode:        to.Code,
		ChangeoverResult: result,
	}
}

// ToMatrixDTO converts a matrix to a DTO
func ToMatrixDTO(m *domain.ChangeoverMatrix) *MatrixDTO {
	return &MatrixDTO{
		Version:             m.Version,
		SKUIDs:              m.SKUIDs(),
		Size:                m.Size(),
		Cells:               m.Cells(),
		ComplexityBreakdown: m.ComplexityBreakdown(),
	}
}

// ToBlockDTOs projects block statuses at the given time
func ToBlockDTOs(blocks []domain.ScheduleBlock, at time.Time) []BlockDTO {
	dtos := make([]BlockDTO, len(blocks))
	for i, b := range blocks {
		dtos[i] = BlockDTO{
			ScheduleBlock: b,
			SetupStart:    b.SetupStart(),
			Status:        domain.BlockStatusAt(b, at),
		}
	}
	return dtos
}

// ToScheduleDTO converts a stored run to a DTO with statuses projected at the given time
func ToScheduleDTO(s *domain.Schedule, metrics domain.ScheduleMetrics, at time.Time) *ScheduleDTO {
	unscheduled := s.Unscheduled
	if unscheduled == nil {
		unscheduled = []domain.UnscheduledOrder{}
	}
	return &ScheduleDTO{
		ScheduleID:    s.ScheduleID,
		Name:          s.Name,
		Strategy:      s.Strategy,
		Window:        s.Window,
		MatrixVersion: s.MatrixVersion,
		CreatedAt:     s.CreatedAt,
		At:            at,
		Blocks:        ToBlockDTOs(s.Blocks, at),
		Unscheduled:   unscheduled,
		Metrics:       metrics,
		Issues:        domain.ValidateSchedule(s.Blocks),
	}
}

// ToScheduleSummaryDTOs converts stored runs to listing DTOs
func ToScheduleSummaryDTOs(schedules []*domain.Schedule) []ScheduleSummaryDTO {
	dtos := make([]ScheduleSummaryDTO, len(schedules))
	for i, s := range schedules {
		dtos[i] = ScheduleSummaryDTO{
			ScheduleID:       s.ScheduleID,
			Name:             s.Name,
			Strategy:         s.Strategy,
			BlockCount:       len(s.Blocks),
			UnscheduledCount: len(s.Unscheduled),
			AvgUtilization:   s.Metrics.AvgUtilization,
			CreatedAt:        s.CreatedAt,
		}
	}
	return dtos
}
