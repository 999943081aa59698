package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dallyp22/Scheduler-VS/internal/application"
	"github.com/dallyp22/Scheduler-VS/internal/domain"
	apperrors "github.com/dallyp22/Scheduler-VS/pkg/errors"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
	"github.com/dallyp22/Scheduler-VS/pkg/middleware"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// SchedulingService is the application surface the HTTP API exposes
type SchedulingService interface {
	ListSKUs(ctx context.Context) ([]domain.SKU, error)
	GetSKU(ctx context.Context, skuID string) (*domain.SKU, error)
	UpsertSKU(ctx context.Context, cmd application.UpsertSKUCommand) (*domain.SKU, error)
	ListLines(ctx context.Context) ([]domain.ProductionLine, error)
	ListOrders(ctx context.Context, query application.ListOrdersQuery) ([]domain.ProductionOrder, error)

	ComputeChangeover(ctx context.Context, query application.ComputeChangeoverQuery) (*application.ChangeoverDTO, error)
	GetMatrix(ctx context.Context, query application.MatrixQuery) (*domain.ChangeoverMatrix, error)
	ChangeoversForSKU(ctx context.Context, skuID string) ([]domain.ChangeoverCell, error)
	FastestChangeovers(ctx context.Context, limit int) ([]domain.ChangeoverCell, error)
	SlowestChangeovers(ctx context.Context, limit int) ([]domain.ChangeoverCell, error)
	SequenceCost(ctx context.Context, query application.SequenceCostQuery) (*application.SequenceCostDTO, error)

	GenerateSchedule(ctx context.Context, cmd application.GenerateScheduleCommand) (*application.ScheduleDTO, error)
	ListSchedules(ctx context.Context, limit int) ([]application.ScheduleSummaryDTO, error)
	GetSchedule(ctx context.Context, query application.GetScheduleQuery) (*application.ScheduleDTO, error)
	GetScheduleBlocks(ctx context.Context, query application.GetBlocksQuery) ([]application.BlockDTO, error)
	GetScheduleMetrics(ctx context.Context, query application.GetScheduleQuery) (*domain.ScheduleMetrics, error)
	RunScenarios(ctx context.Context, cmd application.RunScenariosCommand) (*application.ScenarioReport, error)

	RecordChangeoverActual(ctx context.Context, actual domain.ChangeoverActual, source string) error
	RecordProductionActual(ctx context.Context, actual domain.ProductionActual, source string) error
}

// SchedulerHandlers contains the HTTP handlers of the scheduler API
type SchedulerHandlers struct {
	service SchedulingService
	logger  *logging.Logger
}

// NewSchedulerHandlers creates a new SchedulerHandlers
func NewSchedulerHandlers(service SchedulingService, logger *logging.Logger) *SchedulerHandlers {
	return &SchedulerHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers every scheduler route on the router
func (h *SchedulerHandlers) RegisterRoutes(router *gin.RouterGroup) {
	skus := router.Group("/skus")
	{
		skus.GET("", h.ListSKUs)
		skus.GET("/:skuId", h.GetSKU)
		skus.PUT("/:skuId", h.UpsertSKU)
	}

	router.GET("/lines", h.ListLines)
	router.GET("/orders", h.ListOrders)

	changeovers := router.Group("/changeovers")
	{
		changeovers.POST("/compute", h.ComputeChangeover)
		changeovers.GET("/matrix", h.GetMatrix)
		changeovers.GET("/sku/:skuId", h.GetChangeoversForSKU)
		changeovers.GET("/fastest", h.GetFastestChangeovers)
		changeovers.GET("/slowest", h.GetSlowestChangeovers)
		changeovers.POST("/sequence-cost", h.SequenceCost)
	}

	schedules := router.Group("/schedules")
	{
		schedules.POST("", h.GenerateSchedule)
		schedules.GET("", h.ListSchedules)
		schedules.GET("/:scheduleId", h.GetSchedule)
		schedules.GET("/:scheduleId/blocks", h.GetScheduleBlocks)
		schedules.GET("/:scheduleId/metrics", h.GetScheduleMetrics)
	}

	router.POST("/scenarios", h.RunScenarios)

	feedback := router.Group("/feedback")
	{
		feedback.POST("/changeovers", h.RecordChangeover)
		feedback.POST("/production", h.RecordProduction)
	}
}

func (h *SchedulerHandlers) respondError(c *gin.Context, err error) {
	middleware.NewErrorResponder(c, h.logger).RespondWithError(err)
}

func (h *SchedulerHandlers) respondAppError(c *gin.Context, appErr *apperrors.AppError) {
	middleware.NewErrorResponder(c, h.logger).RespondWithAppError(appErr)
}

// queryTime parses an optional RFC3339 query parameter
func queryTime(c *gin.Context, name string) (*time.Time, *apperrors.AppError) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperrors.ErrValidationWithFields("invalid query parameter", map[string]string{
			name: "must be an RFC3339 timestamp",
		})
	}
	return &t, nil
}

// queryLimit parses the limit query parameter, clamped to [1, maxListLimit]
func queryLimit(c *gin.Context) (int, *apperrors.AppError) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, apperrors.ErrValidationWithFields("invalid query parameter", map[string]string{
			"limit": "must be a positive integer",
		})
	}
	return min(limit, maxListLimit), nil
}
