package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dallyp22/Scheduler-VS/internal/application"
	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/pkg/middleware"
)

type generateScheduleRequest struct {
	Name            string     `json:"name" binding:"max=120"`
	WindowStart     *time.Time `json:"windowStart"`
	WindowEnd       *time.Time `json:"windowEnd"`
	OrderSort       string     `json:"orderSort" binding:"order_sort"`
	ExcludedLines   []string   `json:"excludedLines"`
	SimulateActuals bool       `json:"simulateActuals"`
}

type scenarioRequest struct {
	Name          string   `json:"name" binding:"required,max=64"`
	OrderSort     string   `json:"orderSort" binding:"order_sort"`
	ExcludedLines []string `json:"excludedLines"`
	VarianceSeed  *int64   `json:"varianceSeed"`
}

func (r scenarioRequest) toConfig() application.ScenarioConfig {
	return application.ScenarioConfig{
		Name:          r.Name,
		OrderSort:     domain.OrderSort(r.OrderSort),
		ExcludedLines: r.ExcludedLines,
		VarianceSeed:  r.VarianceSeed,
	}
}

type runScenariosRequest struct {
	WindowStart *time.Time        `json:"windowStart"`
	WindowEnd   *time.Time        `json:"windowEnd"`
	Baseline    *scenarioRequest  `json:"baseline"`
	Scenarios   []scenarioRequest `json:"scenarios" binding:"required,min=1,max=10,dive"`
}

// GenerateSchedule handles generating a schedule over the open backlog
func (h *SchedulerHandlers) GenerateSchedule(c *gin.Context) {
	var req generateScheduleRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	schedule, err := h.service.GenerateSchedule(c.Request.Context(), application.GenerateScheduleCommand{
		Name:            req.Name,
		WindowStart:     req.WindowStart,
		WindowEnd:       req.WindowEnd,
		OrderSort:       domain.OrderSort(req.OrderSort),
		ExcludedLines:   req.ExcludedLines,
		SimulateActuals: req.SimulateActuals,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	middleware.AddSpanAttributes(c,
		attribute.String("aips.schedule.id", schedule.ScheduleID),
		attribute.Int("aips.schedule.blocks", len(schedule.Blocks)),
	)

	c.JSON(http.StatusCreated, schedule)
}

// ListSchedules handles listing recent schedule runs
func (h *SchedulerHandlers) ListSchedules(c *gin.Context) {
	limit, appErr := queryLimit(c)
	if appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	schedules, err := h.service.ListSchedules(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedules": schedules,
		"total":     len(schedules),
	})
}

// GetSchedule handles getting a stored schedule run
func (h *SchedulerHandlers) GetSchedule(c *gin.Context) {
	scheduleID := c.Param("scheduleId")
	middleware.AddSpanAttributes(c, attribute.String("aips.schedule.id", scheduleID))

	at, appErr := queryTime(c, "at")
	if appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	schedule, err := h.service.GetSchedule(c.Request.Context(), application.GetScheduleQuery{ScheduleID: scheduleID, At: at})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// GetScheduleBlocks handles getting the blocks of a run, optionally for one line
func (h *SchedulerHandlers) GetScheduleBlocks(c *gin.Context) {
	scheduleID := c.Param("scheduleId")
	lineID := c.Query("lineId")
	middleware.AddSpanAttributes(c,
		attribute.String("aips.schedule.id", scheduleID),
		attribute.String("aips.line.id", lineID),
	)

	at, appErr := queryTime(c, "at")
	if appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	blocks, err := h.service.GetScheduleBlocks(c.Request.Context(), application.GetBlocksQuery{
		ScheduleID: scheduleID,
		LineID:     lineID,
		At:         at,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scheduleId": scheduleID,
		"blocks":     blocks,
		"total":      len(blocks),
	})
}

// GetScheduleMetrics handles recomputing the metrics of a run
func (h *SchedulerHandlers) GetScheduleMetrics(c *gin.Context) {
	scheduleID := c.Param("scheduleId")

	at, appErr := queryTime(c, "at")
	if appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	metrics, err := h.service.GetScheduleMetrics(c.Request.Context(), application.GetScheduleQuery{ScheduleID: scheduleID, At: at})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// RunScenarios handles running what-if scenarios against the baseline
func (h *SchedulerHandlers) RunScenarios(c *gin.Context) {
	var req runScenariosRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	cmd := application.RunScenariosCommand{
		WindowStart: req.WindowStart,
		WindowEnd:   req.WindowEnd,
		Scenarios:   make([]application.ScenarioConfig, len(req.Scenarios)),
	}
	for i, s := range req.Scenarios {
		cmd.Scenarios[i] = s.toConfig()
	}
	if req.Baseline != nil {
		baseline := req.Baseline.toConfig()
		cmd.Baseline = &baseline
	}

	report, err := h.service.RunScenarios(c.Request.Context(), cmd)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
