package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/pkg/middleware"
)

type changeoverFeedbackRequest struct {
	FromSKUID     string    `json:"fromSkuId" binding:"required,sku_id"`
	ToSKUID       string    `json:"toSkuId" binding:"required,sku_id"`
	LineID        string    `json:"lineId"`
	ActualMinutes float64   `json:"actualMinutes" binding:"gte=0"`
	RecordedAt    time.Time `json:"recordedAt"`
}

type productionFeedbackRequest struct {
	OrderID    string    `json:"orderId" binding:"required"`
	LineID     string    `json:"lineId"`
	ActualRate float64   `json:"actualRate" binding:"gte=0"`
	OEE        float64   `json:"oee" binding:"gte=0,lte=1"`
	RecordedAt time.Time `json:"recordedAt"`
}

// RecordChangeover handles recording a measured changeover
func (h *SchedulerHandlers) RecordChangeover(c *gin.Context) {
	var req changeoverFeedbackRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	actual := domain.ChangeoverActual{
		FromSKUID:     req.FromSKUID,
		ToSKUID:       req.ToSKUID,
		LineID:        req.LineID,
		ActualMinutes: req.ActualMinutes,
		RecordedAt:    req.RecordedAt,
	}
	if err := h.service.RecordChangeoverActual(c.Request.Context(), actual, domain.FeedbackSourceAPI); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "recorded"})
}

// RecordProduction handles recording measured production performance
func (h *SchedulerHandlers) RecordProduction(c *gin.Context) {
	var req productionFeedbackRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	actual := domain.ProductionActual{
		OrderID:    req.OrderID,
		LineID:     req.LineID,
		ActualRate: req.ActualRate,
		OEE:        req.OEE,
		RecordedAt: req.RecordedAt,
	}
	if err := h.service.RecordProductionActual(c.Request.Context(), actual, domain.FeedbackSourceAPI); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "recorded"})
}
