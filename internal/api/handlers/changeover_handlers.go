package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dallyp22/Scheduler-VS/internal/application"
	apperrors "github.com/dallyp22/Scheduler-VS/pkg/errors"
	"github.com/dallyp22/Scheduler-VS/pkg/middleware"
	"github.com/dallyp22/Scheduler-VS/pkg/tracing"
)

type computeChangeoverRequest struct {
	FromSKUID string `json:"fromSkuId" binding:"required,sku_id"`
	ToSKUID   string `json:"toSkuId" binding:"required,sku_id"`
}

type sequenceCostRequest struct {
	SKUIDs []string `json:"skuIds" binding:"required,min=1,dive,sku_id"`
}

// ComputeChangeover handles costing a single changeover
func (h *SchedulerHandlers) ComputeChangeover(c *gin.Context) {
	var req computeChangeoverRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	middleware.AddSpanAttributes(c,
		attribute.String("aips.changeover.from", req.FromSKUID),
		attribute.String("aips.changeover.to", req.ToSKUID),
	)

	result, err := h.service.ComputeChangeover(c.Request.Context(), application.ComputeChangeoverQuery{
		FromSKUID: req.FromSKUID,
		ToSKUID:   req.ToSKUID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatrix handles getting the changeover matrix
func (h *SchedulerHandlers) GetMatrix(c *gin.Context) {
	query := application.MatrixQuery{}

	if raw := c.Query("variance"); raw != "" {
		variance, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondAppError(c, apperrors.ErrValidationWithFields("invalid query parameter", map[string]string{
				"variance": "must be a boolean",
			}))
			return
		}
		query.Variance = variance
	}
	if raw := c.Query("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.respondAppError(c, apperrors.ErrValidationWithFields("invalid query parameter", map[string]string{
				"seed": "must be an integer",
			}))
			return
		}
		query.Seed = &seed
		query.Variance = true
	}

	middleware.AddSpanAttributes(c, tracing.AttrMatrixVariant.Bool(query.Variance))

	matrix, err := h.service.GetMatrix(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, application.ToMatrixDTO(matrix))
}

// GetChangeoversForSKU handles getting every changeover a SKU takes part in
func (h *SchedulerHandlers) GetChangeoversForSKU(c *gin.Context) {
	skuID := c.Param("skuId")

	cells, err := h.service.ChangeoversForSKU(c.Request.Context(), skuID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skuId":       skuID,
		"changeovers": cells,
		"total":       len(cells),
	})
}

// GetFastestChangeovers handles listing the cheapest changeovers
func (h *SchedulerHandlers) GetFastestChangeovers(c *gin.Context) {
	limit, appErr := queryLimit(c)
	if appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	cells, err := h.service.FastestChangeovers(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"changeovers": cells, "total": len(cells)})
}

// GetSlowestChangeovers handles listing the most expensive changeovers
func (h *SchedulerHandlers) GetSlowestChangeovers(c *gin.Context) {
	limit, appErr := queryLimit(c)
	if appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	cells, err := h.service.SlowestChangeovers(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"changeovers": cells, "total": len(cells)})
}

// SequenceCost handles costing a SKU sequence
func (h *SchedulerHandlers) SequenceCost(c *gin.Context) {
	var req sequenceCostRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	result, err := h.service.SequenceCost(c.Request.Context(), application.SequenceCostQuery{SKUIDs: req.SKUIDs})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
