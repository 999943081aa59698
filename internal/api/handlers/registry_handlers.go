package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dallyp22/Scheduler-VS/internal/application"
	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/pkg/middleware"
)

type upsertSKURequest struct {
	Code       string `json:"code"`
	Name       string `json:"name" binding:"required"`
	Family     string `json:"family" binding:"required,product_family"`
	Production struct {
		StandardRate    float64 `json:"standardRate" binding:"gte=0"`
		MinBatch        int     `json:"minBatch" binding:"gte=0"`
		MaxBatch        int     `json:"maxBatch" binding:"gte=0"`
		SetupTime       float64 `json:"setupTime" binding:"gte=0"`
		CycleTime       float64 `json:"cycleTime" binding:"gte=0"`
		YieldPercentage float64 `json:"yieldPercentage" binding:"gte=0,lte=100"`
	} `json:"production"`
	Attributes struct {
		Color       string   `json:"color"`
		Viscosity   string   `json:"viscosity" binding:"omitempty,oneof=low medium high"`
		Allergens   []string `json:"allergens"`
		Temperature string   `json:"temperature" binding:"omitempty,oneof=ambient chilled frozen"`
	} `json:"attributes"`
	Compatibility struct {
		AllowedLines   []string `json:"allowedLines"`
		PreferredLines []string `json:"preferredLines"`
	} `json:"compatibility"`
	CleaningRequirement string `json:"cleaningRequirement" binding:"omitempty,cleaning_category"`
}

func (r upsertSKURequest) toSKU(skuID string) domain.SKU {
	return domain.SKU{
		ID:     skuID,
		Code:   r.Code,
		Name:   r.Name,
		Family: domain.ProductFamily(r.Family),
		Production: domain.ProductionParameters{
			StandardRate:    r.Production.StandardRate,
			MinBatch:        r.Production.MinBatch,
			MaxBatch:        r.Production.MaxBatch,
			SetupTime:       r.Production.SetupTime,
			CycleTime:       r.Production.CycleTime,
			YieldPercentage: r.Production.YieldPercentage,
		},
		Attributes: domain.PhysicalAttributes{
			Color:       r.Attributes.Color,
			Viscosity:   domain.Viscosity(r.Attributes.Viscosity),
			Allergens:   r.Attributes.Allergens,
			Temperature: domain.TemperatureClass(r.Attributes.Temperature),
		},
		Compatibility: domain.LineCompatibility{
			AllowedLines:   r.Compatibility.AllowedLines,
			PreferredLines: r.Compatibility.PreferredLines,
		},
		CleaningRequirement: domain.CleaningCategory(r.CleaningRequirement),
	}
}

// ListSKUs handles listing the SKU registry
func (h *SchedulerHandlers) ListSKUs(c *gin.Context) {
	skus, err := h.service.ListSKUs(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skus":  skus,
		"total": len(skus),
	})
}

// GetSKU handles getting a SKU by ID
func (h *SchedulerHandlers) GetSKU(c *gin.Context) {
	skuID := c.Param("skuId")
	middleware.AddSpanAttributes(c, attribute.String("aips.sku.id", skuID))

	sku, err := h.service.GetSKU(c.Request.Context(), skuID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sku)
}

// UpsertSKU handles creating or replacing a SKU
func (h *SchedulerHandlers) UpsertSKU(c *gin.Context) {
	skuID := c.Param("skuId")
	middleware.AddSpanAttributes(c, attribute.String("aips.sku.id", skuID))

	var req upsertSKURequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		h.respondAppError(c, appErr)
		return
	}

	sku, err := h.service.UpsertSKU(c.Request.Context(), application.UpsertSKUCommand{SKU: req.toSKU(skuID)})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sku)
}

// ListLines handles listing production lines
func (h *SchedulerHandlers) ListLines(c *gin.Context) {
	lines, err := h.service.ListLines(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lines":  lines,
		"total":  len(lines),
		"active": len(domain.ActiveLines(lines)),
	})
}

// ListOrders handles listing production orders, optionally by status
func (h *SchedulerHandlers) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), application.ListOrdersQuery{Status: c.Query("status")})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}
