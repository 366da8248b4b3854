package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/forecast"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/service"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// ForecastRequest carries the catalog snapshot and consumption log the
// forecast runs against. The catalog collaborator owns both; the core
// only derives from them.
type ForecastRequest struct {
	Components []domain.Component        `json:"components"`
	Events     []domain.ConsumptionEvent `json:"events"`
	AsOf       string                    `json:"as_of"` // 2006-01-02, defaults to today
}

// Forecast recomputes reorder forecasts for the supplied catalog.
func (h *AnalyticsHandler) Forecast(c *gin.Context) {
	var req ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var asOf time.Time
	if req.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", req.AsOf)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be formatted as YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	results, err := h.analytics.Forecast(c.Request.Context(), req.Components, req.Events, asOf)
	if err != nil {
		if errors.Is(err, forecast.ErrNilComponents) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "components are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute forecast"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"as_of": req.AsOf, "results": results})
}

// RegionalStats returns order volume and revenue grouped by US state and
// by country.
func (h *AnalyticsHandler) RegionalStats(c *gin.Context) {
	stats, err := h.analytics.RegionalStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute regional stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
