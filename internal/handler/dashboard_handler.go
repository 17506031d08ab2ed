package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gradstat/placement-backend/internal/response"
	"github.com/gradstat/placement-backend/internal/service"
	"github.com/gradstat/placement-backend/internal/validator"
)

// DashboardHandler serves the KPI summary for a filter selection.
type DashboardHandler struct {
	analytics *service.AnalyticsService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(analytics *service.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analytics: analytics}
}

// Summary godoc
// POST /api/v1/dashboard
// Computes the derived metrics for the posted filter selection. An
// empty filter result is a valid state: row_count is 0 and the metrics
// are zero-valued with absent deltas.
func (h *DashboardHandler) Summary(c *gin.Context) {
	var req filterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	response.Success(c, http.StatusOK, h.analytics.Dashboard(req.selection()))
}
