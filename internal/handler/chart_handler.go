package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gradstat/placement-backend/internal/response"
	"github.com/gradstat/placement-backend/internal/service"
	"github.com/gradstat/placement-backend/internal/validator"
)

// ChartHandler serves chart data plus generated insights.
type ChartHandler struct {
	charts *service.ChartService
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(charts *service.ChartService) *ChartHandler {
	return &ChartHandler{charts: charts}
}

// GetAll godoc
// POST /api/v1/dashboard/charts
// Returns all ten chart/insight pairs for the posted filter selection,
// in dashboard layout order. Builders with nothing to show return a
// null chart and keep their slot.
func (h *ChartHandler) GetAll(c *gin.Context) {
	var req filterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	results := h.charts.BuildAll(c.Request.Context(), req.selection())
	response.Success(c, http.StatusOK, gin.H{"charts": results})
}

// GetByName godoc
// POST /api/v1/dashboard/charts/:name
// Returns a single chart/insight pair by builder name.
func (h *ChartHandler) GetByName(c *gin.Context) {
	var req filterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, ok := h.charts.Build(c.Request.Context(), c.Param("name"), req.selection())
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrUnknownChart)
		return
	}
	response.Success(c, http.StatusOK, result)
}
