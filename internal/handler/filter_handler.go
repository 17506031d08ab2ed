package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gradstat/placement-backend/internal/dataset"
	"github.com/gradstat/placement-backend/internal/response"
	"github.com/gradstat/placement-backend/internal/service"
)

// FilterHandler exposes the filter domain so the presentation layer can
// render its controls.
type FilterHandler struct {
	data *dataset.Repository
}

// NewFilterHandler creates a new FilterHandler.
func NewFilterHandler(data *dataset.Repository) *FilterHandler {
	return &FilterHandler{data: data}
}

// Options godoc
// GET /api/v1/filters/options
// Returns the full filter domain of the loaded dataset plus the list of
// registered chart names.
func (h *FilterHandler) Options(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"filters": h.data.Options(),
		"charts":  service.ChartNames(),
	})
}
