package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gradstat/placement-backend/internal/response"
	"github.com/gradstat/placement-backend/internal/service"
	"github.com/gradstat/placement-backend/internal/validator"
	"github.com/rs/zerolog"
)

// ExportHandler serves the downloadable report and CSV snapshots.
type ExportHandler struct {
	exports *service.ExportService
	log     zerolog.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exports *service.ExportService, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{exports: exports, log: log}
}

// PDF godoc
// POST /api/v1/export/pdf
// Renders (or serves the memoized) PDF report for the posted filter
// selection.
func (h *ExportHandler) PDF(c *gin.Context) {
	var req filterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	blob, err := h.exports.PDF(c.Request.Context(), req.selection())
	if err != nil {
		h.log.Error().Err(err).Msg("PDF export failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrExportFailed)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="placement_analytics_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", blob)
}

// CSV godoc
// POST /api/v1/export/csv
// Serializes the filtered rows as CSV with the canonical header.
func (h *ExportHandler) CSV(c *gin.Context) {
	var req filterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="placement_data_filtered.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", h.exports.CSV(req.selection()))
}
