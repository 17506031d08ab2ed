package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gradstat/placement-backend/internal/cache"
	"github.com/gradstat/placement-backend/internal/config"
	"github.com/gradstat/placement-backend/internal/dataset"
	"github.com/gradstat/placement-backend/internal/handler"
	"github.com/gradstat/placement-backend/internal/model"
	"github.com/gradstat/placement-backend/internal/router"
	"github.com/gradstat/placement-backend/internal/service"
	"github.com/gradstat/placement-backend/internal/validator"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	ds := model.Dataset{
		{Year: 2022, Branch: "Computer Science", TotalStudents: 100, PlacedStudents: 80, UnplacedStudents: 20,
			PlacementPct: 80.0, AvgPackage: 10.0, HighestPackage: 24.0, MedianPackage: 7.0, LowestPackage: 4.0,
			Companies: [3]model.CompanySlot{{Company: "TCS", Students: 18, Valid: true}},
			Roles:     [3]string{"Software Engineer", "Data Analyst", ""}, InternshipConversionPct: 52.0},
		{Year: 2023, Branch: "Computer Science", TotalStudents: 100, PlacedStudents: 90, UnplacedStudents: 10,
			PlacementPct: 90.0, AvgPackage: 12.0, HighestPackage: 30.0, MedianPackage: 8.0, LowestPackage: 4.5,
			Companies: [3]model.CompanySlot{{Company: "Amazon", Students: 22, Valid: true}},
			Roles:     [3]string{"Software Engineer", "DevOps Engineer", ""}, InternshipConversionPct: 58.0},
	}

	log := zerolog.Nop()
	repo := dataset.NewRepository(ds, log)
	store := cache.NewMemory()

	analytics := service.NewAnalyticsService(repo, log)
	charts := service.NewChartService(repo, store, time.Minute, log)
	exports := service.NewExportService(repo, store, time.Minute, log)

	handlers := &router.Handlers{
		Dashboard: handler.NewDashboardHandler(analytics),
		Chart:     handler.NewChartHandler(charts),
		Export:    handler.NewExportHandler(exports, log),
		Filter:    handler.NewFilterHandler(repo),
	}

	cfg := &config.Config{GinMode: gin.TestMode, ExportRatePerMinute: 100}
	return router.SetupRouter(handlers, cfg)
}

func postJSON(t *testing.T, srv *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
	Metadata struct {
		RequestID string `json:"request_id"`
	} `json:"metadata"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFilterOptions(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/filters/options", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=300")

	env := decode(t, w)
	require.Nil(t, env.Error)
	assert.NotEmpty(t, env.Metadata.RequestID)

	var data struct {
		Filters model.FilterOptions `json:"filters"`
		Charts  []string            `json:"charts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []int{2023, 2022}, data.Filters.Years)
	assert.Equal(t, []string{"Computer Science"}, data.Filters.Branches)
	assert.Len(t, data.Charts, 10)
}

func TestDashboardSummary(t *testing.T) {
	srv := testServer(t)

	w := postJSON(t, srv, "/api/v1/dashboard", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	require.Nil(t, env.Error)

	var data service.DashboardData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.RowCount)
	assert.Equal(t, 0, data.ActiveFilters)
	assert.InDelta(t, 85.0, data.Metrics.OverallPlacementPct, 1e-9)
}

func TestDashboardFiltered(t *testing.T) {
	srv := testServer(t)

	w := postJSON(t, srv, "/api/v1/dashboard", `{"years":[2022]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var data service.DashboardData
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.RowCount)
	assert.Equal(t, 1, data.ActiveFilters)
	assert.Nil(t, data.Metrics.YoYPlacedChange)
}

func TestDashboardInvalidRange(t *testing.T) {
	srv := testServer(t)

	w := postJSON(t, srv, "/api/v1/dashboard", `{"package_range":{"min":12,"max":4}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields["max"], "min must be less than or equal to max")
}

func TestChartsGetAll(t *testing.T) {
	srv := testServer(t)

	w := postJSON(t, srv, "/api/v1/dashboard/charts", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	var data struct {
		Charts []model.ChartResult `json:"charts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Charts, 10)
	assert.Equal(t, "placement-trends", data.Charts[0].Name)
}

func TestChartByName(t *testing.T) {
	srv := testServer(t)

	w := postJSON(t, srv, "/api/v1/dashboard/charts/top-companies", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	var result model.ChartResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "top-companies", result.Name)
	require.NotNil(t, result.Chart)
}

func TestChartByNameUnknown(t *testing.T) {
	srv := testServer(t)

	w := postJSON(t, srv, "/api/v1/dashboard/charts/not-a-chart", `{}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNKNOWN_CHART", env.Error.Code)
}

func TestExportCSV(t *testing.T) {
	srv := testServer(t)

	w := postJSON(t, srv, "/api/v1/export/csv", `{"years":[2023]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "placement_data_filtered.csv")
	assert.Contains(t, w.Body.String(), "2023,Computer Science")
}

func TestExportPDF(t *testing.T) {
	srv := testServer(t)

	w := postJSON(t, srv, "/api/v1/export/pdf", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "placement_analytics_report.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestExportPDFBadPayload(t *testing.T) {
	srv := testServer(t)

	w := postJSON(t, srv, "/api/v1/export/pdf", `{"placement_pct_range":{"min":90,"max":10}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
