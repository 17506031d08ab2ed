package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gradstat/placement-backend/internal/cache"
	"github.com/gradstat/placement-backend/internal/dataset"
	"github.com/gradstat/placement-backend/internal/model"
	"github.com/rs/zerolog"
)

type chartBuilder struct {
	name  string
	title string
	build func(model.Dataset) (*model.ChartData, string)
}

// The ten builders, in dashboard layout order. Each is independent and
// order-insensitive with respect to the others.
var chartBuilders = []chartBuilder{
	{"placement-trends", "Placement Trends Over Years", buildPlacementTrends},
	{"students-placed", "Students Placed vs Unplaced by Year", buildStudentsPlaced},
	{"branch-comparison", "Branch-wise Placement Rate", buildBranchComparison},
	{"package-distribution", "Package Distribution by Branch", buildPackageDistribution},
	{"package-trends", "Package Trends Over Years", buildPackageTrends},
	{"performance-scatter", "Placement Rate vs Avg Package", buildPerformanceScatter},
	{"top-companies", "Top Recruiting Companies", buildTopCompanies},
	{"job-roles", "Job Role Distribution", buildJobRoles},
	{"internship-conversion", "Internship Conversion vs Placement Rate", buildInternshipConversion},
	{"growth-heatmap", "Placement Rate by Branch & Year", buildGrowthHeatmap},
}

// ChartNames lists the registered builder names in layout order.
func ChartNames() []string {
	names := make([]string, len(chartBuilders))
	for i, b := range chartBuilders {
		names[i] = b.name
	}
	return names
}

// ChartService turns a filter selection into the ten chart/insight
// pairs. Full bundles are memoized per selection through the cache
// store; recomputation is always correct without it.
type ChartService struct {
	data  *dataset.Repository
	store cache.Store
	ttl   time.Duration
	log   zerolog.Logger
}

// NewChartService creates a new ChartService.
func NewChartService(data *dataset.Repository, store cache.Store, ttl time.Duration, log zerolog.Logger) *ChartService {
	return &ChartService{data: data, store: store, ttl: ttl, log: log}
}

// BuildAll computes all ten chart results for the selection.
func (s *ChartService) BuildAll(ctx context.Context, sel model.FilterSelection) []model.ChartResult {
	view, norm := s.data.Filter(sel)
	key := "charts:" + cache.SelectionKey(norm)

	if raw, ok := s.store.Get(ctx, key); ok {
		var results []model.ChartResult
		if err := json.Unmarshal(raw, &results); err == nil {
			return results
		}
		s.log.Warn().Str("key", key).Msg("Discarding undecodable chart cache entry")
	}

	results := buildCharts(view)

	if raw, err := json.Marshal(results); err == nil {
		s.store.Set(ctx, key, raw, s.ttl)
	}
	return results
}

// Build computes a single chart by builder name. The second return is
// false for an unknown name.
func (s *ChartService) Build(_ context.Context, name string, sel model.FilterSelection) (model.ChartResult, bool) {
	for _, b := range chartBuilders {
		if b.name != name {
			continue
		}
		view, _ := s.data.Filter(sel)
		chart, insight := b.build(view)
		return model.ChartResult{Name: b.name, Title: b.title, Chart: chart, Insight: insight}, true
	}
	return model.ChartResult{}, false
}

func buildCharts(view model.Dataset) []model.ChartResult {
	results := make([]model.ChartResult, 0, len(chartBuilders))
	for _, b := range chartBuilders {
		chart, insight := b.build(view)
		results = append(results, model.ChartResult{
			Name:    b.name,
			Title:   b.title,
			Chart:   chart,
			Insight: insight,
		})
	}
	return results
}
