package service

import (
	"math"

	"github.com/gradstat/placement-backend/internal/dataset"
	"github.com/gradstat/placement-backend/internal/model"
	"github.com/rs/zerolog"
)

// AnalyticsService computes the KPI snapshot for a filter selection.
// It is stateless: every call is a pure function of the repository's
// immutable dataset and the incoming selection.
type AnalyticsService struct {
	data *dataset.Repository
	log  zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(data *dataset.Repository, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{data: data, log: log}
}

// DashboardData is the KPI payload for the dashboard summary endpoint.
type DashboardData struct {
	Metrics       model.DerivedMetrics `json:"metrics"`
	RowCount      int                  `json:"row_count"`
	ActiveFilters int                  `json:"active_filters"`
}

// Dashboard filters the dataset and computes the derived metrics.
// An empty filter result is a valid state and yields zero-valued
// metrics, never an error.
func (s *AnalyticsService) Dashboard(sel model.FilterSelection) DashboardData {
	view, norm := s.data.Filter(sel)
	return DashboardData{
		Metrics:       ComputeMetrics(view),
		RowCount:      len(view),
		ActiveFilters: dataset.ActiveFilterCount(s.data.All(), norm),
	}
}

// ComputeMetrics computes the aggregate KPIs and year-over-year deltas
// for a (possibly filtered) dataset. It is total: any well-typed input
// returns a result. All divisions guard the zero-denominator case, and
// the deltas compare the two highest distinct years present — not
// necessarily adjacent calendar years.
func ComputeMetrics(ds model.Dataset) model.DerivedMetrics {
	if ds.Empty() {
		return model.EmptyMetrics()
	}

	m := model.DerivedMetrics{HighestPackageBranch: "N/A"}
	for _, r := range ds {
		m.TotalPlaced += r.PlacedStudents
		m.TotalStudents += r.TotalStudents
	}
	if m.TotalStudents > 0 {
		m.OverallPlacementPct = round1(float64(m.TotalPlaced) / float64(m.TotalStudents) * 100)
	}

	// Highest package: max over rows, first occurrence wins on ties
	// because the dataset is in canonical (year, branch) order.
	best := math.Inf(-1)
	for _, r := range ds {
		if !math.IsNaN(r.HighestPackage) && r.HighestPackage > best {
			best = r.HighestPackage
			m.HighestPackage = r.HighestPackage
			m.HighestPackageBranch = r.Branch
		}
	}

	m.WeightedAvgPackage = round2(weightedAvgPackage(ds))

	years := ds.Years()
	if len(years) < 2 {
		return m
	}
	latest, prev := years[len(years)-1], years[len(years)-2]
	cur := yearSlice(ds, latest)
	prv := yearSlice(ds, prev)

	curPlaced, curTotal := sumCounts(cur)
	prvPlaced, prvTotal := sumCounts(prv)

	if prvPlaced != 0 {
		v := round1(float64(curPlaced-prvPlaced) / float64(prvPlaced) * 100)
		m.YoYPlacedChange = &v
	}

	curWavg := weightedAvgPackage(cur)
	prvWavg := weightedAvgPackage(prv)
	if prvWavg != 0 {
		v := round1((curWavg - prvWavg) / prvWavg * 100)
		m.YoYAvgPackageChange = &v
	}

	if prvTotal != 0 {
		prvPct := round1(float64(prvPlaced) / float64(prvTotal) * 100)
		curPct := round1(float64(curPlaced) / math.Max(float64(curTotal), 1) * 100)
		v := round1(curPct - prvPct)
		m.PlacementPctDelta = &v
	}

	return m
}

// weightedAvgPackage is the placed-student-weighted mean of
// avg_package_LPA: sum(avg*placed) over rows with a present package,
// divided by max(total placed, 1) over ALL rows. A row with a missing
// package still counts its placed students in the denominator; the
// max(1) guard makes an all-unplaced view resolve to zero instead of
// dividing by zero.
func weightedAvgPackage(ds model.Dataset) float64 {
	var sum float64
	var placed int
	for _, r := range ds {
		placed += r.PlacedStudents
		if math.IsNaN(r.AvgPackage) {
			continue
		}
		sum += r.AvgPackage * float64(r.PlacedStudents)
	}
	if placed < 1 {
		placed = 1
	}
	return sum / float64(placed)
}

func yearSlice(ds model.Dataset, year int) model.Dataset {
	out := make(model.Dataset, 0, len(ds))
	for _, r := range ds {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

func sumCounts(ds model.Dataset) (placed, total int) {
	for _, r := range ds {
		placed += r.PlacedStudents
		total += r.TotalStudents
	}
	return placed, total
}

// round1 and round2 round half away from zero to 1 and 2 decimals.
func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
