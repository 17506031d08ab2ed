package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/gradstat/placement-backend/internal/model"
	"gonum.org/v1/gonum/stat"
)

// Each builder is a pure function from a filtered dataset to chart data
// plus one generated insight sentence. An empty dataset yields
// (nil, ""); a dataset whose rows carry no usable values for the
// builder's dimension yields nil with an availability note.

// buildPlacementTrends charts mean placement percentage per
// (year, branch) as one line per branch.
func buildPlacementTrends(ds model.Dataset) (*model.ChartData, string) {
	if ds.Empty() {
		return nil, ""
	}

	type cell struct {
		year   int
		branch string
		pct    float64
	}
	// Year-major order so exact-value ties resolve to the earliest
	// (year, branch) group.
	var cells []cell
	for _, year := range ds.Years() {
		for _, branch := range ds.Branches() {
			mean, ok := nanMean(collect(ds, func(r model.PlacementRecord) (float64, bool) {
				return r.PlacementPct, r.Year == year && r.Branch == branch
			}))
			if ok {
				cells = append(cells, cell{year, branch, mean})
			}
		}
	}
	if len(cells) == 0 {
		return nil, ""
	}

	series := make([]model.Series, 0, len(ds.Branches()))
	for _, branch := range ds.Branches() {
		var pts []model.Point
		for _, c := range cells {
			if c.branch == branch {
				pts = append(pts, model.Point{Label: strconv.Itoa(c.year), Value: c.pct})
			}
		}
		if len(pts) > 0 {
			series = append(series, model.Series{Name: branch, Data: pts})
		}
	}

	best, worst := cells[0], cells[0]
	for _, c := range cells[1:] {
		if c.pct > best.pct {
			best = c
		}
		if c.pct < worst.pct {
			worst = c
		}
	}
	insight := fmt.Sprintf(
		"%s reached the highest placement rate of %.1f%% in %d. %s had the lowest at %.1f%% in %d.",
		best.branch, best.pct, best.year, worst.branch, worst.pct, worst.year,
	)

	return &model.ChartData{
		Type:   model.ChartLine,
		Title:  "Placement Trends Over Years",
		XLabel: "Year",
		YLabel: "Placement %",
		Series: series,
	}, insight
}

// buildStudentsPlaced charts placed vs unplaced sums per year as a
// stacked bar.
func buildStudentsPlaced(ds model.Dataset) (*model.ChartData, string) {
	if ds.Empty() {
		return nil, ""
	}

	years := ds.Years()
	placed := make([]model.Point, 0, len(years))
	unplaced := make([]model.Point, 0, len(years))
	placedByYear := make([]int, len(years))
	for i, year := range years {
		var p, u int
		for _, r := range ds {
			if r.Year == year {
				p += r.PlacedStudents
				u += r.UnplacedStudents
			}
		}
		placedByYear[i] = p
		placed = append(placed, model.Point{Label: strconv.Itoa(year), Value: float64(p)})
		unplaced = append(unplaced, model.Point{Label: strconv.Itoa(year), Value: float64(u)})
	}

	var insight string
	if len(years) >= 2 {
		first, last := placedByYear[0], placedByYear[len(placedByYear)-1]
		growth := float64(last-first) / math.Max(float64(first), 1) * 100
		insight = fmt.Sprintf(
			"Total placements grew %.0f%% from %d to %d, rising from %s to %s students.",
			growth, years[0], years[len(years)-1], comma(first), comma(last),
		)
	}

	return &model.ChartData{
		Type:   model.ChartStackedBar,
		Title:  "Students Placed vs Unplaced by Year",
		XLabel: "Year",
		Series: []model.Series{
			{Name: "Placed", Data: placed},
			{Name: "Unplaced", Data: unplaced},
		},
	}, insight
}

// buildBranchComparison charts placed/total percentage per branch as a
// horizontal bar, sorted ascending so the best branch renders on top.
func buildBranchComparison(ds model.Dataset) (*model.ChartData, string) {
	if ds.Empty() {
		return nil, ""
	}

	type row struct {
		branch string
		pct    float64
	}
	var rows []row
	for _, branch := range ds.Branches() {
		var placed, total int
		for _, r := range ds {
			if r.Branch == branch {
				placed += r.PlacedStudents
				total += r.TotalStudents
			}
		}
		pct := 0.0
		if total > 0 {
			pct = round1(float64(placed) / float64(total) * 100)
		}
		rows = append(rows, row{branch, pct})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].pct < rows[j].pct })

	pts := make([]model.Point, 0, len(rows))
	for _, r := range rows {
		pts = append(pts, model.Point{Label: r.branch, Value: r.pct})
	}

	top, bottom := rows[len(rows)-1], rows[0]
	insight := fmt.Sprintf(
		"%s leads with %.1f%% placement rate, while %s trails at %.1f%%.",
		top.branch, top.pct, bottom.branch, bottom.pct,
	)

	return &model.ChartData{
		Type:   model.ChartHBar,
		Title:  "Branch-wise Placement Rate",
		XLabel: "Placement %",
		Series: []model.Series{{Name: "Placement %", Data: pts}},
	}, insight
}

// buildPackageDistribution unpivots the four package columns into a
// long form per branch for box-plot display.
func buildPackageDistribution(ds model.Dataset) (*model.ChartData, string) {
	if ds.Empty() {
		return nil, ""
	}

	series := make([]model.Series, 0, len(ds.Branches()))
	for _, branch := range ds.Branches() {
		var pts []model.Point
		for _, r := range ds {
			if r.Branch != branch {
				continue
			}
			for _, pv := range []struct {
				label string
				value float64
			}{
				{"Lowest", r.LowestPackage},
				{"Median", r.MedianPackage},
				{"Avg", r.AvgPackage},
				{"Highest", r.HighestPackage},
			} {
				if !math.IsNaN(pv.value) {
					pts = append(pts, model.Point{Label: pv.label, Value: pv.value})
				}
			}
		}
		if len(pts) > 0 {
			series = append(series, model.Series{Name: branch, Data: pts})
		}
	}
	if len(series) == 0 {
		return nil, ""
	}

	bestBranch, bestMean := "", math.Inf(-1)
	for _, branch := range ds.Branches() {
		mean, ok := nanMean(collect(ds, func(r model.PlacementRecord) (float64, bool) {
			return r.MedianPackage, r.Branch == branch
		}))
		if ok && mean > bestMean {
			bestBranch, bestMean = branch, mean
		}
	}
	var insight string
	if bestBranch != "" {
		insight = fmt.Sprintf(
			"%s offers the highest median package at %.1f LPA on average across the selected years.",
			bestBranch, bestMean,
		)
	}

	return &model.ChartData{
		Type:   model.ChartBox,
		Title:  "Package Distribution by Branch",
		YLabel: "Package (LPA)",
		Series: series,
	}, insight
}

// buildPackageTrends charts four package aggregates per year: max of
// highest, mean of avg, median of median, min of lowest.
func buildPackageTrends(ds model.Dataset) (*model.ChartData, string) {
	if ds.Empty() {
		return nil, ""
	}

	years := ds.Years()
	aggs := []struct {
		name string
		fn   func(vals []float64) (float64, bool)
		get  func(r model.PlacementRecord) float64
	}{
		{"Highest", nanMax, func(r model.PlacementRecord) float64 { return r.HighestPackage }},
		{"Average", nanMean, func(r model.PlacementRecord) float64 { return r.AvgPackage }},
		{"Median", nanMedian, func(r model.PlacementRecord) float64 { return r.MedianPackage }},
		{"Lowest", nanMin, func(r model.PlacementRecord) float64 { return r.LowestPackage }},
	}

	series := make([]model.Series, 0, len(aggs))
	var avgByYear []float64
	for _, agg := range aggs {
		var pts []model.Point
		for _, year := range years {
			v, ok := agg.fn(collect(ds, func(r model.PlacementRecord) (float64, bool) {
				return agg.get(r), r.Year == year
			}))
			if !ok {
				continue
			}
			v = round2(v)
			pts = append(pts, model.Point{Label: strconv.Itoa(year), Value: v})
			if agg.name == "Average" {
				avgByYear = append(avgByYear, v)
			}
		}
		series = append(series, model.Series{Name: agg.name, Data: pts})
	}

	var insight string
	if len(years) >= 2 && len(avgByYear) >= 2 {
		first, last := avgByYear[0], avgByYear[len(avgByYear)-1]
		growth := (last - first) / math.Max(first, 0.01) * 100
		insight = fmt.Sprintf(
			"Average packages grew %.0f%% from %d to %d, reaching %.1f LPA.",
			growth, years[0], years[len(years)-1], last,
		)
	}

	return &model.ChartData{
		Type:   model.ChartArea,
		Title:  "Package Trends Over Years",
		XLabel: "Year",
		YLabel: "Package (LPA)",
		Series: series,
	}, insight
}

// buildPerformanceScatter charts avg package against placement
// percentage per record, sized by total students, with median reference
// lines. The insight reports the Pearson correlation when at least four
// rows are present.
func buildPerformanceScatter(ds model.Dataset) (*model.ChartData, string) {
	if ds.Empty() {
		return nil, ""
	}

	var pts []model.ScatterPoint
	var xs, ys []float64
	for _, r := range ds {
		if math.IsNaN(r.AvgPackage) || math.IsNaN(r.PlacementPct) {
			continue
		}
		pts = append(pts, model.ScatterPoint{
			X:      r.AvgPackage,
			Y:      r.PlacementPct,
			Size:   float64(r.TotalStudents),
			Year:   r.Year,
			Branch: r.Branch,
		})
		xs = append(xs, r.AvgPackage)
		ys = append(ys, r.PlacementPct)
	}
	if len(pts) == 0 {
		return nil, ""
	}

	chart := &model.ChartData{
		Type:   model.ChartScatter,
		Title:  "Placement Rate vs Avg Package",
		XLabel: "Avg Package (LPA)",
		YLabel: "Placement %",
		Points: pts,
	}
	if mx, ok := nanMedian(xs); ok {
		chart.RefX = &mx
	}
	if my, ok := nanMedian(ys); ok {
		chart.RefY = &my
	}

	var insight string
	if len(ds) >= 4 && len(xs) >= 2 {
		r := stat.Correlation(xs, ys, nil)
		insight = fmt.Sprintf(
			"There is a %s positive correlation (r = %.2f) between average package and placement rate.",
			correlationStrength(math.Abs(r), 0.7, 0.4), r,
		)
	}
	return chart, insight
}

// buildTopCompanies flattens the three company slots across all rows,
// sums students per company, and keeps the top 10.
func buildTopCompanies(ds model.Dataset) (*model.ChartData, string) {
	if ds.Empty() {
		return nil, ""
	}

	totals := make(map[string]int)
	for _, r := range ds {
		for _, slot := range r.Companies {
			if slot.Valid {
				totals[slot.Company] += slot.Students
			}
		}
	}
	if len(totals) == 0 {
		return nil, "No company data available."
	}

	type entry struct {
		company  string
		students int
	}
	entries := make([]entry, 0, len(totals))
	for c, n := range totals {
		entries = append(entries, entry{c, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].students != entries[j].students {
			return entries[i].students > entries[j].students
		}
		return entries[i].company < entries[j].company
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}

	pts := make([]model.Point, 0, len(entries))
	for _, e := range entries {
		pts = append(pts, model.Point{Label: e.company, Value: float64(e.students)})
	}

	top := entries[0]
	insight := fmt.Sprintf(
		"%s is the top recruiter with %s students placed across the selected period.",
		top.company, comma(top.students),
	)

	return &model.ChartData{
		Type:   model.ChartHBar,
		Title:  "Top Recruiting Companies",
		XLabel: "Students Placed",
		Series: []model.Series{{Name: "Students Placed", Data: pts}},
	}, insight
}

// buildJobRoles flattens the three role slots and counts mentions (not
// student counts) per distinct role, keeping the top 10.
func buildJobRoles(ds model.Dataset) (*model.ChartData, string) {
	if ds.Empty() {
		return nil, ""
	}

	counts := make(map[string]int)
	for _, r := range ds {
		for _, role := range r.Roles {
			if role != "" {
				counts[role]++
			}
		}
	}
	if len(counts) == 0 {
		return nil, "No role data available."
	}

	type entry struct {
		role  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for role, n := range counts {
		entries = append(entries, entry{role, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].role < entries[j].role
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}

	total := 0
	pts := make([]model.Point, 0, len(entries))
	for _, e := range entries {
		total += e.count
		pts = append(pts, model.Point{Label: e.role, Value: float64(e.count)})
	}

	top := entries[0]
	insight := fmt.Sprintf(
		"%s is the most common role, appearing %d times (%.0f%% of mentions).",
		top.role, top.count, float64(top.count)/float64(total)*100,
	)

	return &model.ChartData{
		Type:   model.ChartPie,
		Title:  "Job Role Distribution",
		Series: []model.Series{{Name: "Mentions", Data: pts}},
	}, insight
}

// buildInternshipConversion charts internship conversion rate against
// placement percentage with a least-squares trend overlay. The insight
// reports R² — deliberately a different metric and thresholds than the
// package scatter.
func buildInternshipConversion(ds model.Dataset) (*model.ChartData, string) {
	if ds.Empty() {
		return nil, ""
	}

	var pts []model.ScatterPoint
	var xs, ys []float64
	for _, r := range ds {
		if math.IsNaN(r.InternshipConversionPct) || math.IsNaN(r.PlacementPct) {
			continue
		}
		pts = append(pts, model.ScatterPoint{
			X:      r.InternshipConversionPct,
			Y:      r.PlacementPct,
			Year:   r.Year,
			Branch: r.Branch,
		})
		xs = append(xs, r.InternshipConversionPct)
		ys = append(ys, r.PlacementPct)
	}
	if len(pts) == 0 {
		return nil, ""
	}

	chart := &model.ChartData{
		Type:   model.ChartScatter,
		Title:  "Internship Conversion vs Placement Rate",
		XLabel: "Internship Conversion Rate (%)",
		YLabel: "Placement %",
		Points: pts,
	}
	if len(xs) >= 2 {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		chart.Trend = &model.TrendLine{Slope: beta, Intercept: alpha}
	}

	var insight string
	if len(ds) >= 4 && len(xs) >= 2 {
		r := stat.Correlation(xs, ys, nil)
		r2 := r * r
		insight = fmt.Sprintf(
			"Internship conversion rate shows a %s positive correlation with placement percentage (R² = %.2f).",
			correlationStrength(r2, 0.6, 0.3), r2,
		)
	}
	return chart, insight
}

// buildGrowthHeatmap pivots mean placement percentage by branch (rows)
// and year (columns), rows sorted descending by across-year mean.
func buildGrowthHeatmap(ds model.Dataset) (*model.ChartData, string) {
	if ds.Empty() {
		return nil, ""
	}

	years := ds.Years()
	branches := ds.Branches()

	type pivotRow struct {
		branch string
		cells  []*float64
		mean   float64
	}
	rows := make([]pivotRow, 0, len(branches))
	for _, branch := range branches {
		cells := make([]*float64, len(years))
		var sum float64
		var n int
		for i, year := range years {
			mean, ok := nanMean(collect(ds, func(r model.PlacementRecord) (float64, bool) {
				return r.PlacementPct, r.Year == year && r.Branch == branch
			}))
			if !ok {
				continue
			}
			v := round1(mean)
			cells[i] = &v
			sum += v
			n++
		}
		// A branch with no present cell gets no row at all.
		if n == 0 {
			continue
		}
		rows = append(rows, pivotRow{branch, cells, sum / float64(n)})
	}
	if len(rows) == 0 {
		return nil, ""
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].mean > rows[j].mean })

	hm := &model.Heatmap{Cols: make([]string, len(years))}
	for i, y := range years {
		hm.Cols[i] = strconv.Itoa(y)
	}
	for _, r := range rows {
		hm.Rows = append(hm.Rows, r.branch)
		hm.Values = append(hm.Values, r.cells)
	}

	var insight string
	if len(years) >= 2 {
		bestBranch, bestGain := "", math.Inf(-1)
		for _, r := range rows {
			first, last := r.cells[0], r.cells[len(r.cells)-1]
			if first == nil || last == nil {
				continue
			}
			if gain := *last - *first; gain > bestGain {
				bestBranch, bestGain = r.branch, gain
			}
		}
		if bestBranch != "" {
			insight = fmt.Sprintf(
				"%s showed the most improvement, gaining %.1f percentage points from %d to %d.",
				bestBranch, bestGain, years[0], years[len(years)-1],
			)
		}
	}

	return &model.ChartData{
		Type:    model.ChartHeatmap,
		Title:   "Placement Rate by Branch & Year",
		Heatmap: hm,
	}, insight
}

// ─── Aggregation helpers ───────────────────────────────────────────────

// collect gathers values for which keep is true, dropping NaN.
func collect(ds model.Dataset, pick func(model.PlacementRecord) (float64, bool)) []float64 {
	var vals []float64
	for _, r := range ds {
		if v, keep := pick(r); keep && !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

func nanMean(vals []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals)), true
}

func nanMax(vals []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max, true
}

func nanMin(vals []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	min := vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
	}
	return min, true
}

// nanMedian averages the two middle values for even-length input.
func nanMedian(vals []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

// correlationStrength buckets a correlation metric into a qualitative
// label at the given exclusive thresholds.
func correlationStrength(v, strong, moderate float64) string {
	switch {
	case v > strong:
		return "strong"
	case v > moderate:
		return "moderate"
	default:
		return "weak"
	}
}

// comma formats n with thousands separators.
func comma(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
