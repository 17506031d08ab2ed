package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gradstat/placement-backend/internal/model"
)

// Column names are the contract with the source file; column order is
// irrelevant. The slot columns (company names, role names) are optional.
var requiredColumns = []string{
	"year",
	"branch",
	"total_students",
	"placed_students",
	"unplaced_students",
	"placement_percentage",
	"highest_package_LPA",
	"median_package_LPA",
	"lowest_package_LPA",
	"avg_package_LPA",
	"top_company_1_students",
	"top_company_2_students",
	"top_company_3_students",
	"internship_conversion_rate_percent",
}

// Load reads the placement CSV at path and returns the canonical
// dataset. A missing file or missing required columns is a structural
// failure; the caller must treat it as fatal.
func Load(path string) (model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return ds, nil
}

// LoadReader parses CSV content into a dataset sorted by
// (year asc, branch asc). Numeric cells that fail to parse coerce to the
// missing-value marker (NaN for floats, 0 for counts) instead of
// aborting the load; an unparseable year is structural and fails.
func LoadReader(r io.Reader) (model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	var ds model.Dataset
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		year, err := strconv.Atoi(cell("year"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid year %q", line, cell("year"))
		}

		rec := model.PlacementRecord{
			Year:                    year,
			Branch:                  cell("branch"),
			TotalStudents:           coerceInt(cell("total_students")),
			PlacedStudents:          coerceInt(cell("placed_students")),
			UnplacedStudents:        coerceInt(cell("unplaced_students")),
			PlacementPct:            coerceFloat(cell("placement_percentage")),
			HighestPackage:          coerceFloat(cell("highest_package_LPA")),
			MedianPackage:           coerceFloat(cell("median_package_LPA")),
			LowestPackage:           coerceFloat(cell("lowest_package_LPA")),
			AvgPackage:              coerceFloat(cell("avg_package_LPA")),
			InternshipConversionPct: coerceFloat(cell("internship_conversion_rate_percent")),
		}

		for i := 0; i < 3; i++ {
			name := cell(fmt.Sprintf("top_company_%d", i+1))
			count := cell(fmt.Sprintf("top_company_%d_students", i+1))
			if name == "" {
				continue
			}
			n, err := strconv.Atoi(count)
			if err != nil {
				continue // company without a parseable count is skipped
			}
			rec.Companies[i] = model.CompanySlot{Company: name, Students: n, Valid: true}
		}
		for i := 0; i < 3; i++ {
			rec.Roles[i] = cell(fmt.Sprintf("top_job_role_%d", i+1))
		}

		ds = append(ds, rec)
	}

	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Year != ds[j].Year {
			return ds[i].Year < ds[j].Year
		}
		return ds[i].Branch < ds[j].Branch
	})

	return ds, nil
}

func coerceInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func coerceFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
