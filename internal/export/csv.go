package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/gradstat/placement-backend/internal/model"
)

// csvHeader is the canonical column order for re-serialized exports,
// matching the input file schema.
var csvHeader = []string{
	"year", "branch",
	"total_students", "placed_students", "unplaced_students",
	"placement_percentage",
	"highest_package_LPA", "median_package_LPA", "lowest_package_LPA", "avg_package_LPA",
	"top_company_1", "top_company_1_students",
	"top_company_2", "top_company_2_students",
	"top_company_3", "top_company_3_students",
	"top_job_role_1", "top_job_role_2", "top_job_role_3",
	"internship_conversion_rate_percent",
}

// RenderCSV serializes a (filtered) dataset with the canonical header.
// Missing values render as empty cells.
func RenderCSV(ds model.Dataset) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write(csvHeader)
	for _, r := range ds {
		row := []string{
			strconv.Itoa(r.Year),
			r.Branch,
			strconv.Itoa(r.TotalStudents),
			strconv.Itoa(r.PlacedStudents),
			strconv.Itoa(r.UnplacedStudents),
			floatCell(r.PlacementPct),
			floatCell(r.HighestPackage),
			floatCell(r.MedianPackage),
			floatCell(r.LowestPackage),
			floatCell(r.AvgPackage),
		}
		for _, slot := range r.Companies {
			if slot.Valid {
				row = append(row, slot.Company, strconv.Itoa(slot.Students))
			} else {
				row = append(row, "", "")
			}
		}
		row = append(row, r.Roles[0], r.Roles[1], r.Roles[2], floatCell(r.InternshipConversionPct))
		_ = w.Write(row)
	}
	w.Flush()
	return buf.Bytes()
}

func floatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%g", v)
}
