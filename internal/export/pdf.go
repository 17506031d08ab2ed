package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/gradstat/placement-backend/internal/model"
)

// The report must be byte-identical for identical input so the export
// cache can key it by filter selection alone. The creation date is
// therefore pinned rather than taken from the clock.
var fixedCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Builders whose chart data is embedded as an image; the rest appear in
// the insights section only.
var embeddedCharts = map[string]bool{
	"placement-trends":  true,
	"students-placed":   true,
	"branch-comparison": true,
	"package-trends":    true,
}

// RenderPDF produces the report document: KPI summary, embedded chart
// images for the headline charts, and the full set of insight
// sentences. An empty dataset renders a single "no data" page.
func RenderPDF(ds model.Dataset, metrics model.DerivedMetrics, charts []model.ChartResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(fixedCreationDate)
	pdf.SetModificationDate(fixedCreationDate)
	pdf.SetTitle("Placement Analytics Report", false)
	pdf.SetAutoPageBreak(true, 18)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Placement Analytics Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 6, "Campus placement trends, packages, and recruiting patterns", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if ds.Empty() {
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 8, "No records match the current filter selection.", "", "L", false)
		return output(pdf)
	}

	writeKPIs(pdf, metrics)

	for _, cr := range charts {
		if !embeddedCharts[cr.Name] || cr.Chart == nil {
			continue
		}
		png, err := renderChartPNG(cr.Chart)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", cr.Name, err)
		}
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(cr.Name, opts, bytes.NewReader(png))
		if pdf.GetY() > 200 {
			pdf.AddPage()
		}
		pdf.Ln(4)
		pdf.ImageOptions(cr.Name, 15, pdf.GetY(), 180, 0, true, opts, 0, "")
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, "Insights", "", 1, "L", false, 0, "")
	pdf.Ln(1)
	for _, cr := range charts {
		if cr.Insight == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, tr(cr.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(cr.Insight), "", "L", false)
		pdf.Ln(2)
	}

	return output(pdf)
}

func writeKPIs(pdf *fpdf.Fpdf, m model.DerivedMetrics) {
	rows := [][2]string{
		{"Total Placements", fmt.Sprintf("%d", m.TotalPlaced)},
		{"Total Students", fmt.Sprintf("%d", m.TotalStudents)},
		{"Placement Rate", fmt.Sprintf("%.1f%%", m.OverallPlacementPct)},
		{"Highest Package", fmt.Sprintf("%.1f LPA (%s)", m.HighestPackage, m.HighestPackageBranch)},
		{"Avg Package (weighted)", fmt.Sprintf("%.2f LPA", m.WeightedAvgPackage)},
	}
	if m.YoYPlacedChange != nil {
		rows = append(rows, [2]string{"YoY Placed Change", fmt.Sprintf("%+.1f%%", *m.YoYPlacedChange)})
	}
	if m.YoYAvgPackageChange != nil {
		rows = append(rows, [2]string{"YoY Avg Package Change", fmt.Sprintf("%+.1f%%", *m.YoYAvgPackageChange)})
	}
	if m.PlacementPctDelta != nil {
		rows = append(rows, [2]string{"Placement Rate Change", fmt.Sprintf("%+.1f pp", *m.PlacementPctDelta)})
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, "Key Metrics", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(70, 7, row[0], "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 7, row[1], "B", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
