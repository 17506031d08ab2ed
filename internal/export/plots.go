package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gradstat/placement-backend/internal/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 3.2 * vg.Inch
)

// renderChartPNG rasterizes a chart-builder output for embedding in the
// PDF report. Only the chart types the report embeds are handled; the
// remaining builders contribute their insight text instead.
func renderChartPNG(cd *model.ChartData) ([]byte, error) {
	switch cd.Type {
	case model.ChartLine, model.ChartArea:
		return renderLines(cd)
	case model.ChartStackedBar:
		return renderStackedBars(cd)
	case model.ChartHBar:
		return renderHBars(cd)
	default:
		return nil, fmt.Errorf("no raster renderer for chart type %q", cd.Type)
	}
}

// renderLines draws one line per series; labels must parse as numbers
// (years), which holds for every trend builder.
func renderLines(cd *model.ChartData) ([]byte, error) {
	p := plot.New()
	p.Title.Text = cd.Title
	p.X.Label.Text = cd.XLabel
	p.Y.Label.Text = cd.YLabel
	p.Legend.Top = true

	for i, s := range cd.Series {
		pts := make(plotter.XYs, 0, len(s.Data))
		for _, pt := range s.Data {
			x, err := strconv.Atoi(pt.Label)
			if err != nil {
				continue
			}
			pts = append(pts, plotter.XY{X: float64(x), Y: pt.Value})
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("line series %s: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	return encodePNG(p)
}

// renderStackedBars draws the placed/unplaced bars stacked per year.
func renderStackedBars(cd *model.ChartData) ([]byte, error) {
	p := plot.New()
	p.Title.Text = cd.Title
	p.X.Label.Text = cd.XLabel
	p.Legend.Top = true

	var labels []string
	var prev *plotter.BarChart
	for i, s := range cd.Series {
		vals := make(plotter.Values, 0, len(s.Data))
		for _, pt := range s.Data {
			vals = append(vals, pt.Value)
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(22))
		if err != nil {
			return nil, fmt.Errorf("bar series %s: %w", s.Name, err)
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0
		if prev != nil {
			bars.StackOn(prev)
		}
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
		prev = bars

		if labels == nil {
			for _, pt := range s.Data {
				labels = append(labels, pt.Label)
			}
		}
	}
	p.NominalX(labels...)

	return encodePNG(p)
}

// renderHBars draws a horizontal bar chart, one bar per labelled point.
func renderHBars(cd *model.ChartData) ([]byte, error) {
	p := plot.New()
	p.Title.Text = cd.Title
	p.X.Label.Text = cd.XLabel

	if len(cd.Series) == 0 {
		return nil, fmt.Errorf("hbar chart %q has no series", cd.Title)
	}
	s := cd.Series[0]

	vals := make(plotter.Values, 0, len(s.Data))
	labels := make([]string, 0, len(s.Data))
	for _, pt := range s.Data {
		vals = append(vals, pt.Value)
		labels = append(labels, pt.Label)
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(14))
	if err != nil {
		return nil, fmt.Errorf("hbar chart %q: %w", cd.Title, err)
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(2)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(labels...)

	return encodePNG(p)
}

func encodePNG(p *plot.Plot) ([]byte, error) {
	var buf bytes.Buffer
	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("prepare png: %w", err)
	}
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
