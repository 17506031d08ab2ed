package model

// Chart type identifiers understood by the presentation layer.
const (
	ChartLine       = "line"
	ChartStackedBar = "stacked_bar"
	ChartHBar       = "hbar"
	ChartBox        = "box"
	ChartArea       = "area"
	ChartScatter    = "scatter"
	ChartPie        = "pie"
	ChartHeatmap    = "heatmap"
)

// Point is a labelled value within a series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is one named sequence of points within a chart.
type Series struct {
	Name string  `json:"name"`
	Data []Point `json:"data"`
}

// ScatterPoint is one marker of a scatter chart. Size carries the
// bubble weight (total students); Year and Branch feed hover detail.
type ScatterPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size,omitempty"`
	Year   int     `json:"year"`
	Branch string  `json:"branch"`
}

// Heatmap is a dense row×column matrix. Missing cells are nil so the
// renderer can leave them blank.
type Heatmap struct {
	Rows   []string     `json:"rows"`
	Cols   []string     `json:"cols"`
	Values [][]*float64 `json:"values"`
}

// TrendLine is a least-squares fit overlay for scatter charts.
type TrendLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// ChartData is the render-agnostic output of a chart builder. Exactly
// the fields relevant to Type are populated; everything here is plain
// data so the presentation layer and the PDF exporter can both consume
// it without recomputing.
type ChartData struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`

	Series  []Series       `json:"series,omitempty"`
	Points  []ScatterPoint `json:"points,omitempty"`
	Heatmap *Heatmap       `json:"heatmap,omitempty"`
	Trend   *TrendLine     `json:"trendline,omitempty"`

	// Median reference lines for the package-vs-placement scatter.
	RefX *float64 `json:"ref_x,omitempty"`
	RefY *float64 `json:"ref_y,omitempty"`
}

// ChartResult pairs a builder's chart data with its generated insight
// sentence. Chart is nil (and Insight empty or an availability note)
// when the filtered dataset gives the builder nothing to show.
type ChartResult struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Chart   *ChartData `json:"chart"`
	Insight string     `json:"insight"`
}
