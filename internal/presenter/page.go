package presenter

// Page is the rendered model of one dashboard view
type Page struct {
	View        string       `json:"view"`
	Title       string       `json:"title"`
	Header      string       `json:"header"`
	Tables      []Table      `json:"tables,omitempty"`
	ChartGroups []ChartGroup `json:"chart_groups,omitempty"`
	Charts      []Chart      `json:"charts,omitempty"`
	Stats       []Stat       `json:"stats,omitempty"`
	Caption     string       `json:"caption,omitempty"`
}

// Table is a titled grid of preformatted cells
type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// TableRow carries its 1-based display number
type TableRow struct {
	Number int      `json:"number"`
	Cells  []string `json:"cells"`
}

// ChartGroup is a pair of charts drawn side by side under one title
type ChartGroup struct {
	Title  string  `json:"title"`
	Charts []Chart `json:"charts"`
}

// ChartKind selects how a chart is drawn
type ChartKind string

const (
	ChartBar     ChartKind = "bar"
	ChartScatter ChartKind = "scatter"
)

// Chart describes a horizontal bar chart or a scatter plot
type Chart struct {
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`

	// Mirrored bar charts grow right to left with the category axis on the right
	Mirrored bool  `json:"mirrored,omitempty"`
	Bars     []Bar `json:"bars,omitempty"`

	Legend string          `json:"legend,omitempty"`
	Series []ScatterSeries `json:"series,omitempty"`
}

// Bar is one category of a bar chart
type Bar struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	Color   string  `json:"color"`
}

// ScatterSeries is one hue group of a scatter plot
type ScatterSeries struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Alpha  float64 `json:"alpha"`
	Points []Point `json:"points"`
}

// Point is one category in a scatter plot
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Stat is a labelled figure shown above a chart
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
