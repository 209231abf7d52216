package engine

import "time"

// ============================================================================
// ENGINE TYPES: Cascading Filter + Aggregation for Availability Dashboards
// ============================================================================
// A Record is one observation: column name → raw cell text.
// A ViewSpec describes one dashboard tab: its dimension hierarchy, which
// columns hold the period, metric and grouping, and how the result is shaped.
//
// Dependency: engine never touches files, HTTP or sessions. Callers hand it
// a RecordView, the current Selection and a ViewSpec; it hands back a Result.
// ============================================================================

// All is the wildcard selection value.
const All = "All"

// ============================================================================
// RECORD: Generic data row
// ============================================================================

// Record is a single data row. Missing cells are absent keys or blank strings.
// Numbers stay as text until a metric column is coerced during aggregation.
type Record struct {
	Values map[string]string `json:"values"`
}

// ============================================================================
// SELECTION + HIERARCHY
// ============================================================================

// Selection maps a dimension key to All or to a concrete value.
// A missing key is treated like a stale value.
type Selection map[string]string

// Get returns the selected value for a dimension, or "" when unset.
func (s Selection) Get(key string) string {
	if s == nil {
		return ""
	}
	return s[key]
}

// IsConcrete reports whether the dimension is narrowed to a real value.
func (s Selection) IsConcrete(key string) bool {
	v := s.Get(key)
	return v != "" && v != All
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ResetPolicy decides what a stale selection becomes.
type ResetPolicy string

const (
	// ResetToAll falls back to the wildcard.
	ResetToAll ResetPolicy = "all"
	// ResetToRandom picks a uniformly random concrete member so the view
	// never opens on an empty or default chart.
	ResetToRandom ResetPolicy = "random"
)

// Dimension is one level of the filter hierarchy, outermost first.
type Dimension struct {
	Key    string      `json:"key" yaml:"key"`
	Label  string      `json:"label" yaml:"label"`
	Reset  ResetPolicy `json:"reset,omitempty" yaml:"reset,omitempty"`
	Search bool        `json:"search,omitempty" yaml:"search,omitempty"` // offers free-text narrowing
}

// ============================================================================
// VIEWSPEC: Contract between view configuration and the engine
// ============================================================================

// Intent values for ViewSpec.Intent.
const (
	IntentChart = "chart"
	IntentTable = "table"
)

// ViewSpec defines what the engine computes for one dashboard tab.
type ViewSpec struct {
	Name      string      `json:"name"`
	Title     string      `json:"title"`  // base chart/table title
	Intent    string      `json:"intent"` // "chart" or "table"
	Hierarchy []Dimension `json:"hierarchy"`
	Period    string      `json:"period"`  // e.g. "Month"
	Metric    string      `json:"metric"`  // e.g. "Availability (Ave)"
	GroupBy   string      `json:"groupBy"` // series key for charts
	YRange    [2]float64  `json:"yRange"`
	XTitle    string      `json:"xTitle,omitempty"`
	YTitle    string      `json:"yTitle,omitempty"`
	Height    int         `json:"height,omitempty"`

	// KPI table variant
	Columns     []string `json:"columns,omitempty"`     // sub-metric columns, display order
	ScoreColumn string   `json:"scoreColumn,omitempty"` // composite score to band
}

// Filters returns the concrete subset of sel restricted to the hierarchy,
// in hierarchy order.
func (v ViewSpec) Filters(sel Selection) []Filter {
	out := make([]Filter, 0, len(v.Hierarchy))
	for _, d := range v.Hierarchy {
		if sel.IsConcrete(d.Key) {
			out = append(out, Filter{Key: d.Key, Value: sel[d.Key]})
		}
	}
	return out
}

// Filter is one concrete equality constraint.
type Filter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ============================================================================
// CASCADE: Output of ComputeOptions
// ============================================================================

// DimensionOptions is the option set and resolved value for one dimension.
type DimensionOptions struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Options  []string `json:"options"` // Options[0] is always All
	Selected string   `json:"selected"`
	Reset    bool     `json:"reset,omitempty"` // the incoming value was stale
	Search   string   `json:"search,omitempty"`
}

// Cascade is the full result of evaluating a hierarchy left-to-right.
type Cascade struct {
	Dimensions []DimensionOptions `json:"dimensions"`
	Selection  Selection          `json:"selection"`
	Active     RecordView         `json:"-"` // subset narrowed by every concrete selection and search
}

// ============================================================================
// SERIES: Output of Aggregate
// ============================================================================

// SeriesPoint is the mean metric for one (period, group) pair.
type SeriesPoint struct {
	Period string    `json:"period"` // canonical month, "Jan".."Dec"
	Group  string    `json:"group"`
	Value  float64   `json:"value"` // rounded to 2 decimals
	Count  int       `json:"count"` // rows that contributed
	Date   time.Time `json:"date"`  // synthetic, reference year only
}

// ============================================================================
// RESULT: Render-ready output
// ============================================================================

// Result is the engine's render-ready output for one interaction.
type Result struct {
	Success bool   `json:"success"`
	Type    string `json:"type"` // "chart", "table", "text"
	View    string `json:"view"`
	Title   string `json:"title"`
	Reply   string `json:"reply,omitempty"` // user-visible message
	Empty   bool   `json:"empty,omitempty"`

	Cascade   *Cascade  `json:"cascade"`
	Selection Selection `json:"selection"`
	Filtered  int       `json:"filtered"` // rows after applying the selection
	Dropped   int       `json:"dropped"`  // rows lost to coercion or bad periods

	Points      []SeriesPoint `json:"points,omitempty"`
	ChartConfig *ChartConfig  `json:"chartConfig,omitempty"`
	TableData   *TableData    `json:"tableData,omitempty"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a line chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	YRange     [2]float64    `json:"yRange"`
	XTicks     []string      `json:"xTicks"` // "Jan 2025", chronological
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	Height     int           `json:"height,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	Markers    bool          `json:"markers"`
	LabelPos   string        `json:"labelPosition,omitempty"`
}

// ChartSeries is one line, keyed by group value.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is one labeled point.
type ChartPoint struct {
	Label string  `json:"label"` // x tick, "Jan 2025"
	Value float64 `json:"value"`
	Text  string  `json:"text"` // data label, "97.2"
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render (and export) a table.
type TableData struct {
	Title       string     `json:"title"`
	Columns     []Column   `json:"columns"`
	Rows        [][]string `json:"rows"`
	ScoreColumn string     `json:"scoreColumn,omitempty"` // key of the banded column
	Bands       []Band     `json:"bands,omitempty"`       // per row, for the score column
	Scores      []float64  `json:"scores,omitempty"`
	Summary     *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "index", "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// ColumnIndex returns the position of the column with the given key, or -1.
func (t *TableData) ColumnIndex(key string) int {
	for i, c := range t.Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// ScoreIndex returns the position of the banded score column, or -1 when
// the table carries no bands.
func (t *TableData) ScoreIndex() int {
	if len(t.Bands) == 0 || t.ScoreColumn == "" {
		return -1
	}
	return t.ColumnIndex(t.ScoreColumn)
}

// Summary provides totals or aggregations for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
