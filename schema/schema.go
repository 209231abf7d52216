package schema

import (
	"errors"
	"fmt"

	"github.com/enomcdcdash/enomdash/engine"
)

// ============================================================================
// SCHEMA: Declarative description of one dashboard view
// ============================================================================
// A View is what operators edit (YAML) and what the shells list. Spec turns
// it into the engine.ViewSpec the pipeline runs. Presets carry the three
// availability tabs and the KPI scorecard.
// ============================================================================

// Kind selects the render branch.
type Kind string

const (
	KindChart    Kind = "chart"
	KindKPITable Kind = "kpi_table"
)

// View describes one dashboard tab.
type View struct {
	Name      string             `yaml:"name" json:"name"`
	Title     string             `yaml:"title" json:"title"`   // base chart title
	Header    string             `yaml:"header" json:"header"` // section header above the selectors
	Kind      Kind               `yaml:"kind" json:"kind"`
	Hierarchy []engine.Dimension `yaml:"hierarchy" json:"hierarchy"`

	Period  string     `yaml:"period" json:"period"`
	Metric  string     `yaml:"metric,omitempty" json:"metric,omitempty"`
	GroupBy string     `yaml:"group_by,omitempty" json:"groupBy,omitempty"`
	YRange  [2]float64 `yaml:"y_range" json:"yRange"`
	XTitle  string     `yaml:"x_title,omitempty" json:"xTitle,omitempty"`
	YTitle  string     `yaml:"y_title,omitempty" json:"yTitle,omitempty"`
	Height  int        `yaml:"height,omitempty" json:"height,omitempty"`

	// KPI table variant
	Columns     []string `yaml:"columns,omitempty" json:"columns,omitempty"`
	ScoreColumn string   `yaml:"score_column,omitempty" json:"scoreColumn,omitempty"`
}

// ErrInvalidView wraps every validation failure.
var ErrInvalidView = errors.New("invalid view")

func invalid(name, format string, args ...interface{}) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidView, name, fmt.Sprintf(format, args...))
}

// Validate checks that the view can be run by the engine.
func (v View) Validate() error {
	if v.Name == "" {
		return invalid(v.Name, "name is required")
	}
	if len(v.Hierarchy) == 0 {
		return invalid(v.Name, "hierarchy is empty")
	}
	seen := make(map[string]bool, len(v.Hierarchy))
	for _, d := range v.Hierarchy {
		if d.Key == "" {
			return invalid(v.Name, "hierarchy dimension without key")
		}
		if seen[d.Key] {
			return invalid(v.Name, "dimension %q listed twice", d.Key)
		}
		seen[d.Key] = true
		switch d.Reset {
		case "", engine.ResetToAll, engine.ResetToRandom:
		default:
			return invalid(v.Name, "dimension %q: unknown reset policy %q", d.Key, d.Reset)
		}
	}
	if v.Period == "" {
		return invalid(v.Name, "period column is required")
	}

	switch v.Kind {
	case KindChart:
		if v.Metric == "" || v.GroupBy == "" {
			return invalid(v.Name, "charts need metric and group_by")
		}
		if v.YRange[0] >= v.YRange[1] {
			return invalid(v.Name, "y_range %v is not increasing", v.YRange)
		}
	case KindKPITable:
		if v.ScoreColumn == "" {
			return invalid(v.Name, "kpi tables need score_column")
		}
	default:
		return invalid(v.Name, "unknown kind %q", v.Kind)
	}
	return nil
}

// Spec converts the view into the engine contract.
func (v View) Spec() engine.ViewSpec {
	intent := engine.IntentChart
	if v.Kind == KindKPITable {
		intent = engine.IntentTable
	}
	hierarchy := make([]engine.Dimension, len(v.Hierarchy))
	copy(hierarchy, v.Hierarchy)
	return engine.ViewSpec{
		Name:        v.Name,
		Title:       v.Title,
		Intent:      intent,
		Hierarchy:   hierarchy,
		Period:      v.Period,
		Metric:      v.Metric,
		GroupBy:     v.GroupBy,
		YRange:      v.YRange,
		XTitle:      v.XTitle,
		YTitle:      v.YTitle,
		Height:      v.Height,
		Columns:     append([]string(nil), v.Columns...),
		ScoreColumn: v.ScoreColumn,
	}
}

// DimensionKeys returns the hierarchy keys, outermost first.
func (v View) DimensionKeys() []string {
	keys := make([]string, len(v.Hierarchy))
	for i, d := range v.Hierarchy {
		keys[i] = d.Key
	}
	return keys
}

// RequiredColumns lists every column the view reads, without duplicates.
func (v View) RequiredColumns() []string {
	var cols []string
	seen := make(map[string]bool)
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	for _, d := range v.Hierarchy {
		add(d.Key)
	}
	add(v.Period)
	add(v.Metric)
	add(v.GroupBy)
	for _, c := range v.Columns {
		add(c)
	}
	add(v.ScoreColumn)
	return cols
}

// Find returns the view with the given name.
func Find(views []View, name string) (View, bool) {
	for _, v := range views {
		if v.Name == name {
			return v, true
		}
	}
	return View{}, false
}
