package engine

import (
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// RECORD VIEW: Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns the loaded dataset. It reads through this interface.
//
// Implementations:
//   Dataset  wraps []Record with a fixed column order (what loaders produce)
//   SubView  filtered subset (indices into parent, zero-copy)
//
// Every cascade step and every filter pass produces a SubView over the
// cached Dataset, so a render never copies rows.
// ============================================================================

// RecordView provides indexed access to a dataset.
// The engine calls Value/Measure in tight loops; keep implementations fast.
type RecordView interface {
	Len() int
	Value(index int, column string) string
	Measure(index int, column string) (float64, bool)
	Columns() []string
}

// ============================================================================
// DATASET: ordered columns + rows
// ============================================================================

// Dataset is an immutable, ordered set of rows sharing one schema.
type Dataset struct {
	columns []string
	records []Record
}

// NewDataset creates a Dataset. When columns is empty the order is taken
// from first appearance across records.
func NewDataset(columns []string, records []Record) *Dataset {
	d := &Dataset{columns: columns, records: records}
	if len(d.columns) == 0 {
		d.discoverColumns()
	}
	return d
}

func (d *Dataset) discoverColumns() {
	seen := make(map[string]bool)
	for _, r := range d.records {
		for k := range r.Values {
			if !seen[k] {
				seen[k] = true
				d.columns = append(d.columns, k)
			}
		}
	}
}

func (d *Dataset) Len() int { return len(d.records) }

func (d *Dataset) Value(i int, column string) string {
	if i < 0 || i >= len(d.records) {
		return ""
	}
	return d.records[i].Values[column]
}

func (d *Dataset) Measure(i int, column string) (float64, bool) {
	return CoerceNumber(d.Value(i, column))
}

func (d *Dataset) Columns() []string { return d.columns }

// HasColumn reports whether the view's schema carries the column.
func HasColumn(view RecordView, column string) bool {
	for _, c := range view.Columns() {
		if c == column {
			return true
		}
	}
	return false
}

// ============================================================================
// SUB VIEW: filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent, no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Value(i int, column string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Value(v.indices[i], column)
}

func (v *SubView) Measure(i int, column string) (float64, bool) {
	if i < 0 || i >= len(v.indices) {
		return 0, false
	}
	return v.parent.Measure(v.indices[i], column)
}

func (v *SubView) Columns() []string { return v.parent.Columns() }

// ============================================================================
// COERCION
// ============================================================================

// CoerceNumber converts a raw cell to a float. Blank, unparseable, NaN and
// infinite values report false and are treated as missing.
func CoerceNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isMissing reports whether a dimension cell has no usable value.
func isMissing(v string) bool {
	s := strings.TrimSpace(v)
	return s == "" || strings.EqualFold(s, "nan")
}
