package schema

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/enomcdcdash/enomdash/engine"
)

// ============================================================================
// INSPECTION: Checks a loaded dataset against a view
// ============================================================================
// Answers "will this view render from this file?" without running it.
//
// Per column:
//   1. Sample values → detect type (numeric, temporal, bool, text)
//   2. Null count, unique count → cardinality hint
//   3. Role from the view (dimension, period, metric, score, sub_metric)
// Per hierarchy level:
//   4. Every child value must map to exactly one parent value
// ============================================================================

// Column roles.
const (
	RoleDimension = "dimension"
	RolePeriod    = "period"
	RoleMetric    = "metric"
	RoleSubMetric = "sub_metric"
	RoleScore     = "score"
	RoleUnused    = "unused"
)

// Column types.
const (
	TypeText     = "text"
	TypeNumeric  = "numeric"
	TypeTemporal = "temporal"
	TypeBool     = "bool"
)

// Report is the result of Inspect.
type Report struct {
	View      string           `json:"view"`
	Rows      int              `json:"rows"`
	Missing   []string         `json:"missing,omitempty"` // required columns absent from the data
	Columns   []ColumnReport   `json:"columns"`
	Hierarchy []HierarchyCheck `json:"hierarchy"`
}

// ColumnReport describes one column of the dataset.
type ColumnReport struct {
	Column          string   `json:"column"`
	Role            string   `json:"role"`
	Type            string   `json:"type"`
	TemporalFormat  string   `json:"temporalFormat,omitempty"`
	Unique          int      `json:"unique"`
	Nulls           int      `json:"nulls"`
	CardinalityHint string   `json:"cardinalityHint"` // "low", "medium", "high"
	Samples         []string `json:"samples"`
}

// HierarchyCheck reports whether a child level nests inside its parent.
type HierarchyCheck struct {
	Parent     string   `json:"parent"`
	Child      string   `json:"child"`
	Consistent bool     `json:"consistent"`
	Conflicts  []string `json:"conflicts,omitempty"` // child values seen under several parents
}

// OK reports whether the view can render from the data.
// Hierarchy conflicts are warnings, not failures.
func (r *Report) OK() bool {
	return len(r.Missing) == 0
}

const (
	maxSamples   = 10
	maxConflicts = 5
)

// Inspect profiles data against the columns view needs.
func Inspect(view View, data engine.RecordView) *Report {
	report := &Report{View: view.Name, Rows: data.Len()}

	for _, c := range view.RequiredColumns() {
		if !engine.HasColumn(data, c) {
			report.Missing = append(report.Missing, c)
		}
	}

	roles := columnRoles(view)
	for _, c := range data.Columns() {
		col := analyzeColumn(c, data)
		col.Role = roles[c]
		if col.Role == "" {
			col.Role = RoleUnused
		}
		report.Columns = append(report.Columns, col)
	}

	for i := 1; i < len(view.Hierarchy); i++ {
		parent, child := view.Hierarchy[i-1].Key, view.Hierarchy[i].Key
		if !engine.HasColumn(data, parent) || !engine.HasColumn(data, child) {
			continue
		}
		report.Hierarchy = append(report.Hierarchy, checkNesting(data, parent, child))
	}
	return report
}

func columnRoles(v View) map[string]string {
	roles := make(map[string]string)
	for _, d := range v.Hierarchy {
		roles[d.Key] = RoleDimension
	}
	for _, c := range v.Columns {
		roles[c] = RoleSubMetric
	}
	if v.Metric != "" {
		roles[v.Metric] = RoleMetric
	}
	if v.ScoreColumn != "" {
		roles[v.ScoreColumn] = RoleScore
	}
	roles[v.Period] = RolePeriod
	return roles
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

func analyzeColumn(column string, data engine.RecordView) ColumnReport {
	col := ColumnReport{Column: column, Type: TypeText}

	values := make([]string, 0, data.Len())
	uniqueSet := make(map[string]bool)
	for i := 0; i < data.Len(); i++ {
		val := strings.TrimSpace(data.Value(i, column))
		if isNull(val) {
			col.Nulls++
			continue
		}
		values = append(values, val)
		uniqueSet[val] = true
	}
	col.Unique = len(uniqueSet)
	col.Samples = collectSamples(uniqueSet, maxSamples)

	if len(values) > 0 {
		col.Type = detectType(values)
		if col.Type == TypeText {
			if ok, format := detectTemporalPattern(col.Samples); ok {
				col.Type = TypeTemporal
				col.TemporalFormat = format
			}
		}
	}

	switch {
	case col.Unique <= 10:
		col.CardinalityHint = "low"
	case col.Unique <= 100:
		col.CardinalityHint = "medium"
	default:
		col.CardinalityHint = "high"
	}
	return col
}

func isNull(val string) bool {
	switch strings.ToLower(val) {
	case "", "null", "n/a", "nan":
		return true
	}
	return false
}

// detectType inspects values to determine column type.
// Requires 80%+ of non-null values to match for numeric/date/bool.
func detectType(values []string) string {
	if len(values) == 0 {
		return TypeText
	}

	numCount := 0
	dateCount := 0
	boolCount := 0
	for _, v := range values {
		if isNumeric(v) {
			numCount++
		}
		if isDate(v) {
			dateCount++
		}
		if isBool(v) {
			boolCount++
		}
	}

	threshold := int(math.Ceil(float64(len(values)) * 0.8))

	if boolCount >= threshold {
		return TypeBool
	}
	if dateCount >= threshold {
		return TypeTemporal
	}
	if numCount >= threshold {
		return TypeNumeric
	}
	return TypeText
}

func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "") // handle "1,234.56"
	s = strings.TrimSuffix(s, "%")
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"Jan-2006",
	"Jan-06",
	"January 2006",
}

func isDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "false" || s == "yes" || s == "no"
}

var monthPatterns = []struct {
	re     *regexp.Regexp
	format string
}{
	{regexp.MustCompile(`^[A-Za-z]{3}$`), "MMM"},              // Jan
	{regexp.MustCompile(`^[A-Za-z]{3}-\d{2}$`), "MMM-yy"},     // Dec-23
	{regexp.MustCompile(`^[A-Z][a-z]{2}-\d{4}$`), "MMM-yyyy"}, // Jan-2026
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "yyyy-MM"},          // 2026-01
	{regexp.MustCompile(`^Q[1-4]-\d{4}$`), "QN-yyyy"},         // Q1-2026
	{regexp.MustCompile(`^[A-Z][a-z]+ \d{4}$`), "MMMM yyyy"},  // January 2026
	{regexp.MustCompile(`^[A-Za-z]{4,9}$`), "MMMM"},           // January
}

// detectTemporalPattern checks if values match known month/quarter patterns.
// Bare month names must also canonicalize to a real month.
func detectTemporalPattern(samples []string) (bool, string) {
	if len(samples) == 0 {
		return false, ""
	}

	for _, pattern := range monthPatterns {
		matches := 0
		for _, s := range samples {
			s = strings.TrimSpace(s)
			if !pattern.re.MatchString(s) {
				continue
			}
			if (pattern.format == "MMM" || pattern.format == "MMMM") && !engine.IsMonth(engine.NormalizeMonth(s)) {
				continue
			}
			matches++
		}
		if float64(matches)/float64(len(samples)) >= 0.8 {
			return true, pattern.format
		}
	}
	return false, ""
}

// ============================================================================
// HIERARCHY CHECK
// ============================================================================

// checkNesting verifies every child value maps to exactly one parent value.
func checkNesting(data engine.RecordView, parent, child string) HierarchyCheck {
	check := HierarchyCheck{Parent: parent, Child: child, Consistent: true}

	childToParent := make(map[string]string)
	conflicted := make(map[string]bool)
	for i := 0; i < data.Len(); i++ {
		c := strings.TrimSpace(data.Value(i, child))
		p := strings.TrimSpace(data.Value(i, parent))
		if c == "" || p == "" {
			continue
		}
		existing, ok := childToParent[c]
		if !ok {
			childToParent[c] = p
			continue
		}
		if existing != p && !conflicted[c] {
			conflicted[c] = true
			check.Consistent = false
			if len(check.Conflicts) < maxConflicts {
				check.Conflicts = append(check.Conflicts, c)
			}
		}
	}
	sort.Strings(check.Conflicts)
	return check
}

// collectSamples picks up to maxSamples representative values.
func collectSamples(uniqueSet map[string]bool, limit int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	engine.SortValues(samples)

	if len(samples) > limit {
		samples = samples[:limit]
	}
	return samples
}
