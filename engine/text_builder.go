package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TEXT BUILDER: User-visible messages for a render pass
// ============================================================================

// FilteredMessage is the informational line shown above every chart.
func FilteredMessage(rows int) string {
	return fmt.Sprintf("Number of rows after filtering: %d", rows)
}

// EmptyMessage is the warning shown when a stage leaves no data.
func EmptyMessage(stage, title string) string {
	if stage == "" {
		stage = StageFilter
	}
	return fmt.Sprintf("No valid data available after %s for %s.", stage, title)
}

// FormatMessage is the error shown when periods cannot be converted.
func FormatMessage(err error) string {
	return fmt.Sprintf("Error converting months: %v", err)
}

// DescribeSelection renders a selection as "Area: East, Regional: All"
// in hierarchy order, for logs and text output.
func DescribeSelection(hierarchy []Dimension, sel Selection) string {
	parts := make([]string, 0, len(hierarchy))
	for _, d := range hierarchy {
		v := sel.Get(d.Key)
		if v == "" {
			v = All
		}
		parts = append(parts, fmt.Sprintf("%s: %s", LabelForDimension(d.Key), v))
	}
	return strings.Join(parts, ", ")
}

// DerivePeriod returns "Jan–Dec" style coverage for a set of points.
func DerivePeriod(points []SeriesPoint) string {
	if len(points) == 0 {
		return "No data"
	}
	first, last := points[0], points[0]
	for _, p := range points[1:] {
		if p.Date.Before(first.Date) {
			first = p
		}
		if p.Date.After(last.Date) {
			last = p
		}
	}
	if first.Period == last.Period {
		return first.Period
	}
	return first.Period + "–" + last.Period
}
