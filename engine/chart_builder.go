package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// CHART BUILDER: Produces ChartConfig from ViewSpec + SeriesPoints
// ============================================================================
// One line per group key, every point labeled with its rounded value, a
// fixed y-range per view and a title naming the active filters.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// BuildChart produces a ChartConfig from a ViewSpec, the resolved selection
// and sorted series points.
func BuildChart(spec ViewSpec, sel Selection, points []SeriesPoint) *ChartConfig {
	if len(points) == 0 {
		return nil
	}

	config := &ChartConfig{
		ChartType:  "line",
		Title:      BuildTitle(spec.Title, spec.Hierarchy, sel),
		XAxis:      spec.XTitle,
		YAxis:      spec.YTitle,
		YRange:     spec.YRange,
		Height:     spec.Height,
		ShowLegend: true,
		Markers:    true,
		LabelPos:   "bottom center",
	}
	if config.XAxis == "" {
		config.XAxis = LabelForDimension(spec.Period)
	}
	if config.YAxis == "" {
		config.YAxis = spec.Metric
	}

	config.XTicks = buildTicks(points)
	config.Series = buildGroupSeries(points)
	config.Colors = assignColors(len(config.Series))
	for i := range config.Series {
		config.Series[i].Color = config.Colors[i]
	}
	return config
}

// BuildTitle appends "(Dim: value, ...)" for every concrete selection,
// in hierarchy order. Wildcard dimensions are omitted.
func BuildTitle(base string, hierarchy []Dimension, sel Selection) string {
	parts := make([]string, 0, len(hierarchy))
	for _, d := range hierarchy {
		if sel.IsConcrete(d.Key) {
			parts = append(parts, fmt.Sprintf("%s: %s", LabelForDimension(d.Key), sel[d.Key]))
		}
	}
	if len(parts) == 0 {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, strings.Join(parts, ", "))
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildTicks(points []SeriesPoint) []string {
	seen := make(map[string]bool)
	ticks := make([]string, 0, len(Months))
	for _, p := range points {
		label := TickLabel(p.Date)
		if !seen[label] {
			seen[label] = true
			ticks = append(ticks, label)
		}
	}
	return ticks
}

// buildGroupSeries keeps series in order of first appearance, which after
// SortSeries is the earliest month's group order.
func buildGroupSeries(points []SeriesPoint) []ChartSeries {
	index := make(map[string]int)
	var series []ChartSeries
	for _, p := range points {
		i, ok := index[p.Group]
		if !ok {
			i = len(series)
			index[p.Group] = i
			series = append(series, ChartSeries{Name: p.Group})
		}
		series[i].Data = append(series[i].Data, ChartPoint{
			Label: TickLabel(p.Date),
			Value: p.Value,
			Text:  FormatValue(p.Value),
		})
	}
	return series
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
