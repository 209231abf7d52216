package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/enomcdcdash/enomdash/engine"
)

// ============================================================================
// CHART: ChartConfig → go-echarts line chart
// ============================================================================
// One line per series, x ticks in the config's chronological order. Ticks
// a series has no point for are emitted as "-" so echarts leaves a gap
// instead of joining across it.
// ============================================================================

// PageTitle is the browser title of every rendered page.
const PageTitle = "ENOM Availability Dashboard"

const (
	defaultHeight = 500
	missingPoint  = "-"
)

func boolPtr(b bool) *bool { return &b }

// Line builds the go-echarts line chart for a chart config.
func Line(chart *engine.ChartConfig) (*charts.Line, error) {
	if chart == nil {
		return nil, fmt.Errorf("render: nil chart")
	}

	height := chart.Height
	if height <= 0 {
		height = defaultHeight
	}
	labelPos := chart.LabelPos
	if labelPos == "" {
		labelPos = "bottom"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: PageTitle,
			Theme:     types.ThemeWesteros,
			Width:     "100%",
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{Title: chart.Title}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(chart.ShowLegend), Top: "bottom"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: chart.XAxis}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: chart.YAxis,
			Min:  chart.YRange[0],
			Max:  chart.YRange[1],
		}),
	)
	if len(chart.Colors) > 0 {
		line.SetGlobalOptions(charts.WithColorsOpts(opts.Colors(chart.Colors)))
	}

	line.SetXAxis(chart.XTicks)
	for _, s := range chart.Series {
		line.AddSeries(s.Name, lineData(chart.XTicks, s),
			charts.WithLabelOpts(opts.Label{Show: boolPtr(true), Position: labelPos}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: boolPtr(chart.Markers)}),
		)
	}
	return line, nil
}

// lineData aligns a series to the x ticks.
func lineData(ticks []string, s engine.ChartSeries) []opts.LineData {
	byTick := make(map[string]engine.ChartPoint, len(s.Data))
	for _, p := range s.Data {
		byTick[p.Label] = p
	}
	data := make([]opts.LineData, len(ticks))
	for i, tick := range ticks {
		p, ok := byTick[tick]
		if !ok {
			data[i] = opts.LineData{Name: tick, Value: missingPoint}
			continue
		}
		data[i] = opts.LineData{Name: tick, Value: p.Value}
	}
	return data
}

// Chart writes a standalone HTML page holding the line chart.
func Chart(w io.Writer, chart *engine.ChartConfig) error {
	line, err := Line(chart)
	if err != nil {
		return err
	}
	if err := line.Render(w); err != nil {
		return fmt.Errorf("render: chart: %w", err)
	}
	return nil
}
