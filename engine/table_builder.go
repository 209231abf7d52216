package engine

import (
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// TABLE BUILDER: Produces TableData for KPI views and chart exports
// ============================================================================
// Tables carry a 1-based display index column "No". The band for each row is
// computed by ScoreToColorBand and stored beside the rows, never baked into
// cell text.
// ============================================================================

// IndexColumn is the key of the display index column.
const IndexColumn = "No"

// BuildKPITable lists the rows matching sel with sub-metrics and the
// composite score rounded to two decimals, sorted chronologically.
func BuildKPITable(spec ViewSpec, sel Selection, view RecordView, opts ...Option) (*TableData, error) {
	table, _, err := buildKPITable(spec, sel, view, applyOptions(opts))
	return table, err
}

type kpiRow struct {
	date   int
	keys   []string
	cells  []string
	score  float64
	source int
}

func buildKPITable(spec ViewSpec, sel Selection, view RecordView, cfg *config) (*TableData, AggregateStats, error) {
	var stats AggregateStats

	filtered := ApplyFilters(view, spec.Filters(sel))
	stats.Filtered = filtered.Len()
	if filtered.Len() == 0 {
		return nil, stats, &EmptyError{Stage: StageFilter}
	}

	columns := kpiColumns(spec)

	rows := make([]kpiRow, 0, filtered.Len())
	for i := 0; i < filtered.Len(); i++ {
		score, ok := filtered.Measure(i, spec.ScoreColumn)
		month := NormalizeMonth(filtered.Value(i, spec.Period))
		if !ok || !IsMonth(month) {
			stats.Dropped++
			continue
		}
		date, err := PeriodDate(month, cfg.ReferenceYear)
		if err != nil {
			return nil, stats, err
		}

		r := kpiRow{date: int(date.Month()), score: RoundTo2(score), source: i}
		r.cells = append(r.cells, "") // index, filled after sorting
		for _, d := range spec.Hierarchy {
			v := strings.TrimSpace(filtered.Value(i, d.Key))
			r.keys = append(r.keys, v)
			r.cells = append(r.cells, v)
		}
		r.cells = append(r.cells, month)
		for _, c := range spec.Columns {
			if v, ok := filtered.Measure(i, c); ok {
				r.cells = append(r.cells, Format2(v))
			} else {
				r.cells = append(r.cells, "")
			}
		}
		r.cells = append(r.cells, Format2(r.score))
		rows = append(rows, r)
	}

	if len(rows) == 0 {
		return nil, stats, &EmptyError{Stage: StageAggregate}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].date != rows[j].date {
			return rows[i].date < rows[j].date
		}
		for k := range rows[i].keys {
			if c := strings.Compare(rows[i].keys[k], rows[j].keys[k]); c != 0 {
				return c < 0
			}
		}
		return rows[i].source < rows[j].source
	})

	table := &TableData{
		Title:       BuildTitle(spec.Title, spec.Hierarchy, sel),
		Columns:     columns,
		Rows:        make([][]string, 0, len(rows)),
		ScoreColumn: spec.ScoreColumn,
		Bands:       make([]Band, 0, len(rows)),
		Scores:      make([]float64, 0, len(rows)),
	}
	var total float64
	for i, r := range rows {
		r.cells[0] = strconv.Itoa(i + 1)
		table.Rows = append(table.Rows, r.cells)
		table.Bands = append(table.Bands, ScoreToColorBand(r.score))
		table.Scores = append(table.Scores, r.score)
		total += r.score
	}

	mean := RoundTo2(total / float64(len(rows)))
	table.Summary = &Summary{
		Label: "Average (" + strconv.Itoa(len(rows)) + " rows)",
		Values: map[string]string{
			spec.ScoreColumn: Format2(mean),
			"band":           ScoreToColorBand(mean).String(),
		},
	}
	return table, stats, nil
}

func kpiColumns(spec ViewSpec) []Column {
	columns := []Column{{Key: IndexColumn, Label: IndexColumn, Type: "index", Align: "center"}}
	for _, d := range spec.Hierarchy {
		label := d.Label
		if label == "" {
			label = LabelForDimension(d.Key)
		}
		columns = append(columns, Column{Key: d.Key, Label: label, Type: "text", Align: "left"})
	}
	columns = append(columns, Column{Key: spec.Period, Label: spec.Period, Type: "text", Align: "left"})
	for _, c := range spec.Columns {
		columns = append(columns, Column{Key: c, Label: c, Type: "number", Align: "right"})
	}
	columns = append(columns, Column{Key: spec.ScoreColumn, Label: spec.ScoreColumn, Type: "number", Align: "right"})
	return columns
}

// ============================================================================
// SERIES TABLE: aggregated chart data as rows, for export
// ============================================================================

// BuildSeriesTable lays out chart points as No, period, group, metric rows.
func BuildSeriesTable(spec ViewSpec, title string, points []SeriesPoint) *TableData {
	table := &TableData{
		Title: title,
		Columns: []Column{
			{Key: IndexColumn, Label: IndexColumn, Type: "index", Align: "center"},
			{Key: spec.Period, Label: spec.Period, Type: "text", Align: "left"},
			{Key: spec.GroupBy, Label: spec.GroupBy, Type: "text", Align: "left"},
			{Key: spec.Metric, Label: spec.Metric, Type: "number", Align: "right"},
		},
		Rows: make([][]string, 0, len(points)),
	}
	for i, p := range points {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			TickLabel(p.Date),
			p.Group,
			Format2(p.Value),
		})
	}
	return table
}
