package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/enomcdcdash/enomdash/engine"
)

// ============================================================================
// CSV EXPORT: Sheets-ready text for tables and charts
// ============================================================================

// WriteCSV writes the table's columns (without the display index) and rows.
func WriteCSV(w io.Writer, table *engine.TableData) error {
	if table == nil {
		return fmt.Errorf("export: nil table")
	}
	cw := csv.NewWriter(w)
	cols := exportColumns(table)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = table.Columns[c].Key
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range table.Rows {
		out := make([]string, len(cols))
		for i, c := range cols {
			out[i] = cellAt(row, c)
		}
		if err := cw.Write(out); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ChartTable pivots a chart into one row per x tick and one column per
// series. Ticks a series has no point for are left blank.
func ChartTable(chart *engine.ChartConfig) *engine.TableData {
	if chart == nil {
		return nil
	}
	xLabel := chart.XAxis
	if xLabel == "" {
		xLabel = "Label"
	}

	table := &engine.TableData{
		Title:   chart.Title,
		Columns: []engine.Column{{Key: xLabel, Label: xLabel, Type: "text", Align: "left"}},
		Rows:    make([][]string, 0, len(chart.XTicks)),
	}
	for _, s := range chart.Series {
		table.Columns = append(table.Columns, engine.Column{Key: s.Name, Label: s.Name, Type: "number", Align: "right"})
	}

	for _, tick := range chart.XTicks {
		row := make([]string, 0, len(chart.Series)+1)
		row = append(row, tick)
		for _, s := range chart.Series {
			row = append(row, pointText(s, tick))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func pointText(s engine.ChartSeries, tick string) string {
	for _, p := range s.Data {
		if p.Label == tick {
			return engine.Format2(p.Value)
		}
	}
	return ""
}
