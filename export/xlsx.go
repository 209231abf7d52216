package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/enomcdcdash/enomdash/engine"
)

// ============================================================================
// XLSX EXPORT: One sheet, header row, rows in display order
// ============================================================================
// The display index column ("No") is not written: the sheet holds only the
// table's own columns, in order, headed by their keys so the file loads back
// into the same schema. Number columns are written as numeric
// cells; when the table carries bands, each score cell gets its band fill.
// ============================================================================

const (
	defaultSheet = "Data"
	maxSheetName = 31
)

// XLSX renders the table as an xlsx workbook.
func XLSX(table *engine.TableData) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, table); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXLSX writes the table as an xlsx workbook to w.
func WriteXLSX(w io.Writer, table *engine.TableData) error {
	if table == nil {
		return fmt.Errorf("export: nil table")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(table.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("export: name sheet: %w", err)
	}

	cols := exportColumns(table)

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = table.Columns[c].Key
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	if len(cols) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("export: header style: %w", err)
		}
	}

	for r, row := range table.Rows {
		values := make([]interface{}, len(cols))
		for i, c := range cols {
			values[i] = cellValue(table.Columns[c], cellAt(row, c))
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("export: row %d: %w", r+1, err)
		}
	}

	if err := applyBandFills(f, sheet, table, cols); err != nil {
		return err
	}

	for i, c := range cols {
		name, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(table.Columns[c].Key)) + 4
		if width < 10 {
			width = 10
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("export: column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

// applyBandFills colors the score column by band.
func applyBandFills(f *excelize.File, sheet string, table *engine.TableData, cols []int) error {
	score := table.ScoreIndex()
	if score < 0 {
		return nil
	}
	scoreCol := -1
	for i, c := range cols {
		if c == score {
			scoreCol = i
		}
	}
	if scoreCol < 0 {
		return nil
	}

	styles := make(map[engine.Band]int)
	for r, band := range table.Bands {
		if r >= len(table.Rows) {
			break
		}
		style, ok := styles[band]
		if !ok {
			var err error
			style, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Color: []string{band.Color()}, Pattern: 1},
			})
			if err != nil {
				return fmt.Errorf("export: band style: %w", err)
			}
			styles[band] = style
		}
		cell, _ := excelize.CoordinatesToCellName(scoreCol+1, r+2)
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("export: band fill: %w", err)
		}
	}
	return nil
}

// exportColumns returns the positions of the columns to write.
func exportColumns(table *engine.TableData) []int {
	cols := make([]int, 0, len(table.Columns))
	for i, c := range table.Columns {
		if c.Key == engine.IndexColumn && c.Type == "index" {
			continue
		}
		cols = append(cols, i)
	}
	return cols
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func cellValue(col engine.Column, raw string) interface{} {
	if col.Type == "number" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return raw
}

// SheetName derives a valid worksheet name from a table title.
func SheetName(title string) string {
	if i := strings.Index(title, " ("); i > 0 {
		title = title[:i]
	}
	title = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	title = strings.Trim(title, "'")
	if title == "" {
		return defaultSheet
	}
	if r := []rune(title); len(r) > maxSheetName {
		title = string(r[:maxSheetName])
	}
	return title
}
