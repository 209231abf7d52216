package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/enomcdcdash/enomdash/engine"
)

// ============================================================================
// TABLE: KPI TableData → HTML table with banded score cells
// ============================================================================

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.PageTitle}}</title>
<style>
body { font-family: sans-serif; margin: 24px; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 10px; }
th { background: #f0f0f0; }
td.left { text-align: left; }
td.center { text-align: center; }
td.right { text-align: right; }
p.note { color: #555; }
</style>
</head>
<body>
<h2>{{.Title}}</h2>
{{- if .Message}}
<p class="note">{{.Message}}</p>
{{- end}}
{{- if .Columns}}
<table>
<thead><tr>{{range .Columns}}<th>{{.Label}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td class="{{.Align}}"{{if .Fill}} style="background-color: {{.Fill}}"{{end}}>{{.Text}}</td>{{end}}</tr>
{{- end}}
</tbody>
{{- if .Summary}}
<tfoot><tr>{{range .Summary}}<td class="{{.Align}}"{{if .Fill}} style="background-color: {{.Fill}}"{{end}}>{{.Text}}</td>{{end}}</tr></tfoot>
{{- end}}
</table>
{{- end}}
</body>
</html>
`))

type page struct {
	PageTitle string
	Title     string
	Message   string
	Columns   []engine.Column
	Rows      [][]cell
	Summary   []cell
}

type cell struct {
	Text  string
	Align string
	Fill  template.CSS
}

// Table writes a standalone HTML page holding the table. When the table
// carries bands, the score column (the last number column) is filled with
// each row's band color.
func Table(w io.Writer, table *engine.TableData, message string) error {
	if table == nil {
		return fmt.Errorf("render: nil table")
	}
	score := table.ScoreIndex()

	p := page{
		PageTitle: PageTitle,
		Title:     table.Title,
		Message:   message,
		Columns:   table.Columns,
		Rows:      make([][]cell, len(table.Rows)),
	}
	for r, row := range table.Rows {
		cells := make([]cell, len(table.Columns))
		for c, col := range table.Columns {
			cells[c] = cell{Align: col.Align}
			if c < len(row) {
				cells[c].Text = row[c]
			}
			if c == score && r < len(table.Bands) {
				cells[c].Fill = template.CSS(table.Bands[r].Color())
			}
		}
		p.Rows[r] = cells
	}

	if table.Summary != nil {
		p.Summary = make([]cell, len(table.Columns))
		for c, col := range table.Columns {
			p.Summary[c] = cell{Align: col.Align, Text: table.Summary.Values[col.Key]}
			if c == 0 {
				p.Summary[c].Text = table.Summary.Label
			}
			if c == score && p.Summary[c].Text != "" {
				if v, ok := engine.CoerceNumber(p.Summary[c].Text); ok {
					p.Summary[c].Fill = template.CSS(engine.ScoreToColorBand(v).Color())
				}
			}
		}
	}

	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("render: table: %w", err)
	}
	return nil
}

// Message writes a page holding only a title and a message, for empty
// results and errors.
func Message(w io.Writer, title, message string) error {
	p := page{PageTitle: PageTitle, Title: title, Message: message}
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("render: message: %w", err)
	}
	return nil
}

// Result writes the page for one render pass: the chart, the table, or
// the result's message when it is empty.
func Result(w io.Writer, result *engine.Result) error {
	if result == nil {
		return fmt.Errorf("render: nil result")
	}
	switch {
	case result.ChartConfig != nil:
		return Chart(w, result.ChartConfig)
	case result.TableData != nil:
		return Table(w, result.TableData, result.Reply)
	default:
		return Message(w, result.Title, result.Reply)
	}
}

