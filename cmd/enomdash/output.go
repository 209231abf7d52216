package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/enomcdcdash/enomdash/engine"
)

// ============================================================================
// OUTPUT: Writers for the render formats
// ============================================================================

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns the file at path, or w when path is empty.
func openOutput(path string, w io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{w}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, exitError(ExitError, "enomdash: failed to create output file: %v", err)
	}
	return f, nil
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

var bandColors = map[engine.Band]*color.Color{
	engine.BandRed:        color.New(color.FgRed),
	engine.BandOrange:     color.New(color.FgYellow),
	engine.BandLightGreen: color.New(color.FgHiGreen),
	engine.BandGreen:      color.New(color.FgGreen),
	engine.BandBlue:       color.New(color.FgBlue),
}

func bandText(b engine.Band, text string) string {
	if c, ok := bandColors[b]; ok {
		return c.Sprint(text)
	}
	return text
}

// writeText prints a human-readable summary of a render pass.
func writeText(w io.Writer, res *engine.Result) error {
	bold := color.New(color.Bold)
	warn := color.New(color.FgYellow)

	_, _ = fmt.Fprintln(w, bold.Sprint(res.Title))
	if res.Empty {
		_, err := fmt.Fprintln(w, warn.Sprint(res.Reply))
		return err
	}
	_, _ = fmt.Fprintln(w, res.Reply)
	if res.Cascade != nil {
		parts := make([]string, 0, len(res.Cascade.Dimensions))
		for _, d := range res.Cascade.Dimensions {
			p := fmt.Sprintf("%s: %s", d.Label, d.Selected)
			if d.Reset {
				p += warn.Sprint(" (reset)")
			}
			parts = append(parts, p)
		}
		_, _ = fmt.Fprintln(w, strings.Join(parts, ", "))
	}
	_, _ = fmt.Fprintln(w)

	switch {
	case res.ChartConfig != nil:
		return writeChartText(w, res.ChartConfig)
	case res.TableData != nil:
		return writeTableText(w, res.TableData)
	}
	return nil
}

func writeChartText(w io.Writer, chart *engine.ChartConfig) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)

	header := []string{bold.Sprint(chart.XAxis)}
	for _, s := range chart.Series {
		header = append(header, bold.Sprint(s.Name))
	}
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, tick := range chart.XTicks {
		row := []string{tick}
		for _, s := range chart.Series {
			text := "-"
			for _, p := range s.Data {
				if p.Label == tick {
					text = p.Text
					break
				}
			}
			row = append(row, text)
		}
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeTableText(w io.Writer, table *engine.TableData) error {
	if len(table.Columns) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	score := table.ScoreIndex()

	header := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = bold.Sprint(c.Label)
	}
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))

	for r, row := range table.Rows {
		cells := append([]string(nil), row...)
		if score >= 0 && r < len(table.Bands) && score < len(cells) {
			cells[score] = bandText(table.Bands[r], cells[score])
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if s := table.Summary; s != nil && score >= 0 {
		key := table.Columns[score].Key
		if v, ok := engine.CoerceNumber(s.Values[key]); ok {
			_, _ = fmt.Fprintf(w, "%s: %s\n", s.Label, bandText(engine.ScoreToColorBand(v), s.Values[key]))
		}
	}
	return nil
}
