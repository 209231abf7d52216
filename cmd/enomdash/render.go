package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/enomcdcdash/enomdash/dashboard"
	"github.com/enomcdcdash/enomdash/export"
	"github.com/enomcdcdash/enomdash/render"
)

// Render-specific flag values.
var (
	renderFormat string
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render <view>",
	Short: "Render one view for a selection",
	Long: `Render one view (regional, nop, site, kpi) for the given selection.

Formats:
  json      Full result as JSON (default)
  pretty    Pretty-printed JSON
  text      Human-readable summary, score bands in color
  csv       Chart or table data as CSV (ready for Sheets/Excel)
  html      Standalone chart or table page

Examples:
  enomdash render nop --set area="Area 1" --format text
  enomdash render site --search site_id=MDN --format html --out site.html
  enomdash render kpi --set regional=Sumbagut --format csv --out kpi.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	addSelectionFlags(renderCmd)
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "json", "output format: json, pretty, text, csv, html")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write output to file instead of stdout")
}

func runRender(cmd *cobra.Command, args []string) error {
	switch renderFormat {
	case "json", "pretty", "text", "csv", "html":
	default:
		return exitError(ExitError, "enomdash: unknown format %q", renderFormat)
	}

	cfg, dash, _, err := setup()
	if err != nil {
		return err
	}
	req, err := request()
	if err != nil {
		return err
	}

	result, err := dash.Render(args[0], req)
	if errors.Is(err, dashboard.ErrUnknownView) {
		return unknownView(args[0], cfg)
	}
	if err != nil && result == nil {
		return classify(err)
	}

	w, werr := openOutput(renderOut, cmd.OutOrStdout())
	if werr != nil {
		return werr
	}
	defer w.Close()

	switch renderFormat {
	case "text":
		werr = writeText(w, result)
	case "csv":
		switch {
		case result.TableData != nil:
			werr = export.WriteCSV(w, result.TableData)
		case result.ChartConfig != nil:
			werr = export.WriteCSV(w, export.ChartTable(result.ChartConfig))
		default:
			werr = writeText(w, result)
		}
	case "html":
		werr = render.Result(w, result)
	default:
		werr = writeJSON(w, result, renderFormat == "pretty")
	}
	if werr != nil {
		return exitError(ExitError, "enomdash: %v", werr)
	}

	// A format error still writes the result, then exits non-zero.
	if err != nil {
		return classify(err)
	}
	return nil
}
