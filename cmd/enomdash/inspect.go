package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/enomcdcdash/enomdash/dashboard"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <view>",
	Short: "Check a view's source file against the view definition",
	Long: `Profile the columns of a view's source file: which columns the view
needs and are missing, each column's role and detected type, and whether
each hierarchy level nests inside its parent.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the report as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, dash, _, err := setup()
	if err != nil {
		return err
	}
	report, err := dash.Inspect(args[0])
	if errors.Is(err, dashboard.ErrUnknownView) {
		return unknownView(args[0], cfg)
	}
	if err != nil {
		return classify(err)
	}

	w := cmd.OutOrStdout()
	if inspectJSON {
		if err := writeJSON(w, report, true); err != nil {
			return err
		}
	} else {
		bold := color.New(color.Bold)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)

		_, _ = fmt.Fprintf(w, "%s: %d rows\n", bold.Sprint(report.View), report.Rows)
		if len(report.Missing) > 0 {
			_, _ = fmt.Fprintln(w, red.Sprint("missing columns: "+strings.Join(report.Missing, ", ")))
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, bold.Sprint("COLUMN")+"\t"+bold.Sprint("ROLE")+"\t"+bold.Sprint("TYPE")+"\t"+bold.Sprint("UNIQUE")+"\t"+bold.Sprint("NULLS")+"\t"+bold.Sprint("SAMPLES"))
		for _, c := range report.Columns {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", c.Column, c.Role, c.Type, c.Unique, c.Nulls, strings.Join(c.Samples, ", "))
		}
		_ = tw.Flush()

		for _, h := range report.Hierarchy {
			if !h.Consistent {
				_, _ = fmt.Fprintln(w, yellow.Sprintf("%s appears under several %s values: %s", h.Child, h.Parent, strings.Join(h.Conflicts, ", ")))
			}
		}
	}

	if !report.OK() {
		return exitError(ExitError, "enomdash: view %q cannot render from its source", report.View)
	}
	return nil
}
