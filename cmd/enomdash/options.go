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

var optionsJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options <view>",
	Short: "List the selector options for a view",
	Long: `Evaluate the selector cascade for a view and print each dimension's
options and resolved selection. Nothing is rendered or stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runOptions,
}

func init() {
	addSelectionFlags(optionsCmd)
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "print the cascade as JSON")
}

func runOptions(cmd *cobra.Command, args []string) error {
	cfg, dash, _, err := setup()
	if err != nil {
		return err
	}
	req, err := request()
	if err != nil {
		return err
	}

	cascade, err := dash.Options(args[0], req)
	if errors.Is(err, dashboard.ErrUnknownView) {
		return unknownView(args[0], cfg)
	}
	if err != nil {
		return classify(err)
	}

	w := cmd.OutOrStdout()
	if optionsJSON {
		return writeJSON(w, cascade, true)
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, bold.Sprint("DIMENSION")+"\t"+bold.Sprint("SELECTED")+"\t"+bold.Sprint("OPTIONS"))
	for _, d := range cascade.Dimensions {
		selected := green.Sprint(d.Selected)
		if d.Reset {
			selected = yellow.Sprint(d.Selected + " (reset)")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d: %s\n", d.Label, selected, len(d.Options)-1, strings.Join(d.Options[1:], ", "))
	}
	return tw.Flush()
}
