package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/enomcdcdash/enomdash/dashboard"
	"github.com/enomcdcdash/enomdash/engine"
	"github.com/enomcdcdash/enomdash/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <view>",
	Short: "Export a view's data as xlsx or csv",
	Long: `Export the filtered data behind a view. KPI views export the scorecard
with band fills on the score column; chart views export one row per
(month, group) point. The format follows the --out extension (.xlsx or .csv).`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	addSelectionFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file, .xlsx or .csv (required)")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	ext := strings.ToLower(filepath.Ext(exportOut))
	if ext != ".xlsx" && ext != ".csv" {
		return exitError(ExitError, "enomdash: --out must end in .xlsx or .csv, got %q", exportOut)
	}

	cfg, dash, log, err := setup()
	if err != nil {
		return err
	}
	req, err := request()
	if err != nil {
		return err
	}

	table, err := dash.Export(args[0], req)
	switch {
	case errors.Is(err, dashboard.ErrUnknownView):
		return unknownView(args[0], cfg)
	case errors.Is(err, engine.ErrEmptyResult):
		// Nothing to write is not a failure.
		_, _ = cmd.OutOrStdout().Write([]byte(err.Error() + "\n"))
		return nil
	case err != nil:
		return classify(err)
	}

	w, err := openOutput(exportOut, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer w.Close()

	if ext == ".csv" {
		err = export.WriteCSV(w, table)
	} else {
		err = export.WriteXLSX(w, table)
	}
	if err != nil {
		return exitError(ExitError, "enomdash: %v", err)
	}
	log.Info("export written", "view", args[0], "file", exportOut, "rows", len(table.Rows))
	return nil
}
