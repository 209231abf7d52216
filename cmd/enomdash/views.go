package main

import (
	"github.com/spf13/cobra"

	"github.com/enomcdcdash/enomdash/config"
	"github.com/enomcdcdash/enomdash/schema"
)

var viewsOut string

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Print the configured view definitions as YAML",
	Long: `Print the configured views (the built-in presets unless views_file is
set). The output is a valid views_file, handy as a starting point:

  enomdash views --out views.yaml`,
	Args: cobra.NoArgs,
	RunE: runViews,
}

func init() {
	viewsCmd.Flags().StringVarP(&viewsOut, "out", "o", "", "write to file instead of stdout")
}

func runViews(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return exitError(ExitError, "enomdash: %v", err)
	}
	w, err := openOutput(viewsOut, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer w.Close()
	if err := schema.WriteViews(w, cfg.Views); err != nil {
		return exitError(ExitError, "enomdash: %v", err)
	}
	return nil
}
