package main

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/enomcdcdash/enomdash/config"
	"github.com/enomcdcdash/enomdash/dashboard"
	"github.com/enomcdcdash/enomdash/engine"
	"github.com/enomcdcdash/enomdash/logger"
)

// Global flag values.
var (
	configPath string
	logLevel   string
	noColor    bool
)

// rootCmd is the base command for enomdash.
var rootCmd = &cobra.Command{
	Use:   "enomdash",
	Short: "ENOM availability dashboard",
	Long: `enomdash renders monthly network availability for Regional, NOP and Site
views, plus a banded KPI scorecard, from CSV or xlsx extracts.

Selections cascade left to right (area, regional, networksite, site_id);
a selection that no longer fits its parents falls back to All, or to a
random site for the Site view.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: enomdash.yaml in ., ./configs, /etc/enomdash)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides log_level)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads config and wires a dashboard.
func setup() (*config.Config, *dashboard.Dashboard, logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, exitError(ExitError, "enomdash: %v", err)
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log := logger.New(level)
	return cfg, dashboard.New(cfg, log), log, nil
}

// Selection flags shared by render, options and export.
var (
	setFlags    []string
	searchFlags []string
)

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&setFlags, "set", nil, "select a dimension value, dim=value (repeatable)")
	cmd.Flags().StringArrayVar(&searchFlags, "search", nil, "free-text narrowing, dim=text (repeatable)")
}

// request builds a dashboard request from --set and --search.
func request() (dashboard.Request, error) {
	req := dashboard.Request{Selections: engine.Selection{}, Search: map[string]string{}}
	for _, kv := range setFlags {
		k, v, err := splitPair(kv, "--set")
		if err != nil {
			return req, err
		}
		req.Selections[k] = v
	}
	for _, kv := range searchFlags {
		k, v, err := splitPair(kv, "--search")
		if err != nil {
			return req, err
		}
		req.Search[k] = v
	}
	return req, nil
}

func splitPair(kv, flag string) (string, string, error) {
	k, v, ok := strings.Cut(kv, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", exitError(ExitError, "enomdash: %s wants dim=value, got %q", flag, kv)
	}
	return k, strings.TrimSpace(v), nil
}

func unknownView(name string, cfg *config.Config) error {
	names := make([]string, 0, len(cfg.Views))
	for _, v := range cfg.Views {
		names = append(names, v.Name)
	}
	return exitError(ExitError, "enomdash: unknown view %q; configured views: %s", name, strings.Join(names, ", "))
}
