package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the enomdash version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "enomdash %s\n", Version)
	},
}
