package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for dirtally
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirtally",
		Short: "Count and catalogue the entries of a directory tree",
		Long: `dirtally walks a directory tree, classifies every entry (directories,
regular files, symlinks, devices, fifos, sockets, junctions) and tallies
files by extension.

Each scan prints a count summary, saves a report (CSV by default) and is
recorded in a local run history.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: $DIRTALLY_HOME/config.yaml)")

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
