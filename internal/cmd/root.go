package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for tickline
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickline",
		Short: "Run commands under a terminal loading animation",
		Long: `Tickline shows a spinner while a command or task runs and interleaves
whatever the task prints with the animation, either next to it (inline)
or stacked above it.

Configuration is loaded from $TICKLINE_HOME/config.yaml (default
./.tickline/config.yaml) if present. CLI flags override configuration
file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error and picks the exit code
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: $TICKLINE_HOME/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log verbosity: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("log-dir", "", "Directory for run log files")

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewDemoCommand())
	cmd.AddCommand(NewStylesCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}
