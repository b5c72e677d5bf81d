package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates the root rclean command. Invoked without a
// subcommand it runs a clean of the working directory.
func NewRootCommand() *cobra.Command {
	opts := &cleanOptions{}

	cmd := &cobra.Command{
		Use:   "rclean",
		Short: "Find and remove build artifacts, caches and other clutter",
		Long: `rclean walks a directory tree, matches entries against glob patterns
and presets, and removes the matches after confirmation.

Patterns without a slash match base names at any depth ("*.pyc"), patterns
with a slash match paths relative to the root ("build/**"). Exclude patterns
always win over include patterns. Nothing outside the root is ever touched.

Configuration is read from .rclean.yaml (searched upward from the working
directory) or ~/.config/rclean/config.yaml. CLI flags override file values.

Examples:
  # Preview what the default presets (common + python) would remove
  rclean --dry-run

  # Remove node_modules and dist directories without asking
  rclean --preset node -y

  # Remove logs older than 30 days, keeping important.log
  rclean -g "*.log" -e important.log --older-than 30d

  # Machine-readable report with per-pattern statistics
  rclean -d -s --format json`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, opts)
		},
	}

	opts.bind(cmd)

	cmd.AddCommand(NewPresetsCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
