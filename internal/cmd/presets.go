package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/rclean/internal/cleaner"
	"github.com/harrison/rclean/internal/pattern"
)

// NewPresetsCommand creates the 'rclean presets' command
func NewPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "List presets or the patterns of one preset",
		Long: `Without arguments, list every preset with its pattern count.
With a preset name, print the patterns it expands to, one per line.

Examples:
  rclean presets
  rclean presets node`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPresets,
	}
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		patterns, ok := pattern.Preset(args[0])
		if !ok {
			_, err := pattern.ResolvePresets(args)
			return fmt.Errorf("%w: %w", cleaner.ErrConfiguration, err)
		}
		for _, p := range patterns {
			fmt.Fprintln(out, p)
		}
		return nil
	}

	names := pattern.PresetNames()
	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}

	defaults := pattern.Defaults()
	for _, name := range names {
		patterns, _ := pattern.Preset(name)
		fmt.Fprintf(out, "%-*s  %d pattern(s)\n", width, name, len(patterns))
	}
	fmt.Fprintf(out, "\nDefault when no patterns or presets are configured: common, python (%d patterns)\n", len(defaults))
	fmt.Fprintf(out, "Use: rclean --preset <name> [--preset <name>...]\n")
	return nil
}
