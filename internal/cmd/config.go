package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/rclean/internal/config"
)

// NewConfigCommand creates the 'rclean config' parent command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect configuration files",
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var global, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a commented starter configuration. By default the file is
.rclean.yaml in the current directory; with --global it is the user-wide
~/.config/rclean/config.yaml.

Examples:
  rclean config init
  rclean config init --global --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if global {
				p, err := config.GlobalConfigFile()
				if err != nil {
					return err
				}
				path = p
			} else {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				path = filepath.Join(cwd, config.SettingsFilename)
			}

			if err := config.WriteStarter(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Write the user-wide config file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration a clean would use, as YAML, preceded by the
file it was loaded from. --config and --no-config are honoured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			data, err := cfg.Marshal()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if source == "" {
				fmt.Fprintln(out, "# source: built-in defaults")
			} else {
				fmt.Fprintf(out, "# source: %s\n", source)
			}
			_, err = out.Write(data)
			return err
		},
	}
}
