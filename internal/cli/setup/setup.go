// Package setup implements the "kanban config" commands
package setup

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/config"
)

// ConfigCmd returns the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the config file",
	}

	cmd.AddCommand(InitCmd())
	cmd.AddCommand(PathCmd())

	return cmd
}

// InitCmd writes the default configuration to the config path
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write the default settings to the config file.

Examples:
  kanban config init
  kanban --config ./kanban.yaml config init --force
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.NewFormatter(cmd)

			path, err := config.Path()
			if err != nil {
				return formatter.Fail(err, "")
			}

			if _, err := os.Stat(path); err == nil && !force {
				return formatter.Reject(cli.ExitValidation, "CONFIG_EXISTS",
					fmt.Errorf("config file %s already exists", path), "Use --force to overwrite it")
			}

			if err := config.Default().Save(); err != nil {
				return formatter.Fail(err, "")
			}
			return formatter.Success(map[string]string{"path": path}, "Wrote "+path)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cli.AddOutputFlags(cmd)
	return cmd
}

// PathCmd prints where the config file is read from
func PathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.NewFormatter(cmd)

			path, err := config.Path()
			if err != nil {
				return formatter.Fail(err, "")
			}

			_, statErr := os.Stat(path)
			data := map[string]any{"path": path, "exists": statErr == nil}
			if formatter.Quiet {
				_, err := fmt.Fprintln(formatter.Out, path)
				return err
			}
			return formatter.Success(data, path)
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}
