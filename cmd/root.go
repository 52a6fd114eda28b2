// Package cmd wires the kanban command tree
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/cli/board"
	"github.com/thenoetrevino/kanban/internal/cli/migrate"
	"github.com/thenoetrevino/kanban/internal/cli/server"
	"github.com/thenoetrevino/kanban/internal/cli/setup"
	"github.com/thenoetrevino/kanban/internal/cli/task"
	"github.com/thenoetrevino/kanban/internal/config"
)

var rootCmd = NewRootCmd()

// NewRootCmd builds the full command tree
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kanban",
		Short: "Kanban - a task board with ordered columns",
		Long: `Kanban keeps tasks in three columns (TODO, IN_PROGRESS, DONE), each
ordered by a dense zero-based position. Run 'kanban serve' for the REST API
or use the task commands directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				return os.Setenv(config.EnvConfigPath, path)
			}
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/kanban/config.yaml)")

	cmd.AddCommand(task.TaskCmd())
	cmd.AddCommand(board.BoardCmd())
	cmd.AddCommand(board.DoctorCmd())
	cmd.AddCommand(server.ServeCmd())
	cmd.AddCommand(migrate.MigrateCmd())
	cmd.AddCommand(setup.ConfigCmd())

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(c, err)
	})
	return cmd
}

// Execute runs the command tree. The returned error carries the exit code
// (see cli.ExitCode) and has already been printed.
func Execute() error {
	return execute(rootCmd)
}

func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// argument and flag errors raised by cobra itself
		return usageError(cmd, err)
	}
	return err
}

func usageError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
	fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.CommandPath())
	return cli.WithExitCode(cli.ExitUsage, err)
}
