// Package migrate implements the "kanban migrate" commands
package migrate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/cli/styles"
	"github.com/thenoetrevino/kanban/internal/database"
)

// MigrateCmd returns the migrate parent command
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Manage the database schema.

Pending migrations are always applied when the store is opened, so
'migrate up' only reports the resulting state.`,
	}

	cmd.AddCommand(UpCmd())
	cmd.AddCommand(DownCmd())
	cmd.AddCommand(StatusCmd())

	return cmd
}

// UpCmd applies pending migrations
func UpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, func(c *cli.CLI, formatter *cli.OutputFormatter) error {
				return printStatus(cmd, c, formatter)
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// DownCmd rolls back the most recent migration
func DownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, func(c *cli.CLI, formatter *cli.OutputFormatter) error {
				if err := database.MigrateDown(cmd.Context(), c.App.DB()); err != nil {
					return formatter.Fail(err, "")
				}
				return printStatus(cmd, c, formatter)
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// StatusCmd lists migrations and whether they are applied
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, func(c *cli.CLI, formatter *cli.OutputFormatter) error {
				return printStatus(cmd, c, formatter)
			})
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func withCLI(cmd *cobra.Command, fn func(*cli.CLI, *cli.OutputFormatter) error) error {
	formatter := cli.NewFormatter(cmd)
	c, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return cli.WithExitCode(cli.ExitFailure, err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()
	return fn(c, formatter)
}

func printStatus(cmd *cobra.Command, c *cli.CLI, formatter *cli.OutputFormatter) error {
	states, err := database.MigrationStatus(cmd.Context(), c.App.DB())
	if err != nil {
		return formatter.Fail(err, "")
	}

	if formatter.Quiet {
		for _, s := range states {
			if s.Applied {
				fmt.Fprintln(formatter.Out, s.Version)
			}
		}
		return nil
	}

	var b strings.Builder
	for _, s := range states {
		state := styles.WarningStyle.Render("pending")
		if s.Applied {
			state = styles.SuccessStyle.Render("applied")
		}
		fmt.Fprintf(&b, "%05d %s %s\n", s.Version, s.Path, state)
	}
	return formatter.Success(states, strings.TrimRight(b.String(), "\n"))
}
