// Package server implements the "kanban serve" command
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kanban/internal/cli"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API",
		Long: `Serve the task API until interrupted.

The listen address defaults to server.addr from the config file
(KANBAN_SERVER_ADDR in the environment).`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address, overrides server.addr")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return report(cmd, err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cliInstance.Config.Server.Addr
	}

	if err := serve(ctx, cliInstance, addr); err != nil {
		return report(cmd, err)
	}
	return nil
}

// report prints err and tags it so the root command does not print it again
func report(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
	return cli.WithExitCode(cli.ExitFailure, err)
}

func serve(ctx context.Context, c *cli.CLI, addr string) error {
	slog.Info("starting kanban api",
		"addr", addr,
		"driver", c.Config.Database.Driver,
		"strategy", c.Config.Board.ReorderStrategy)
	return c.App.HTTPServer().Run(ctx, addr)
}
