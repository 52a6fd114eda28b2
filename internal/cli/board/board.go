// Package board implements the board-wide commands: column summaries and
// the ordering doctor
package board

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/cli/styles"
	"github.com/thenoetrevino/kanban/internal/tui"
)

// BoardCmd returns the board summary command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show how many tasks each column holds",
		Long: `Show how many tasks each column holds.

With --interactive the whole board opens in the terminal, where cards can be
moved between and within columns or deleted.

Examples:
  kanban board
  kanban board --json
  kanban board --interactive
`,
		Args: cobra.NoArgs,
		RunE: runBoard,
	}

	cmd.Flags().BoolP("interactive", "i", false, "Open the board in the terminal")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	interactive, _ := cmd.Flags().GetBool("interactive")

	if interactive && (formatter.JSON || formatter.Quiet) {
		return formatter.Reject(cli.ExitUsage, "INVALID_FLAGS",
			errors.New("--interactive cannot be combined with --json or --quiet"), "")
	}

	cliInstance, release, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer release()

	if interactive {
		program := tea.NewProgram(tui.New(ctx, cliInstance.App.TaskService),
			tea.WithContext(ctx),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()),
		)
		if _, err := program.Run(); err != nil {
			return formatter.Fail(fmt.Errorf("interactive board: %w", err), "")
		}
		return nil
	}

	summaries, err := cliInstance.App.ColumnService.Summaries(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}

	if formatter.Quiet {
		for _, s := range summaries {
			fmt.Fprintf(formatter.Out, "%s %d\n", s.Status, s.Count)
		}
		return nil
	}

	var b strings.Builder
	for _, s := range summaries {
		fmt.Fprintf(&b, "%s: %s\n", styles.RenderStatus(s.Status), styles.ValueStyle.Render(fmt.Sprint(s.Count)))
	}
	return formatter.Success(summaries, strings.TrimRight(b.String(), "\n"))
}

func openCLI(cmd *cobra.Command, formatter *cli.OutputFormatter) (*cli.CLI, func(), error) {
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return nil, nil, cli.WithExitCode(cli.ExitFailure, err)
	}
	return cliInstance, func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}, nil
}
