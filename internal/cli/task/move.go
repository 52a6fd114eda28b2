package task

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/models"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <status> [position]",
		Short: "Move a task to a column and position",
		Long: `Move a task to a position in a column. Positions are zero-based; a
position past the end of the column puts the task last. Without a
position the task goes to the end of the column.

Examples:
  # Start working on task 4
  kanban task move 4 in-progress

  # Put task 4 at the top of its column
  kanban task move 4 todo 0

  # JSON output for agents
  kanban task move 4 done --json
`,
		Args: cobra.RangeArgs(2, 3),
		RunE: runMove,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	taskID, err := cli.ParseTaskID(args[0])
	if err != nil {
		return formatter.Reject(cli.ExitUsage, "INVALID_TASK_ID", err,
			"Usage: kanban task move <id> <status> [position]")
	}
	status, err := models.ParseStatus(args[1])
	if err != nil {
		return formatter.Fail(err, "Valid statuses are: todo, in-progress, done")
	}
	// clamped to the end of the column
	position := math.MaxInt32
	if len(args) == 3 {
		if position, err = cli.ParsePosition(args[2]); err != nil {
			return formatter.Reject(cli.ExitCode(err), "INVALID_POSITION", err, "")
		}
	}

	cliInstance, release, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer release()

	tasks := cliInstance.App.TaskService
	if err := tasks.MoveTask(ctx, taskID, status, position); err != nil {
		return formatter.Fail(err, "")
	}
	task, err := tasks.GetTask(ctx, taskID)
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(task, fmt.Sprintf("Moved task #%d to %s at position %d",
		task.ID, task.Status.DisplayName(), task.Position))
}
