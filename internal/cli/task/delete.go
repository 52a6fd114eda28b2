package task

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kanban/internal/cli"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  "Delete a task by ID (requires confirmation unless --force, --json or --quiet).",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	force, _ := cmd.Flags().GetBool("force")

	taskID, err := cli.ParseTaskID(args[0])
	if err != nil {
		return formatter.Reject(cli.ExitUsage, "INVALID_TASK_ID", err,
			"Usage: kanban task delete <id>")
	}

	cliInstance, release, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer release()

	tasks := cliInstance.App.TaskService
	task, err := tasks.GetTask(ctx, taskID)
	if err != nil {
		return formatter.Fail(err, "Use 'kanban task list' to see existing tasks")
	}

	// Ask for confirmation unless force or machine-readable mode
	if !force && !formatter.Quiet && !formatter.JSON {
		fmt.Fprintf(formatter.Out, "Delete task #%d: '%s'? (y/N): ", taskID, task.Title)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(formatter.Out, "Cancelled")
			return nil
		}
	}

	if err := tasks.DeleteTask(ctx, taskID); err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(task, fmt.Sprintf("Deleted task #%d", taskID))
}
