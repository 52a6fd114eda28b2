package task

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/models"
	taskservice "github.com/thenoetrevino/kanban/internal/services/task"
	"github.com/thenoetrevino/kanban/internal/user"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task's fields",
		Long: `Update the title, description, assignee or priority of a task.
Only the flags you pass are changed. Use 'kanban task move' to change
its column or position.`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New task title")
	cmd.Flags().String("description", "", "New task description (use - for stdin)")
	cmd.Flags().String("assignee", "", "New assignee (@me for the current user)")
	cmd.Flags().String("priority", "", "New priority: low, medium, high (empty clears it)")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	taskID, err := cli.ParseTaskID(args[0])
	if err != nil {
		return formatter.Reject(cli.ExitUsage, "INVALID_TASK_ID", err,
			"Usage: kanban task update <id> [--title=...]")
	}

	req := taskservice.UpdateTaskRequest{TaskID: taskID}
	flags := cmd.Flags()
	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		req.Title = &title
	}
	if flags.Changed("description") {
		raw, _ := flags.GetString("description")
		description, err := cli.ReadDescription(raw, cmd.InOrStdin())
		if err != nil {
			return formatter.Reject(cli.ExitDataErr, "STDIN_READ_ERROR", err, "")
		}
		req.Description = &description
	}
	if flags.Changed("assignee") {
		assignee, _ := flags.GetString("assignee")
		assignee = user.ResolveAssignee(assignee)
		req.Assignee = &assignee
	}
	if flags.Changed("priority") {
		raw, _ := flags.GetString("priority")
		priority, err := models.ParsePriority(raw)
		if err != nil {
			return formatter.Fail(err, "Valid priorities are: low, medium, high")
		}
		req.Priority = &priority
	}

	if req.Title == nil && req.Description == nil && req.Assignee == nil && req.Priority == nil {
		return formatter.Reject(cli.ExitUsage, "NO_UPDATES", errors.New("nothing to update"),
			"Pass at least one of --title, --description, --assignee, --priority")
	}

	cliInstance, release, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer release()

	task, err := cliInstance.App.TaskService.UpdateTask(ctx, req)
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(task, fmt.Sprintf("Updated task #%d %q", task.ID, task.Title))
}
