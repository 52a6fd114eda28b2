package task

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/models"
	taskservice "github.com/thenoetrevino/kanban/internal/services/task"
	"github.com/thenoetrevino/kanban/internal/user"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task at the end of a column.

Examples:
  # Simple task (human-readable output)
  kanban task create --title="Fix bug"

  # JSON output for agents
  kanban task create --title="Fix bug" --status=in-progress --json

  # Quiet mode for bash capture
  TASK_ID=$(kanban task create --title="Fix bug" --quiet)

  # Description from stdin
  cat notes.md | kanban task create --title="Write notes" --description=-
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Task title (required)")
	_ = cmd.MarkFlagRequired("title")

	cmd.Flags().String("description", "", "Task description (use - for stdin)")
	cmd.Flags().String("status", string(models.StatusTodo), "Column: todo, in-progress, done")
	cmd.Flags().String("assignee", "", "Assignee (@me for the current user)")
	cmd.Flags().String("priority", "", "Priority: low, medium, high")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	title, _ := cmd.Flags().GetString("title")
	rawDescription, _ := cmd.Flags().GetString("description")
	rawStatus, _ := cmd.Flags().GetString("status")
	assignee, _ := cmd.Flags().GetString("assignee")
	rawPriority, _ := cmd.Flags().GetString("priority")

	status, err := models.ParseStatus(rawStatus)
	if err != nil {
		return formatter.Fail(err, "Valid statuses are: todo, in-progress, done")
	}
	priority, err := models.ParsePriority(rawPriority)
	if err != nil {
		return formatter.Fail(err, "Valid priorities are: low, medium, high")
	}
	description, err := cli.ReadDescription(rawDescription, cmd.InOrStdin())
	if err != nil {
		return formatter.Reject(cli.ExitDataErr, "STDIN_READ_ERROR", err, "")
	}

	cliInstance, release, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer release()

	task, err := cliInstance.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Title:       title,
		Description: description,
		Status:      status,
		Assignee:    user.ResolveAssignee(assignee),
		Priority:    priority,
	})
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(task, fmt.Sprintf("Created task #%d %q in %s at position %d",
		task.ID, task.Title, task.Status.DisplayName(), task.Position))
}
