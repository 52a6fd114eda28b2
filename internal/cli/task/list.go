package task

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List the board, or a single column with --status.

Human-readable output draws the columns side by side. --quiet prints one
task ID per line in board order.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("status", "", "Only list this column: todo, in-progress, done")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	rawStatus, _ := cmd.Flags().GetString("status")
	var status models.Status
	if rawStatus != "" {
		var err error
		if status, err = models.ParseStatus(rawStatus); err != nil {
			return formatter.Fail(err, "Valid statuses are: todo, in-progress, done")
		}
	}

	cliInstance, release, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer release()

	var tasks []*models.Task
	if status != "" {
		tasks, err = cliInstance.App.TaskService.ListTasksByStatus(ctx, status)
	} else {
		tasks, err = cliInstance.App.TaskService.ListTasks(ctx)
	}
	if err != nil {
		return formatter.Fail(err, "")
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}

	switch {
	case formatter.Quiet:
		return printIDs(formatter.Out, tasks)
	case formatter.JSON:
		return formatter.Success(tasks, "")
	case status != "":
		return formatter.Success(tasks, cli.RenderColumn(status, tasks))
	default:
		return formatter.Success(tasks, cli.RenderBoard(tasks))
	}
}

func printIDs(w io.Writer, tasks []*models.Task) error {
	for _, t := range tasks {
		if _, err := fmt.Fprintf(w, "%d\n", t.ID); err != nil {
			return err
		}
	}
	return nil
}
