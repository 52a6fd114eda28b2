package task

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/models"
	taskservice "github.com/thenoetrevino/kanban/internal/services/task"
	"github.com/thenoetrevino/kanban/internal/testutil"
	testutilcli "github.com/thenoetrevino/kanban/internal/testutil/cli"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestShowTaskCommand(t *testing.T) {
	app := testutil.SetupTestApp(t)
	task, err := app.TaskService.CreateTask(context.Background(), taskservice.CreateTaskRequest{
		Title:       "Document the API",
		Description: "Cover the **move** endpoint",
		Status:      models.StatusInProgress,
		Assignee:    "robin",
		Priority:    models.PriorityMedium,
	})
	require.NoError(t, err)

	t.Run("human card", func(t *testing.T) {
		res, err := testutilcli.ExecuteCLICommand(t, app, ShowCmd(), []string{itoa(task.ID)})
		require.NoError(t, err)
		for _, want := range []string{"Document the API", "In Progress", "robin", "MEDIUM", "Description", "endpoint"} {
			assert.Contains(t, res.Stdout, want)
		}
	})

	t.Run("json", func(t *testing.T) {
		res, err := testutilcli.ExecuteCLICommand(t, app, ShowCmd(), []string{itoa(task.ID), "--json"})
		require.NoError(t, err)
		data := testutilcli.ParseJSON(t, res.Stdout)["data"].(map[string]any)
		assert.Equal(t, float64(task.ID), data["id"])
		assert.Equal(t, "Cover the **move** endpoint", data["description"])
	})

	t.Run("quiet", func(t *testing.T) {
		res, err := testutilcli.ExecuteCLICommand(t, app, ShowCmd(), []string{itoa(task.ID), "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, itoa(task.ID)+"\n", res.Stdout)
	})
}

func TestShowTaskCommand_Errors(t *testing.T) {
	app := testutil.SetupTestApp(t)

	tests := []struct {
		name     string
		args     []string
		exitCode int
	}{
		{"not found", []string{"404"}, cli.ExitNotFound},
		{"bad id", []string{"abc"}, cli.ExitUsage},
		{"zero id", []string{"0"}, cli.ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := testutilcli.ExecuteCLICommand(t, app, ShowCmd(), tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, cli.ExitCode(err))
			assert.Contains(t, res.Stderr, "Error:")
		})
	}
}
