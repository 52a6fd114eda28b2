package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/testutil"
	testutilcli "github.com/thenoetrevino/kanban/internal/testutil/cli"
)

func TestMoveTaskCommand(t *testing.T) {
	app := testutil.SetupTestApp(t)
	t1 := testutil.CreateTestTask(t, app, models.StatusTodo, "T1")
	t2 := testutil.CreateTestTask(t, app, models.StatusTodo, "T2")
	t3 := testutil.CreateTestTask(t, app, models.StatusTodo, "T3")
	d1 := testutil.CreateTestTask(t, app, models.StatusDone, "D1")

	t.Run("within a column", func(t *testing.T) {
		res, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), []string{itoa(t1.ID), "todo", "2"})
		require.NoError(t, err)
		assert.Contains(t, res.Stdout, "to To Do at position 2")
		assert.Equal(t, []int64{t2.ID, t3.ID, t1.ID}, testutil.ColumnIDs(t, app, models.StatusTodo))
	})

	t.Run("across columns", func(t *testing.T) {
		res, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), []string{itoa(t3.ID), "done", "0", "--json"})
		require.NoError(t, err)
		data := testutilcli.ParseJSON(t, res.Stdout)["data"].(map[string]any)
		assert.Equal(t, "DONE", data["status"])
		assert.Equal(t, float64(0), data["position"])

		assert.Equal(t, []int64{t2.ID, t1.ID}, testutil.ColumnIDs(t, app, models.StatusTodo))
		assert.Equal(t, []int64{t3.ID, d1.ID}, testutil.ColumnIDs(t, app, models.StatusDone))
	})

	t.Run("no position appends", func(t *testing.T) {
		res, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), []string{itoa(t2.ID), "done", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, itoa(t2.ID)+"\n", res.Stdout)
		assert.Equal(t, []int64{t3.ID, d1.ID, t2.ID}, testutil.ColumnIDs(t, app, models.StatusDone))
	})

	t.Run("position past the end is clamped", func(t *testing.T) {
		_, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), []string{itoa(t1.ID), "in-progress", "50"})
		require.NoError(t, err)
		assert.Equal(t, []int64{t1.ID}, testutil.ColumnIDs(t, app, models.StatusInProgress))
		assert.Empty(t, testutil.ColumnIDs(t, app, models.StatusTodo))
	})
}

func TestMoveTaskCommand_Errors(t *testing.T) {
	app := testutil.SetupTestApp(t)
	task := testutil.CreateTestTask(t, app, models.StatusTodo, "Task")

	tests := []struct {
		name     string
		args     []string
		exitCode int
	}{
		{"not found", []string{"999", "done"}, cli.ExitNotFound},
		{"bad status", []string{itoa(task.ID), "review"}, cli.ExitValidation},
		{"negative position", []string{itoa(task.ID), "done", "--", "-1"}, cli.ExitValidation},
		{"non numeric position", []string{itoa(task.ID), "done", "top"}, cli.ExitUsage},
		{"bad id", []string{"one", "done"}, cli.ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testutilcli.ExecuteCLICommand(t, app, MoveCmd(), tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, cli.ExitCode(err))
		})
	}

	// failed moves leave the board untouched
	assert.Equal(t, []int64{task.ID}, testutil.ColumnIDs(t, app, models.StatusTodo))
}
