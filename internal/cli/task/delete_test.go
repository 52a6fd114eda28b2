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

func TestDeleteTaskCommand(t *testing.T) {
	app := testutil.SetupTestApp(t)
	t1 := testutil.CreateTestTask(t, app, models.StatusTodo, "T1")
	t2 := testutil.CreateTestTask(t, app, models.StatusTodo, "T2")
	t3 := testutil.CreateTestTask(t, app, models.StatusTodo, "T3")

	t.Run("declined confirmation keeps the task", func(t *testing.T) {
		res, err := testutilcli.ExecuteCLICommandWithInput(t, app, DeleteCmd(), []string{itoa(t2.ID)}, "n\n")
		require.NoError(t, err)
		assert.Contains(t, res.Stdout, "Cancelled")
		assert.Len(t, testutil.ColumnIDs(t, app, models.StatusTodo), 3)
	})

	t.Run("confirmed delete closes the gap", func(t *testing.T) {
		res, err := testutilcli.ExecuteCLICommandWithInput(t, app, DeleteCmd(), []string{itoa(t2.ID)}, "y\n")
		require.NoError(t, err)
		assert.Contains(t, res.Stdout, "Deleted task #"+itoa(t2.ID))
		assert.Equal(t, []int64{t1.ID, t3.ID}, testutil.ColumnIDs(t, app, models.StatusTodo))
	})

	t.Run("force skips confirmation", func(t *testing.T) {
		_, err := testutilcli.ExecuteCLICommand(t, app, DeleteCmd(), []string{itoa(t1.ID), "--force"})
		require.NoError(t, err)
		assert.Equal(t, []int64{t3.ID}, testutil.ColumnIDs(t, app, models.StatusTodo))
	})

	t.Run("json skips confirmation", func(t *testing.T) {
		res, err := testutilcli.ExecuteCLICommand(t, app, DeleteCmd(), []string{itoa(t3.ID), "--json"})
		require.NoError(t, err)
		assert.Equal(t, true, testutilcli.ParseJSON(t, res.Stdout)["success"])
		assert.Empty(t, testutil.ColumnIDs(t, app, models.StatusTodo))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := testutilcli.ExecuteCLICommand(t, app, DeleteCmd(), []string{itoa(t1.ID), "--force"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})
}
