package task

import (
	"context"
	"testing"

	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/reorder"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// setupTestRepo creates an in-memory database and runs migrations
func setupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.Options{
		Driver: database.DriverSQLite,
		Path:   database.MemoryPath,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return database.NewRepository(db)
}

// setupTestService returns a service over a fresh database
func setupTestService(t *testing.T, opts ...Option) Service {
	t.Helper()
	return NewService(setupTestRepo(t), opts...)
}

// createTasks appends tasks with the given titles to a column
func createTasks(t *testing.T, svc Service, status models.Status, titles ...string) []*models.Task {
	t.Helper()
	tasks := make([]*models.Task, 0, len(titles))
	for _, title := range titles {
		task, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: title, Status: status})
		if err != nil {
			t.Fatalf("Failed to create %q: %v", title, err)
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// columnIDs returns a column's task ids in order and fails if it is not dense
func columnIDs(t *testing.T, svc Service, status models.Status) []int64 {
	t.Helper()
	tasks, err := svc.ListTasksByStatus(context.Background(), status)
	if err != nil {
		t.Fatalf("Failed to list %s: %v", status, err)
	}
	positions := make([]int, 0, len(tasks))
	ids := make([]int64, 0, len(tasks))
	for _, task := range tasks {
		positions = append(positions, task.Position)
		ids = append(ids, task.ID)
	}
	if err := reorder.CheckDense(positions); err != nil {
		t.Fatalf("column %s: %v", status, err)
	}
	return ids
}

// ============================================================================
// STORE WRAPPERS
// ============================================================================

// countingStore counts the write statements issued inside transactions
type countingStore struct {
	database.DataStore
	writes *int
}

func newCountingStore(inner database.DataStore) countingStore {
	return countingStore{DataStore: inner, writes: new(int)}
}

func (c countingStore) WithinTx(ctx context.Context, fn func(database.TaskStore) error) error {
	return c.DataStore.WithinTx(ctx, func(store database.TaskStore) error {
		return fn(countingTaskStore{TaskStore: store, writes: c.writes})
	})
}

type countingTaskStore struct {
	database.TaskStore
	writes *int
}

func (c countingTaskStore) InsertTask(ctx context.Context, task *models.Task) error {
	*c.writes++
	return c.TaskStore.InsertTask(ctx, task)
}

func (c countingTaskStore) UpdateTaskFields(ctx context.Context, id int64, fields models.TaskFields) error {
	*c.writes++
	return c.TaskStore.UpdateTaskFields(ctx, id, fields)
}

func (c countingTaskStore) DeleteTask(ctx context.Context, id int64) error {
	*c.writes++
	return c.TaskStore.DeleteTask(ctx, id)
}

func (c countingTaskStore) SetTaskPlacement(ctx context.Context, id int64, status models.Status, position int) error {
	*c.writes++
	return c.TaskStore.SetTaskPlacement(ctx, id, status, position)
}

func (c countingTaskStore) ShiftPositions(ctx context.Context, shift reorder.Shift) (int64, error) {
	if !shift.Empty() {
		*c.writes++
	}
	return c.TaskStore.ShiftPositions(ctx, shift)
}

// conflictingStore fails the first n transactions with a conflict
type conflictingStore struct {
	database.DataStore
	remaining *int
	attempts  *int
}

func newConflictingStore(inner database.DataStore, n int) conflictingStore {
	return conflictingStore{DataStore: inner, remaining: &n, attempts: new(int)}
}

func (c conflictingStore) WithinTx(ctx context.Context, fn func(database.TaskStore) error) error {
	*c.attempts++
	return c.DataStore.WithinTx(ctx, func(store database.TaskStore) error {
		if err := fn(store); err != nil {
			return err
		}
		if *c.remaining > 0 {
			*c.remaining--
			// returning an error rolls back everything fn wrote
			return models.ErrTransactionConflict
		}
		return nil
	})
}
