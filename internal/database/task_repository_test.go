package database

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/reorder"
)

func TestInsertAndGetTask(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	task := &models.Task{
		Title:       "Write docs",
		Description: "README and examples",
		Status:      models.StatusTodo,
		Position:    0,
		Assignee:    "sam",
		Priority:    models.PriorityHigh,
	}
	if err := repo.InsertTask(ctx, task); err != nil {
		t.Fatalf("Failed to insert task: %v", err)
	}
	if task.ID == 0 {
		t.Fatal("Expected ID to be assigned")
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("Failed to get task: %v", err)
	}
	if got.Title != task.Title || got.Description != task.Description || got.Assignee != "sam" {
		t.Errorf("unexpected payload: %+v", got)
	}
	if got.Status != models.StatusTodo || got.Position != 0 || got.Priority != models.PriorityHigh {
		t.Errorf("unexpected ordering fields: %+v", got)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.GetTask(context.Background(), 999)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestListTasks_BoardOrder(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	done := seedColumn(t, repo, models.StatusDone, "d0")
	todo := seedColumn(t, repo, models.StatusTodo, "t0", "t1")
	doing := seedColumn(t, repo, models.StatusInProgress, "p0")

	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("Failed to list tasks: %v", err)
	}

	var got []int64
	for _, task := range tasks {
		got = append(got, task.ID)
	}
	expected := []int64{todo[0].ID, todo[1].ID, doing[0].ID, done[0].ID}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestCountTasks(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	seedColumn(t, repo, models.StatusTodo, "a", "b", "c")
	seedColumn(t, repo, models.StatusDone, "d")

	n, err := repo.CountTasksByStatus(ctx, models.StatusTodo)
	if err != nil || n != 3 {
		t.Errorf("Expected 3 TODO tasks, got %d (%v)", n, err)
	}

	counts, err := repo.CountTasksPerStatus(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	expected := map[models.Status]int{models.StatusTodo: 3, models.StatusInProgress: 0, models.StatusDone: 1}
	if !reflect.DeepEqual(counts, expected) {
		t.Errorf("Expected %v, got %v", expected, counts)
	}
}

func TestUpdateTaskFields(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	tasks := seedColumn(t, repo, models.StatusTodo, "a", "b")

	fields := models.TaskFields{Title: "b2", Description: "more", Assignee: "lee", Priority: models.PriorityLow}
	if err := repo.UpdateTaskFields(ctx, tasks[1].ID, fields); err != nil {
		t.Fatalf("Failed to update: %v", err)
	}

	got, _ := repo.GetTask(ctx, tasks[1].ID)
	if got.Fields() != fields {
		t.Errorf("Expected %+v, got %+v", fields, got.Fields())
	}
	if got.Status != models.StatusTodo || got.Position != 1 {
		t.Errorf("payload update must not move the task: %s/%d", got.Status, got.Position)
	}

	if err := repo.UpdateTaskFields(ctx, 999, fields); !errors.Is(err, models.ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	if err := repo.DeleteTask(context.Background(), 42); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// ============================================================================
// SHIFT TESTS
// ============================================================================

func TestShiftPositions(t *testing.T) {
	tests := []struct {
		name     string
		shift    func(ids []int64) reorder.Shift
		moved    int64
		expected func(ids []int64) map[int64]int
	}{
		{
			name:  "down after",
			shift: func([]int64) reorder.Shift { return reorder.ShiftDownAfter(models.StatusTodo, 1) },
			moved: 2,
			expected: func(ids []int64) map[int64]int {
				return map[int64]int{ids[0]: 0, ids[1]: 1, ids[2]: 1, ids[3]: 2}
			},
		},
		{
			name:  "up from",
			shift: func([]int64) reorder.Shift { return reorder.ShiftUpFrom(models.StatusTodo, 2) },
			moved: 2,
			expected: func(ids []int64) map[int64]int {
				return map[int64]int{ids[0]: 0, ids[1]: 1, ids[2]: 3, ids[3]: 4}
			},
		},
		{
			name: "down in range excluding mover",
			shift: func(ids []int64) reorder.Shift {
				return reorder.ShiftDownInRange(models.StatusTodo, 1, 2).Excluding(ids[1])
			},
			moved: 1,
			expected: func(ids []int64) map[int64]int {
				return map[int64]int{ids[0]: 0, ids[1]: 1, ids[2]: 1, ids[3]: 3}
			},
		},
		{
			name:  "up in range",
			shift: func([]int64) reorder.Shift { return reorder.ShiftUpInRange(models.StatusTodo, 1, 2) },
			moved: 2,
			expected: func(ids []int64) map[int64]int {
				return map[int64]int{ids[0]: 0, ids[1]: 2, ids[2]: 3, ids[3]: 3}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository(setupTestDB(t))
			ctx := context.Background()

			tasks := seedColumn(t, repo, models.StatusTodo, "a", "b", "c", "d")
			other := seedColumn(t, repo, models.StatusDone, "x", "y", "z")
			ids := []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID, tasks[3].ID}

			n, err := repo.ShiftPositions(ctx, tt.shift(ids))
			if err != nil {
				t.Fatalf("Failed to shift: %v", err)
			}
			if n != tt.moved {
				t.Errorf("Expected %d rows moved, got %d", tt.moved, n)
			}

			for id, pos := range tt.expected(ids) {
				got, err := repo.GetTask(ctx, id)
				if err != nil {
					t.Fatalf("Failed to get task %d: %v", id, err)
				}
				if got.Position != pos {
					t.Errorf("task %d: expected position %d, got %d", id, pos, got.Position)
				}
			}

			// other columns never move
			for i, task := range other {
				got, _ := repo.GetTask(ctx, task.ID)
				if got.Position != i {
					t.Errorf("DONE task %d moved to %d", task.ID, got.Position)
				}
			}
		})
	}
}

func TestShiftPositions_EmptyRange(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	seedColumn(t, repo, models.StatusTodo, "a", "b")

	n, err := repo.ShiftPositions(context.Background(), reorder.ShiftDownInRange(models.StatusTodo, 2, 1))
	if err != nil || n != 0 {
		t.Errorf("Expected no-op, got %d rows (%v)", n, err)
	}
}

// ============================================================================
// TRANSACTION TESTS
// ============================================================================

func TestWithinTx_RollsBackOnError(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	tasks := seedColumn(t, repo, models.StatusTodo, "a", "b", "c")

	boom := errors.New("boom")
	err := repo.WithinTx(ctx, func(store TaskStore) error {
		if err := store.DeleteTask(ctx, tasks[0].ID); err != nil {
			return err
		}
		if _, err := store.ShiftPositions(ctx, reorder.ShiftDownAfter(models.StatusTodo, 0)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}

	got := columnOrder(t, repo, models.StatusTodo)
	expected := []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected untouched column %v, got %v", expected, got)
	}
}

func TestWithinTx_Commits(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	tasks := seedColumn(t, repo, models.StatusTodo, "a", "b", "c")

	err := repo.WithinTx(ctx, func(store TaskStore) error {
		if err := store.DeleteTask(ctx, tasks[1].ID); err != nil {
			return err
		}
		_, err := store.ShiftPositions(ctx, reorder.ShiftDownAfter(models.StatusTodo, 1))
		return err
	})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	got := columnOrder(t, repo, models.StatusTodo)
	expected := []int64{tasks[0].ID, tasks[2].ID}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestWithinTx_Nested(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	err := repo.WithinTx(ctx, func(outer TaskStore) error {
		tx, ok := outer.(Transactor)
		if !ok {
			t.Fatal("tx-bound store should still be a Transactor")
		}
		return tx.WithinTx(ctx, func(inner TaskStore) error {
			return inner.InsertTask(ctx, &models.Task{Title: "nested", Status: models.StatusDone})
		})
	})
	if err != nil {
		t.Fatalf("nested transaction failed: %v", err)
	}

	n, _ := repo.CountTasksByStatus(ctx, models.StatusDone)
	if n != 1 {
		t.Errorf("Expected 1 task, got %d", n)
	}
}

// ============================================================================
// PERSISTENCE TESTS
// ============================================================================

func TestPersistenceAcrossRestart(t *testing.T) {
	ctx := context.Background()
	db, path := setupTestDBFile(t)
	repo := NewRepository(db)
	tasks := seedColumn(t, repo, models.StatusInProgress, "a", "b")

	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close database: %v", err)
	}

	// migrations are idempotent on reopen
	reopened, err := InitDB(ctx, Options{Driver: DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer reopened.Close()

	got := columnOrder(t, NewRepository(reopened), models.StatusInProgress)
	expected := []int64{tasks[0].ID, tasks[1].ID}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v after restart, got %v", expected, got)
	}
}

func TestMigrationStatus(t *testing.T) {
	db := setupTestDB(t)

	states, err := MigrationStatus(context.Background(), db)
	if err != nil {
		t.Fatalf("Failed to read status: %v", err)
	}
	if len(states) == 0 {
		t.Fatal("Expected at least one migration")
	}
	for _, s := range states {
		if !s.Applied {
			t.Errorf("migration %d should be applied", s.Version)
		}
	}
}

func TestInitDB_UnknownDriver(t *testing.T) {
	if _, err := InitDB(context.Background(), Options{Driver: "oracle"}); err == nil {
		t.Error("Expected error for unknown driver")
	}
}
