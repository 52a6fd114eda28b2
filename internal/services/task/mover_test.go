package task

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/thenoetrevino/kanban/internal/models"
)

var strategies = []Strategy{StrategyShift, StrategyRewrite}

func TestMoveTask_SameColumnDown(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			svc := setupTestService(t, WithStrategy(strategy))

			// Scenario A: T1 T2 T3, move T1 to 2 -> T2 T3 T1
			tasks := createTasks(t, svc, models.StatusTodo, "T1", "T2", "T3")
			if err := svc.MoveTask(context.Background(), tasks[0].ID, models.StatusTodo, 2); err != nil {
				t.Fatalf("Failed to move: %v", err)
			}

			got := columnIDs(t, svc, models.StatusTodo)
			expected := []int64{tasks[1].ID, tasks[2].ID, tasks[0].ID}
			if !reflect.DeepEqual(got, expected) {
				t.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

func TestMoveTask_SameColumnUp(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			svc := setupTestService(t, WithStrategy(strategy))

			tasks := createTasks(t, svc, models.StatusTodo, "T1", "T2", "T3", "T4")
			if err := svc.MoveTask(context.Background(), tasks[3].ID, models.StatusTodo, 1); err != nil {
				t.Fatalf("Failed to move: %v", err)
			}

			got := columnIDs(t, svc, models.StatusTodo)
			expected := []int64{tasks[0].ID, tasks[3].ID, tasks[1].ID, tasks[2].ID}
			if !reflect.DeepEqual(got, expected) {
				t.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

func TestMoveTask_CrossColumn(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			svc := setupTestService(t, WithStrategy(strategy))
			ctx := context.Background()

			// Scenario B: todo T1 T2, done empty; move T1 to done/0
			tasks := createTasks(t, svc, models.StatusTodo, "T1", "T2")
			if err := svc.MoveTask(ctx, tasks[0].ID, models.StatusDone, 0); err != nil {
				t.Fatalf("Failed to move: %v", err)
			}

			if got := columnIDs(t, svc, models.StatusTodo); !reflect.DeepEqual(got, []int64{tasks[1].ID}) {
				t.Errorf("Expected TODO [T2], got %v", got)
			}
			if got := columnIDs(t, svc, models.StatusDone); !reflect.DeepEqual(got, []int64{tasks[0].ID}) {
				t.Errorf("Expected DONE [T1], got %v", got)
			}

			moved, err := svc.GetTask(ctx, tasks[0].ID)
			if err != nil {
				t.Fatalf("Failed to get task: %v", err)
			}
			if moved.Status != models.StatusDone || moved.Position != 0 {
				t.Errorf("Expected DONE/0, got %s/%d", moved.Status, moved.Position)
			}
		})
	}
}

func TestMoveTask_CrossColumnIntoMiddle(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			svc := setupTestService(t, WithStrategy(strategy))

			todo := createTasks(t, svc, models.StatusTodo, "T1", "T2", "T3")
			done := createTasks(t, svc, models.StatusDone, "D1", "D2")
			if err := svc.MoveTask(context.Background(), todo[1].ID, models.StatusDone, 1); err != nil {
				t.Fatalf("Failed to move: %v", err)
			}

			if got := columnIDs(t, svc, models.StatusTodo); !reflect.DeepEqual(got, []int64{todo[0].ID, todo[2].ID}) {
				t.Errorf("unexpected TODO column %v", got)
			}
			expected := []int64{done[0].ID, todo[1].ID, done[1].ID}
			if got := columnIDs(t, svc, models.StatusDone); !reflect.DeepEqual(got, expected) {
				t.Errorf("Expected DONE %v, got %v", expected, got)
			}
		})
	}
}

func TestMoveTask_NotFound(t *testing.T) {
	repo := setupTestRepo(t)
	store := newCountingStore(repo)
	svc := NewService(store)
	ctx := context.Background()

	tasks := createTasks(t, svc, models.StatusTodo, "T1")
	before := *store.writes

	// Scenario E
	err := svc.MoveTask(ctx, 999, models.StatusTodo, 0)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Expected ErrTaskNotFound, got %v", err)
	}
	if *store.writes != before {
		t.Errorf("Expected no writes, got %d", *store.writes-before)
	}
	if got := columnIDs(t, svc, models.StatusTodo); !reflect.DeepEqual(got, []int64{tasks[0].ID}) {
		t.Errorf("column changed: %v", got)
	}
}

func TestMoveTask_NoopWritesNothing(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			store := newCountingStore(setupTestRepo(t))
			svc := NewService(store, WithStrategy(strategy))
			ctx := context.Background()

			tasks := createTasks(t, svc, models.StatusInProgress, "a", "b", "c")
			before := *store.writes

			if err := svc.MoveTask(ctx, tasks[1].ID, models.StatusInProgress, 1); err != nil {
				t.Fatalf("Failed to move: %v", err)
			}
			if *store.writes != before {
				t.Errorf("noop move wrote %d statements", *store.writes-before)
			}

			expected := []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID}
			if got := columnIDs(t, svc, models.StatusInProgress); !reflect.DeepEqual(got, expected) {
				t.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

func TestMoveTask_MinimalWrites(t *testing.T) {
	store := newCountingStore(setupTestRepo(t))
	svc := NewService(store)
	ctx := context.Background()

	tasks := createTasks(t, svc, models.StatusTodo, "a", "b", "c", "d", "e")
	before := *store.writes

	if err := svc.MoveTask(ctx, tasks[1].ID, models.StatusTodo, 3); err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	// one range shift plus the task's own row
	if got := *store.writes - before; got != 2 {
		t.Errorf("Expected 2 write statements, got %d", got)
	}
}

func TestMoveTask_Clamp(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			ctx := context.Background()

			run := func(position int) ([]int64, []int64) {
				svc := setupTestService(t, WithStrategy(strategy))
				createTasks(t, svc, models.StatusTodo, "T1", "T2")
				createTasks(t, svc, models.StatusDone, "D1", "D2", "D3")
				if err := svc.MoveTask(ctx, 1, models.StatusDone, position); err != nil {
					t.Fatalf("Failed to move to %d: %v", position, err)
				}
				return columnIDs(t, svc, models.StatusTodo), columnIDs(t, svc, models.StatusDone)
			}

			// column size of DONE is 3
			todoAtSize, doneAtSize := run(3)
			for _, p := range []int{4, 50} {
				todo, done := run(p)
				if !reflect.DeepEqual(todo, todoAtSize) || !reflect.DeepEqual(done, doneAtSize) {
					t.Errorf("move to %d: expected %v/%v, got %v/%v", p, todoAtSize, doneAtSize, todo, done)
				}
			}
			if doneAtSize[len(doneAtSize)-1] != 1 {
				t.Errorf("Expected task 1 appended to DONE, got %v", doneAtSize)
			}
		})
	}
}

func TestMoveTask_SameColumnClamp(t *testing.T) {
	svc := setupTestService(t)
	tasks := createTasks(t, svc, models.StatusTodo, "T1", "T2", "T3")

	if err := svc.MoveTask(context.Background(), tasks[0].ID, models.StatusTodo, 99); err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	expected := []int64{tasks[1].ID, tasks[2].ID, tasks[0].ID}
	if got := columnIDs(t, svc, models.StatusTodo); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestMoveTask_Validation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()
	task := createTasks(t, svc, models.StatusTodo, "T1")[0]

	if err := svc.MoveTask(ctx, task.ID, "ARCHIVED", 0); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
	if err := svc.MoveTask(ctx, task.ID, models.StatusDone, -1); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Expected ErrInvalidPosition, got %v", err)
	}
	if err := svc.MoveTask(ctx, 0, models.StatusDone, 0); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("Expected invalid argument, got %v", err)
	}
}

// ============================================================================
// PROPERTY TESTS
// ============================================================================

// boardSnapshot maps each task id to its placement
type boardSnapshot map[int64]struct {
	Status   models.Status
	Position int
}

func snapshot(t *testing.T, svc Service) boardSnapshot {
	t.Helper()
	for _, s := range models.Statuses {
		columnIDs(t, svc, s) // density check
	}
	tasks, err := svc.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	snap := boardSnapshot{}
	for _, task := range tasks {
		snap[task.ID] = struct {
			Status   models.Status
			Position int
		}{task.Status, task.Position}
	}
	return snap
}

// runRandomOps applies a seeded sequence of creates, moves and deletes
func runRandomOps(t *testing.T, svc Service, seed int64, steps int) {
	t.Helper()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(seed))

	for step := 0; step < steps; step++ {
		tasks, err := svc.ListTasks(ctx)
		if err != nil {
			t.Fatalf("step %d: list failed: %v", step, err)
		}
		status := models.Statuses[rng.Intn(len(models.Statuses))]

		switch op := rng.Intn(10); {
		case op < 3 || len(tasks) == 0:
			if _, err := svc.CreateTask(ctx, CreateTaskRequest{Title: "task", Status: status}); err != nil {
				t.Fatalf("step %d: create failed: %v", step, err)
			}
		case op < 8:
			task := tasks[rng.Intn(len(tasks))]
			position := rng.Intn(len(tasks) + 2)
			if err := svc.MoveTask(ctx, task.ID, status, position); err != nil {
				t.Fatalf("step %d: move failed: %v", step, err)
			}
		default:
			task := tasks[rng.Intn(len(tasks))]
			if err := svc.DeleteTask(ctx, task.ID); err != nil {
				t.Fatalf("step %d: delete failed: %v", step, err)
			}
		}

		// the invariant holds after every single operation
		for _, s := range models.Statuses {
			columnIDs(t, svc, s)
		}
	}
}

func TestInvariant_RandomSequences(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			for seed := int64(1); seed <= 3; seed++ {
				svc := setupTestService(t, WithStrategy(strategy))
				runRandomOps(t, svc, seed, 150)
			}
		})
	}
}

func TestStrategies_ReachSameState(t *testing.T) {
	for seed := int64(10); seed < 13; seed++ {
		shift := setupTestService(t, WithStrategy(StrategyShift))
		rewrite := setupTestService(t, WithStrategy(StrategyRewrite))

		runRandomOps(t, shift, seed, 120)
		runRandomOps(t, rewrite, seed, 120)

		if a, b := snapshot(t, shift), snapshot(t, rewrite); !reflect.DeepEqual(a, b) {
			t.Fatalf("seed %d: strategies diverged\nshift:   %v\nrewrite: %v", seed, a, b)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy(""); err != nil || s != StrategyShift {
		t.Errorf("Expected default shift, got %q (%v)", s, err)
	}
	if s, err := ParseStrategy("Rewrite"); err != nil || s != StrategyRewrite {
		t.Errorf("Expected rewrite, got %q (%v)", s, err)
	}
	if _, err := ParseStrategy("bubble"); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("Expected invalid argument, got %v", err)
	}
}
