package task

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/reorder"
)

// moveResult reports what a move did
type moveResult struct {
	Plan    reorder.Plan
	Shifted int64
}

// mover sequences the store calls for position changes. It holds no state
// between calls and always runs inside a transaction opened by the service.
type mover struct {
	strategy Strategy
}

// move relocates a task. The task's own row is always the last write.
func (m mover) move(ctx context.Context, store database.TaskStore, id int64, to reorder.Placement) (moveResult, error) {
	task, err := store.GetTask(ctx, id)
	if err != nil {
		return moveResult{}, err
	}

	size, err := store.CountTasksByStatus(ctx, to.Status)
	if err != nil {
		return moveResult{}, err
	}

	from := reorder.Placement{Status: task.Status, Position: task.Position}
	plan := reorder.PlanMove(from, to, size)
	if plan.Kind == reorder.KindNoop {
		return moveResult{Plan: plan}, nil
	}

	var shifted int64
	if m.strategy == StrategyRewrite {
		shifted, err = m.rewriteMove(ctx, store, task, plan)
	} else {
		shifted, err = m.shiftMove(ctx, store, id, plan)
	}
	if err != nil {
		return moveResult{}, err
	}
	return moveResult{Plan: plan, Shifted: shifted}, nil
}

// compact closes the gap a removed task left at p
func (m mover) compact(ctx context.Context, store database.TaskStore, p reorder.Placement) (int64, error) {
	if m.strategy == StrategyRewrite {
		tasks, err := store.ListTasksByStatus(ctx, p.Status)
		if err != nil {
			return 0, err
		}
		return rewriteColumn(ctx, store, p.Status, tasks, idsOf(tasks), 0)
	}
	return store.ShiftPositions(ctx, reorder.PlanDelete(p))
}

func (m mover) shiftMove(ctx context.Context, store database.TaskStore, id int64, plan reorder.Plan) (int64, error) {
	var shifted int64
	for _, shift := range plan.Shifts {
		n, err := store.ShiftPositions(ctx, shift.Excluding(id))
		if err != nil {
			return 0, err
		}
		shifted += n
	}

	if err := store.SetTaskPlacement(ctx, id, plan.Target.Status, plan.Target.Position); err != nil {
		return 0, err
	}
	return shifted, nil
}

func (m mover) rewriteMove(ctx context.Context, store database.TaskStore, task *models.Task, plan reorder.Plan) (int64, error) {
	source, err := store.ListTasksByStatus(ctx, task.Status)
	if err != nil {
		return 0, err
	}

	var shifted int64
	if plan.Kind == reorder.KindSameColumn {
		order := reorder.Reinsert(idsOf(source), task.ID, plan.Target.Position)
		shifted, err = rewriteColumn(ctx, store, task.Status, source, order, task.ID)
		if err != nil {
			return 0, err
		}
	} else {
		n, err := rewriteColumn(ctx, store, task.Status, source, reorder.Remove(idsOf(source), task.ID), task.ID)
		if err != nil {
			return 0, err
		}
		shifted += n

		target, err := store.ListTasksByStatus(ctx, plan.Target.Status)
		if err != nil {
			return 0, err
		}
		order := reorder.Reinsert(idsOf(target), task.ID, plan.Target.Position)
		n, err = rewriteColumn(ctx, store, plan.Target.Status, target, order, task.ID)
		if err != nil {
			return 0, err
		}
		shifted += n
	}

	if err := store.SetTaskPlacement(ctx, task.ID, plan.Target.Status, plan.Target.Position); err != nil {
		return 0, err
	}
	return shifted, nil
}

// rewriteColumn writes the index of every task in order whose position
// differs from current. skip is left for the caller to write last.
func rewriteColumn(ctx context.Context, store database.TaskStore, status models.Status,
	current []*models.Task, order []int64, skip int64) (int64, error) {
	before := make(map[int64]int, len(current))
	for _, t := range current {
		before[t.ID] = t.Position
	}

	next := reorder.Renumber(order)
	var written int64
	// walk in list order so writes are deterministic
	for _, id := range order {
		if id == skip {
			continue
		}
		if old, ok := before[id]; ok && old == next[id] {
			continue
		}
		if err := store.SetTaskPlacement(ctx, id, status, next[id]); err != nil {
			return 0, fmt.Errorf("failed to rewrite position of task %d: %w", id, err)
		}
		written++
	}
	return written, nil
}

func idsOf(tasks []*models.Task) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}
