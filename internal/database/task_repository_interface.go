package database

import (
	"context"

	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/reorder"
)

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	ListTasks(ctx context.Context) ([]*models.Task, error)
	ListTasksByStatus(ctx context.Context, status models.Status) ([]*models.Task, error)
	CountTasksByStatus(ctx context.Context, status models.Status) (int, error)
	CountTasksPerStatus(ctx context.Context) (map[models.Status]int, error)
}

// TaskWriter defines payload and lifecycle writes for tasks.
type TaskWriter interface {
	InsertTask(ctx context.Context, task *models.Task) error
	UpdateTaskFields(ctx context.Context, id int64, fields models.TaskFields) error
	DeleteTask(ctx context.Context, id int64) error
}

// TaskPositioner defines the writes that change a task's column or rank.
type TaskPositioner interface {
	SetTaskPlacement(ctx context.Context, id int64, status models.Status, position int) error
	ShiftPositions(ctx context.Context, shift reorder.Shift) (int64, error)
}

// TaskStore combines all task operations. Every method runs against whatever
// the store is bound to: the pool, or the transaction inside WithinTx.
type TaskStore interface {
	TaskReader
	TaskWriter
	TaskPositioner
}

// Transactor runs a unit of work atomically. The TaskStore handed to fn is
// bound to the transaction; fn's error rolls everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(TaskStore) error) error
}

// DataStore is everything the services need from the database.
type DataStore interface {
	TaskStore
	Transactor
	Ping(ctx context.Context) error
}
