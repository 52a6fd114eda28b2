package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/reorder"
)

const taskColumns = `id, title, description, status, position, assignee, priority, created_at, updated_at`

// ORDER BY clause that sorts statuses in board order rather than alphabetically
const boardOrder = `ORDER BY CASE status WHEN 'TODO' THEN 0 WHEN 'IN_PROGRESS' THEN 1 WHEN 'DONE' THEN 2 END, position, id`

// Repository is the sqlx implementation of DataStore. Queries are written
// with ? placeholders and rebound for the active driver.
type Repository struct {
	db *sqlx.DB
	// q is the pool, or the open transaction for a tx-bound copy
	q    sqlx.ExtContext
	inTx bool
	now  func() time.Time
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db:  db,
		q:   db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks that the store is reachable
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// WithinTx runs fn inside one transaction. Nested calls reuse the outer one.
func (r *Repository) WithinTx(ctx context.Context, fn func(TaskStore) error) error {
	if r.inTx {
		return fn(r)
	}
	return withTx(ctx, r.db, txOptions(r.db.DriverName()), func(tx *sqlx.Tx) error {
		return fn(&Repository{db: r.db, q: tx, inTx: true, now: r.now})
	})
}

func (r *Repository) rebind(query string) string {
	return r.q.Rebind(query)
}

// ============================================================================
// READ OPERATIONS
// ============================================================================

// GetTask retrieves a single task by ID
func (r *Repository) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	task := &models.Task{}
	err := sqlx.GetContext(ctx, r.q, task,
		r.rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", models.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get task %d: %w", id, err))
	}
	return task, nil
}

// ListTasks returns the whole board ordered by (status, position)
func (r *Repository) ListTasks(ctx context.Context) ([]*models.Task, error) {
	tasks := []*models.Task{}
	err := sqlx.SelectContext(ctx, r.q, &tasks, `SELECT `+taskColumns+` FROM tasks `+boardOrder)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list tasks: %w", err))
	}
	return tasks, nil
}

// ListTasksByStatus returns one column ordered by position
func (r *Repository) ListTasksByStatus(ctx context.Context, status models.Status) ([]*models.Task, error) {
	tasks := []*models.Task{}
	err := sqlx.SelectContext(ctx, r.q, &tasks,
		r.rebind(`SELECT `+taskColumns+` FROM tasks WHERE status = ? ORDER BY position, id`), string(status))
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list tasks for status %s: %w", status, err))
	}
	return tasks, nil
}

// CountTasksByStatus returns the size of one column
func (r *Repository) CountTasksByStatus(ctx context.Context, status models.Status) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.q, &count,
		r.rebind(`SELECT COUNT(*) FROM tasks WHERE status = ?`), string(status))
	if err != nil {
		return 0, classify(fmt.Errorf("failed to count tasks for status %s: %w", status, err))
	}
	return count, nil
}

// CountTasksPerStatus returns the size of every column, including empty ones
func (r *Repository) CountTasksPerStatus(ctx context.Context) (map[models.Status]int, error) {
	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT status, COUNT(*) AS count FROM tasks GROUP BY status`)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to count tasks per status: %w", err))
	}

	counts := make(map[models.Status]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[models.Status(row.Status)] = row.Count
	}
	return counts, nil
}

// ============================================================================
// WRITE OPERATIONS
// ============================================================================

// InsertTask stores task as given and fills in ID and timestamps
func (r *Repository) InsertTask(ctx context.Context, task *models.Task) error {
	now := r.now()
	var id int64
	err := r.q.QueryRowxContext(ctx, r.rebind(
		`INSERT INTO tasks (title, description, status, position, assignee, priority, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`),
		task.Title, task.Description, string(task.Status), task.Position,
		task.Assignee, string(task.Priority), now, now,
	).Scan(&id)
	if err != nil {
		return classify(fmt.Errorf("failed to insert task: %w", err))
	}

	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

// UpdateTaskFields overwrites the payload of a task; ordering fields are untouched
func (r *Repository) UpdateTaskFields(ctx context.Context, id int64, fields models.TaskFields) error {
	result, err := r.q.ExecContext(ctx, r.rebind(
		`UPDATE tasks
		 SET title = ?, description = ?, assignee = ?, priority = ?, updated_at = ?
		 WHERE id = ?`),
		fields.Title, fields.Description, fields.Assignee, string(fields.Priority), r.now(), id,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to update task %d: %w", id, err))
	}
	return requireRow(result, id)
}

// DeleteTask removes a task. Compacting its column is the caller's job.
func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, r.rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete task %d: %w", id, err))
	}
	return requireRow(result, id)
}

// ============================================================================
// POSITION OPERATIONS
// ============================================================================

// SetTaskPlacement writes a task's own status and position
func (r *Repository) SetTaskPlacement(ctx context.Context, id int64, status models.Status, position int) error {
	if position < 0 {
		return fmt.Errorf("%w: %d", models.ErrInvalidPosition, position)
	}
	result, err := r.q.ExecContext(ctx, r.rebind(
		`UPDATE tasks SET status = ?, position = ?, updated_at = ? WHERE id = ?`),
		string(status), position, r.now(), id,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to place task %d at %s/%d: %w", id, status, position, err))
	}
	return requireRow(result, id)
}

// ShiftPositions applies one bulk range update and returns the number of
// rows it moved. An empty shift returns without issuing any statement.
func (r *Repository) ShiftPositions(ctx context.Context, shift reorder.Shift) (int64, error) {
	if shift.Empty() {
		return 0, nil
	}

	query, args := shiftQuery(shift)
	result, err := r.q.ExecContext(ctx, r.rebind(query), args...)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to shift %s: %w", shift, err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

// shiftQuery renders a shift as a single UPDATE statement
func shiftQuery(shift reorder.Shift) (string, []any) {
	var b strings.Builder
	b.WriteString(`UPDATE tasks SET position = position + ? WHERE status = ? AND position >= ?`)
	args := []any{shift.Delta, string(shift.Status), shift.From}

	if shift.Bounded() {
		b.WriteString(` AND position <= ?`)
		args = append(args, shift.To)
	}
	if shift.Exclude != 0 {
		b.WriteString(` AND id <> ?`)
		args = append(args, shift.Exclude)
	}
	return b.String(), args
}

func requireRow(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", models.ErrTaskNotFound, id)
	}
	return nil
}
