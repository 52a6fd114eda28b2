package models

import "time"

// Task represents a single card on the board.
// Status and Position are owned by the ordering logic; everything else is
// payload that is stored and returned as-is.
type Task struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Status      Status    `json:"status" db:"status"`
	Position    int       `json:"position" db:"position"`
	Assignee    string    `json:"assignee" db:"assignee"`
	Priority    Priority  `json:"priority,omitempty" db:"priority"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// GetID lets output formatters print a bare ID in quiet mode
func (t *Task) GetID() int64 {
	return t.ID
}

// Placement returns the task's current column and rank
func (t *Task) Placement() (Status, int) {
	return t.Status, t.Position
}

// TaskFields holds the payload fields of a task.
// Ordering fields are deliberately absent: they can only change through a move.
type TaskFields struct {
	Title       string
	Description string
	Assignee    string
	Priority    Priority
}

// Fields extracts the payload of a task
func (t *Task) Fields() TaskFields {
	return TaskFields{
		Title:       t.Title,
		Description: t.Description,
		Assignee:    t.Assignee,
		Priority:    t.Priority,
	}
}

// ColumnSummary describes one status column of the board
type ColumnSummary struct {
	Status Status `json:"status"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}
