package models

import (
	"fmt"
	"strings"
)

// Status identifies the column a task belongs to
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists every column in board order
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known columns
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Rank returns the board order of the column, or -1 for unknown values
func (s Status) Rank() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// DisplayName returns the human-readable column name
func (s Status) DisplayName() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// ParseStatus accepts the canonical enum value as well as the spellings
// people type on the command line ("todo", "in-progress", "In Progress").
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	switch normalized {
	case "TODO", "TO_DO":
		return StatusTodo, nil
	case "IN_PROGRESS", "DOING":
		return StatusInProgress, nil
	case "DONE":
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w: %q (must be: TODO, IN_PROGRESS, DONE)", ErrInvalidStatus, raw)
}
