package models

import (
	"errors"
	"testing"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestErrors_Kinds(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{ErrTaskNotFound, ErrNotFound},
		{ErrInvalidStatus, ErrInvalidArgument},
		{ErrInvalidPriority, ErrInvalidArgument},
		{ErrInvalidPosition, ErrInvalidArgument},
	}

	for _, tt := range tests {
		if !errors.Is(tt.err, tt.kind) {
			t.Errorf("Expected %q to wrap %q", tt.err, tt.kind)
		}
	}
}

func TestErrors_KindsAreDistinct(t *testing.T) {
	if errors.Is(ErrTaskNotFound, ErrInvalidArgument) {
		t.Error("ErrTaskNotFound should not be an invalid argument")
	}
	if errors.Is(ErrInvalidStatus, ErrNotFound) {
		t.Error("ErrInvalidStatus should not be a not found error")
	}
	if errors.Is(ErrTransactionConflict, ErrNotFound) {
		t.Error("ErrTransactionConflict should not be a not found error")
	}
}

// ============================================================================
// Status Tests
// ============================================================================

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
	}{
		{"TODO", StatusTodo},
		{"todo", StatusTodo},
		{"To Do", StatusTodo},
		{"in-progress", StatusInProgress},
		{"In Progress", StatusInProgress},
		{"IN_PROGRESS", StatusInProgress},
		{" done ", StatusDone},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseStatus(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, input := range []string{"", "blocked", "TODOS"} {
		_, err := ParseStatus(input)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseStatus(%q) expected invalid argument, got %v", input, err)
		}
	}
}

func TestStatus_Rank(t *testing.T) {
	if StatusTodo.Rank() != 0 || StatusInProgress.Rank() != 1 || StatusDone.Rank() != 2 {
		t.Error("statuses should rank in board order")
	}
	if Status("BLOCKED").Rank() != -1 {
		t.Error("unknown status should rank -1")
	}
	if Status("BLOCKED").Valid() {
		t.Error("unknown status should not be valid")
	}
}

// ============================================================================
// Priority Tests
// ============================================================================

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("high")
	if err != nil || p != PriorityHigh {
		t.Errorf("Expected HIGH, got %q (%v)", p, err)
	}

	p, err = ParsePriority("")
	if err != nil || p != "" {
		t.Errorf("Expected unset priority, got %q (%v)", p, err)
	}

	if _, err := ParsePriority("critical"); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Expected ErrInvalidPriority, got %v", err)
	}
}

// ============================================================================
// Struct Tests
// ============================================================================

func TestTask_Fields(t *testing.T) {
	task := &Task{
		ID:          7,
		Title:       "Write docs",
		Description: "README",
		Status:      StatusDone,
		Position:    3,
		Assignee:    "kim",
		Priority:    PriorityLow,
	}

	fields := task.Fields()
	if fields.Title != "Write docs" || fields.Assignee != "kim" || fields.Priority != PriorityLow {
		t.Errorf("unexpected fields: %+v", fields)
	}

	status, position := task.Placement()
	if status != StatusDone || position != 3 {
		t.Errorf("unexpected placement: %s/%d", status, position)
	}
	if task.GetID() != 7 {
		t.Errorf("Expected ID 7, got %d", task.GetID())
	}
}
