package task

import (
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// Task-related errors. Validation errors wrap models.ErrInvalidArgument and
// are returned before the store is touched.
var (
	// Validation errors
	ErrEmptyTitle         = fmt.Errorf("%w: task title cannot be empty", models.ErrInvalidArgument)
	ErrTitleTooLong       = fmt.Errorf("%w: task title cannot exceed %d characters", models.ErrInvalidArgument, models.MaxTitleLength)
	ErrDescriptionTooLong = fmt.Errorf("%w: task description cannot exceed %d characters", models.ErrInvalidArgument, models.MaxDescriptionLength)
	ErrAssigneeTooLong    = fmt.Errorf("%w: assignee cannot exceed %d characters", models.ErrInvalidArgument, models.MaxAssigneeLength)
	ErrInvalidTaskID      = fmt.Errorf("%w: invalid task ID", models.ErrInvalidArgument)
	ErrInvalidStrategy    = fmt.Errorf("%w: unknown reorder strategy", models.ErrInvalidArgument)
	ErrInvalidStatus      = models.ErrInvalidStatus
	ErrInvalidPriority    = models.ErrInvalidPriority
	ErrInvalidPosition    = models.ErrInvalidPosition

	// Business logic errors
	ErrTaskNotFound = models.ErrTaskNotFound
)

// FieldError ties a validation error to the request field that caused it
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError attaches a request field name to err
func NewFieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}
