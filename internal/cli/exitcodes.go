package cli

import (
	"errors"

	"github.com/thenoetrevino/kanban/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a general error occurred.
	// Use for: Database errors, exhausted conflict retries, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitFailure = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing or malformed arguments, unknown flags.
	ExitUsage = 2

	// ExitNotFound indicates a requested task was not found.
	ExitNotFound = 3

	// ExitDataErr indicates input that could not be read or processed.
	// Use for: Failure to read a description from stdin.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid priority or status values, field length limits,
	// or any case where input fails validation rules.
	ExitValidation = 5
)

// ExitError carries the process exit code for a failed command. Commands
// return it instead of calling os.Exit so they stay testable.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WithExitCode tags err with an explicit exit code
func WithExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode picks the exit code for an error returned by a command.
// Untagged errors are mapped by their kind.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	switch {
	case errors.Is(err, models.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, models.ErrInvalidArgument):
		return ExitValidation
	}
	return ExitFailure
}

// ErrorCode names an error's kind for machine-readable output
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, models.ErrInvalidArgument):
		return "VALIDATION_ERROR"
	case errors.Is(err, models.ErrTransactionConflict):
		return "CONFLICT"
	}
	return "INTERNAL_ERROR"
}
