package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/thenoetrevino/kanban/internal/models"
)

// ParseTaskID parses a positional task ID argument
func ParseTaskID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, WithExitCode(ExitUsage, fmt.Errorf("task ID must be a positive integer, got %q", raw))
	}
	return id, nil
}

// ParsePosition parses a positional target position. Out-of-range values
// are accepted and clamped by the move itself.
func ParsePosition(raw string) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, WithExitCode(ExitUsage, fmt.Errorf("position must be an integer, got %q", raw))
	}
	if pos < 0 {
		return 0, WithExitCode(ExitValidation, fmt.Errorf("%w: %d", models.ErrInvalidPosition, pos))
	}
	return pos, nil
}

// ReadDescription returns value, or all of stdin when value is "-"
func ReadDescription(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", WithExitCode(ExitDataErr, fmt.Errorf("failed to read description from stdin: %w", err))
	}
	return strings.TrimRight(string(data), "\n"), nil
}
