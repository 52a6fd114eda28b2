package column

import (
	"errors"

	"github.com/thenoetrevino/kanban/internal/reorder"
)

// Column-related errors
var (
	// ErrColumnNotDense is reported by Verify for a column that needs repair
	ErrColumnNotDense = reorder.ErrNotDense

	ErrRepairIncomplete = errors.New("column still not dense after repair")
)
