// Package reorder computes the position changes that keep every status
// column dense and zero-based. It never talks to a store: callers turn the
// returned values into bulk updates.
package reorder

import (
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// Open marks a shift whose range has no upper bound
const Open = -1

// Shift is one bulk position update restricted to a single column:
// every task in Status with From <= position <= To (or position >= From when
// To is Open) has Delta added to its position. Exclude, when non-zero, is a
// task id the update must never touch.
type Shift struct {
	Status  models.Status
	From    int
	To      int
	Delta   int
	Exclude int64
}

// ShiftDownAfter closes the gap left when a task leaves position
func ShiftDownAfter(status models.Status, position int) Shift {
	return Shift{Status: status, From: position + 1, To: Open, Delta: -1}
}

// ShiftUpFrom opens a slot at position for a task entering the column
func ShiftUpFrom(status models.Status, position int) Shift {
	return Shift{Status: status, From: position, To: Open, Delta: 1}
}

// ShiftDownInRange pulls lo..hi one slot towards the top
func ShiftDownInRange(status models.Status, lo, hi int) Shift {
	return Shift{Status: status, From: lo, To: hi, Delta: -1}
}

// ShiftUpInRange pushes lo..hi one slot towards the bottom
func ShiftUpInRange(status models.Status, lo, hi int) Shift {
	return Shift{Status: status, From: lo, To: hi, Delta: 1}
}

// Excluding returns a copy of s that skips the given task
func (s Shift) Excluding(taskID int64) Shift {
	s.Exclude = taskID
	return s
}

// Bounded reports whether the shift has an upper limit
func (s Shift) Bounded() bool {
	return s.To != Open
}

// Empty reports whether the range cannot match any position.
// Applying an empty shift must not write anything.
func (s Shift) Empty() bool {
	return s.Delta == 0 || (s.Bounded() && s.To < s.From)
}

// Contains reports whether position falls inside the shifted range
func (s Shift) Contains(position int) bool {
	if position < s.From {
		return false
	}
	return !s.Bounded() || position <= s.To
}

// Apply returns the position a task at (status, position) ends up at
func (s Shift) Apply(taskID int64, status models.Status, position int) int {
	if s.Empty() || status != s.Status || (s.Exclude != 0 && taskID == s.Exclude) {
		return position
	}
	if s.Contains(position) {
		return position + s.Delta
	}
	return position
}

func (s Shift) String() string {
	upper := "end"
	if s.Bounded() {
		upper = fmt.Sprintf("%d", s.To)
	}
	return fmt.Sprintf("%s[%d..%s]%+d", s.Status, s.From, upper, s.Delta)
}
