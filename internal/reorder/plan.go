package reorder

import "github.com/thenoetrevino/kanban/internal/models"

// Kind names the branch of the move state machine
type Kind int

const (
	KindNoop Kind = iota
	KindSameColumn
	KindCrossColumn
)

func (k Kind) String() string {
	switch k {
	case KindNoop:
		return "noop"
	case KindSameColumn:
		return "same_column"
	case KindCrossColumn:
		return "cross_column"
	}
	return "unknown"
}

// Placement is a (column, rank) pair
type Placement struct {
	Status   models.Status
	Position int
}

// Plan is the full set of writes a move needs: the shifts in order, then the
// moving task's own placement, which is always written last.
type Plan struct {
	Kind   Kind
	Shifts []Shift
	Target Placement
}

// Writes returns the number of non-empty shifts plus the task's own row.
// A noop plan performs no writes at all.
func (p Plan) Writes() int {
	if p.Kind == KindNoop {
		return 0
	}
	n := 1
	for _, s := range p.Shifts {
		if !s.Empty() {
			n++
		}
	}
	return n
}

// Clamp limits position to [0, limit]. Dropping past the last card means
// "append", never an error.
func Clamp(position, limit int) int {
	if limit < 0 {
		limit = 0
	}
	if position < 0 {
		return 0
	}
	if position > limit {
		return limit
	}
	return position
}

// PlanMove decides which case applies and computes the shifts.
//
// size is the current task count of the destination column. For a move
// inside the same column that count includes the moving task, so the last
// valid rank is size-1; for a move into another column the task is not yet
// counted and the last valid rank is size (append).
func PlanMove(from, to Placement, size int) Plan {
	if from.Status == to.Status {
		target := Placement{Status: to.Status, Position: Clamp(to.Position, size-1)}
		switch {
		case target.Position == from.Position:
			return Plan{Kind: KindNoop, Target: from}
		case from.Position < target.Position:
			return Plan{
				Kind:   KindSameColumn,
				Shifts: []Shift{ShiftDownInRange(from.Status, from.Position+1, target.Position)},
				Target: target,
			}
		default:
			return Plan{
				Kind:   KindSameColumn,
				Shifts: []Shift{ShiftUpInRange(from.Status, target.Position, from.Position-1)},
				Target: target,
			}
		}
	}

	target := Placement{Status: to.Status, Position: Clamp(to.Position, size)}
	return Plan{
		Kind: KindCrossColumn,
		Shifts: []Shift{
			ShiftDownAfter(from.Status, from.Position),
			ShiftUpFrom(target.Status, target.Position),
		},
		Target: target,
	}
}

// PlanCreate places a new task after the last card of a column holding size tasks
func PlanCreate(status models.Status, size int) Placement {
	if size < 0 {
		size = 0
	}
	return Placement{Status: status, Position: size}
}

// PlanDelete compacts the column a deleted task leaves behind
func PlanDelete(p Placement) Shift {
	return ShiftDownAfter(p.Status, p.Position)
}
