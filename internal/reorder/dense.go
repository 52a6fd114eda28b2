package reorder

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotDense is returned when a column's positions are not exactly {0..n-1}
var ErrNotDense = errors.New("positions are not dense")

// Violation describes how a column breaks the invariant
type Violation struct {
	Missing    []int `json:"missing,omitempty"`
	Duplicated []int `json:"duplicated,omitempty"`
	OutOfRange []int `json:"outOfRange,omitempty"`
}

// Empty reports whether no problem was found
func (v Violation) Empty() bool {
	return len(v.Missing) == 0 && len(v.Duplicated) == 0 && len(v.OutOfRange) == 0
}

// Inspect compares positions against {0..n-1}
func Inspect(positions []int) Violation {
	n := len(positions)
	seen := make(map[int]int, n)
	var v Violation
	for _, p := range positions {
		if p < 0 || p >= n {
			v.OutOfRange = append(v.OutOfRange, p)
			continue
		}
		seen[p]++
		if seen[p] == 2 {
			v.Duplicated = append(v.Duplicated, p)
		}
	}
	for i := 0; i < n; i++ {
		if seen[i] == 0 {
			v.Missing = append(v.Missing, i)
		}
	}
	sort.Ints(v.OutOfRange)
	sort.Ints(v.Duplicated)
	return v
}

// CheckDense returns ErrNotDense with details when positions break the invariant
func CheckDense(positions []int) error {
	v := Inspect(positions)
	if v.Empty() {
		return nil
	}
	return fmt.Errorf("%w: missing=%v duplicated=%v out_of_range=%v",
		ErrNotDense, v.Missing, v.Duplicated, v.OutOfRange)
}
