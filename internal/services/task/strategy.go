package task

import (
	"fmt"
	"strings"
)

// Strategy selects how a move rewrites positions
type Strategy string

const (
	// StrategyShift applies range-predicate bulk updates: O(displacement) writes
	StrategyShift Strategy = "shift"
	// StrategyRewrite fetches the column, reinserts the task and rewrites the
	// rows whose index changed: O(column size) writes
	StrategyRewrite Strategy = "rewrite"
)

// ParseStrategy maps a config value to a Strategy; empty means shift
func ParseStrategy(raw string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return StrategyShift, nil
	case StrategyShift, StrategyRewrite:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q (must be: shift, rewrite)", ErrInvalidStrategy, raw)
}
