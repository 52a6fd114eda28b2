package models

import (
	"fmt"
	"strings"
)

// Priority represents a task priority level. The zero value means "unset".
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is unset or a known priority
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority maps a priority string to its enum value
func ParsePriority(raw string) (Priority, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	p := Priority(strings.ToUpper(trimmed))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q (must be: low, medium, high)", ErrInvalidPriority, raw)
	}
	return p, nil
}
