// Package user resolves the "@me" assignee shorthand accepted by the CLI
package user

import (
	"os"
	"os/user"
	"strings"
)

// Me is replaced by the current username when used as an assignee
const Me = "@me"

// GetCurrentUsername returns the current system username.
// It falls back to $USER, then to "unknown", so the result is never empty.
func GetCurrentUsername() string {
	currentUser, err := user.Current()
	if err != nil || currentUser.Username == "" {
		if username := os.Getenv("USER"); username != "" {
			return username
		}
		return "unknown"
	}
	return currentUser.Username
}

// ResolveAssignee expands "@me" (any case) to the current username and
// returns every other value unchanged
func ResolveAssignee(assignee string) string {
	if strings.EqualFold(strings.TrimSpace(assignee), Me) {
		return GetCurrentUsername()
	}
	return assignee
}
