// Package testutil provides shared fixtures for tests that need a fully
// wired application
package testutil

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/thenoetrevino/kanban/internal/app"
	"github.com/thenoetrevino/kanban/internal/config"
	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/models"
	taskservice "github.com/thenoetrevino/kanban/internal/services/task"
)

// SetupTestApp creates an app over a private in-memory database.
// It is closed when the test ends.
func SetupTestApp(t *testing.T) *app.App {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Driver = database.DriverSQLite
	cfg.Database.Path = database.MemoryPath

	a, err := app.New(context.Background(), cfg, app.WithRegistry(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("Failed to create test app: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("Failed to close test app: %v", err)
		}
	})
	return a
}

// CreateTestTask appends a task to a column and returns it
func CreateTestTask(t *testing.T, a *app.App, status models.Status, title string) *models.Task {
	t.Helper()
	task, err := a.TaskService.CreateTask(context.Background(), taskservice.CreateTaskRequest{
		Title:  title,
		Status: status,
	})
	if err != nil {
		t.Fatalf("Failed to create test task %q: %v", title, err)
	}
	return task
}

// ColumnIDs returns the IDs of one column in position order
func ColumnIDs(t *testing.T, a *app.App, status models.Status) []int64 {
	t.Helper()
	tasks, err := a.TaskService.ListTasksByStatus(context.Background(), status)
	if err != nil {
		t.Fatalf("Failed to list %s: %v", status, err)
	}
	ids := make([]int64, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}
