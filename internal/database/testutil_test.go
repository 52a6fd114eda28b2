package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/kanban/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := InitDB(context.Background(), Options{Driver: DriverSQLite, Path: MemoryPath})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// setupTestDBFile creates a file-based database for testing persistence across restarts
func setupTestDBFile(t *testing.T) (*sqlx.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kanban-test.db")
	db, err := InitDB(context.Background(), Options{Driver: DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return db, path
}

// ============================================================================
// TEST DATA HELPERS
// ============================================================================

// seedColumn inserts tasks with the given titles at positions 0..n-1
func seedColumn(t *testing.T, repo *Repository, status models.Status, titles ...string) []*models.Task {
	t.Helper()
	tasks := make([]*models.Task, 0, len(titles))
	for i, title := range titles {
		task := &models.Task{Title: title, Status: status, Position: i}
		if err := repo.InsertTask(context.Background(), task); err != nil {
			t.Fatalf("Failed to insert %q: %v", title, err)
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// columnOrder returns the ids of a column in position order
func columnOrder(t *testing.T, repo *Repository, status models.Status) []int64 {
	t.Helper()
	tasks, err := repo.ListTasksByStatus(context.Background(), status)
	if err != nil {
		t.Fatalf("Failed to list %s: %v", status, err)
	}
	ids := make([]int64, 0, len(tasks))
	for i, task := range tasks {
		if task.Position != i {
			t.Fatalf("%s is not dense: task %d at position %d, expected %d", status, task.ID, task.Position, i)
		}
		ids = append(ids, task.ID)
	}
	return ids
}
