package column

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/kanban/internal/cache"
	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/metrics"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/reorder"
	"github.com/thenoetrevino/kanban/internal/services/txretry"
)

// Service defines board-level operations over the status columns
type Service interface {
	// Read operations
	Summaries(ctx context.Context) ([]models.ColumnSummary, error)
	Verify(ctx context.Context) ([]Report, error)

	// Write operations
	Repair(ctx context.Context) ([]Report, error)
}

// Report is the state of one column as seen by Verify or Repair
type Report struct {
	Status    models.Status     `json:"status"`
	Count     int               `json:"count"`
	Violation reorder.Violation `json:"violation"`
	Rewritten int               `json:"rewritten,omitempty"`
}

// Healthy reports whether the column satisfies the ordering invariant
func (r Report) Healthy() bool {
	return r.Violation.Empty()
}

// service implements Service interface
type service struct {
	repo    database.DataStore
	cache   cache.ListCache
	metrics *metrics.Metrics
	logger  *slog.Logger
	retry   txretry.Policy
}

// Option configures the column service
type Option func(*service)

// WithRetry sets how Repair replays a transaction that hits a write conflict
func WithRetry(policy txretry.Policy) Option {
	return func(s *service) {
		s.retry = policy
	}
}

// NewService creates a new column service. listCache and m may be nil.
func NewService(repo database.DataStore, listCache cache.ListCache, m *metrics.Metrics, logger *slog.Logger, opts ...Option) Service {
	if listCache == nil {
		listCache = cache.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &service{repo: repo, cache: listCache, metrics: m, logger: logger, retry: txretry.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summaries returns every column in board order with its task count
func (s *service) Summaries(ctx context.Context) (summaries []models.ColumnSummary, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("column_summaries", start, err) }()

	counts, err := s.repo.CountTasksPerStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	summaries = make([]models.ColumnSummary, 0, len(models.Statuses))
	for _, status := range models.Statuses {
		summaries = append(summaries, models.ColumnSummary{
			Status: status,
			Name:   status.DisplayName(),
			Count:  counts[status],
		})
	}
	return summaries, nil
}

// Verify inspects every column without changing anything
func (s *service) Verify(ctx context.Context) ([]Report, error) {
	start := time.Now()
	reports := make([]Report, 0, len(models.Statuses))
	for _, status := range models.Statuses {
		tasks, err := s.repo.ListTasksByStatus(ctx, status)
		if err != nil {
			s.metrics.ObserveOperation("column_verify", start, err)
			return nil, fmt.Errorf("failed to list %s: %w", status, err)
		}
		reports = append(reports, Report{
			Status:    status,
			Count:     len(tasks),
			Violation: reorder.Inspect(positionsOf(tasks)),
		})
	}
	s.metrics.ObserveOperation("column_verify", start, nil)
	return reports, nil
}

// Repair rewrites every column to positions {0..n-1}, keeping the current
// relative order (position, then id for ties). Everything runs in one
// transaction, replayed on conflict; healthy columns produce no writes.
func (s *service) Repair(ctx context.Context) (reports []Report, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("column_repair", start, err) }()

	runner := txretry.Runner{Repo: s.repo, Policy: s.retry, Metrics: s.metrics, Logger: s.logger}
	err = runner.InTx(ctx, "column_repair", func(store database.TaskStore) error {
		reports = reports[:0]
		for _, status := range models.Statuses {
			report, err := repairColumn(ctx, store, status)
			if err != nil {
				return err
			}
			reports = append(reports, report)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to repair columns: %w", err)
	}

	total := 0
	for _, r := range reports {
		total += r.Rewritten
		if r.Rewritten > 0 {
			s.logger.Info("repaired column", "status", r.Status, "rewritten", r.Rewritten,
				"missing", r.Violation.Missing, "duplicated", r.Violation.Duplicated)
		}
	}
	if total > 0 {
		s.metrics.AddShifted("repair", int64(total))
		s.cache.Invalidate(ctx)
	}
	return reports, nil
}

func repairColumn(ctx context.Context, store database.TaskStore, status models.Status) (Report, error) {
	tasks, err := store.ListTasksByStatus(ctx, status)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list %s: %w", status, err)
	}

	report := Report{
		Status:    status,
		Count:     len(tasks),
		Violation: reorder.Inspect(positionsOf(tasks)),
	}
	if report.Healthy() {
		return report, nil
	}

	current := make(map[int64]int, len(tasks))
	order := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		current[t.ID] = t.Position
		order = append(order, t.ID)
	}
	next := reorder.Renumber(order)

	for _, id := range reorder.Changed(current, next) {
		if err := store.SetTaskPlacement(ctx, id, status, next[id]); err != nil {
			return Report{}, fmt.Errorf("failed to repair task %d: %w", id, err)
		}
		report.Rewritten++
	}

	after, err := store.ListTasksByStatus(ctx, status)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list %s: %w", status, err)
	}
	if err := reorder.CheckDense(positionsOf(after)); err != nil {
		return Report{}, fmt.Errorf("%w: %s: %w", ErrRepairIncomplete, status, err)
	}
	return report, nil
}

func positionsOf(tasks []*models.Task) []int {
	positions := make([]int, 0, len(tasks))
	for _, t := range tasks {
		positions = append(positions, t.Position)
	}
	return positions
}
