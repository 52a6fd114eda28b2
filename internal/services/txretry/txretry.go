// Package txretry replays transactions that lose a write conflict
package txretry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/metrics"
	"github.com/thenoetrevino/kanban/internal/models"
)

// DefaultMaxRetries bounds how often a conflicting transaction is replayed
const DefaultMaxRetries = 3

// Policy decides how many times, and how far apart, a conflict is retried
type Policy struct {
	MaxRetries int
	NewBackOff func() backoff.BackOff
}

// DefaultBackOff waits 10ms before the first retry, doubling up to 250ms
func DefaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	return b
}

// Default returns DefaultMaxRetries with DefaultBackOff
func Default() Policy {
	return Policy{MaxRetries: DefaultMaxRetries, NewBackOff: DefaultBackOff}
}

// Runner runs units of work against one store under one policy
type Runner struct {
	Repo    database.DataStore
	Policy  Policy
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// InTx runs fn in one transaction and replays the whole unit of work when the
// store reports a conflict. Every other error is returned on the first attempt.
func (r Runner) InTx(ctx context.Context, op string, fn func(database.TaskStore) error) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	newBackOff := r.Policy.NewBackOff
	if newBackOff == nil {
		newBackOff = DefaultBackOff
	}
	maxRetries := max(r.Policy.MaxRetries, 0)

	attempt := 0
	operation := func() error {
		attempt++
		err := r.Repo.WithinTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, models.ErrTransactionConflict) {
			return backoff.Permanent(err)
		}
		if attempt <= maxRetries {
			r.Metrics.IncConflict(true)
			logger.Warn("transaction conflict, retrying", "operation", op, "attempt", attempt, "error", err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), uint64(maxRetries)), ctx)
	err := backoff.Retry(operation, policy)
	if errors.Is(err, models.ErrTransactionConflict) {
		r.Metrics.IncConflict(false)
		logger.Error("transaction conflict, giving up", "operation", op, "attempts", attempt, "error", err)
	}
	return err
}
