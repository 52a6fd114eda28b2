package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/thenoetrevino/kanban/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes for aborted concurrent transactions
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// IsConflict reports whether err means a concurrent writer aborted the
// transaction and the whole unit of work can be retried
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, models.ErrTransactionConflict) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// extended result codes carry the primary code in the low byte
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
	}
	return false
}

// classify tags driver conflict errors with models.ErrTransactionConflict and
// returns every other error unchanged
func classify(err error) error {
	if err == nil || errors.Is(err, models.ErrTransactionConflict) || !IsConflict(err) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrTransactionConflict, err)
}
