package task

import (
	"context"

	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/services/txretry"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// inTx runs fn in one transaction, replaying it on conflict
func (s *service) inTx(ctx context.Context, op string, fn func(database.TaskStore) error) error {
	return txretry.Runner{
		Repo:    s.repo,
		Policy:  s.retry,
		Metrics: s.metrics,
		Logger:  s.logger,
	}.InTx(ctx, op, fn)
}

func recordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
