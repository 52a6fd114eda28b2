package cli

import (
	"context"

	"github.com/thenoetrevino/kanban/internal/app"
)

type appKey struct{}

// WithApp makes commands run against an existing app instead of opening
// the configured store
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// GetCLIFromContext returns a CLI for the app stored in ctx, or a freshly
// initialized one when there is none
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a, Config: a.Config}, nil
	}
	return NewCLI(ctx)
}
