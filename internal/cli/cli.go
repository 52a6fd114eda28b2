// Package cli holds the shared plumbing of the kanban commands: the
// application handle, output formatting and exit codes
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/thenoetrevino/kanban/internal/app"
	"github.com/thenoetrevino/kanban/internal/cli/styles"
	"github.com/thenoetrevino/kanban/internal/config"
	"github.com/thenoetrevino/kanban/internal/logging"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	logs  io.Closer
	owned bool
}

// NewCLI loads configuration, sets up logging and opens the store
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logs, err := logging.Init(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	styles.Init(cfg.ColorScheme)

	application, err := app.New(ctx, cfg, app.WithLogger(logging.Logger))
	if err != nil {
		_ = logs.Close()
		return nil, err
	}

	return &CLI{
		App:    application,
		Config: cfg,
		logs:   logs,
		owned:  true,
	}, nil
}

// Close cleans up CLI resources. An app handed in through the context is
// left open for its owner.
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	var errs []error
	errs = append(errs, c.App.Close())
	if c.logs != nil {
		errs = append(errs, c.logs.Close())
	}
	return errors.Join(errs...)
}
