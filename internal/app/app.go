package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/kanban/internal/cache"
	"github.com/thenoetrevino/kanban/internal/config"
	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/httpapi"
	"github.com/thenoetrevino/kanban/internal/metrics"
	columnservice "github.com/thenoetrevino/kanban/internal/services/column"
	taskservice "github.com/thenoetrevino/kanban/internal/services/task"
	"github.com/thenoetrevino/kanban/internal/services/txretry"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config

	// Repository layer (direct database access)
	db   *sqlx.DB
	repo database.DataStore

	redis     *redis.Client
	ownsRedis bool

	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	logger   *slog.Logger

	// Service layer (business logic)
	TaskService   taskservice.Service
	ColumnService columnservice.Service
}

// New opens the store described by cfg, runs migrations and wires the services.
// This is the single entry point for creating the application container.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	ac := appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&ac)
	}
	if ac.registry == nil {
		ac.registry = prometheus.NewRegistry()
		ac.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	strategy, err := taskservice.ParseStrategy(cfg.Board.ReorderStrategy)
	if err != nil {
		return nil, err
	}

	db, err := database.InitDB(ctx, database.Options{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a := &App{
		Config:   cfg,
		db:       db,
		repo:     database.NewRepository(db),
		Registry: ac.registry,
		Metrics:  metrics.New(ac.registry),
		logger:   ac.logger,
	}

	listCache, err := a.openCache(ctx, ac.redisClient)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	taskOpts := []taskservice.Option{
		taskservice.WithStrategy(strategy),
		taskservice.WithMaxRetries(cfg.Board.MaxRetries),
		taskservice.WithCache(listCache),
		taskservice.WithMetrics(a.Metrics),
		taskservice.WithLogger(ac.logger),
	}
	if ac.tracerProvider != nil {
		taskOpts = append(taskOpts, taskservice.WithTracerProvider(ac.tracerProvider))
	}
	a.TaskService = taskservice.NewService(a.repo, taskOpts...)
	a.ColumnService = columnservice.NewService(a.repo, listCache, a.Metrics, ac.logger,
		columnservice.WithRetry(txretry.Policy{MaxRetries: cfg.Board.MaxRetries, NewBackOff: txretry.DefaultBackOff}))

	ac.logger.Debug("app initialized",
		"driver", cfg.Database.Driver,
		"strategy", strategy,
		"cache", a.redis != nil)
	return a, nil
}

// openCache returns the Redis list cache when one is configured, otherwise a no-op
func (a *App) openCache(ctx context.Context, client *redis.Client) (cache.ListCache, error) {
	if client == nil && a.Config.Cache.RedisURL == "" {
		return cache.Noop{}, nil
	}
	if client == nil {
		var err error
		client, err = cache.Connect(ctx, a.Config.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.ownsRedis = true
	}
	a.redis = client
	return cache.NewRedis(client, a.Config.Cache.TTL, a.logger), nil
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// DB returns the database handle, used by migration commands
func (a *App) DB() *sqlx.DB {
	return a.db
}

// HTTPServer builds the REST API over the app's services
func (a *App) HTTPServer() *httpapi.Server {
	deps := httpapi.Deps{
		Tasks:   a.TaskService,
		Columns: a.ColumnService,
		Health:  a.repo,
		Metrics: a.Metrics,
		Logger:  a.logger,
	}
	if a.Config.Server.Metrics {
		deps.Gatherer = a.Registry
	}
	return httpapi.New(httpapi.Config{
		AllowedOrigins:   a.Config.Server.AllowedOrigins,
		AllowCredentials: a.Config.Server.AllowCredentials,
	}, deps)
}

// Close releases the database and any Redis connection the app opened
func (a *App) Close() error {
	var errs []error
	if a.redis != nil && a.ownsRedis {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
