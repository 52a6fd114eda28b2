package task

import (
	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"github.com/thenoetrevino/kanban/internal/cache"
	"github.com/thenoetrevino/kanban/internal/metrics"
	"github.com/thenoetrevino/kanban/internal/services/txretry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/thenoetrevino/kanban/internal/services/task"

// DefaultMaxRetries bounds how often a conflicting transaction is replayed
const DefaultMaxRetries = txretry.DefaultMaxRetries

// Option is a functional option for configuring the task service
type Option func(*serviceConfig)

// serviceConfig holds the configuration for service initialization
type serviceConfig struct {
	strategy       Strategy
	maxRetries     int
	newBackOff     func() backoff.BackOff
	cache          cache.ListCache
	metrics        *metrics.Metrics
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		strategy:       StrategyShift,
		maxRetries:     DefaultMaxRetries,
		newBackOff:     txretry.DefaultBackOff,
		cache:          cache.Noop{},
		logger:         slog.Default(),
		tracerProvider: otel.GetTracerProvider(),
	}
}

// WithStrategy selects the reorder strategy
func WithStrategy(strategy Strategy) Option {
	return func(cfg *serviceConfig) {
		if strategy != "" {
			cfg.strategy = strategy
		}
	}
}

// WithMaxRetries sets how many times a conflicting transaction is replayed.
// Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(cfg *serviceConfig) {
		if n >= 0 {
			cfg.maxRetries = n
		}
	}
}

// WithBackOff replaces the wait policy between retries
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(cfg *serviceConfig) {
		if newBackOff != nil {
			cfg.newBackOff = newBackOff
		}
	}
}

// WithCache sets the list cache
func WithCache(c cache.ListCache) Option {
	return func(cfg *serviceConfig) {
		if c != nil {
			cfg.cache = c
		}
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.Metrics) Option {
	return func(cfg *serviceConfig) {
		cfg.metrics = m
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithTracerProvider sets where spans go
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *serviceConfig) {
		if tp != nil {
			cfg.tracerProvider = tp
		}
	}
}
