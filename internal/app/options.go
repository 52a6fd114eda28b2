package app

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger         *slog.Logger
	registry       *prometheus.Registry
	redisClient    *redis.Client
	tracerProvider trace.TracerProvider
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithRegistry sets the registry metrics are registered with.
// A fresh registry is created when none is given.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(cfg *appConfig) {
		cfg.registry = reg
	}
}

// WithRedisClient uses an existing client for the list cache instead of
// dialing cache.redis_url. The app does not close it.
func WithRedisClient(client *redis.Client) Option {
	return func(cfg *appConfig) {
		cfg.redisClient = client
	}
}

// WithTracerProvider sets where service spans go
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *appConfig) {
		cfg.tracerProvider = tp
	}
}
