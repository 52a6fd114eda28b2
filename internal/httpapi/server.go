package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thenoetrevino/kanban/internal/metrics"
	"github.com/thenoetrevino/kanban/internal/services/column"
	"github.com/thenoetrevino/kanban/internal/services/task"
)

// DefaultAllowedOrigin is the frontend dev server
const DefaultAllowedOrigin = "http://localhost:8080"

const shutdownTimeout = 10 * time.Second

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config controls the HTTP surface
type Config struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

// Deps are the collaborators the handlers call into
type Deps struct {
	Tasks    task.Service
	Columns  column.Service
	Health   Pinger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Server is the REST API over the board
type Server struct {
	echo    *echo.Echo
	tasks   task.Service
	columns column.Service
	health  Pinger
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New builds the echo instance with all routes and middleware registered
func New(cfg Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler(logger, time.Now)

	s := &Server{
		echo:    e,
		tasks:   deps.Tasks,
		columns: deps.Columns,
		health:  deps.Health,
		metrics: deps.Metrics,
		logger:  logger,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(logger))
	// registered globally so preflight requests reach it before routing
	e.Use(middleware.CORSWithConfig(corsConfig(cfg)))

	api := e.Group("/api")
	api.GET("/tasks", s.listTasks)
	api.GET("/tasks/status/:status", s.listTasksByStatus)
	api.GET("/tasks/:id", s.getTask)
	api.POST("/tasks", s.createTask)
	api.PATCH("/tasks/:id", s.patchTask)
	api.PUT("/tasks/:id", s.replaceTask)
	api.PATCH("/tasks/:id/move", s.moveTask)
	api.DELETE("/tasks/:id", s.deleteTask)
	api.GET("/board", s.board)
	api.GET("/board/verify", s.verifyBoard)

	e.GET("/healthz", s.healthz)
	if deps.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func corsConfig(cfg Config) middleware.CORSConfig {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{DefaultAllowedOrigin}
	}
	return middleware.CORSConfig{
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, "/api/")
		},
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch,
		},
		AllowHeaders:     []string{"*"},
		AllowCredentials: cfg.AllowCredentials,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}
