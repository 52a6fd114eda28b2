package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/thenoetrevino/kanban/internal/cache"
	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/metrics"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/reorder"
	"github.com/thenoetrevino/kanban/internal/services/txretry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	ListTasks(ctx context.Context) ([]*models.Task, error)
	ListTasksByStatus(ctx context.Context, status models.Status) ([]*models.Task, error)
	GetTask(ctx context.Context, taskID int64) (*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error

	// Task movements
	MoveTask(ctx context.Context, taskID int64, status models.Status, position int) error
}

// CreateTaskRequest encapsulates all data needed to create a task.
// There is no position: new tasks always go to the end of their column.
type CreateTaskRequest struct {
	Title       string
	Description string
	Status      models.Status
	Assignee    string
	Priority    models.Priority
}

// UpdateTaskRequest encapsulates all data needed to update a task
// Fields with pointers are optional - nil means don't update
type UpdateTaskRequest struct {
	TaskID      int64
	Title       *string
	Description *string
	Assignee    *string
	Priority    *models.Priority
}

// service implements Service interface
type service struct {
	repo     database.DataStore
	mover    mover
	cache    cache.ListCache
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
	retry    txretry.Policy
	strategy Strategy
}

// NewService creates a new task service
func NewService(repo database.DataStore, opts ...Option) Service {
	cfg := defaultServiceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		repo:     repo,
		mover:    mover{strategy: cfg.strategy},
		cache:    cfg.cache,
		metrics:  cfg.metrics,
		logger:   cfg.logger,
		tracer:   cfg.tracerProvider.Tracer(tracerName),
		retry:    txretry.Policy{MaxRetries: cfg.maxRetries, NewBackOff: cfg.newBackOff},
		strategy: cfg.strategy,
	}
}

// ============================================================================
// READ OPERATIONS
// ============================================================================

// ListTasks returns the whole board ordered by status then position
func (s *service) ListTasks(ctx context.Context) (tasks []*models.Task, err error) {
	ctx, end := s.start(ctx, "ListTasks")
	defer func() { end(err) }()

	cached, gen, ok := s.cache.Board(ctx)
	if ok {
		s.metrics.IncCache(true)
		return cached, nil
	}
	s.metrics.IncCache(false)

	// the store is read after the generation, so a write committed in
	// between either shows up here or makes StoreBoard a no-op
	tasks, err = s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	s.cache.StoreBoard(ctx, gen, tasks)
	return tasks, nil
}

// ListTasksByStatus returns one column ordered by position
func (s *service) ListTasksByStatus(ctx context.Context, status models.Status) (tasks []*models.Task, err error) {
	ctx, end := s.start(ctx, "ListTasksByStatus", attribute.String("task.status", string(status)))
	defer func() { end(err) }()

	if !status.Valid() {
		return nil, NewFieldError("status", fmt.Errorf("%w: %q", ErrInvalidStatus, status))
	}

	cached, gen, ok := s.cache.Column(ctx, status)
	if ok {
		s.metrics.IncCache(true)
		return cached, nil
	}
	s.metrics.IncCache(false)

	tasks, err = s.repo.ListTasksByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s tasks: %w", status, err)
	}
	s.cache.StoreColumn(ctx, gen, status, tasks)
	return tasks, nil
}

// GetTask returns a single task
func (s *service) GetTask(ctx context.Context, taskID int64) (task *models.Task, err error) {
	ctx, end := s.start(ctx, "GetTask", attribute.Int64("task.id", taskID))
	defer func() { end(err) }()

	if taskID <= 0 {
		return nil, NewFieldError("id", ErrInvalidTaskID)
	}
	return s.repo.GetTask(ctx, taskID)
}

// ============================================================================
// WRITE OPERATIONS
// ============================================================================

// CreateTask appends a task to the end of its column
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (task *models.Task, err error) {
	ctx, end := s.start(ctx, "CreateTask", attribute.String("task.status", string(req.Status)))
	defer func() { end(err) }()

	if err := validateCreateTask(req); err != nil {
		return nil, err
	}

	err = s.inTx(ctx, "create", func(store database.TaskStore) error {
		size, err := store.CountTasksByStatus(ctx, req.Status)
		if err != nil {
			return err
		}

		placement := reorder.PlanCreate(req.Status, size)
		task = &models.Task{
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Status:      placement.Status,
			Position:    placement.Position,
			Assignee:    req.Assignee,
			Priority:    req.Priority,
		}
		return store.InsertTask(ctx, task)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Debug("task created", "task_id", task.ID, "status", task.Status, "position", task.Position)
	return task, nil
}

// UpdateTask changes payload fields only; status and position never change here
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (task *models.Task, err error) {
	ctx, end := s.start(ctx, "UpdateTask", attribute.Int64("task.id", req.TaskID))
	defer func() { end(err) }()

	if err := validateUpdateTask(req); err != nil {
		return nil, err
	}

	err = s.inTx(ctx, "update", func(store database.TaskStore) error {
		current, err := store.GetTask(ctx, req.TaskID)
		if err != nil {
			return err
		}

		fields := current.Fields()
		if req.Title != nil {
			fields.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			fields.Description = *req.Description
		}
		if req.Assignee != nil {
			fields.Assignee = *req.Assignee
		}
		if req.Priority != nil {
			fields.Priority = *req.Priority
		}

		if err := store.UpdateTaskFields(ctx, req.TaskID, fields); err != nil {
			return err
		}
		task, err = store.GetTask(ctx, req.TaskID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.cache.Invalidate(ctx)
	return task, nil
}

// DeleteTask removes a task and compacts its column
func (s *service) DeleteTask(ctx context.Context, taskID int64) (err error) {
	ctx, end := s.start(ctx, "DeleteTask", attribute.Int64("task.id", taskID))
	defer func() { end(err) }()

	if taskID <= 0 {
		return NewFieldError("id", ErrInvalidTaskID)
	}

	var shifted int64
	err = s.inTx(ctx, "delete", func(store database.TaskStore) error {
		task, err := store.GetTask(ctx, taskID)
		if err != nil {
			return err
		}
		if err := store.DeleteTask(ctx, taskID); err != nil {
			return err
		}
		shifted, err = s.mover.compact(ctx, store, reorder.Placement{Status: task.Status, Position: task.Position})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.metrics.AddShifted(string(s.strategy), shifted)
	s.cache.Invalidate(ctx)
	s.logger.Debug("task deleted", "task_id", taskID, "shifted", shifted)
	return nil
}

// ============================================================================
// TASK MOVEMENTS
// ============================================================================

// MoveTask places a task at position in the status column. Positions past the
// end of the column are clamped; moving a task onto its current slot writes nothing.
func (s *service) MoveTask(ctx context.Context, taskID int64, status models.Status, position int) (err error) {
	ctx, end := s.start(ctx, "MoveTask",
		attribute.Int64("task.id", taskID),
		attribute.String("task.status", string(status)),
		attribute.Int("task.position", position),
	)
	defer func() { end(err) }()

	if taskID <= 0 {
		return NewFieldError("id", ErrInvalidTaskID)
	}
	if !status.Valid() {
		return NewFieldError("status", fmt.Errorf("%w: %q", ErrInvalidStatus, status))
	}
	if position < 0 {
		return NewFieldError("position", fmt.Errorf("%w: %d", ErrInvalidPosition, position))
	}

	var result moveResult
	err = s.inTx(ctx, "move", func(store database.TaskStore) error {
		var err error
		result, err = s.mover.move(ctx, store, taskID, reorder.Placement{Status: status, Position: position})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to move task %d: %w", taskID, err)
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("move.kind", result.Plan.Kind.String()),
		attribute.Int64("move.shifted", result.Shifted),
	)
	s.metrics.ObserveMove(result.Plan.Kind.String(), string(s.strategy), result.Shifted)
	if result.Plan.Kind == reorder.KindNoop {
		return nil
	}

	s.cache.Invalidate(ctx)
	s.logger.Debug("task moved",
		"task_id", taskID,
		"kind", result.Plan.Kind,
		"status", result.Plan.Target.Status,
		"position", result.Plan.Target.Position,
		"shifted", result.Shifted,
	)
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

// start opens a span for one public operation and returns a func that
// closes it and records metrics
func (s *service) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	began := time.Now()
	ctx, span := s.tracer.Start(ctx, "task."+op, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		recordSpanError(span, err)
		span.End()
		s.metrics.ObserveOperation(op, began, err)
	}
}

// validateCreateTask validates a CreateTaskRequest
func validateCreateTask(req CreateTaskRequest) error {
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	if !req.Status.Valid() {
		return NewFieldError("status", fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status))
	}
	return validatePayload(&req.Description, &req.Assignee, &req.Priority)
}

// validateUpdateTask validates an UpdateTaskRequest
func validateUpdateTask(req UpdateTaskRequest) error {
	if req.TaskID <= 0 {
		return NewFieldError("id", ErrInvalidTaskID)
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return err
		}
	}
	return validatePayload(req.Description, req.Assignee, req.Priority)
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return NewFieldError("title", ErrEmptyTitle)
	}
	if utf8.RuneCountInString(trimmed) > models.MaxTitleLength {
		return NewFieldError("title", ErrTitleTooLong)
	}
	return nil
}

func validatePayload(description, assignee *string, priority *models.Priority) error {
	if description != nil && utf8.RuneCountInString(*description) > models.MaxDescriptionLength {
		return NewFieldError("description", ErrDescriptionTooLong)
	}
	if assignee != nil && utf8.RuneCountInString(*assignee) > models.MaxAssigneeLength {
		return NewFieldError("assignee", ErrAssigneeTooLong)
	}
	if priority != nil && !priority.Valid() {
		return NewFieldError("priority", fmt.Errorf("%w: %q", ErrInvalidPriority, *priority))
	}
	return nil
}
