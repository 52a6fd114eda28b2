package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/services/task"
)

// ============================================================================
// REQUEST BODIES
// ============================================================================

// createTaskRequest is the POST body. A position, if sent, is ignored:
// new tasks always go to the end of their column.
type createTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Status      string `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
	Assignee    string `json:"assignee" validate:"max=50"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Position    *int   `json:"position"`
}

// patchTaskRequest is the PATCH body; absent fields are left unchanged
type patchTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Assignee    *string `json:"assignee" validate:"omitempty,max=50"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// replaceTaskRequest is the PUT body; absent fields are cleared
type replaceTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Assignee    string `json:"assignee" validate:"max=50"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

type moveTaskRequest struct {
	Status   string `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
	Position *int   `json:"position" validate:"required,min=0"`
}

// ============================================================================
// TASK HANDLERS
// ============================================================================

func (s *Server) listTasks(c echo.Context) error {
	tasks, err := s.tasks.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) listTasksByStatus(c echo.Context) error {
	status, err := models.ParseStatus(c.Param("status"))
	if err != nil {
		return task.NewFieldError("status", err)
	}
	tasks, err := s.tasks.ListTasksByStatus(c.Request().Context(), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) getTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	t, err := s.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) createTask(c echo.Context) error {
	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	t, err := s.tasks.CreateTask(c.Request().Context(), task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.Status(req.Status),
		Assignee:    req.Assignee,
		Priority:    models.Priority(req.Priority),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) patchTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var req patchTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	update := task.UpdateTaskRequest{
		TaskID:      id,
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
	}
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		update.Priority = &p
	}

	t, err := s.tasks.UpdateTask(c.Request().Context(), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) replaceTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var req replaceTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	priority := models.Priority(req.Priority)
	t, err := s.tasks.UpdateTask(c.Request().Context(), task.UpdateTaskRequest{
		TaskID:      id,
		Title:       &req.Title,
		Description: &req.Description,
		Assignee:    &req.Assignee,
		Priority:    &priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) moveTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var req moveTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := s.tasks.MoveTask(c.Request().Context(), id, models.Status(req.Status), *req.Position); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (s *Server) deleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	if err := s.tasks.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ============================================================================
// BOARD AND OPERATIONS
// ============================================================================

func (s *Server) board(c echo.Context) error {
	summaries, err := s.columns.Summaries(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaries)
}

func (s *Server) verifyBoard(c echo.Context) error {
	reports, err := s.columns.Verify(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) healthz(c echo.Context) error {
	if err := s.health.Ping(c.Request().Context()); err != nil {
		s.logger.Warn("health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: "database unreachable"})
	}
	resp := healthResponse{Status: "ok"}
	if s.metrics != nil {
		resp.Uptime = s.metrics.Uptime().Truncate(time.Second).String()
	}
	return c.JSON(http.StatusOK, resp)
}

// ============================================================================
// HELPERS
// ============================================================================

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, task.NewFieldError("id", fmt.Errorf("%w: %q", task.ErrInvalidTaskID, c.Param("id")))
	}
	return id, nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
