package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/services/task"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Status    int                `json:"status"`
	Message   string             `json:"message"`
	Timestamp time.Time          `json:"timestamp"`
	Errors    []FieldErrorDetail `json:"errors,omitempty"`
}

// FieldErrorDetail names one invalid request field
type FieldErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const (
	msgValidation = "request validation failed"
	msgNotFound   = "task not found"
	msgConflict   = "the board was changed concurrently, retry the request"
	msgInternal   = "internal server error"
)

// errorHandler maps error kinds onto status codes and the JSON error body
func errorHandler(logger *slog.Logger, now func() time.Time) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := toErrorResponse(err)
		resp.Timestamp = now().UTC()
		if resp.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.Status)
		} else {
			err = c.JSON(resp.Status, resp)
		}
		if err != nil {
			logger.Warn("failed to write error response", "error", err)
		}
	}
}

func toErrorResponse(err error) ErrorResponse {
	var (
		verr *ValidationError
		ferr *task.FieldError
		herr *echo.HTTPError
		resp ErrorResponse
	)

	switch {
	case errors.As(err, &verr):
		resp = ErrorResponse{Status: http.StatusBadRequest, Message: msgValidation, Errors: verr.Fields}
	case errors.As(err, &ferr):
		resp = ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: msgValidation,
			Errors:  []FieldErrorDetail{{Field: ferr.Field, Message: ferr.Err.Error()}},
		}
	case errors.Is(err, models.ErrNotFound):
		resp = ErrorResponse{Status: http.StatusNotFound, Message: msgNotFound}
	case errors.Is(err, models.ErrInvalidArgument):
		resp = ErrorResponse{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, models.ErrTransactionConflict):
		resp = ErrorResponse{Status: http.StatusConflict, Message: msgConflict}
	case errors.As(err, &herr):
		resp = ErrorResponse{Status: herr.Code, Message: http.StatusText(herr.Code)}
		if msg, ok := herr.Message.(string); ok {
			resp.Message = msg
		}
	default:
		resp = ErrorResponse{Status: http.StatusInternalServerError, Message: msgInternal}
	}
	return resp
}
