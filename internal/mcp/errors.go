package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/rpggio/worklog/internal/hierarchy"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	cause        error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.RecoveryHint != "" {
		msg += " (" + e.RecoveryHint + ")"
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return &APIError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Call list_tasks for valid ids", cause: err}
	case errors.Is(err, task.ErrOutsideEditWindow):
		return &APIError{Code: "OUTSIDE_EDIT_WINDOW", Message: err.Error(), RecoveryHint: "Call edit_window for the allowed dates", cause: err}
	case errors.Is(err, task.ErrInvalidInput), errors.Is(err, user.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), cause: err}
	case errors.Is(err, hierarchy.ErrInvalidKey):
		return &APIError{Code: "INVALID_KEY", Message: err.Error(), RecoveryHint: "Use a key from task_hierarchy", cause: err}
	case errors.Is(err, task.ErrForbidden), errors.Is(err, user.ErrForbidden):
		return &APIError{Code: "FORBIDDEN", Message: "operation not permitted for this user", RecoveryHint: "Managers read, employees write their own tasks", cause: err}
	case errors.Is(err, user.ErrUserNotFound):
		return &APIError{Code: "USER_NOT_FOUND", Message: "user not found", cause: err}
	default:
		return nil
	}
}

// toolError converts err for return from a tool handler.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
