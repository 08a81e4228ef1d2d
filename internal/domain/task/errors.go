package task

import "errors"

var (
	// ErrTaskNotFound indicates the task doesn't exist or isn't visible to the viewer.
	ErrTaskNotFound = errors.New("task not found")
	// ErrForbidden indicates the viewer may not perform the operation.
	ErrForbidden = errors.New("operation not permitted for this user")
	// ErrOutsideEditWindow indicates the task date is outside the editable range.
	ErrOutsideEditWindow = errors.New("task date outside edit window")
	// ErrInvalidInput indicates invalid task input.
	ErrInvalidInput = errors.New("invalid task input")
)
