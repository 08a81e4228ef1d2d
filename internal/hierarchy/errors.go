package hierarchy

import "errors"

var (
	// ErrMalformedTask indicates a task without a usable date.
	ErrMalformedTask = errors.New("malformed task")
	// ErrInvalidKey indicates a node key that cannot be parsed.
	ErrInvalidKey = errors.New("invalid node key")
)
