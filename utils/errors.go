package utils

import "errors"

// Failures reported by mesh construction, element queries and basis construction. They are
// returned wrapped with context, callers match them with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidElement    = errors.New("invalid element")
	ErrDegenerateElement = errors.New("degenerate element")
)
