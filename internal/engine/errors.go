package engine

import "errors"

// Domain errors for engine operations.
var (
	// ErrInvalidMode indicates a mode value outside clear, snow, rain and fireworks.
	ErrInvalidMode = errors.New("engine: invalid mode")
)
