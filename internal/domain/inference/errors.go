package inference

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrModelsUnavailable marks the recoverable degraded condition: one or
	// more skill models failed to load and scoring fell back to neutral.
	ErrModelsUnavailable = errors.New("skill models unavailable")
)
