package artifacts

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrArtifactMissing marks an absent artifact file. Missing models are
	// recoverable: the service starts degraded and serves the neutral
	// fallback.
	ErrArtifactMissing = errors.New("artifact missing")

	// ErrArtifactCorrupt marks an artifact that exists but cannot be parsed.
	ErrArtifactCorrupt = errors.New("artifact corrupt")

	// ErrSchemaMismatch marks disagreement between the compiled feature
	// contract and a persisted artifact. This is a fatal startup condition:
	// a model trained against a different schema would score garbage
	// undetectably.
	ErrSchemaMismatch = errors.New("feature schema mismatch")
)
