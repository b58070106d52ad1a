// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults, Load(ctx) to layer
//   file and environment overrides on top.
// - External errors must be wrapped via this package's error sentinels.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// ModelsDir is the directory holding trained model artifacts.
	ModelsDir string `koanf:"models_dir"`

	// SchemaFile overrides the schema export path; defaults to
	// <models_dir>/schema.json when empty.
	SchemaFile string `koanf:"schema_file"`

	// BatchWorkers bounds concurrency for batch scoring.
	BatchWorkers int `koanf:"batch_workers"`

	// MaxBatchSize caps the number of sessions in one batch request.
	MaxBatchSize int `koanf:"max_batch_size"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":8000",
		ModelsDir:    "models",
		BatchWorkers: runtime.NumCPU(),
		MaxBatchSize: 64,
	}
}
