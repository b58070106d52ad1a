package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if AURA_CONFIG is set
//  3. env (prefix AURA_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("AURA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: AURA_ADDR, AURA_MODELS_DIR, ...
	// Map env keys like AURA_MODELS_DIR -> models_dir (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("AURA_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "aura_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.ModelsDir == "" {
		return nil, fmt.Errorf("%w: models_dir must not be empty", ErrInvalidConfig)
	}
	if cfg.BatchWorkers < 1 {
		return nil, fmt.Errorf("%w: batch_workers must be positive", ErrInvalidConfig)
	}
	if cfg.MaxBatchSize < 1 {
		return nil, fmt.Errorf("%w: max_batch_size must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
