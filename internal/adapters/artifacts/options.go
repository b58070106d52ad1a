package artifacts

import (
	"github.com/Divyansh-Wadhwa/AURA/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithDir sets the directory holding the trained artifacts.
func WithDir(dir string) Option {
	return func(s *Store) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithSchemaFile overrides the path of the schema export. By default the
// store looks for schema.json inside the artifact directory.
func WithSchemaFile(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.schemaFile = path
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}
