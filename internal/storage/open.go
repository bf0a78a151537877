package storage

import (
	"github.com/mesh-intelligence/tasklist/internal/sqlite"
	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// Open validates cfg and returns the backend it selects, ready for use.
// The caller must Close it.
func Open(cfg types.Config) (types.Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case types.BackendSQLite:
		b := sqlite.NewBackend()
		if err := b.Attach(cfg); err != nil {
			return nil, err
		}
		return b, nil
	case types.BackendFile:
		return NewFileBackend(cfg.DataDir)
	case types.BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, types.ErrBackendUnknown
	}
}
