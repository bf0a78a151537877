package types

import (
	"errors"
	"strings"
)

// Config holds backend selection and parameters for opening storage.
type Config struct {
	Backend    string `json:"backend" yaml:"backend"`
	DataDir    string `json:"data_dir" yaml:"data_dir"`
	StorageKey string `json:"storage_key" yaml:"storage_key"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// DefaultStorageKey is the key holding the serialized task list.
const DefaultStorageKey = "data"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrInvalidKey     = errors.New("invalid storage key")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendFile:   true,
	BackendMemory: true,
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.StorageKey != "" {
		if err := ValidateKey(c.StorageKey); err != nil {
			return err
		}
	}
	return nil
}

// Key returns the storage key, falling back to DefaultStorageKey.
func (c Config) Key() string {
	if c.StorageKey == "" {
		return DefaultStorageKey
	}
	return c.StorageKey
}

// ValidateKey rejects keys that cannot double as file names.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
