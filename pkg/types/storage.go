package types

import "errors"

// Storage is a durable string key/value store with browser localStorage
// semantics. Values are opaque to the store.
type Storage interface {
	// GetItem returns the value stored under key. ok is false when the key
	// is absent; that is not an error.
	GetItem(key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing an absent key succeeds.
	RemoveItem(key string) error

	// Clear removes every key.
	Clear() error

	// Close releases backend resources. Idempotent.
	Close() error
}

// Storage lifecycle errors.
var (
	ErrDetached        = errors.New("storage is detached")
	ErrAlreadyAttached = errors.New("storage is already attached")
)
