package storage

import (
	"sync"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

var _ types.Storage = (*MemoryBackend)(nil)

// MemoryBackend keeps values in a map. Nothing survives the process.
type MemoryBackend struct {
	mu     sync.RWMutex
	items  map[string]string
	closed bool
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string]string)}
}

// GetItem returns the value stored under key and whether it was present.
func (m *MemoryBackend) GetItem(key string) (string, bool, error) {
	if err := types.ValidateKey(key); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, types.ErrDetached
	}
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem stores value under key, replacing any previous value.
func (m *MemoryBackend) SetItem(key, value string) error {
	if err := types.ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return types.ErrDetached
	}
	m.items[key] = value
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (m *MemoryBackend) RemoveItem(key string) error {
	if err := types.ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return types.ErrDetached
	}
	delete(m.items, key)
	return nil
}

// Clear drops every key.
func (m *MemoryBackend) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return types.ErrDetached
	}
	m.items = make(map[string]string)
	return nil
}

// Close detaches the backend; later calls return types.ErrDetached.
// Idempotent.
func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
