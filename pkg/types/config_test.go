package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:   "valid sqlite config",
			config: Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
		},
		{
			name:   "file backend with custom key",
			config: Config{Backend: BackendFile, DataDir: "/tmp/data", StorageKey: "groceries"},
		},
		{
			name:   "memory backend with empty DataDir is valid",
			config: Config{Backend: BackendMemory},
		},
		{
			name:    "key with path separator is rejected",
			config:  Config{Backend: BackendFile, StorageKey: "../data"},
			wantErr: ErrInvalidKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigKey(t *testing.T) {
	assert.Equal(t, DefaultStorageKey, Config{}.Key())
	assert.Equal(t, "shopping", Config{StorageKey: "shopping"}.Key())
}
