package backend

import (
	"context"

	"github.com/Siddharth05b/Solar-Energy-Tracker/internal/store"
)

// CleanupFunc releases resources held by a backend
type CleanupFunc func() error

// Result contains the key-value backend and optional cleanup function
type Result struct {
	KV      store.KV
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a key-value backend based on the provided config
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// File backend specific
	DataDirectory string
}

// Type represents the type of storage backend
type Type string

const (
	SQLiteBackend Type = "sqlite"
	FileBackend   Type = "file"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, FileBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
