package store

import "context"

// EntriesKey is the single durable key holding the serialized entry
// collection.
const EntriesKey = "production_entries"

// KV is the synchronous key-value primitive the store persists through.
// Implementations live in internal/storage (sqlite, file, memory).
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error
}

// PersistError reports a failed durable write. The in-memory collection
// stays authoritative for the session; the caller surfaces the failure
// to the user instead of rolling back.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return "persist entries: " + e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
