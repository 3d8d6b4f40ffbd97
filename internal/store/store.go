package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Siddharth05b/Solar-Energy-Tracker/internal/core"

	"github.com/google/uuid"
)

// Store owns the production entry collection: it keeps the authoritative
// in-memory copy and writes the whole collection back through the KV
// primitive after every mutation. At most one entry exists per date.
type Store struct {
	mu      sync.Mutex
	kv      KV
	key     string
	entries []core.Entry
	loaded  bool
}

func New(kv KV) *Store {
	return &Store{kv: kv, key: EntriesKey}
}

// Load reads the persisted collection. Absent or unparseable data is not
// a failure: the store degrades to an empty collection and returns the
// cause so the caller can surface a non-fatal notice. Entries persisted
// without an identifier get a fresh one here; the corrected collection
// is written back on the next save.
func (s *Store) Load(ctx context.Context) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notice := s.loadLocked(ctx)
	return s.snapshotLocked(), notice
}

func (s *Store) loadLocked(ctx context.Context) error {
	s.loaded = true
	s.entries = nil

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		slog.WarnContext(ctx, "Stored entries unreadable, starting empty", "key", s.key, "error", err)
		return fmt.Errorf("read stored entries: %w", err)
	}
	if !ok {
		return nil
	}

	var entries []core.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.WarnContext(ctx, "Stored entries corrupt, starting empty", "key", s.key, "error", err)
		return fmt.Errorf("decode stored entries: %w", err)
	}

	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
			slog.InfoContext(ctx, "Assigned missing entry identifier",
				"date", entries[i].Date.String(), "id", entries[i].ID)
		}
	}
	s.entries = entries
	return nil
}

// Entries returns a copy of the current collection, loading it on first
// use. The error carries the same non-fatal notice semantics as Load.
func (s *Store) Entries(ctx context.Context) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notice error
	if !s.loaded {
		notice = s.loadLocked(ctx)
	}
	return s.snapshotLocked(), notice
}

func (s *Store) snapshotLocked() []core.Entry {
	out := make([]core.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Upsert records production for a date. An existing entry for that date
// keeps its identifier and gets the new production value; otherwise a
// new entry with a fresh identifier is created. A *PersistError return
// means the durable write failed while the in-memory mutation stands.
// Range and format validation happen at the input boundary, not here.
func (s *Store) Upsert(ctx context.Context, date core.Date, production float64) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoadedLocked(ctx)

	for i := range s.entries {
		if s.entries[i].Date.String() == date.String() {
			s.entries[i].Production = production
			entry := s.entries[i]
			slog.InfoContext(ctx, "Entry updated",
				"id", entry.ID, "date", entry.Date.String(), "production_kwh", entry.Production)
			return entry, s.persistLocked(ctx)
		}
	}

	entry := core.NewEntry(date, production)
	s.entries = append(s.entries, entry)
	slog.InfoContext(ctx, "Entry created",
		"id", entry.ID, "date", entry.Date.String(), "production_kwh", entry.Production)
	return entry, s.persistLocked(ctx)
}

// Remove deletes the entry with the given identifier and returns it so
// the caller can offer undo. A missing identifier is a no-op, not an
// error: Remove returns (nil, nil).
func (s *Store) Remove(ctx context.Context, id string) (*core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoadedLocked(ctx)

	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		removed := s.entries[i]
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		slog.InfoContext(ctx, "Entry removed", "id", removed.ID, "date", removed.Date.String())
		return &removed, s.persistLocked(ctx)
	}
	return nil, nil
}

// Restore re-inserts a previously removed entry with its original
// identifier and date, replacing any entry that meanwhile claimed the
// same date. This is undo-via-reinsert, not a transactional rollback:
// an upsert that happened between delete and undo is silently
// overwritten (known race, single-writer assumption).
func (s *Store) Restore(ctx context.Context, entry core.Entry) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoadedLocked(ctx)

	for i := range s.entries {
		if s.entries[i].Date.String() == entry.Date.String() {
			s.entries[i] = entry
			slog.InfoContext(ctx, "Entry restored over intervening change",
				"id", entry.ID, "date", entry.Date.String())
			return entry, s.persistLocked(ctx)
		}
	}

	s.entries = append(s.entries, entry)
	slog.InfoContext(ctx, "Entry restored", "id", entry.ID, "date", entry.Date.String())
	return entry, s.persistLocked(ctx)
}

// Persist writes the full current collection to durable storage.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Store) ensureLoadedLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	// Mutating an unloaded store implies the caller skipped Load; the
	// recovery notice was already logged there.
	_ = s.loadLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	entries := s.entries
	if entries == nil {
		entries = []core.Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return &PersistError{Err: fmt.Errorf("encode entries: %w", err)}
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		slog.ErrorContext(ctx, "Durable write failed, in-memory state diverges",
			"key", s.key, "count", len(s.entries), "error", err)
		return &PersistError{Err: err}
	}
	return nil
}
