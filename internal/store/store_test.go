package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Siddharth05b/Solar-Energy-Tracker/internal/core"
)

// fakeKV is an in-memory KV with injectable failures.
type fakeKV struct {
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value []byte) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %s: %v", s, err)
	}
	return d
}

func TestLoadEmptyStore(t *testing.T) {
	s := New(newFakeKV())
	entries, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("absent data must not be an error, got %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty collection, got %d entries", len(entries))
	}
}

func TestLoadCorruptDataStartsEmpty(t *testing.T) {
	kv := newFakeKV()
	kv.data[EntriesKey] = []byte(`{not json`)

	s := New(kv)
	entries, err := s.Load(context.Background())
	if err == nil {
		t.Fatal("corrupt data should produce a recovery notice")
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty collection after recovery, got %d", len(entries))
	}

	// The store stays usable after recovery.
	if _, err := s.Upsert(context.Background(), mustDate(t, "2025-06-16"), 5); err != nil {
		t.Fatalf("upsert after recovery: %v", err)
	}
}

func TestLoadUnreadableStorageStartsEmpty(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("storage unavailable")

	s := New(kv)
	entries, err := s.Load(context.Background())
	if err == nil {
		t.Fatal("unreadable storage should produce a recovery notice")
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty collection, got %d", len(entries))
	}
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	s := New(newFakeKV())
	ctx := context.Background()
	date := mustDate(t, "2025-06-16")

	created, err := s.Upsert(ctx, date, 5)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created entry must carry an identifier")
	}

	updated, err := s.Upsert(ctx, date, 7.5)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("identifier must survive edits: got %s, want %s", updated.ID, created.ID)
	}
	if updated.Production != 7.5 {
		t.Fatalf("production: got %v, want 7.5", updated.Production)
	}

	entries, _ := s.Entries(ctx)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one entry per date, got %d", len(entries))
	}
	if entries[0].Production != 7.5 {
		t.Fatalf("stored production: got %v, want 7.5", entries[0].Production)
	}
}

func TestUpsertVisibleAfterReload(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()

	first := New(kv)
	if _, err := first.Upsert(ctx, mustDate(t, "2025-06-16"), 5); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	second := New(kv)
	entries, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 || entries[0].Date.String() != "2025-06-16" || entries[0].Production != 5 {
		t.Fatalf("reload mismatch: %+v", entries)
	}
}

func TestRemoveAndNoOpRemove(t *testing.T) {
	s := New(newFakeKV())
	ctx := context.Background()

	entry, err := s.Upsert(ctx, mustDate(t, "2025-06-16"), 5)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	removed, err := s.Remove(ctx, entry.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed == nil || removed.ID != entry.ID {
		t.Fatalf("remove should return the deleted entry, got %+v", removed)
	}

	// Unknown identifier: no-op, collection unchanged.
	before, _ := s.Entries(ctx)
	removed, err = s.Remove(ctx, "no-such-id")
	if err != nil || removed != nil {
		t.Fatalf("expected no-op, got %+v, %v", removed, err)
	}
	after, _ := s.Entries(ctx)
	if len(before) != len(after) {
		t.Fatalf("no-op remove changed the collection: %d -> %d", len(before), len(after))
	}
}

func TestRestoreAfterRemove(t *testing.T) {
	s := New(newFakeKV())
	ctx := context.Background()

	entry, _ := s.Upsert(ctx, mustDate(t, "2025-06-16"), 5)
	removed, _ := s.Remove(ctx, entry.ID)

	restored, err := s.Restore(ctx, *removed)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.ID != entry.ID || restored.Production != 5 {
		t.Fatalf("restore must keep identifier and value, got %+v", restored)
	}
}

// Undo is reinsert, not rollback: an upsert between delete and undo is
// overwritten. This pins the documented behavior.
func TestRestoreOverwritesInterveningUpsert(t *testing.T) {
	s := New(newFakeKV())
	ctx := context.Background()
	date := mustDate(t, "2025-06-16")

	original, _ := s.Upsert(ctx, date, 5)
	removed, _ := s.Remove(ctx, original.ID)
	intervening, _ := s.Upsert(ctx, date, 9)

	if _, err := s.Restore(ctx, *removed); err != nil {
		t.Fatalf("restore: %v", err)
	}

	entries, _ := s.Entries(ctx)
	if len(entries) != 1 {
		t.Fatalf("expected one entry for the date, got %d", len(entries))
	}
	if entries[0].ID != original.ID || entries[0].Production != 5 {
		t.Fatalf("restore should win over intervening upsert %s, got %+v", intervening.ID, entries[0])
	}
}

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("quota exceeded")

	s := New(kv)
	ctx := context.Background()

	entry, err := s.Upsert(ctx, mustDate(t, "2025-06-16"), 5)
	var perr *PersistError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PersistError, got %v", err)
	}
	if entry.Production != 5 {
		t.Fatalf("mutation result must still be returned, got %+v", entry)
	}

	// In-memory state is authoritative despite the failed write.
	entries, _ := s.Entries(ctx)
	if len(entries) != 1 || entries[0].Production != 5 {
		t.Fatalf("in-memory state lost after persist failure: %+v", entries)
	}
}

func TestLoadBackfillsMissingIDs(t *testing.T) {
	kv := newFakeKV()
	kv.data[EntriesKey] = []byte(`[{"date":"2025-06-16","production":5,"id":""},{"date":"2025-06-17","production":3,"id":"keep-me"}]`)

	s := New(kv)
	entries, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID == "" {
		t.Fatal("missing identifier must be synthesized at load time")
	}
	if entries[1].ID != "keep-me" {
		t.Fatalf("existing identifier must be preserved, got %s", entries[1].ID)
	}

	// Backfill is a read-time normalization only; the durable store is
	// untouched until the next save, and repeated loads stay idempotent.
	again, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again[1].ID != "keep-me" {
		t.Fatalf("reload changed a stable identifier: %s", again[1].ID)
	}
}

func TestPersistAfterLoadIsNoOp(t *testing.T) {
	kv := newFakeKV()
	s := New(kv)
	ctx := context.Background()

	if _, err := s.Upsert(ctx, mustDate(t, "2025-06-16"), 5); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := s.Upsert(ctx, mustDate(t, "2025-06-17"), 3); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	before := append([]byte(nil), kv.data[EntriesKey]...)

	reloaded := New(kv)
	if _, err := reloaded.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := reloaded.Persist(ctx); err != nil {
		t.Fatalf("persist: %v", err)
	}

	if string(kv.data[EntriesKey]) != string(before) {
		t.Fatalf("persist(load()) changed durable contents:\n%s\n%s", before, kv.data[EntriesKey])
	}
}
