package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryKVRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("missing key: got ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "k", []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(v) != `[1,2,3]` {
		t.Fatalf("value: got %s", v)
	}

	// Returned slice is a copy; mutating it must not corrupt the store.
	v[0] = 'X'
	again, _, _ := kv.Get(ctx, "k")
	if string(again) != `[1,2,3]` {
		t.Fatalf("store mutated through returned slice: %s", again)
	}
}

func TestFileKVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "entries")
	if err != nil || ok {
		t.Fatalf("missing key: got ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "entries", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "entries")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(v) != `[{"id":"a"}]` {
		t.Fatalf("value: got %s", v)
	}

	// Overwrite replaces the previous value completely.
	if err := kv.Set(ctx, "entries", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = kv.Get(ctx, "entries")
	if string(v) != `[]` {
		t.Fatalf("overwrite value: got %s", v)
	}

	// No temp files left behind.
	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Fatalf("leftover temp files: %v", matches)
	}
}

func TestFileKVCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewFileKV(dir); err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("directory not created: %v", err)
	}
}
