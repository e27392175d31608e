package db

import (
	"errors"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Cannot open store in %s: %s", dir, err.Error())
	}

	if _, err = s.Get(KeyAppState); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty store, got %v", err)
	}

	if err = s.Put(KeyAppState, []byte(`{"tasks":[]}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err = s.Put(KeyAppState, []byte(`{"tasks":[{"id":"1"}]}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := s.Get(KeyAppState)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"tasks":[{"id":"1"}]}` {
		t.Errorf("last write should win, got %s", got)
	}

	if err = s.Delete(KeyAppState); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err = s.Get(KeyAppState); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err = s.Close(); err != nil {
		t.Errorf("close: %v", err)
	}

	// reopening applies the schema again
	if s, err = Open(dir); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = s.Close()
}

func TestStoreStampsUpdatedAt(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err = s.Put(KeyTimerState, []byte(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	var stamp string
	if err = s.db.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, KeyTimerState).Scan(&stamp); err != nil {
		t.Fatalf("fresh schema should carry updated_at: %v", err)
	}
	if stamp == "" {
		t.Error("updated_at not set on put")
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	_ = m.Put("k", buf)
	buf[0] = 'x'

	got, err := m.Get("k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("stored value must not alias caller buffer, got %s", got)
	}
}
