package kv

import (
	"errors"
	"testing"
)

func TestBadgerInMemoryStore(t *testing.T) {
	t.Parallel()

	store, err := NewBadger(BadgerOptions{InMemory: true})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer store.Close()

	storeConformance(t, store)
}

func TestBadgerReopenKeepsData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := NewBadger(BadgerOptions{Dir: dir})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := store.Set("snapshot", []byte("persisted")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := NewBadger(BadgerOptions{Dir: dir})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	val, err := reopened.Get("snapshot")
	if err != nil {
		t.Fatalf("get after reopen failed: %v", err)
	}
	if string(val) != "persisted" {
		t.Fatalf("unexpected value after reopen: %q", val)
	}
}

func TestBadgerRequiresDir(t *testing.T) {
	t.Parallel()

	if _, err := NewBadger(BadgerOptions{}); err == nil {
		t.Fatalf("expected error for missing dir")
	}

	store, err := NewBadger(BadgerOptions{InMemory: true})
	if err != nil {
		t.Fatalf("in-memory open failed: %v", err)
	}
	defer store.Close()

	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
