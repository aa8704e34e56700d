package sqlite

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/unimatehq/unimate/core"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portal.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestOpenShouldRequirePath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("Open with a blank path should fail")
	}
}

func TestWriteThenReadShouldRoundTrip(t *testing.T) {
	store, _ := openTestStore(t)

	value := []byte(`{"events":[]}`)
	if err := store.Write("collection.events", value); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := store.Read("collection.events")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Unexpected value: %s", got)
	}
}

func TestReadShouldFailForAbsentKey(t *testing.T) {
	store, _ := openTestStore(t)

	if _, err := store.Read("missing"); !errors.Is(err, core.ErrKeyNotFound) {
		t.Errorf("Expected core.ErrKeyNotFound, got %v", err)
	}
}

func TestWriteShouldUpsert(t *testing.T) {
	store, _ := openTestStore(t)

	store.Write("key", []byte("first"))
	if err := store.Write("key", []byte("second")); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	got, _ := store.Read("key")
	if string(got) != "second" {
		t.Errorf("Expected last write to win, got %s", got)
	}
}

func TestDeleteShouldRemoveKeyAndTolerateAbsence(t *testing.T) {
	store, _ := openTestStore(t)
	store.Write("key", []byte("value"))

	if err := store.Delete("key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Read("key"); !errors.Is(err, core.ErrKeyNotFound) {
		t.Error("Deleted key should not be readable")
	}
	if err := store.Delete("key"); err != nil {
		t.Errorf("Deleting an absent key should succeed: %v", err)
	}
}

// Requirement: once Write returns, the value survives reopening the store.
func TestWriteShouldBeDurableAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := first.Write("session.user", []byte(`{"id":"1"}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer second.Close()

	got, err := second.Read("session.user")
	if err != nil {
		t.Fatalf("Read after reopen failed: %v", err)
	}
	if string(got) != `{"id":"1"}` {
		t.Errorf("Unexpected value after reopen: %s", got)
	}
}
