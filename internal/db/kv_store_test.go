package db

import (
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestStore(t *testing.T) *KVStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "exampilot.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoadMissingSlot(t *testing.T) {
	store := openTestStore(t)
	_, ok, err := store.Load("exampilot_books")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatal("missing slot should report ok=false")
	}
}

func TestSaveAllRoundTrip(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveAll(map[string]string{
		"exampilot_books":     `[{"id":"b1"}]`,
		"exampilot_user_name": "プロデューサーさん",
	}); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	v, ok, err := store.Load("exampilot_user_name")
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if v != "プロデューサーさん" {
		t.Fatalf("value = %q", v)
	}

	// Upsert overwrites in place.
	if err := store.SaveAll(map[string]string{"exampilot_user_name": "あいす"}); err != nil {
		t.Fatalf("SaveAll overwrite: %v", err)
	}
	v, _, _ = store.Load("exampilot_user_name")
	if v != "あいす" {
		t.Fatalf("value after overwrite = %q", v)
	}
	// Slots not in the map are untouched.
	if _, ok, _ := store.Load("exampilot_books"); !ok {
		t.Fatal("unrelated slot should survive a partial SaveAll")
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveAll(map[string]string{"exampilot_todos": "[]"}); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := store.Load("exampilot_todos"); ok {
		t.Fatal("slot should be gone after Clear")
	}
}
