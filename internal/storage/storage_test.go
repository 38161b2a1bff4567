package storage_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/organitab/internal/model"
	"github.com/nikbrunner/organitab/internal/storage"
)

func sampleStore() *model.Store {
	store := model.NewStore()
	store.Standalone["Work"] = model.Group{
		Tabs:      []model.TabRecord{{URL: "https://example.com", Title: "Example"}},
		DateAdded: 1700000000000,
	}
	store.Folders["Dev"] = model.Folder{
		Groups: model.Groups{
			"Go": {Tabs: []model.TabRecord{{URL: "https://go.dev", Title: "Go"}}, DateAdded: 1700000000000},
		},
		DateCreated: 1700000000000,
	}
	store.Bookmarks = []model.Bookmark{{URL: "https://charm.sh", Title: "Charm"}}
	store.Todos = []model.TodoItem{{ID: "t1", Text: "test storage"}}
	return store
}

func TestJSONStorage_SaveAndLoadState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	s := storage.NewJSONStorage(path)

	if err := storage.SaveState(ctx, s, sampleStore()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("store file was not created")
	}

	loaded, err := storage.LoadState(ctx, s)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded.Standalone) != 1 || len(loaded.Folders) != 1 {
		t.Errorf("expected 1 group and 1 folder, got %d and %d", len(loaded.Standalone), len(loaded.Folders))
	}
	if _, ok := loaded.Folders["Dev"].Groups["Go"]; !ok {
		t.Error("expected folder group to survive a round trip")
	}
	if len(loaded.Bookmarks) != 1 || len(loaded.Todos) != 1 {
		t.Errorf("expected 1 bookmark and 1 todo, got %d and %d", len(loaded.Bookmarks), len(loaded.Todos))
	}
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "nonexistent.json"))

	store, err := storage.LoadState(context.Background(), s)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if !store.IsEmpty() {
		t.Error("expected empty store for missing file")
	}
	if store.Standalone == nil || store.Folders == nil || store.Bookmarks == nil || store.Todos == nil {
		t.Error("absent keys should read as empty collections")
	}
}

func TestJSONStorage_SetLeavesOtherKeys(t *testing.T) {
	ctx := context.Background()
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "nested", "dir", "store.json"))

	if err := storage.SaveState(ctx, s, sampleStore()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	update := model.NewStore()
	if err := storage.SaveState(ctx, s, update, storage.KeyTodos); err != nil {
		t.Fatalf("failed to save todos: %v", err)
	}

	loaded, err := storage.LoadState(ctx, s)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded.Todos) != 0 {
		t.Errorf("expected todos cleared, got %d", len(loaded.Todos))
	}
	if len(loaded.Standalone) != 1 || len(loaded.Bookmarks) != 1 {
		t.Error("keys not written must keep their values")
	}
}

func TestJSONStorage_ReadsExtensionExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	data := `{
  "tabGroups": {"Research": {"tabs": [{"url": "https://a.com", "title": "A", "favIconUrl": ""}], "dateAdded": 1700000000000}},
  "folders": {"Empty": {"groups": null, "dateCreated": 1700000000000}},
  "todos": [{"id": 1700000000000.5, "text": "numeric id", "completed": true, "dateAdded": 1700000000000}],
  "groupSortOrder": "nameAsc"
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := storage.NewJSONStorage(path)
	ctx := context.Background()

	store, err := storage.LoadState(ctx, s)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if store.Folders["Empty"].Groups == nil {
		t.Error("null folder groups should normalize to empty")
	}
	if store.Todos[0].ID != "1700000000000.5" {
		t.Errorf("unexpected todo id %q", store.Todos[0].ID)
	}

	order, err := storage.LoadString(ctx, s, storage.KeyGroupSortOrder, "dateDesc")
	if err != nil {
		t.Fatalf("failed to load sort order: %v", err)
	}
	if order != "nameAsc" {
		t.Errorf("expected nameAsc, got %q", order)
	}
}

func TestLoadString_Default(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStorage()

	got, err := storage.LoadString(ctx, kv, storage.KeyGroupSortOrder, "dateDesc")
	if err != nil || got != "dateDesc" {
		t.Errorf("expected default, got %q (err %v)", got, err)
	}

	if err := storage.SaveString(ctx, kv, storage.KeyGroupSortOrder, "tabsAsc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ = storage.LoadString(ctx, kv, storage.KeyGroupSortOrder, "dateDesc")
	if got != "tabsAsc" {
		t.Errorf("expected tabsAsc, got %q", got)
	}
}

func TestMemoryStorage_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStorage()
	value := json.RawMessage(`[1]`)

	if err := kv.Set(ctx, map[string]json.RawMessage{"k": value}); err != nil {
		t.Fatalf("set: %v", err)
	}
	value[1] = '2'

	got, _ := kv.Get(ctx, "k", "missing")
	if string(got["k"]) != "[1]" {
		t.Errorf("stored value aliased the caller's slice: %s", got["k"])
	}
	if _, ok := got["missing"]; ok {
		t.Error("missing keys should be absent")
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, _, err := storage.Open("redis", filepath.Join(t.TempDir(), "x")); err == nil {
		t.Error("expected error for unknown backend")
	}
}
