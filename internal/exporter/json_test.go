package exporter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/organitab/internal/model"
)

func TestExportJSON_EmptyStore(t *testing.T) {
	if _, err := ExportJSON(model.NewStore()); !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestExportJSON_Shape(t *testing.T) {
	store := model.NewStore()
	store.Todos = []model.TodoItem{{ID: "1", Text: "ship it"}}

	data, err := ExportJSON(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	for _, key := range []string{"tabGroups", "folders", "bookmarks", "todos"} {
		if _, ok := top[key]; !ok {
			t.Errorf("expected key %q in export", key)
		}
	}
	if string(top["tabGroups"]) != "{}" {
		t.Errorf("empty groups should export as {}, got %s", top["tabGroups"])
	}
	if !strings.Contains(string(data), "\n  \"todos\"") {
		t.Error("expected pretty-printed output")
	}
}

func TestDefaultExportPath(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	path, err := DefaultExportPath("/tmp/out", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join("/tmp/out", "organitab-backup-2024-03-05-14-07-09.json")
	if path != want {
		t.Errorf("expected %s, got %s", want, path)
	}

	path, err = DefaultHTMLExportPath("", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("Downloads", "organitab-export-2024-03-05.html")) {
		t.Errorf("unexpected html path %s", path)
	}
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "backup.json")
	if err := WriteFile(path, []byte("{}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
