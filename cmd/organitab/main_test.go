package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// writeConfig points the store and exports into a temp dir.
func writeConfig(t *testing.T, backend string) (configPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	cfg := map[string]any{
		"backend":   backend,
		"dataPath":  filepath.Join(dir, "store-"+backend),
		"exportDir": filepath.Join(dir, "exports"),
		"logLevel":  "error",
	}
	data, err := json.Marshal(cfg)
	assert.NilError(t, err)
	configPath = filepath.Join(dir, "config.json")
	assert.NilError(t, os.WriteFile(configPath, data, 0644))
	return configPath, dir
}

func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, configPath string, args ...string) string {
	t.Helper()
	out, err := run(t, configPath, args...)
	assert.NilError(t, err, out)
	return out
}

func TestCLI_GroupsAndFolders(t *testing.T) {
	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfg, _ := writeConfig(t, backend)

			out := mustRun(t, cfg, "groups")
			assert.Check(t, is.Contains(out, "No saved tab groups yet."))

			out = mustRun(t, cfg, "save", "Docs", "https://go.dev/doc", "https://pkg.go.dev")
			assert.Check(t, is.Contains(out, `Saved 2 tabs as "Docs"`))
			mustRun(t, cfg, "save", "Research", "https://example.com")

			_, err := run(t, cfg, "save", "Docs", "https://other.example")
			assert.Check(t, err != nil, "duplicate group name should fail")

			out = mustRun(t, cfg, "folder", "create", "Work", "Docs", "Missing")
			assert.Check(t, is.Contains(out, `Created folder "Work" with 1 group`))
			assert.Check(t, is.Contains(out, "Skipped (not standalone): Missing"))

			out = mustRun(t, cfg, "groups")
			assert.Check(t, is.Contains(out, "Work/ (1)"))
			assert.Check(t, is.Contains(out, "    Docs  [2 tabs"))
			assert.Check(t, is.Contains(out, "Research  [1 tab"))

			out = mustRun(t, cfg, "folder", "delete", "Work")
			assert.Check(t, is.Contains(out, `Deleted folder "Work"`))
			out = mustRun(t, cfg, "groups")
			assert.Check(t, !strings.Contains(out, "Work/"))
			assert.Check(t, is.Contains(out, "Docs"))
		})
	}
}

func TestCLI_ExportImportMerge(t *testing.T) {
	cfg, dir := writeConfig(t, "json")
	mustRun(t, cfg, "save", "Docs", "https://go.dev/doc")
	mustRun(t, cfg, "bookmark", "add", "https://charm.sh", "--title", "Charm")
	mustRun(t, cfg, "todo", "add", "read", "the", "docs")

	backup := filepath.Join(dir, "backup.json")
	out := mustRun(t, cfg, "export", backup)
	assert.Check(t, is.Contains(out, "Exported to "+backup))

	out = mustRun(t, cfg, "import", "--mode", "merge", backup)
	assert.Check(t, is.Contains(out, "Merged: 1 group, 0 folders, 0 bookmarks, 0 todos"))
	assert.Check(t, is.Contains(out, `renamed "Docs" to "Docs (Imported 1)"`))
	assert.Check(t, is.Contains(out, "skipped 2 already saved"))

	out = mustRun(t, cfg, "groups")
	assert.Check(t, is.Contains(out, "Docs (Imported 1)"))
}

func TestCLI_ImportRequiresModeWithoutTerminal(t *testing.T) {
	cfg, dir := writeConfig(t, "json")
	mustRun(t, cfg, "save", "Docs", "https://go.dev/doc")
	backup := filepath.Join(dir, "backup.json")
	mustRun(t, cfg, "export", backup)

	_, err := run(t, cfg, "import", backup)
	assert.Check(t, is.ErrorContains(err, "--mode is required"))

	_, err = run(t, cfg, "import", "--mode", "replace", backup)
	assert.Check(t, is.ErrorContains(err, "unknown import mode"))
}

func TestCLI_ExportEmptyStore(t *testing.T) {
	cfg, dir := writeConfig(t, "json")
	_, err := run(t, cfg, "export", filepath.Join(dir, "backup.json"))
	assert.Check(t, is.ErrorContains(err, "no data found to export"))
}

func TestCLI_TodosAndSort(t *testing.T) {
	cfg, _ := writeConfig(t, "json")
	mustRun(t, cfg, "todo", "add", "first")
	mustRun(t, cfg, "todo", "add", "second")

	out := mustRun(t, cfg, "todo", "list")
	assert.Check(t, is.Contains(out, " 1 [ ] second"))

	mustRun(t, cfg, "todo", "done", "1")
	out = mustRun(t, cfg, "todo", "list")
	assert.Check(t, is.Contains(out, " 1 [ ] first"))
	assert.Check(t, is.Contains(out, " 2 [x] second"))

	out = mustRun(t, cfg, "sort")
	assert.Check(t, is.Equal(strings.TrimSpace(out), "dateDesc"))
	out = mustRun(t, cfg, "sort", "nameAsc")
	assert.Check(t, is.Contains(out, "Sorting groups by nameAsc"))
	_, err := run(t, cfg, "sort", "random")
	assert.Check(t, err != nil)
}
