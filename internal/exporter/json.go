// Package exporter writes the store out as a backup file or as Netscape
// bookmark HTML for browsers.
package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nikbrunner/organitab/internal/model"
)

// ExportJSON returns the pretty-printed backup document for store. An empty
// store is a validation error: there is nothing worth exporting.
func ExportJSON(store *model.Store) ([]byte, error) {
	if store.IsEmpty() {
		return nil, fmt.Errorf("%w: no data found to export", model.ErrValidation)
	}
	out := store.Clone()
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DefaultExportPath returns the backup path inside dir, or ~/Downloads when
// dir is empty. Format: organitab-backup-YYYY-MM-DD-HH-MM-SS.json
func DefaultExportPath(dir string, at time.Time) (string, error) {
	return exportPath(dir, fmt.Sprintf("organitab-backup-%s.json", at.Format("2006-01-02-15-04-05")))
}

// DefaultHTMLExportPath returns the HTML export path inside dir, or
// ~/Downloads when dir is empty. Format: organitab-export-YYYY-MM-DD.html
func DefaultHTMLExportPath(dir string, at time.Time) (string, error) {
	return exportPath(dir, fmt.Sprintf("organitab-export-%s.html", at.Format("2006-01-02")))
}

func exportPath(dir, filename string) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, "Downloads")
	}
	return filepath.Join(dir, filename), nil
}

// WriteFile writes data to path, creating the directory if needed.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
