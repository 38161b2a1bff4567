// Package tabs talks to the browser: it reads the currently open tabs and
// opens saved ones again.
package tabs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/organitab/internal/model"
)

// ErrNoProfile is returned when no browser profile is configured.
var ErrNoProfile = errors.New("no firefox profile configured")

// Source enumerates the currently open tabs.
type Source interface {
	Tabs(ctx context.Context) ([]model.TabRecord, error)
}

// StaticSource returns a fixed list of tabs.
type StaticSource []model.TabRecord

// Tabs returns a copy of the list.
func (s StaticSource) Tabs(ctx context.Context) ([]model.TabRecord, error) {
	return append([]model.TabRecord(nil), s...), nil
}

// FirefoxSource reads open tabs from a Firefox profile's session backup.
type FirefoxSource struct {
	ProfileDir string
	// AllWindows returns tabs from every window instead of the selected one.
	AllWindows bool
}

// Raw JSON types for Firefox session file parsing.
type rawEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type rawTab struct {
	Entries []rawEntry `json:"entries"`
	Index   int        `json:"index"`
	Image   string     `json:"image"`
}

type rawWindow struct {
	Tabs []rawTab `json:"tabs"`
}

type rawSession struct {
	Windows        []rawWindow `json:"windows"`
	SelectedWindow int         `json:"selectedWindow"`
}

// Tabs reads recovery.jsonlz4, falling back to previous.jsonlz4.
func (s FirefoxSource) Tabs(ctx context.Context) ([]model.TabRecord, error) {
	if s.ProfileDir == "" {
		return nil, ErrNoProfile
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	backupDir := filepath.Join(s.ProfileDir, "sessionstore-backups")
	var data []byte
	var err error
	for _, name := range []string{"recovery.jsonlz4", "previous.jsonlz4"} {
		data, err = os.ReadFile(filepath.Join(backupDir, name))
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("no session file found in %s", backupDir)
	}

	decompressed, err := DecompressMozLz4(data)
	if err != nil {
		return nil, fmt.Errorf("decompress session file: %w", err)
	}
	return ParseSession(decompressed, s.AllWindows)
}

// ParseSession extracts tabs from session JSON. Unless allWindows is set only
// the selected window is used.
func ParseSession(data []byte, allWindows bool) ([]model.TabRecord, error) {
	var raw rawSession
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse session JSON: %w", err)
	}

	windows := raw.Windows
	// selectedWindow is 1-based
	if !allWindows && raw.SelectedWindow >= 1 && raw.SelectedWindow <= len(windows) {
		windows = windows[raw.SelectedWindow-1 : raw.SelectedWindow]
	}

	var records []model.TabRecord
	for _, window := range windows {
		for _, rt := range window.Tabs {
			if len(rt.Entries) == 0 {
				continue
			}
			// index is 1-based; current page is entries[index-1].
			i := rt.Index - 1
			if i < 0 || i >= len(rt.Entries) {
				i = len(rt.Entries) - 1
			}
			entry := rt.Entries[i]
			records = append(records, model.TabRecord{
				URL:        entry.URL,
				Title:      entry.Title,
				FaviconURL: rt.Image,
			})
		}
	}
	return records, nil
}
