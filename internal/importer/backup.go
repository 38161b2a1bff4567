// Package importer reads data produced outside organitab: backup files and
// browser bookmark exports.
package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nikbrunner/organitab/internal/model"
)

// backupKeys are the top-level keys of a backup file.
var backupKeys = []string{"tabGroups", "folders", "bookmarks", "todos"}

// ParseBackup decodes a backup document. The document must be a JSON object
// with at least one of tabGroups, folders, bookmarks or todos; missing
// collections come back empty. Every failure wraps model.ErrValidation.
func ParseBackup(data []byte) (*model.Store, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: invalid backup file: %v", model.ErrValidation, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: backup file is not a JSON object", model.ErrValidation)
	}

	found := false
	for _, key := range backupKeys {
		if _, ok := top[key]; ok {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: backup file has none of %v", model.ErrValidation, backupKeys)
	}

	var store model.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("%w: invalid backup contents: %v", model.ErrValidation, err)
	}
	store.Normalize()
	return &store, nil
}

// ReadBackupFile reads and parses the backup at path.
func ReadBackupFile(path string) (*model.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBackup(data)
}
