package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nikbrunner/organitab/internal/model"
)

// Keys of the extension's local storage.
const (
	KeyTabGroups      = "tabGroups"
	KeyFolders        = "folders"
	KeyBookmarks      = "bookmarks"
	KeyTodos          = "todos"
	KeyGroupSortOrder = "groupSortOrder"
)

// StateKeys are the four keys that make up a model.Store.
var StateKeys = []string{KeyTabGroups, KeyFolders, KeyBookmarks, KeyTodos}

// KV is an asynchronous-style key-value store. Get returns only the keys that
// exist; Set writes every given key and leaves the others untouched. Each
// implementation documents how atomic a multi-key Set is.
type KV interface {
	Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error)
	Set(ctx context.Context, values map[string]json.RawMessage) error
}

// JSONStorage implements KV using a single JSON object in a file. Set rewrites
// the file through a temporary file and rename, so a multi-key Set is atomic.
type JSONStorage struct {
	path string
	mu   sync.Mutex
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// readAll loads the whole key space. A missing file reads as empty.
func (s *JSONStorage) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}
	all := map[string]json.RawMessage{}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return all, nil
}

// Get reads the given keys from the JSON file.
func (s *JSONStorage) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return nil, err
	}
	result := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if v, ok := all[k]; ok {
			result[k] = v
		}
	}
	return result, nil
}

// Set writes the given keys to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Set(ctx context.Context, values map[string]json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return err
	}
	for k, v := range values {
		all[k] = v
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// MemoryStorage implements KV in memory. Used by tests and dry runs.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]json.RawMessage
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]json.RawMessage{}}
}

// Get returns copies of the stored values for the given keys.
func (m *MemoryStorage) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			result[k] = append(json.RawMessage(nil), v...)
		}
	}
	return result, nil
}

// Set stores copies of the given values.
func (m *MemoryStorage) Set(ctx context.Context, values map[string]json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = append(json.RawMessage(nil), v...)
	}
	return nil
}

// LoadState reads the four store keys. Absent keys read as empty collections.
func LoadState(ctx context.Context, kv KV) (*model.Store, error) {
	raw, err := kv.Get(ctx, StateKeys...)
	if err != nil {
		return nil, err
	}
	store := model.NewStore()
	targets := map[string]any{
		KeyTabGroups: &store.Standalone,
		KeyFolders:   &store.Folders,
		KeyBookmarks: &store.Bookmarks,
		KeyTodos:     &store.Todos,
	}
	for key, target := range targets {
		v, ok := raw[key]
		if !ok || isNull(v) {
			continue
		}
		if err := json.Unmarshal(v, target); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
	}
	store.Normalize()
	return store, nil
}

// SaveState writes the given store keys in a single Set. With no keys, all
// four are written.
func SaveState(ctx context.Context, kv KV, store *model.Store, keys ...string) error {
	if len(keys) == 0 {
		keys = StateKeys
	}
	store.Normalize()
	sources := map[string]any{
		KeyTabGroups: store.Standalone,
		KeyFolders:   store.Folders,
		KeyBookmarks: store.Bookmarks,
		KeyTodos:     store.Todos,
	}
	values := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		src, ok := sources[key]
		if !ok {
			return fmt.Errorf("unknown store key %q", key)
		}
		data, err := json.Marshal(src)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		values[key] = data
	}
	return kv.Set(ctx, values)
}

// LoadString reads a string preference, returning def when absent.
func LoadString(ctx context.Context, kv KV, key, def string) (string, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return "", err
	}
	v, ok := raw[key]
	if !ok || isNull(v) {
		return def, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("decode %s: %w", key, err)
	}
	return s, nil
}

// SaveString writes a string preference.
func SaveString(ctx context.Context, kv KV, key, value string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return kv.Set(ctx, map[string]json.RawMessage{key: data})
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null"
}

// DefaultDataPath returns the default store path for a backend:
// ~/.config/organitab/store.json or store.db
func DefaultDataPath(backend string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	name := "store.json"
	if backend == BackendSQLite {
		name = "store.db"
	}
	return filepath.Join(homeDir, ".config", "organitab", name), nil
}

// Backend names accepted in the config.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open opens the configured storage backend. The returned close function
// releases backend resources.
func Open(backend, path string) (KV, func() error, error) {
	if path == "" {
		var err error
		path, err = DefaultDataPath(backend)
		if err != nil {
			return nil, nil, err
		}
	}
	switch backend {
	case BackendSQLite:
		s, err := NewSQLiteStorage(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case BackendJSON, "":
		return NewJSONStorage(path), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
