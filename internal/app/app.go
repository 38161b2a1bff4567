// Package app runs organitab operations against persistent storage. Every
// operation reads the keys it needs, applies a model operation in memory and
// writes the result back in a single Set.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nikbrunner/organitab/internal/model"
	"github.com/nikbrunner/organitab/internal/storage"
	"github.com/nikbrunner/organitab/internal/tabs"
)

// groupKeys are the keys holding groups and folders.
var groupKeys = []string{storage.KeyTabGroups, storage.KeyFolders}

// App is the application state shared by every command.
type App struct {
	kv     storage.KV
	log    logrus.FieldLogger
	source tabs.Source
	opener tabs.Opener
	now    func() time.Time

	// mu serializes read-modify-write cycles within this process. Separate
	// processes still race; the last write wins.
	mu sync.Mutex
}

// Params holds the collaborators for New. Logger defaults to a discarding
// logger; Source and Opener may be nil when the command needs neither.
type Params struct {
	KV     storage.KV
	Logger logrus.FieldLogger
	Source tabs.Source
	Opener tabs.Opener
	Now    func() time.Time
}

// New creates an App.
func New(p Params) *App {
	logger := p.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	return &App{kv: p.KV, log: logger, source: p.Source, opener: p.Opener, now: now}
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", model.ErrStorage, err)
}

// Load reads the whole store.
func (a *App) Load(ctx context.Context) (*model.Store, error) {
	store, err := storage.LoadState(ctx, a.kv)
	if err != nil {
		return nil, storageErr(err)
	}
	return store, nil
}

// update runs fn on a freshly loaded store and persists keys if fn succeeds.
// Nothing is written when fn fails.
func (a *App) update(ctx context.Context, keys []string, fn func(*model.Store) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	store, err := a.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(store); err != nil {
		return err
	}
	if err := storage.SaveState(ctx, a.kv, store, keys...); err != nil {
		return storageErr(err)
	}
	return nil
}

// CurrentTabs returns the open tabs from the configured source.
func (a *App) CurrentTabs(ctx context.Context) ([]model.TabRecord, error) {
	if a.source == nil {
		return nil, errors.New("no tab source configured")
	}
	return a.source.Tabs(ctx)
}

// SaveTabs stores tabs as a new standalone group.
func (a *App) SaveTabs(ctx context.Context, name string, tabs []model.TabRecord) error {
	err := a.update(ctx, []string{storage.KeyTabGroups}, func(s *model.Store) error {
		return s.CreateStandaloneGroup(name, tabs)
	})
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"group": name, "tabs": len(tabs)}).Info("Saved tab group")
	return nil
}

// SaveAllTabs stores every open tab under a timestamp name and returns the
// name and the number of tabs saved.
func (a *App) SaveAllTabs(ctx context.Context) (string, int, error) {
	open, err := a.CurrentTabs(ctx)
	if err != nil {
		return "", 0, err
	}

	var name string
	err = a.update(ctx, []string{storage.KeyTabGroups}, func(s *model.Store) error {
		var err error
		name, err = s.SaveAllTabs(open, a.now())
		return err
	})
	if err != nil {
		return "", 0, err
	}
	a.log.WithFields(logrus.Fields{"group": name, "tabs": len(open)}).Info("Saved all tabs")
	return name, len(open), nil
}

// CreateFolder creates a folder holding the named standalone groups.
// Returns the names that were not standalone groups.
func (a *App) CreateFolder(ctx context.Context, name string, groups []string) ([]string, error) {
	var skipped []string
	err := a.update(ctx, groupKeys, func(s *model.Store) error {
		var err error
		skipped, err = s.CreateFolder(name, groups)
		return err
	})
	if err != nil {
		return nil, err
	}
	for _, g := range skipped {
		a.log.WithFields(logrus.Fields{"folder": name, "group": g}).Warn("Group not found in standalone groups, skipped")
	}
	return skipped, nil
}

// EditFolder renames a folder and reconciles its membership with selected.
func (a *App) EditFolder(ctx context.Context, original, newName string, selected []string) (model.FolderEdit, error) {
	var edit model.FolderEdit
	err := a.update(ctx, groupKeys, func(s *model.Store) error {
		var err error
		edit, err = s.EditFolder(original, newName, selected)
		return err
	})
	if err != nil {
		return model.FolderEdit{}, err
	}
	for _, g := range edit.Skipped {
		a.log.WithFields(logrus.Fields{"folder": newName, "group": g}).Warn("Selected group not found, skipped")
	}
	for _, g := range edit.Dropped {
		a.log.WithFields(logrus.Fields{"folder": newName, "group": g}).Warn("Standalone group with the same name exists, folder copy dropped")
	}
	return edit, nil
}

// DeleteGroup removes a group from standalone and, if folder is given, from
// that folder.
func (a *App) DeleteGroup(ctx context.Context, name, folder string) error {
	return a.update(ctx, groupKeys, func(s *model.Store) error {
		return s.DeleteGroup(name, folder)
	})
}

// DeleteFolder removes a folder and releases its groups to standalone.
// Returns the groups dropped because the name was already standalone.
func (a *App) DeleteFolder(ctx context.Context, name string) ([]string, error) {
	var dropped []string
	err := a.update(ctx, groupKeys, func(s *model.Store) error {
		var err error
		dropped, err = s.DeleteFolder(name)
		return err
	})
	if err != nil {
		return nil, err
	}
	for _, g := range dropped {
		a.log.WithFields(logrus.Fields{"folder": name, "group": g}).Warn("Standalone group with the same name exists, folder copy dropped")
	}
	return dropped, nil
}

// RenameGroup renames a group within its container.
func (a *App) RenameGroup(ctx context.Context, oldName, newName, folder string) error {
	return a.update(ctx, groupKeys, func(s *model.Store) error {
		return s.RenameGroup(oldName, newName, folder)
	})
}

// UpdateGroupTabs replaces the tab list of a group.
func (a *App) UpdateGroupTabs(ctx context.Context, name, folder string, tabs []model.TabRecord) error {
	return a.update(ctx, groupKeys, func(s *model.Store) error {
		return s.ReplaceTabs(name, folder, tabs)
	})
}

// OpenGroup opens a group's tabs, as background tabs or in a new window.
func (a *App) OpenGroup(ctx context.Context, name, folder string, newWindow bool) (int, error) {
	store, err := a.Load(ctx)
	if err != nil {
		return 0, err
	}
	group, ok := store.LookupGroup(name, folder)
	if !ok {
		return 0, fmt.Errorf("%w: tab group %q", model.ErrNotFound, name)
	}
	if len(group.Tabs) == 0 {
		return 0, fmt.Errorf("%w: tab group %q is empty or corrupted", model.ErrNotFound, name)
	}

	urls := make([]string, len(group.Tabs))
	for i, tab := range group.Tabs {
		urls[i] = tab.URL
	}
	if err := a.open(ctx, urls, newWindow); err != nil {
		return 0, err
	}
	return len(urls), nil
}

func (a *App) open(ctx context.Context, urls []string, newWindow bool) error {
	if a.opener == nil {
		return errors.New("no opener configured")
	}
	a.log.WithField("count", len(urls)).Debug("Opening URLs")
	return a.opener.Open(ctx, urls, newWindow)
}

// SavedItemCount returns the total of groups, folders, bookmarks and todos.
func (a *App) SavedItemCount(ctx context.Context) (int, error) {
	store, err := a.Load(ctx)
	if err != nil {
		return 0, err
	}
	return store.SavedItemCount(), nil
}
