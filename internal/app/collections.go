package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nikbrunner/organitab/internal/model"
	"github.com/nikbrunner/organitab/internal/storage"
)

// AddBookmark saves url unless it is already bookmarked. Returns false for a
// duplicate.
func (a *App) AddBookmark(ctx context.Context, params model.NewBookmarkParams) (bool, error) {
	var added bool
	err := a.update(ctx, []string{storage.KeyBookmarks}, func(s *model.Store) error {
		var err error
		added, err = s.AddBookmark(model.NewBookmark(params))
		return err
	})
	if err != nil {
		return false, err
	}
	if !added {
		a.log.WithField("url", params.URL).Info("Bookmark already exists")
	}
	return added, nil
}

// DeleteBookmark removes the bookmark with url.
func (a *App) DeleteBookmark(ctx context.Context, url string) error {
	return a.update(ctx, []string{storage.KeyBookmarks}, func(s *model.Store) error {
		return s.DeleteBookmark(url)
	})
}

// OpenBookmark opens a saved bookmark in the browser.
func (a *App) OpenBookmark(ctx context.Context, url string) error {
	store, err := a.Load(ctx)
	if err != nil {
		return err
	}
	if !store.HasBookmarkURL(url) {
		return fmt.Errorf("%w: bookmark %q", model.ErrNotFound, url)
	}
	return a.open(ctx, []string{url}, false)
}

// Bookmarks returns all bookmarks sorted by title.
func (a *App) Bookmarks(ctx context.Context) ([]model.Bookmark, error) {
	store, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	return store.SortedBookmarks(), nil
}

// ImportBookmarks adds bookmarks whose URL is not saved yet. Unusable URLs
// are skipped like duplicates.
func (a *App) ImportBookmarks(ctx context.Context, bookmarks []model.Bookmark) (added, skipped int, err error) {
	err = a.update(ctx, []string{storage.KeyBookmarks}, func(s *model.Store) error {
		for _, b := range bookmarks {
			ok, err := s.AddBookmark(b)
			if err != nil || !ok {
				skipped++
				continue
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	a.log.WithFields(logrus.Fields{"added": added, "skipped": skipped}).Info("Imported bookmarks")
	return added, skipped, nil
}

// AddTodo adds a todo to the front of the list.
func (a *App) AddTodo(ctx context.Context, text string) (model.TodoItem, error) {
	var item model.TodoItem
	err := a.update(ctx, []string{storage.KeyTodos}, func(s *model.Store) error {
		var err error
		item, err = s.AddTodo(text)
		return err
	})
	return item, err
}

// ToggleTodo flips a todo's completed state and returns the new state.
func (a *App) ToggleTodo(ctx context.Context, id model.TodoID) (bool, error) {
	var done bool
	err := a.update(ctx, []string{storage.KeyTodos}, func(s *model.Store) error {
		var err error
		done, err = s.ToggleTodo(id)
		return err
	})
	return done, err
}

// DeleteTodo removes a todo.
func (a *App) DeleteTodo(ctx context.Context, id model.TodoID) error {
	return a.update(ctx, []string{storage.KeyTodos}, func(s *model.Store) error {
		return s.DeleteTodo(id)
	})
}

// Todos returns todos with incomplete items first, newest first.
func (a *App) Todos(ctx context.Context) ([]model.TodoItem, error) {
	store, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	return store.SortedTodos(), nil
}
