package model

import (
	"fmt"
	"sort"
	"strings"
)

// Bookmark is a saved page, unique by URL.
type Bookmark struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	FaviconURL string    `json:"favIconUrl"`
	DateAdded  Timestamp `json:"dateAdded"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	URL        string
	Title      string
	FaviconURL string
}

// NewBookmark creates a Bookmark stamped with the current time.
// An empty title falls back to the URL.
func NewBookmark(params NewBookmarkParams) Bookmark {
	title := params.Title
	if strings.TrimSpace(title) == "" {
		title = params.URL
	}
	return Bookmark{
		URL:        params.URL,
		Title:      title,
		FaviconURL: params.FaviconURL,
		DateAdded:  stamp(),
	}
}

// internalURLPrefixes are browser pages that cannot be reopened from a bookmark.
var internalURLPrefixes = []string{"chrome://", "about:"}

// IsBookmarkable reports whether url can be saved as a bookmark.
func IsBookmarkable(url string) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}
	for _, prefix := range internalURLPrefixes {
		if strings.HasPrefix(url, prefix) {
			return false
		}
	}
	return true
}

// HasBookmarkURL checks if a bookmark with the given URL exists.
func (s *Store) HasBookmarkURL(url string) bool {
	for _, b := range s.Bookmarks {
		if b.URL == url {
			return true
		}
	}
	return false
}

// AddBookmark appends b unless a bookmark with the same URL exists.
// Returns false when the URL was already bookmarked.
func (s *Store) AddBookmark(b Bookmark) (bool, error) {
	if !IsBookmarkable(b.URL) {
		return false, fmt.Errorf("%w: cannot bookmark %q", ErrValidation, b.URL)
	}
	if s.HasBookmarkURL(b.URL) {
		return false, nil
	}
	s.Bookmarks = append(s.Bookmarks, b)
	return true, nil
}

// DeleteBookmark removes the bookmark with the given URL.
func (s *Store) DeleteBookmark(url string) error {
	kept := make([]Bookmark, 0, len(s.Bookmarks))
	for _, b := range s.Bookmarks {
		if b.URL != url {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(s.Bookmarks) {
		return fmt.Errorf("%w: bookmark %q", ErrNotFound, url)
	}
	s.Bookmarks = kept
	return nil
}

// SortedBookmarks returns bookmarks ordered case-insensitively by title,
// falling back to the URL when the title is empty.
func (s *Store) SortedBookmarks() []Bookmark {
	sorted := make([]Bookmark, len(s.Bookmarks))
	copy(sorted, s.Bookmarks)
	key := func(b Bookmark) string {
		if b.Title != "" {
			return strings.ToLower(b.Title)
		}
		return strings.ToLower(b.URL)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) < key(sorted[j])
	})
	return sorted
}
