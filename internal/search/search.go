package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/organitab/internal/model"
)

// GroupResult represents a fuzzy match on a group name.
type GroupResult struct {
	Ref            model.GroupRef
	MatchedIndexes []int
	Score          int
}

// BookmarkResult represents a fuzzy match on a bookmark title.
type BookmarkResult struct {
	Bookmark       model.Bookmark
	MatchedIndexes []int
	Score          int
}

// groupNames implements fuzzy.Source for group refs.
type groupNames []model.GroupRef

func (gn groupNames) String(i int) string {
	return gn[i].Name
}

func (gn groupNames) Len() int {
	return len(gn)
}

// bookmarkTitles implements fuzzy.Source for bookmarks.
type bookmarkTitles []model.Bookmark

func (bt bookmarkTitles) String(i int) string {
	if bt[i].Title == "" {
		return bt[i].URL
	}
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// FindGroups searches standalone and folder groups by name using fuzzy
// matching. Returns results sorted by match score (best first).
func FindGroups(store *model.Store, query string) []GroupResult {
	if query == "" {
		return nil
	}

	refs := groupNames(store.AllGroups())
	matches := fuzzy.FindFrom(query, refs)

	results := make([]GroupResult, len(matches))
	for i, m := range matches {
		results[i] = GroupResult{
			Ref:            refs[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// FindBookmarks searches bookmarks by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FindBookmarks(store *model.Store, query string) []BookmarkResult {
	if query == "" {
		return nil
	}

	bookmarks := bookmarkTitles(store.Bookmarks)
	matches := fuzzy.FindFrom(query, bookmarks)

	results := make([]BookmarkResult, len(matches))
	for i, m := range matches {
		results[i] = BookmarkResult{
			Bookmark:       bookmarks[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// ExactGroup returns the group named exactly query, preferring folder
// contents in folder name order, then standalone.
func ExactGroup(store *model.Store, query string) (model.GroupRef, bool) {
	for _, ref := range store.AllGroups() {
		if ref.Name == query {
			return ref, true
		}
	}
	return model.GroupRef{}, false
}
