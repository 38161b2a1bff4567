package search

import (
	"testing"

	"github.com/nikbrunner/organitab/internal/model"
)

func groupStore() *model.Store {
	store := model.NewStore()
	tab := []model.TabRecord{{URL: "https://example.com"}}
	store.Standalone["TanStack Router"] = model.Group{Tabs: tab}
	store.Standalone["React Router"] = model.Group{Tabs: tab}
	store.Folders["Work"] = model.Folder{
		Groups: model.Groups{"GitHub Reviews": {Tabs: tab}},
	}
	return store
}

func TestFindGroups_EmptyQuery(t *testing.T) {
	if results := FindGroups(groupStore(), ""); len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFindGroups_FuzzyMatch(t *testing.T) {
	// "tanrou" should fuzzy match "TanStack Router"
	results := FindGroups(groupStore(), "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	if results[0].Ref.Name != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Ref.Name)
	}
	if results[0].Ref.Folder != "" {
		t.Errorf("expected standalone group, got folder %q", results[0].Ref.Folder)
	}
}

func TestFindGroups_IncludesFolderGroups(t *testing.T) {
	results := FindGroups(groupStore(), "github")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Ref.Folder != "Work" {
		t.Errorf("expected group inside Work, got %q", results[0].Ref.Folder)
	}
}

func TestFindGroups_MultipleMatches(t *testing.T) {
	results := FindGroups(groupStore(), "router")
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestFindBookmarks(t *testing.T) {
	store := model.NewStore()
	store.Bookmarks = []model.Bookmark{
		{URL: "https://github.com", Title: "GitHub"},
		{URL: "https://gitlab.com", Title: "GitLab"},
		{URL: "https://untitled.dev"},
	}

	results := FindBookmarks(store, "GitHub")
	if len(results) != 1 || results[0].Bookmark.URL != "https://github.com" {
		t.Fatalf("expected GitHub match, got %+v", results)
	}

	results = FindBookmarks(store, "untitled")
	if len(results) != 1 {
		t.Errorf("empty titles should match on URL, got %d results", len(results))
	}
}

func TestExactGroup(t *testing.T) {
	ref, ok := ExactGroup(groupStore(), "GitHub Reviews")
	if !ok || ref.Folder != "Work" {
		t.Errorf("expected exact match in Work, got %+v ok=%v", ref, ok)
	}
	if _, ok := ExactGroup(groupStore(), "github reviews"); ok {
		t.Error("exact lookup is case-sensitive")
	}
}
