package model

import (
	"fmt"
	"sort"
)

// ImportedName returns name if it is free, otherwise "name (Imported k)" for
// the smallest positive k that taken reports as free.
func ImportedName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	for k := 1; ; k++ {
		candidate := fmt.Sprintf("%s (Imported %d)", name, k)
		if !taken(candidate) {
			return candidate
		}
	}
}

// MergeReport summarizes what Merge did with the imported data.
type MergeReport struct {
	GroupsAdded      int
	FoldersAdded     int
	BookmarksAdded   int
	TodosAdded       int
	Renamed          map[string]string // imported name -> stored name, groups and folders
	SkippedBookmarks []string          // URLs already present
	SkippedTodos     []string          // texts already present
}

// Merge combines current with imported without losing data from either side.
// Colliding group and folder names are renamed with an "(Imported k)" suffix;
// bookmarks are deduplicated by URL and todos by text, keeping the current copy.
// Neither input is modified.
func Merge(current, imported *Store) (*Store, MergeReport) {
	merged := current.Clone()
	in := imported.Clone()
	report := MergeReport{Renamed: map[string]string{}}

	for _, name := range in.Standalone.Names() {
		resolved := ImportedName(name, func(n string) bool {
			_, ok := merged.Standalone[n]
			return ok
		})
		if resolved != name {
			report.Renamed[name] = resolved
		}
		merged.Standalone[resolved] = in.Standalone[name]
		report.GroupsAdded++
	}

	for _, folderName := range in.FolderNames() {
		src := in.Folders[folderName]
		resolvedFolder := ImportedName(folderName, func(n string) bool {
			_, ok := merged.Folders[n]
			return ok
		})
		if resolvedFolder != folderName {
			report.Renamed[folderName] = resolvedFolder
		}

		dst := Folder{
			Groups:       Groups{},
			DateCreated:  src.DateCreated,
			DateModified: src.DateModified,
		}
		for _, groupName := range src.Groups.Names() {
			resolved := ImportedName(groupName, func(n string) bool {
				if _, ok := merged.Standalone[n]; ok {
					return true
				}
				if merged.groupInAnyFolder(n) {
					return true
				}
				_, ok := dst.Groups[n]
				return ok
			})
			if resolved != groupName {
				report.Renamed[folderName+"/"+groupName] = resolved
			}
			dst.Groups[resolved] = src.Groups[groupName]
			report.GroupsAdded++
		}
		merged.Folders[resolvedFolder] = dst
		report.FoldersAdded++
	}

	urls := make(map[string]bool, len(merged.Bookmarks))
	for _, b := range merged.Bookmarks {
		urls[b.URL] = true
	}
	for _, b := range in.Bookmarks {
		if urls[b.URL] {
			report.SkippedBookmarks = append(report.SkippedBookmarks, b.URL)
			continue
		}
		urls[b.URL] = true
		merged.Bookmarks = append(merged.Bookmarks, b)
		report.BookmarksAdded++
	}

	texts := make(map[string]bool, len(merged.Todos))
	ids := make(map[TodoID]bool, len(merged.Todos))
	for _, t := range merged.Todos {
		texts[t.Text] = true
		ids[t.ID] = true
	}
	for _, t := range in.Todos {
		if texts[t.Text] {
			report.SkippedTodos = append(report.SkippedTodos, t.Text)
			continue
		}
		if t.ID == "" || ids[t.ID] {
			t.ID = newTodoID()
		}
		texts[t.Text] = true
		ids[t.ID] = true
		merged.Todos = append(merged.Todos, t)
		report.TodosAdded++
	}

	return merged, report
}

// RenamedNames returns the imported names that were renamed, sorted.
func (r MergeReport) RenamedNames() []string {
	names := make([]string, 0, len(r.Renamed))
	for name := range r.Renamed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Overwrite returns a store holding only the imported collections. Missing
// collections become empty.
func Overwrite(imported *Store) *Store {
	return imported.Clone()
}
