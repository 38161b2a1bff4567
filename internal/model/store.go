package model

import "sort"

// Store is the root aggregate persisted by the extension. Every group name
// lives in at most one of Standalone or a single folder's Groups.
type Store struct {
	Standalone Groups            `json:"tabGroups"`
	Folders    map[string]Folder `json:"folders"`
	Bookmarks  []Bookmark        `json:"bookmarks"`
	Todos      []TodoItem        `json:"todos"`
}

// NewStore creates an empty Store with initialized collections.
func NewStore() *Store {
	return &Store{
		Standalone: Groups{},
		Folders:    map[string]Folder{},
		Bookmarks:  []Bookmark{},
		Todos:      []TodoItem{},
	}
}

// Normalize replaces nil collections with empty ones so absent keys read as
// {} or [] and serialize the same way.
func (s *Store) Normalize() {
	if s.Standalone == nil {
		s.Standalone = Groups{}
	}
	if s.Folders == nil {
		s.Folders = map[string]Folder{}
	}
	for name, f := range s.Folders {
		if f.Groups == nil {
			f.Groups = Groups{}
			s.Folders[name] = f
		}
	}
	if s.Bookmarks == nil {
		s.Bookmarks = []Bookmark{}
	}
	if s.Todos == nil {
		s.Todos = []TodoItem{}
	}
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := &Store{
		Standalone: s.Standalone.clone(),
		Folders:    make(map[string]Folder, len(s.Folders)),
		Bookmarks:  make([]Bookmark, len(s.Bookmarks)),
		Todos:      make([]TodoItem, len(s.Todos)),
	}
	for name, f := range s.Folders {
		c.Folders[name] = f.clone()
	}
	copy(c.Bookmarks, s.Bookmarks)
	copy(c.Todos, s.Todos)
	c.Normalize()
	return c
}

// FolderNames returns the folder names in sorted order.
func (s *Store) FolderNames() []string {
	names := make([]string, 0, len(s.Folders))
	for name := range s.Folders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupExists reports whether a group with the given name is standalone or
// inside any folder.
func (s *Store) GroupExists(name string) bool {
	if _, ok := s.Standalone[name]; ok {
		return true
	}
	return s.groupInAnyFolder(name)
}

func (s *Store) groupInAnyFolder(name string) bool {
	for _, f := range s.Folders {
		if _, ok := f.Groups[name]; ok {
			return true
		}
	}
	return false
}

// LookupGroup returns the group named name in the given container.
// An empty folder means the standalone namespace.
func (s *Store) LookupGroup(name, folder string) (Group, bool) {
	if folder == "" {
		g, ok := s.Standalone[name]
		return g, ok
	}
	f, ok := s.Folders[folder]
	if !ok {
		return Group{}, false
	}
	g, ok := f.Groups[name]
	return g, ok
}

// GroupRef locates a group by name and container.
type GroupRef struct {
	Name   string
	Folder string // empty for standalone
	Group  Group
}

// AllGroups lists every group in the store, folder contents first in folder
// name order, then standalone groups.
func (s *Store) AllGroups() []GroupRef {
	var refs []GroupRef
	for _, folderName := range s.FolderNames() {
		f := s.Folders[folderName]
		for _, name := range f.Groups.Names() {
			refs = append(refs, GroupRef{Name: name, Folder: folderName, Group: f.Groups[name]})
		}
	}
	for _, name := range s.Standalone.Names() {
		refs = append(refs, GroupRef{Name: name, Group: s.Standalone[name]})
	}
	return refs
}

// GroupCount returns the number of groups across all containers.
func (s *Store) GroupCount() int {
	n := len(s.Standalone)
	for _, f := range s.Folders {
		n += len(f.Groups)
	}
	return n
}

// SavedItemCount totals groups, folders, bookmarks and todos.
func (s *Store) SavedItemCount() int {
	return s.GroupCount() + len(s.Folders) + len(s.Bookmarks) + len(s.Todos)
}

// IsEmpty reports whether the store holds no data at all.
func (s *Store) IsEmpty() bool {
	return len(s.Standalone) == 0 && len(s.Folders) == 0 &&
		len(s.Bookmarks) == 0 && len(s.Todos) == 0
}
