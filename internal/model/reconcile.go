package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// validateName rejects names that are empty after trimming.
func validateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s name is empty", ErrValidation, kind)
	}
	return nil
}

// CreateStandaloneGroup saves tabs as a new standalone group. The name must not
// be used by any group, standalone or inside a folder.
func (s *Store) CreateStandaloneGroup(name string, tabs []TabRecord) error {
	if err := validateName("group", name); err != nil {
		return err
	}
	if len(tabs) == 0 {
		return fmt.Errorf("%w: select at least one tab to save", ErrEmptySelection)
	}
	if s.GroupExists(name) {
		return fmt.Errorf("%w: tab group %q", ErrNameConflict, name)
	}
	s.Standalone[name] = NewGroup(tabs)
	return nil
}

// SaveAllTabs stores tabs under a timestamp name derived from at. A clash with
// an existing standalone group gets a millisecond suffix. Returns the name used.
func (s *Store) SaveAllTabs(tabs []TabRecord, at time.Time) (string, error) {
	if len(tabs) == 0 {
		return "", fmt.Errorf("%w: no open tabs to save", ErrEmptySelection)
	}
	name := TimestampGroupName(at)
	if s.GroupExists(name) {
		name += "-" + strconv.FormatInt(at.UnixMilli(), 10)
	}
	if err := s.CreateStandaloneGroup(name, tabs); err != nil {
		return "", err
	}
	return name, nil
}

// CreateFolder creates a folder and moves the named standalone groups into it.
// Names that are not standalone groups are skipped and returned.
func (s *Store) CreateFolder(name string, groupNames []string) (skipped []string, err error) {
	if err := validateName("folder", name); err != nil {
		return nil, err
	}
	if _, ok := s.Folders[name]; ok {
		return nil, fmt.Errorf("%w: folder %q", ErrNameConflict, name)
	}

	folder := Folder{Groups: Groups{}, DateCreated: stamp()}
	for _, groupName := range groupNames {
		g, ok := s.Standalone[groupName]
		if !ok {
			skipped = append(skipped, groupName)
			continue
		}
		delete(s.Standalone, groupName)
		folder.Groups[groupName] = g
	}
	s.Folders[name] = folder
	return skipped, nil
}

// FolderEdit reports what EditFolder did with each group name.
type FolderEdit struct {
	Retained []string // already in the folder and still selected
	Added    []string // moved in from standalone
	Released []string // deselected and moved back to standalone
	Dropped  []string // deselected but a standalone group already had the name
	Skipped  []string // selected but found neither in the folder nor standalone
}

// EditFolder renames a folder and reconciles its contents with selected.
// Selected groups not yet in the folder are moved in from standalone;
// deselected groups are released to standalone unless a standalone group
// already has the name, in which case the standalone group is kept.
func (s *Store) EditFolder(originalName, newName string, selected []string) (FolderEdit, error) {
	var edit FolderEdit
	if err := validateName("folder", newName); err != nil {
		return edit, err
	}
	if newName != originalName {
		if _, ok := s.Folders[newName]; ok {
			return edit, fmt.Errorf("%w: folder %q", ErrNameConflict, newName)
		}
	}
	original, ok := s.Folders[originalName]
	if !ok {
		return edit, fmt.Errorf("%w: folder %q", ErrNotFound, originalName)
	}

	keep := make(map[string]bool, len(selected))
	updated := Groups{}
	for _, name := range selected {
		if keep[name] {
			continue
		}
		keep[name] = true
		if g, ok := original.Groups[name]; ok {
			updated[name] = g
			edit.Retained = append(edit.Retained, name)
			continue
		}
		if g, ok := s.Standalone[name]; ok {
			delete(s.Standalone, name)
			updated[name] = g
			edit.Added = append(edit.Added, name)
			continue
		}
		edit.Skipped = append(edit.Skipped, name)
	}

	for _, name := range original.Groups.Names() {
		if keep[name] {
			continue
		}
		if _, taken := s.Standalone[name]; taken {
			edit.Dropped = append(edit.Dropped, name)
			continue
		}
		s.Standalone[name] = original.Groups[name]
		edit.Released = append(edit.Released, name)
	}

	delete(s.Folders, originalName)
	s.Folders[newName] = Folder{
		Groups:       updated,
		DateCreated:  original.DateCreated,
		DateModified: stampPtr(),
	}
	return edit, nil
}

// DeleteGroup removes a group from standalone and, when folder is given, from
// that folder. Groups with the same name in other folders are left alone.
func (s *Store) DeleteGroup(name, folder string) error {
	removed := false
	if _, ok := s.Standalone[name]; ok {
		delete(s.Standalone, name)
		removed = true
	}
	if folder != "" {
		if f, ok := s.Folders[folder]; ok {
			if _, ok := f.Groups[name]; ok {
				delete(f.Groups, name)
				f.DateModified = stampPtr()
				s.Folders[folder] = f
				removed = true
			}
		}
	}
	if !removed {
		return fmt.Errorf("%w: group %q", ErrNotFound, name)
	}
	return nil
}

// DeleteFolder removes a folder and releases its groups to standalone. Groups
// whose name is already standalone are dropped and returned.
func (s *Store) DeleteFolder(name string) (dropped []string, err error) {
	folder, ok := s.Folders[name]
	if !ok {
		return nil, fmt.Errorf("%w: folder %q", ErrNotFound, name)
	}
	delete(s.Folders, name)
	for _, groupName := range folder.Groups.Names() {
		if _, taken := s.Standalone[groupName]; taken {
			dropped = append(dropped, groupName)
			continue
		}
		s.Standalone[groupName] = folder.Groups[groupName]
	}
	return dropped, nil
}

// RenameGroup renames a group within its container. An empty folder means the
// standalone namespace. Only names in the same container conflict.
func (s *Store) RenameGroup(oldName, newName, folder string) error {
	if err := validateName("group", newName); err != nil {
		return err
	}

	groups := s.Standalone
	var f Folder
	if folder != "" {
		var ok bool
		f, ok = s.Folders[folder]
		if !ok {
			return fmt.Errorf("%w: folder %q", ErrNotFound, folder)
		}
		groups = f.Groups
	}

	g, ok := groups[oldName]
	if !ok {
		return fmt.Errorf("%w: group %q", ErrNotFound, oldName)
	}
	if newName == oldName {
		return nil
	}
	if _, taken := groups[newName]; taken {
		return fmt.Errorf("%w: tab group %q", ErrNameConflict, newName)
	}

	delete(groups, oldName)
	g.DateModified = stampPtr()
	groups[newName] = g
	if folder != "" {
		f.DateModified = stampPtr()
		s.Folders[folder] = f
	}
	return nil
}

// ReplaceTabs overwrites the tab list of an existing group.
func (s *Store) ReplaceTabs(name, folder string, tabs []TabRecord) error {
	if len(tabs) == 0 {
		return fmt.Errorf("%w: a group needs at least one tab", ErrEmptySelection)
	}
	groups := s.Standalone
	if folder != "" {
		f, ok := s.Folders[folder]
		if !ok {
			return fmt.Errorf("%w: folder %q", ErrNotFound, folder)
		}
		groups = f.Groups
	}
	g, ok := groups[name]
	if !ok {
		return fmt.Errorf("%w: group %q", ErrNotFound, name)
	}
	g.Tabs = make([]TabRecord, len(tabs))
	copy(g.Tabs, tabs)
	g.DateModified = stampPtr()
	groups[name] = g
	return nil
}
