// Package view builds the sorted read view of a store: folders with their
// groups, then standalone groups.
package view

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nikbrunner/organitab/internal/model"
)

// SortOrder is the groupSortOrder preference.
type SortOrder string

const (
	DateDesc SortOrder = "dateDesc"
	DateAsc  SortOrder = "dateAsc"
	NameAsc  SortOrder = "nameAsc"
	NameDesc SortOrder = "nameDesc"
	TabsAsc  SortOrder = "tabsAsc"
	TabsDesc SortOrder = "tabsDesc"
)

// DefaultSortOrder is used when no preference is stored.
const DefaultSortOrder = DateDesc

// SortOrders lists every accepted order.
var SortOrders = []SortOrder{DateDesc, DateAsc, NameAsc, NameDesc, TabsAsc, TabsDesc}

// ParseSortOrder validates s. An empty string yields the default.
func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return DefaultSortOrder, nil
	}
	for _, o := range SortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sort order %q", model.ErrValidation, s)
}

// GroupItem is one group in the view.
type GroupItem struct {
	Name   string
	Folder string
	Group  model.Group
}

// FolderItem is one folder and its sorted groups.
type FolderItem struct {
	Name   string
	Folder model.Folder
	Groups []GroupItem
}

// View is what a front end renders.
type View struct {
	Order      SortOrder
	Folders    []FolderItem
	Standalone []GroupItem
}

// Empty reports whether there is nothing to show.
func (v View) Empty() bool {
	return len(v.Folders) == 0 && len(v.Standalone) == 0
}

// newCollator compares names ignoring case and accents.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
}

// Build returns the view of store in the given order. Groups that are
// standalone and also inside a folder are shown only inside the folder.
func Build(store *model.Store, order SortOrder) View {
	col := newCollator()
	v := View{Order: order}

	inFolders := map[string]bool{}
	for name, folder := range store.Folders {
		item := FolderItem{Name: name, Folder: folder}
		for groupName, g := range folder.Groups {
			item.Groups = append(item.Groups, GroupItem{Name: groupName, Folder: name, Group: g})
			inFolders[groupName] = true
		}
		sortGroups(col, item.Groups, order)
		v.Folders = append(v.Folders, item)
	}
	sortFolders(col, v.Folders, order)

	for name, g := range store.Standalone {
		if inFolders[name] {
			continue
		}
		v.Standalone = append(v.Standalone, GroupItem{Name: name, Group: g})
	}
	sortGroups(col, v.Standalone, order)
	return v
}

func sortGroups(col *collate.Collator, items []GroupItem, order SortOrder) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var c int
		switch order {
		case NameAsc:
			c = col.CompareString(a.Name, b.Name)
		case NameDesc:
			c = col.CompareString(b.Name, a.Name)
		case TabsAsc:
			c = len(a.Group.Tabs) - len(b.Group.Tabs)
		case TabsDesc:
			c = len(b.Group.Tabs) - len(a.Group.Tabs)
		case DateAsc:
			c = cmpTimestamp(a.Group.DateAdded, b.Group.DateAdded)
		default:
			c = cmpTimestamp(b.Group.DateAdded, a.Group.DateAdded)
		}
		if c == 0 {
			return a.Name < b.Name
		}
		return c < 0
	})
}

func sortFolders(col *collate.Collator, items []FolderItem, order SortOrder) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var c int
		switch order {
		case NameDesc:
			c = col.CompareString(b.Name, a.Name)
		case DateAsc:
			c = cmpTimestamp(a.Folder.DateCreated, b.Folder.DateCreated)
		case DateDesc:
			c = cmpTimestamp(b.Folder.DateCreated, a.Folder.DateCreated)
		case TabsAsc:
			c = len(a.Folder.Groups) - len(b.Folder.Groups)
		case TabsDesc:
			c = len(b.Folder.Groups) - len(a.Folder.Groups)
		default:
			c = col.CompareString(a.Name, b.Name)
		}
		if c == 0 {
			return a.Name < b.Name
		}
		return c < 0
	})
}

func cmpTimestamp(a, b model.Timestamp) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
