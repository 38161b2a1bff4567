package model

import (
	"fmt"
	"sort"
	"time"
)

// Group is a named, ordered collection of tabs. The name is the key of the
// map that owns the group, either Store.Standalone or Folder.Groups.
type Group struct {
	Tabs         []TabRecord `json:"tabs"`
	DateAdded    Timestamp   `json:"dateAdded"`
	DateModified *Timestamp  `json:"dateModified,omitempty"`
}

// NewGroup creates a Group holding a copy of tabs, stamped with the current time.
func NewGroup(tabs []TabRecord) Group {
	copied := make([]TabRecord, len(tabs))
	copy(copied, tabs)
	return Group{
		Tabs:      copied,
		DateAdded: stamp(),
	}
}

func (g Group) clone() Group {
	c := g
	c.Tabs = make([]TabRecord, len(g.Tabs))
	copy(c.Tabs, g.Tabs)
	if g.DateModified != nil {
		ts := *g.DateModified
		c.DateModified = &ts
	}
	return c
}

// Groups maps group names to groups within one container.
type Groups map[string]Group

// Names returns the group names in sorted order.
func (gs Groups) Names() []string {
	names := make([]string, 0, len(gs))
	for name := range gs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (gs Groups) clone() Groups {
	c := make(Groups, len(gs))
	for name, g := range gs {
		c[name] = g.clone()
	}
	return c
}

// Folder is a named container of groups. A group placed in a folder is not
// standalone at the same time.
type Folder struct {
	Groups       Groups     `json:"groups"`
	DateCreated  Timestamp  `json:"dateCreated"`
	DateModified *Timestamp `json:"dateModified,omitempty"`
}

func (f Folder) clone() Folder {
	c := f
	c.Groups = f.Groups.clone()
	if f.DateModified != nil {
		ts := *f.DateModified
		c.DateModified = &ts
	}
	return c
}

// TimestampGroupName returns the name used when every open tab is saved at once.
func TimestampGroupName(t time.Time) string {
	return fmt.Sprintf("Saved Tabs %s", t.Format("2006-01-02 15-04-05"))
}
