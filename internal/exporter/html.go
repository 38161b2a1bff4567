package exporter

import (
	"fmt"
	"html"
	"strings"

	"github.com/nikbrunner/organitab/internal/model"
)

// ExportHTML exports the store to Netscape bookmark HTML format. Folders and
// standalone groups become bookmark folders holding their tabs; bookmarks
// follow at the root.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, name := range store.FolderNames() {
		folder := store.Folders[name]
		openFolder(&b, name, folder.DateCreated, 1)
		for _, groupName := range folder.Groups.Names() {
			writeGroup(&b, groupName, folder.Groups[groupName], 2)
		}
		closeFolder(&b, 1)
	}

	for _, name := range store.Standalone.Names() {
		writeGroup(&b, name, store.Standalone[name], 1)
	}

	for _, bookmark := range store.SortedBookmarks() {
		writeLink(&b, bookmark.URL, bookmark.Title, bookmark.DateAdded, 1)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeGroup(b *strings.Builder, name string, group model.Group, indent int) {
	openFolder(b, name, group.DateAdded, indent)
	for _, tab := range group.Tabs {
		writeLink(b, tab.URL, tab.DisplayTitle(), group.DateAdded, indent+1)
	}
	closeFolder(b, indent)
}

func openFolder(b *strings.Builder, name string, added model.Timestamp, indent int) {
	prefix := strings.Repeat("    ", indent)
	fmt.Fprintf(b, "%s<DT><H3 ADD_DATE=\"%d\">%s</H3>\n", prefix, added.Time().Unix(), html.EscapeString(name))
	fmt.Fprintf(b, "%s<DL><p>\n", prefix)
}

func closeFolder(b *strings.Builder, indent int) {
	fmt.Fprintf(b, "%s</DL><p>\n", strings.Repeat("    ", indent))
}

func writeLink(b *strings.Builder, url, title string, added model.Timestamp, indent int) {
	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
		strings.Repeat("    ", indent),
		html.EscapeString(url),
		added.Time().Unix(),
		html.EscapeString(title),
	)
}
