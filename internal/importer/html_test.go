package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/organitab/internal/importer"
	"github.com/nikbrunner/organitab/internal/model"
)

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890" ICON_URI="https://example.com/favicon.ico">Example Site</A>
</DL><p>`

	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bookmarks))
	}

	b := bookmarks[0]
	if b.Title != "Example Site" {
		t.Errorf("expected title 'Example Site', got %q", b.Title)
	}
	if b.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", b.URL)
	}
	if b.FaviconURL != "https://example.com/favicon.ico" {
		t.Errorf("expected favicon from ICON_URI, got %q", b.FaviconURL)
	}
}

func TestParseHTML_NestedFoldersFlatten(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"React Docs", "GitHub", "Google"}
	if len(bookmarks) != len(want) {
		t.Fatalf("expected %d bookmarks, got %d", len(want), len(bookmarks))
	}
	for i, title := range want {
		if bookmarks[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, bookmarks[i].Title)
		}
	}
}

func TestParseHTML_EmptyFile(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
</DL><p>`

	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookmarks) != 0 {
		t.Errorf("expected 0 bookmarks, got %d", len(bookmarks))
	}
}

func TestParseHTML_Timestamps(t *testing.T) {
	// 1234567890 = Fri Feb 13 2009 23:31:30 UTC
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Test</A>
</DL><p>`

	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bookmarks))
	}

	expected := model.NewTimestamp(time.Unix(1234567890, 0))
	if bookmarks[0].DateAdded != expected {
		t.Errorf("expected DateAdded %d, got %d", expected, bookmarks[0].DateAdded)
	}
}

func TestParseHTML_SkipsUnusableLinks(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A ADD_DATE="1234567890">No URL</A>
    <DT><A HREF="about:config">Config</A>
    <DT><A HREF="chrome://extensions">Extensions</A>
    <DT><A HREF="https://valid.com" ADD_DATE="1234567890">Valid</A>
    <DT><A HREF="https://untitled.com"></A>
</DL><p>`

	bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(bookmarks))
	}
	if bookmarks[0].Title != "Valid" {
		t.Errorf("expected 'Valid' bookmark, got %q", bookmarks[0].Title)
	}
	if bookmarks[1].Title != "https://untitled.com" {
		t.Errorf("empty title should fall back to URL, got %q", bookmarks[1].Title)
	}
}
