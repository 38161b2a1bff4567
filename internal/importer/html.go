package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nikbrunner/organitab/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns every link as a
// bookmark. Folder structure is flattened; links a bookmark list cannot hold
// (empty or internal browser URLs) are skipped.
func ParseHTMLBookmarks(r io.Reader) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == "a" {
			href := getAttr(n, "href")
			if !model.IsBookmarkable(href) {
				return
			}

			// ADD_DATE is in seconds
			addedAt := time.Now()
			if addDate := getAttr(n, "add_date"); addDate != "" {
				if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
					addedAt = time.Unix(ts, 0)
				}
			}

			bookmark := model.NewBookmark(model.NewBookmarkParams{
				URL:        href,
				Title:      getTextContent(n),
				FaviconURL: getAttr(n, "icon_uri"),
			})
			bookmark.DateAdded = model.NewTimestamp(addedAt)
			bookmarks = append(bookmarks, bookmark)
			return // Don't recurse into A
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
