package model

import (
	"strings"
	"time"
)

// Timestamp is a point in time stored as Unix milliseconds, matching the
// numeric dates written by the browser extension.
type Timestamp int64

// NewTimestamp converts t to a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time returns the Timestamp as a time.Time in the local zone.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t))
}

func stamp() Timestamp {
	return NewTimestamp(time.Now())
}

func stampPtr() *Timestamp {
	ts := stamp()
	return &ts
}

// TabRecord is a captured browser tab. It is copied by value into groups.
type TabRecord struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	FaviconURL string `json:"favIconUrl"`
}

// DisplayTitle returns the title, falling back to the URL.
func (t TabRecord) DisplayTitle() string {
	if strings.TrimSpace(t.Title) == "" {
		return t.URL
	}
	return t.Title
}
