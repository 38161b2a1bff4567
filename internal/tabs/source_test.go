package tabs

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
)

// mozLz4 builds a mozlz4 payload the way Firefox writes it.
func mozLz4(t *testing.T, data []byte) []byte {
	t.Helper()
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, buf, nil)
	if err != nil {
		t.Fatalf("lz4.CompressBlock failed: %v", err)
	}
	out := append([]byte(nil), mozLz4Magic...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	return append(out, buf[:n]...)
}

const sessionJSON = `{
  "selectedWindow": 2,
  "windows": [
    {"tabs": [{"entries": [{"url": "https://first.com", "title": "First"}], "index": 1}]},
    {"tabs": [
      {"entries": [{"url": "https://old.com", "title": "Old"}, {"url": "https://go.dev", "title": "Go"}], "index": 2, "image": "https://go.dev/favicon.ico"},
      {"entries": [], "index": 1},
      {"entries": [{"url": "https://bad-index.com", "title": "Bad"}], "index": 9}
    ]}
  ]
}`

func TestDecompressMozLz4(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		original := []byte(`{"windows":[{"tabs":[]}]}`)
		result, err := DecompressMozLz4(mozLz4(t, original))
		if err != nil {
			t.Fatalf("DecompressMozLz4 returned error: %v", err)
		}
		if string(result) != string(original) {
			t.Errorf("expected %q, got %q", original, result)
		}
	})

	t.Run("invalid header", func(t *testing.T) {
		if _, err := DecompressMozLz4([]byte("BADMAGIC\x00\x00\x00\x00some data here")); err == nil {
			t.Fatal("expected error for invalid header")
		}
	})

	t.Run("too short", func(t *testing.T) {
		if _, err := DecompressMozLz4([]byte("mozLz40")); err == nil {
			t.Fatal("expected error for too-short data")
		}
	})
}

func TestParseSession_SelectedWindow(t *testing.T) {
	records, err := ParseSession([]byte(sessionJSON), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 tabs from the selected window, got %d", len(records))
	}
	if records[0].URL != "https://go.dev" || records[0].FaviconURL != "https://go.dev/favicon.ico" {
		t.Errorf("expected current entry of first tab, got %+v", records[0])
	}
	if records[1].URL != "https://bad-index.com" {
		t.Errorf("out of range index should use last entry, got %+v", records[1])
	}
}

func TestParseSession_AllWindows(t *testing.T) {
	records, err := ParseSession([]byte(sessionJSON), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 tabs across windows, got %d", len(records))
	}
}

func TestFirefoxSource_Tabs(t *testing.T) {
	profile := t.TempDir()
	dir := filepath.Join(profile, "sessionstore-backups")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "previous.jsonlz4"), mozLz4(t, []byte(sessionJSON)), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, err := FirefoxSource{ProfileDir: profile}.Tabs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 tabs, got %d", len(records))
	}
}

func TestFirefoxSource_Errors(t *testing.T) {
	if _, err := (FirefoxSource{}).Tabs(context.Background()); !errors.Is(err, ErrNoProfile) {
		t.Errorf("expected ErrNoProfile, got %v", err)
	}
	if _, err := (FirefoxSource{ProfileDir: t.TempDir()}).Tabs(context.Background()); err == nil {
		t.Error("expected error when no session file exists")
	}
}

func TestStaticSource_ReturnsCopy(t *testing.T) {
	src := StaticSource{{URL: "https://a.com"}}
	got, _ := src.Tabs(context.Background())
	got[0].URL = "changed"
	if src[0].URL != "https://a.com" {
		t.Error("caller mutation leaked into the source")
	}
}
