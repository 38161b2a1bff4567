package tabs

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

type call struct {
	name string
	args []string
}

func recordingOpener(browser string, fail error) (*CommandOpener, *[]call) {
	var calls []call
	o := NewCommandOpener(browser)
	o.start = func(ctx context.Context, name string, args ...string) error {
		calls = append(calls, call{name: name, args: args})
		return fail
	}
	return o, &calls
}

func TestCommandOpener_BrowserNewWindow(t *testing.T) {
	o, calls := recordingOpener("firefox", nil)

	if err := o.Open(context.Background(), []string{"https://a.com", "https://b.com"}, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected one command, got %d", len(*calls))
	}
	got := (*calls)[0]
	if got.name != "firefox" || len(got.args) != 3 || got.args[0] != "--new-window" {
		t.Errorf("unexpected command %+v", got)
	}
}

func TestCommandOpener_BrowserTabs(t *testing.T) {
	o, calls := recordingOpener("firefox", nil)

	if err := o.Open(context.Background(), []string{"https://a.com"}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := (*calls)[0]; len(got.args) != 1 || got.args[0] != "https://a.com" {
		t.Errorf("unexpected command %+v", got)
	}
}

func TestCommandOpener_SystemHandler(t *testing.T) {
	if name, _ := systemCommand("x"); name == "" {
		t.Skipf("no URL handler on %s", runtime.GOOS)
	}
	o, calls := recordingOpener("", errors.New("boom"))

	err := o.Open(context.Background(), []string{"https://a.com", "https://b.com"}, true)
	if err == nil {
		t.Fatal("expected joined start errors")
	}
	if len(*calls) != 2 {
		t.Errorf("expected one command per URL, got %d", len(*calls))
	}
}

func TestCommandOpener_NoURLs(t *testing.T) {
	o, calls := recordingOpener("firefox", nil)
	if err := o.Open(context.Background(), nil, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 0 {
		t.Error("expected no command for empty list")
	}
}
