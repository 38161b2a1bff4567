package tabs

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
)

// Opener opens URLs in the browser.
type Opener interface {
	Open(ctx context.Context, urls []string, newWindow bool) error
}

// CommandOpener opens URLs by starting an external command: the configured
// browser if any, otherwise the platform's URL handler.
type CommandOpener struct {
	Browser string
	start   func(ctx context.Context, name string, args ...string) error
}

// NewCommandOpener returns an opener using browser, or the system handler
// when browser is empty.
func NewCommandOpener(browser string) *CommandOpener {
	return &CommandOpener{Browser: browser, start: startCommand}
}

func startCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Start()
}

// Open opens urls as new tabs, or all together in a new window. A new window
// needs a configured browser; without one the URLs open as tabs.
func (o *CommandOpener) Open(ctx context.Context, urls []string, newWindow bool) error {
	if len(urls) == 0 {
		return nil
	}
	if o.Browser != "" {
		args := urls
		if newWindow {
			args = append([]string{"--new-window"}, urls...)
		}
		return o.start(ctx, o.Browser, args...)
	}

	var errs []error
	for _, url := range urls {
		name, args := systemCommand(url)
		if name == "" {
			return errors.New("no URL handler for " + runtime.GOOS)
		}
		if err := o.start(ctx, name, args...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// systemCommand returns the platform command that opens url.
func systemCommand(url string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}
	case "linux":
		return "xdg-open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	}
	return "", nil
}
