// Package launcher opens bookmark URLs in the browser that owns them.
package launcher

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/pkg/browser"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
	"github.com/xtruder/bookmarks-search/internal/chromium"
)

// Launcher starts the owning browser for a URL, or hands the URL to the
// system opener when that browser cannot be started.
type Launcher struct {
	browsers map[bookmarks.BrowserID]chromium.Browser
	env      chromium.Env

	exists   func(path string) bool
	start    func(path string, args ...string) error
	fallback func(url string) error
}

// New creates a launcher for the given browsers.
func New(browsers []chromium.Browser, env chromium.Env) *Launcher {
	l := &Launcher{
		browsers: make(map[bookmarks.BrowserID]chromium.Browser, len(browsers)),
		env:      env,
		exists:   fileExists,
		start:    startDetached,
		fallback: browser.OpenURL,
	}
	for _, b := range browsers {
		l.browsers[b.ID] = b
	}
	return l
}

// Open dispatches url to the browser identified by id and returns without
// waiting for it. Failures are logged, never returned.
func (l *Launcher) Open(url string, id bookmarks.BrowserID) {
	if path := l.executable(id); path != "" {
		err := l.start(path, url)
		if err == nil {
			slog.Debug("started browser", "browser", id, "path", path, "url", url)
			return
		}
		slog.Warn("failed to start browser, using system opener",
			"browser", id,
			"path", path,
			"error", err)
	} else {
		slog.Debug("browser executable not found, using system opener", "browser", id)
	}

	if err := l.fallback(url); err != nil {
		slog.Error("failed to open url", "url", url, "error", err)
	}
}

func (l *Launcher) executable(id bookmarks.BrowserID) string {
	b, ok := l.browsers[id]
	if !ok {
		return ""
	}
	for _, candidate := range b.ExecutableCandidates(l.env) {
		if l.exists(candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// startDetached starts the process and releases it, so it outlives us.
func startDetached(path string, args ...string) error {
	cmd := exec.Command(path, args...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", path, err)
	}
	return cmd.Process.Release()
}
