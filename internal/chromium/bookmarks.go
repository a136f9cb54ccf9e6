// Chromium bookmark store parsing
// Contains: Extract, Parse, the roots walker with its depth guard

package chromium

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tidwall/gjson"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
)

// BookmarksFile is the name of the bookmark store inside a profile directory.
const BookmarksFile = "Bookmarks"

// RootKeys are the top level containers under "roots", walked in this order.
var RootKeys = []string{"bookmark_bar", "other", "synced"}

// MaxDepth bounds folder nesting; deeper subtrees are skipped.
const MaxDepth = 64

var (
	ErrInvalidDocument = errors.New("bookmark store is not valid JSON")
	ErrNoRoots         = errors.New("bookmark store has no roots object")
)

// Extract reads a bookmark store file and flattens it into records.
func Extract(path string, browser bookmarks.BrowserID) ([]bookmarks.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmark store: %w", err)
	}

	records, err := Parse(data, browser)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// Parse flattens a bookmark store document into records, in the stored
// order of each root's children.
func Parse(data []byte, browser bookmarks.BrowserID) ([]bookmarks.Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidDocument
	}

	roots := gjson.GetBytes(data, "roots")
	if !roots.IsObject() {
		return nil, ErrNoRoots
	}

	w := walker{browser: browser}
	for _, key := range RootKeys {
		w.walk(roots.Get(key), "", 0)
	}
	return w.records, nil
}

type walker struct {
	browser bookmarks.BrowserID
	records []bookmarks.Record
}

func (w *walker) walk(folder gjson.Result, path string, depth int) {
	children := folder.Get("children")
	if !folder.IsObject() || !children.IsArray() {
		return
	}

	if depth > MaxDepth {
		slog.Warn("bookmark folder nested too deep, skipping",
			"browser", w.browser,
			"folder", path,
			"depth", depth)
		return
	}

	children.ForEach(func(_, node gjson.Result) bool {
		switch node.Get("type").String() {
		case "url":
			url := node.Get("url").String()
			if url == "" {
				slog.Debug("skipping bookmark without url", "browser", w.browser, "folder", path)
				return true
			}
			w.records = append(w.records, bookmarks.Record{
				AddedAt: node.Get("date_added").Int(),
				Title:   node.Get("name").String(),
				URL:     url,
				Folder:  path,
				Browser: w.browser,
			})
		case "folder":
			w.walk(node, bookmarks.JoinFolder(path, node.Get("name").String()), depth+1)
		}
		return true
	})
}
