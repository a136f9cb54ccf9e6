package bookmarks

import (
	"strings"
	"time"
)

// BrowserID identifies the browser family that owns a bookmark.
type BrowserID string

const (
	Chrome BrowserID = "chrome"
	Edge   BrowserID = "edge"
)

// Icon returns the display icon token for the browser.
func (b BrowserID) Icon() string {
	return string(b) + ".png"
}

// FolderSeparator joins nested folder names in a record's folder path.
const FolderSeparator = " - "

// Record represents a single bookmark flattened out of a browser's folder tree
type Record struct {
	AddedAt int64     `json:"added_at"`
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Folder  string    `json:"folder,omitempty"`
	Browser BrowserID `json:"browser"`
}

// JoinFolder appends a folder name to an accumulated folder path.
func JoinFolder(path, name string) string {
	if path == "" {
		return name
	}
	return path + FolderSeparator + name
}

// SplitFolder splits a folder path back into folder names.
func SplitFolder(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, FolderSeparator)
}

// Description is the URL prefixed with the folder path in corner brackets,
// e.g. "「Work - Tools」https://example.com". It always contains the URL.
func (r Record) Description() string {
	if r.Folder == "" {
		return r.URL
	}
	return "「" + r.Folder + "」" + r.URL
}

func (r Record) Icon() string {
	return r.Browser.Icon()
}

// chromiumEpochOffset is the number of seconds between 1601-01-01 and 1970-01-01.
const chromiumEpochOffset = 11644473600

// AddedTime converts the raw Chromium timestamp (microseconds since 1601)
// into a time.Time. Only used for display; sorting works on the raw value.
func (r Record) AddedTime() time.Time {
	if r.AddedAt <= 0 {
		return time.Time{}
	}
	secs := r.AddedAt/1_000_000 - chromiumEpochOffset
	micros := r.AddedAt % 1_000_000
	return time.Unix(secs, micros*1000).UTC()
}
