package markdown

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
)

var records = []bookmarks.Record{
	{AddedAt: 13285932710000000, Title: "GitHub", URL: "https://github.com", Browser: bookmarks.Chrome},
	{AddedAt: 13285932720000000, Title: "Notes: gh/overview", URL: "https://www.notes.example/gh", Folder: "Work - Tools", Browser: bookmarks.Edge},
}

func TestExport_WritesNotes(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(ExportOptions{OutputDir: dir}, nil)

	stats, err := e.Export(slices.Values(records))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if stats.Written != 2 || stats.Skipped != 0 {
		t.Fatalf("stats = %+v", stats)
	}

	first := filepath.Join(dir, "chrome", "github.com - GitHub.md")
	content, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read %s: %v", first, err)
	}
	for _, want := range []string{`title: "GitHub"`, `url: "https://github.com"`, `browser: "chrome"`, `tags: ["bookmark"]`, "<https://github.com>"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("note missing %q:\n%s", want, content)
		}
	}

	second := filepath.Join(dir, "edge", "Work", "Tools", "notes.example - Notes gh overview.md")
	if _, err := os.Stat(second); err != nil {
		t.Fatalf("expected nested note: %v", err)
	}
}

func TestExport_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewExporter(ExportOptions{OutputDir: dir}, nil).Export(slices.Values(records[:1])); err != nil {
		t.Fatalf("first export: %v", err)
	}

	cache, err := BuildCache(dir)
	if err != nil {
		t.Fatalf("BuildCache: %v", err)
	}
	if _, ok := cache[NoteID(records[0])]; !ok {
		t.Fatalf("cache missing exported note: %v", cache)
	}

	stats, err := NewExporter(ExportOptions{OutputDir: dir}, cache).Export(slices.Values(records))
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if stats.Written != 1 || stats.Skipped != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestExport_NameCollision(t *testing.T) {
	dir := t.TempDir()
	dupes := []bookmarks.Record{
		{Title: "Docs", URL: "https://a.example/one", Browser: bookmarks.Chrome},
		{Title: "Docs", URL: "https://a.example/two", Browser: bookmarks.Chrome},
	}
	stats, err := NewExporter(ExportOptions{OutputDir: dir}, nil).Export(slices.Values(dupes))
	if err != nil || stats.Written != 2 {
		t.Fatalf("Export = %+v, %v", stats, err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "chrome"))
	if err != nil || len(entries) != 2 {
		t.Fatalf("expected 2 notes, got %d (%v)", len(entries), err)
	}
}

func TestBuildCache_MissingDir(t *testing.T) {
	cache, err := BuildCache(filepath.Join(t.TempDir(), "absent"))
	if err != nil || len(cache) != 0 {
		t.Fatalf("BuildCache = %v, %v", cache, err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		title, url, want string
	}{
		{"GitHub", "https://github.com", "github.com - GitHub.md"},
		{"github.com home", "https://github.com", "github.com home.md"},
		{"a/b:c", "http://www.x.example:8080/p", "x.example - a b c.md"},
		{"", "https://e.example", "e.example - _.md"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.title, tt.url); got != tt.want {
			t.Errorf("sanitizeFilename(%q, %q) = %q, want %q", tt.title, tt.url, got, tt.want)
		}
	}
}
