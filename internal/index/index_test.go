package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
	"github.com/xtruder/bookmarks-search/internal/chromium"
)

func writeStore(t *testing.T, dataDir, profile, content string) {
	t.Helper()
	dir := filepath.Join(dataDir, profile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, chromium.BookmarksFile), []byte(content), 0644); err != nil {
		t.Fatalf("write store: %v", err)
	}
}

const chromeStore = `{"roots": {
  "bookmark_bar": {"children": [
    {"type": "url", "name": "Late", "url": "https://late.example", "date_added": "300"},
    {"type": "url", "name": "Tie A", "url": "https://tie-a.example", "date_added": "200"}
  ]},
  "other": {"children": []},
  "synced": {"children": []}
}}`

const edgeStore = `{"roots": {
  "bookmark_bar": {"children": [
    {"type": "url", "name": "Early", "url": "https://early.example", "date_added": "100"},
    {"type": "url", "name": "Tie B", "url": "https://tie-b.example", "date_added": "200"}
  ]}
}}`

func testEnv() chromium.Env {
	return chromium.Env{GOOS: "linux", Getenv: func(string) string { return "" }}
}

func TestRebuild_MergesAndSorts(t *testing.T) {
	chromeDir, edgeDir := t.TempDir(), t.TempDir()
	writeStore(t, chromeDir, "Default", chromeStore)
	writeStore(t, edgeDir, "Profile 1", edgeStore)

	b := NewBuilder([]chromium.Browser{
		{ID: bookmarks.Chrome, DataDir: chromeDir},
		{ID: bookmarks.Edge, DataDir: edgeDir},
	}, testEnv())

	snap, outcomes := b.Rebuild(context.Background())

	var titles []string
	for r := range snap.All() {
		titles = append(titles, r.Title)
	}
	// Equal timestamps keep contribution order: chrome before edge.
	want := []string{"Early", "Tie A", "Tie B", "Late"}
	if len(titles) != len(want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("titles = %v, want %v", titles, want)
		}
	}

	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Status != StatusOK || o.Records != 2 {
			t.Errorf("outcome %+v, want ok with 2 records", o)
		}
	}
	if outcomes[1].Profile != filepath.Join(edgeDir, "Profile 1") {
		t.Errorf("edge profile = %q", outcomes[1].Profile)
	}
}

func TestRebuild_MissingStoreForOneBrowser(t *testing.T) {
	chromeDir, edgeDir := t.TempDir(), t.TempDir()
	writeStore(t, edgeDir, "Default", edgeStore)

	b := NewBuilder([]chromium.Browser{
		{ID: bookmarks.Chrome, DataDir: chromeDir},
		{ID: bookmarks.Edge, DataDir: edgeDir},
	}, testEnv())

	snap, outcomes := b.Rebuild(context.Background())
	if snap.Len() != 2 {
		t.Fatalf("snapshot has %d records, want 2", snap.Len())
	}
	for r := range snap.All() {
		if r.Browser != bookmarks.Edge {
			t.Fatalf("unexpected record from %s", r.Browser)
		}
	}
	if outcomes[0].Status != StatusProfileNotFound {
		t.Fatalf("chrome status = %s, want profile-not-found", outcomes[0].Status)
	}
}

func TestRebuild_Degradation(t *testing.T) {
	corruptDir := t.TempDir()
	writeStore(t, corruptDir, "Default", `{"roots": `)

	b := NewBuilder([]chromium.Browser{
		{ID: bookmarks.Chrome, DataDir: corruptDir},
		{ID: bookmarks.Edge, DataDir: filepath.Join(t.TempDir(), "absent")},
	}, testEnv())

	snap, outcomes := b.Rebuild(context.Background())
	if snap.Len() != 0 {
		t.Fatalf("expected empty snapshot, got %d records", snap.Len())
	}
	if outcomes[0].Status != StatusParseError || !errors.Is(outcomes[0].Err, chromium.ErrInvalidDocument) {
		t.Fatalf("chrome outcome = %+v, want parse error", outcomes[0])
	}
	if outcomes[1].Status != StatusDataDirMissing {
		t.Fatalf("edge status = %s, want data-dir-missing", outcomes[1].Status)
	}
}

func TestRebuild_ExtractorError(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, dir, "Default", chromeStore)

	b := NewBuilder([]chromium.Browser{{ID: bookmarks.Chrome, DataDir: dir}}, testEnv())
	b.extract = func(string, bookmarks.BrowserID) ([]bookmarks.Record, error) {
		return nil, errors.New("boom")
	}

	snap, outcomes := b.Rebuild(context.Background())
	if snap.Len() != 0 || outcomes[0].Status != StatusParseError {
		t.Fatalf("snapshot len %d, outcome %+v", snap.Len(), outcomes[0])
	}
}

func TestSnapshot_Immutable(t *testing.T) {
	src := []bookmarks.Record{{Title: "b", AddedAt: 2}, {Title: "a", AddedAt: 1}}
	snap := NewSnapshot(src)

	src[0].Title = "changed"
	got := snap.Records()
	got[0].Title = "changed too"

	again := snap.Records()
	if again[0].Title != "a" || again[1].Title != "b" {
		t.Fatalf("snapshot mutated: %+v", again)
	}

	var nilSnap *Snapshot
	if nilSnap.Len() != 0 || nilSnap.Records() != nil {
		t.Fatalf("nil snapshot should be empty")
	}
	for range nilSnap.All() {
		t.Fatalf("nil snapshot should yield nothing")
	}
}
