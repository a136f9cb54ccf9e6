package index

import (
	"context"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
	"github.com/xtruder/bookmarks-search/internal/chromium"
)

// Status describes how a browser contributed to a rebuild.
type Status int

const (
	StatusOK Status = iota
	StatusDataDirMissing
	StatusProfileNotFound
	StatusParseError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDataDirMissing:
		return "data-dir-missing"
	case StatusProfileNotFound:
		return "profile-not-found"
	case StatusParseError:
		return "parse-error"
	}
	return "unknown"
}

// Outcome records what happened for one browser during a rebuild.
// Outcomes are diagnostics only; a failed browser contributes no records.
type Outcome struct {
	Browser bookmarks.BrowserID
	DataDir string
	Profile string
	Status  Status
	Records int
	Err     error
}

// Snapshot is an immutable list of records sorted by creation time.
type Snapshot struct {
	records []bookmarks.Record
}

// NewSnapshot copies records and sorts them ascending by AddedAt. Records
// with equal timestamps keep their relative order.
func NewSnapshot(records []bookmarks.Record) *Snapshot {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b bookmarks.Record) int {
		switch {
		case a.AddedAt < b.AddedAt:
			return -1
		case a.AddedAt > b.AddedAt:
			return 1
		}
		return 0
	})
	return &Snapshot{records: sorted}
}

// Len returns the number of records. A nil snapshot is empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// All iterates records in snapshot order.
func (s *Snapshot) All() iter.Seq[bookmarks.Record] {
	return func(yield func(bookmarks.Record) bool) {
		if s == nil {
			return
		}
		for _, r := range s.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Records returns a copy of the snapshot's records.
func (s *Snapshot) Records() []bookmarks.Record {
	if s == nil {
		return nil
	}
	return slices.Clone(s.records)
}

// Extractor parses a bookmark store file.
type Extractor func(path string, browser bookmarks.BrowserID) ([]bookmarks.Record, error)

// Builder builds snapshots from the bookmark stores of a set of browsers
type Builder struct {
	browsers []chromium.Browser
	env      chromium.Env
	extract  Extractor
}

// NewBuilder creates a builder for the given browsers, in contribution order.
func NewBuilder(browsers []chromium.Browser, env chromium.Env) *Builder {
	return &Builder{
		browsers: browsers,
		env:      env,
		extract:  chromium.Extract,
	}
}

// Rebuild reads every browser's bookmark store and returns a fresh snapshot.
// It never fails: browsers whose data cannot be read contribute nothing and
// the reason is reported in the returned outcomes.
func (b *Builder) Rebuild(ctx context.Context) (*Snapshot, []Outcome) {
	var (
		all      []bookmarks.Record
		outcomes = make([]Outcome, 0, len(b.browsers))
	)

	for _, browser := range b.browsers {
		if ctx.Err() != nil {
			break
		}

		outcome, records := b.collect(browser)
		outcomes = append(outcomes, outcome)
		all = append(all, records...)
	}

	snap := NewSnapshot(all)
	slog.Debug("bookmark index rebuilt", "records", snap.Len(), "browsers", len(outcomes))
	return snap, outcomes
}

func (b *Builder) collect(browser chromium.Browser) (Outcome, []bookmarks.Record) {
	outcome := Outcome{Browser: browser.ID}

	outcome.DataDir = browser.ResolveDataDir(b.env)
	if outcome.DataDir == "" || !dirExists(outcome.DataDir) {
		outcome.Status = StatusDataDirMissing
		slog.Info("browser data directory not found", "browser", browser.ID, "dir", outcome.DataDir)
		return outcome, nil
	}

	profile, ok := browser.LocateProfile(outcome.DataDir)
	if !ok {
		outcome.Status = StatusProfileNotFound
		slog.Info("no bookmark profile found", "browser", browser.ID, "dir", outcome.DataDir)
		return outcome, nil
	}
	outcome.Profile = profile

	records, err := b.extract(filepath.Join(profile, chromium.BookmarksFile), browser.ID)
	if err != nil {
		outcome.Status = StatusParseError
		outcome.Err = err
		slog.Warn("failed to extract bookmarks", "browser", browser.ID, "profile", profile, "error", err)
		return outcome, nil
	}

	outcome.Status = StatusOK
	outcome.Records = len(records)
	slog.Debug("extracted bookmarks", "browser", browser.ID, "profile", profile, "records", len(records))
	return outcome, records
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
