// Package session ties the bookmark index, ranking and launcher together
// behind the lifecycle a search UI drives: start, query, select.
package session

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
	"github.com/xtruder/bookmarks-search/internal/index"
	"github.com/xtruder/bookmarks-search/internal/search"
)

// Rebuilder produces a fresh snapshot.
type Rebuilder interface {
	Rebuild(ctx context.Context) (*index.Snapshot, []index.Outcome)
}

// Opener opens a URL in the given browser without waiting for it.
type Opener interface {
	Open(url string, browser bookmarks.BrowserID)
}

// DisplayItem is a ranked result as shown to the user
type DisplayItem struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	URL         string              `json:"url"`
	Browser     bookmarks.BrowserID `json:"browser"`
	Icon        string              `json:"icon"`
}

// NewDisplayItem converts a record into its display form.
func NewDisplayItem(r bookmarks.Record) DisplayItem {
	return DisplayItem{
		Title:       r.Title,
		Description: r.Description(),
		URL:         r.URL,
		Browser:     r.Browser,
		Icon:        r.Icon(),
	}
}

// Options configure a session.
type Options struct {
	// Limit caps the number of results returned by Query; zero means no cap.
	Limit int
}

// Session holds the snapshot for one search session
type Session struct {
	builder Rebuilder
	opener  Opener
	limit   int

	snapshot atomic.Pointer[index.Snapshot]
}

// New creates a session. Call Start before querying.
func New(builder Rebuilder, opener Opener, opts Options) *Session {
	return &Session{
		builder: builder,
		opener:  opener,
		limit:   opts.Limit,
	}
}

// Start rebuilds the index and replaces the current snapshot with the
// result. The outcomes are returned for diagnostics.
func (s *Session) Start(ctx context.Context) []index.Outcome {
	snap, outcomes := s.builder.Rebuild(ctx)
	s.snapshot.Store(snap)
	slog.Debug("search session started", "records", snap.Len())
	return outcomes
}

// Snapshot returns the current snapshot, nil before Start.
func (s *Session) Snapshot() *index.Snapshot {
	return s.snapshot.Load()
}

// Records ranks the current snapshot against text.
func (s *Session) Records(text string) []bookmarks.Record {
	results := search.Rank(s.snapshot.Load().All(), text)
	if s.limit > 0 && len(results) > s.limit {
		results = results[:s.limit]
	}
	return results
}

// Query ranks the current snapshot against text and returns display items.
// Empty text yields no items.
func (s *Session) Query(text string) []DisplayItem {
	records := s.Records(text)
	items := make([]DisplayItem, len(records))
	for i, r := range records {
		items[i] = NewDisplayItem(r)
	}
	return items
}

// Select opens the item in its owning browser. The caller is expected to
// close its search surface afterwards.
func (s *Session) Select(item DisplayItem) {
	slog.Info("opening bookmark", "title", item.Title, "url", item.URL, "browser", item.Browser)
	s.opener.Open(item.URL, item.Browser)
}
