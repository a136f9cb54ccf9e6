// Link checking for bookmark URLs
// Contains: LinkChecker, LinkStatus

package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
	"github.com/xtruder/bookmarks-search/internal/x"
)

var ErrUnsupportedScheme = errors.New("unsupported url scheme")

// CheckOptions contains configuration for link checking
type CheckOptions struct {
	Concurrency int
	Cache       x.Cache
	UserAgent   string
}

// LinkStatus is the result of probing one bookmark
type LinkStatus struct {
	Record     bookmarks.Record
	StatusCode int
	Err        error
	Cached     bool
}

// OK reports whether the link answered with a success or redirect status.
func (s LinkStatus) OK() bool {
	return s.Err == nil && s.StatusCode >= 200 && s.StatusCode < 400
}

// LinkChecker probes bookmark URLs over HTTP
type LinkChecker struct {
	client      HTTPClient
	concurrency int
	cache       x.Cache
	userAgent   string
}

// NewLinkChecker creates a new link checker
func NewLinkChecker(client HTTPClient, opts CheckOptions) *LinkChecker {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "bmsearch"
	}
	return &LinkChecker{
		client:      client,
		concurrency: concurrency,
		cache:       opts.Cache,
		userAgent:   userAgent,
	}
}

// Check probes every record and returns statuses in input order.
func (c *LinkChecker) Check(ctx context.Context, records []bookmarks.Record) []LinkStatus {
	statuses := make([]LinkStatus, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, r := range records {
		g.Go(func() error {
			statuses[i] = c.checkRecord(ctx, r)
			return nil
		})
	}
	_ = g.Wait()

	return statuses
}

func (c *LinkChecker) checkRecord(ctx context.Context, r bookmarks.Record) LinkStatus {
	status := LinkStatus{Record: r}

	key := x.Key(r.URL)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			if code, err := strconv.Atoi(cached); err == nil {
				slog.Debug("using cached link status", "url", r.URL, "status", code)
				status.StatusCode = code
				status.Cached = true
				return status
			}
		}
	}

	status.StatusCode, status.Err = c.CheckURL(ctx, r.URL)
	if status.Err != nil {
		slog.Debug("link check failed", "url", r.URL, "error", status.Err)
		return status
	}

	if c.cache != nil && status.OK() {
		if err := c.cache.Set(key, strconv.Itoa(status.StatusCode)); err != nil {
			slog.Warn("failed to cache link status", "error", err)
		}
	}
	return status
}

// CheckURL sends a HEAD request, retrying with GET when the server does
// not accept HEAD, and returns the response status code.
func (c *LinkChecker) CheckURL(ctx context.Context, rawURL string) (int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	code, err := c.do(ctx, http.MethodHead, rawURL)
	if err != nil {
		return 0, err
	}
	if code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented {
		return c.do(ctx, http.MethodGet, rawURL)
	}
	return code, nil
}

func (c *LinkChecker) do(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.StatusCode, nil
}
