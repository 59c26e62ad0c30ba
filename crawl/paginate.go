package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/larder"
)

// Pagination defaults.
const (
	DefaultMaxPages = 5
	DefaultDelay    = 500 * time.Millisecond
)

// Termination explains why a traversal stopped.
type Termination string

const (
	// ReasonExhausted means the last page had no next-page link.
	ReasonExhausted Termination = "exhausted"
	// ReasonLoop means the next-page link pointed at a page already visited.
	ReasonLoop Termination = "loop"
	// ReasonCapped means the page limit was reached.
	ReasonCapped Termination = "capped"
	// ReasonFailed means a page could not be fetched or read.
	ReasonFailed Termination = "failed"
	// ReasonCanceled means the context ended the traversal.
	ReasonCanceled Termination = "canceled"
)

// Traversal is the outcome of following one chain of index pages.
// URLs holds every recipe link found, in first-seen order without
// duplicates, and is kept even when the traversal ends early.
type Traversal struct {
	Start  string
	URLs   []string
	Pages  int
	Reason Termination
	Err    error
}

// PaginateOption configures Paginate.
type PaginateOption func(*paginateConfig)

type paginateConfig struct {
	maxPages    int
	delay       time.Duration
	retryDelays []time.Duration
	onRetry     RetryFunc
}

// WithMaxPages caps the number of index pages visited.
// Values below 1 keep the default of 5.
func WithMaxPages(n int) PaginateOption {
	return func(c *paginateConfig) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// WithDelay sets the pause between consecutive page fetches.
// Zero or a negative value disables the pause.
func WithDelay(d time.Duration) PaginateOption {
	return func(c *paginateConfig) {
		c.delay = max(d, 0)
	}
}

// WithRetryDelays enables retrying failed page fetches.
func WithRetryDelays(delays []time.Duration, onRetry RetryFunc) PaginateOption {
	return func(c *paginateConfig) {
		c.retryDelays = delays
		c.onRetry = onRetry
	}
}

// Paginate walks index pages starting at startURL, collecting recipe links
// with selector and following its next-page links. Pages are fetched one at
// a time with a pause between them. It stops when there is no next page,
// when the next page was already visited, after the page cap, on the first
// page that fails, or when ctx is done. Links from every page processed
// before the stop are returned.
func Paginate(ctx context.Context, startURL string, fetcher larder.Fetcher, selector larder.IndexSelector, opts ...PaginateOption) *Traversal {
	cfg := &paginateConfig{
		maxPages: DefaultMaxPages,
		delay:    DefaultDelay,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	t := &Traversal{Start: startURL, URLs: []string{}}
	found := make(map[string]bool)
	visited := make(map[string]bool)

	current := startURL
	for {
		if err := ctx.Err(); err != nil {
			t.Reason, t.Err = ReasonCanceled, err
			return t
		}

		html, err := FetchWithRetry(ctx, fetcher, current, cfg.retryDelays, cfg.onRetry)
		if err != nil {
			t.fail(ctx, err)
			return t
		}

		links, err := selector.RecipeLinks(html, current)
		if err != nil {
			t.fail(ctx, err)
			return t
		}
		for _, link := range links {
			if !found[link] {
				found[link] = true
				t.URLs = append(t.URLs, link)
			}
		}
		t.Pages++
		visited[pageKey(current)] = true

		next, err := selector.NextPage(html, current)
		if err != nil {
			t.fail(ctx, err)
			return t
		}
		switch {
		case next == "":
			t.Reason = ReasonExhausted
			return t
		case visited[pageKey(next)]:
			t.Reason = ReasonLoop
			return t
		case t.Pages >= cfg.maxPages:
			t.Reason = ReasonCapped
			return t
		}

		if cfg.delay > 0 {
			timer := time.NewTimer(cfg.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				t.Reason, t.Err = ReasonCanceled, ctx.Err()
				return t
			case <-timer.C:
			}
		}
		current = next
	}
}

func (t *Traversal) fail(ctx context.Context, err error) {
	if ctx.Err() != nil {
		t.Reason, t.Err = ReasonCanceled, ctx.Err()
		return
	}
	t.Reason, t.Err = ReasonFailed, err
}

// pageKey identifies a page for loop detection. Fragments do not make a
// page distinct.
func pageKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
