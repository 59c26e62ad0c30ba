// Package crawl discovers recipe URLs by walking paginated site indexes
// and extracts recipes from them with bounded concurrency.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/larder"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of recipe pages fetched at once.
const DefaultConcurrency = 4

// Harvester discovers and extracts recipes across the registered sites.
type Harvester struct {
	Registry    larder.SiteRegistry
	Fetcher     larder.Fetcher
	RateLimiter larder.DomainLimiter // optional
	Logger      *slog.Logger         // optional; receives dropped URLs

	// Concurrency bounds parallel traversals per site and parallel
	// extractions. Defaults to DefaultConcurrency.
	Concurrency int

	// MaxPages caps each index traversal. Defaults to DefaultMaxPages.
	MaxPages int

	// Delay is the pause between index pages of one traversal. Defaults
	// to DefaultDelay; a negative value disables it.
	Delay time.Duration

	// RetryDelays enables retries of failed fetches. Nil means one attempt.
	RetryDelays []time.Duration
}

// HarvestResult summarizes a Harvest run.
type HarvestResult struct {
	Total     int
	Extracted int
	Failed    int

	// Partial counts extracted recipes with at least one missing field.
	Partial int
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// SinkFunc receives each extracted recipe. It is never called
// concurrently. A returned error marks that URL as failed.
type SinkFunc func(ctx context.Context, recipe *larder.Recipe) error

// DiscoverURLs walks the index pages of the named site and returns the
// unique recipe URLs found. When indexURLs is empty the site's configured
// index URLs are used. Traversals for different index URLs run
// concurrently; a traversal that fails still contributes the links it
// found. Returns ENOTFOUND for an unknown site and EINVALID for a site
// without link discovery.
func (h *Harvester) DiscoverURLs(ctx context.Context, siteName string, indexURLs []string) ([]string, error) {
	route, err := h.Registry.Lookup(siteName)
	if err != nil {
		return nil, err
	}
	if route.Index == nil {
		return nil, larder.Errorf(larder.EINVALID, "site %q does not support link discovery", siteName)
	}
	if len(indexURLs) == 0 {
		indexURLs = route.Site.IndexURLs
	}

	traversals := make([]*Traversal, len(indexURLs))
	g := new(errgroup.Group)
	g.SetLimit(h.concurrency())
	for i, start := range indexURLs {
		g.Go(func() error {
			traversals[i] = Paginate(ctx, start, h.Fetcher, route.Index, h.paginateOptions()...)
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]bool)
	urls := []string{}
	for _, t := range traversals {
		h.logTraversal(siteName, t)
		for _, u := range t.URLs {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return urls, err
	}
	return urls, nil
}

// Discover runs DiscoverURLs for every site in parallel and aggregates the
// results. Each key names a site; a nil or empty value selects the site's
// configured index URLs.
func (h *Harvester) Discover(ctx context.Context, sites map[string][]string) (*Aggregation, error) {
	var mu sync.Mutex
	perSite := make(map[string][]string, len(sites))

	g, gctx := errgroup.WithContext(ctx)
	for name, indexURLs := range sites {
		g.Go(func() error {
			urls, err := h.DiscoverURLs(gctx, name, indexURLs)
			if err != nil {
				return fmt.Errorf("discover %s: %w", name, err)
			}
			mu.Lock()
			perSite[name] = urls
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Aggregate(perSite), nil
}

// ExtractRecipe fetches url and extracts its recipe with the strategy the
// registry assigns to its host. Any failure is logged and reported as nil.
func (h *Harvester) ExtractRecipe(ctx context.Context, url string) *larder.Recipe {
	r, err := h.extract(ctx, url)
	if err != nil {
		h.logger().Warn("recipe dropped", "url", url, "code", larder.ErrorCode(err), "error", err)
		return nil
	}
	return r
}

// Harvest extracts recipes from urls using a bounded worker pool and hands
// each one to sink in completion order. Per-URL failures are counted, not
// returned. The returned error is non-nil only when ctx ends the run.
func (h *Harvester) Harvest(ctx context.Context, urls []string, sink SinkFunc, progress ProgressFunc) (*HarvestResult, error) {
	type outcome struct {
		url    string
		recipe *larder.Recipe
		err    error
	}

	total := len(urls)
	result := &HarvestResult{Total: total}
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	outcomes := make(chan outcome, h.concurrency())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency())

	go func() {
		for _, u := range urls {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				r, err := h.extract(gctx, u)
				outcomes <- outcome{url: u, recipe: r, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	completed := 0
	for o := range outcomes {
		completed++
		err := o.err
		if err == nil && sink != nil {
			err = sink(ctx, o.recipe)
		}

		if err != nil {
			result.Failed++
			h.logger().Warn("recipe dropped", "url", o.url, "code", larder.ErrorCode(err), "error", err)
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     total,
					URL:       o.url,
					Error:     err,
				})
			}
			continue
		}

		result.Extracted++
		if missing := o.recipe.MissingFields(); len(missing) > 0 {
			result.Partial++
			h.logger().Info("recipe partial", "url", o.url, "missing", missing)
		}
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Total:     total,
				URL:       o.url,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// extract routes, fetches and parses a single recipe page.
func (h *Harvester) extract(ctx context.Context, url string) (r *larder.Recipe, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, &larder.Error{Code: larder.EINTERNAL, Message: fmt.Sprintf("extraction panic: %v", p), URL: url}
		}
	}()

	route, err := h.Registry.Route(url)
	if err != nil {
		return nil, err
	}
	if route.Extractor == nil {
		return nil, &larder.Error{Code: larder.EUNSUPPORTED, Message: "no extraction strategy", URL: url}
	}

	if h.RateLimiter != nil {
		if err := h.RateLimiter.Wait(ctx, larder.HostOf(url)); err != nil {
			return nil, err
		}
	}

	html, err := FetchWithRetry(ctx, h.Fetcher, url, h.RetryDelays, h.logRetry)
	if err != nil {
		return nil, err
	}

	r, err = route.Extractor.ExtractRecipe(url, html)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &larder.Error{Code: larder.EPARSE, Message: "no recipe extracted", URL: url}
	}
	return r, nil
}

func (h *Harvester) paginateOptions() []PaginateOption {
	var opts []PaginateOption
	if h.Delay != 0 {
		opts = append(opts, WithDelay(h.Delay))
	}
	if h.MaxPages > 0 {
		opts = append(opts, WithMaxPages(h.MaxPages))
	}
	if len(h.RetryDelays) > 0 {
		opts = append(opts, WithRetryDelays(h.RetryDelays, h.logRetry))
	}
	return opts
}

func (h *Harvester) logTraversal(site string, t *Traversal) {
	attrs := []any{"site", site, "start", t.Start, "pages", t.Pages, "urls", len(t.URLs), "reason", string(t.Reason)}
	if t.Err != nil {
		h.logger().Warn("traversal stopped", append(attrs, "error", t.Err)...)
		return
	}
	h.logger().Info("traversal finished", attrs...)
}

func (h *Harvester) logRetry(url string, attempt int, err error) {
	h.logger().Debug("retrying fetch", "url", url, "attempt", attempt, "error", err)
}

func (h *Harvester) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (h *Harvester) concurrency() int {
	if h.Concurrency > 0 {
		return h.Concurrency
	}
	return DefaultConcurrency
}
