package crawl

import (
	"sort"

	"github.com/fwojciec/larder/bloom"
)

// aggregateFalsePositiveRate sizes the pre-filter used by Aggregate.
const aggregateFalsePositiveRate = 0.01

// Aggregation is the union of URLs discovered across sites.
type Aggregation struct {
	// URLs holds each distinct URL once. Sites are taken in name order and
	// each site's URLs in their discovered order.
	URLs []string

	// PerSite counts the URLs each site contributed before deduplication.
	PerSite map[string]int

	// Before is the total number of URLs before deduplication.
	Before int

	// Total is len(URLs).
	Total int
}

// Aggregate merges per-site URL lists into one set. URLs are compared as
// exact strings. The result does not depend on map iteration order, and
// aggregating an aggregation's URLs again yields the same URLs.
func Aggregate(perSite map[string][]string) *Aggregation {
	names := make([]string, 0, len(perSite))
	before := 0
	for name, urls := range perSite {
		names = append(names, name)
		before += len(urls)
	}
	sort.Strings(names)

	agg := &Aggregation{
		URLs:    make([]string, 0, before),
		PerSite: make(map[string]int, len(perSite)),
		Before:  before,
	}

	filter := bloom.NewFilter(uint(before), aggregateFalsePositiveRate)
	seen := make(map[string]struct{}, before)
	for _, name := range names {
		urls := perSite[name]
		agg.PerSite[name] = len(urls)
		for _, u := range urls {
			// A negative filter answer is definite; only positives need the
			// exact set.
			if filter.TestAndAdd(u) {
				if _, dup := seen[u]; dup {
					continue
				}
			}
			seen[u] = struct{}{}
			agg.URLs = append(agg.URLs, u)
		}
	}
	agg.Total = len(agg.URLs)
	return agg
}
