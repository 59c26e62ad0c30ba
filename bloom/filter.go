// Package bloom provides a probabilistic seen-set for discovered recipe URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a Bloom filter over URL strings. A negative answer is
// definite; a positive answer must be confirmed against an exact set.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs at the given false
// positive rate. n is raised to 1 when zero.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd records the URL and reports whether it may have been added
// before.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}
