package mock

import "github.com/fwojciec/larder"

var (
	_ larder.IndexSelector = (*IndexSelector)(nil)
	_ larder.SiteRegistry  = (*SiteRegistry)(nil)
)

// IndexSelector is a mock implementation of larder.IndexSelector.
type IndexSelector struct {
	RecipeLinksFn func(html string, pageURL string) ([]string, error)
	NextPageFn    func(html string, pageURL string) (string, error)
}

func (s *IndexSelector) RecipeLinks(html string, pageURL string) ([]string, error) {
	return s.RecipeLinksFn(html, pageURL)
}

func (s *IndexSelector) NextPage(html string, pageURL string) (string, error) {
	return s.NextPageFn(html, pageURL)
}

// SiteRegistry is a mock implementation of larder.SiteRegistry.
type SiteRegistry struct {
	RouteFn  func(rawURL string) (larder.Route, error)
	LookupFn func(name string) (larder.Route, error)
	SitesFn  func() []*larder.Site
}

func (r *SiteRegistry) Route(rawURL string) (larder.Route, error) {
	return r.RouteFn(rawURL)
}

func (r *SiteRegistry) Lookup(name string) (larder.Route, error) {
	return r.LookupFn(name)
}

func (r *SiteRegistry) Sites() []*larder.Site {
	return r.SitesFn()
}
