package goquery

import (
	"sync"

	"github.com/fwojciec/larder"
)

var _ larder.SiteRegistry = (*Registry)(nil)

// genericSite receives every URL whose host matches no registered site.
var genericSite = &larder.Site{Name: "generic", Family: larder.FamilyGeneric}

type entry struct {
	site      *larder.Site
	extractor larder.RecipeExtractor
	index     larder.IndexSelector
}

// Registry dispatches URLs to site strategies by host.
type Registry struct {
	mu       sync.RWMutex
	entries  []entry
	fallback larder.RecipeExtractor
}

// NewRegistry creates an empty registry. Unmatched URLs are routed to
// fallback.
func NewRegistry(fallback larder.RecipeExtractor) *Registry {
	return &Registry{fallback: fallback}
}

// Register adds a site. index may be nil for sites without link discovery.
// A site registered under an existing name replaces the earlier one.
func (r *Registry) Register(site *larder.Site, extractor larder.RecipeExtractor, index larder.IndexSelector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := entry{site: site, extractor: extractor, index: index}
	for i := range r.entries {
		if r.entries[i].site.Name == site.Name {
			r.entries[i] = e
			return
		}
	}
	r.entries = append(r.entries, e)
}

// Decorate replaces every registered extractor, and the fallback, with
// wrap applied to it. It is used to add logging around all strategies.
func (r *Registry) Decorate(wrap func(larder.RecipeExtractor) larder.RecipeExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].extractor != nil {
			r.entries[i].extractor = wrap(r.entries[i].extractor)
		}
	}
	if r.fallback != nil {
		r.fallback = wrap(r.fallback)
	}
}

// Route returns the route for rawURL. When several sites match, the one
// with the longest matching domain wins.
func (r *Registry) Route(rawURL string) (larder.Route, error) {
	host := larder.HostOf(rawURL)
	if host == "" {
		return larder.Route{}, larder.Errorf(larder.EINVALID, "invalid URL %q", rawURL)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	best, bestLen := -1, 0
	for i, e := range r.entries {
		for _, d := range e.site.Domains {
			single := larder.Site{Domains: []string{d}}
			if single.Matches(host) && len(d) > bestLen {
				best, bestLen = i, len(d)
			}
		}
	}
	if best < 0 {
		return larder.Route{Site: genericSite, Extractor: r.fallback}, nil
	}
	e := r.entries[best]
	return larder.Route{Site: e.site, Extractor: e.extractor, Index: e.index}, nil
}

// Lookup returns the route registered under name.
func (r *Registry) Lookup(name string) (larder.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.site.Name == name {
			return larder.Route{Site: e.site, Extractor: e.extractor, Index: e.index}, nil
		}
	}
	return larder.Route{}, larder.Errorf(larder.ENOTFOUND, "unknown site %q", name)
}

// Sites returns the registered sites in registration order.
func (r *Registry) Sites() []*larder.Site {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sites := make([]*larder.Site, len(r.entries))
	for i, e := range r.entries {
		sites[i] = e.site
	}
	return sites
}

// DefaultSites returns the built-in site table.
func DefaultSites() []*larder.Site {
	return []*larder.Site{
		{
			Name:      "smittenkitchen",
			Family:    larder.FamilySmittenKitchen,
			Domains:   []string{"smittenkitchen.com"},
			IndexURLs: []string{"https://smittenkitchen.com/recipes/best-of-smitten-kitchen/"},
		},
		{
			Name:      "justinesnacks",
			Family:    larder.FamilyJustineSnacks,
			Domains:   []string{"justinesnacks.com"},
			IndexURLs: []string{"https://justinesnacks.com/category/recipes/"},
		},
		{
			Name:    "bonappetit",
			Family:  larder.FamilyBonAppetit,
			Domains: []string{"bonappetit.com"},
			IndexURLs: []string{
				"https://www.bonappetit.com/recipes",
				"https://www.bonappetit.com/meal-time/dinner",
				"https://www.bonappetit.com/meal-time/lunch",
			},
		},
	}
}

// NewDefaultRegistry returns a registry with the built-in sites. metadata
// fills gaps in structured data and may be nil.
func NewDefaultRegistry(metadata larder.MetadataExtractor) *Registry {
	schema := NewSchemaExtractor(metadata)
	r := NewRegistry(schema)
	for _, site := range DefaultSites() {
		switch site.Family {
		case larder.FamilySmittenKitchen:
			sk := NewSmittenKitchen(site)
			r.Register(site, sk, sk)
		case larder.FamilyJustineSnacks:
			js := NewJustineSnacks(site)
			r.Register(site, js, js)
		case larder.FamilyBonAppetit:
			r.Register(site, schema, NewBonAppetitIndex(site))
		}
	}
	return r
}
