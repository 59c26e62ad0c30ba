package larder

import (
	"net/url"
	"strings"
)

// SiteFamily identifies a set of pages sharing one content-management
// system's markup conventions. Each family has one extraction strategy.
type SiteFamily string

// Supported site families.
const (
	FamilyGeneric        SiteFamily = ""
	FamilySmittenKitchen SiteFamily = "smittenkitchen"
	FamilyJustineSnacks  SiteFamily = "justinesnacks"
	FamilyBonAppetit     SiteFamily = "bonappetit"
)

// Site describes one onboarded recipe site.
type Site struct {
	// Name is the short identifier used on the command line.
	Name string

	Family SiteFamily

	// Domains are the registered domains served by this site. A host
	// matches if it equals a domain or is a subdomain of it.
	Domains []string

	// IndexURLs are the default listing pages used for link discovery.
	IndexURLs []string
}

// Matches reports whether host belongs to the site.
func (s *Site) Matches(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	for _, d := range s.Domains {
		d = strings.ToLower(d)
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// HostOf returns the lowercased host of rawURL without a "www." prefix.
// Returns an empty string if rawURL has no host.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// RecipeExtractor maps a single recipe page to a Recipe.
type RecipeExtractor interface {
	// ExtractRecipe parses html fetched from pageURL and returns the recipe.
	// It never returns a nil recipe with a nil error. Errors carry EPARSE,
	// EUNSUPPORTED or EINVALID codes.
	ExtractRecipe(pageURL string, html string) (*Recipe, error)

	// Name returns the strategy's identifier (e.g., "smittenkitchen", "schema").
	Name() string
}

// IndexSelector locates recipe links and pagination on a site's index pages.
type IndexSelector interface {
	// RecipeLinks returns the candidate recipe URLs found on an index page.
	// Returned URLs are absolute and unique within the page.
	RecipeLinks(html string, pageURL string) ([]string, error)

	// NextPage returns the absolute URL of the next index page,
	// or an empty string when there is none.
	NextPage(html string, pageURL string) (string, error)
}

// Route is the outcome of dispatching a URL to a site.
type Route struct {
	Site      *Site
	Extractor RecipeExtractor

	// Index is nil for sites that do not take part in link discovery.
	Index IndexSelector
}

// SiteRegistry maps URLs to the site configuration that handles them.
type SiteRegistry interface {
	// Route returns the route for rawURL. Unrecognized domains receive the
	// generic route, whose Index is nil.
	Route(rawURL string) (Route, error)

	// Lookup returns the route registered under the given site name.
	// Returns ENOTFOUND if no site has that name.
	Lookup(name string) (Route, error)

	// Sites returns the registered sites in registration order.
	Sites() []*Site
}
