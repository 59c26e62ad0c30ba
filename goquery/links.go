package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/larder"
)

// Path segments that mark listing pages rather than single posts on
// WordPress-style sites.
var listingSegments = []string{"category", "tag", "page", "author", "feed", "wp-content", "wp-json"}

// linkRule decides whether a resolved href is a recipe candidate.
type linkRule func(u *url.URL) bool

// collectLinks returns the unique absolute URLs of anchors inside the first
// scope selector that matches, in document order, filtered by rule.
// If no scope matches, the whole document is scanned.
func collectLinks(doc *goquery.Document, pageURL string, scopes []string, rule linkRule) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, larder.Errorf(larder.EINVALID, "invalid page URL: %v", err)
	}

	area := doc.Selection
	for _, s := range scopes {
		if sel := doc.Find(s).First(); sel.Length() > 0 {
			area = sel
			break
		}
	}

	seen := make(map[string]bool)
	links := []string{}
	area.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		u, err := base.Parse(strings.TrimSpace(href))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return
		}
		if !rule(u) {
			return
		}
		s := u.String()
		if !seen[s] {
			seen[s] = true
			links = append(links, s)
		}
	})
	return links, nil
}

// postRule accepts same-site URLs that look like a single content page:
// no fragment, no listing segment, at least one non-empty path segment.
func postRule(site *larder.Site) linkRule {
	return func(u *url.URL) bool {
		if !site.Matches(u.Host) || u.Fragment != "" {
			return false
		}
		segs := pathSegments(u)
		if len(segs) == 0 {
			return false
		}
		for _, seg := range segs {
			for _, l := range listingSegments {
				if strings.EqualFold(seg, l) {
					return false
				}
			}
		}
		return true
	}
}

// pathRule narrows rule to URLs whose path matches pattern.
func pathRule(rule linkRule, pattern *regexp.Regexp) linkRule {
	return func(u *url.URL) bool {
		return rule(u) && pattern.MatchString(u.Path)
	}
}

// nextPage locates the pagination link of an index page. Selectors are
// tried first, then anchors whose text matches one of the patterns.
// The result is resolved against pageURL; empty if nothing is found.
func nextPage(doc *goquery.Document, pageURL string, selectors []string, texts []*regexp.Regexp) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", larder.Errorf(larder.EINVALID, "invalid page URL: %v", err)
	}

	for _, s := range selectors {
		if href, ok := doc.Find(s).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
			return resolveAbsolute(base, href), nil
		}
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := Text(a)
		for _, re := range texts {
			if re.MatchString(text) {
				href, _ := a.Attr("href")
				if strings.TrimSpace(href) != "" {
					found = resolveAbsolute(base, href)
					return false
				}
			}
		}
		return true
	})
	return found, nil
}

// pathSegments returns the non-empty segments of u's path.
func pathSegments(u *url.URL) []string {
	var segs []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// resolveAbsolute resolves href against base. Unparsable hrefs are
// returned as-is.
func resolveAbsolute(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
