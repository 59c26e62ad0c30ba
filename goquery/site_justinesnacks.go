package goquery

import (
	"regexp"

	"github.com/fwojciec/larder"
)

var (
	_ larder.RecipeExtractor = (*JustineSnacks)(nil)
	_ larder.IndexSelector   = (*JustineSnacks)(nil)
)

var justineSnacksRules = &markupRules{
	title:        []string{"h1.entry-title", "h1"},
	images:       []string{".featured-image img", ".entry-content img", "img"},
	containers:   []string{".wprm-recipe-container", "div.entry-content"},
	yields:       []string{wprmYield},
	times:        []string{wprmTotalTime},
	headings:     "h2, h3, h4",
	ingredients:  []string{wprmIngredients},
	instructions: []string{wprmSteps},
}

var justineSnacksNext = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^next\b`),
	regexp.MustCompile(`(?i)older posts`),
}

// JustineSnacks extracts recipes and index links from justinesnacks.com,
// a WordPress site whose posts use headed sections and, on newer posts,
// a WP Recipe Maker card.
type JustineSnacks struct {
	site *larder.Site
}

// NewJustineSnacks creates the strategy for site.
func NewJustineSnacks(site *larder.Site) *JustineSnacks {
	return &JustineSnacks{site: site}
}

// Name returns the strategy's identifier.
func (s *JustineSnacks) Name() string {
	return string(larder.FamilyJustineSnacks)
}

// ExtractRecipe parses a Justine Snacks post.
func (s *JustineSnacks) ExtractRecipe(pageURL string, html string) (*larder.Recipe, error) {
	return extractMarkup(justineSnacksRules, pageURL, html)
}

// RecipeLinks returns same-site post links from the main content area.
func (s *JustineSnacks) RecipeLinks(html string, pageURL string) ([]string, error) {
	doc, err := Parse(html)
	if err != nil || doc == nil {
		return []string{}, err
	}
	return collectLinks(doc, pageURL, []string{"main#main", "div.site-content"}, postRule(s.site))
}

// NextPage follows WordPress numbered pagination.
func (s *JustineSnacks) NextPage(html string, pageURL string) (string, error) {
	doc, err := Parse(html)
	if err != nil || doc == nil {
		return "", err
	}
	return nextPage(doc, pageURL,
		[]string{"a.next.page-numbers", "link[rel=next]"},
		justineSnacksNext,
	)
}
