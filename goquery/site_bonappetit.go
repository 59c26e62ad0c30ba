package goquery

import (
	"regexp"

	"github.com/fwojciec/larder"
)

var _ larder.IndexSelector = (*BonAppetitIndex)(nil)

// bonAppetitRecipe matches /recipe/slug paths.
var bonAppetitRecipe = regexp.MustCompile(`^/recipe/[^/]+/?$`)

// BonAppetitIndex finds recipe links on bonappetit.com listing pages.
// Recipe pages themselves are read with SchemaExtractor.
type BonAppetitIndex struct {
	site *larder.Site
}

// NewBonAppetitIndex creates the index selector for site.
func NewBonAppetitIndex(site *larder.Site) *BonAppetitIndex {
	return &BonAppetitIndex{site: site}
}

// RecipeLinks returns links to /recipe/ pages anywhere on the page.
func (s *BonAppetitIndex) RecipeLinks(html string, pageURL string) ([]string, error) {
	doc, err := Parse(html)
	if err != nil || doc == nil {
		return []string{}, err
	}
	return collectLinks(doc, pageURL, []string{"main"}, pathRule(postRule(s.site), bonAppetitRecipe))
}

// NextPage follows rel=next or a "Next" / "More stories" link.
func (s *BonAppetitIndex) NextPage(html string, pageURL string) (string, error) {
	doc, err := Parse(html)
	if err != nil || doc == nil {
		return "", err
	}
	return nextPage(doc, pageURL,
		[]string{"link[rel=next]", "a[rel=next]"},
		[]*regexp.Regexp{regexp.MustCompile(`(?i)^(next|more stories)\b`)},
	)
}
