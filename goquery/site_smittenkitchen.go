package goquery

import (
	"regexp"

	"github.com/fwojciec/larder"
)

var (
	_ larder.RecipeExtractor = (*SmittenKitchen)(nil)
	_ larder.IndexSelector   = (*SmittenKitchen)(nil)
)

// smittenKitchenPost matches the /YYYY/MM/slug/ shape of post URLs.
var smittenKitchenPost = regexp.MustCompile(`^/\d{4}/\d{2}/[^/]+/?$`)

var smittenKitchenRules = &markupRules{
	title:      []string{"h1.entry-title", "h1"},
	images:     []string{".entry-content img"},
	containers: []string{"div.smittenkitchen-recipe", "div.entry-content"},
	yields:     []string{wprmYield, ".jetpack-recipe-servings"},
	times:      []string{wprmTotalTime, ".jetpack-recipe-time"},
	headings:   "h2, h3, h4, h5, p",
	ingredients: []string{
		".jetpack-recipe-ingredients li",
		wprmIngredients,
		"div.smittenkitchen-recipe ul li",
	},
	instructions: []string{
		".jetpack-recipe-directions p, .jetpack-recipe-directions li",
		wprmSteps,
	},
	containerLists: true,
}

// SmittenKitchen extracts recipes and index links from smittenkitchen.com.
// Posts keep the recipe inline in the entry body under an "Ingredients"
// or "Instructions" heading, or in a Jetpack recipe card.
type SmittenKitchen struct {
	site *larder.Site
}

// NewSmittenKitchen creates the strategy for site.
func NewSmittenKitchen(site *larder.Site) *SmittenKitchen {
	return &SmittenKitchen{site: site}
}

// Name returns the strategy's identifier.
func (s *SmittenKitchen) Name() string {
	return string(larder.FamilySmittenKitchen)
}

// ExtractRecipe parses a Smitten Kitchen post.
func (s *SmittenKitchen) ExtractRecipe(pageURL string, html string) (*larder.Recipe, error) {
	return extractMarkup(smittenKitchenRules, pageURL, html)
}

// RecipeLinks returns links to dated posts found in the main content area.
func (s *SmittenKitchen) RecipeLinks(html string, pageURL string) ([]string, error) {
	doc, err := Parse(html)
	if err != nil || doc == nil {
		return []string{}, err
	}
	return collectLinks(doc, pageURL, []string{"main", "div#content"}, pathRule(postRule(s.site), smittenKitchenPost))
}

// NextPage follows WordPress "Older posts" pagination.
func (s *SmittenKitchen) NextPage(html string, pageURL string) (string, error) {
	doc, err := Parse(html)
	if err != nil || doc == nil {
		return "", err
	}
	return nextPage(doc, pageURL,
		[]string{"a.nextpostslink", "a.next.page-numbers", "link[rel=next]"},
		[]*regexp.Regexp{regexp.MustCompile(`(?i)older posts`)},
	)
}
