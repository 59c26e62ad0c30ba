package goquery_test

import (
	"testing"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBonAppetitIndex(t *testing.T) {
	t.Parallel()

	site := &larder.Site{Name: "bonappetit", Family: larder.FamilyBonAppetit, Domains: []string{"bonappetit.com"}}

	t.Run("collects recipe links", func(t *testing.T) {
		t.Parallel()

		html := `<main>
<a href="/recipe/crispy-chicken-thighs">Chicken</a>
<a href="https://www.bonappetit.com/recipe/miso-soup/">Soup</a>
<a href="/recipe/crispy-chicken-thighs">Chicken again</a>
<a href="/story/best-pans">Story</a>
<a href="/recipes/quick">Quick</a>
<a href="https://www.epicurious.com/recipe/other">Other</a>
</main>`

		links, err := goquery.NewBonAppetitIndex(site).RecipeLinks(html, "https://www.bonappetit.com/recipes")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.bonappetit.com/recipe/crispy-chicken-thighs",
			"https://www.bonappetit.com/recipe/miso-soup/",
		}, links)
	})

	t.Run("follows rel next", func(t *testing.T) {
		t.Parallel()

		html := `<head><link rel="next" href="/recipes?page=2"></head>`

		next, err := goquery.NewBonAppetitIndex(site).NextPage(html, "https://www.bonappetit.com/recipes")

		require.NoError(t, err)
		assert.Equal(t, "https://www.bonappetit.com/recipes?page=2", next)
	})

	t.Run("no next page", func(t *testing.T) {
		t.Parallel()

		next, err := goquery.NewBonAppetitIndex(site).NextPage(`<main></main>`, "https://www.bonappetit.com/recipes")

		require.NoError(t, err)
		assert.Empty(t, next)
	})
}
