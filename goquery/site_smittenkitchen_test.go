package goquery_test

import (
	"testing"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smittenKitchenSite() *larder.Site {
	return &larder.Site{
		Name:    "smittenkitchen",
		Family:  larder.FamilySmittenKitchen,
		Domains: []string{"smittenkitchen.com"},
	}
}

const smittenKitchenPost = `<!DOCTYPE html>
<html>
<head><title>Perfect Blueberry Muffins – smitten kitchen</title></head>
<body>
<article>
<h1 class="entry-title">Perfect Blueberry Muffins</h1>
<div class="entry-content">
<p><img src="/wp-content/uploads/2024/06/muffins.jpg" alt="muffins"></p>
<p>These are the muffins I make every summer.</p>
<div class="smittenkitchen-recipe">
<p>Yield: 12 muffins</p>
<p>Time: 40 minutes</p>
<h3>Ingredients</h3>
<ul>
<li>5 tablespoons unsalted butter</li>
<li>1/2 cup granulated sugar</li>
<li>1 1/2 cups blueberries</li>
</ul>
<h3>Instructions</h3>
<p>Heat oven to 375°F.</p>
<p>Beat butter and sugar together.</p>
<p>Fold in blueberries and bake.</p>
</div>
</div>
</article>
<div id="comments"><p>Loved these!</p></div>
</body>
</html>`

func TestSmittenKitchen_ExtractRecipe(t *testing.T) {
	t.Parallel()

	t.Run("extracts all fields from a post", func(t *testing.T) {
		t.Parallel()

		sk := goquery.NewSmittenKitchen(smittenKitchenSite())
		r, err := sk.ExtractRecipe("https://smittenkitchen.com/2024/06/perfect-blueberry-muffins/", smittenKitchenPost)

		require.NoError(t, err)
		assert.Equal(t, "Perfect Blueberry Muffins", r.Title)
		assert.Equal(t, "https://smittenkitchen.com/wp-content/uploads/2024/06/muffins.jpg", r.Image)
		assert.Equal(t, "12 muffins", r.Yields)
		assert.Equal(t, "40 minutes", r.TotalTime)
		assert.Equal(t, []string{
			"5 tablespoons unsalted butter",
			"1/2 cup granulated sugar",
			"1 1/2 cups blueberries",
		}, r.Ingredients)
		assert.Equal(t, []string{
			"Heat oven to 375°F.",
			"Beat butter and sugar together.",
			"Fold in blueberries and bake.",
		}, r.Instructions)
		assert.Equal(t, "smittenkitchen.com", r.Host)
		assert.Equal(t, "https://smittenkitchen.com/2024/06/perfect-blueberry-muffins/", r.SourceURL)
		assert.Empty(t, r.MissingFields())
	})

	t.Run("falls back to jetpack recipe card", func(t *testing.T) {
		t.Parallel()

		html := `<h1 class="entry-title">Old Post</h1>
<div class="entry-content">
<div class="jetpack-recipe">
<div class="jetpack-recipe-servings">Servings: 4</div>
<div class="jetpack-recipe-ingredients"><ul><li>2 lemons</li><li>salt</li></ul></div>
<div class="jetpack-recipe-directions"><p>Squeeze.</p><p>Season.</p></div>
</div>
</div>`

		sk := goquery.NewSmittenKitchen(smittenKitchenSite())
		r, err := sk.ExtractRecipe("https://smittenkitchen.com/2010/01/old-post/", html)

		require.NoError(t, err)
		assert.Equal(t, "4", r.Yields)
		assert.Equal(t, []string{"2 lemons", "salt"}, r.Ingredients)
		assert.Equal(t, []string{"Squeeze.", "Season."}, r.Instructions)
	})

	t.Run("reads paragraph markers and entry content lists", func(t *testing.T) {
		t.Parallel()

		html := `<h1 class="entry-title">Garlic Spaghetti</h1>
<div class="entry-content">
<p>I could eat this every night, and the ingredients list is short.</p>
<ul><li>1 pound spaghetti</li><li>2 cloves garlic</li></ul>
<p><strong>Instructions</strong></p>
<p>Boil the pasta.</p>
<p>Toss with garlic.</p>
</div>`

		sk := goquery.NewSmittenKitchen(smittenKitchenSite())
		r, err := sk.ExtractRecipe("https://smittenkitchen.com/2012/03/garlic-spaghetti/", html)

		require.NoError(t, err)
		assert.Equal(t, []string{"1 pound spaghetti", "2 cloves garlic"}, r.Ingredients)
		assert.Equal(t, []string{"Boil the pasta.", "Toss with garlic."}, r.Instructions)
	})

	t.Run("missing sections yield empty lists", func(t *testing.T) {
		t.Parallel()

		html := `<h1 class="entry-title">Just a Story</h1><div class="entry-content"><p>No recipe today.</p></div>`

		sk := goquery.NewSmittenKitchen(smittenKitchenSite())
		r, err := sk.ExtractRecipe("https://smittenkitchen.com/2024/01/just-a-story/", html)

		require.NoError(t, err)
		assert.Equal(t, "Just a Story", r.Title)
		require.NotNil(t, r.Ingredients)
		require.NotNil(t, r.Instructions)
		assert.Empty(t, r.Ingredients)
		assert.Empty(t, r.Instructions)
		assert.Contains(t, r.MissingFields(), "ingredients")
	})

	t.Run("empty document is a parse error", func(t *testing.T) {
		t.Parallel()

		sk := goquery.NewSmittenKitchen(smittenKitchenSite())
		_, err := sk.ExtractRecipe("https://smittenkitchen.com/2024/01/x/", "")

		assert.Equal(t, larder.EPARSE, larder.ErrorCode(err))
	})

	t.Run("invalid URL is rejected", func(t *testing.T) {
		t.Parallel()

		sk := goquery.NewSmittenKitchen(smittenKitchenSite())
		_, err := sk.ExtractRecipe("not a url", smittenKitchenPost)

		assert.Equal(t, larder.EINVALID, larder.ErrorCode(err))
	})
}

func TestSmittenKitchen_RecipeLinks(t *testing.T) {
	t.Parallel()

	html := `<header><a href="/2024/01/nav-post/">Nav</a></header>
<main>
<a href="/2024/06/perfect-blueberry-muffins/">Muffins</a>
<a href="https://smittenkitchen.com/2023/11/apple-cake/">Cake</a>
<a href="https://smittenkitchen.com/2023/11/apple-cake/">Cake again</a>
<a href="/2023/11/apple-cake/#comments">Comments</a>
<a href="/category/cake/">Cakes</a>
<a href="/tag/summer/">Summer</a>
<a href="/recipes/">Recipes</a>
<a href="https://example.com/2024/01/elsewhere/">Elsewhere</a>
<a href="mailto:hi@smittenkitchen.com">Mail</a>
</main>`

	sk := goquery.NewSmittenKitchen(smittenKitchenSite())
	links, err := sk.RecipeLinks(html, "https://smittenkitchen.com/recipes/best-of-smitten-kitchen/")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://smittenkitchen.com/2024/06/perfect-blueberry-muffins/",
		"https://smittenkitchen.com/2023/11/apple-cake/",
	}, links)
}

func TestSmittenKitchen_NextPage(t *testing.T) {
	t.Parallel()

	t.Run("follows nextpostslink", func(t *testing.T) {
		t.Parallel()

		html := `<div class="wp-pagenavi"><a class="nextpostslink" href="/recipes/page/2/">»</a></div>`

		sk := goquery.NewSmittenKitchen(smittenKitchenSite())
		next, err := sk.NextPage(html, "https://smittenkitchen.com/recipes/")

		require.NoError(t, err)
		assert.Equal(t, "https://smittenkitchen.com/recipes/page/2/", next)
	})

	t.Run("follows older posts text", func(t *testing.T) {
		t.Parallel()

		html := `<nav><a href="https://smittenkitchen.com/page/3/">« Older posts</a></nav>`

		sk := goquery.NewSmittenKitchen(smittenKitchenSite())
		next, err := sk.NextPage(html, "https://smittenkitchen.com/page/2/")

		require.NoError(t, err)
		assert.Equal(t, "https://smittenkitchen.com/page/3/", next)
	})

	t.Run("returns empty on last page", func(t *testing.T) {
		t.Parallel()

		sk := goquery.NewSmittenKitchen(smittenKitchenSite())
		next, err := sk.NextPage(`<main><a href="/2024/01/x/">x</a></main>`, "https://smittenkitchen.com/page/9/")

		require.NoError(t, err)
		assert.Empty(t, next)
	})
}
