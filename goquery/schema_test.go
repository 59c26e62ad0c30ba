package goquery_test

import (
	"testing"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/goquery"
	"github.com/fwojciec/larder/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bonAppetitRecipe = `<!DOCTYPE html>
<html>
<head>
<title>Crispy Chicken Thighs | Bon Appétit</title>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"BreadcrumbList","itemListElement":[]}</script>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Crispy Chicken Thighs &amp; Lemon",
  "image": [{"@type": "ImageObject", "url": "https://assets.bonappetit.com/chicken.jpg"}],
  "recipeYield": ["4 servings", "4"],
  "totalTime": "PT45M",
  "recipeIngredient": ["6 chicken thighs", "1 <b>lemon</b>", "  "],
  "recipeInstructions": [
    {"@type": "HowToSection", "name": "Chicken", "itemListElement": [
      {"@type": "HowToStep", "text": "Season the chicken."},
      {"@type": "HowToStep", "text": "Sear skin side down."}
    ]},
    {"@type": "HowToStep", "text": "Serve with lemon."}
  ]
}
</script>
</head>
<body><h1>Crispy Chicken Thighs</h1></body>
</html>`

func TestParseSchema(t *testing.T) {
	t.Parallel()

	t.Run("reads recipe node", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(bonAppetitRecipe)
		require.NoError(t, err)

		r, err := goquery.ParseSchema(doc)

		require.NoError(t, err)
		assert.Equal(t, "Crispy Chicken Thighs & Lemon", r.Title)
		assert.Equal(t, "https://assets.bonappetit.com/chicken.jpg", r.Image)
		assert.Equal(t, "4 servings", r.Yields)
		assert.Equal(t, "PT45M", r.TotalTime)
		assert.Equal(t, []string{"6 chicken thighs", "1 lemon"}, r.Ingredients)
		assert.Equal(t, []string{"Season the chicken.", "Sear skin side down.", "Serve with lemon."}, r.Instructions)
	})

	t.Run("finds recipe inside graph", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"WebPage","name":"page"},
  {"@type":["Recipe","NewsArticle"],"name":"Graph Soup","recipeYield":6,
   "recipeIngredient":["water"],"recipeInstructions":"Boil.\nServe."}
]}
</script>`)
		require.NoError(t, err)

		r, err := goquery.ParseSchema(doc)

		require.NoError(t, err)
		assert.Equal(t, "Graph Soup", r.Title)
		assert.Equal(t, "6", r.Yields)
		assert.Equal(t, []string{"water"}, r.Ingredients)
		assert.Equal(t, []string{"Boil.", "Serve."}, r.Instructions)
	})

	t.Run("skips invalid JSON blocks", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<script type="application/ld+json">{not json</script>
<script type="application/ld+json">{"@type":"Recipe","name":"Second"}</script>`)
		require.NoError(t, err)

		r, err := goquery.ParseSchema(doc)

		require.NoError(t, err)
		assert.Equal(t, "Second", r.Title)
		assert.NotNil(t, r.Ingredients)
		assert.NotNil(t, r.Instructions)
	})

	t.Run("returns unsupported without recipe data", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.Parse(`<html><body><p>Hello</p></body></html>`)
		require.NoError(t, err)

		_, err = goquery.ParseSchema(doc)

		assert.Equal(t, larder.EUNSUPPORTED, larder.ErrorCode(err))
	})
}

func TestSchemaExtractor_ExtractRecipe(t *testing.T) {
	t.Parallel()

	t.Run("sets source fields", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewSchemaExtractor(nil)
		r, err := ext.ExtractRecipe("https://www.bonappetit.com/recipe/crispy-chicken-thighs", bonAppetitRecipe)

		require.NoError(t, err)
		assert.Equal(t, "https://www.bonappetit.com/recipe/crispy-chicken-thighs", r.SourceURL)
		assert.Equal(t, "bonappetit.com", r.Host)
		assert.Equal(t, "schema", ext.Name())
	})

	t.Run("fills missing title and image from metadata", func(t *testing.T) {
		t.Parallel()

		meta := &mock.MetadataExtractor{
			ExtractMetadataFn: func(html string) (*larder.PageMetadata, error) {
				return &larder.PageMetadata{Title: "Meta Title", Image: "/img/og.jpg"}, nil
			},
		}
		html := `<script type="application/ld+json">{"@type":"Recipe","recipeIngredient":["salt"]}</script>`

		r, err := goquery.NewSchemaExtractor(meta).ExtractRecipe("https://food.example.com/r/1", html)

		require.NoError(t, err)
		assert.Equal(t, "Meta Title", r.Title)
		assert.Equal(t, "https://food.example.com/img/og.jpg", r.Image)
	})

	t.Run("metadata does not override structured data", func(t *testing.T) {
		t.Parallel()

		meta := &mock.MetadataExtractor{
			ExtractMetadataFn: func(html string) (*larder.PageMetadata, error) {
				t.Fatal("metadata should not be consulted")
				return nil, nil
			},
		}

		r, err := goquery.NewSchemaExtractor(meta).ExtractRecipe("https://www.bonappetit.com/recipe/x", bonAppetitRecipe)

		require.NoError(t, err)
		assert.Equal(t, "Crispy Chicken Thighs & Lemon", r.Title)
	})

	t.Run("unsupported page carries URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewSchemaExtractor(nil).ExtractRecipe("https://example.com/blog", "<p>no recipe</p>")

		require.Error(t, err)
		assert.Equal(t, larder.EUNSUPPORTED, larder.ErrorCode(err))
		assert.Contains(t, err.Error(), "https://example.com/blog")
	})

	t.Run("empty document is a parse error", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewSchemaExtractor(nil).ExtractRecipe("https://example.com/r", "   ")

		assert.Equal(t, larder.EPARSE, larder.ErrorCode(err))
	})
}
