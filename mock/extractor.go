package mock

import "github.com/fwojciec/larder"

var (
	_ larder.RecipeExtractor   = (*RecipeExtractor)(nil)
	_ larder.MetadataExtractor = (*MetadataExtractor)(nil)
)

// RecipeExtractor is a mock implementation of larder.RecipeExtractor.
type RecipeExtractor struct {
	ExtractRecipeFn func(pageURL string, html string) (*larder.Recipe, error)
	NameFn          func() string
}

func (e *RecipeExtractor) ExtractRecipe(pageURL string, html string) (*larder.Recipe, error) {
	return e.ExtractRecipeFn(pageURL, html)
}

func (e *RecipeExtractor) Name() string {
	return e.NameFn()
}

// MetadataExtractor is a mock implementation of larder.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*larder.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*larder.PageMetadata, error) {
	return e.ExtractMetadataFn(html)
}
