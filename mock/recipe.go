package mock

import (
	"context"

	"github.com/fwojciec/larder"
)

var (
	_ larder.RecipeService = (*RecipeService)(nil)
	_ larder.Tagger        = (*Tagger)(nil)
)

// RecipeService is a mock implementation of larder.RecipeService.
type RecipeService struct {
	CreateRecipeFn    func(ctx context.Context, recipe *larder.Recipe) error
	FindRecipeByIDFn  func(ctx context.Context, id string) (*larder.Recipe, error)
	FindRecipeByURLFn func(ctx context.Context, url string) (*larder.Recipe, error)
	FindRecipesFn     func(ctx context.Context, filter larder.RecipeFilter) ([]*larder.Recipe, error)
	UpdateRecipeFn    func(ctx context.Context, id string, upd larder.RecipeUpdate) (*larder.Recipe, error)
	DeleteRecipeFn    func(ctx context.Context, id string) error
}

func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *larder.Recipe) error {
	return s.CreateRecipeFn(ctx, recipe)
}

func (s *RecipeService) FindRecipeByID(ctx context.Context, id string) (*larder.Recipe, error) {
	return s.FindRecipeByIDFn(ctx, id)
}

func (s *RecipeService) FindRecipeByURL(ctx context.Context, url string) (*larder.Recipe, error) {
	return s.FindRecipeByURLFn(ctx, url)
}

func (s *RecipeService) FindRecipes(ctx context.Context, filter larder.RecipeFilter) ([]*larder.Recipe, error) {
	return s.FindRecipesFn(ctx, filter)
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, upd larder.RecipeUpdate) (*larder.Recipe, error) {
	return s.UpdateRecipeFn(ctx, id, upd)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	return s.DeleteRecipeFn(ctx, id)
}

// Tagger is a mock implementation of larder.Tagger.
type Tagger struct {
	TagFn func(ctx context.Context, recipe *larder.Recipe) ([]string, error)
}

func (t *Tagger) Tag(ctx context.Context, recipe *larder.Recipe) ([]string, error) {
	return t.TagFn(ctx, recipe)
}
