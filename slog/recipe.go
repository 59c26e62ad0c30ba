package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/larder"
)

var (
	_ larder.RecipeService = (*LoggingRecipeService)(nil)
	_ larder.Tagger        = (*LoggingTagger)(nil)
)

// LoggingRecipeService wraps a RecipeService and logs writes.
// Reads are delegated without logging.
type LoggingRecipeService struct {
	next   larder.RecipeService
	logger *slog.Logger
}

// NewLoggingRecipeService creates a new LoggingRecipeService.
func NewLoggingRecipeService(next larder.RecipeService, logger *slog.Logger) *LoggingRecipeService {
	return &LoggingRecipeService{next: next, logger: logger}
}

func (s *LoggingRecipeService) CreateRecipe(ctx context.Context, recipe *larder.Recipe) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create recipe",
			"id", recipe.ID,
			"url", recipe.SourceURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRecipe(ctx, recipe)
}

func (s *LoggingRecipeService) FindRecipeByID(ctx context.Context, id string) (*larder.Recipe, error) {
	return s.next.FindRecipeByID(ctx, id)
}

func (s *LoggingRecipeService) FindRecipeByURL(ctx context.Context, url string) (*larder.Recipe, error) {
	return s.next.FindRecipeByURL(ctx, url)
}

func (s *LoggingRecipeService) FindRecipes(ctx context.Context, filter larder.RecipeFilter) ([]*larder.Recipe, error) {
	return s.next.FindRecipes(ctx, filter)
}

func (s *LoggingRecipeService) UpdateRecipe(ctx context.Context, id string, upd larder.RecipeUpdate) (r *larder.Recipe, err error) {
	defer func(begin time.Time) {
		s.logger.Info("update recipe", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.UpdateRecipe(ctx, id, upd)
}

func (s *LoggingRecipeService) DeleteRecipe(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete recipe", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.DeleteRecipe(ctx, id)
}

// LoggingTagger wraps a Tagger with logging.
type LoggingTagger struct {
	next   larder.Tagger
	logger *slog.Logger
}

// NewLoggingTagger creates a new LoggingTagger.
func NewLoggingTagger(next larder.Tagger, logger *slog.Logger) *LoggingTagger {
	return &LoggingTagger{next: next, logger: logger}
}

// Tag delegates to the wrapped tagger and logs the labels assigned.
func (t *LoggingTagger) Tag(ctx context.Context, recipe *larder.Recipe) (tags []string, err error) {
	defer func(begin time.Time) {
		t.logger.Info("tag recipe",
			"url", recipe.SourceURL,
			"tags", tags,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Tag(ctx, recipe)
}
