package larder

import (
	"context"
	"time"
)

// Tagging status values for Recipe.TaggingStatus.
const (
	TaggingPending = "pending"
	TaggingDone    = "tagged"
	TaggingFailed  = "failed"
)

// Recipe is the normalized record extracted from a single recipe page.
// SourceURL and Host are always set; every other extracted field is
// best-effort and uses its zero value when absent.
type Recipe struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title,omitempty"`
	SourceURL    string   `json:"url"`
	Image        string   `json:"image,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Yields       string   `json:"yields,omitempty"`
	TotalTime    string   `json:"totalTime,omitempty"`
	Host         string   `json:"host"`

	// Store-managed fields.
	ContentHash   string    `json:"contentHash,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	TaggingStatus string    `json:"taggingStatus,omitempty"`
	Approved      bool      `json:"approved"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

// Validate returns an error if the recipe contains invalid fields.
func (r *Recipe) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "recipe source URL required")
	}
	if r.Host == "" {
		return Errorf(EINVALID, "recipe host required")
	}
	return nil
}

// MissingFields lists the best-effort fields that extraction left empty.
// A recipe with missing fields is still a valid, partial result.
func (r *Recipe) MissingFields() []string {
	var missing []string
	if r.Title == "" {
		missing = append(missing, "title")
	}
	if r.Image == "" {
		missing = append(missing, "image")
	}
	if r.Yields == "" {
		missing = append(missing, "yields")
	}
	if r.TotalTime == "" {
		missing = append(missing, "total_time")
	}
	if len(r.Ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	if len(r.Instructions) == 0 {
		missing = append(missing, "instructions")
	}
	return missing
}

// RecipeService represents a service for managing stored recipes.
type RecipeService interface {
	// CreateRecipe stores a new recipe.
	// Returns EINVALID if a recipe with the same source URL already exists.
	CreateRecipe(ctx context.Context, recipe *Recipe) error

	// FindRecipeByID retrieves a recipe by ID.
	// Returns ENOTFOUND if recipe does not exist.
	FindRecipeByID(ctx context.Context, id string) (*Recipe, error)

	// FindRecipeByURL retrieves a recipe by its source URL.
	// Returns ENOTFOUND if recipe does not exist.
	FindRecipeByURL(ctx context.Context, sourceURL string) (*Recipe, error)

	// FindRecipes retrieves recipes matching the filter.
	FindRecipes(ctx context.Context, filter RecipeFilter) ([]*Recipe, error)

	// UpdateRecipe updates an existing recipe.
	// Returns ENOTFOUND if recipe does not exist.
	UpdateRecipe(ctx context.Context, id string, upd RecipeUpdate) (*Recipe, error)

	// DeleteRecipe permanently removes a recipe.
	// Returns ENOTFOUND if recipe does not exist.
	DeleteRecipe(ctx context.Context, id string) error
}

// RecipeFilter represents a filter for FindRecipes.
type RecipeFilter struct {
	ID            *string `json:"id"`
	Host          *string `json:"host"`
	TaggingStatus *string `json:"taggingStatus"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RecipeUpdate represents fields that can be updated on a recipe.
type RecipeUpdate struct {
	Title         *string   `json:"title"`
	Image         *string   `json:"image"`
	Ingredients   *[]string `json:"ingredients"`
	Instructions  *[]string `json:"instructions"`
	Yields        *string   `json:"yields"`
	TotalTime     *string   `json:"totalTime"`
	Tags          *[]string `json:"tags"`
	TaggingStatus *string   `json:"taggingStatus"`
	Approved      *bool     `json:"approved"`
}

// Tagger assigns labels (course, season) to a recipe from its text.
type Tagger interface {
	Tag(ctx context.Context, recipe *Recipe) ([]string, error)
}
