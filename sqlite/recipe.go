package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/larder"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ larder.RecipeService = (*RecipeService)(nil)

const recipeColumns = `id, source_url, host, title, image, ingredients, instructions, yields, total_time,
	content_hash, tags, tagging_status, approved, created_at, updated_at`

// RecipeService implements larder.RecipeService using SQLite.
type RecipeService struct {
	db *DB
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(db *DB) *RecipeService {
	return &RecipeService{db: db}
}

// ContentHash returns the xxHash of the recipe's extracted fields as hex.
// Two extractions of an unchanged page hash the same.
func ContentHash(r *larder.Recipe) string {
	d := xxhash.New()
	for _, s := range []string{r.Title, r.Image, r.Yields, r.TotalTime} {
		_, _ = d.WriteString(s)
		_, _ = d.WriteString("\x00")
	}
	for _, list := range [][]string{r.Ingredients, r.Instructions} {
		for _, s := range list {
			_, _ = d.WriteString(s)
			_, _ = d.WriteString("\n")
		}
		_, _ = d.WriteString("\x00")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// CreateRecipe stores a new recipe with a generated ID and timestamps.
// Tagging status defaults to pending.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *larder.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}

	recipe.ID = uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	recipe.ContentHash = ContentHash(recipe)
	if recipe.TaggingStatus == "" {
		recipe.TaggingStatus = larder.TaggingPending
	}

	ingredients, instructions, tags, err := encodeLists(recipe)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recipes (`+recipeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, recipe.ID, recipe.SourceURL, recipe.Host, recipe.Title, recipe.Image, ingredients, instructions,
		recipe.Yields, recipe.TotalTime, recipe.ContentHash, tags, recipe.TaggingStatus, recipe.Approved,
		recipe.CreatedAt.Format(time.RFC3339), recipe.UpdatedAt.Format(time.RFC3339))
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return larder.Errorf(larder.EINVALID, "recipe already exists: %s", recipe.SourceURL)
	}
	return err
}

// FindRecipeByID retrieves a recipe by ID.
func (s *RecipeService) FindRecipeByID(ctx context.Context, id string) (*larder.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	return scanOne(row)
}

// FindRecipeByURL retrieves a recipe by its source URL.
func (s *RecipeService) FindRecipeByURL(ctx context.Context, sourceURL string) (*larder.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE source_url = ?`, sourceURL)
	return scanOne(row)
}

// FindRecipes retrieves recipes matching the filter, newest first.
func (s *RecipeService) FindRecipes(ctx context.Context, filter larder.RecipeFilter) ([]*larder.Recipe, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recipeColumns + " FROM recipes WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Host != nil {
		query.WriteString(" AND host = ?")
		args = append(args, *filter.Host)
	}
	if filter.TaggingStatus != nil {
		query.WriteString(" AND tagging_status = ?")
		args = append(args, *filter.TaggingStatus)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []*larder.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}

	return recipes, rows.Err()
}

// UpdateRecipe updates an existing recipe. Changing an extracted field
// recomputes the content hash.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, upd larder.RecipeUpdate) (*larder.Recipe, error) {
	r, err := s.FindRecipeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		r.Title = *upd.Title
	}
	if upd.Image != nil {
		r.Image = *upd.Image
	}
	if upd.Ingredients != nil {
		r.Ingredients = *upd.Ingredients
	}
	if upd.Instructions != nil {
		r.Instructions = *upd.Instructions
	}
	if upd.Yields != nil {
		r.Yields = *upd.Yields
	}
	if upd.TotalTime != nil {
		r.TotalTime = *upd.TotalTime
	}
	if upd.Tags != nil {
		r.Tags = *upd.Tags
	}
	if upd.TaggingStatus != nil {
		r.TaggingStatus = *upd.TaggingStatus
	}
	if upd.Approved != nil {
		r.Approved = *upd.Approved
	}
	r.ContentHash = ContentHash(r)
	r.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	if err := r.Validate(); err != nil {
		return nil, err
	}

	ingredients, instructions, tags, err := encodeLists(r)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE recipes
		SET title = ?, image = ?, ingredients = ?, instructions = ?, yields = ?, total_time = ?,
			content_hash = ?, tags = ?, tagging_status = ?, approved = ?, updated_at = ?
		WHERE id = ?
	`, r.Title, r.Image, ingredients, instructions, r.Yields, r.TotalTime,
		r.ContentHash, tags, r.TaggingStatus, r.Approved, r.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// DeleteRecipe permanently removes a recipe.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return larder.Errorf(larder.ENOTFOUND, "recipe not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row *sql.Row) (*larder.Recipe, error) {
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, larder.Errorf(larder.ENOTFOUND, "recipe not found")
	}
	return r, err
}

func scanRecipe(s scanner) (*larder.Recipe, error) {
	var r larder.Recipe
	var ingredients, instructions, tags, createdAt, updatedAt string

	if err := s.Scan(&r.ID, &r.SourceURL, &r.Host, &r.Title, &r.Image, &ingredients, &instructions,
		&r.Yields, &r.TotalTime, &r.ContentHash, &tags, &r.TaggingStatus, &r.Approved,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if r.Ingredients, err = decodeList(ingredients, "ingredients"); err != nil {
		return nil, err
	}
	if r.Instructions, err = decodeList(instructions, "instructions"); err != nil {
		return nil, err
	}
	if r.Tags, err = decodeList(tags, "tags"); err != nil {
		return nil, err
	}
	if r.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &r, nil
}

func encodeLists(r *larder.Recipe) (ingredients, instructions, tags string, err error) {
	if ingredients, err = encodeList(r.Ingredients); err != nil {
		return "", "", "", err
	}
	if instructions, err = encodeList(r.Instructions); err != nil {
		return "", "", "", err
	}
	if tags, err = encodeList(r.Tags); err != nil {
		return "", "", "", err
	}
	return ingredients, instructions, tags, nil
}
