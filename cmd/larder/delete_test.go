package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/larder"
	main "github.com/fwojciec/larder/cmd/larder"
	"github.com/fwojciec/larder/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr}

		err := (&main.DeleteCmd{ID: "rec-1"}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, larder.EINVALID, larder.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes existing recipe", func(t *testing.T) {
		t.Parallel()

		var deleted string
		recipes := &mock.RecipeService{
			FindRecipeByIDFn: func(_ context.Context, id string) (*larder.Recipe, error) {
				return &larder.Recipe{ID: id, Title: "Apple Cake"}, nil
			},
			DeleteRecipeFn: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Recipes: recipes}

		err := (&main.DeleteCmd{ID: "rec-1", Force: true}).Run(deps)
		require.NoError(t, err)
		assert.Equal(t, "rec-1", deleted)
		assert.Contains(t, stdout.String(), `Deleted recipe "Apple Cake"`)
	})

	t.Run("reports missing recipe", func(t *testing.T) {
		t.Parallel()

		recipes := &mock.RecipeService{
			FindRecipeByIDFn: func(context.Context, string) (*larder.Recipe, error) {
				return nil, larder.Errorf(larder.ENOTFOUND, "recipe not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Recipes: recipes}

		err := (&main.DeleteCmd{ID: "nope", Force: true}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, larder.ENOTFOUND, larder.ErrorCode(err))
		assert.Contains(t, stderr.String(), "larder list")
	})
}
