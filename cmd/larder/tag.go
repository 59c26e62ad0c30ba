package main

import (
	"fmt"

	"github.com/fwojciec/larder"
)

// Run executes the tag command.
func (c *TagCmd) Run(deps *Dependencies) error {
	status := c.Status
	if status == "" {
		status = larder.TaggingPending
	}

	recipes, err := deps.Recipes.FindRecipes(deps.Ctx, larder.RecipeFilter{
		TaggingStatus: &status,
		Limit:         c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}

	if len(recipes) == 0 {
		fmt.Fprintf(deps.Stdout, "No %s recipes to tag.\n", status)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Tagging %d %s recipes\n", len(recipes), status)

	var tagged, failed int
	for _, r := range recipes {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}

		upd := larder.RecipeUpdate{}
		tags, err := deps.Tagger.Tag(deps.Ctx, r)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", r.SourceURL, larder.ErrorMessage(err))
			s := larder.TaggingFailed
			upd.TaggingStatus = &s
		} else {
			s := larder.TaggingDone
			upd.Tags = &tags
			upd.TaggingStatus = &s
		}

		if _, err := deps.Recipes.UpdateRecipe(deps.Ctx, r.ID, upd); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
			return err
		}
		if upd.Tags != nil {
			tagged++
		} else {
			failed++
		}
	}

	fmt.Fprintf(deps.Stdout, "  Tagged %d recipes, %d failed\n", tagged, failed)
	return nil
}
