package main

import (
	"fmt"

	"github.com/fwojciec/larder"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return larder.Errorf(larder.EINVALID, "use --force to confirm deletion")
	}

	recipe, err := deps.Recipes.FindRecipeByID(deps.Ctx, c.ID)
	if larder.ErrorCode(err) == larder.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: recipe %q not found. Use 'larder list' to see stored recipes.\n", c.ID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}

	if err := deps.Recipes.DeleteRecipe(deps.Ctx, recipe.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted recipe %q\n", recipe.Title)
	return nil
}
