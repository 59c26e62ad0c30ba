package main

import (
	"fmt"

	"github.com/fwojciec/larder"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := larder.RecipeFilter{Limit: c.Limit}
	if c.Host != "" {
		filter.Host = &c.Host
	}

	recipes, err := deps.Recipes.FindRecipes(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}

	if len(recipes) == 0 {
		fmt.Fprintln(deps.Stdout, "No recipes found. Use 'larder ingest' to add some.")
		return nil
	}

	for _, r := range recipes {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", r.ID, title)
		fmt.Fprintf(deps.Stdout, "  %s\n", r.SourceURL)
		if len(r.Tags) > 0 {
			fmt.Fprintf(deps.Stdout, "  tags: %v\n", r.Tags)
		}
	}

	return nil
}
