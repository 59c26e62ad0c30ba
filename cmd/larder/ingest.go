package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/larder"
	"github.com/fwojciec/larder/crawl"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	targets, err := crawlTargets(deps.Registry, c.Site, c.Index)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}

	agg, err := deps.Harvester.Discover(deps.Ctx, targets)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Discovered %d unique recipe URLs\n", agg.Total)

	urls, err := c.newURLs(deps, agg.URLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "  %d already stored, %d new\n", len(agg.URLs)-len(urls), len(urls))

	if c.DryRun {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	progress := func(event crawl.ProgressEvent) {
		if event.Type == crawl.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, larder.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Harvester.Harvest(deps.Ctx, urls, c.sink(deps), progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error harvesting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d recipes (%d partial), %d failed\n",
		result.Extracted, result.Partial, result.Failed)
	return nil
}

// newURLs drops the URLs that already have a stored recipe.
func (c *IngestCmd) newURLs(deps *Dependencies, urls []string) ([]string, error) {
	fresh := make([]string, 0, len(urls))
	for _, u := range urls {
		_, err := deps.Recipes.FindRecipeByURL(deps.Ctx, u)
		switch larder.ErrorCode(err) {
		case "":
			continue
		case larder.ENOTFOUND:
			fresh = append(fresh, u)
		default:
			return nil, err
		}
	}
	return fresh, nil
}

// sink stores each harvested recipe, tagging it first when requested.
// A tagging failure is recorded on the recipe and does not drop it.
func (c *IngestCmd) sink(deps *Dependencies) crawl.SinkFunc {
	return func(ctx context.Context, r *larder.Recipe) error {
		if c.Tag && deps.Tagger != nil {
			tags, err := deps.Tagger.Tag(ctx, r)
			if err != nil {
				r.TaggingStatus = larder.TaggingFailed
			} else {
				r.Tags = tags
				r.TaggingStatus = larder.TaggingDone
			}
		}
		return deps.Recipes.CreateRecipe(ctx, r)
	}
}
