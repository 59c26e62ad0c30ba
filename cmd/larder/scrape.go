package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/larder"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	r := deps.Harvester.ExtractRecipe(deps.Ctx, c.URL)
	if r == nil {
		err := larder.Errorf(larder.EPARSE, "no recipe extracted from %s", c.URL)
		fmt.Fprintf(deps.Stderr, "error: %s\n", larder.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return err
	}

	if missing := r.MissingFields(); len(missing) > 0 {
		fmt.Fprintf(deps.Stderr, "partial: missing %v\n", missing)
	}
	return nil
}
