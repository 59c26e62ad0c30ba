package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/fwojciec/larder"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
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

	for _, u := range agg.URLs {
		fmt.Fprintln(deps.Stdout, u)
	}
	for _, name := range slices.Sorted(maps.Keys(agg.PerSite)) {
		fmt.Fprintf(deps.Stderr, "%s: %d URLs\n", name, agg.PerSite[name])
	}
	fmt.Fprintf(deps.Stderr, "Total: %d unique (%d before dedup)\n", agg.Total, agg.Before)
	return nil
}

// crawlTargets resolves the sites to traverse into a map of site name to
// index URL overrides. A nil override means the site's default index URLs.
// With no sites named, every site taking part in discovery is used.
func crawlTargets(registry larder.SiteRegistry, sites, index []string) (map[string][]string, error) {
	overrides := make(map[string][]string)
	for _, kv := range index {
		name, u, ok := strings.Cut(kv, "=")
		name, u = strings.TrimSpace(name), strings.TrimSpace(u)
		if !ok || name == "" || u == "" {
			return nil, larder.Errorf(larder.EINVALID, "invalid index override %q, want site=url", kv)
		}
		overrides[name] = append(overrides[name], u)
	}

	if len(sites) == 0 {
		for _, s := range registry.Sites() {
			route, err := registry.Lookup(s.Name)
			if err != nil {
				return nil, err
			}
			if route.Index != nil {
				sites = append(sites, s.Name)
			}
		}
	}

	targets := make(map[string][]string, len(sites))
	for _, name := range sites {
		if _, err := registry.Lookup(name); err != nil {
			return nil, err
		}
		targets[name] = overrides[name]
	}
	for name := range overrides {
		if _, ok := targets[name]; !ok {
			return nil, larder.Errorf(larder.EINVALID, "index override for unselected site %q", name)
		}
	}
	return targets, nil
}
