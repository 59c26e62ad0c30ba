package main_test

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/larder"
	main "github.com/fwojciec/larder/cmd/larder"
	"github.com/fwojciec/larder/crawl"
	"github.com/fwojciec/larder/mock"
)

var testSite = &larder.Site{
	Name:      "test",
	Domains:   []string{"example.com"},
	IndexURLs: []string{"https://example.com/recipes"},
}

// testHarvester serves pages from memory. Index pages list recipe links
// separated by whitespace; recipe pages hold the recipe title, and the
// title "broken" fails extraction.
func testHarvester(pages map[string]string) (*crawl.Harvester, *mock.SiteRegistry) {
	ext := &mock.RecipeExtractor{
		NameFn: func() string { return "test" },
		ExtractRecipeFn: func(pageURL string, html string) (*larder.Recipe, error) {
			if html == "broken" {
				return nil, larder.Errorf(larder.EPARSE, "no recipe content")
			}
			return &larder.Recipe{
				SourceURL:    pageURL,
				Host:         larder.HostOf(pageURL),
				Title:        html,
				Ingredients:  []string{"1 cup flour"},
				Instructions: []string{"Bake."},
			}, nil
		},
	}
	index := &mock.IndexSelector{
		RecipeLinksFn: func(html string, _ string) ([]string, error) {
			return strings.Fields(html), nil
		},
		NextPageFn: func(string, string) (string, error) { return "", nil },
	}
	route := larder.Route{Site: testSite, Extractor: ext, Index: index}
	registry := &mock.SiteRegistry{
		RouteFn: func(string) (larder.Route, error) { return route, nil },
		LookupFn: func(name string) (larder.Route, error) {
			if name != testSite.Name {
				return larder.Route{}, larder.Errorf(larder.ENOTFOUND, "unknown site %q", name)
			}
			return route, nil
		},
		SitesFn: func() []*larder.Site { return []*larder.Site{testSite} },
	}
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if html, ok := pages[url]; ok {
				return html, nil
			}
			return "", larder.NetworkError(url, errors.New("404 Not Found"))
		},
	}
	return &crawl.Harvester{Registry: registry, Fetcher: fetcher}, registry
}

func testDeps(pages map[string]string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	h, registry := testHarvester(pages)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Registry:  registry,
		Harvester: h,
	}, stdout, stderr
}
