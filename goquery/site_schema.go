package goquery

import (
	"errors"
	"net/url"

	"github.com/fwojciec/larder"
)

var _ larder.RecipeExtractor = (*SchemaExtractor)(nil)

// SchemaExtractor builds recipes from schema.org Recipe JSON-LD. It serves
// sites that publish standard recipe markup and every unrecognized domain.
// When the markup lacks a name or image, page metadata fills the gap.
type SchemaExtractor struct {
	metadata larder.MetadataExtractor
}

// NewSchemaExtractor creates a SchemaExtractor. metadata may be nil.
func NewSchemaExtractor(metadata larder.MetadataExtractor) *SchemaExtractor {
	return &SchemaExtractor{metadata: metadata}
}

// Name returns the strategy's identifier.
func (e *SchemaExtractor) Name() string {
	return "schema"
}

// ExtractRecipe reads the page's Recipe JSON-LD.
// Returns EUNSUPPORTED when the page has none.
func (e *SchemaExtractor) ExtractRecipe(pageURL string, html string) (*larder.Recipe, error) {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return nil, larder.Errorf(larder.EINVALID, "invalid recipe URL %q", pageURL)
	}

	doc, err := Parse(html)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &larder.Error{Code: larder.EPARSE, Message: "empty document", URL: pageURL}
	}

	r, err := ParseSchema(doc)
	if err != nil {
		var lerr *larder.Error
		if errors.As(err, &lerr) && lerr.URL == "" {
			lerr.URL = pageURL
		}
		return nil, err
	}
	r.SourceURL = pageURL
	r.Host = larder.HostOf(pageURL)

	if (r.Title == "" || r.Image == "") && e.metadata != nil {
		if meta, err := e.metadata.ExtractMetadata(html); err == nil && meta != nil {
			if r.Title == "" {
				r.Title = meta.Title
			}
			if r.Image == "" {
				r.Image = meta.Image
			}
		}
	}
	if r.Title == "" {
		r.Title = firstText(doc.Selection, "h1")
	}
	if r.Image != "" {
		r.Image = resolveAbsolute(base, r.Image)
	}

	return r, nil
}
