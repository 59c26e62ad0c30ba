// Package trafilatura reads page metadata using go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/larder"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure MetadataExtractor implements larder.MetadataExtractor at compile time.
var _ larder.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor wraps go-trafilatura to read a page's title and lead
// image from its meta tags, OpenGraph data and headings.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata processes raw HTML and returns its metadata.
func (e *MetadataExtractor) ExtractMetadata(rawHTML string) (*larder.PageMetadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, larder.Errorf(larder.EPARSE, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, &larder.Error{Code: larder.EPARSE, Message: "metadata extraction failed", Err: err}
	}

	return &larder.PageMetadata{
		Title: strings.TrimSpace(result.Metadata.Title),
		Image: strings.TrimSpace(result.Metadata.Image),
	}, nil
}
