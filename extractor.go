package larder

// PageMetadata holds page-level metadata read from meta tags and similar
// sources, independent of any recipe markup.
type PageMetadata struct {
	Title string
	Image string
}

// MetadataExtractor reads page-level metadata from HTML.
type MetadataExtractor interface {
	// ExtractMetadata processes raw HTML and returns its metadata.
	// Missing values are returned as empty strings.
	ExtractMetadata(html string) (*PageMetadata, error)
}
