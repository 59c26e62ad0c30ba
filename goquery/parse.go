// Package goquery implements HTML parsing, per-site recipe extraction and
// index-page link discovery using github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/larder"
)

// Parse parses raw markup into a queryable document.
// Empty or whitespace-only input returns (nil, nil): there is nothing to
// extract, which is not an error.
func Parse(html string) (*goquery.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &larder.Error{Code: larder.EPARSE, Message: "failed to parse HTML", Err: err}
	}
	return doc, nil
}

// Text returns the text content of sel with runs of whitespace collapsed
// to single spaces and the ends trimmed.
func Text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
