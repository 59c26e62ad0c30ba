package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/larder"
)

// Patterns for section headings. They match anywhere in the heading text,
// so "Ingredients for the dough" is found as well.
var (
	ingredientsPattern  = regexp.MustCompile(`(?i)\bingredients\b`)
	instructionsPattern = regexp.MustCompile(`(?i)\b(instructions|directions|method|preparation)\b`)
)

// markupRules describes where one site family keeps each recipe field.
// Every list is in priority order; the first non-empty result wins.
type markupRules struct {
	title  []string
	images []string

	// containers hold the recipe body scanned for "Yield:" labels.
	containers []string

	// yields and times are plugin selectors read before the label scan.
	yields []string
	times  []string

	// headings selects candidate section headings.
	headings string

	// ingredients and instructions are item selectors used when no
	// heading section yields anything.
	ingredients  []string
	instructions []string

	// containerLists takes every list item in the first matching container
	// as the ingredients when nothing else was found.
	containerLists bool
}

// maxMarkerLen bounds the text of a paragraph accepted as a section marker,
// so prose mentioning "ingredients" is not taken for one.
const maxMarkerLen = 40

// extractMarkup applies rules to html and returns the recipe found at
// pageURL. Absent fields stay empty; only an unusable page URL or an empty
// document is an error.
func extractMarkup(rules *markupRules, pageURL string, html string) (*larder.Recipe, error) {
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
	root := doc.Selection

	r := &larder.Recipe{
		SourceURL: pageURL,
		Host:      larder.HostOf(pageURL),
		Title:     firstText(root, rules.title...),
		Image:     firstImage(root, base, rules.images...),
	}

	r.Yields = labeledText(root, rules.yields)
	r.TotalTime = labeledText(root, rules.times)
	if r.Yields == "" || r.TotalTime == "" {
		y, t := scanLabels(firstMatch(root, rules.containers))
		if r.Yields == "" {
			r.Yields = y
		}
		if r.TotalTime == "" {
			r.TotalTime = t
		}
	}

	r.Ingredients = sectionOrFallback(root, rules.headings, ingredientsPattern, rules.ingredients)
	r.Instructions = sectionOrFallback(root, rules.headings, instructionsPattern, rules.instructions)
	if len(r.Ingredients) == 0 && rules.containerLists {
		r.Ingredients = containerItems(root, rules.containers)
	}

	return r, nil
}

// sectionOrFallback collects the section under the first heading matching
// pattern, falling back to item selectors when the section is missing or
// empty. The result is never nil.
func sectionOrFallback(root *goquery.Selection, headings string, pattern *regexp.Regexp, fallbacks []string) []string {
	if lines, ok := CollectSection(findMarker(root, headings, pattern)); ok && len(lines) > 0 {
		return lines
	}
	for _, s := range fallbacks {
		if lines := pluginLines(root, s); len(lines) > 0 {
			return lines
		}
	}
	return []string{}
}

// findMarker is FindHeading restricted to real headings and short paragraphs
// such as <p><strong>Instructions</strong></p>.
func findMarker(root *goquery.Selection, selector string, pattern *regexp.Regexp) *goquery.Selection {
	return root.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		t := Text(s)
		if HeadingRank(s.Get(0)) == 0 && len(t) > maxMarkerLen {
			return false
		}
		return pattern.MatchString(t)
	}).First()
}

// containerItems returns the text of every li in the first container found.
func containerItems(root *goquery.Selection, containers []string) []string {
	for _, c := range containers {
		if sel := root.Find(c).First(); sel.Length() > 0 {
			return nonNil(listItems(sel))
		}
	}
	return []string{}
}

// labeledText returns the first non-empty text matched by selectors with
// any "Label:" prefix removed.
func labeledText(root *goquery.Selection, selectors []string) string {
	t := firstText(root, selectors...)
	if t == "" {
		return ""
	}
	lower := strings.ToLower(t)
	if hasAnyPrefix(lower, yieldLabels) || hasAnyPrefix(lower, timeLabels) {
		return afterColon(t)
	}
	return t
}

// firstMatch returns the first selection matched by selectors, or root.
func firstMatch(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, s := range selectors {
		if sel := root.Find(s).First(); sel.Length() > 0 {
			return sel
		}
	}
	return root
}
