package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// WP Recipe Maker plugin selectors. Many WordPress food blogs render their
// recipe card with this plugin regardless of theme.
const (
	wprmYield       = ".wprm-recipe-yield-container .wprm-recipe-yield"
	wprmTotalTime   = ".wprm-recipe-total-time-container .wprm-recipe-time"
	wprmIngredients = ".wprm-recipe-ingredients-container .wprm-recipe-ingredient"
	wprmSteps       = ".wprm-recipe-instructions-container .wprm-recipe-instruction-text"
)

var (
	yieldLabels = []string{"yield:", "yields:", "servings:", "serves:"}
	timeLabels  = []string{"total time:", "time:"}
)

// firstText returns the text of the first selector that matches a
// non-empty element. Selectors are tried in priority order.
func firstText(doc *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		if t := Text(doc.Find(s).First()); t != "" {
			return t
		}
	}
	return ""
}

// firstImage returns the absolute source of the first image matched by
// selectors in priority order. Lazy-loading attributes are honored.
func firstImage(doc *goquery.Selection, base *url.URL, selectors ...string) string {
	for _, s := range selectors {
		var src string
		doc.Find(s).EachWithBreak(func(_ int, img *goquery.Selection) bool {
			src = imageSource(img)
			return src == ""
		})
		if src != "" {
			return resolveAbsolute(base, src)
		}
	}
	return ""
}

// imageSource returns the best source attribute of an img element.
func imageSource(img *goquery.Selection) string {
	for _, a := range []string{"src", "data-src", "data-lazy-src"} {
		if v, ok := img.Attr(a); ok {
			v = strings.TrimSpace(v)
			if v != "" && !strings.HasPrefix(v, "data:") {
				return v
			}
		}
	}
	if srcset, ok := img.Attr("srcset"); ok {
		if first, _, _ := strings.Cut(strings.TrimSpace(srcset), ","); first != "" {
			return strings.Fields(first)[0]
		}
	}
	return ""
}

// scanLabels scans paragraph and list item text within container for
// "Yield:"-style and "Time:"-style labels and returns the text after the
// first colon. The first match for each field wins.
func scanLabels(container *goquery.Selection) (yields, totalTime string) {
	container.Find("p, li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := Text(s)
		lower := strings.ToLower(text)
		if yields == "" && hasAnyPrefix(lower, yieldLabels) {
			yields = afterColon(text)
		} else if totalTime == "" && hasAnyPrefix(lower, timeLabels) {
			totalTime = afterColon(text)
		}
		return yields == "" || totalTime == ""
	})
	return yields, totalTime
}

// pluginLines returns the non-empty text of every element matched by selector.
func pluginLines(doc *goquery.Selection, selector string) []string {
	var lines []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if t := Text(s); t != "" {
			lines = append(lines, t)
		}
	})
	return lines
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func afterColon(s string) string {
	_, after, _ := strings.Cut(s, ":")
	return strings.TrimSpace(after)
}

// nonNil returns lines, or an empty slice if lines is nil.
func nonNil(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}
