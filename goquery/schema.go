package goquery

import (
	"encoding/json"
	stdhtml "html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/larder"
)

// maxSchemaDepth bounds the search for a Recipe node inside JSON-LD.
const maxSchemaDepth = 8

// ParseSchema reads the first schema.org Recipe embedded as JSON-LD in doc.
// The returned recipe has no SourceURL or Host. Returns EUNSUPPORTED if the
// page carries no Recipe node. Blocks that are not valid JSON are skipped.
func ParseSchema(doc *goquery.Document) (r *larder.Recipe, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, larder.Errorf(larder.EINTERNAL, "structured data: %v", p)
		}
	}()

	var node map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var v any
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &v); err != nil {
			return true
		}
		node = findRecipeNode(v, 0)
		return node == nil
	})
	if node == nil {
		return nil, larder.Errorf(larder.EUNSUPPORTED, "no structured recipe data")
	}

	return &larder.Recipe{
		Title:        cleanText(stringValue(node["name"])),
		Image:        imageValue(node["image"]),
		Yields:       yieldValue(node["recipeYield"]),
		TotalTime:    stringValue(node["totalTime"]),
		Ingredients:  nonNil(textList(firstPresent(node, "recipeIngredient", "ingredients"))),
		Instructions: nonNil(instructionList(node["recipeInstructions"], 0)),
	}, nil
}

// findRecipeNode searches v for an object whose @type is or includes Recipe.
func findRecipeNode(v any, depth int) map[string]any {
	if depth > maxSchemaDepth {
		return nil
	}
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if n := findRecipeNode(item, depth+1); n != nil {
				return n
			}
		}
	case map[string]any:
		if isType(x["@type"], "Recipe") {
			return x
		}
		for _, key := range []string{"@graph", "mainEntity", "mainEntityOfPage", "itemListElement"} {
			if n := findRecipeNode(x[key], depth+1); n != nil {
				return n
			}
		}
	}
	return nil
}

// isType reports whether a JSON-LD @type value is or contains want.
func isType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func firstPresent(node map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := node[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// stringValue converts scalar JSON values to text.
func stringValue(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// imageValue handles the string, array and ImageObject forms of image.
func imageValue(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case []any:
		for _, item := range x {
			if s := imageValue(item); s != "" {
				return s
			}
		}
	case map[string]any:
		if s := stringValue(x["url"]); s != "" {
			return s
		}
		return stringValue(x["contentUrl"])
	}
	return ""
}

// yieldValue handles string, number and list forms of recipeYield.
// For lists the first non-empty entry wins.
func yieldValue(v any) string {
	if list, ok := v.([]any); ok {
		for _, item := range list {
			if s := stringValue(item); s != "" {
				return s
			}
		}
		return ""
	}
	return stringValue(v)
}

// textList turns a string or list of strings into cleaned lines.
func textList(v any) []string {
	var lines []string
	switch x := v.(type) {
	case string:
		for _, line := range strings.Split(x, "\n") {
			if t := cleanText(line); t != "" {
				lines = append(lines, t)
			}
		}
	case []any:
		for _, item := range x {
			if t := cleanText(stringValue(item)); t != "" {
				lines = append(lines, t)
			}
		}
	}
	return lines
}

// instructionList flattens recipeInstructions: plain text, lists of text,
// HowToStep objects and HowToSection objects with nested steps.
func instructionList(v any, depth int) []string {
	if depth > maxSchemaDepth {
		return nil
	}
	switch x := v.(type) {
	case string:
		return textList(x)
	case []any:
		var lines []string
		for _, item := range x {
			lines = append(lines, instructionList(item, depth+1)...)
		}
		return lines
	case map[string]any:
		if steps, ok := x["itemListElement"]; ok {
			return instructionList(steps, depth+1)
		}
		if t := cleanText(stringValue(firstPresent(x, "text", "name"))); t != "" {
			return []string{t}
		}
	default:
		if t := cleanText(stringValue(x)); t != "" {
			return []string{t}
		}
	}
	return nil
}

// cleanText unescapes HTML entities, drops inline tags and collapses
// whitespace. Some sites embed markup inside JSON-LD strings.
func cleanText(s string) string {
	s = stdhtml.UnescapeString(s)
	if strings.Contains(s, "<") {
		if doc, err := Parse("<div>" + s + "</div>"); err == nil && doc != nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
