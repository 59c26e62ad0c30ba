package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// StopFunc reports whether a cursor must stop before node n.
type StopFunc func(n *html.Node) bool

// Cursor walks a linearized sequence of element nodes. Next is O(1) and
// never yields a node at or after the first one matched by the stop
// predicate.
type Cursor struct {
	nodes   []*html.Node
	pos     int
	stop    StopFunc
	stopped bool
}

// NewCursor creates a cursor over nodes. A nil stop never stops early.
func NewCursor(nodes []*html.Node, stop StopFunc) *Cursor {
	return &Cursor{nodes: nodes, stop: stop}
}

// Next returns the next node, or false once the sequence is exhausted or
// the stop predicate has matched.
func (c *Cursor) Next() (*html.Node, bool) {
	if c.stopped || c.pos >= len(c.nodes) {
		return nil, false
	}
	n := c.nodes[c.pos]
	if c.stop != nil && c.stop(n) {
		c.stopped = true
		return nil, false
	}
	c.pos++
	return n, true
}

// Stopped reports whether the cursor ended on the stop predicate rather
// than by running out of nodes.
func (c *Cursor) Stopped() bool {
	return c.stopped
}

// ElementSiblingsAfter returns the element siblings following n, in order.
// Text, comment and other non-element nodes are skipped.
func ElementSiblingsAfter(n *html.Node) []*html.Node {
	var nodes []*html.Node
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			nodes = append(nodes, s)
		}
	}
	return nodes
}

// HeadingRank returns 1 through 6 for h1 through h6 and 0 for anything else.
func HeadingRank(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
		return 0
	}
	if r := int(n.Data[1] - '0'); r >= 1 && r <= 6 {
		return r
	}
	return 0
}

// StopAtHeading stops at any heading of rank <= rank (the same or a
// higher level) and at the comments block that closes most blog posts.
func StopAtHeading(rank int) StopFunc {
	return func(n *html.Node) bool {
		if r := HeadingRank(n); r > 0 && r <= rank {
			return true
		}
		return attr(n, "id") == "comments"
	}
}

// FindHeading returns the first element matched by selector whose text
// matches pattern, or an empty selection.
func FindHeading(doc *goquery.Selection, selector string, pattern *regexp.Regexp) *goquery.Selection {
	return doc.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return pattern.MatchString(Text(s))
	}).First()
}

// CollectSection collects text lines from the siblings that follow heading:
// the items of every ul/ol and the text of every paragraph, stopping at the
// next heading of the same or a higher level. The bool result is false if
// heading is empty. Lines is never nil when the heading exists.
func CollectSection(heading *goquery.Selection) ([]string, bool) {
	if heading.Length() == 0 {
		return nil, false
	}
	start := heading.Get(0)

	rank := HeadingRank(start)
	if rank == 0 {
		// Paragraph markers such as <p><strong>Ingredients</strong></p>
		// end at any h1-h6.
		rank = 6
	}

	lines := []string{}
	cur := NewCursor(ElementSiblingsAfter(start), StopAtHeading(rank))
	for n, ok := cur.Next(); ok; n, ok = cur.Next() {
		sel := goquery.NewDocumentFromNode(n).Selection
		switch n.Data {
		case "ul", "ol":
			lines = append(lines, listItems(sel)...)
		case "p":
			if t := Text(sel); t != "" {
				lines = append(lines, t)
			}
		}
	}
	return lines, true
}

// listItems returns the non-empty text of each li under sel.
func listItems(sel *goquery.Selection) []string {
	var items []string
	sel.Find("li").Each(func(_ int, li *goquery.Selection) {
		if t := Text(li); t != "" {
			items = append(items, t)
		}
	})
	return items
}

// attr returns the value of the named attribute of n.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
