package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/leofalp/worldstats/core/normalize"
)

// Cell is the loosely typed content of one <td> or <th>.
type Cell struct {
	// Text is the visible text of the cell with whitespace collapsed.
	Text string
	// OwnText is the text of the cell's direct children, skipping <span>
	// elements. Some tables wrap flags and sort keys in spans next to the name.
	OwnText string
	// LinkTitle is the title attribute of the first anchor that carries one.
	LinkTitle string
	// LinkText is the visible text of the first anchor.
	LinkText string
	// HasLink reports whether the cell contains an anchor at all.
	HasLink bool
	// Style is the raw style attribute.
	Style string
	// Header is true for <th> cells.
	Header bool
}

func newCell(s *goquery.Selection) Cell {
	node := s.Get(0)
	c := Cell{
		Text:    normalize.CleanText(visibleText(node)),
		OwnText: normalize.CleanText(ownText(node)),
		Header:  node.Data == "th",
	}
	c.Style, _ = s.Attr("style")

	links := s.Find("a")
	if links.Length() > 0 {
		c.HasLink = true
		c.LinkText = normalize.CleanText(visibleText(links.Get(0)))
	}
	links.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if title, ok := a.Attr("title"); ok && strings.TrimSpace(title) != "" {
			c.LinkTitle = title
			return false
		}
		return true
	})
	return c
}

// visibleText concatenates the text nodes under n, skipping elements that are
// never rendered (scripts, inline styles, display:none sort keys).
func visibleText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if hidden(n) {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// ownText joins the visible text of n's direct children except <span>s.
func ownText(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "span" {
			continue
		}
		if text := strings.TrimSpace(visibleText(c)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "")
}

func hidden(n *html.Node) bool {
	switch n.Data {
	case "script", "style", "noscript":
		return true
	}
	for _, attr := range n.Attr {
		if attr.Key == "style" {
			style := strings.ReplaceAll(strings.ToLower(attr.Val), " ", "")
			if strings.Contains(style, "display:none") {
				return true
			}
		}
	}
	return false
}
