package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableSelector decides whether a <table> element is the one a source wants.
type TableSelector interface {
	// Match reports whether table is the target table.
	Match(table *goquery.Selection) bool
	// String describes the selector for logs and errors.
	String() string
}

// ByAttribute matches tables whose attribute, split on whitespace, contains
// the given tokens. With MatchAll every token must be present, otherwise one
// is enough. Attr defaults to "class".
type ByAttribute struct {
	Attr     string
	Tokens   []string
	MatchAll bool
}

// Match implements [TableSelector].
func (b ByAttribute) Match(table *goquery.Selection) bool {
	value, ok := table.Attr(b.attr())
	if !ok {
		return false
	}
	present := make(map[string]bool)
	for _, token := range strings.Fields(value) {
		present[token] = true
	}

	for _, token := range b.Tokens {
		switch {
		case present[token] && !b.MatchAll:
			return true
		case !present[token] && b.MatchAll:
			return false
		}
	}
	return b.MatchAll && len(b.Tokens) > 0
}

func (b ByAttribute) attr() string {
	if b.Attr == "" {
		return "class"
	}
	return b.Attr
}

// String implements [TableSelector].
func (b ByAttribute) String() string {
	mode := "any"
	if b.MatchAll {
		mode = "all"
	}
	return fmt.Sprintf("%s has %s of %v", b.attr(), mode, b.Tokens)
}

// ByHeaderKeywords matches tables whose first row contains every keyword as a
// substring. Within, when set, must also match; it narrows the candidates
// (typically to class "wikitable") before the header text is inspected.
type ByHeaderKeywords struct {
	Keywords []string
	Within   TableSelector
}

// Match implements [TableSelector].
func (b ByHeaderKeywords) Match(table *goquery.Selection) bool {
	if b.Within != nil && !b.Within.Match(table) {
		return false
	}
	rows := ownRows(table)
	if rows.Length() == 0 {
		return false
	}
	header := rows.First().Text()
	for _, keyword := range b.Keywords {
		if !strings.Contains(header, keyword) {
			return false
		}
	}
	return true
}

// String implements [TableSelector].
func (b ByHeaderKeywords) String() string {
	if b.Within != nil {
		return fmt.Sprintf("header contains %q within (%s)", b.Keywords, b.Within)
	}
	return fmt.Sprintf("header contains %q", b.Keywords)
}

// ByCSS matches tables selected by a CSS selector, e.g. "table#gdp" or
// "div.mw-content table.wikitable".
type ByCSS struct {
	Selector string
}

// Match implements [TableSelector].
func (b ByCSS) Match(table *goquery.Selection) bool {
	return b.Selector != "" && table.Is(b.Selector)
}

// String implements [TableSelector].
func (b ByCSS) String() string {
	return fmt.Sprintf("css %q", b.Selector)
}
