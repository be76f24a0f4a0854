package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// footnotePattern matches bracketed annotations such as "[a]", "[12]" or
// "[note 3]".
var footnotePattern = regexp.MustCompile(`\[[^\]]*\]`)

// StripFootnotes removes every bracketed annotation from s and trims the
// surrounding whitespace.
func StripFootnotes(s string) string {
	return strings.TrimSpace(footnotePattern.ReplaceAllString(s, ""))
}

// CleanText normalises s to NFC, maps non-breaking and thin spaces to plain
// spaces and collapses runs of whitespace into a single space.
func CleanText(s string) string {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\u00a0', '\u2007', '\u2009', '\u202f':
			return ' '
		case '\u200b', '\ufeff':
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// CountryName returns the canonical country name for a table cell. The anchor
// title is preferred because it is more stable than the visible text; the
// visible text is used when no title is available. Footnote markers are
// removed from whichever value is chosen.
func CountryName(title, text string) string {
	if name := CleanText(StripFootnotes(title)); name != "" {
		return name
	}
	return CleanText(StripFootnotes(text))
}
