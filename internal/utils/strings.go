package utils

import "fmt"

// DefaultMaxStringLength is the length TruncateString falls back to.
const DefaultMaxStringLength = 120

// TruncateString shortens s to at most maxLen bytes and records the original
// length, so log lines built from scraped cells stay readable. A maxLen of
// zero or less means DefaultMaxStringLength.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
