package slogobs

import (
	"os"
	"strings"
)

// Format selects how log records are rendered.
type Format string

const (
	// FormatCompact writes one line per record with the attributes as JSON:
	//   2026-03-01 10:40:35  INFO source parsed → {"rows.accepted":193,"source.name":"hdi"}
	FormatCompact Format = "compact"

	// FormatPretty writes the message on one line and each attribute below it.
	FormatPretty Format = "pretty"

	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
)

// ParseFormat maps a case-insensitive name to a Format. Unknown names give
// FormatCompact.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPretty:
		return FormatPretty
	case FormatJSON:
		return FormatJSON
	default:
		return FormatCompact
	}
}

// GetFormatFromEnv reads WORLDSTATS_LOG_FORMAT, then LOG_FORMAT.
func GetFormatFromEnv() Format {
	return ParseFormat(firstEnv("WORLDSTATS_LOG_FORMAT", "LOG_FORMAT"))
}

func (f Format) String() string {
	return string(f)
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
