package slogobs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace sits below slog.LevelDebug.
const LevelTrace = slog.LevelDebug - 4

// GetLogLevelFromEnv reads WORLDSTATS_LOG_LEVEL, then LOG_LEVEL, and defaults
// to INFO.
func GetLogLevelFromEnv() slog.Level {
	level := firstEnv("WORLDSTATS_LOG_LEVEL", "LOG_LEVEL")
	if level == "" {
		return slog.LevelInfo
	}
	return ParseLogLevel(level)
}

// ParseLogLevel accepts TRACE, DEBUG, INFO, WARN, WARNING and ERROR in any
// case. Anything else is reported on stderr and treated as INFO.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "worldstats: unknown log level %q, using INFO\n", level)
		return slog.LevelInfo
	}
}
