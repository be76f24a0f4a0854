package utils

import (
	"io"
	"log/slog"
)

// CloseWithLog closes c and logs a warning when Close fails. It is meant for
// deferred calls where the close error cannot change the outcome.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close resource", "error", err.Error())
	}
}
