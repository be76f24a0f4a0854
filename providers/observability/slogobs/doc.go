// Package slogobs implements observability.Provider on top of log/slog.
//
// Spans and metric updates become debug-level log lines, counters and
// histograms are also kept in memory so a run can report its totals, and
// the handler writes compact, pretty or JSON output. [New] reads
// WORLDSTATS_LOG_FORMAT and WORLDSTATS_LOG_LEVEL (falling back to LOG_FORMAT
// and LOG_LEVEL); [WithFormat], [WithLevel], [WithOutput], [WithColors] and
// [WithLogger] override them.
package slogobs
