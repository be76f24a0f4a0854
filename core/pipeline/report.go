package pipeline

import (
	"time"

	"github.com/leofalp/worldstats/core/dataset"
)

// Report describes one run.
type Report struct {
	RunID   string
	Sources []SourceReport
	// Countries is the number of rows in merged_data.csv.
	Countries int
	// Dropped is the number of joined rows removed for lacking population or
	// HDI.
	Dropped    int
	MergedPath string
	Duration   time.Duration
}

// SourceReport is the outcome of one source.
type SourceReport struct {
	Name string
	URL  string
	// Rows is the number of countries the source contributed.
	Rows     int
	Failures map[dataset.FailureKind]int
	// Err is set when the source produced no table.
	Err error
	// Path is the per-source CSV file, empty when writing it failed.
	Path     string
	WriteErr error
	// Snapshot is the Markdown snapshot path when snapshots are enabled.
	Snapshot string
}

// Failed returns the number of skipped rows.
func (s SourceReport) Failed() int {
	n := 0
	for _, c := range s.Failures {
		n += c
	}
	return n
}

// OK reports whether the source was scraped and written.
func (s SourceReport) OK() bool {
	return s.Err == nil && s.WriteErr == nil
}

// Source returns the report of the named source.
func (r *Report) Source(name string) (SourceReport, bool) {
	for _, s := range r.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return SourceReport{}, false
}

// Failed returns the sources that produced no table or could not be written.
func (r *Report) Failed() []SourceReport {
	var out []SourceReport
	for _, s := range r.Sources {
		if !s.OK() {
			out = append(out, s)
		}
	}
	return out
}

// Elapsed is the run duration rounded for display.
func (r *Report) Elapsed() time.Duration {
	return r.Duration.Round(time.Millisecond)
}
