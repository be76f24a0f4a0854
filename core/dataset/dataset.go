// Package dataset accumulates the normalised rows of one source into a
// country-keyed table and records every row that had to be skipped.
package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leofalp/worldstats/core/normalize"
)

// FailureKind classifies why a row was skipped.
type FailureKind string

const (
	// KindShortRow means the row had fewer cells than the layout requires.
	KindShortRow FailureKind = "short_row"
	// KindNoCountry means no country name could be found in the row.
	KindNoCountry FailureKind = "no_country"
	// KindMissingValue means the value cell held a placeholder.
	KindMissingValue FailureKind = "missing_value"
	// KindBadNumber means the value cell could not be converted to a number.
	KindBadNumber FailureKind = "bad_number"
)

// KindOf maps a normalizer error to the failure kind it represents.
func KindOf(err error) FailureKind {
	if errors.Is(err, normalize.ErrMissing) {
		return KindMissingValue
	}
	return KindBadNumber
}

// RowFailure describes one skipped row.
type RowFailure struct {
	Source string
	Row    int
	Kind   FailureKind
	Reason string
	Cells  []string
}

// Error implements the error interface so a failure can be logged or wrapped.
func (f RowFailure) Error() string {
	return fmt.Sprintf("%s row %d: %s: %s [%s]", f.Source, f.Row, f.Kind, f.Reason, strings.Join(f.Cells, " | "))
}

// Dataset is the finished, read-only mapping from country to value for a
// single source.
type Dataset struct {
	source    string
	column    string
	countries []string
	values    map[string]float64
	failures  []RowFailure
}

// Empty returns a dataset with no rows, used when a source failed entirely.
func Empty(source, column string) *Dataset {
	return &Dataset{source: source, column: column, values: map[string]float64{}}
}

// Source returns the name of the source the dataset was built from.
func (d *Dataset) Source() string { return d.source }

// Column returns the name of the value column, e.g. "population".
func (d *Dataset) Column() string { return d.column }

// Len returns the number of distinct countries.
func (d *Dataset) Len() int { return len(d.countries) }

// Countries returns the countries in order of first appearance.
func (d *Dataset) Countries() []string {
	return append([]string(nil), d.countries...)
}

// Value returns the value recorded for country.
func (d *Dataset) Value(country string) (float64, bool) {
	v, ok := d.values[country]
	return v, ok
}

// Failures returns the skipped rows in the order they were recorded.
func (d *Dataset) Failures() []RowFailure {
	return append([]RowFailure(nil), d.failures...)
}

// FailureCounts groups the skipped rows by kind.
func (d *Dataset) FailureCounts() map[FailureKind]int {
	counts := make(map[FailureKind]int)
	for _, f := range d.failures {
		counts[f.Kind]++
	}
	return counts
}

// Builder collects rows for one source. The last value seen for a country
// wins; the country keeps the position of its first appearance.
type Builder struct {
	source   string
	column   string
	limit    int
	accepted int
	order    []string
	values   map[string]float64
	failures []RowFailure
}

// NewBuilder returns a builder for source. A positive limit caps the number of
// accepted rows; zero means no cap.
func NewBuilder(source, column string, limit int) *Builder {
	return &Builder{
		source: source,
		column: column,
		limit:  limit,
		values: make(map[string]float64),
	}
}

// Full reports whether the row cap has been reached.
func (b *Builder) Full() bool {
	return b.limit > 0 && b.accepted >= b.limit
}

// Add records value for country. It returns false when the row was not
// accepted because the cap has been reached or the country is empty.
func (b *Builder) Add(country string, value float64) bool {
	if b.Full() || country == "" {
		return false
	}
	if _, seen := b.values[country]; !seen {
		b.order = append(b.order, country)
	}
	b.values[country] = value
	b.accepted++
	return true
}

// Fail records a skipped row. The source name is filled in when missing.
func (b *Builder) Fail(f RowFailure) {
	if f.Source == "" {
		f.Source = b.source
	}
	b.failures = append(b.failures, f)
}

// Build returns the dataset collected so far. The builder may keep being used;
// later additions do not affect the returned dataset.
func (b *Builder) Build() *Dataset {
	values := make(map[string]float64, len(b.values))
	for k, v := range b.values {
		values[k] = v
	}
	return &Dataset{
		source:    b.source,
		column:    b.column,
		countries: append([]string(nil), b.order...),
		values:    values,
		failures:  append([]RowFailure(nil), b.failures...),
	}
}
