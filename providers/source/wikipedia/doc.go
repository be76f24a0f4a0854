// Package wikipedia describes the five Wikipedia list pages worldstats
// scrapes: where each page lives, how its table is recognised, how many
// header rows to skip and how a row becomes a (country, value) pair.
//
// Each page has its own layout, so each [Source] carries its own row parser.
// The parsers never fail a whole source; a row that cannot be read is
// recorded as a [dataset.RowFailure] and skipped.
package wikipedia
