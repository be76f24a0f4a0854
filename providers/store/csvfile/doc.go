// Package csvfile persists per-source datasets and merged tables as flat CSV
// files in one output directory, and reads the per-source files back for a
// re-merge.
//
// Files have a header row, one record per country and an empty field for an
// unknown value. Numbers use the shortest decimal form that round-trips,
// never exponent notation. Every write replaces its file atomically.
package csvfile
