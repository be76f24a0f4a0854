// Package normalize turns loosely formatted table cell text into typed values.
//
// Every function is pure and never panics on malformed input. Numeric parsers
// report [ErrMissing] for placeholder cells and [ErrNotNumber] for text that
// cannot be read as a number, so callers can skip the row and record why.
//
// [SmartRound] implements the magnitude-aware rounding applied to every numeric
// column before the final table is written.
package normalize
