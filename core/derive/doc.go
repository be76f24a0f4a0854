// Package derive computes the secondary metrics of a merged table and the
// data operations the dashboard performs on it.
//
// [Apply] adds density, GDP per capita, GDP share and the HDI quartile
// category. GDP share is relative to the sum of GDP over the rows of the table
// it is given, and HDI categories are equal-frequency bins over the HDI
// values of that same table. Both are therefore recomputed whenever the row
// set changes: [Select] re-categorises after filtering.
//
// [SmartRoundAll] applies normalize.SmartRound to every numeric column; it is
// the last step before the table is written.
package derive
