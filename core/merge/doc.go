// Package merge outer-joins per-source datasets into one row per country.
//
// The join key is the normalised country name compared byte for byte. There is
// no alias table and no fuzzy matching, so the same country spelled two ways
// ("United States" and "United States of America") yields two rows. That is a
// known limitation of the sources, kept visible rather than papered over.
//
// Tables are values. [Outer], [DropIncomplete] and every transform in package
// derive return a new [Table] and leave their input untouched.
package merge
