package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMissing is returned when a cell holds a placeholder instead of a value.
	ErrMissing = errors.New("normalize: missing value")

	// ErrNotNumber is returned when a cell cannot be converted to a number.
	ErrNotNumber = errors.New("normalize: not a number")
)

// placeholders are cell contents that stand for "no data".
var placeholders = map[string]bool{
	"":    true,
	"-":   true,
	"—":   true,
	"–":   true,
	"n/a": true,
	"na":  true,
	"...": true,
	"…":   true,
	"?":   true,
}

// unitSuffixes are trimmed from the end of a numeric token when they are glued
// to the digits ("1234km2").
var unitSuffixes = []string{"km²", "km2", "mi²", "mi2", "%"}

// numericToken reduces a cell to the bare number text: footnotes, currency and
// approximation markers, thousands separators and trailing unit tokens are
// dropped. Only the first whitespace-separated token is kept.
func numericToken(s string) (string, error) {
	s = CleanText(StripFootnotes(s))
	if placeholders[strings.ToLower(s)] {
		return "", ErrMissing
	}

	s = strings.TrimLeft(s, "$~≈")
	s = strings.ReplaceAll(s, "−", "-")
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", ErrMissing
	}

	token := strings.ReplaceAll(fields[0], ",", "")
	for _, suffix := range unitSuffixes {
		token = strings.TrimSuffix(token, suffix)
	}
	if placeholders[strings.ToLower(token)] {
		return "", ErrMissing
	}
	return token, nil
}

// ParseFloat converts cell text such as "1,234.5 km2" or "$2,001[3]" into a
// float64.
func ParseFloat(s string) (float64, error) {
	token, err := numericToken(s)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	return v, nil
}

// ParseInt converts cell text such as "1,234,567" into an int64. Fractional
// values are rejected.
func ParseInt(s string) (int64, error) {
	token, err := numericToken(s)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	return v, nil
}

// MillionsToBillions converts a value expressed in millions into billions,
// rounded to three decimal places.
func MillionsToBillions(v float64) float64 {
	return Round(v/1000, 3)
}

// Round rounds v to the given number of decimal places, halves away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// SmartRound rounds v according to its magnitude: values of at least one
// million become integers, values of at least one keep two decimals and
// smaller values keep five. Zero stays zero.
func SmartRound(v float64) float64 {
	a := math.Abs(v)
	switch {
	case v == 0:
		return 0
	case a >= 1_000_000:
		return math.Round(v)
	case a >= 1:
		return Round(v, 2)
	default:
		return Round(v, 5)
	}
}
