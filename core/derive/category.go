package derive

import (
	"math"
	"sort"

	"github.com/leofalp/worldstats/core/merge"
)

// HDI category labels, lowest quartile first.
const (
	CategoryLow      = "Low"
	CategoryMedium   = "Medium"
	CategoryHigh     = "High"
	CategoryVeryHigh = "Very High"
)

// Categories lists the labels in bin order.
var Categories = []string{CategoryLow, CategoryMedium, CategoryHigh, CategoryVeryHigh}

// Quantile returns the q-th quantile (0 <= q <= 1) of sorted values using
// linear interpolation between the closest ranks.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Cutpoints returns the five bin edges (minimum, three quartiles, maximum)
// of values. It returns nil for an empty input.
func Cutpoints(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	edges := make([]float64, len(Categories)+1)
	for i := range edges {
		edges[i] = Quantile(sorted, float64(i)/float64(len(Categories)))
	}
	return edges
}

// Bin returns the label of v for the given edges. Bins are right-closed and
// the first one also includes the minimum. When edges repeat, v lands in the
// lowest bin that contains it.
func Bin(v float64, edges []float64) string {
	if len(edges) != len(Categories)+1 {
		return ""
	}
	for i := range Categories {
		if v <= edges[i+1] {
			return Categories[i]
		}
	}
	return Categories[len(Categories)-1]
}

// Categorize returns a copy of t with hdi_category assigned from the quartiles
// of the HDI values present in t. Rows without HDI get an empty category.
func Categorize(t merge.Table) merge.Table {
	edges := Cutpoints(t.Values(merge.ColumnHDI))
	return t.Map(func(r merge.Record) merge.Record {
		r.HDICategory = ""
		if r.HDI != nil {
			r.HDICategory = Bin(*r.HDI, edges)
		}
		return r
	})
}
