package derive

import (
	"math"
	"sort"

	"github.com/leofalp/worldstats/core/merge"
	"github.com/leofalp/worldstats/internal/utils"
)

// Filter narrows a categorised table the way the dashboard's sidebar does.
// Zero values disable a criterion.
type Filter struct {
	// Categories keeps rows whose HDI category is listed.
	Categories []string
	// MinPopulation and MaxPopulation bound the population, inclusive.
	MinPopulation *float64
	MaxPopulation *float64
	// TopN keeps the N most populous rows after categorisation.
	TopN int
}

func (f Filter) keep(r merge.Record) bool {
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if c == r.HDICategory {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinPopulation != nil && (r.Population == nil || *r.Population < *f.MinPopulation) {
		return false
	}
	if f.MaxPopulation != nil && (r.Population == nil || *r.Population > *f.MaxPopulation) {
		return false
	}
	return true
}

// Select applies f to t and re-categorises the rows that remain, so the HDI
// quartile boundaries follow the filtered row set. TopN is applied last and
// does not move the boundaries; the result is then ordered by population,
// largest first.
func Select(t merge.Table, f Filter) merge.Table {
	kept := Categorize(t.Filter(f.keep))
	if f.TopN > 0 {
		kept = Top(kept, f.TopN)
	}
	return kept
}

// Top returns the n rows of t with the largest population, largest first.
// Rows without population sort last.
func Top(t merge.Table, n int) merge.Table {
	sorted := append(merge.Table(nil), t...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Population, sorted[j].Population
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return *a > *b
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Summary holds the key metrics shown next to the filtered table.
type Summary struct {
	Countries        int
	TotalPopulation  float64
	MeanHDI          *float64
	MeanGDPPerCapita *float64
}

// Summarize computes the key metrics of t. Means skip unknown values and are
// nil when no value is known.
func Summarize(t merge.Table) Summary {
	s := Summary{Countries: len(t)}
	for _, v := range t.Values(merge.ColumnPopulation) {
		s.TotalPopulation += v
	}
	s.MeanHDI = mean(t.Values(merge.ColumnHDI))
	s.MeanGDPPerCapita = mean(t.Values(merge.ColumnGDPPerCapita))
	return s
}

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return utils.Ptr(sum / float64(len(values)))
}

// CorrelationColumns are the columns of the dashboard's correlation heatmap.
var CorrelationColumns = []string{
	merge.ColumnPopulation,
	merge.ColumnDensity,
	merge.ColumnGDPPerCapita,
	merge.ColumnHDI,
	merge.ColumnArea,
	merge.ColumnGDP,
	merge.ColumnGDPShare,
	merge.ColumnMilitarySpending,
}

// Matrix is a square correlation matrix. A nil cell means the coefficient is
// undefined: fewer than two complete pairs or a constant column.
type Matrix struct {
	Columns []string
	Values  [][]*float64
}

// Correlation returns the Pearson correlation of every pair of columns, using
// for each pair only the rows where both values are known.
func Correlation(t merge.Table, columns []string) Matrix {
	m := Matrix{Columns: append([]string(nil), columns...), Values: make([][]*float64, len(columns))}
	for i, a := range columns {
		m.Values[i] = make([]*float64, len(columns))
		for j, b := range columns {
			m.Values[i][j] = pearson(t, a, b)
		}
	}
	return m
}

func pearson(t merge.Table, a, b string) *float64 {
	var xs, ys []float64
	for _, r := range t {
		x, y := r.Get(a), r.Get(b)
		if x != nil && y != nil {
			xs = append(xs, *x)
			ys = append(ys, *y)
		}
	}
	if len(xs) < 2 {
		return nil
	}

	mx, my := *mean(xs), *mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return nil
	}
	r := sxy / math.Sqrt(sxx*syy)
	return utils.Ptr(math.Max(-1, math.Min(1, r)))
}
