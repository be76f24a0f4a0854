package derive

import (
	"github.com/leofalp/worldstats/core/merge"
	"github.com/leofalp/worldstats/core/normalize"
	"github.com/leofalp/worldstats/internal/utils"
)

// Density returns population per square kilometre, or nil when either input
// is unknown or the area is zero.
func Density(population, area *float64) *float64 {
	if population == nil || area == nil || *area == 0 {
		return nil
	}
	return utils.Ptr(*population / *area)
}

// GDPPerCapita converts a GDP in billions of USD into USD per person. It
// returns nil when either input is unknown or the population is zero.
func GDPPerCapita(gdp, population *float64) *float64 {
	if gdp == nil || population == nil || *population == 0 {
		return nil
	}
	return utils.Ptr(*gdp * 1e9 / *population)
}

// Shares returns a copy of t with gdp_share set to each row's percentage of
// the GDP summed over the rows of t that have one.
func Shares(t merge.Table) merge.Table {
	var total float64
	for _, v := range t.Values(merge.ColumnGDP) {
		total += v
	}
	return t.Map(func(r merge.Record) merge.Record {
		if r.GDP == nil || total == 0 {
			return r.With(merge.ColumnGDPShare, nil)
		}
		return r.With(merge.ColumnGDPShare, utils.Ptr(*r.GDP/total*100))
	})
}

// Apply returns a copy of t with every derived column computed from the
// values already in the table. Run it after the merge and the null drop so
// shares and categories reflect the final row set.
func Apply(t merge.Table) merge.Table {
	t = t.Map(func(r merge.Record) merge.Record {
		r = r.With(merge.ColumnDensity, Density(r.Population, r.Area))
		return r.With(merge.ColumnGDPPerCapita, GDPPerCapita(r.GDP, r.Population))
	})
	return Categorize(Shares(t))
}

// SmartRoundAll returns a copy of t with every numeric column rounded by
// normalize.SmartRound.
func SmartRoundAll(t merge.Table) merge.Table {
	return t.Map(func(r merge.Record) merge.Record {
		for _, column := range merge.NumericColumns {
			if v := r.Get(column); v != nil {
				r = r.With(column, utils.Ptr(normalize.SmartRound(*v)))
			}
		}
		return r
	})
}
