package merge

import (
	"sort"

	"github.com/leofalp/worldstats/core/dataset"
	"github.com/leofalp/worldstats/internal/utils"
)

// Table is an ordered set of merged records.
type Table []Record

// Countries returns the country names in table order.
func (t Table) Countries() []string {
	names := make([]string, len(t))
	for i, r := range t {
		names[i] = r.Country
	}
	return names
}

// Find returns the record for country.
func (t Table) Find(country string) (Record, bool) {
	for _, r := range t {
		if r.Country == country {
			return r, true
		}
	}
	return Record{}, false
}

// Values returns the non-null values of column, in table order.
func (t Table) Values(column string) []float64 {
	var values []float64
	for _, r := range t {
		if v := r.Get(column); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

// Map returns a new table holding fn applied to every record.
func (t Table) Map(fn func(Record) Record) Table {
	out := make(Table, len(t))
	for i, r := range t {
		out[i] = fn(r)
	}
	return out
}

// Filter returns a new table with the records for which keep is true.
func (t Table) Filter(keep func(Record) bool) Table {
	out := make(Table, 0, len(t))
	for _, r := range t {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Outer joins the datasets on country name. The result holds one record per
// country seen in any dataset, sorted by name; fields from datasets that lack
// the country stay nil. Each dataset fills the field named by its column;
// datasets with an unknown column contribute their countries only.
func Outer(sets ...*dataset.Dataset) Table {
	rows := make(map[string]Record)
	for _, set := range sets {
		if set == nil {
			continue
		}
		for _, country := range set.Countries() {
			value, _ := set.Value(country)
			r, ok := rows[country]
			if !ok {
				r = Record{Country: country}
			}
			rows[country] = r.With(set.Column(), utils.Ptr(value))
		}
	}

	names := make([]string, 0, len(rows))
	for name := range rows {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Table, len(names))
	for i, name := range names {
		out[i] = rows[name]
	}
	return out
}

// DropIncomplete removes the records that lack population or HDI, the
// minimum a country needs to be analysed. Other missing fields are kept as
// nil.
func DropIncomplete(t Table) Table {
	return t.Filter(func(r Record) bool {
		return r.Population != nil && r.HDI != nil
	})
}
