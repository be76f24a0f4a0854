package merge

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/leofalp/worldstats/core/dataset"
)

func build(column string, pairs map[string]float64) *dataset.Dataset {
	b := dataset.NewBuilder(column, column, 0)
	for country, v := range pairs {
		b.Add(country, v)
	}
	return b.Build()
}

// TestOuter_UnionWithNulls verifies that a country seen by one source only is
// kept with nil for every other field.
func TestOuter_UnionWithNulls(t *testing.T) {
	table := Outer(
		build(ColumnPopulation, map[string]float64{"A": 100, "B": 200}),
		build(ColumnArea, map[string]float64{"A": 10}),
		build(ColumnGDP, map[string]float64{"C": 1.5}),
		build(ColumnMilitarySpending, nil),
		build(ColumnHDI, map[string]float64{"B": 0.7}),
	)

	if got := table.Countries(); len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Fatalf("Countries() = %v, want [A B C]", got)
	}

	c, _ := table.Find("C")
	if c.GDP == nil || *c.GDP != 1.5 {
		t.Errorf("C.GDP = %v, want 1.5", c.GDP)
	}
	if c.Population != nil || c.Area != nil || c.MilitarySpending != nil || c.HDI != nil {
		t.Errorf("C should have nil for every other source: %+v", c)
	}

	a, _ := table.Find("A")
	if a.Area == nil || *a.Area != 10 || a.HDI != nil {
		t.Errorf("unexpected A: %+v", a)
	}
}

// TestOuter_ZeroIsNotNull keeps a genuine zero distinct from a missing value.
func TestOuter_ZeroIsNotNull(t *testing.T) {
	table := Outer(build(ColumnMilitarySpending, map[string]float64{"Iceland": 0}))
	r, _ := table.Find("Iceland")
	if r.MilitarySpending == nil || *r.MilitarySpending != 0 {
		t.Errorf("zero must be kept as a value, got %v", r.MilitarySpending)
	}
}

// TestOuter_NameMismatchFragments documents the exact-match join key: two
// spellings of the same country become two rows.
func TestOuter_NameMismatchFragments(t *testing.T) {
	table := Outer(
		build(ColumnPopulation, map[string]float64{"United States": 335_000_000}),
		build(ColumnHDI, map[string]float64{"United States of America": 0.927}),
		build(ColumnArea, map[string]float64{"united states": 9_833_520}),
	)
	if len(table) != 3 {
		t.Fatalf("expected 3 fragmented rows, got %d: %v", len(table), table.Countries())
	}
	if got := DropIncomplete(table); len(got) != 0 {
		t.Errorf("fragmented rows must not satisfy population+hdi, got %v", got.Countries())
	}
}

// TestDropIncomplete keeps rows with population and hdi only.
func TestDropIncomplete(t *testing.T) {
	table := Outer(
		build(ColumnPopulation, map[string]float64{"A": 1, "B": 2, "C": 3}),
		build(ColumnHDI, map[string]float64{"A": 0.5, "C": 0.9, "D": 0.1}),
	)
	kept := DropIncomplete(table)
	if got := kept.Countries(); len(got) != 2 || got[0] != "A" || got[1] != "C" {
		t.Errorf("DropIncomplete() = %v, want [A C]", got)
	}
	if len(table) != 4 {
		t.Errorf("input table was modified: %v", table.Countries())
	}
}

// TestRecord_WithCopies verifies With never aliases the caller's value.
func TestRecord_WithCopies(t *testing.T) {
	v := 1.0
	r := Record{Country: "A"}.With(ColumnDensity, &v)
	v = 2
	if *r.Density != 1 {
		t.Errorf("With aliased the input pointer: %v", *r.Density)
	}
	if r.With("unknown", &v) != r {
		t.Errorf("unknown column should leave the record unchanged")
	}
	if r.Get("unknown") != nil {
		t.Errorf("Get(unknown) should be nil")
	}
}

// TestOuter_SingleSourceProperty checks for arbitrary names that a country
// present in exactly one source appears once, with that source's field set and
// all others nil.
func TestOuter_SingleSourceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("lonely country survives the outer join", prop.ForAll(
		func(name string, sourceIndex int, value float64) bool {
			sets := make([]*dataset.Dataset, len(SourceColumns))
			for i, column := range SourceColumns {
				pairs := map[string]float64{"Shared": float64(i)}
				if i == sourceIndex {
					pairs["~"+name] = value
				}
				sets[i] = build(column, pairs)
			}

			table := Outer(sets...)
			r, ok := table.Find("~" + name)
			if !ok || len(table) != 2 {
				return false
			}
			for i, column := range SourceColumns {
				got := r.Get(column)
				if i == sourceIndex && (got == nil || *got != value) {
					return false
				}
				if i != sourceIndex && got != nil {
					return false
				}
			}
			kept := DropIncomplete(table)
			_, survived := kept.Find("~" + name)
			return !survived
		},
		gen.AlphaString(),
		gen.IntRange(0, len(SourceColumns)-1),
		gen.Float64Range(0, 1e9),
	))

	properties.TestingRun(t)
}
