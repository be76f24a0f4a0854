package merge

// Column names shared by the per-source files and the merged file.
const (
	ColumnCountry          = "country"
	ColumnPopulation       = "population"
	ColumnArea             = "area"
	ColumnGDP              = "gdp"
	ColumnMilitarySpending = "military_spending"
	ColumnHDI              = "hdi"
	ColumnDensity          = "density"
	ColumnGDPPerCapita     = "gdp_per_capita"
	ColumnGDPShare         = "gdp_share"
	ColumnHDICategory      = "hdi_category"
)

// SourceColumns are the value columns contributed by the five sources.
var SourceColumns = []string{
	ColumnPopulation,
	ColumnArea,
	ColumnGDP,
	ColumnMilitarySpending,
	ColumnHDI,
}

// NumericColumns are every numeric column of a merged record, in file order.
var NumericColumns = []string{
	ColumnPopulation,
	ColumnArea,
	ColumnGDP,
	ColumnMilitarySpending,
	ColumnHDI,
	ColumnDensity,
	ColumnGDPPerCapita,
	ColumnGDPShare,
}

// FileColumns is the header of merged_data.csv.
var FileColumns = append([]string{ColumnCountry}, NumericColumns...)

// Record is one merged row. A nil field means the value is unknown, which is
// different from zero.
type Record struct {
	Country          string
	Population       *float64
	Area             *float64
	GDP              *float64
	MilitarySpending *float64
	HDI              *float64
	Density          *float64
	GDPPerCapita     *float64
	GDPShare         *float64
	// HDICategory is the quartile label of HDI within the table the record
	// belongs to. It is empty when HDI is unknown.
	HDICategory string
}

// Get returns the numeric field named column, or nil for unknown names.
func (r Record) Get(column string) *float64 {
	switch column {
	case ColumnPopulation:
		return r.Population
	case ColumnArea:
		return r.Area
	case ColumnGDP:
		return r.GDP
	case ColumnMilitarySpending:
		return r.MilitarySpending
	case ColumnHDI:
		return r.HDI
	case ColumnDensity:
		return r.Density
	case ColumnGDPPerCapita:
		return r.GDPPerCapita
	case ColumnGDPShare:
		return r.GDPShare
	}
	return nil
}

// With returns a copy of r with the numeric field named column set to v.
// Unknown column names return r unchanged.
func (r Record) With(column string, v *float64) Record {
	if v != nil {
		value := *v
		v = &value
	}
	switch column {
	case ColumnPopulation:
		r.Population = v
	case ColumnArea:
		r.Area = v
	case ColumnGDP:
		r.GDP = v
	case ColumnMilitarySpending:
		r.MilitarySpending = v
	case ColumnHDI:
		r.HDI = v
	case ColumnDensity:
		r.Density = v
	case ColumnGDPPerCapita:
		r.GDPPerCapita = v
	case ColumnGDPShare:
		r.GDPShare = v
	}
	return r
}
