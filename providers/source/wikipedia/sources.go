package wikipedia

import (
	"strings"

	"github.com/leofalp/worldstats/core/dataset"
	"github.com/leofalp/worldstats/core/extract"
	"github.com/leofalp/worldstats/core/merge"
	"github.com/leofalp/worldstats/core/normalize"
)

const baseURL = "https://en.wikipedia.org/wiki/"

// DefaultPopulationLimit is the number of countries kept from the population
// table.
const DefaultPopulationLimit = 50

var wikitable = extract.ByAttribute{Tokens: []string{"wikitable"}}

// Sources returns the five sources in pipeline order. populationLimit caps the
// population rows; zero or less means DefaultPopulationLimit.
func Sources(populationLimit int) []Source {
	if populationLimit <= 0 {
		populationLimit = DefaultPopulationLimit
	}
	return []Source{
		Population(populationLimit),
		Area(),
		GDP(),
		MilitarySpending(),
		HDI(),
	}
}

// Population reads the first wikitable of the population list. The country
// is the first cell whose anchor has a title; the value is the first
// right-aligned cell.
func Population(limit int) Source {
	return Source{
		Name:       merge.ColumnPopulation,
		Column:     merge.ColumnPopulation,
		URL:        baseURL + "List_of_countries_and_dependencies_by_population",
		Selector:   wikitable,
		HeaderRows: 1,
		Limit:      limit,
		Parse:      parsePopulation,
	}
}

func parsePopulation(row extract.RawRow, b *dataset.Builder) {
	cells := row.Data()
	if len(cells) < 2 {
		fail(b, row, dataset.KindShortRow, "fewer than 2 data cells")
		return
	}

	country := ""
	for _, c := range cells {
		if c.LinkTitle != "" {
			country = normalize.CountryName(c.LinkTitle, c.LinkText)
			break
		}
	}
	if country == "" {
		fail(b, row, dataset.KindNoCountry, "no cell links to a titled page")
		return
	}

	for _, c := range cells {
		if !rightAligned(c.Style) {
			continue
		}
		n, err := normalize.ParseInt(c.Text)
		if err != nil {
			fail(b, row, dataset.KindOf(err), err.Error())
			return
		}
		b.Add(country, float64(n))
		return
	}
	fail(b, row, dataset.KindMissingValue, "no right-aligned value cell")
}

func rightAligned(style string) bool {
	return strings.Contains(strings.ReplaceAll(strings.ToLower(style), " ", ""), "text-align:right")
}

// Area reads the sortable area table; the country is the link in the second
// data cell and the area (km²) the first token of the third.
func Area() Source {
	return Source{
		Name:   merge.ColumnArea,
		Column: merge.ColumnArea,
		URL:    baseURL + "List_of_countries_and_dependencies_by_area",
		Selector: extract.ByAttribute{
			Tokens:   []string{"wikitable", "sortable", "sticky-header", "col2left"},
			MatchAll: true,
		},
		HeaderRows: 1,
		Parse:      parseArea,
	}
}

func parseArea(row extract.RawRow, b *dataset.Builder) {
	cells := row.Data()
	if len(cells) < 3 {
		fail(b, row, dataset.KindShortRow, "fewer than 3 data cells")
		return
	}
	if !cells[1].HasLink {
		fail(b, row, dataset.KindNoCountry, "country cell has no link")
		return
	}
	country := normalize.CountryName(cells[1].LinkTitle, cells[1].LinkText)
	if country == "" {
		fail(b, row, dataset.KindNoCountry, "empty country link")
		return
	}
	addFloat(b, row, country, cells[2].Text, nil)
}

// GDP reads the nominal GDP table, which has two header rows. The country is
// the cell text outside flag and sort-key spans; values are in millions of
// USD and stored in billions.
func GDP() Source {
	return Source{
		Name:   merge.ColumnGDP,
		Column: merge.ColumnGDP,
		URL:    baseURL + "List_of_countries_by_GDP_(nominal)",
		Selector: extract.ByAttribute{
			Tokens: []string{"wikitable", "sortable", "sticky-header-multi", "static-row-numbers", "jquery-tablesorter"},
		},
		HeaderRows: 2,
		Parse:      parseGDP,
	}
}

func parseGDP(row extract.RawRow, b *dataset.Builder) {
	cells := row.Data()
	if len(cells) < 2 {
		fail(b, row, dataset.KindShortRow, "fewer than 2 data cells")
		return
	}
	country := normalize.CleanText(normalize.StripFootnotes(cells[0].OwnText))
	if country == "" {
		country = normalize.CleanText(normalize.StripFootnotes(cells[0].LinkText))
	}
	if country == "" {
		fail(b, row, dataset.KindNoCountry, "empty country cell")
		return
	}
	addFloat(b, row, country, cells[1].Text, normalize.MillionsToBillions)
}

// MilitarySpending reads the first wikitable whose header names both
// "Spending" and "Country". Header cells count as cells on this page.
func MilitarySpending() Source {
	return Source{
		Name:       merge.ColumnMilitarySpending,
		Column:     merge.ColumnMilitarySpending,
		URL:        baseURL + "List_of_countries_by_military_expenditures",
		Selector:   extract.ByHeaderKeywords{Keywords: []string{"Spending", "Country"}, Within: wikitable},
		HeaderRows: 1,
		Parse:      parseMilitary,
	}
}

func parseMilitary(row extract.RawRow, b *dataset.Builder) {
	if row.Len() < 3 {
		fail(b, row, dataset.KindShortRow, "fewer than 3 cells")
		return
	}
	name, _, _ := strings.Cut(row.Cells[1].Text, "[")
	country := normalize.CleanText(name)
	if country == "" {
		fail(b, row, dataset.KindNoCountry, "empty country cell")
		return
	}
	addFloat(b, row, country, row.Cells[2].Text, nil)
}

// HDI reads the first wikitable whose header names both "HDI value" and
// "Country". The country is the link in the row's first header cell.
func HDI() Source {
	return Source{
		Name:       merge.ColumnHDI,
		Column:     merge.ColumnHDI,
		URL:        baseURL + "List_of_countries_by_Human_Development_Index",
		Selector:   extract.ByHeaderKeywords{Keywords: []string{"HDI value", "Country"}, Within: wikitable},
		HeaderRows: 1,
		Parse:      parseHDI,
	}
}

func parseHDI(row extract.RawRow, b *dataset.Builder) {
	if row.Len() < 4 {
		fail(b, row, dataset.KindShortRow, "fewer than 4 cells")
		return
	}
	// Repeated header rows inside the table body.
	if row.Cells[3].Text == "HDI value" {
		return
	}

	var country string
	for _, c := range row.Cells {
		if c.Header {
			if c.HasLink {
				country = normalize.CountryName(c.LinkTitle, c.LinkText)
			}
			break
		}
	}
	if country == "" {
		fail(b, row, dataset.KindNoCountry, "no linked header cell")
		return
	}
	addFloat(b, row, country, row.Cells[3].Text, nil)
}

// addFloat parses text, applies convert when set and adds the value.
func addFloat(b *dataset.Builder, row extract.RawRow, country, text string, convert func(float64) float64) {
	v, err := normalize.ParseFloat(text)
	if err != nil {
		fail(b, row, dataset.KindOf(err), err.Error())
		return
	}
	if convert != nil {
		v = convert(v)
	}
	b.Add(country, v)
}
