package extract

import (
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// ErrTableNotFound is returned when no table in the document satisfies the
// selector.
var ErrTableNotFound = errors.New("extract: table not found")

// RawRow is one table row in document order. Index is the row's position
// among all rows of the table, header rows included.
type RawRow struct {
	Index int
	Cells []Cell
}

// Len returns the number of cells in the row.
func (r RawRow) Len() int {
	return len(r.Cells)
}

// Data returns only the <td> cells of the row, in order.
func (r RawRow) Data() []Cell {
	data := make([]Cell, 0, len(r.Cells))
	for _, c := range r.Cells {
		if !c.Header {
			data = append(data, c)
		}
	}
	return data
}

// Texts returns the visible text of every cell, mostly for diagnostics.
func (r RawRow) Texts() []string {
	texts := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		texts[i] = c.Text
	}
	return texts
}

// RowOptions controls how rows are read from a located table.
type RowOptions struct {
	// SkipHeaderRows is the number of leading rows dropped unconditionally.
	SkipHeaderRows int
}

// Locate returns the first table in document order matched by sel.
func Locate(doc *goquery.Document, sel TableSelector) (*goquery.Selection, error) {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if sel.Match(table) {
			found = table
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, sel)
	}
	return found, nil
}

// Rows returns the data rows of table after skipping the header rows. Rows of
// tables nested inside a cell are not included.
func Rows(table *goquery.Selection, opts RowOptions) []RawRow {
	var rows []RawRow
	ownRows(table).Each(func(i int, tr *goquery.Selection) {
		if i < opts.SkipHeaderRows {
			return
		}
		row := RawRow{Index: i}
		tr.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
			row.Cells = append(row.Cells, newCell(cell))
		})
		rows = append(rows, row)
	})
	return rows
}

// Extract locates the table matched by sel and returns it with its data rows.
// When no table matches it returns no rows and an error wrapping
// [ErrTableNotFound].
func Extract(doc *goquery.Document, sel TableSelector, opts RowOptions) (*goquery.Selection, []RawRow, error) {
	table, err := Locate(doc, sel)
	if err != nil {
		return nil, nil, err
	}
	return table, Rows(table, opts), nil
}

// ownRows selects the <tr> elements that belong to table itself.
func ownRows(table *goquery.Selection) *goquery.Selection {
	if table.Length() == 0 {
		return table
	}
	owner := table.Get(0)
	return table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		parent := tr.Closest("table")
		return parent.Length() > 0 && parent.Get(0) == owner
	})
}
