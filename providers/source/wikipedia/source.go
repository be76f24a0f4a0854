package wikipedia

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/leofalp/worldstats/core/dataset"
	"github.com/leofalp/worldstats/core/extract"
	"github.com/leofalp/worldstats/internal/utils"
)

// RowParser turns one raw row into at most one dataset entry, recording a
// failure on b when the row has to be skipped.
type RowParser func(row extract.RawRow, b *dataset.Builder)

// Source is one scraped page.
type Source struct {
	// Name identifies the source and names its CSV file.
	Name string
	// Column is the merged-table column the source fills.
	Column string
	URL    string
	// Selector picks the table out of the page.
	Selector extract.TableSelector
	// HeaderRows leading rows are skipped unconditionally.
	HeaderRows int
	// Limit caps the accepted rows; zero means no cap.
	Limit int
	Parse RowParser
}

// Document parses an HTML body.
func Document(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Build locates the source table in doc and parses its rows. It also returns
// the located table so callers can snapshot it. When the table is missing the
// dataset is empty and the error wraps extract.ErrTableNotFound.
func (s Source) Build(doc *goquery.Document) (*dataset.Dataset, *goquery.Selection, error) {
	table, rows, err := extract.Extract(doc, s.Selector, extract.RowOptions{SkipHeaderRows: s.HeaderRows})
	if err != nil {
		return dataset.Empty(s.Name, s.Column), nil, fmt.Errorf("%s: %w", s.Name, err)
	}

	b := dataset.NewBuilder(s.Name, s.Column, s.Limit)
	for _, row := range rows {
		if b.Full() {
			break
		}
		s.Parse(row, b)
	}
	return b.Build(), table, nil
}

// fail records a skipped row with its cell texts shortened for logging.
func fail(b *dataset.Builder, row extract.RawRow, kind dataset.FailureKind, reason string) {
	texts := row.Texts()
	for i, t := range texts {
		texts[i] = utils.TruncateString(t, 60)
	}
	b.Fail(dataset.RowFailure{Row: row.Index, Kind: kind, Reason: reason, Cells: texts})
}
