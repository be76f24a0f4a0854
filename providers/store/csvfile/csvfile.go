package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leofalp/worldstats/core/dataset"
	"github.com/leofalp/worldstats/core/merge"
	"github.com/leofalp/worldstats/core/normalize"
	"github.com/leofalp/worldstats/internal/utils"
)

// MergedName is the base name of the merged table file.
const MergedName = "merged_data"

const filePerm = 0o644

// ErrBadHeader is returned when a file's header does not match the expected
// columns.
var ErrBadHeader = errors.New("csvfile: unexpected header")

// Store reads and writes CSV files under one directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir. Nothing is created until Prepare.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Prepare creates the output directory if needed.
func (s *Store) Prepare() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", s.dir, err)
	}
	return nil
}

// Path returns the file path for name, e.g. Path("gdp") is "<dir>/gdp.csv".
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// WriteDataset writes d to "<source>.csv" with the header (country, column).
// An empty dataset produces a header-only file.
func (s *Store) WriteDataset(d *dataset.Dataset) (string, error) {
	path := s.Path(d.Source())
	err := utils.WriteFileAtomic(path, filePerm, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{merge.ColumnCountry, d.Column()}); err != nil {
			return err
		}
		for _, country := range d.Countries() {
			v, _ := d.Value(country)
			if err := cw.Write([]string{country, FormatFloat(v)}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriteMerged writes t to merged_data.csv with merge.FileColumns.
func (s *Store) WriteMerged(t merge.Table) (string, error) {
	return s.WriteTable(MergedName, t, merge.FileColumns)
}

// WriteTable writes the given columns of t to "<name>.csv".
func (s *Store) WriteTable(name string, t merge.Table, columns []string) (string, error) {
	path := s.Path(name)
	err := utils.WriteFileAtomic(path, filePerm, func(w io.Writer) error {
		return EncodeTable(w, t, columns)
	})
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// EncodeTable writes the given columns of t as CSV to w. Besides the numeric
// columns, "country" and "hdi_category" are accepted.
func EncodeTable(w io.Writer, t merge.Table, columns []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, r := range t {
		for i, column := range columns {
			switch column {
			case merge.ColumnCountry:
				record[i] = r.Country
			case merge.ColumnHDICategory:
				record[i] = r.HDICategory
			default:
				record[i] = formatNullable(r.Get(column))
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadDataset reads "<source>.csv" back into a dataset. A missing file gives
// an empty dataset, matching what a failed source writes. Rows whose value is
// not a number are recorded as failures.
func (s *Store) ReadDataset(source, column string) (*dataset.Dataset, error) {
	path := s.Path(source)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return dataset.Empty(source, column), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer utils.CloseWithLog(f)

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return dataset.Empty(source, column), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if header[0] != merge.ColumnCountry || header[1] != column {
		return nil, fmt.Errorf("%w in %s: %v, want [%s %s]", ErrBadHeader, path, header, merge.ColumnCountry, column)
	}

	b := dataset.NewBuilder(source, column, 0)
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		v, err := normalize.ParseFloat(rec[1])
		if err != nil {
			b.Fail(dataset.RowFailure{Row: line, Kind: dataset.KindOf(err), Reason: err.Error(), Cells: rec})
			continue
		}
		if !b.Add(strings.TrimSpace(rec[0]), v) {
			b.Fail(dataset.RowFailure{Row: line, Kind: dataset.KindNoCountry, Reason: "empty country", Cells: rec})
		}
	}
	return b.Build(), nil
}

// ReadAll reads the per-source file of every column in merge.SourceColumns.
func (s *Store) ReadAll() ([]*dataset.Dataset, error) {
	sets := make([]*dataset.Dataset, 0, len(merge.SourceColumns))
	for _, column := range merge.SourceColumns {
		d, err := s.ReadDataset(column, column)
		if err != nil {
			return nil, err
		}
		sets = append(sets, d)
	}
	return sets, nil
}

// FormatFloat renders v in the shortest form that parses back to v, without
// an exponent.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatFloat(*v)
}
