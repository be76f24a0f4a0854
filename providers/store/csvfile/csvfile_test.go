package csvfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leofalp/worldstats/core/dataset"
	"github.com/leofalp/worldstats/core/merge"
	"github.com/leofalp/worldstats/internal/utils"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, s.Prepare())
	return s
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestWriteDataset(t *testing.T) {
	s := newStore(t)
	b := dataset.NewBuilder("population", merge.ColumnPopulation, 0)
	b.Add("India", 1417492000)
	b.Add("Côte d'Ivoire", 31934230)
	b.Add("Bosnia, Herzegovina", 3164253)

	path, err := s.WriteDataset(b.Build())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "population.csv"), path)
	assert.Equal(t, "country,population\n"+
		"India,1417492000\n"+
		"Côte d'Ivoire,31934230\n"+
		"\"Bosnia, Herzegovina\",3164253\n", readFile(t, path))
}

// TestWriteDataset_Empty produces a header-only file for a failed source.
func TestWriteDataset_Empty(t *testing.T) {
	s := newStore(t)
	path, err := s.WriteDataset(dataset.Empty("hdi", merge.ColumnHDI))
	require.NoError(t, err)
	assert.Equal(t, "country,hdi\n", readFile(t, path))
}

// TestWriteMerged writes nulls as empty fields and never uses exponents.
func TestWriteMerged(t *testing.T) {
	s := newStore(t)
	table := merge.Table{
		{Country: "A", Population: utils.Ptr(1e9), HDI: utils.Ptr(0.00001), GDPShare: utils.Ptr(12.5)},
		{Country: "B", Area: utils.Ptr(0.0)},
	}

	path, err := s.WriteMerged(table)
	require.NoError(t, err)
	assert.Equal(t, "country,population,area,gdp,military_spending,hdi,density,gdp_per_capita,gdp_share\n"+
		"A,1000000000,,,,0.00001,,,12.5\n"+
		"B,,0,,,,,,\n", readFile(t, path))
}

func TestEncodeTable_WithCategory(t *testing.T) {
	var buf bytes.Buffer
	table := merge.Table{{Country: "Norway", HDI: utils.Ptr(0.97), HDICategory: "Very High"}}

	require.NoError(t, EncodeTable(&buf, table, []string{merge.ColumnCountry, merge.ColumnHDI, merge.ColumnHDICategory}))
	assert.Equal(t, "country,hdi,hdi_category\nNorway,0.97,Very High\n", buf.String())
}

// TestReadDataset_RoundTrip reads back exactly what was written.
func TestReadDataset_RoundTrip(t *testing.T) {
	s := newStore(t)
	b := dataset.NewBuilder("gdp", merge.ColumnGDP, 0)
	b.Add("United States", 30507.217)
	b.Add("Tuvalu", 0.062)
	_, err := s.WriteDataset(b.Build())
	require.NoError(t, err)

	got, err := s.ReadDataset("gdp", merge.ColumnGDP)
	require.NoError(t, err)
	assert.Equal(t, []string{"United States", "Tuvalu"}, got.Countries())
	v, ok := got.Value("Tuvalu")
	assert.True(t, ok)
	assert.Equal(t, 0.062, v)
}

func TestReadDataset_MissingFileIsEmpty(t *testing.T) {
	got, err := newStore(t).ReadDataset("area", merge.ColumnArea)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, merge.ColumnArea, got.Column())
}

// TestReadDataset_BadRows records failures instead of aborting.
func TestReadDataset_BadRows(t *testing.T) {
	s := newStore(t)
	content := "country,hdi\nNorway,0.97\nNowhere,\nMars,high\n,0.5\n"
	require.NoError(t, os.WriteFile(s.Path("hdi"), []byte(content), 0o644))

	got, err := s.ReadDataset("hdi", merge.ColumnHDI)
	require.NoError(t, err)
	assert.Equal(t, []string{"Norway"}, got.Countries())
	assert.Equal(t, map[dataset.FailureKind]int{
		dataset.KindMissingValue: 1,
		dataset.KindBadNumber:    1,
		dataset.KindNoCountry:    1,
	}, got.FailureCounts())
}

func TestReadDataset_BadHeader(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(s.Path("hdi"), []byte("nation,value\nNorway,0.97\n"), 0o644))

	_, err := s.ReadDataset("hdi", merge.ColumnHDI)
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestReadAll_OrderAndMissingFiles(t *testing.T) {
	s := newStore(t)
	b := dataset.NewBuilder(merge.ColumnArea, merge.ColumnArea, 0)
	b.Add("Monaco", 2.02)
	_, err := s.WriteDataset(b.Build())
	require.NoError(t, err)

	sets, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, sets, len(merge.SourceColumns))
	for i, d := range sets {
		assert.Equal(t, merge.SourceColumns[i], d.Column())
	}
	assert.Equal(t, 1, sets[1].Len())
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		0:          "0",
		1417492000: "1417492000",
		0.00012:    "0.00012",
		-3.5:       "-3.5",
		1e21:       "1000000000000000000000",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatFloat(in))
	}
}

func TestPrepare_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, New(dir).Prepare())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
