package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pages holds the fixture page of every source.
var pages = map[string]string{
	"population":        "population.html",
	"area":              "area.html",
	"gdp":               "gdp.html",
	"military_spending": "military.html",
	"hdi":               "hdi.html",
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--env-file", ""))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeSources writes an override file pointing every source at the pipeline
// fixtures.
func writeSources(t *testing.T) string {
	t.Helper()
	fixtures, err := filepath.Abs(filepath.Join("..", "..", "core", "pipeline", "testdata"))
	require.NoError(t, err)

	var b strings.Builder
	b.WriteString("sources:\n")
	for source, page := range pages {
		fmt.Fprintf(&b, "  %s:\n    url: %s\n", source, filepath.Join(fixtures, page))
	}
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func scrape(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	stdout, _, err := execute(t, "scrape", "-o", dir, "--sources", writeSources(t), "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, stdout, "merged 2 countries (1 dropped without population or HDI)")
	return dir
}

func TestScrape_PrintsSourceSummary(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := execute(t, "scrape", "-o", dir, "--sources", writeSources(t), "--concurrency", "3", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, stdout, "SOURCE")
	assert.Contains(t, stdout, "2 (missing_value=1, no_country=1)")
	assert.Contains(t, stdout, filepath.Join(dir, "merged_data.csv"))
	assert.FileExists(t, filepath.Join(dir, "military_spending.csv"))
}

func TestScrape_RejectsBadConcurrency(t *testing.T) {
	_, _, err := execute(t, "scrape", "-o", t.TempDir(), "--concurrency", "0")
	assert.ErrorContains(t, err, "concurrency")
}

func TestMerge_RebuildsMergedFile(t *testing.T) {
	dir := scrape(t)
	merged := filepath.Join(dir, "merged_data.csv")
	want, err := os.ReadFile(merged)
	require.NoError(t, err)
	require.NoError(t, os.Remove(merged))

	stdout, _, err := execute(t, "merge", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "merged 2 countries")

	got, err := os.ReadFile(merged)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestReport_FiltersAndExports(t *testing.T) {
	dir := scrape(t)
	out := filepath.Join(t.TempDir(), "filtered.csv")

	stdout, _, err := execute(t, "report", "-o", dir, "--min-pop", "1.5", "--corr", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "countries")
	assert.Contains(t, stdout, "2000000")
	assert.Contains(t, stdout, "gdp_per_capita")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "country,population,area,gdp,military_spending,hdi,hdi_category,"))
	assert.True(t, strings.HasPrefix(lines[1], "B,2000000,1000,30,,0.5,"))
}

func TestReport_TopN(t *testing.T) {
	dir := scrape(t)
	out := filepath.Join(t.TempDir(), "top.csv")

	stdout, _, err := execute(t, "report", "-o", dir, "--top", "1", "--out", out)
	require.NoError(t, err)

	// Metrics cover both filtered countries, not just the printed one.
	assert.Regexp(t, `countries\s+2\n`, stdout)
	assert.Regexp(t, `total population\s+3000000\n`, stdout)
	assert.Contains(t, stdout, "wrote 1 rows")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	// B keeps the category it has among {A, B}.
	assert.Contains(t, string(data), "\nB,2000000,1000,30,,0.5,Low,")
	assert.NotContains(t, string(data), "\nA,")
}

func TestReport_HelpDescribesCategoryFilter(t *testing.T) {
	stdout, _, err := execute(t, "report", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "category in the full merged table")
	assert.Contains(t, stdout, "re-labelled")
	assert.Contains(t, stdout, "survivors are re-categorised")
	assert.Contains(t, stdout, "--top only")
}

func TestReport_RejectsBadFilters(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown category", []string{"--category", "Huge"}, "unknown HDI category"},
		{"negative top", []string{"--top", "-1"}, "--top"},
		{"inverted range", []string{"--min-pop", "10", "--max-pop", "1"}, "above --max-pop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append([]string{"report", "-o", dir}, tt.args...)...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestReport_EmptyDirectory(t *testing.T) {
	stdout, _, err := execute(t, "report", "-o", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "countries")
}

func TestLoadEnv_MissingFileIgnored(t *testing.T) {
	opts := &rootOptions{envFile: filepath.Join(t.TempDir(), "absent.env")}
	assert.NoError(t, opts.loadEnv())
}

func TestLoadEnv_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WORLDSTATS_OUTPUT_DIR=from-file\n"), 0o644))
	t.Setenv("WORLDSTATS_OUTPUT_DIR", "from-env")

	opts := &rootOptions{envFile: path}
	require.NoError(t, opts.loadEnv())
	cfg, err := opts.config()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutputDir)
}
