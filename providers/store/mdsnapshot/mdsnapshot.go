// Package mdsnapshot saves the table located for each source as a Markdown
// file, so a run leaves a readable copy of exactly what was scraped.
package mdsnapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"

	"github.com/leofalp/worldstats/internal/utils"
)

// Writer renders tables to "<dir>/<source>.md".
type Writer struct {
	dir  string
	conv *converter.Converter
}

// New returns a Writer for dir. The directory is created on first write.
func New(dir string) *Writer {
	return &Writer{
		dir: dir,
		conv: converter.NewConverter(converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		)),
	}
}

// Render converts the table's HTML to Markdown.
func (w *Writer) Render(tbl *goquery.Selection) (string, error) {
	if tbl == nil || tbl.Length() == 0 {
		return "", fmt.Errorf("mdsnapshot: no table to render")
	}
	html, err := goquery.OuterHtml(tbl)
	if err != nil {
		return "", fmt.Errorf("mdsnapshot: read table html: %w", err)
	}
	md, err := w.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("mdsnapshot: convert: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// Write renders tbl and stores it as the snapshot of source, headed by the
// source name and URL. It returns the file path.
func (w *Writer) Write(source, url string, tbl *goquery.Selection) (string, error) {
	md, err := w.Render(tbl)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("mdsnapshot: create %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, source+".md")
	err = utils.WriteFileAtomic(path, 0o644, func(out io.Writer) error {
		_, err := fmt.Fprintf(out, "# %s\n\nSource: <%s>\n\n%s\n", source, url, md)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("mdsnapshot: write %s: %w", path, err)
	}
	return path, nil
}
