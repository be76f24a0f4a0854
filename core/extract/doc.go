// Package extract locates a single table inside an HTML document and returns
// its data rows as loosely typed cells.
//
// Tables are chosen with a pluggable [TableSelector]: [ByAttribute] matches on
// structural attributes such as the class list, [ByHeaderKeywords] scans the
// header row for marker text, and [ByCSS] accepts any CSS selector. Header
// rows are skipped by count, never by sniffing content, because each source
// page has a known layout.
//
// A selector that matches nothing yields [ErrTableNotFound]. Callers treat it
// as a per-source condition and carry on with the other sources.
package extract
