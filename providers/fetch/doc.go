// Package fetch retrieves the HTML documents the pipeline scrapes.
//
// [HTTP] issues a single browser-like GET per URL with a tuned transport, a
// request timeout and a capped body; [Files] reads file:// URLs and plain
// paths so runs can work offline against saved pages; [Auto] picks one of
// them per URL. Every failure to obtain a document wraps
// [ErrSourceUnreachable]. There are no retries.
package fetch
