package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrSourceUnreachable is wrapped by every error that leaves a source without
// a document: transport failures, non-2xx statuses, oversized bodies and
// unreadable files.
var ErrSourceUnreachable = errors.New("source unreachable")

// Fetcher returns the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, rawURL string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f(ctx, rawURL)
}

// StatusError reports a response with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: GET %s: unexpected status %s", ErrSourceUnreachable, e.URL, e.Status)
}

// Unwrap makes errors.Is(err, ErrSourceUnreachable) hold.
func (e *StatusError) Unwrap() error {
	return ErrSourceUnreachable
}

// Auto dispatches http and https URLs to web and everything else to local.
type Auto struct {
	Web   Fetcher
	Local Fetcher
}

// NewAuto returns an Auto using an HTTP fetcher built from opts and Files.
func NewAuto(opts ...Option) *Auto {
	return &Auto{Web: NewHTTP(opts...), Local: Files{}}
}

func (a *Auto) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if IsRemote(rawURL) {
		return a.Web.Fetch(ctx, rawURL)
	}
	return a.Local.Fetch(ctx, rawURL)
}

// IsRemote reports whether rawURL uses the http or https scheme.
func IsRemote(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
