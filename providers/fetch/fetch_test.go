package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestHTTP_Fetch_SendsBrowserHeaders checks the request headers and body.
func TestHTTP_Fetch_SendsBrowserHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte("<table></table>"))
	}))
	defer server.Close()

	body, err := NewHTTP().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != "<table></table>" {
		t.Errorf("body = %q", body)
	}
	if got.Get("User-Agent") != DefaultUserAgent {
		t.Errorf("User-Agent = %q", got.Get("User-Agent"))
	}
	if !strings.Contains(got.Get("Accept"), "text/html") || got.Get("Accept-Language") == "" {
		t.Errorf("missing Accept headers: %v", got)
	}
}

func TestHTTP_Fetch_CustomUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.UserAgent()))
	}))
	defer server.Close()

	body, err := NewHTTP(WithUserAgent("worldstats-test/1.0"), WithUserAgent("")).Fetch(context.Background(), server.URL)
	if err != nil || string(body) != "worldstats-test/1.0" {
		t.Errorf("Fetch() = %q, %v", body, err)
	}
}

// TestHTTP_Fetch_NonSuccessStatus returns a *StatusError that is also
// ErrSourceUnreachable.
func TestHTTP_Fetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewHTTP().Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrSourceUnreachable) {
		t.Fatalf("error %v should wrap ErrSourceUnreachable", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected *StatusError with 503, got %#v", err)
	}
}

func TestHTTP_Fetch_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 11)))
	}))
	defer server.Close()

	_, err := NewHTTP(WithMaxBodySize(10)).Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrSourceUnreachable) || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("expected oversized-body error, got %v", err)
	}

	body, err := NewHTTP(WithMaxBodySize(11)).Fetch(context.Background(), server.URL)
	if err != nil || len(body) != 11 {
		t.Errorf("a body of exactly the cap should pass, got %d bytes, %v", len(body), err)
	}
}

func TestHTTP_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewHTTP(WithTimeout(50 * time.Millisecond)).Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrSourceUnreachable) {
		t.Errorf("expected ErrSourceUnreachable on timeout, got %v", err)
	}
}

func TestHTTP_Fetch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	if _, err := NewHTTP().Fetch(context.Background(), url); !errors.Is(err, ErrSourceUnreachable) {
		t.Errorf("expected ErrSourceUnreachable, got %v", err)
	}
}

func TestFiles_Fetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "area.html")
	if err := os.WriteFile(path, []byte("<p>area</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, ref := range []string{path, "file://" + path} {
		body, err := Files{}.Fetch(context.Background(), ref)
		if err != nil || string(body) != "<p>area</p>" {
			t.Errorf("Fetch(%q) = %q, %v", ref, body, err)
		}
	}

	if _, err := (Files{}).Fetch(context.Background(), filepath.Join(dir, "missing.html")); !errors.Is(err, ErrSourceUnreachable) {
		t.Errorf("missing file should be unreachable, got %v", err)
	}
}

// TestAuto_Dispatch routes by scheme.
func TestAuto_Dispatch(t *testing.T) {
	var calls []string
	record := func(kind string) Fetcher {
		return FetcherFunc(func(ctx context.Context, rawURL string) ([]byte, error) {
			calls = append(calls, kind+":"+rawURL)
			return nil, nil
		})
	}
	a := &Auto{Web: record("web"), Local: record("local")}

	for _, u := range []string{"https://en.wikipedia.org/wiki/X", "HTTP://example.org", "file:///tmp/x.html", "testdata/x.html"} {
		_, _ = a.Fetch(context.Background(), u)
	}
	want := []string{"web:https://en.wikipedia.org/wiki/X", "web:HTTP://example.org", "local:file:///tmp/x.html", "local:testdata/x.html"}
	for i := range want {
		if i >= len(calls) || calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}
