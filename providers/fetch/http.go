package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/leofalp/worldstats/internal/utils"
	"github.com/leofalp/worldstats/providers/observability"
)

const (
	// DefaultTimeout bounds one request, body included.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent because the scraped site rejects obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	// MaxBodySize caps a response body (10 MiB).
	MaxBodySize int64 = 10 * 1024 * 1024

	dialTimeout           = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 15 * time.Second
	idleConnTimeout       = 90 * time.Second

	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguageHeader = "en-US,en;q=0.9"
)

// HTTP fetches documents over HTTP(S).
type HTTP struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// Option configures an HTTP fetcher.
type Option func(*HTTP)

// WithUserAgent overrides DefaultUserAgent. Empty keeps the default.
func WithUserAgent(ua string) Option {
	return func(h *HTTP) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithTimeout overrides DefaultTimeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) {
		if d > 0 {
			h.client.Timeout = d
		}
	}
}

// WithClient replaces the HTTP client, e.g. with an httptest server client.
func WithClient(c *http.Client) Option {
	return func(h *HTTP) {
		if c != nil {
			h.client = c
		}
	}
}

// WithMaxBodySize overrides MaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(h *HTTP) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

// NewHTTP returns an HTTP fetcher with a dedicated transport.
func NewHTTP(opts ...Option) *HTTP {
	h := &HTTP{
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: dialTimeout, KeepAlive: 30 * time.Second}).DialContext,
				TLSHandshakeTimeout:   tlsHandshakeTimeout,
				ResponseHeaderTimeout: responseHeaderTimeout,
				IdleConnTimeout:       idleConnTimeout,
				MaxIdleConns:          20,
				MaxIdleConnsPerHost:   5,
			},
		},
		userAgent: DefaultUserAgent,
		maxBody:   MaxBodySize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Fetch performs one GET. Any failure wraps ErrSourceUnreachable; a non-2xx
// response is a *StatusError.
func (h *HTTP) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	span := observability.SpanFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)

	if span != nil {
		span.AddEvent(observability.EventFetchRequest,
			observability.String(observability.AttrHTTPMethod, http.MethodGet),
			observability.String(observability.AttrHTTPURL, rawURL),
		)
	}

	timer := utils.NewTimer()
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrSourceUnreachable, rawURL, err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	// One byte past the cap tells an oversized body from one that fits exactly.
	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrSourceUnreachable, rawURL, err)
	}
	if int64(len(body)) > h.maxBody {
		return nil, fmt.Errorf("%w: %s: body exceeds %d bytes", ErrSourceUnreachable, rawURL, h.maxBody)
	}

	if span != nil {
		span.AddEvent(observability.EventFetchResponse,
			observability.Int(observability.AttrHTTPStatusCode, resp.StatusCode),
			observability.Int(observability.AttrBytes, len(body)),
			observability.Duration(observability.AttrDuration, timer.Stop()),
		)
	}
	return body, nil
}
