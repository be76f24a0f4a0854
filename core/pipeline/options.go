package pipeline

import (
	"github.com/leofalp/worldstats/core/config"
	"github.com/leofalp/worldstats/providers/fetch"
	"github.com/leofalp/worldstats/providers/observability"
	"github.com/leofalp/worldstats/providers/source/wikipedia"
)

// Option configures a Pipeline in New.
type Option func(*Pipeline)

// WithFetcher replaces the default fetcher, which reads http(s) URLs over the
// network and everything else from disk.
func WithFetcher(f fetch.Fetcher) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.fetcher = f
		}
	}
}

// WithObserver sets the observability provider. The default records nothing.
func WithObserver(o observability.Provider) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithSources replaces the five built-in sources.
func WithSources(sources ...wikipedia.Source) Option {
	return func(p *Pipeline) {
		p.sources = sources
	}
}

// WithOverrides applies per-source overrides on top of the sources in use,
// after Config.SourcesFile.
func WithOverrides(o config.Overrides) Option {
	return func(p *Pipeline) {
		p.overrides = append(p.overrides, o)
	}
}
