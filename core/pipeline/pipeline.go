package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leofalp/worldstats/core/config"
	"github.com/leofalp/worldstats/core/dataset"
	"github.com/leofalp/worldstats/core/derive"
	"github.com/leofalp/worldstats/core/extract"
	"github.com/leofalp/worldstats/core/merge"
	"github.com/leofalp/worldstats/internal/utils"
	"github.com/leofalp/worldstats/providers/fetch"
	"github.com/leofalp/worldstats/providers/observability"
	"github.com/leofalp/worldstats/providers/source/wikipedia"
	"github.com/leofalp/worldstats/providers/store/csvfile"
	"github.com/leofalp/worldstats/providers/store/mdsnapshot"
)

// Pipeline scrapes the configured sources into an output directory.
type Pipeline struct {
	cfg       config.Config
	fetcher   fetch.Fetcher
	observer  observability.Provider
	sources   []wikipedia.Source
	overrides []config.Overrides
	store     *csvfile.Store
	snapshots *mdsnapshot.Writer
}

// New validates cfg and builds a pipeline. Overrides from cfg.SourcesFile are
// loaded here, so a bad override file fails before anything is fetched.
func New(cfg config.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:      cfg,
		observer: observability.Nop(),
		sources:  wikipedia.Sources(cfg.PopulationLimit),
		store:    csvfile.New(cfg.OutputDir),
	}
	if cfg.SourcesFile != "" {
		o, err := config.LoadOverrides(cfg.SourcesFile)
		if err != nil {
			return nil, err
		}
		p.overrides = append(p.overrides, o)
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.fetcher == nil {
		p.fetcher = fetch.NewAuto(fetch.WithUserAgent(cfg.UserAgent), fetch.WithTimeout(cfg.Timeout))
	}
	if cfg.Snapshots {
		p.snapshots = mdsnapshot.New(cfg.SnapshotDir())
	}
	for _, o := range p.overrides {
		p.sources = applyOverrides(p.sources, o)
	}
	return p, nil
}

// Sources returns the sources the pipeline will scrape, overrides applied.
func (p *Pipeline) Sources() []wikipedia.Source {
	return append([]wikipedia.Source(nil), p.sources...)
}

func applyOverrides(sources []wikipedia.Source, o config.Overrides) []wikipedia.Source {
	out := make([]wikipedia.Source, len(sources))
	for i, s := range sources {
		if ov, ok := o[s.Name]; ok {
			if ov.URL != "" {
				s.URL = ov.URL
			}
			if ov.Selector != "" {
				s.Selector = extract.ByCSS{Selector: ov.Selector}
			}
			s.HeaderRows = utils.Deref(ov.HeaderRows, s.HeaderRows)
			s.Limit = utils.Deref(ov.Limit, s.Limit)
		}
		out[i] = s
	}
	return out
}

// Run scrapes every source, writes the per-source files and writes the merged
// table. Per-source problems end up in the report; the returned error is only
// set when the output directory or the merged file cannot be written.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Sources: make([]SourceReport, len(p.sources))}
	timer := utils.NewTimer()

	ctx = observability.ContextWithObserver(ctx, p.observer)
	ctx, span := p.observer.StartSpan(ctx, observability.SpanRun,
		observability.String(observability.AttrRunID, report.RunID),
		observability.Int("sources", len(p.sources)),
		observability.Int("concurrency", p.cfg.Concurrency),
	)
	defer span.End()

	if err := p.store.Prepare(); err != nil {
		span.RecordError(err)
		span.SetStatus(observability.StatusError, "output directory")
		return report, err
	}

	sets := make([]*dataset.Dataset, len(p.sources))
	if p.cfg.Concurrency > 1 {
		var g errgroup.Group
		g.SetLimit(p.cfg.Concurrency)
		for i, s := range p.sources {
			g.Go(func() error {
				sets[i], report.Sources[i] = p.scrape(ctx, report.RunID, s)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, s := range p.sources {
			sets[i], report.Sources[i] = p.scrape(ctx, report.RunID, s)
		}
	}

	for i, d := range sets {
		path, err := p.store.WriteDataset(d)
		if err != nil {
			report.Sources[i].WriteErr = err
			p.observer.Error(ctx, "writing source file failed",
				observability.String(observability.AttrSource, d.Source()),
				observability.Error(err),
			)
			continue
		}
		report.Sources[i].Path = path
		p.observer.Debug(ctx, "source file written",
			observability.String(observability.AttrSource, d.Source()),
			observability.String(observability.AttrPath, path),
		)
	}

	merged, dropped := p.merge(ctx, sets)
	report.Countries = len(merged)
	report.Dropped = dropped

	path, err := p.store.WriteMerged(merged)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(observability.StatusError, "merged file")
		return report, fmt.Errorf("write merged table: %w", err)
	}
	report.MergedPath = path
	report.Duration = timer.Stop()

	span.SetAttributes(
		observability.Int(observability.AttrCountries, report.Countries),
		observability.Int(observability.AttrDropped, report.Dropped),
	)
	span.SetStatus(observability.StatusOK, "")
	p.observer.Info(ctx, "run complete",
		observability.String(observability.AttrRunID, report.RunID),
		observability.Int(observability.AttrCountries, report.Countries),
		observability.Int(observability.AttrDropped, report.Dropped),
		observability.String(observability.AttrPath, path),
		observability.Duration(observability.AttrDuration, report.Duration),
	)
	return report, nil
}

// scrape fetches and parses one source. It never fails: on any error the
// dataset is empty and the error is kept in the source report.
func (p *Pipeline) scrape(ctx context.Context, runID string, s wikipedia.Source) (*dataset.Dataset, SourceReport) {
	sr := SourceReport{Name: s.Name, URL: s.URL}
	ctx, span := p.observer.StartSpan(ctx, observability.SpanSource,
		observability.String(observability.AttrRunID, runID),
		observability.String(observability.AttrSource, s.Name),
		observability.String(observability.AttrURL, s.URL),
	)
	defer span.End()

	d, err := p.build(ctx, span, s, &sr)
	if err != nil {
		sr.Err = err
		p.sourceFailed(ctx, span, s, err)
		return dataset.Empty(s.Name, s.Column), sr
	}

	sr.Rows = d.Len()
	sr.Failures = d.FailureCounts()
	p.recordRows(ctx, span, d)
	span.SetStatus(observability.StatusOK, "")
	return d, sr
}

func (p *Pipeline) build(ctx context.Context, span observability.Span, s wikipedia.Source, sr *SourceReport) (*dataset.Dataset, error) {
	timer := utils.NewTimer()
	body, err := p.fetcher.Fetch(ctx, s.URL)
	elapsed := timer.Stop()
	p.observer.Histogram(observability.MetricFetchDuration).Record(ctx, float64(elapsed.Milliseconds()),
		observability.String(observability.AttrSource, s.Name),
	)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(observability.Int(observability.AttrBytes, len(body)))

	doc, err := wikipedia.Document(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	d, table, err := s.Build(doc)
	if err != nil {
		return nil, err
	}
	span.AddEvent(observability.EventTableLocated,
		observability.String(observability.AttrSelector, s.Selector.String()),
	)

	if p.snapshots != nil {
		path, err := p.snapshots.Write(s.Name, s.URL, table)
		if err != nil {
			p.observer.Warn(ctx, "snapshot failed",
				observability.String(observability.AttrSource, s.Name),
				observability.Error(err),
			)
		} else {
			sr.Snapshot = path
		}
	}
	return d, nil
}

// Merge outer-joins the datasets, drops the rows without population or HDI,
// computes the derived columns and rounds every number. It also returns how
// many joined rows were dropped.
func Merge(sets ...*dataset.Dataset) (merge.Table, int) {
	joined := merge.Outer(sets...)
	complete := merge.DropIncomplete(joined)
	return derive.SmartRoundAll(derive.Apply(complete)), len(joined) - len(complete)
}

// Remerge rebuilds the merged table from the per-source files of store, the
// way a consumer of the output directory does.
func Remerge(store *csvfile.Store) (merge.Table, []*dataset.Dataset, error) {
	sets, err := store.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("remerge: %w", err)
	}
	t, _ := Merge(sets...)
	return t, sets, nil
}

func (p *Pipeline) merge(ctx context.Context, sets []*dataset.Dataset) (merge.Table, int) {
	_, span := p.observer.StartSpan(ctx, observability.SpanMerge)
	defer span.End()

	t, dropped := Merge(sets...)
	span.SetAttributes(
		observability.Int(observability.AttrCountries, len(t)),
		observability.Int(observability.AttrDropped, dropped),
	)
	span.SetStatus(observability.StatusOK, "")
	return t, dropped
}
