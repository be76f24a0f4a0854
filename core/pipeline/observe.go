package pipeline

import (
	"context"
	"errors"
	"sort"

	"github.com/leofalp/worldstats/core/dataset"
	"github.com/leofalp/worldstats/core/extract"
	"github.com/leofalp/worldstats/providers/fetch"
	"github.com/leofalp/worldstats/providers/observability"
	"github.com/leofalp/worldstats/providers/source/wikipedia"
)

// sourceFailed logs a source that produced no table and counts it.
func (p *Pipeline) sourceFailed(ctx context.Context, span observability.Span, s wikipedia.Source, err error) {
	reason := "parse failed"
	switch {
	case errors.Is(err, fetch.ErrSourceUnreachable):
		reason = "source unreachable"
	case errors.Is(err, extract.ErrTableNotFound):
		reason = "table not found"
	}

	span.RecordError(err)
	span.SetStatus(observability.StatusError, reason)
	attrs := []observability.Attribute{
		observability.String(observability.AttrSource, s.Name),
		observability.String(observability.AttrURL, s.URL),
		observability.Error(err),
	}
	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) {
		attrs = append(attrs, observability.Int(observability.AttrHTTPStatusCode, statusErr.StatusCode))
	}
	p.observer.Warn(ctx, reason+", continuing with an empty "+s.Name+" table", attrs...)
	p.observer.Counter(observability.MetricSourceFailures).Add(ctx, 1,
		observability.String(observability.AttrSource, s.Name),
		observability.String(observability.AttrStatusDescription, reason),
	)
}

// recordRows logs every skipped row at debug level and counts accepted and
// failed rows, the latter per failure kind.
func (p *Pipeline) recordRows(ctx context.Context, span observability.Span, d *dataset.Dataset) {
	source := observability.String(observability.AttrSource, d.Source())
	failures := d.Failures()

	for _, f := range failures {
		span.AddEvent(observability.EventRowSkipped,
			observability.Int(observability.AttrRowIndex, f.Row),
			observability.String(observability.AttrFailureKind, string(f.Kind)),
		)
		p.observer.Debug(ctx, "row skipped",
			source,
			observability.Int(observability.AttrRowIndex, f.Row),
			observability.String(observability.AttrFailureKind, string(f.Kind)),
			observability.String("reason", f.Reason),
		)
	}

	counts := d.FailureCounts()
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		p.observer.Counter(observability.MetricRowsFailed).Add(ctx, int64(counts[dataset.FailureKind(kind)]),
			source, observability.String(observability.AttrFailureKind, kind),
		)
	}
	p.observer.Counter(observability.MetricRowsAccepted).Add(ctx, int64(d.Len()), source)

	span.SetAttributes(
		observability.Int(observability.AttrRowsAccepted, d.Len()),
		observability.Int(observability.AttrRowsFailed, len(failures)),
	)
	p.observer.Info(ctx, "source parsed",
		source,
		observability.Int(observability.AttrRowsAccepted, d.Len()),
		observability.Int(observability.AttrRowsFailed, len(failures)),
	)
}
