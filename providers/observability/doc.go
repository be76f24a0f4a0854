// Package observability defines the tracing, metrics and logging interfaces
// used by the worldstats pipeline, together with the attribute keys, span
// names and metric names it records.
//
// [Provider] bundles [Tracer], [Metrics] and [Logger] into one injectable
// dependency. The pipeline stores the active provider and span in a
// [context.Context] with [ContextWithObserver] and [ContextWithSpan] so that
// lower layers, such as the HTTP fetcher, can add events without taking a
// provider argument. [Nop] returns a provider that discards everything.
package observability
