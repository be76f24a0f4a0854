package observability

// Attribute keys, span names, event names and metric names recorded by the
// pipeline. Keep new names in the same dotted, lower-case form.

// --- Run and source attributes ---

const (
	// AttrRunID identifies one pipeline run; every span of the run carries it.
	AttrRunID = "run.id"

	// AttrSource is the source name, e.g. "population".
	AttrSource = "source.name"

	// AttrColumn is the merged-table column a source fills.
	AttrColumn = "source.column"

	// AttrURL is where a source is fetched from.
	AttrURL = "source.url"

	// AttrSelector describes how the source table was located.
	AttrSelector = "source.selector"

	// AttrRowsAccepted is the number of rows a source contributed.
	AttrRowsAccepted = "rows.accepted"

	// AttrRowsFailed is the number of rows a source rejected.
	AttrRowsFailed = "rows.failed"

	// AttrRowIndex is the position of a row in its source table.
	AttrRowIndex = "row.index"

	// AttrFailureKind classifies a rejected row.
	AttrFailureKind = "row.failure_kind"

	// AttrCountries is the size of the merged table.
	AttrCountries = "merge.countries"

	// AttrDropped is the number of merged rows removed by the null drop.
	AttrDropped = "merge.dropped"

	// AttrPath is a file written or read by the pipeline.
	AttrPath = "file.path"

	// AttrBytes is the size of a fetched document or written file.
	AttrBytes = "file.bytes"
)

// --- HTTP attributes ---

const (
	AttrHTTPMethod     = "http.method"
	AttrHTTPURL        = "http.url"
	AttrHTTPStatusCode = "http.status_code"
)

// --- General attributes ---

const (
	AttrError             = "error"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span names ---

const (
	SpanRun       = "pipeline.run"
	SpanSource    = "pipeline.source"
	SpanFetch     = "source.fetch"
	SpanMerge     = "pipeline.merge"
	SpanWrite     = "store.write"
	SpanSnapshots = "store.snapshots"
)

// --- Event names ---

const (
	EventFetchRequest  = "fetch.request"
	EventFetchResponse = "fetch.response"
	EventTableLocated  = "extract.table_located"
	EventRowSkipped    = "extract.row_skipped"
)

// --- Metric names ---

const (
	// MetricRowsAccepted counts rows stored in per-source datasets.
	MetricRowsAccepted = "worldstats.rows.accepted"

	// MetricRowsFailed counts rejected rows, labelled by failure kind.
	MetricRowsFailed = "worldstats.rows.failed"

	// MetricSourceFailures counts sources that produced no table at all.
	MetricSourceFailures = "worldstats.source.failures"

	// MetricFetchDuration records fetch latency in milliseconds.
	MetricFetchDuration = "worldstats.fetch.duration_ms"
)
