package slogobs

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/leofalp/worldstats/providers/observability"
)

// Observer implements observability.Provider with a slog.Logger and an
// in-memory metrics store.
type Observer struct {
	logger  *slog.Logger
	metrics *metricsStore
}

var _ observability.Provider = (*Observer)(nil)

// New returns an Observer configured from the environment and opts.
//
//	observer := slogobs.New(slogobs.WithLevel(slog.LevelDebug), slogobs.WithFormat(slogobs.FormatPretty))
func New(opts ...Option) *Observer {
	cfg := applyOptions(opts...)

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(NewHandler(&HandlerOptions{
			Format: cfg.format,
			Level:  cfg.level,
			Output: cfg.output,
			Colors: cfg.colors,
		}))
	}
	return &Observer{logger: logger, metrics: newMetricsStore()}
}

// Logger returns the underlying slog.Logger.
func (o *Observer) Logger() *slog.Logger {
	return o.logger
}

// --- TRACING ---

// StartSpan logs the span start at debug level and returns ctx with the span
// attached, so code further down can add events to it.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	span := &slogSpan{name: name, start: time.Now(), logger: o.logger, attrs: attrs}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "span started", spanAttrs(name, "span.start", attrs)...)
	return observability.ContextWithSpan(ctx, span), span
}

type slogSpan struct {
	mu     sync.Mutex
	name   string
	start  time.Time
	logger *slog.Logger
	attrs  []observability.Attribute
	failed bool
}

// End logs the span with its duration and every attribute collected so far.
// Spans that recorded an error end at warn level.
func (s *slogSpan) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := slog.LevelDebug
	if s.failed {
		level = slog.LevelWarn
	}
	logAttrs := append(spanAttrs(s.name, "span.end", s.attrs), slog.Duration(observability.AttrDuration, time.Since(s.start)))
	s.logger.LogAttrs(context.Background(), level, "span ended", logAttrs...)
}

func (s *slogSpan) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *slogSpan) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := "unset"
	switch code {
	case observability.StatusOK:
		status = "ok"
	case observability.StatusError:
		status = "error"
		s.failed = true
	}
	s.attrs = append(s.attrs, observability.String(observability.AttrStatus, status))
	if description != "" {
		s.attrs = append(s.attrs, observability.String(observability.AttrStatusDescription, description))
	}
}

// RecordError attaches err to the span and logs it at error level.
func (s *slogSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failed = true
	s.attrs = append(s.attrs, observability.Error(err))
	s.logger.LogAttrs(context.Background(), slog.LevelError, "span error",
		slog.String("span", s.name), slog.String(observability.AttrError, err.Error()))
}

func (s *slogSpan) AddEvent(name string, attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "span event", spanAttrs(s.name, name, attrs)...)
}

func spanAttrs(span, event string, attrs []observability.Attribute) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs)+3)
	out = append(out, slog.String("span", span), slog.String("event", event))
	return append(out, toSlog(attrs)...)
}

func toSlog(attrs []observability.Attribute) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, slog.Any(a.Key, a.Value))
	}
	return out
}

// --- METRICS ---

func (o *Observer) Counter(name string) observability.Counter {
	return o.metrics.counter(name, o.logger)
}

func (o *Observer) Histogram(name string) observability.Histogram {
	return o.metrics.histogram(name, o.logger)
}

// CounterValue returns the running total of the named counter.
func (o *Observer) CounterValue(name string) int64 {
	return o.metrics.counter(name, o.logger).load()
}

// HistogramStats summarises the observations of one histogram.
type HistogramStats struct {
	Count int
	Sum   float64
	Min   float64
	Max   float64
}

// Snapshot returns the totals of every counter and the stats of every
// histogram, keyed by metric name.
func (o *Observer) Snapshot() (map[string]int64, map[string]HistogramStats) {
	return o.metrics.snapshot()
}

// CounterNames returns the names of the counters touched so far, sorted.
func (o *Observer) CounterNames() []string {
	counters, _ := o.metrics.snapshot()
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type metricsStore struct {
	mu         sync.Mutex
	counters   map[string]*slogCounter
	histograms map[string]*slogHistogram
}

func newMetricsStore() *metricsStore {
	return &metricsStore{
		counters:   make(map[string]*slogCounter),
		histograms: make(map[string]*slogHistogram),
	}
}

func (m *metricsStore) counter(name string, logger *slog.Logger) *slogCounter {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.counters[name]
	if !ok {
		c = &slogCounter{name: name, logger: logger}
		m.counters[name] = c
	}
	return c
}

func (m *metricsStore) histogram(name string, logger *slog.Logger) *slogHistogram {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.histograms[name]
	if !ok {
		h = &slogHistogram{name: name, logger: logger}
		m.histograms[name] = h
	}
	return h
}

func (m *metricsStore) snapshot() (map[string]int64, map[string]HistogramStats) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counters := make(map[string]int64, len(m.counters))
	for name, c := range m.counters {
		counters[name] = c.load()
	}
	histograms := make(map[string]HistogramStats, len(m.histograms))
	for name, h := range m.histograms {
		histograms[name] = h.stats()
	}
	return counters, histograms
}

type slogCounter struct {
	name   string
	logger *slog.Logger
	mu     sync.Mutex
	value  int64
}

// Add increments the counter and logs the new total at debug level.
func (c *slogCounter) Add(ctx context.Context, value int64, attrs ...observability.Attribute) {
	c.mu.Lock()
	c.value += value
	total := c.value
	c.mu.Unlock()

	logAttrs := append([]slog.Attr{
		slog.String("metric", c.name),
		slog.Int64("value", total),
		slog.Int64("delta", value),
	}, toSlog(attrs)...)
	c.logger.LogAttrs(ctx, slog.LevelDebug, "counter", logAttrs...)
}

func (c *slogCounter) load() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

type slogHistogram struct {
	name   string
	logger *slog.Logger
	mu     sync.Mutex
	s      HistogramStats
}

// Record adds value to the histogram and logs it at debug level.
func (h *slogHistogram) Record(ctx context.Context, value float64, attrs ...observability.Attribute) {
	h.mu.Lock()
	if h.s.Count == 0 || value < h.s.Min {
		h.s.Min = value
	}
	if h.s.Count == 0 || value > h.s.Max {
		h.s.Max = value
	}
	h.s.Count++
	h.s.Sum += value
	h.mu.Unlock()

	logAttrs := append([]slog.Attr{
		slog.String("metric", h.name),
		slog.Float64("value", value),
	}, toSlog(attrs)...)
	h.logger.LogAttrs(ctx, slog.LevelDebug, "histogram", logAttrs...)
}

func (h *slogHistogram) stats() HistogramStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.s
}

// --- LOGGING ---

func (o *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, LevelTrace, msg, toSlog(attrs)...)
}

func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelDebug, msg, toSlog(attrs)...)
}

func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelInfo, msg, toSlog(attrs)...)
}

func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelWarn, msg, toSlog(attrs)...)
}

func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelError, msg, toSlog(attrs)...)
}
