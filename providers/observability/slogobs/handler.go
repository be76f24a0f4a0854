package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
)

// Handler is a slog.Handler rendering records in one of the Formats.
type Handler struct {
	format Format
	level  slog.Level
	output io.Writer
	colors bool
	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string
}

// HandlerOptions configures NewHandler. Zero values mean compact format, INFO
// level and stderr.
type HandlerOptions struct {
	Format Format
	Level  slog.Level
	Output io.Writer
	// Colors forces ANSI colours. Without it colours are used only when Output
	// is a terminal.
	Colors bool
}

// NewHandler returns a Handler for opts.
func NewHandler(opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	h := &Handler{
		format: opts.Format,
		level:  opts.Level,
		output: opts.Output,
		colors: opts.Colors,
		mu:     &sync.Mutex{},
	}
	if h.output == nil {
		h.output = os.Stderr
	}
	if h.format == "" {
		h.format = FormatCompact
	}
	if !h.colors && h.format != FormatJSON {
		if f, ok := h.output.(*os.File); ok {
			h.colors = isTerminal(f)
		}
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var line []byte
	var err error
	switch h.format {
	case FormatPretty:
		line = h.prettyLine(r)
	case FormatJSON:
		line, err = h.jsonLine(r)
	default:
		line = h.compactLine(r)
	}
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.output.Write(line)
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// compactLine: "2006-01-02 15:04:05  INFO message → {...}"
func (h *Handler) compactLine(r slog.Record) []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')
	buf = h.appendLevel(buf, fmt.Sprintf("%5s", levelString(r.Level)), r.Level)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	if attrs := h.collect(r); len(attrs) > 0 {
		encoded, err := json.Marshal(attrs)
		if err != nil {
			encoded = []byte("[unencodable attributes]")
		}
		buf = append(buf, " → "...)
		buf = append(buf, encoded...)
	}
	return append(buf, '\n')
}

// prettyLine puts every attribute on its own indented line, sorted by key.
func (h *Handler) prettyLine(r slog.Record) []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')
	level := levelString(r.Level)
	buf = h.appendLevel(buf, level, r.Level)
	buf = append(buf, strings.Repeat(" ", 7-len(level))...)
	buf = append(buf, r.Message...)
	buf = append(buf, '\n')

	attrs := h.collect(r)
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		branch := "├─"
		if i == len(keys)-1 {
			branch = "└─"
		}
		buf = append(buf, fmt.Sprintf("                    %s %s: %v\n", branch, k, attrs[k])...)
	}
	return buf
}

func (h *Handler) jsonLine(r slog.Record) ([]byte, error) {
	data := h.collect(r)
	data["time"] = r.Time.Format("2006-01-02T15:04:05")
	data["level"] = levelString(r.Level)
	data["msg"] = r.Message

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(encoded, '\n'), nil
}

func (h *Handler) collect(r slog.Record) map[string]any {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = attrValue(a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[h.prefix+a.Key] = attrValue(a.Value)
		return true
	})
	return attrs
}

// attrValue renders durations and errors as text so they survive JSON
// encoding.
func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
	}
	return v.Any()
}

func (h *Handler) appendLevel(buf []byte, text string, level slog.Level) []byte {
	if !h.colors {
		return append(buf, text...)
	}
	buf = append(buf, colorForLevel(level)...)
	buf = append(buf, text...)
	return append(buf, colorReset...)
}

func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

func colorForLevel(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return colorGray
	case level < slog.LevelInfo:
		return colorBlue
	case level < slog.LevelWarn:
		return colorGreen
	case level < slog.LevelError:
		return colorYellow
	default:
		return colorRed
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
