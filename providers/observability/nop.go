package observability

import "context"

type nop struct{}

type nopSpan struct{}

type nopInstrument struct{}

// Nop returns a Provider that records nothing.
func Nop() Provider { return nop{} }

func (nop) StartSpan(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, nopSpan{}
}

func (nop) Counter(string) Counter { return nopInstrument{} }
func (nop) Histogram(string) Histogram { return nopInstrument{} }

func (nop) Trace(context.Context, string, ...Attribute) {}
func (nop) Debug(context.Context, string, ...Attribute) {}
func (nop) Info(context.Context, string, ...Attribute) {}
func (nop) Warn(context.Context, string, ...Attribute) {}
func (nop) Error(context.Context, string, ...Attribute) {}

func (nopSpan) End() {}
func (nopSpan) SetAttributes(...Attribute) {}
func (nopSpan) SetStatus(StatusCode, string) {}
func (nopSpan) RecordError(error) {}
func (nopSpan) AddEvent(string, ...Attribute) {}

func (nopInstrument) Add(context.Context, int64, ...Attribute) {}
func (nopInstrument) Record(context.Context, float64, ...Attribute) {}
