package observability

import (
	"context"
	"testing"
)

type recordingSpan struct {
	nopSpan
	name string
}

func TestSpanFromContext_Empty(t *testing.T) {
	if span := SpanFromContext(context.Background()); span != nil {
		t.Errorf("expected nil span, got %v", span)
	}
	//nolint:staticcheck // a nil context must not panic
	if span := SpanFromContext(nil); span != nil {
		t.Errorf("expected nil span from nil context, got %v", span)
	}
}

func TestContextWithSpan_RoundTrip(t *testing.T) {
	span := &recordingSpan{name: SpanFetch}
	ctx := ContextWithSpan(context.Background(), span)

	if got := SpanFromContext(ctx); got != span {
		t.Errorf("SpanFromContext() = %v, want the stored span", got)
	}
}

func TestContextWithObserver_RoundTrip(t *testing.T) {
	p := Nop()
	ctx := ContextWithObserver(context.Background(), p)

	if got := ObserverFromContext(ctx); got != p {
		t.Errorf("ObserverFromContext() = %v, want the stored provider", got)
	}
	if ObserverFromContext(context.Background()) != nil {
		t.Error("expected nil provider from an empty context")
	}
}

// TestContext_KeysDoNotCollide stores both values and reads each back.
func TestContext_KeysDoNotCollide(t *testing.T) {
	span := &recordingSpan{name: SpanRun}
	ctx := ContextWithSpan(ContextWithObserver(context.Background(), Nop()), span)

	if SpanFromContext(ctx) != span || ObserverFromContext(ctx) == nil {
		t.Error("span and observer should both be retrievable")
	}
}
