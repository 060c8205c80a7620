package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/hanpama/relaypage/internal/eventbus"
	"github.com/hanpama/relaypage/internal/events"
	"github.com/hanpama/relaypage/internal/reqid"
)

func attrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestSubscribeRecordsPageSpans(t *testing.T) {
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	unsub := Subscribe(tp.Tracer("test"))
	defer unsub()

	ctx, _ := reqid.NewContext(context.Background())
	first := 3
	eventbus.Publish(ctx, events.PageStart{ID: "r1", Type: "Query", Field: "users", First: &first})
	eventbus.Publish(ctx, events.PageFinish{ID: "r1", Type: "Query", Field: "users", Edges: 3, HasNextPage: true})

	other, _ := reqid.NewContext(context.Background())
	eventbus.Publish(other, events.PageStart{ID: "r2", Type: "Query", Field: "users"})
	eventbus.Publish(other, events.PageFinish{ID: "r2", Type: "Query", Field: "users", Code: "INVALID_CURSOR", Err: errors.New("bad cursor")})

	// A finish without a start is ignored.
	eventbus.Publish(ctx, events.PageFinish{ID: "r3", Type: "Query", Field: "orphan"})

	spans := rec.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	require.Equal(t, "paging.resolve", ok.Name())
	a := attrs(ok)
	require.Equal(t, "users", a["paging.field"].AsString())
	require.Equal(t, int64(3), a["paging.first"].AsInt64())
	require.Equal(t, int64(3), a["paging.edges"].AsInt64())
	require.True(t, a["paging.has_next_page"].AsBool())
	require.Equal(t, codes.Unset, ok.Status().Code)

	failed := spans[1]
	require.Equal(t, codes.Error, failed.Status().Code)
	require.Equal(t, "INVALID_CURSOR", attrs(failed)["paging.error_code"].AsString())
	require.Len(t, failed.Events(), 1)
}

func TestSubscribeInterleavedResolutions(t *testing.T) {
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	unsub := Subscribe(tp.Tracer("test"))
	defer unsub()

	// Same request and field resolved twice, with overlapping lifetimes.
	ctx, _ := reqid.NewContext(context.Background())
	eventbus.Publish(ctx, events.PageStart{ID: "a", Type: "Query", Field: "users"})
	eventbus.Publish(ctx, events.PageStart{ID: "b", Type: "Query", Field: "users"})
	eventbus.Publish(ctx, events.PageFinish{ID: "b", Type: "Query", Field: "users", Edges: 2})
	require.Len(t, rec.Ended(), 1)
	require.Len(t, rec.Started(), 2)

	eventbus.Publish(ctx, events.PageFinish{ID: "a", Type: "Query", Field: "users", Edges: 5})

	spans := rec.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, int64(2), attrs(spans[0])["paging.edges"].AsInt64())
	require.Equal(t, int64(5), attrs(spans[1])["paging.edges"].AsInt64())
	require.NotEqual(t, spans[0].SpanContext().SpanID(), spans[1].SpanContext().SpanID())
}

func TestSetupWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup("", "relaypage")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
