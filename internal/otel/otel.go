package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/hanpama/relaypage/internal/eventbus"
	"github.com/hanpama/relaypage/internal/events"
	"github.com/hanpama/relaypage/internal/reqid"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	unsubscribe := Subscribe(tp.Tracer("relaypage"))

	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

// Subscribe records one span per page resolution on the global bus.
func Subscribe(tracer trace.Tracer) (unsubscribe func()) {
	s := &subscriber{tracer: tracer}
	return s.register()
}

type subscriber struct {
	tracer trace.Tracer
	spans  sync.Map // resolution id -> trace.Span
}

func (s *subscriber) register() func() {
	unsubStart := eventbus.Subscribe(func(ctx context.Context, e events.PageStart) {
		_, span := s.tracer.Start(ctx, "paging.resolve")
		rid, _ := reqid.FromContext(ctx)
		span.SetAttributes(
			attribute.String("request.id", rid),
			attribute.String("paging.type", e.Type),
			attribute.String("paging.field", e.Field),
			attribute.Bool("paging.after", e.After != ""),
		)
		if e.First != nil {
			span.SetAttributes(attribute.Int("paging.first", *e.First))
		}
		s.spans.Store(e.ID, span)
	})

	unsubFinish := eventbus.Subscribe(func(ctx context.Context, e events.PageFinish) {
		v, ok := s.spans.LoadAndDelete(e.ID)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			attribute.Int("paging.edges", e.Edges),
			attribute.Bool("paging.has_next_page", e.HasNextPage),
			attribute.Bool("paging.has_previous_page", e.HasPreviousPage),
			attribute.Bool("paging.custom", e.Custom),
		)
		if e.Err != nil {
			if e.Code != "" {
				span.SetAttributes(attribute.String("paging.error_code", e.Code))
			}
			span.RecordError(e.Err)
			span.SetStatus(codes.Error, e.Err.Error())
		}
		span.End()
	})

	return func() {
		unsubStart()
		unsubFinish()
	}
}
