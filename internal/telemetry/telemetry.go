// Package telemetry sets up OpenTelemetry tracing and helpers for service spans.
package telemetry

import (
	"context"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/Taichi-iskw/tagscribe/internal/logger"
)

const instrumentationName = "github.com/Taichi-iskw/tagscribe"

// Options configures tracing
type Options struct {
	Enabled     bool
	ServiceName string
	Version     string
	// Writer receives exported spans; defaults to stdout
	Writer io.Writer
}

// Init installs a global tracer provider that exports spans to stdout.
// When tracing is disabled the global no-op provider stays in place.
func Init(ctx context.Context, log *logger.Logger, opts Options) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !opts.Enabled {
		return noop, nil
	}

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "tagscribe"
	}
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", opts.Version),
	))
	if err != nil && log != nil {
		log.Warn("otel resource init failed (continuing)", "error", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if log != nil {
		log.Info("otel tracing initialized", "service", serviceName)
	}
	return tp.Shutdown, nil
}

// Start opens a span named "<component>.<operation>" on the global provider
func Start(ctx context.Context, component, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, component+"."+operation, trace.WithAttributes(attrs...))
}

// End records err on the span, if any, and ends it
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
