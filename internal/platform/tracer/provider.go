package tracer

import (
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ExporterStdout writes finished spans as JSON to the given writer.
const ExporterStdout = "stdout"

// NewSDKProvider builds an OpenTelemetry SDK provider for exporter. The
// caller owns Shutdown, which flushes batched spans. Use it with
// WithOTelTracer(tp.Tracer(InstrumentationName)).
func NewSDKProvider(exporter string, w io.Writer) (*sdktrace.TracerProvider, error) {
	switch exporter {
	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("stdout trace exporter: %w", err)
		}
		res := resource.NewSchemaless(attribute.String("service.name", InstrumentationName))
		return sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
		), nil
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", exporter)
	}
}
