// Package telemetry installs an OpenTelemetry tracer provider that exports
// spans to a file.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry owns the tracer provider and its output file
type Telemetry struct {
	provider *sdktrace.TracerProvider
	file     *os.File
}

// Shutdown flushes pending spans and closes the output file. It is a no-op
// when tracing was not enabled.
func (t Telemetry) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	errlist := []error{}
	if err := t.provider.Shutdown(ctx); err != nil {
		errlist = append(errlist, err)
	}
	if err := t.file.Close(); err != nil {
		errlist = append(errlist, err)
	}
	return errors.Join(errlist...)
}

// Setup writes spans as JSON to path and makes the provider global. An
// empty path leaves the default no-op provider in place.
func Setup(path string) (Telemetry, error) {
	if path == "" {
		return Telemetry{}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return Telemetry{}, fmt.Errorf("failed to create trace file: %w", err)
	}
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(f),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		f.Close()
		return Telemetry{}, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return Telemetry{provider: tp, file: f}, nil
}
