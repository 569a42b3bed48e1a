// Package observability wires logging, tracing and metrics for the API.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "axobot-api"

// Observability bundles the logger, tracer and metrics registry handed to
// each module at construction time.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
	Metrics  *Metrics

	tracerProvider *sdktrace.TracerProvider
}

// Init builds the observability stack. In development logs are rendered as
// text, elsewhere as JSON. The returned shutdown function flushes the tracer
// provider and must be called on exit.
func Init(environment string) (*Observability, func(context.Context) error, error) {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler).With(slog.String("service", serviceName))

	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	obs := &Observability{
		Logger:         logger,
		Tracer:         tp.Tracer(serviceName),
		Registry:       registry,
		Metrics:        NewMetrics(registry),
		tracerProvider: tp,
	}
	return obs, tp.Shutdown, nil
}

// NewTestObservability returns a no-op stack suitable for unit tests.
func NewTestObservability() *Observability {
	registry := prometheus.NewRegistry()
	return &Observability{
		Logger:   slog.New(slog.DiscardHandler),
		Tracer:   otel.GetTracerProvider().Tracer("test"),
		Registry: registry,
		Metrics:  NewMetrics(registry),
	}
}
