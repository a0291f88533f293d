package tracing

import (
	"context"
	"sync"

	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/settings"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
)

var (
	tracerProvider   *tracesdk.TracerProvider
	tracerProviderMu sync.Mutex
)

// InitTracer installs a global otel tracer provider exporting over OTLP/HTTP
// to tSettings.Tracing.CollectorURL. It is a no-op when tracing is disabled.
func InitTracer(ctx context.Context, tSettings *settings.Settings) error {
	if !tSettings.Tracing.Enabled {
		return nil
	}

	if tSettings.Tracing.CollectorURL == nil || tSettings.Tracing.CollectorURL.Host == "" {
		return errors.NewConfigurationError("tracing_collector_url must be set when tracing is enabled")
	}

	tracerProviderMu.Lock()
	defer tracerProviderMu.Unlock()

	if tracerProvider != nil {
		return nil
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(tSettings.Tracing.CollectorURL.Host),
	}

	if tSettings.Tracing.CollectorURL.Scheme != "https" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return errors.NewConfigurationError("cannot create otlp trace exporter", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", tSettings.ServiceName),
		attribute.String("network", tSettings.ChainCfgParams.Name),
	)

	tracerProvider = tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exporter),
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(tSettings.Tracing.SampleRate))),
		tracesdk.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)

	return nil
}

// ShutdownTracer flushes and stops the tracer provider installed by InitTracer.
func ShutdownTracer(ctx context.Context) error {
	tracerProviderMu.Lock()
	defer tracerProviderMu.Unlock()

	if tracerProvider == nil {
		return nil
	}

	err := tracerProvider.Shutdown(ctx)
	tracerProvider = nil

	if err != nil {
		return errors.NewServiceError("failed to shut down tracer", err)
	}

	return nil
}
