package observability

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"w3dash/config"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// Metric names
const (
	RefreshesTotal     = "w3dash.refreshes.total"
	FetchFailuresTotal = "w3dash.fetch.failures.total"
	FetchDuration      = "w3dash.fetch.duration"
	OpponentPresent    = "w3dash.opponent.present"
)

// Metric labels
const (
	LabelEndpoint = "endpoint"
)

// MetricsProvider manages OpenTelemetry metrics for the dashboard
type MetricsProvider struct {
	config        *config.Config
	writer        io.Writer // console exporter output
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	// Metric instruments
	refreshesCounter     metric.Int64Counter
	fetchFailuresCounter metric.Int64Counter
	fetchDurationHist    metric.Float64Histogram
	opponentGauge        metric.Int64UpDownCounter

	opponentShown bool
}

// NewMetricsProvider creates a new metrics provider. The console exporter writes to w,
// which must not be the terminal the dashboard draws on.
func NewMetricsProvider(cfg *config.Config, w io.Writer) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
		writer: w,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Debug("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Debug("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdkmetric.Exporter
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New(stdoutmetric.WithWriter(mp.writer))
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				exporter,
				sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
			),
		),
	)
	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter("w3dash")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	log.Info("Metrics provider initialized successfully")
	return nil
}

func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.refreshesCounter, err = mp.meter.Int64Counter(
		RefreshesTotal,
		metric.WithDescription("Total number of refresh-and-redraw cycles"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create refreshes counter: %w", err)
	}

	mp.fetchFailuresCounter, err = mp.meter.Int64Counter(
		FetchFailuresTotal,
		metric.WithDescription("Total number of failed statistics requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create fetch failures counter: %w", err)
	}

	mp.fetchDurationHist, err = mp.meter.Float64Histogram(
		FetchDuration,
		metric.WithDescription("Duration of statistics requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return fmt.Errorf("failed to create fetch duration histogram: %w", err)
	}

	mp.opponentGauge, err = mp.meter.Int64UpDownCounter(
		OpponentPresent,
		metric.WithDescription("1 while an opponent is shown, 0 otherwise"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create opponent gauge: %w", err)
	}

	return nil
}

// Shutdown flushes and stops the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordFetch records the duration and outcome of one statistics request
func (mp *MetricsProvider) RecordFetch(endpoint string, duration time.Duration, err error) {
	if !mp.isEnabled() {
		return
	}

	attrs := metric.WithAttributes(attribute.String(LabelEndpoint, endpoint))
	mp.fetchDurationHist.Record(context.Background(), duration.Seconds(), attrs)
	if err != nil {
		mp.fetchFailuresCounter.Add(context.Background(), 1, attrs)
	}
}

// RecordRefresh records a completed refresh and whether an opponent is shown
func (mp *MetricsProvider) RecordRefresh(hasOpponent bool) {
	if !mp.isEnabled() {
		return
	}

	mp.refreshesCounter.Add(context.Background(), 1)

	mp.mu.Lock()
	defer mp.mu.Unlock()
	if hasOpponent != mp.opponentShown {
		delta := int64(1)
		if !hasOpponent {
			delta = -1
		}
		mp.opponentGauge.Add(context.Background(), delta)
		mp.opponentShown = hasOpponent
	}
}

// Enabled reports whether instruments are live
func (mp *MetricsProvider) Enabled() bool {
	return mp.isEnabled()
}

func (mp *MetricsProvider) isEnabled() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.config.OTelEnabled && mp.meterProvider != nil
}
