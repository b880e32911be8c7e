package metrics

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments. Lifetime counters back the
// dashboard payload; the OTel instruments feed the telemetry pipeline.
type Metrics struct {
	carrierCalls      metric.Int64Counter
	offersAccepted    metric.Int64Counter
	offersRejected    metric.Int64Counter
	negotiationRounds metric.Int64Counter
	callResults       metric.Int64Counter

	lifetimeCalls    atomic.Int64
	lifetimeAccepted atomic.Int64
	lifetimeRejected atomic.Int64
	lifetimeRounds   atomic.Int64
}

// Lifetime is a point-in-time copy of the process-lifetime counters.
type Lifetime struct {
	CallsTotal             int64
	OffersAccepted         int64
	OffersRejected         int64
	NegotiationRoundsTotal int64
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "carriergate"
	}
	meter := provider.Meter(name)

	carrierCalls, err := meter.Int64Counter("carriergate_carrier_calls_total")
	if err != nil {
		return nil, err
	}
	offersAccepted, err := meter.Int64Counter("carriergate_offers_accepted_total")
	if err != nil {
		return nil, err
	}
	offersRejected, err := meter.Int64Counter("carriergate_offers_rejected_total")
	if err != nil {
		return nil, err
	}
	negotiationRounds, err := meter.Int64Counter("carriergate_negotiation_rounds_total")
	if err != nil {
		return nil, err
	}
	callResults, err := meter.Int64Counter("carriergate_call_results_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		carrierCalls:      carrierCalls,
		offersAccepted:    offersAccepted,
		offersRejected:    offersRejected,
		negotiationRounds: negotiationRounds,
		callResults:       callResults,
	}, nil
}

// RecordCarrierCall counts one authentication attempt.
func (m *Metrics) RecordCarrierCall(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.lifetimeCalls.Add(1)
	attrs := FilterAttributes(attribute.String("source", strings.TrimSpace(source)))
	m.carrierCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordSettlement counts an accepted negotiation and the rounds it took.
func (m *Metrics) RecordSettlement(ctx context.Context, rounds int) {
	if m == nil {
		return
	}
	m.lifetimeAccepted.Add(1)
	m.lifetimeRounds.Add(int64(rounds))
	m.offersAccepted.Add(ctx, 1)
	m.negotiationRounds.Add(ctx, int64(rounds))
}

// RecordTerminalRejection counts a negotiation that exhausted its rounds.
func (m *Metrics) RecordTerminalRejection(ctx context.Context, rounds int) {
	if m == nil {
		return
	}
	m.lifetimeRejected.Add(1)
	m.lifetimeRounds.Add(int64(rounds))
	m.offersRejected.Add(ctx, 1)
	m.negotiationRounds.Add(ctx, int64(rounds))
}

// RecordCallResult counts one logged call outcome by sentiment.
func (m *Metrics) RecordCallResult(ctx context.Context, sentiment string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("sentiment", strings.TrimSpace(sentiment)))
	m.callResults.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Lifetime returns the process-lifetime counters.
func (m *Metrics) Lifetime() Lifetime {
	if m == nil {
		return Lifetime{}
	}
	return Lifetime{
		CallsTotal:             m.lifetimeCalls.Load(),
		OffersAccepted:         m.lifetimeAccepted.Load(),
		OffersRejected:         m.lifetimeRejected.Load(),
		NegotiationRoundsTotal: m.lifetimeRounds.Load(),
	}
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"source":      {},
	"sentiment":   {},
	"endpoint":    {},
	"status_code": {},
	"reason":      {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
