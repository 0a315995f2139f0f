package metrics

import (
	"context"
	"fmt"
	"strings"
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

// Metrics exposes application-level instruments.
type Metrics struct {
	rateRowsIngested metric.Int64Counter
	auditRuns        metric.Int64Counter
	glPostings       metric.Int64Counter
	unresolvedRules  metric.Int64Counter
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
		name = "folio"
	}
	meter := provider.Meter(name)

	rateRowsIngested, err := meter.Int64Counter("folio_rate_rows_ingested_total")
	if err != nil {
		return nil, err
	}
	auditRuns, err := meter.Int64Counter("folio_night_audit_runs_total")
	if err != nil {
		return nil, err
	}
	glPostings, err := meter.Int64Counter("folio_gl_postings_total")
	if err != nil {
		return nil, err
	}
	unresolvedRules, err := meter.Int64Counter("folio_unresolved_tax_rules_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		rateRowsIngested: rateRowsIngested,
		auditRuns:        auditRuns,
		glPostings:       glPostings,
		unresolvedRules:  unresolvedRules,
	}, nil
}

// RecordRateRowsIngested increments rate check ingest counts.
func (m *Metrics) RecordRateRowsIngested(ctx context.Context, hotelID string, rows int) {
	if m == nil || rows <= 0 {
		return
	}
	attrs := FilterAttributes(attribute.String("hotel_id", strings.TrimSpace(hotelID)))
	m.rateRowsIngested.Add(ctx, int64(rows), metric.WithAttributes(attrs...))
}

// RecordAuditRun increments night audit run counts by outcome.
func (m *Metrics) RecordAuditRun(ctx context.Context, hotelID, outcome string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("hotel_id", strings.TrimSpace(hotelID)),
		attribute.String("outcome", strings.TrimSpace(outcome)),
	)
	m.auditRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordGLPosting increments posted journal counts.
func (m *Metrics) RecordGLPosting(ctx context.Context, hotelID, grouping string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("hotel_id", strings.TrimSpace(hotelID)),
		attribute.String("grouping", strings.TrimSpace(grouping)),
	)
	m.glPostings.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordUnresolvedRules increments unresolved tax rule detections.
func (m *Metrics) RecordUnresolvedRules(ctx context.Context, hotelID string, count int) {
	if m == nil || count <= 0 {
		return
	}
	attrs := FilterAttributes(attribute.String("hotel_id", strings.TrimSpace(hotelID)))
	m.unresolvedRules.Add(ctx, int64(count), metric.WithAttributes(attrs...))
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
	"hotel_id":    {},
	"endpoint":    {},
	"status_code": {},
	"outcome":     {},
	"grouping":    {},
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
