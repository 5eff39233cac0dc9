package metrics

import (
	"context"
	"fmt"

	"shopapi/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// AppMetrics はHTTPと業務のメトリクスをまとめて持つ。
type AppMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestsErrors  metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	CartAddsTotal  metric.Int64Counter
	OrdersCreated  metric.Int64Counter
	RevenueTotal   metric.Float64Counter
	WishlistsTotal metric.Int64Counter
}

// Init はOTLP exporterを作ってmeterを初期化する。
// endpoint未設定ならメトリクス無効（nil, nil, nil）。
func Init(ctx context.Context, cfg config.Config) (*AppMetrics, *sdkmetric.MeterProvider, error) {
	if cfg.OTELExporterEndpoint == "" {
		return nil, nil, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.OTELServiceName),
			attribute.String("deployment.environment", cfg.GoEnv),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create resource: %w", err)
	}

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.OTELExporterEndpoint),
		otlpmetrichttp.WithURLPath("/v1/metrics"),
	}
	if cfg.OTELExporterInsecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(cfg.OTELServiceName)

	m := &AppMetrics{}

	if m.HTTPRequestsTotal, err = meter.Int64Counter("http.requests.total",
		metric.WithDescription("Total HTTP requests")); err != nil {
		return nil, nil, err
	}
	if m.HTTPRequestsErrors, err = meter.Int64Counter("http.requests.errors",
		metric.WithDescription("HTTP responses with status >= 400")); err != nil {
		return nil, nil, err
	}
	if m.HTTPRequestDuration, err = meter.Float64Histogram("http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s")); err != nil {
		return nil, nil, err
	}
	if m.CartAddsTotal, err = meter.Int64Counter("cart.adds.total",
		metric.WithDescription("Cart lines created")); err != nil {
		return nil, nil, err
	}
	if m.OrdersCreated, err = meter.Int64Counter("orders.created.total",
		metric.WithDescription("Orders created via checkout")); err != nil {
		return nil, nil, err
	}
	if m.RevenueTotal, err = meter.Float64Counter("orders.revenue.total",
		metric.WithDescription("Sum of order totals")); err != nil {
		return nil, nil, err
	}
	if m.WishlistsTotal, err = meter.Int64Counter("wishlist.adds.total",
		metric.WithDescription("Wishlist items created")); err != nil {
		return nil, nil, err
	}

	return m, provider, nil
}

// RecordRequest はHTTPリクエスト1件分を記録する。
func (m *AppMetrics) RecordRequest(ctx context.Context, method string, path string, status int, seconds float64) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", status),
	)

	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, seconds, attrs)
	if status >= 400 {
		m.HTTPRequestsErrors.Add(ctx, 1, attrs)
	}
}

// RecordCartAdd はカート明細の新規作成を記録する。
func (m *AppMetrics) RecordCartAdd(ctx context.Context, productID int64) {
	if m == nil {
		return
	}
	m.CartAddsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Int64("product.id", productID),
	))
}

// RecordOrder は注文確定1件と売上を記録する。
func (m *AppMetrics) RecordOrder(ctx context.Context, totalAmount float64) {
	if m == nil {
		return
	}
	m.OrdersCreated.Add(ctx, 1)
	m.RevenueTotal.Add(ctx, totalAmount)
}

// RecordWishlistAdd はお気に入り追加を記録する。
func (m *AppMetrics) RecordWishlistAdd(ctx context.Context) {
	if m == nil {
		return
	}
	m.WishlistsTotal.Add(ctx, 1)
}
