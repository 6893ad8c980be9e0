package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/outlander-app/outlander-sub000"

// Route query outcomes recorded on the status attribute.
const (
	StatusFound       = "found"
	StatusUnreachable = "unreachable"
	StatusError       = "error"
)

// Metrics holds the route planner's instruments. Safe for concurrent use.
type Metrics struct {
	// RouteQueries counts route queries by zone and status.
	RouteQueries metric.Int64Counter

	// RouteDuration tracks time spent resolving and searching, in seconds.
	RouteDuration metric.Float64Histogram

	// RouteHops tracks the number of moves in found routes.
	RouteHops metric.Int64Histogram
}

var latencyBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.1, 1,
}

var hopBuckets = []float64{1, 2, 5, 10, 20, 50, 100, 250}

// NewMetrics creates the instruments on the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.RouteQueries, err = m.Int64Counter("outlander.route.queries",
		metric.WithDescription("Route queries by zone and status."),
	); err != nil {
		return nil, err
	}
	if met.RouteDuration, err = m.Float64Histogram("outlander.route.duration",
		metric.WithDescription("Latency of route resolution and search."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.RouteHops, err = m.Int64Histogram("outlander.route.hops",
		metric.WithDescription("Moves in found routes."),
		metric.WithExplicitBucketBoundaries(hopBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns a process-wide Metrics bound to otel.GetMeterProvider.
// Tests should use NewMetrics with their own provider.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observability: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordRoute records one route query. hops is only observed for found routes.
func (m *Metrics) RecordRoute(ctx context.Context, zoneID, status string, elapsed time.Duration, hops int) {
	attrs := metric.WithAttributes(
		attribute.String("zone", zoneID),
		attribute.String("status", status),
	)
	m.RouteQueries.Add(ctx, 1, attrs)
	m.RouteDuration.Record(ctx, elapsed.Seconds(), attrs)
	if status == StatusFound {
		m.RouteHops.Record(ctx, int64(hops), metric.WithAttributes(attribute.String("zone", zoneID)))
	}
}
