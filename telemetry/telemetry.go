package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/lixenwraith/vi-lander"

// Query kinds recorded on the duration histogram
const (
	KindRay = "ray"
	KindBox = "box"
)

var (
	kindRay = metric.WithAttributes(attribute.String("kind", KindRay))
	kindBox = metric.WithAttributes(attribute.String("kind", KindBox))
)

// Metrics holds the simulation's instruments
type Metrics struct {
	rayQueries    metric.Int64Counter
	boxQueries    metric.Int64Counter
	queryDuration metric.Float64Histogram
	contacts      metric.Int64Counter
	transitions   metric.Int64Counter
}

// New creates instruments on meter
func New(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var err error

	if m.rayQueries, err = meter.Int64Counter("lander.octree.ray_queries",
		metric.WithDescription("Octree ray queries")); err != nil {
		return nil, fmt.Errorf("ray query counter: %w", err)
	}
	if m.boxQueries, err = meter.Int64Counter("lander.octree.box_queries",
		metric.WithDescription("Octree box queries")); err != nil {
		return nil, fmt.Errorf("box query counter: %w", err)
	}
	if m.queryDuration, err = meter.Float64Histogram("lander.octree.query_duration",
		metric.WithDescription("Octree query latency"),
		metric.WithUnit("ms")); err != nil {
		return nil, fmt.Errorf("query duration histogram: %w", err)
	}
	if m.contacts, err = meter.Int64Counter("lander.contacts",
		metric.WithDescription("Ticks with terrain contact while descending")); err != nil {
		return nil, fmt.Errorf("contact counter: %w", err)
	}
	if m.transitions, err = meter.Int64Counter("lander.transitions",
		metric.WithDescription("Lifecycle state entries")); err != nil {
		return nil, fmt.Errorf("transition counter: %w", err)
	}
	return &m, nil
}

// Default creates instruments on the global meter provider, a no-op unless the host installs an SDK
func Default() (*Metrics, error) {
	return New(otel.Meter(instrumentationName))
}

// Noop returns instruments that record nothing
func Noop() *Metrics {
	m, _ := New(noop.Meter{})
	return m
}

func (m *Metrics) RayQuery(ctx context.Context, d time.Duration) {
	m.rayQueries.Add(ctx, 1)
	m.queryDuration.Record(ctx, float64(d)/float64(time.Millisecond), kindRay)
}

func (m *Metrics) BoxQuery(ctx context.Context, d time.Duration) {
	m.boxQueries.Add(ctx, 1)
	m.queryDuration.Record(ctx, float64(d)/float64(time.Millisecond), kindBox)
}

func (m *Metrics) Contact(ctx context.Context) {
	m.contacts.Add(ctx, 1)
}

// Transition counts entry into state
func (m *Metrics) Transition(ctx context.Context, state string) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state)))
}
