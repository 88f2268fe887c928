package memo

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/on-the-ground/trackmemo/memo"

const (
	outcomeHit       = "hit"
	outcomeRecompute = "recompute"
)

type metrics struct {
	calls    metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
	attrs    []attribute.KeyValue
}

func newMetrics(meter metric.Meter, name string) (*metrics, error) {
	calls, err := meter.Int64Counter(
		"memo.calls",
		metric.WithDescription("Memoized function calls by outcome"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter(
		"memo.errors",
		metric.WithDescription("Recomputes that failed and were not cached"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"memo.recompute.duration_ms",
		metric.WithDescription("Wrapped function execution time in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	var attrs []attribute.KeyValue
	if name != "" {
		attrs = append(attrs, attribute.String("memo.name", name))
	}
	return &metrics{calls: calls, errors: errs, duration: duration, attrs: attrs}, nil
}

func noopMetrics() *metrics {
	m, _ := newMetrics(noop.NewMeterProvider().Meter(meterName), "")
	return m
}

func (m *metrics) hit(ctx context.Context) {
	m.calls.Add(ctx, 1, m.with(attribute.String("memo.outcome", outcomeHit)))
}

func (m *metrics) recompute(ctx context.Context, elapsed time.Duration, err error) {
	opt := m.with(attribute.String("memo.outcome", outcomeRecompute))
	m.calls.Add(ctx, 1, opt)
	m.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), m.with())
	if err != nil {
		m.errors.Add(ctx, 1, m.with())
	}
}

func (m *metrics) with(extra ...attribute.KeyValue) metric.MeasurementOption {
	attrs := make([]attribute.KeyValue, 0, len(m.attrs)+len(extra))
	attrs = append(attrs, m.attrs...)
	attrs = append(attrs, extra...)
	return metric.WithAttributes(attrs...)
}
