package memo

import (
	"github.com/on-the-ground/trackmemo/track"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// CompareFunc inspects the raw new arguments and the records of the cached call.
type CompareFunc func(args []any, previous []*track.Record) bool

type config struct {
	track         track.Config
	shouldCompare CompareFunc
	isChanged     CompareFunc
	name          string
	logger        *zap.Logger
	meterProvider metric.MeterProvider
}

// Option configures a memoized function.
type Option func(*config)

func newConfig(opts []Option) config {
	cfg := config{
		logger:        zap.NewNop(),
		meterProvider: otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithShallowCompare disables tracking: arguments are compared by identity only.
// Mutating a structured argument in place then never triggers a recompute.
func WithShallowCompare() Option {
	return func(c *config) {
		c.track.ShallowCompare = true
	}
}

// WithShouldCompare gates change detection. When fn returns false the cached
// result is returned without comparing anything.
//
// fn runs without any lock held. It may call the memoized function itself,
// as long as it does not do so unconditionally.
func WithShouldCompare(fn CompareFunc) Option {
	return func(c *config) {
		c.shouldCompare = fn
	}
}

// WithIsChanged replaces change detection entirely. fn decides alone whether to recompute.
// Like the WithShouldCompare hook, it runs without any lock held.
func WithIsChanged(fn CompareFunc) Option {
	return func(c *config) {
		c.isChanged = fn
	}
}

// WithName labels logs and metrics of this memoized function.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMeterProvider sets where call metrics go. It defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		if mp != nil {
			c.meterProvider = mp
		}
	}
}
