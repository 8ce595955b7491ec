package slicedist

import (
	"github.com/hupe1980/slicedist/cost"
)

type options struct {
	mergeCost cost.Func
	splitCost cost.Func
	logger    *Logger
	metrics   MetricsCollector
}

// Option configures Compare, Inspect, and Overlap behavior.
type Option func(*options)

func applyOptions(optFns []Option) options {
	o := options{
		mergeCost: cost.Max,
		splitCost: cost.Max,
		logger:    NoopLogger(),
		metrics:   NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// WithMergeCost sets the cost function charged when a current group absorbs
// members from more than one prior group.
//
// If nil is passed, cost.Max is used.
func WithMergeCost(f cost.Func) Option {
	return func(o *options) {
		if f == nil {
			f = cost.Max
		}
		o.mergeCost = f
	}
}

// WithSplitCost sets the cost function charged when a prior group's members
// are spread across more than one current group.
//
// If nil is passed, cost.Max is used.
func WithSplitCost(f cost.Func) Option {
	return func(o *options) {
		if f == nil {
			f = cost.Max
		}
		o.splitCost = f
	}
}

// WithLogger configures structured logging. Logging is informational only
// and never affects computed results.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
//
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}
