package slicedist

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordCompare is called after each comparison.
	// cost is the computed distance, duration the total time taken,
	// err is nil if successful.
	RecordCompare(cost float64, duration time.Duration, err error)

	// RecordInspect is called after each snapshot inspection.
	// groups is the number of groups walked.
	RecordInspect(groups int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCompare(float64, time.Duration, error) {}
func (NoopMetricsCollector) RecordInspect(int, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CompareCount      atomic.Int64
	CompareErrors     atomic.Int64
	CompareTotalNanos atomic.Int64
	InspectCount      atomic.Int64
	InspectErrors     atomic.Int64
	InspectGroups     atomic.Int64
}

// RecordCompare implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompare(cost float64, duration time.Duration, err error) {
	b.CompareCount.Add(1)
	b.CompareTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CompareErrors.Add(1)
	}
}

// RecordInspect implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInspect(groups int, duration time.Duration, err error) {
	b.InspectCount.Add(1)
	b.InspectGroups.Add(int64(groups))
	if err != nil {
		b.InspectErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CompareCount:    b.CompareCount.Load(),
		CompareErrors:   b.CompareErrors.Load(),
		CompareAvgNanos: b.avgCompareNanos(),
		InspectCount:    b.InspectCount.Load(),
		InspectErrors:   b.InspectErrors.Load(),
		InspectGroups:   b.InspectGroups.Load(),
	}
}

func (b *BasicMetricsCollector) avgCompareNanos() int64 {
	count := b.CompareCount.Load()
	if count == 0 {
		return 0
	}
	return b.CompareTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CompareCount    int64
	CompareErrors   int64
	CompareAvgNanos int64
	InspectCount    int64
	InspectErrors   int64
	InspectGroups   int64
}
