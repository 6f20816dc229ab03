package chunkset

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    saveCounter   prometheus.Counter
//	    loadHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSave(bytes int, duration time.Duration, err error) {
//	    p.saveCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSave is called after each snapshot save.
	// bytes is the stored size, err is nil if successful.
	RecordSave(bytes int, duration time.Duration, err error)

	// RecordLoad is called after each snapshot load.
	RecordLoad(bytes int, duration time.Duration, err error)

	// RecordUnion is called after each parallel many-way union.
	// inputs is the number of sets merged.
	RecordUnion(inputs int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSave(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordUnion(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SaveCount       atomic.Int64
	SaveErrors      atomic.Int64
	SaveBytes       atomic.Int64
	SaveTotalNanos  atomic.Int64
	LoadCount       atomic.Int64
	LoadErrors      atomic.Int64
	LoadBytes       atomic.Int64
	LoadTotalNanos  atomic.Int64
	UnionCount      atomic.Int64
	UnionErrors     atomic.Int64
	UnionInputs     atomic.Int64
	UnionTotalNanos atomic.Int64
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(bytes int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SaveErrors.Add(1)
		return
	}
	b.SaveBytes.Add(int64(bytes))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(bytes int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadBytes.Add(int64(bytes))
}

// RecordUnion implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnion(inputs int, duration time.Duration, err error) {
	b.UnionCount.Add(1)
	b.UnionInputs.Add(int64(inputs))
	b.UnionTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.UnionErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SaveCount:     b.SaveCount.Load(),
		SaveErrors:    b.SaveErrors.Load(),
		SaveBytes:     b.SaveBytes.Load(),
		SaveAvgNanos:  avgNanos(&b.SaveTotalNanos, &b.SaveCount),
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		LoadBytes:     b.LoadBytes.Load(),
		LoadAvgNanos:  avgNanos(&b.LoadTotalNanos, &b.LoadCount),
		UnionCount:    b.UnionCount.Load(),
		UnionErrors:   b.UnionErrors.Load(),
		UnionInputs:   b.UnionInputs.Load(),
		UnionAvgNanos: avgNanos(&b.UnionTotalNanos, &b.UnionCount),
	}
}

func avgNanos(total, count *atomic.Int64) int64 {
	n := count.Load()
	if n == 0 {
		return 0
	}
	return total.Load() / n
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SaveCount     int64
	SaveErrors    int64
	SaveBytes     int64
	SaveAvgNanos  int64
	LoadCount     int64
	LoadErrors    int64
	LoadBytes     int64
	LoadAvgNanos  int64
	UnionCount    int64
	UnionErrors   int64
	UnionInputs   int64
	UnionAvgNanos int64
}
