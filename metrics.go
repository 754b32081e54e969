package framesim

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSample is called after each Sample or SampleParallel run.
	// err is nil if the run succeeded.
	RecordSample(samples, measurements int, duration time.Duration, err error)

	// RecordShard is called after each shard of a parallel run. memoryInUse
	// is the frame memory reserved by all running shards at that moment.
	RecordShard(samples int, memoryInUse int64, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSample(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordShard(int, int64, time.Duration)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SampleCount       atomic.Int64
	SampleErrors      atomic.Int64
	SamplesTotal      atomic.Int64
	MeasurementsTotal atomic.Int64
	SampleTotalNanos  atomic.Int64
	ShardCount        atomic.Int64
	ShardTotalNanos   atomic.Int64
	PeakMemoryBytes   atomic.Int64
}

// RecordSample implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSample(samples, measurements int, duration time.Duration, err error) {
	b.SampleCount.Add(1)
	b.SampleTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SampleErrors.Add(1)
		return
	}
	b.SamplesTotal.Add(int64(samples))
	b.MeasurementsTotal.Add(int64(samples) * int64(measurements))
}

// RecordShard implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShard(samples int, memoryInUse int64, duration time.Duration) {
	b.ShardCount.Add(1)
	b.ShardTotalNanos.Add(duration.Nanoseconds())
	for {
		peak := b.PeakMemoryBytes.Load()
		if memoryInUse <= peak || b.PeakMemoryBytes.CompareAndSwap(peak, memoryInUse) {
			return
		}
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SampleCount:       b.SampleCount.Load(),
		SampleErrors:      b.SampleErrors.Load(),
		SamplesTotal:      b.SamplesTotal.Load(),
		MeasurementsTotal: b.MeasurementsTotal.Load(),
		SampleAvgNanos:    avg(b.SampleTotalNanos.Load(), b.SampleCount.Load()),
		ShardCount:        b.ShardCount.Load(),
		ShardAvgNanos:     avg(b.ShardTotalNanos.Load(), b.ShardCount.Load()),
		PeakMemoryBytes:   b.PeakMemoryBytes.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SampleCount       int64
	SampleErrors      int64
	SamplesTotal      int64
	MeasurementsTotal int64
	SampleAvgNanos    int64
	ShardCount        int64
	ShardAvgNanos     int64
	PeakMemoryBytes   int64
}
