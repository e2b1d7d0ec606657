package indirectvec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Vectors are single-threaded, but one collector may be shared by many vectors.
type MetricsCollector interface {
	// RecordCreate is called after an object is constructed in the pool.
	RecordCreate()

	// RecordDestroy is called after an object is destroyed.
	RecordDestroy()

	// RecordSort is called after a sort over n elements.
	RecordSort(n int, stable bool, duration time.Duration)

	// RecordFailure is called when an operation is rejected.
	RecordFailure(op string, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate()                       {}
func (NoopMetricsCollector) RecordDestroy()                      {}
func (NoopMetricsCollector) RecordSort(int, bool, time.Duration) {}
func (NoopMetricsCollector) RecordFailure(string, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	Creates         atomic.Int64
	Destroys        atomic.Int64
	SortCount       atomic.Int64
	StableSortCount atomic.Int64
	SortedElements  atomic.Int64
	SortTotalNanos  atomic.Int64
	Failures        atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate() {
	b.Creates.Add(1)
}

// RecordDestroy implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDestroy() {
	b.Destroys.Add(1)
}

// RecordSort implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSort(n int, stable bool, duration time.Duration) {
	if stable {
		b.StableSortCount.Add(1)
	} else {
		b.SortCount.Add(1)
	}
	b.SortedElements.Add(int64(n))
	b.SortTotalNanos.Add(duration.Nanoseconds())
}

// RecordFailure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFailure(string, error) {
	b.Failures.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		Creates:         b.Creates.Load(),
		Destroys:        b.Destroys.Load(),
		Live:            b.Creates.Load() - b.Destroys.Load(),
		SortCount:       b.SortCount.Load(),
		StableSortCount: b.StableSortCount.Load(),
		SortedElements:  b.SortedElements.Load(),
		SortAvgNanos:    b.getAvgSortNanos(),
		Failures:        b.Failures.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSortNanos() int64 {
	count := b.SortCount.Load() + b.StableSortCount.Load()
	if count == 0 {
		return 0
	}
	return b.SortTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Creates         int64
	Destroys        int64
	Live            int64
	SortCount       int64
	StableSortCount int64
	SortedElements  int64
	SortAvgNanos    int64
	Failures        int64
}
