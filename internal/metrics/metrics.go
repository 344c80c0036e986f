// Package metrics provides interfaces and implementations for counting the
// work a solfleet run performs.
//
// The Metrics interface defines methods for updating, flushing, and shutting
// down metrics. Operations increment counters as wallets and batches are
// processed; the final counter values feed the end-of-run summary.
package metrics

import (
	"context"
	"log/slog"
	"sync"
)

// Metrics defines the interface for collecting run metrics.
// Implementations can send metrics to various backends.
type Metrics interface {
	// Flush reports any buffered metrics data.
	Flush(ctx context.Context) error

	// Shutdown gracefully shuts down the metrics system, performing cleanup.
	Shutdown(ctx context.Context) error

	// IncrementCounter increments a counter metric by the specified value.
	// Counters track values that only increase, like wallets processed.
	IncrementCounter(ctx context.Context, name string, value uint64) error
}

// Collection manages multiple Metrics implementations and delegates calls to all of them.
type Collection struct {
	metrics []Metrics
	mu      sync.RWMutex
}

// NewCollection creates a new Collection with the given metrics implementations.
func NewCollection(metrics ...Metrics) *Collection {
	return &Collection{
		metrics: metrics,
	}
}

// Add adds a new Metrics implementation to the collection.
func (c *Collection) Add(m Metrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = append(c.metrics, m)
}

// Flush flushes all metrics in the collection.
func (c *Collection) Flush(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.metrics {
		if err := m.Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown shuts down all metrics in the collection.
func (c *Collection) Shutdown(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.metrics {
		if err := m.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// IncrementCounter increments a counter across all implementations.
func (c *Collection) IncrementCounter(ctx context.Context, name string, value uint64) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.metrics {
		if err := m.IncrementCounter(ctx, name, value); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of metrics implementations in the collection.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.metrics)
}

// NoopMetrics is a Metrics implementation that does nothing.
// Useful for testing or when metrics are disabled.
type NoopMetrics struct{}

// NewNoopMetrics creates a new NoopMetrics.
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) Flush(ctx context.Context) error    { return nil }
func (n *NoopMetrics) Shutdown(ctx context.Context) error { return nil }
func (n *NoopMetrics) IncrementCounter(ctx context.Context, name string, value uint64) error {
	return nil
}

// LogMetrics is a Metrics implementation that accumulates counters in memory
// and logs them using slog.
type LogMetrics struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	counters map[string]uint64
}

// NewLogMetrics creates a new LogMetrics with the given logger.
// If logger is nil, the default logger is used.
func NewLogMetrics(logger *slog.Logger) *LogMetrics {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMetrics{
		logger:   logger,
		counters: make(map[string]uint64),
	}
}

// Flush logs all current counter values.
func (l *LogMetrics) Flush(ctx context.Context) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	l.logger.Info("metrics flush", "counters", l.counters)
	return nil
}

// Shutdown shuts down the log metrics.
func (l *LogMetrics) Shutdown(ctx context.Context) error {
	l.logger.Debug("metrics shutdown")
	return nil
}

// IncrementCounter logs the counter increment.
func (l *LogMetrics) IncrementCounter(ctx context.Context, name string, value uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counters[name] += value
	l.logger.Debug("counter incremented", "name", name, "value", value, "total", l.counters[name])
	return nil
}

// Counter returns the current value of the named counter.
func (l *LogMetrics) Counter(name string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.counters[name]
}

// Counters returns a snapshot of all counter values.
func (l *LogMetrics) Counters() map[string]uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]uint64, len(l.counters))
	for k, v := range l.counters {
		out[k] = v
	}
	return out
}

// Metric names used by the wallet operations.
const (
	MetricWalletsProcessed = "wallets_processed"
	MetricWalletsSucceeded = "wallets_succeeded"
	MetricWalletsFailed    = "wallets_failed"
	MetricWalletsSkipped   = "wallets_skipped"
	MetricBatchesSubmitted = "batches_submitted"
	MetricBatchesConfirmed = "batches_confirmed"
	MetricBatchesFailed    = "batches_failed"
	MetricRecordsImported  = "records_imported"
	MetricRecordsSkipped   = "records_skipped"
	MetricLamportsMoved    = "lamports_transferred"
)
