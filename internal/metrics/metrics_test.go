package metrics

import (
	"context"
	"testing"
)

func TestLogMetricsCounters(t *testing.T) {
	m := NewLogMetrics(nil)
	ctx := context.Background()

	m.IncrementCounter(ctx, MetricWalletsProcessed, 3)
	m.IncrementCounter(ctx, MetricWalletsProcessed, 2)
	m.IncrementCounter(ctx, MetricLamportsMoved, 1000)

	if got := m.Counter(MetricWalletsProcessed); got != 5 {
		t.Errorf("Counter(%s) = %d, want 5", MetricWalletsProcessed, got)
	}
	if got := m.Counter("never_touched"); got != 0 {
		t.Errorf("Counter(untouched) = %d, want 0", got)
	}

	snap := m.Counters()
	if snap[MetricLamportsMoved] != 1000 {
		t.Errorf("snapshot = %v", snap)
	}
	// The snapshot is a copy; mutating it must not touch the live counters.
	snap[MetricLamportsMoved] = 0
	if got := m.Counter(MetricLamportsMoved); got != 1000 {
		t.Errorf("Counter after snapshot mutation = %d, want 1000", got)
	}

	if err := m.Flush(ctx); err != nil {
		t.Errorf("Flush: %v", err)
	}
	if err := m.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestCollectionFansOut(t *testing.T) {
	a := NewLogMetrics(nil)
	b := NewLogMetrics(nil)
	c := NewCollection(a)
	c.Add(b)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	ctx := context.Background()
	c.IncrementCounter(ctx, MetricBatchesSubmitted, 4)

	if a.Counter(MetricBatchesSubmitted) != 4 || b.Counter(MetricBatchesSubmitted) != 4 {
		t.Errorf("fan-out counters = %d / %d, want 4 / 4",
			a.Counter(MetricBatchesSubmitted), b.Counter(MetricBatchesSubmitted))
	}

	if err := c.Flush(ctx); err != nil {
		t.Errorf("Flush: %v", err)
	}
	if err := c.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestNoopMetricsDoesNothing(t *testing.T) {
	var m Metrics = NewNoopMetrics()
	ctx := context.Background()

	if err := m.IncrementCounter(ctx, MetricWalletsFailed, 1); err != nil {
		t.Errorf("IncrementCounter: %v", err)
	}
	if err := m.Flush(ctx); err != nil {
		t.Errorf("Flush: %v", err)
	}
	if err := m.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
