package validate

import (
	"testing"
	"time"
)

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record("A", 100, 1)
	stats.Record("A", 200, 0)
	stats.Record("A", 300, 2)
	stats.Record("A", 400, 0)
	stats.Record("A", 500, 0)
	stats.Record("B", 7, 0)

	snaps := stats.Snapshot()
	if len(snaps) != 2 {
		t.Fatalf("expected 2 validators, got %d", len(snaps))
	}
	snap := snaps["A"]
	if snap.Runs != 5 {
		t.Fatalf("expected runs=5, got %d", snap.Runs)
	}
	if snap.Defects != 3 {
		t.Fatalf("expected defects=3, got %d", snap.Defects)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
	if b := snaps["B"]; b.Runs != 1 || b.P99Ms != 7 {
		t.Fatalf("expected single B sample, got %+v", b)
	}
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewStats(10 * time.Millisecond)
	stats.Record("A", 100, 0)
	time.Sleep(25 * time.Millisecond)

	if snap := stats.Snapshot(); len(snap) != 0 {
		t.Fatalf("expected no validators after prune, got %d", len(snap))
	}

	stats.Record("A", 200, 0)
	snap := stats.Snapshot()["A"]
	if snap.Runs != 1 {
		t.Fatalf("expected runs=1 for fresh sample, got %d", snap.Runs)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record("A", -10, 0)
	snap := stats.Snapshot()["A"]
	if snap.Runs != 1 {
		t.Fatalf("expected runs=1, got %d", snap.Runs)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
