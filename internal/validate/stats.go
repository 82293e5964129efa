package validate

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	validator  string
	durationMs int64
	defects    int
}

// StatsSnapshot is a point-in-time aggregate of one validator's run times.
type StatsSnapshot struct {
	Runs    int     `json:"runs"`
	Defects int     `json:"defects"`
	MinMs   int64   `json:"min_ms"`
	MaxMs   int64   `json:"max_ms"`
	AvgMs   float64 `json:"avg_ms"`
	P50Ms   float64 `json:"p50_ms"`
	P95Ms   float64 `json:"p95_ms"`
	P99Ms   float64 `json:"p99_ms"`
}

// Stats tracks recent per-validator run times within a rolling window.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds one run of validator over a document.
func (s *Stats) Record(validator string, durationMs int64, defects int) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		validator:  validator,
		durationMs: durationMs,
		defects:    defects,
	})
}

// Snapshot aggregates the samples in the window per validator name.
func (s *Stats) Snapshot() map[string]StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	byName := make(map[string][]sample)
	for _, sm := range s.samples {
		byName[sm.validator] = append(byName[sm.validator], sm)
	}

	out := make(map[string]StatsSnapshot, len(byName))
	for name, samples := range byName {
		out[name] = aggregate(samples)
	}
	return out
}

func aggregate(samples []sample) StatsSnapshot {
	values := make([]int64, 0, len(samples))
	var sum int64
	defects := 0
	for _, sm := range samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
		defects += sm.defects
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return StatsSnapshot{
		Runs:    len(values),
		Defects: defects,
		MinMs:   values[0],
		MaxMs:   values[len(values)-1],
		AvgMs:   float64(sum) / float64(len(values)),
		P50Ms:   percentile(values, 50),
		P95Ms:   percentile(values, 95),
		P99Ms:   percentile(values, 99),
	}
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
