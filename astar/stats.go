package astar

import (
	"sync/atomic"
	"time"
)

// WorkerStats holds one worker's expanded/visited counters. Only the owning
// worker writes them (spec.md §5); they are updated and read atomically so
// a concurrently running telemetry publisher (see the telemetry package)
// can read them without racing the worker.
type WorkerStats struct {
	expanded int64
	visited  int64
}

func (s *WorkerStats) addExpanded(n int) { atomic.AddInt64(&s.expanded, int64(n)) }
func (s *WorkerStats) incVisited()       { atomic.AddInt64(&s.visited, 1) }

// Expanded returns the number of neighbor states generated so far.
func (s *WorkerStats) Expanded() int64 { return atomic.LoadInt64(&s.expanded) }

// Visited returns the number of nodes popped from the open heap so far.
func (s *WorkerStats) Visited() int64 { return atomic.LoadInt64(&s.visited) }

// Stats aggregates per-worker counters plus a sampled visited-per-second rate,
// readable by the caller between Create and Close (spec.md §3,
// "Lifecycle" — statistics outlive a single solve call).
type Stats struct {
	Workers []*WorkerStats

	start time.Time
	rate  *AtomicFloat64
}

func newStats(numWorkers int) *Stats {
	s := &Stats{
		Workers: make([]*WorkerStats, numWorkers),
		start:   time.Now(),
		rate:    NewAtomicFloat64(0),
	}
	for i := range s.Workers {
		s.Workers[i] = &WorkerStats{}
	}
	return s
}

// Expanded sums expanded states across all workers.
func (s *Stats) Expanded() int64 {
	var total int64
	for _, w := range s.Workers {
		total += w.Expanded()
	}
	return total
}

// Visited sums visited states across all workers.
func (s *Stats) Visited() int64 {
	var total int64
	for _, w := range s.Workers {
		total += w.Visited()
	}
	return total
}

// Elapsed returns wall-clock time since the stats were created (i.e. since
// Solve began).
func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Rate returns the most recently sampled nodes-visited-per-second gauge; 0
// until the first sample lands.
func (s *Stats) Rate() float64 {
	return s.rate.AtomicRead()
}

// sample recomputes the rate gauge from the current visited total and
// elapsed time. Intended to be called periodically by a ticker, not per
// relaxation (spec.md's stats are cheap counters, not per-event telemetry).
func (s *Stats) sample() {
	elapsed := s.Elapsed().Seconds()
	if elapsed <= 0 {
		return
	}
	s.rate.AtomicSet(float64(s.Visited()) / elapsed)
}
