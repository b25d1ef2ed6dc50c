package astar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
)

// CostBoundRule selects which inequality a worker applies when deciding
// that a popped node can no longer improve on the current solution
// (spec.md §9, Design Notes: "the cost-bound check is strict ... under a
// consistent admissible heuristic u.f >= solution.g suffices and is
// tighter. Either is acceptable; pick one and apply uniformly").
type CostBoundRule int

const (
	// CostBoundStrict applies the literal rule from spec.md §4.5: u.g > solution.g.
	CostBoundStrict CostBoundRule = iota
	// CostBoundConsistent applies the tighter rule, sound only under a
	// consistent heuristic: u.f >= solution.g.
	CostBoundConsistent
)

// idlePollInterval is how long an idle worker backs off before re-checking
// its inbox; idleQuiescePeriod is how long the engine waits after the idle
// counter first reaches N before trusting it, to guard against the
// lost-wakeup race called out in spec.md §5.
const (
	idlePollInterval  = time.Millisecond
	idleQuiescePeriod = 3 * time.Millisecond
	statSampleEvery   = 100 * time.Millisecond
)

// EngineConfig holds the engine's optional tunables: spec.md's Design Notes
// leave the cost-bound rule as an implementer's choice, and a deadline is
// the ambient-stack rendition of "the caller may wrap solve in an external
// watchdog" (spec.md §5/§7).
type EngineConfig struct {
	CostBound CostBoundRule
	Deadline  time.Duration // 0 = no deadline
}

// DefaultEngineConfig reproduces spec.md's literal prescription: a strict
// cost bound and no deadline.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{CostBound: CostBoundStrict}
}

// Engine is the parallel A* scheduler (spec.md §4.6): it owns the shared
// state allocator, node table, channel bank, per-worker stats, and the
// solution/goal shared state protected by mu.
type Engine struct {
	cfg        EngineConfig
	callbacks  Callbacks
	numWorkers int

	allocator *StateAllocator
	nodes     *nodeTable
	channel   *channelBank
	stats     *Stats

	mu        sync.Mutex
	solution  *Node
	goalState *State
	running   bool

	idleMu    sync.Mutex
	idleCount int
}

// NewEngine constructs an Engine for states of structSize bytes, with
// numWorkers workers. numWorkers=1 is the sequential specialization spec.md
// describes ("the trivial sequential variant ... is the parallel engine
// specialised to one worker with no inter-worker channel"): it is the same
// code path run with a single worker, not a separate implementation.
// Returns an error instead of the spec's bare "none" on construction
// failure (spec.md §7).
func NewEngine(structSize int, callbacks Callbacks, numWorkers int, cfg EngineConfig) (*Engine, error) {
	if structSize <= 0 {
		return nil, errors.New("astar: structSize must be positive")
	}
	if numWorkers < 1 {
		return nil, errors.New("astar: numWorkers must be at least 1")
	}
	if callbacks.Goal == nil || callbacks.Visit == nil || callbacks.Heuristic == nil || callbacks.Distance == nil {
		return nil, errors.New("astar: Goal, Visit, Heuristic and Distance callbacks must all be set")
	}

	return &Engine{
		cfg:        cfg,
		callbacks:  callbacks,
		numWorkers: numWorkers,
		allocator:  NewStateAllocator(structSize),
		nodes:      newNodeTable(),
		channel:    newChannelBank(numWorkers),
		stats:      newStats(numWorkers),
		running:    true,
	}, nil
}

// Stats returns the engine's readable per-worker and aggregate counters,
// safe to read while a Solve is in flight (spec.md §3, "Lifecycle").
func (e *Engine) Stats() *Stats { return e.stats }

// Close tears the engine down, freeing any relaxation messages still
// resident in the channel bank (spec.md §9: "the spec mandates freeing all
// in-flight messages on destroy", resolving the Open Question about the
// source's inconsistent channel-destroy semantics).
func (e *Engine) Close() {
	e.channel.destroy()
}

// ownerOf returns the worker id permitted to hold state in its open heap
// (spec.md's "owning worker", §3/GLOSSARY).
func ownerOf(state *State, n int) int {
	return int(state.fingerprint % uint64(n))
}

func (e *Engine) isRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) stopRunning() {
	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
}

// currentSolution returns the best goal node found so far, or nil.
func (e *Engine) currentSolution() *Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.solution
}

// recordSolution stores node as the solution if none exists yet, or
// replaces it iff node is strictly cheaper (spec.md §4.5, "Goal check").
// In first-solution mode the first finder also flips running so every
// worker exits at the top of its next iteration (spec.md §5).
func (e *Engine) recordSolution(node *Node, first bool) {
	nodeF := node.F()
	e.mu.Lock()
	if e.solution == nil || nodeF < e.solution.F() {
		e.solution = node
	}
	if first {
		e.running = false
	}
	e.mu.Unlock()
}

// markIdle/markBusy implement the idle-count termination barrier of
// spec.md §5: workers increment/decrement a shared counter as their own
// idle status changes; when the counter reaches numWorkers, maybeTerminate
// double-checks it after a short quiesce period before flipping running,
// to avoid racing a concurrent send that would otherwise be a lost wakeup.
func (e *Engine) markIdle() {
	e.idleMu.Lock()
	e.idleCount++
	reached := e.idleCount == e.numWorkers
	e.idleMu.Unlock()
	if reached {
		e.maybeTerminate()
	}
}

func (e *Engine) markBusy() {
	e.idleMu.Lock()
	if e.idleCount > 0 {
		e.idleCount--
	}
	e.idleMu.Unlock()
}

func (e *Engine) maybeTerminate() {
	time.Sleep(idleQuiescePeriod)
	e.idleMu.Lock()
	reached := e.idleCount == e.numWorkers
	e.idleMu.Unlock()
	if reached {
		e.stopRunning()
	}
}

// Solve interns initial (and goal, if non-nil) into states, seeds the
// owning worker's inbox with a bootstrap relaxation message, launches
// numWorkers workers, and blocks until they all terminate (spec.md §4.6).
// first selects first-solution-mode vs. optimal mode (spec.md §5). ctx lets
// an external watchdog cancel the run, the ambient-stack rendition of
// spec.md §7's "the caller may wrap solve in an external watchdog".
// Returns (nil, nil) if the search exhausts without a goal; a non-nil error
// only for context cancellation.
func (e *Engine) Solve(ctx context.Context, initialBytes, goalBytes []byte, first bool) (*Node, error) {
	initial := e.allocator.New(initialBytes)

	var goalState *State
	if goalBytes != nil {
		goalState = e.allocator.New(goalBytes)
	}
	e.goalState = goalState

	initialNode, _ := e.nodes.getOrInsert(initial)
	initialNode.mu.Lock()
	initialNode.g = 0
	initialNode.h = e.callbacks.Heuristic(initial, goalState)
	bootstrapCost := initialNode.g + initialNode.h
	initialNode.mu.Unlock()

	// spec.md §9, Open Question: the source sends the bootstrap message of
	// the wrong type on this path (it passes the node pointer where a
	// relaxation message is expected). Send a properly constructed
	// relaxation message with old_cost=0 instead.
	owner := ownerOf(initial, e.numWorkers)
	e.channel.send(owner, &message{node: initialNode, oldCost: 0, newCost: bootstrapCost})

	solveCtx := ctx
	if e.cfg.Deadline > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, e.cfg.Deadline)
		defer cancel()
	}

	sampleDone := make(chan struct{})
	go func() {
		for range channerics.NewTicker(sampleDone, statSampleEvery) {
			e.stats.sample()
		}
	}()

	var wg sync.WaitGroup
	wg.Add(e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		w := newWorker(e, i, first)
		go func() {
			defer wg.Done()
			w.run(solveCtx)
		}()
	}

	allDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(allDone)
	}()

	var solveErr error
	select {
	case <-allDone:
	case <-solveCtx.Done():
		e.stopRunning()
		<-allDone
		solveErr = fmt.Errorf("astar: solve cancelled: %w", solveCtx.Err())
	}
	close(sampleDone)
	e.stats.sample()

	if solveErr != nil && ctx.Err() == nil {
		// The deadline fired, not the caller's own context; surface nothing
		// solved rather than an error the caller didn't ask for.
		solveErr = nil
	}

	e.mu.Lock()
	solution := e.solution
	e.mu.Unlock()
	return solution, solveErr
}
