package astar

import (
	"context"
	"time"
)

// worker runs the local A* loop of spec.md §4.5: pop best-open, expand,
// route messages to owning workers, drain inbox, repeat until the engine's
// termination predicate (spec.md §5) tells it to stop. Each worker owns
// exactly one open heap and needs no internal locking around it.
type worker struct {
	engine *Engine
	id     int
	first  bool

	heap  *openHeap
	stats *WorkerStats

	// stopped is set once this worker has either pruned on the cost bound
	// or found a goal node (spec.md §4.5, steps b/c): it stops popping and
	// expanding but keeps draining its inbox to free in-flight messages
	// until global termination (spec.md §9).
	stopped bool
}

func newWorker(e *Engine, id int, first bool) *worker {
	return &worker{
		engine: e,
		id:     id,
		first:  first,
		heap:   newOpenHeap(),
		stats:  e.stats.Workers[id],
	}
}

func (w *worker) run(ctx context.Context) {
	lastIdle := false
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if !w.engine.isRunning() {
			return
		}

		if !w.stopped {
			w.localStep()
		}
		w.drainInbox()

		idleNow := w.stopped || w.heap.size() == 0
		if idleNow != lastIdle {
			if idleNow {
				w.engine.markIdle()
			} else {
				w.engine.markBusy()
			}
			lastIdle = idleNow
		}

		if idleNow {
			select {
			case <-ctx.Done():
				return
			case <-time.After(idlePollInterval):
			}
		}
	}
}

// localStep implements spec.md §4.5 step 1: pop the best-f node, apply the
// cost-bound and goal checks, and route relaxations for its neighbors.
func (w *worker) localStep() {
	node, ok := w.heap.popMin()
	if !ok {
		return
	}

	node.mu.Lock()
	node.visited = true
	g := node.g
	node.mu.Unlock()
	w.stats.incVisited()

	if sol := w.engine.currentSolution(); sol != nil {
		var pruned bool
		switch w.engine.cfg.CostBound {
		case CostBoundConsistent:
			pruned = node.F() >= sol.G()
		default:
			pruned = g > sol.G()
		}
		if pruned {
			w.stopped = true
			return
		}
	}

	if w.engine.callbacks.Goal(node.State, w.engine.goalState) {
		w.engine.recordSolution(node, w.first)
		w.stopped = true
		return
	}

	sink := &NeighborSink{allocator: w.engine.allocator}
	w.engine.callbacks.Visit(node.State, sink)
	w.stats.addExpanded(len(sink.out))

	for _, neighborState := range sink.out {
		w.relax(node, g, neighborState)
	}
}

// relax implements spec.md §4.5 step 1e: look up (or create) the node for
// neighborState, apply the relaxation rule, and route a message to its
// owning worker.
func (w *worker) relax(parent *Node, parentG int, neighborState *State) {
	owner := ownerOf(neighborState, w.engine.numWorkers)
	neighbor, created := w.engine.nodes.getOrInsert(neighborState)

	if created {
		neighbor.mu.Lock()
		neighbor.parent = parent
		neighbor.g = parentG + w.engine.callbacks.Distance(parent.State, neighbor.State)
		neighbor.h = w.engine.callbacks.Heuristic(neighbor.State, w.engine.goalState)
		newCost := neighbor.g + neighbor.h
		neighbor.mu.Unlock()

		w.engine.channel.send(owner, &message{node: neighbor, oldCost: 0, newCost: newCost})
		return
	}

	neighbor.mu.Lock()
	if neighbor.visited {
		neighbor.mu.Unlock()
		return
	}

	gTry := parentG + w.engine.callbacks.Distance(parent.State, neighbor.State)
	if gTry >= neighbor.g {
		neighbor.mu.Unlock()
		return
	}

	oldCost := neighbor.g + neighbor.h
	neighbor.parent = parent
	neighbor.g = gTry
	neighbor.h = w.engine.callbacks.Heuristic(neighbor.State, w.engine.goalState)
	newCost := neighbor.g + neighbor.h
	neighbor.mu.Unlock()

	w.engine.channel.send(owner, &message{node: neighbor, oldCost: oldCost, newCost: newCost})
}

// drainInbox implements spec.md §4.5 step 2. Once stopped, messages are
// still received (and thus freed) but no longer inserted into the open
// heap: spec.md's "Stopping is a local termination: the worker will no
// longer enqueue into its own heap".
func (w *worker) drainInbox() {
	for {
		msg, ok := w.engine.channel.receive(w.id)
		if !ok {
			return
		}
		if w.stopped {
			continue
		}
		if msg.oldCost == 0 {
			w.heap.insert(msg.newCost, msg.node)
		} else {
			w.heap.update(msg.oldCost, msg.newCost, msg.node)
		}
	}
}
