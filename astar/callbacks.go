package astar

// GoalFunc reports whether state satisfies the goal, optionally against an
// explicit goalState (nil when the problem encodes its goal implicitly).
// Must be pure and stateless (spec.md §6).
type GoalFunc func(state, goalState *State) bool

// NeighborSink receives neighbor states produced by a VisitFunc. It wraps
// the StateAllocator so callbacks never construct a *State directly.
type NeighborSink struct {
	allocator *StateAllocator
	out       []*State
}

// NewNeighborSink returns a sink backed by alloc, for domain packages to
// exercise their VisitFunc directly in tests without a running Engine.
func NewNeighborSink(alloc *StateAllocator) *NeighborSink {
	return &NeighborSink{allocator: alloc}
}

// New interns neighbor bytes and appends the resulting state to the sink.
func (s *NeighborSink) New(data []byte) *State {
	st := s.allocator.New(data)
	s.out = append(s.out, st)
	return st
}

// Neighbors returns the states accumulated so far.
func (s *NeighborSink) Neighbors() []*State {
	return s.out
}

// VisitFunc expands state, appending each neighbor state to sink. Must not
// block (spec.md §6).
type VisitFunc func(state *State, sink *NeighborSink)

// HeuristicFunc estimates the cost from state to goalState. Must be
// non-negative; admissible for optimality, consistent for the cost-bound
// shortcut to be safe (spec.md §6).
type HeuristicFunc func(state, goalState *State) int

// DistanceFunc returns the step cost between adjacent states from and to.
// Must be positive (spec.md §6).
type DistanceFunc func(from, to *State) int

// Callbacks bundles the four domain-supplied functions an Engine needs.
type Callbacks struct {
	Goal      GoalFunc
	Visit     VisitFunc
	Heuristic HeuristicFunc
	Distance  DistanceFunc
}
