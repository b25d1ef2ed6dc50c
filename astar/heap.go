package astar

import "container/heap"

// heapEntry is one slot of a worker's open heap: a node at a given key
// (f = g+h at the time of insertion). The key is snapshotted rather than
// read live from the node so that insert/update have a single, unambiguous
// key to compare against (spec.md §4.3: "update must be O(log n) when
// implemented with an auxiliary index from payload to heap position").
type heapEntry struct {
	key   int
	node  *Node
	index int // maintained by heap.Interface's Swap, used by the aux index
}

// openHeap is a single worker's open-set: a binary min-heap over f keyed
// entries, realized with container/heap (grounded in the retrieved
// pdrpinto/astar reference, which builds its concurrent A* on
// container/heap.Interface + heap.Fix rather than a hand-rolled heap). Each
// openHeap is owned by exactly one worker and needs no internal locking
// (spec.md §4.3, §5).
type openHeap struct {
	entries []*heapEntry
	index   map[*Node]*heapEntry
}

func newOpenHeap() *openHeap {
	return &openHeap{index: make(map[*Node]*heapEntry)}
}

func (h *openHeap) Len() int { return len(h.entries) }

func (h *openHeap) Less(i, j int) bool { return h.entries[i].key < h.entries[j].key }

func (h *openHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.entries[i].index = i
	h.entries[j].index = j
}

func (h *openHeap) Push(x any) {
	e := x.(*heapEntry)
	e.index = len(h.entries)
	h.entries = append(h.entries, e)
}

func (h *openHeap) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	h.entries = old[:n-1]
	return e
}

// insert adds node to the heap at the given key. The caller must not have
// already inserted node (use update for a node already present).
func (h *openHeap) insert(key int, node *Node) {
	e := &heapEntry{key: key, node: node}
	h.index[node] = e
	heap.Push(h, e)
}

// popMin removes and returns the lowest-key entry, or ok=false if empty.
func (h *openHeap) popMin() (node *Node, ok bool) {
	if h.Len() == 0 {
		return nil, false
	}
	e := heap.Pop(h).(*heapEntry)
	delete(h.index, e.node)
	return e.node, true
}

// update lowers the key of an already-present node from oldKey to newKey and
// restores heap order in O(log n) via the aux index (spec.md §4.3). If the
// node is not present (e.g. it was already popped), update is a no-op: the
// caller should have used insert for a first sighting.
func (h *openHeap) update(oldKey, newKey int, node *Node) {
	e, ok := h.index[node]
	if !ok {
		// Not resident (e.g. already popped by this worker); nothing to fix.
		return
	}
	e.key = newKey
	heap.Fix(h, e.index)
	_ = oldKey // retained for symmetry with the spec's update(old,new,payload) signature
}

func (h *openHeap) size() int { return len(h.entries) }
