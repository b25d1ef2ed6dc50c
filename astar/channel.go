package astar

import "sync"

// message is a relaxation message routed between workers: a node whose cost
// changed, together with its cost before and after the change. oldCost==0 is
// the sentinel meaning "not yet resident in the receiver's heap" (spec.md
// §3, "Relaxation Message").
type message struct {
	node     *Node
	oldCost  int
	newCost  int
}

// queue is one multi-producer, single-consumer inbox. It is backed by a
// mutex-guarded slice rather than a native Go channel, because the spec
// requires a non-blocking receive that returns "none" on empty (spec.md
// §4.4) and an unbounded queue — a buffered chan would need a fixed
// capacity, and an unbuffered chan would block senders when nobody is
// receiving, which workers must never do (spec.md §5: "Channels are
// non-blocking on receive").
type queue struct {
	mu   sync.Mutex
	msgs []*message
}

func (q *queue) send(m *message) {
	q.mu.Lock()
	q.msgs = append(q.msgs, m)
	q.mu.Unlock()
}

// receive dequeues the oldest message, or returns ok=false if empty.
func (q *queue) receive() (m *message, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return nil, false
	}
	m = q.msgs[0]
	q.msgs[0] = nil
	q.msgs = q.msgs[1:]
	return m, true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}

// channelBank is the bank of N per-worker inboxes (spec.md §3, "Channel"):
// producers are every worker, the sole consumer of queue i is worker i.
type channelBank struct {
	queues []*queue
}

func newChannelBank(n int) *channelBank {
	b := &channelBank{queues: make([]*queue, n)}
	for i := range b.queues {
		b.queues[i] = &queue{}
	}
	return b
}

// send enqueues msg onto worker id's inbox. Ownership of msg transfers to
// the channel on send (spec.md §4.4).
func (b *channelBank) send(id int, msg *message) {
	b.queues[id].send(msg)
}

// receive dequeues the next message for worker id, non-blocking.
func (b *channelBank) receive(id int) (*message, bool) {
	return b.queues[id].receive()
}

// pending reports whether worker id's inbox is non-empty. The engine's
// termination barrier does not call it: that barrier checks only the idle
// counter, re-read after a quiesce period, and does not inspect inboxes.
func (b *channelBank) pending(id int) bool {
	return b.queues[id].len() > 0
}

// destroy drops every message still resident in any queue (spec.md §9: "the
// spec mandates freeing all in-flight messages on destroy"). Go's GC makes
// this a formality, but it documents the intended lifecycle and ensures no
// stale references are retained past Close.
func (b *channelBank) destroy() {
	for _, q := range b.queues {
		q.mu.Lock()
		q.msgs = nil
		q.mu.Unlock()
	}
}
