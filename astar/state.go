package astar

import (
	"bytes"
	"sync"
)

// State is an opaque, fixed-size byte block plus its fingerprint. Equal-byte
// states are interned to the same *State, so pointer equality implies state
// equality and vice versa.
type State struct {
	bytes       []byte
	fingerprint uint64
}

// Bytes returns the state's underlying byte block. Callers must not mutate it.
func (s *State) Bytes() []byte {
	return s.bytes
}

// StateAllocator interns opaque state byte blocks by content hash, so that
// callers always get back the same *State handle for identical bytes. Safe
// for concurrent New.
type StateAllocator struct {
	structSize int

	mu      sync.Mutex
	buckets map[uint64][]*State
}

// NewStateAllocator returns an allocator for states of the given fixed size.
func NewStateAllocator(structSize int) *StateAllocator {
	return &StateAllocator{
		structSize: structSize,
		buckets:    make(map[uint64][]*State),
	}
}

// New interns data, returning the existing handle if an identical state was
// seen before, or allocating and storing a private copy otherwise.
func (a *StateAllocator) New(data []byte) *State {
	fp := fingerprint(data)

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, candidate := range a.buckets[fp] {
		if bytes.Equal(candidate.bytes, data) {
			return candidate
		}
	}

	owned := make([]byte, len(data))
	copy(owned, data)
	s := &State{bytes: owned, fingerprint: fp}
	a.buckets[fp] = append(a.buckets[fp], s)
	return s
}

// fingerprint is an FNV-1a hash over the state bytes. Hash quality only
// affects worker load balance and shard selection, never correctness: two
// colliding states still intern to distinct *State values and route through
// lookup-by-bytes within the shared bucket.
func fingerprint(data []byte) uint64 {
	var h uint64 = 1469598103934665603 // FNV-1a offset basis
	for _, b := range data {
		h ^= uint64(b)
		h *= 1099511628211 // FNV-1a prime
	}
	return h
}
