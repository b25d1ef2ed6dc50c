package astar

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// AtomicFloat64 encapsulates a float64 for lock-free atomic operations.
// Adapted from the teacher's atomic_float package: here it backs the
// telemetry nodes/sec gauge (Stats.rate), a value written by the
// stats-aggregation goroutine and read concurrently by the telemetry
// publisher, so a per-field mutex would otherwise be needed for a single
// float.
type AtomicFloat64 struct {
	val float64
}

// NewAtomicFloat64 returns an AtomicFloat64 initialized to val.
func NewAtomicFloat64(val float64) *AtomicFloat64 {
	return &AtomicFloat64{val: val}
}

// AtomicRead returns the current value.
func (af *AtomicFloat64) AtomicRead() float64 {
	bits := atomic.LoadUint64((*uint64)(unsafe.Pointer(&af.val)))
	return math.Float64frombits(bits)
}

// AtomicAdd adds addend to the value. Mirrors the teacher's single-attempt
// semantics: if a concurrent writer raced us, the caller decides whether to
// retry rather than looping here silently over a stale base value.
func (af *AtomicFloat64) AtomicAdd(addend float64) (newVal float64, succeeded bool) {
	old := af.AtomicRead()
	newVal = old + addend
	succeeded = atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&af.val)),
		math.Float64bits(old),
		math.Float64bits(newVal))
	return
}

// AtomicSet unconditionally stores val.
func (af *AtomicFloat64) AtomicSet(val float64) {
	atomic.StoreUint64((*uint64)(unsafe.Pointer(&af.val)), math.Float64bits(val))
}
