package astar

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStateAllocatorInterning(t *testing.T) {
	Convey("Given a StateAllocator", t, func() {
		alloc := NewStateAllocator(9)

		Convey("interning identical byte content twice returns the same handle", func() {
			a := alloc.New([]byte("12345678-"))
			b := alloc.New([]byte("12345678-"))
			So(a, ShouldEqual, b)
		})

		Convey("interning distinct byte content returns distinct handles", func() {
			a := alloc.New([]byte("12345678-"))
			b := alloc.New([]byte("1234567-8"))
			So(a, ShouldNotEqual, b)
		})

		Convey("mutating the caller's original slice does not affect the interned state", func() {
			data := []byte("12345678-")
			s := alloc.New(data)
			data[0] = 'X'
			So(s.Bytes()[0], ShouldEqual, byte('1'))
		})
	})
}

func TestDistinctContentYieldsDistinctHandles(t *testing.T) {
	Convey("Given two distinct byte strings", t, func() {
		alloc := NewStateAllocator(3)
		// Not an actual crafted collision, just confirming distinct content
		// never collapses to one handle regardless of hash behavior.
		a := alloc.New([]byte("abc"))
		b := alloc.New([]byte("abd"))
		So(a, ShouldNotEqual, b)
		So(fingerprint([]byte("abc")), ShouldEqual, fingerprint([]byte("abc")))
	})
}
