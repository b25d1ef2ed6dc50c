package puzzle

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alexyz79/astarmp/astar"
)

func TestGoal(t *testing.T) {
	Convey("Given the 8-puzzle goal check", t, func() {
		alloc := astar.NewStateAllocator(boardSize)

		Convey("the canonical solved board satisfies goal with a nil goal state", func() {
			s := alloc.New(goalBoard)
			So(goal(s, nil), ShouldBeTrue)
		})

		Convey("any other board does not satisfy goal", func() {
			s := alloc.New([]byte("1234567-8"))
			So(goal(s, nil), ShouldBeFalse)
		})
	})
}

func TestHeuristicIsZeroAtGoal(t *testing.T) {
	Convey("Given the solved board", t, func() {
		alloc := astar.NewStateAllocator(boardSize)
		s := alloc.New(goalBoard)

		Convey("heuristic returns 0", func() {
			So(heuristic(s, nil), ShouldEqual, 0)
		})
	})
}

func TestHeuristicIsPositiveWhenOutOfPlace(t *testing.T) {
	Convey("Given a board one tile away from solved", t, func() {
		alloc := astar.NewStateAllocator(boardSize)
		s := alloc.New([]byte("1234567-8"))

		Convey("heuristic returns a positive estimate", func() {
			So(heuristic(s, nil), ShouldBeGreaterThan, 0)
		})
	})
}

func TestVisitGeneratesExpectedNeighborCount(t *testing.T) {
	Convey("Given boards with the blank in corner, edge, and center positions", t, func() {
		Convey("corner blank (top-left) yields 2 neighbors", func() {
			alloc := astar.NewStateAllocator(boardSize)
			s := alloc.New([]byte("-2345678" + "1"))
			sink := astar.NewNeighborSink(alloc)
			visit(s, sink)
			So(len(sink.Neighbors()), ShouldEqual, 2)
		})

		Convey("edge blank (top-middle) yields 3 neighbors", func() {
			alloc := astar.NewStateAllocator(boardSize)
			s := alloc.New([]byte("1-345678" + "2"))
			sink := astar.NewNeighborSink(alloc)
			visit(s, sink)
			So(len(sink.Neighbors()), ShouldEqual, 3)
		})

		Convey("center blank yields 4 neighbors", func() {
			alloc := astar.NewStateAllocator(boardSize)
			s := alloc.New([]byte("1234-5678"))
			sink := astar.NewNeighborSink(alloc)
			visit(s, sink)
			So(len(sink.Neighbors()), ShouldEqual, 4)
		})
	})
}
