package astar_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alexyz79/astarmp/astar"
	"github.com/alexyz79/astarmp/domain/puzzle"
)

// scenarios are the 8-puzzle cases: a board, and its optimal solution cost,
// or -1 if no solution exists under the puzzle's parity constraint.
var scenarios = []struct {
	name  string
	board string
	cost  int
}{
	{"already solved", "12345678-", 0},
	{"one move", "1234567-8", 1},
	{"two moves", "123456-78", 2},
	{"moderate", "1-3425786", 5},
	{"hard", "281463-75", 15},
	{"unsolvable parity", "1234568-7", -1},
}

func solve(t *testing.T, board string, numWorkers int, first bool) *astar.Node {
	engine, err := astar.NewEngine(9, puzzle.Callbacks(), numWorkers, astar.DefaultEngineConfig())
	So(err, ShouldBeNil)
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	solution, err := engine.Solve(ctx, []byte(board), puzzle.GoalBytes(), first)
	So(err, ShouldBeNil)
	return solution
}

func TestEightPuzzleOptimalMode(t *testing.T) {
	for _, numWorkers := range []int{1, 2, 4} {
		numWorkers := numWorkers
		Convey("Given a worker count of", t, func() {
			for _, sc := range scenarios {
				sc := sc
				Convey("solving scenario "+sc.name+" in optimal mode", func() {
					solution := solve(t, sc.board, numWorkers, false)
					if sc.cost < 0 {
						So(solution, ShouldBeNil)
					} else {
						So(solution, ShouldNotBeNil)
						So(solution.G(), ShouldEqual, sc.cost)
					}
				})
			}
		})
	}
}

func TestEightPuzzleFirstSolutionMode(t *testing.T) {
	Convey("Given first-solution mode", t, func() {
		for _, sc := range scenarios {
			sc := sc
			Convey("solving scenario "+sc.name+" with 4 workers", func() {
				solution := solve(t, sc.board, 4, true)
				if sc.cost < 0 {
					So(solution, ShouldBeNil)
				} else {
					So(solution, ShouldNotBeNil)
					// First-solution mode only guarantees A solution, not
					// necessarily the optimal one, so only bound it from
					// below by the true optimum.
					So(solution.G(), ShouldBeGreaterThanOrEqualTo, sc.cost)
				}
			})
		}
	})
}

func TestSingleWorkerIsDeterministic(t *testing.T) {
	Convey("Given a single worker solving the same instance twice", t, func() {
		first := solve(t, "281463-75", 1, false)
		second := solve(t, "281463-75", 1, false)
		Convey("the resulting solution cost is identical both times", func() {
			So(first, ShouldNotBeNil)
			So(second, ShouldNotBeNil)
			So(first.G(), ShouldEqual, second.G())
		})
	})
}

func TestAlreadySolvedFastPath(t *testing.T) {
	Convey("Given an initial state that is already the goal", t, func() {
		solution := solve(t, "12345678-", 4, false)
		Convey("Solve returns a zero-cost solution immediately", func() {
			So(solution, ShouldNotBeNil)
			So(solution.G(), ShouldEqual, 0)
		})
	})
}

func TestEngineCreateCloseIsIdempotentAcrossInstances(t *testing.T) {
	Convey("Given a freshly created engine", t, func() {
		engine, err := astar.NewEngine(9, puzzle.Callbacks(), 2, astar.DefaultEngineConfig())
		So(err, ShouldBeNil)

		Convey("closing it twice does not panic", func() {
			So(func() { engine.Close(); engine.Close() }, ShouldNotPanic)
		})
	})
}

func TestNewEngineValidatesArguments(t *testing.T) {
	Convey("Given invalid Engine construction arguments", t, func() {
		Convey("a non-positive struct size is rejected", func() {
			_, err := astar.NewEngine(0, puzzle.Callbacks(), 1, astar.DefaultEngineConfig())
			So(err, ShouldNotBeNil)
		})
		Convey("a zero worker count is rejected", func() {
			_, err := astar.NewEngine(9, puzzle.Callbacks(), 0, astar.DefaultEngineConfig())
			So(err, ShouldNotBeNil)
		})
		Convey("missing callbacks are rejected", func() {
			_, err := astar.NewEngine(9, astar.Callbacks{}, 1, astar.DefaultEngineConfig())
			So(err, ShouldNotBeNil)
		})
	})
}
