package numberlink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alexyz79/astarmp/astar"
)

const sampleBoard = "1..\n.#.\n..1\n"

func writeBoard(t *testing.T, contents string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseBoard(t *testing.T) {
	Convey("Given a board with one pair of matching endpoints", t, func() {
		path := writeBoard(t, sampleBoard)
		board, err := ParseBoard(path)
		So(err, ShouldBeNil)

		Convey("the link digit and both endpoints are recorded", func() {
			So(board.Link, ShouldEqual, byte('1'))
			So(board.A, ShouldResemble, [2]int{0, 0})
			So(board.B, ShouldResemble, [2]int{2, 2})
		})
	})
}

func TestParseBoardRejectsMismatchedEndpointCount(t *testing.T) {
	Convey("Given a board with only one occurrence of a digit", t, func() {
		path := writeBoard(t, "1..\n...\n...\n")
		_, err := ParseBoard(path)
		Convey("ParseBoard returns an error", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseBoardRejectsMultipleLinks(t *testing.T) {
	Convey("Given a board naming two distinct link digits", t, func() {
		path := writeBoard(t, "12.\n...\n.21\n")
		_, err := ParseBoard(path)
		Convey("ParseBoard returns an error", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestEngineSolvesSampleBoard(t *testing.T) {
	Convey("Given the sample board wired into a full engine", t, func() {
		path := writeBoard(t, sampleBoard)
		board, err := ParseBoard(path)
		So(err, ShouldBeNil)

		engine, err := astar.NewEngine(StructSize, board.Callbacks(), 2, astar.DefaultEngineConfig())
		So(err, ShouldBeNil)
		defer engine.Close()

		solution, err := engine.Solve(
			context.Background(),
			StateBytes(board.A[0], board.A[1]),
			StateBytes(board.B[0], board.B[1]),
			false,
		)
		So(err, ShouldBeNil)

		Convey("the shortest connecting path around the blocked cell costs 4 steps", func() {
			So(solution, ShouldNotBeNil)
			So(solution.G(), ShouldEqual, 4)
		})
	})
}
