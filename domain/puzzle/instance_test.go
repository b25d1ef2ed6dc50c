package puzzle

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func writeInstanceFile(t *testing.T, contents string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "instances.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadInstancesOneLinePerPuzzle(t *testing.T) {
	Convey("Given an instance file with space-separated cells, one board per line", t, func() {
		path := writeInstanceFile(t, "1 2 3 4 5 6 7 8 -\n8 7 6 5 4 3 2 1 -\n")
		instances, err := ReadInstances(path)
		So(err, ShouldBeNil)

		Convey("each line yields one 9-byte board", func() {
			So(len(instances), ShouldEqual, 2)
			So(string(instances[0]), ShouldEqual, "12345678-")
			So(string(instances[1]), ShouldEqual, "87654321-")
		})
	})
}

func TestReadInstancesStopsShortOfTenOnEOF(t *testing.T) {
	Convey("Given a file with fewer than ten instance lines", t, func() {
		path := writeInstanceFile(t, "1 2 3 4 5 6 7 8 -\n")
		instances, err := ReadInstances(path)
		Convey("ReadInstances returns only the instances actually present", func() {
			So(err, ShouldBeNil)
			So(len(instances), ShouldEqual, 1)
		})
	})
}

func TestReadInstancesRejectsEmptyFile(t *testing.T) {
	Convey("Given an empty instance file", t, func() {
		path := writeInstanceFile(t, "")
		_, err := ReadInstances(path)
		Convey("ReadInstances returns an error", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseLineRejectsMalformedRow(t *testing.T) {
	Convey("Given a line with fewer than nine cells", t, func() {
		_, err := parseLine("1 2 3")
		Convey("parseLine returns an error", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseLineTakesExactlyNineCells(t *testing.T) {
	Convey("Given a line with no separating spaces at all", t, func() {
		board, err := parseLine("12345678-")
		So(err, ShouldBeNil)
		Convey("parseLine still returns the nine cells", func() {
			So(string(board), ShouldEqual, "12345678-")
		})
	})
}
