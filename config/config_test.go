package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alexyz79/astarmp/astar"
)

const sampleYaml = `
kind: engineConfig
def:
  costBound: consistent
  deadline:
    duration: 5s
`

func TestFromYaml(t *testing.T) {
	Convey("Given an on-disk engine config YAML file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		So(os.WriteFile(path, []byte(sampleYaml), 0o644), ShouldBeNil)

		cfg, err := FromYaml(path)
		So(err, ShouldBeNil)

		Convey("the cost bound is decoded from the def payload", func() {
			So(cfg.CostBound, ShouldEqual, "consistent")
		})

		Convey("ToEngineConfig maps it onto astar.EngineConfig", func() {
			engineCfg := cfg.ToEngineConfig()
			So(engineCfg.CostBound, ShouldEqual, astar.CostBoundConsistent)
			So(engineCfg.Deadline.String(), ShouldEqual, "5s")
		})
	})
}

func TestFromYamlMissingFile(t *testing.T) {
	Convey("Given a path that does not exist", t, func() {
		_, err := FromYaml("/nonexistent/path/config.yaml")
		Convey("FromYaml returns an error", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDefaultCostBoundIsStrict(t *testing.T) {
	Convey("Given an EngineConfig with no costBound set", t, func() {
		cfg := &EngineConfig{}
		Convey("costBoundRule defaults to strict", func() {
			So(cfg.costBoundRule(), ShouldEqual, astar.CostBoundStrict)
		})
	})
}
