// Package config loads engine tunables from YAML, the same two-stage way
// tabular/reinforcement.FromYaml does: Viper reads a kind/def envelope from
// disk, then the "def" payload is re-marshalled and unmarshalled through
// yaml.v3 into the concrete struct, rather than handing the whole job to
// Viper's own (looser) decoding.
package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/alexyz79/astarmp/astar"
)

// OuterConfig mirrors reinforcement.OuterConfig's discriminated envelope,
// letting one YAML file host more than one named config block.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// EngineConfig is the on-disk shape of astar.EngineConfig's tunables: which
// cost-bound rule to apply (spec.md §9's Design Notes leave this as an
// implementer's choice) and a solve deadline expressed as a duration
// string, mirroring TrainingConfig's trainingDeadline map. Viper lower-cases
// every key before FromYaml re-marshals the def payload, so the yaml tags
// are lower-case.
type EngineConfig struct {
	CostBound string            `mapstructure:"costBound" yaml:"costbound"`
	Deadline  map[string]string `mapstructure:"deadline" yaml:"deadline"`
}

func (cfg *EngineConfig) costBoundRule() astar.CostBoundRule {
	if cfg.CostBound == "consistent" {
		return astar.CostBoundConsistent
	}
	return astar.CostBoundStrict
}

// WithDeadline returns a context bounded by the configured deadline,
// mirroring TrainingConfig.WithTrainingDeadline: a bare duration string
// under "duration", defaulting to an un-timed cancellable context when
// absent.
func (cfg *EngineConfig) WithDeadline(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if val, ok := cfg.Deadline["duration"]; ok {
		d, err := time.ParseDuration(val)
		if err != nil {
			return nil, nil, err
		}
		innerCtx, cancel := context.WithTimeout(ctx, d)
		return innerCtx, cancel, nil
	}
	innerCtx, cancel := context.WithCancel(ctx)
	return innerCtx, cancel, nil
}

// ToEngineConfig converts the on-disk shape into astar.EngineConfig.
func (cfg *EngineConfig) ToEngineConfig() astar.EngineConfig {
	engineCfg := astar.DefaultEngineConfig()
	engineCfg.CostBound = cfg.costBoundRule()
	if val, ok := cfg.Deadline["duration"]; ok {
		if d, err := time.ParseDuration(val); err == nil {
			engineCfg.Deadline = d
		}
	}
	return engineCfg
}

// FromYaml loads an EngineConfig from path.
func FromYaml(path string) (*EngineConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outer := &OuterConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}

	spec, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, err
	}

	inner := &EngineConfig{}
	if err := yaml.Unmarshal(spec, inner); err != nil {
		return nil, err
	}
	return inner, nil
}
