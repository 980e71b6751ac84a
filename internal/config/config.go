package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration read from .readscore.yml.
type Config struct {
	// Files lists doublestar patterns analyzed when no paths are given.
	Files []string `yaml:"files,omitempty" validate:"dive,required,pattern"`
	// Exclude lists gobwas/glob patterns skipped by every command.
	Exclude []string `yaml:"exclude,omitempty" validate:"dive,required,glob"`
	// Concurrency bounds the number of files analyzed in parallel.
	// Zero means GOMAXPROCS.
	Concurrency int `yaml:"concurrency,omitempty" validate:"gte=0,lte=256"`
	// Rules maps rule names to their enabled state and settings.
	Rules map[string]RuleCfg `yaml:"rules"`
}

// RuleCfg is a YAML union: can be bool (enable/disable) or map[string]any (settings).
type RuleCfg struct {
	Enabled  bool
	Settings map[string]any
}

// UnmarshalYAML implements custom YAML unmarshalling for RuleCfg.
// It handles three forms:
//   - false -> Enabled=false, Settings=nil
//   - true  -> Enabled=true,  Settings=nil
//   - {key: val, ...} -> Enabled=true, Settings={key: val, ...}
func (r *RuleCfg) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var b bool
		if err := value.Decode(&b); err != nil {
			return fmt.Errorf("line %d: rule config must be true, false or a mapping", value.Line)
		}
		r.Enabled = b
		r.Settings = nil
		return nil
	case yaml.MappingNode:
		var m map[string]any
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("invalid rule config: %w", err)
		}
		r.Enabled = true
		r.Settings = m
		return nil
	}
	return fmt.Errorf("line %d: rule config must be a bool or a mapping", value.Line)
}

// MarshalYAML writes the settings map when present and the enabled flag
// otherwise, mirroring UnmarshalYAML.
func (r RuleCfg) MarshalYAML() (any, error) {
	if r.Enabled && len(r.Settings) > 0 {
		return r.Settings, nil
	}
	return r.Enabled, nil
}
