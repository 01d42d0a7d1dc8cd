package config

import (
	"fmt"
	"os"

	"github.com/phanxgames/drops"
	"gopkg.in/yaml.v3"
)

// Load overlays the YAML file at path on the default configuration and
// normalizes the result. Keys missing from the file keep their defaults.
func Load(path string) (drops.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return drops.Config{}, fmt.Errorf("load config: %w", err)
	}
	return Parse(data)
}

// Parse is Load for in-memory YAML.
func Parse(data []byte) (drops.Config, error) {
	cfg := drops.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return drops.Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg drops.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Resolve picks the configuration for the CLI: the named preset (or the
// defaults when name is empty) with the file at path, if any, laid on top.
func Resolve(preset, path string) (drops.Config, error) {
	cfg := drops.DefaultConfig()
	if preset != "" {
		p, ok := Preset(preset)
		if !ok {
			return drops.Config{}, fmt.Errorf("unknown preset %q", preset)
		}
		cfg = p
	}
	if path == "" {
		cfg.Normalize()
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return drops.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return drops.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}
