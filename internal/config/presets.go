package config

import (
	"sort"
	"time"

	"github.com/phanxgames/drops"
)

// Presets maps a preset name to a function that tweaks the defaults.
var Presets = map[string]func(*drops.Config){
	"default": func(*drops.Config) {},
	"calm": func(c *drops.Config) {
		c.Num = 6
		c.BaseNode.SpinSpeed = 1200 * time.Millisecond
		c.BaseNode.GlowSpeed = 1500 * time.Millisecond
		c.BaseNode.SpinMin, c.BaseNode.SpinMax = 0.25, 0.75
		c.MouseMoveTimeout = 500 * time.Millisecond
		c.Ripple.MaxNeighbors = 1
	},
	"dense": func(c *drops.Config) {
		c.Num = 40
		c.DropNode.Rad = 60
		c.CirclePacker.Passes = 60
		c.CirclePacker.RelaxIterations = 20
		c.Ripple.MaxNeighbors = 4
	},
	"single": func(c *drops.Config) {
		c.TestMode = true
		c.Num = 1
	},
}

// Preset returns the named preset applied to the defaults.
func Preset(name string) (drops.Config, bool) {
	apply, ok := Presets[name]
	if !ok {
		return drops.Config{}, false
	}
	cfg := drops.DefaultConfig()
	apply(&cfg)
	cfg.Normalize()
	return cfg, true
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
