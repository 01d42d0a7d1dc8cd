package drops

import "time"

// RepeatForever makes a pulse run until it is stopped.
const RepeatForever = -1

// BaseNodeConfig holds the tunables shared by every drop.
type BaseNodeConfig struct {
	Rad          float64       `yaml:"rad"`
	LineWidth    float64       `yaml:"line_width"`
	GlowDistance float64       `yaml:"glow_distance"`
	GlowValue    float64       `yaml:"glow_value"`
	SpinSpeed    time.Duration `yaml:"spin_speed"`
	GlowSpeed    time.Duration `yaml:"glow_speed"`
	// SpinMin and SpinMax bound the spin delta as multiples of π.
	SpinMin float64 `yaml:"spin_min"`
	SpinMax float64 `yaml:"spin_max"`
}

// DropNodeConfig parameterizes ring and segment generation.
type DropNodeConfig struct {
	Rad                 float64       `yaml:"rad"`
	LineWidth           float64       `yaml:"line_width"`
	RadWithInnerRing    float64       `yaml:"rad_with_inner_ring"`
	InnerRad            float64       `yaml:"inner_rad"`
	InnerLineWidth      float64       `yaml:"inner_line_width"`
	InnerBuffer         float64       `yaml:"inner_buffer"`
	InnerGlow           float64       `yaml:"inner_glow"`
	InnerBendMin        float64       `yaml:"inner_bend_min"`
	InnerBendMax        float64       `yaml:"inner_bend_max"`
	OuterSegmentsMax    float64       `yaml:"outer_segments_max"`
	InnerSegmentsMax    float64       `yaml:"inner_segments_max"`
	OuterSegmentsChance float64       `yaml:"outer_segments_chance"`
	InnerSegmentsChance float64       `yaml:"inner_segments_chance"`
	OuterSegmentBreak   float64       `yaml:"outer_segment_break"`
	InnerSegmentBreak   float64       `yaml:"inner_segment_break"`
	SegmentFluxMin      float64       `yaml:"segment_flux_min"`
	SegmentFluxMax      float64       `yaml:"segment_flux_max"`
	IntroSpeed          time.Duration `yaml:"intro_speed"`
}

// PulseConfig holds the default pulse options.
type PulseConfig struct {
	// Repeat is the number of periods before the pulse stops on its own.
	// RepeatForever disables the limit.
	Repeat int `yaml:"repeat"`
	// Dir is the initial swing direction, +1 brighter or -1 dimmer.
	Dir float64 `yaml:"dir"`
}

// PackerConfig controls the circle packer.
type PackerConfig struct {
	Passes int `yaml:"passes"`
	// Attraction is the fraction of the distance to the attractor covered
	// per pass.
	Attraction float64 `yaml:"attraction"`
	// RelaxIterations caps the overlap-resolution sweeps within one pass.
	RelaxIterations int `yaml:"relax_iterations"`
}

// RippleConfig controls neighbor propagation.
type RippleConfig struct {
	// MaxNeighbors caps how many neighbors one completed drop dispatches to.
	MaxNeighbors int `yaml:"max_neighbors"`
	// NeighborBuffer inflates a drop's radius for adjacency queries.
	NeighborBuffer float64 `yaml:"neighbor_buffer"`
}

// CanvasConfig describes the surface the CLI creates.
type CanvasConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	AngDir float64 `yaml:"ang_dir"`
}

// Config is the full set of scene tunables.
type Config struct {
	Num      int    `yaml:"num"`
	TestMode bool   `yaml:"test_mode"`
	Seed     uint64 `yaml:"seed"`

	MouseMoveTimeout time.Duration `yaml:"mouse_move_timeout"`

	Canvas       CanvasConfig   `yaml:"canvas"`
	BaseNode     BaseNodeConfig `yaml:"base_node"`
	DropNode     DropNodeConfig `yaml:"drop_node"`
	Pulse        PulseConfig    `yaml:"pulse"`
	CirclePacker PackerConfig   `yaml:"circle_packer"`
	Ripple       RippleConfig   `yaml:"ripple"`
}

// DefaultConfig returns the stock Sakura Drops parameters.
func DefaultConfig() Config {
	return Config{
		Num:              10,
		MouseMoveTimeout: 200 * time.Millisecond,
		Canvas: CanvasConfig{
			Width:  800,
			Height: 600,
			AngDir: 1,
		},
		BaseNode: BaseNodeConfig{
			Rad:          20,
			LineWidth:    2,
			GlowDistance: 2,
			GlowValue:    0.2,
			SpinSpeed:    500 * time.Millisecond,
			GlowSpeed:    500 * time.Millisecond,
			SpinMin:      1.0 / 2,
			SpinMax:      2,
		},
		DropNode: DropNodeConfig{
			Rad:                 100,
			LineWidth:           2,
			RadWithInnerRing:    50,
			InnerRad:            2.0 / 3,
			InnerLineWidth:      1.0 / 3,
			InnerBuffer:         1.0 / 8,
			InnerGlow:           2.0 / 3,
			InnerBendMin:        1.0 / 3,
			InnerBendMax:        1.0 / 2,
			OuterSegmentsMax:    4,
			InnerSegmentsMax:    3,
			OuterSegmentsChance: 1.0 / 3,
			InnerSegmentsChance: 1.0 / 2,
			OuterSegmentBreak:   1.0 / 8,
			InnerSegmentBreak:   1.0 / 6,
			SegmentFluxMin:      1.0 / 2,
			SegmentFluxMax:      3.0 / 2,
			IntroSpeed:          500 * time.Millisecond,
		},
		Pulse: PulseConfig{
			Repeat: RepeatForever,
			Dir:    1,
		},
		CirclePacker: PackerConfig{
			Passes:          35,
			Attraction:      0.1,
			RelaxIterations: 10,
		},
		Ripple: RippleConfig{
			MaxNeighbors:   3,
			NeighborBuffer: 5,
		},
	}
}

// Normalize clamps values that would make the scene misbehave. Negative
// counts become zero, a zero direction becomes +1, an empty canvas and
// non-positive spin or glow speeds get their defaults, and test mode forces
// a single drop.
func (c *Config) Normalize() {
	if c.Num < 0 {
		c.Num = 0
	}
	if c.TestMode {
		c.Num = 1
	}
	if c.CirclePacker.Passes < 0 {
		c.CirclePacker.Passes = 0
	}
	if c.CirclePacker.RelaxIterations < 1 {
		c.CirclePacker.RelaxIterations = 1
	}
	if c.Ripple.MaxNeighbors < 0 {
		c.Ripple.MaxNeighbors = 0
	}
	if c.Ripple.NeighborBuffer < 0 {
		c.Ripple.NeighborBuffer = 0
	}
	if c.Pulse.Dir >= 0 {
		c.Pulse.Dir = 1
	} else {
		c.Pulse.Dir = -1
	}
	if c.Pulse.Repeat < RepeatForever {
		c.Pulse.Repeat = RepeatForever
	}
	def := DefaultConfig().Canvas
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = def.Width
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = def.Height
	}
	if c.Canvas.AngDir >= 0 {
		c.Canvas.AngDir = 1
	} else {
		c.Canvas.AngDir = -1
	}
	if c.BaseNode.SpinMax < c.BaseNode.SpinMin {
		c.BaseNode.SpinMin, c.BaseNode.SpinMax = c.BaseNode.SpinMax, c.BaseNode.SpinMin
	}
	if c.MouseMoveTimeout < 0 {
		c.MouseMoveTimeout = 0
	}
	base := DefaultConfig().BaseNode
	if c.BaseNode.SpinSpeed <= 0 {
		c.BaseNode.SpinSpeed = base.SpinSpeed
	}
	if c.BaseNode.GlowSpeed <= 0 {
		c.BaseNode.GlowSpeed = base.GlowSpeed
	}
}
