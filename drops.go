package drops

import "math"

// Angle shorthands used throughout ring and segment geometry.
const (
	HalfPi    = math.Pi / 2
	TwoPi     = math.Pi * 2
	QuarterPi = math.Pi / 4
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the scene background.
var ColorBlack = Color{0, 0, 0, 1}

// ColorTheme is the default translucent white stroke used for drops.
var ColorTheme = Color{1, 1, 1, 0.2}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Vec2 is a 2D vector used for positions and offsets in canvas space.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(o.X-v.X, o.Y-v.Y) }

// Circle is a center and radius in canvas space.
type Circle struct {
	Center Vec2
	Radius float64
}

// Contains reports whether p lies inside or on the circle.
func (c Circle) Contains(p Vec2) bool {
	return c.Center.Dist(p) <= c.Radius
}

// Intersects reports whether the distance between centers is strictly less
// than the sum of the radii. Tangent circles do not intersect.
func (c Circle) Intersects(o Circle) bool {
	return c.Center.Dist(o.Center) < c.Radius+o.Radius
}

// Overlap returns how far the two circles penetrate each other, or 0.
func (c Circle) Overlap(o Circle) float64 {
	d := c.Radius + o.Radius - c.Center.Dist(o.Center)
	if d < 0 {
		return 0
	}
	return d
}

// Inflate returns the circle with its radius grown by d.
func (c Circle) Inflate(d float64) Circle {
	c.Radius += d
	return c
}

// PulseType selects how the manager coordinates pulsing across drops.
type PulseType uint8

const (
	PulseDefault    PulseType = iota // a single drop pulses on its own
	PulseSequential                  // a ripple carries a one-shot pulse across neighbors
	PulseUniform                     // every drop pulses together
)

// String returns the lower-case name used in config files and scripts.
func (t PulseType) String() string {
	switch t {
	case PulseSequential:
		return "sequential"
	case PulseUniform:
		return "uniform"
	default:
		return "default"
	}
}

// ParsePulseType is the inverse of PulseType.String. Unknown names map to
// PulseDefault.
func ParsePulseType(s string) PulseType {
	switch s {
	case "sequential", "ripple":
		return PulseSequential
	case "uniform":
		return PulseUniform
	default:
		return PulseDefault
	}
}

// clamp constrains v to [lo, hi]. When the range is inverted the midpoint wins.
func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
