package drops

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// dropIDCounter is a plain counter (no atomic; drops is single-threaded).
var dropIDCounter uint32

func nextDropID() uint32 {
	dropIDCounter++
	return dropIDCounter
}

// Env carries the collaborators a drop needs. All fields are required.
type Env struct {
	Geometry Geometry
	Animator Animator
	Config   *Config
	Rand     *Rand
}

// DropParams are the creation-time inputs of a drop. Zero values fall back
// to the canvas center and the BaseNode defaults.
type DropParams struct {
	Pos       Vec2
	Rad       float64
	LineWidth float64
	AngStart  float64
	AngEnd    float64
	// Luck is used as-is when FixedLuck is set, otherwise drawn at random.
	Luck      float64
	FixedLuck bool
	InBounds  bool
	// Intro grows the radius from zero when the drop is created.
	Intro bool
}

// StepEvent is delivered before and after every animation tick of a drop.
type StepEvent struct {
	Drop *Drop
	Name string
	// End marks the final notification of a pulse sequence.
	End bool
}

// Segment is one visible stretch of a ring, in radians.
type Segment struct {
	AngStart, AngEnd float64
}

// InnerRing describes the smaller ring drawn inside large, long drops.
type InnerRing struct {
	Rad            float64
	RadRatio       float64
	LineWidth      float64
	AngStart       float64
	AngEnd         float64
	BridgeBend     float64
	HasStartBridge bool
	HasEndBridge   bool
}

// Drop is one circular entity of the scene: geometry, luck, decoration
// state, and the set of running named animations. Awake is derived from that
// set and only changes through StartAnimation and StopAnimation.
type Drop struct {
	ID uint32

	Pos Vec2
	// Rad is the drawn radius; it trails RadFinal during the intro.
	Rad      float64
	RadFinal float64
	// Ang is the rotation offset applied to every arc.
	Ang              float64
	AngStart, AngEnd float64
	Luck             float64
	LineWidth        float64
	GlowDist         float64
	// Glow is the current stroke intensity, modulated by pulses.
	Glow     float64
	InBounds bool

	InnerRing     *InnerRing
	OuterSegments []Segment
	InnerSegments []Segment

	Woke              Signal[*Drop]
	Slept             Signal[*Drop]
	WillAnimationStep Signal[StepEvent]
	AnimationStep     Signal[StepEvent]
	PulsePeriod       Signal[*Drop]
	RippleAffected    Signal[*Drop]

	env Env

	running   map[string]*run
	handles   map[string]Handle
	runSeq    uint64
	awake     bool
	pulse     pulseState
	introDone bool

	neighbors       []uint32
	neighborsCached bool
}

type run struct {
	handle Handle
	seq    uint64
}

// NewDrop creates a drop. With Intro set the radius eases from zero to its
// final value on the animator without waking the drop.
func NewDrop(p DropParams, env Env) *Drop {
	cfg := env.Config
	d := &Drop{
		ID:        nextDropID(),
		Pos:       p.Pos,
		RadFinal:  p.Rad,
		AngStart:  p.AngStart,
		AngEnd:    p.AngEnd,
		LineWidth: p.LineWidth,
		Luck:      p.Luck,
		InBounds:  p.InBounds,
		env:       env,
		running:   make(map[string]*run),
		handles:   make(map[string]Handle),
	}
	if d.Pos == (Vec2{}) {
		d.Pos = env.Geometry.Center()
	}
	if d.RadFinal <= 0 {
		d.RadFinal = cfg.BaseNode.Rad
	}
	if d.LineWidth <= 0 {
		d.LineWidth = cfg.BaseNode.LineWidth
	}
	if !p.FixedLuck {
		d.Luck = env.Rand.Float64()
	}
	d.Luck = clamp(d.Luck, 0, math.Nextafter(1, 0))
	if d.AngStart == 0 && d.AngEnd == 0 {
		d.AngEnd = TwoPi * env.Geometry.AngDir()
	}
	d.GlowDist = math.Pow(d.LineWidth, 4) + cfg.BaseNode.GlowDistance
	d.Glow = cfg.BaseNode.GlowValue

	d.initInnerRing()
	d.generateSegments()

	if p.Intro && cfg.DropNode.IntroSpeed > 0 {
		d.startIntro()
	} else {
		d.setRad(d.RadFinal)
		d.introDone = true
	}
	return d
}

// ArcLen returns the visible arc length |AngEnd - AngStart|.
func (d *Drop) ArcLen() float64 {
	return math.Abs(d.AngEnd - d.AngStart)
}

// Bounds returns the settled circle used for packing, adjacency, and hit
// tests.
func (d *Drop) Bounds() Circle {
	return Circle{Center: d.Pos, Radius: d.RadFinal}
}

// Contains reports whether p lies on the drop.
func (d *Drop) Contains(p Vec2) bool {
	return d.Bounds().Contains(p)
}

// Intersects reports whether the settled circles of d and o overlap.
func (d *Drop) Intersects(o *Drop) bool {
	return d.Bounds().Intersects(o.Bounds())
}

// IntroDone reports whether the radius has reached its final value.
func (d *Drop) IntroDone() bool {
	return d.introDone
}

// StayInBounds clamps the center so the ring and its stroke stay on the
// canvas.
func (d *Drop) StayInBounds(g Geometry) {
	m := d.RadFinal + d.LineWidth*3
	d.Pos.X = clamp(d.Pos.X, m, g.Width()-m)
	d.Pos.Y = clamp(d.Pos.Y, m, g.Height()-m)
}

func (d *Drop) setRad(r float64) {
	if r < 0 {
		r = 0
	}
	d.Rad = r
	if d.InnerRing != nil {
		d.InnerRing.Rad = r * d.InnerRing.RadRatio
	}
}

// startIntro schedules the radius tween directly on the animator. It is not a
// named animation, so it neither wakes the drop nor blocks other animations.
func (d *Drop) startIntro() {
	d.setRad(0)
	duration := d.env.Config.DropNode.IntroSpeed
	tween := gween.New(0, float32(d.RadFinal), float32(duration.Seconds()), ease.InOutCubic)
	var last time.Duration
	d.env.Animator.Animate(AnimateOptions{}, func(elapsed time.Duration, complete bool) {
		if complete {
			d.setRad(d.RadFinal)
			d.introDone = true
			d.AnimationStep.Emit(StepEvent{Drop: d, Name: AnimIntro})
			return
		}
		val, _ := tween.Update(float32((elapsed - last).Seconds()))
		last = elapsed
		d.setRad(float64(val))
		d.AnimationStep.Emit(StepEvent{Drop: d, Name: AnimIntro})
	}, duration, 0)
}

// easeInOutCubic maps elapsed within duration onto [b, b+c] with the cubic
// ease-in-out curve.
func easeInOutCubic(elapsed time.Duration, b, c float64, duration time.Duration) float64 {
	if duration <= 0 || elapsed >= duration {
		return b + c
	}
	if elapsed <= 0 {
		return b
	}
	// Eased as an offset so large b values keep float64 precision.
	p := ease.InOutCubic(float32(elapsed.Seconds()), 0, 1, float32(duration.Seconds()))
	return b + c*float64(p)
}
