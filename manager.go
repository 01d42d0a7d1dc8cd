package drops

import (
	"time"
)

// Clock is implemented by animators that can report the current time. The
// manager uses it to throttle pointer moves; without it there is no
// throttle.
type Clock interface {
	Now() time.Duration
}

// Manager owns the drop collection. It runs the circle packer, routes
// pointer input to wake, spin, and ripple drops, and redraws the scene
// whenever an animation steps.
type Manager struct {
	// Drew fires after every full redraw.
	Drew Signal[*Manager]
	// SnapshotRequested fires when a script asks for a labeled capture.
	SnapshotRequested Signal[string]

	cfg    Config
	canvas Canvas
	anim   Animator
	clock  Clock
	rng    *Rand

	drops  []*Drop
	index  *Index
	packer *Packer
	ripple *Ripple

	ready         bool
	throttleUntil time.Duration
	dirty         bool
	clear         bool
	redraws       int

	injectQueue []pointerEvent
	script      *Script

	debug bool
}

// NewManager populates the scene and, unless in test mode, prepares the
// circle packer. The canvas and animator must outlive the manager.
func NewManager(cfg Config, canvas Canvas, anim Animator) *Manager {
	cfg.Normalize()
	m := &Manager{
		cfg:    cfg,
		canvas: canvas,
		anim:   anim,
		rng:    NewRand(cfg.Seed),
	}
	if c, ok := anim.(Clock); ok {
		m.clock = c
	}
	m.populate()
	m.index = NewIndex(m.drops, cfg.Ripple.NeighborBuffer)
	m.ripple = NewRipple(m.index, m.rng, cfg.Ripple.MaxNeighbors)

	if cfg.TestMode {
		m.Redraw()
		m.ready = true
		return m
	}
	m.packer = NewPacker(m.drops, m.AttractorPos(), cfg.CirclePacker.Passes, PackerOptions{
		Attraction:      cfg.CirclePacker.Attraction,
		RelaxIterations: cfg.CirclePacker.RelaxIterations,
		Bounds:          canvas,
	})
	m.packer.DrawingSocket.Add(func(int) {
		m.index.Invalidate()
		m.requestRedraw(true)
	})
	m.packer.Settled.Add(func(int) {
		m.index.Invalidate()
		m.ready = true
	})
	return m
}

// populate creates Num drops, or exactly one in test mode.
func (m *Manager) populate() {
	n := m.cfg.Num
	if m.cfg.TestMode {
		n = 1
	}
	m.drops = make([]*Drop, 0, n)
	for i := 0; i < n; i++ {
		d := m.newDrop(i)
		d.AnimationStep.Add(func(StepEvent) {
			m.requestRedraw(true)
		})
		// The terminal spin tick only shows up as the drop falling asleep.
		d.Slept.Add(func(*Drop) {
			m.requestRedraw(true)
		})
		m.drops = append(m.drops, d)
	}
	Logger().Info("drops populated", "count", n, "test_mode", m.cfg.TestMode)
}

// newDrop places a drop at random with a size skewed toward small and a
// line width proportional to it. Test mode centers it with zero luck so
// every luck-gated trait is present.
func (m *Manager) newDrop(int) *Drop {
	base := m.cfg.DropNode
	var p DropParams
	if !m.cfg.TestMode {
		p.Pos = Vec2{
			X: float64(int(m.rng.Between(0, m.canvas.Width()))),
			Y: float64(int(m.rng.Between(0, m.canvas.Height()))),
		}
	} else {
		p.Pos = m.canvas.Center()
		p.FixedLuck = true
	}
	p.Rad = m.rng.CurvingBuffered(base.Rad, 0.5, 2)
	p.LineWidth = base.LineWidth * p.Rad / base.Rad
	p.AngStart = m.rng.Between(0, TwoPi) + TwoPi
	p.AngEnd = p.AngStart + m.rng.Buffered(TwoPi, 2)*m.canvas.AngDir()
	p.Intro = true
	return NewDrop(p, Env{
		Geometry: m.canvas,
		Animator: m.anim,
		Config:   &m.cfg,
		Rand:     m.rng,
	})
}

// Config returns the normalized configuration in use.
func (m *Manager) Config() Config {
	return m.cfg
}

// Drops returns the collection in creation order. The returned slice MUST
// NOT be mutated.
func (m *Manager) Drops() []*Drop {
	return m.drops
}

// Index returns the adjacency index over the drops.
func (m *Manager) Index() *Index {
	return m.index
}

// Packer returns the circle packer, or nil in test mode.
func (m *Manager) Packer() *Packer {
	return m.packer
}

// Ripple returns the ripple propagator.
func (m *Manager) Ripple() *Ripple {
	return m.ripple
}

// Ready reports whether pointer input is accepted: the packer has settled
// (or there is none).
func (m *Manager) Ready() bool {
	return m.ready
}

// AttractorPos is the packer's attractor: the canvas center.
func (m *Manager) AttractorPos() Vec2 {
	return Vec2{m.canvas.Width() / 2, m.canvas.Height() / 2}
}

// SetDebugMode enables per-redraw stats on stderr.
func (m *Manager) SetDebugMode(enabled bool) {
	m.debug = enabled
}

// Update runs one frame of manager work: a script step, one injected pointer
// event, one packer pass, and a redraw if anything asked for one. Call it
// after advancing the animator.
func (m *Manager) Update() {
	if m.script != nil {
		m.script.step(m)
	}
	m.processInjected()
	if m.packer != nil {
		m.packer.Run()
	}
	m.flush()
}

// --- Drawing ---

// Redraws returns the number of full redraws performed.
func (m *Manager) Redraws() int {
	return m.redraws
}

func (m *Manager) requestRedraw(clear bool) {
	m.dirty = true
	m.clear = m.clear || clear
}

func (m *Manager) flush() {
	if !m.dirty {
		return
	}
	if m.clear {
		m.canvas.Clear(ColorBlack)
	}
	m.dirty = false
	m.clear = false
	m.Draw()
}

// Redraw clears the canvas and draws every drop immediately.
func (m *Manager) Redraw() {
	m.canvas.Clear(ColorBlack)
	m.dirty = false
	m.clear = false
	m.Draw()
}

// Draw strokes every drop in the default theme without clearing.
func (m *Manager) Draw() {
	var t0 time.Time
	if m.debug {
		t0 = time.Now()
	}
	m.canvas.Save()
	m.canvas.SetStrokeColor(ColorTheme)
	for _, d := range m.drops {
		d.Draw(m.canvas)
	}
	m.canvas.Restore()
	m.redraws++
	if m.debug {
		m.debugLog(time.Since(t0))
	}
	m.Drew.Emit(m)
}

// --- Pulses and ripples ---

// StartPulse starts pulsing in the given style: a ripple from a random drop,
// every drop at once, or a single random drop.
func (m *Manager) StartPulse(typ PulseType) {
	if len(m.drops) == 0 {
		return
	}
	switch typ {
	case PulseSequential:
		m.StartRipple(typ)
	case PulseUniform:
		for _, d := range m.drops {
			d.StartPulse(PulseOptions{Type: PulseUniform})
		}
	default:
		m.drops[m.rng.IntN(len(m.drops))].StartPulse(PulseOptions{Type: PulseDefault})
	}
}

// StopPulse stops the ripple and lets every other pulse finish its period.
func (m *Manager) StopPulse() {
	m.ripple.Stop()
	for _, d := range m.drops {
		d.StopPulse(false)
	}
}

// StartRipple begins a ripple at a random drop.
func (m *Manager) StartRipple(typ PulseType) *Drop {
	return m.ripple.Start(typ)
}

// StartRippleAt begins a ripple at d.
func (m *Manager) StartRippleAt(d *Drop, typ PulseType) {
	m.ripple.StartAt(d, typ)
}

// StopRipple force-stops the ripple's pulses.
func (m *Manager) StopRipple() {
	m.ripple.Stop()
}

// AwakeCount returns the number of awake drops.
func (m *Manager) AwakeCount() int {
	n := 0
	for _, d := range m.drops {
		if d.Awake() {
			n++
		}
	}
	return n
}
