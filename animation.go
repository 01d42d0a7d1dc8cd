package drops

import (
	"math"
	"time"
)

// Animation names. Names are free-form; these are the ones drops use.
const (
	AnimSpin  = "spin"
	AnimPulse = "pulse"
	AnimIntro = "intro"
)

// pulseTolerance is how close the eased glow must come back to its origin
// for a period to count as complete.
const pulseTolerance = 0.01

// Awake reports whether any named animation is running.
func (d *Drop) Awake() bool {
	return d.awake
}

// Running reports whether the named animation is running.
func (d *Drop) Running(name string) bool {
	_, ok := d.running[name]
	return ok
}

// RunningCount returns the number of running named animations.
func (d *Drop) RunningCount() int {
	return len(d.running)
}

// StartAnimation schedules step under name until duration elapses. It is a
// no-op returning false when an animation with that name is already running.
// Every non-terminal tick is bracketed by WillAnimationStep and
// AnimationStep; the terminal tick (complete=true) is delivered exactly once
// and the name is released right after it.
func (d *Drop) StartAnimation(name string, step StepFunc, duration time.Duration, opts AnimateOptions) bool {
	if d.Running(name) {
		return false
	}
	d.runSeq++
	r := &run{seq: d.runSeq}
	d.running[name] = r

	wrapped := func(elapsed time.Duration, complete bool) {
		if cur, ok := d.running[name]; !ok || cur != r {
			return
		}
		if complete {
			step(elapsed, true)
			if cur, ok := d.running[name]; ok && cur == r {
				d.StopAnimation(name)
			}
			return
		}
		d.WillAnimationStep.Emit(StepEvent{Drop: d, Name: name})
		step(elapsed, false)
		if cur, ok := d.running[name]; ok && cur == r {
			d.AnimationStep.Emit(StepEvent{Drop: d, Name: name})
		}
	}
	r.handle = d.env.Animator.Animate(opts, wrapped, duration, d.handles[name])
	d.handles[name] = r.handle
	d.tryWake()
	return true
}

// StopAnimation cancels the named animation. It is a no-op returning false
// when nothing by that name is running.
func (d *Drop) StopAnimation(name string) bool {
	r, ok := d.running[name]
	if !ok {
		return false
	}
	d.env.Animator.PauseAnimation(r.handle)
	delete(d.running, name)
	d.trySleep()
	return true
}

func (d *Drop) tryWake() {
	if d.awake || len(d.running) == 0 {
		return
	}
	d.awake = true
	Logger().Debug("drop woke", "id", d.ID)
	d.Woke.Emit(d)
}

func (d *Drop) trySleep() {
	if !d.awake || len(d.running) > 0 {
		return
	}
	d.awake = false
	Logger().Debug("drop slept", "id", d.ID)
	d.Slept.Emit(d)
}

// Wake activates the drop's natural behavior: a spin.
func (d *Drop) Wake() bool {
	return d.StartSpin()
}

// Sleep stops the spin and force-stops any pulse.
func (d *Drop) Sleep() {
	d.StopSpin()
	d.StopPulse(true)
}

// --- Spin ---

// StartSpin eases Ang through a random delta of [SpinMin, SpinMax]·π over
// SpinSpeed. One-shot: the spin releases itself on completion, leaving Ang
// at exactly its start plus the delta.
func (d *Drop) StartSpin() bool {
	if d.Running(AnimSpin) {
		return false
	}
	cfg := d.env.Config.BaseNode
	beginning := d.Ang
	change := math.Pi * d.env.Rand.Between(cfg.SpinMin, cfg.SpinMax)
	duration := cfg.SpinSpeed
	return d.StartAnimation(AnimSpin, func(elapsed time.Duration, complete bool) {
		if complete {
			d.Ang = beginning + change
			return
		}
		d.Ang = easeInOutCubic(elapsed, beginning, change, duration)
	}, duration, AnimateOptions{})
}

// StopSpin cancels a running spin where it stands.
func (d *Drop) StopSpin() bool {
	return d.StopAnimation(AnimSpin)
}

// --- Pulse ---

// PulseOptions configure StartPulse. Zero Repeat and Dir fall back to the
// configured defaults.
type PulseOptions struct {
	Type   PulseType
	Repeat int
	Dir    float64
}

type pulseState struct {
	typ       PulseType
	origin    float64
	dir       float64 // direction of the next cycle
	cycleDir  float64 // direction of the cycle in progress
	remaining int
	last      time.Duration
	marked    bool
	stopping  bool
	stopOnce  Listener
}

// PulseType returns the type of the running pulse, or PulseDefault.
func (d *Drop) PulseType() PulseType {
	if !d.Running(AnimPulse) {
		return PulseDefault
	}
	return d.pulse.typ
}

// StartPulse swings Glow away from its current value by half of it and back,
// once per period of 2·GlowSpeed, reversing direction every period. Each
// period fires PulsePeriod. With a finite Repeat the pulse ends itself after
// that many periods, restoring Glow, emitting a final AnimationStep with End
// set, and then RippleAffected.
func (d *Drop) StartPulse(opts PulseOptions) bool {
	if d.Running(AnimPulse) {
		return false
	}
	cfg := d.env.Config
	if opts.Repeat == 0 {
		opts.Repeat = cfg.Pulse.Repeat
	}
	if opts.Repeat == 0 {
		opts.Repeat = 1
	}
	if opts.Dir == 0 {
		opts.Dir = cfg.Pulse.Dir
	}
	if opts.Dir >= 0 {
		opts.Dir = 1
	} else {
		opts.Dir = -1
	}

	d.pulse = pulseState{
		typ:       opts.Type,
		origin:    d.Glow,
		dir:       opts.Dir,
		cycleDir:  opts.Dir,
		remaining: opts.Repeat,
	}
	period := 2 * cfg.BaseNode.GlowSpeed
	return d.StartAnimation(AnimPulse, func(elapsed time.Duration, complete bool) {
		d.pulseStep(elapsed, period, complete)
	}, period, AnimateOptions{Loop: true})
}

func (d *Drop) pulseStep(elapsed, period time.Duration, complete bool) {
	ps := &d.pulse
	if complete {
		// A zero period never loops; the pulse ends as if its budget ran out.
		d.finishPulse(true)
		return
	}
	if elapsed < ps.last {
		// The loop wrapped; a period the tolerance check missed still counts.
		if !ps.marked && !d.completePeriod() {
			return
		}
		ps.marked = false
		ps.cycleDir = ps.dir
	}
	ps.last = elapsed

	half := period / 2
	amp := ps.origin / 2 * ps.cycleDir
	var v float64
	if elapsed < half {
		v = easeInOutCubic(elapsed, ps.origin, amp, half)
	} else {
		v = easeInOutCubic(elapsed-half, ps.origin+amp, -amp, half)
	}
	d.Glow = v

	if elapsed >= half && !ps.marked && math.Abs(v-ps.origin) < pulseTolerance {
		ps.marked = true
		d.completePeriod()
	}
}

// completePeriod reverses direction, notifies, and counts down the repeat
// budget. Returns false when the pulse is no longer running afterwards.
func (d *Drop) completePeriod() bool {
	ps := &d.pulse
	ps.dir = -ps.dir
	d.PulsePeriod.Emit(d)
	if !d.Running(AnimPulse) {
		return false
	}
	if ps.remaining > 0 {
		ps.remaining--
		if ps.remaining == 0 {
			d.finishPulse(true)
			return false
		}
	}
	return true
}

// StopPulse ends a running pulse. A forced stop is immediate; otherwise the
// pulse finishes its current period first. Returns false when no pulse is
// running.
func (d *Drop) StopPulse(force bool) bool {
	if !d.Running(AnimPulse) {
		return false
	}
	ps := &d.pulse
	if force {
		d.PulsePeriod.Remove(ps.stopOnce)
		d.finishPulse(false)
		return true
	}
	if ps.stopping {
		return true
	}
	ps.stopping = true
	ps.stopOnce = d.PulsePeriod.Once(func(*Drop) {
		d.finishPulse(false)
	})
	return true
}

// finishPulse restores the glow and releases the pulse. natural is set when
// the repeat budget ran out, which is what lets a ripple move on.
func (d *Drop) finishPulse(natural bool) {
	ps := &d.pulse
	if ps.stopping {
		d.PulsePeriod.Remove(ps.stopOnce)
	}
	ps.stopping = false
	ps.stopOnce = Listener{}
	d.Glow = ps.origin
	d.StopAnimation(AnimPulse)
	d.AnimationStep.Emit(StepEvent{Drop: d, Name: AnimPulse, End: true})
	if natural {
		d.RippleAffected.Emit(d)
	}
}
