package drops

import "time"

// slot is one scheduled animation. gen increases every time the slot is
// re-targeted so a tick already in progress can skip stale entries.
type slot struct {
	step     StepFunc
	duration time.Duration
	elapsed  time.Duration
	opts     AnimateOptions
	gen      uint32
}

// Scheduler is the frame-driven Animator. There is no global animation
// manager: the owner calls Update once per frame with the frame delta.
// Single-threaded; callbacks run synchronously inside Update.
type Scheduler struct {
	slots  map[Handle]*slot
	order  []Handle
	nextID Handle
	now    time.Duration
	tick   uint64
}

// NewScheduler creates an empty scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{slots: make(map[Handle]*slot)}
}

// Now returns the total time advanced through Update.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Ticks returns the number of Update calls so far.
func (s *Scheduler) Ticks() uint64 {
	return s.tick
}

// Len returns the number of active slots.
func (s *Scheduler) Len() int {
	return len(s.slots)
}

// Active reports whether h currently has a scheduled slot.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.slots[h]
	return ok
}

// Animate schedules step to run on every Update until duration elapses. If h
// names a slot issued by this scheduler, that slot is restarted with the new
// callback instead of allocating another one.
func (s *Scheduler) Animate(opts AnimateOptions, step StepFunc, duration time.Duration, h Handle) Handle {
	if step == nil {
		return h
	}
	if duration < 0 {
		duration = 0
	}
	if sl, ok := s.slots[h]; ok {
		sl.step = step
		sl.duration = duration
		sl.elapsed = 0
		sl.opts = opts
		sl.gen++
		return h
	}
	if h == 0 || h > s.nextID {
		s.nextID++
		h = s.nextID
	}
	s.slots[h] = &slot{step: step, duration: duration, opts: opts}
	s.order = append(s.order, h)
	return h
}

// PauseAnimation cancels the slot. Unknown handles are ignored.
func (s *Scheduler) PauseAnimation(h Handle) {
	if _, ok := s.slots[h]; !ok {
		return
	}
	delete(s.slots, h)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Update advances the clock by dt and invokes every slot that was scheduled
// before this call, in handle order. A non-looping slot whose elapsed time
// reaches its duration is removed and then receives its terminal call, so
// the callback may safely reschedule the same handle.
func (s *Scheduler) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt
	s.tick++
	if len(s.order) == 0 {
		return
	}

	type pending struct {
		h   Handle
		sl  *slot
		gen uint32
	}
	batch := make([]pending, 0, len(s.order))
	for _, h := range s.order {
		sl := s.slots[h]
		batch = append(batch, pending{h: h, sl: sl, gen: sl.gen})
	}

	for _, p := range batch {
		cur, ok := s.slots[p.h]
		if !ok || cur != p.sl || cur.gen != p.gen {
			continue
		}
		cur.elapsed += dt
		if cur.elapsed < cur.duration {
			cur.step(cur.elapsed, false)
			continue
		}
		if cur.opts.Loop && cur.duration > 0 {
			cur.elapsed %= cur.duration
			cur.step(cur.elapsed, false)
			continue
		}
		s.PauseAnimation(p.h)
		cur.step(cur.duration, true)
	}
}
