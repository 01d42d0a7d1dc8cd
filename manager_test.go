package drops

import (
	"testing"
	"time"
)

func newTestManager(t *testing.T, mut func(*Config)) (*Manager, *recordSurface, *Scheduler) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 1
	if mut != nil {
		mut(&cfg)
	}
	surf := newRecordSurface(800, 600, 1)
	sched := NewScheduler()
	return NewManager(cfg, surf, sched), surf, sched
}

func settle(t *testing.T, m *Manager) {
	t.Helper()
	for i := 0; !m.Ready(); i++ {
		if i > 1000 {
			t.Fatal("manager never became ready")
		}
		m.Update()
	}
}

func TestManagerTestMode(t *testing.T) {
	m, surf, _ := newTestManager(t, func(c *Config) { c.TestMode = true })
	if len(m.Drops()) != 1 {
		t.Fatalf("drops = %d, want 1", len(m.Drops()))
	}
	if m.Packer() != nil {
		t.Error("test mode should not pack")
	}
	if !m.Ready() {
		t.Error("test mode should be ready at once")
	}
	d := m.Drops()[0]
	if d.Pos != (Vec2{400, 300}) || d.Luck != 0 {
		t.Errorf("test drop at %+v luck %v, want centered with zero luck", d.Pos, d.Luck)
	}
	if m.Redraws() != 1 || surf.clears != 1 {
		t.Errorf("redraws = %d clears = %d, want one initial redraw", m.Redraws(), surf.clears)
	}
}

func TestManagerPacksBeforeInput(t *testing.T) {
	m, _, _ := newTestManager(t, func(c *Config) { c.Num = 5 })
	if m.Ready() {
		t.Fatal("should not be ready before packing")
	}
	d := m.Drops()[0]
	if m.PointerMove(d.Pos.X, d.Pos.Y) {
		t.Error("pointer input should be ignored while packing")
	}
	for i := 0; i < 34; i++ {
		m.Update()
	}
	if m.Ready() {
		t.Error("ready one pass early")
	}
	m.Update()
	if !m.Ready() || !m.Packer().IsSettled() {
		t.Error("should be ready after the last pass")
	}
	if m.Redraws() != 35 {
		t.Errorf("redraws = %d, want one per pass", m.Redraws())
	}
	m.Update()
	if m.Redraws() != 35 {
		t.Error("a settled idle scene should not redraw")
	}
}

func TestManagerPointerThrottle(t *testing.T) {
	m, _, sched := newTestManager(t, func(c *Config) { c.TestMode = true })
	d := m.Drops()[0]
	if m.PointerMove(1, 1) {
		t.Error("empty space should wake nothing")
	}
	if !m.PointerMove(400, 300) {
		t.Fatal("move over the drop should wake it")
	}
	if !d.Awake() || !d.Running(AnimSpin) {
		t.Error("drop should be spinning")
	}
	if m.PointerMove(400, 300) {
		t.Error("move within the timeout should be throttled")
	}
	advance(sched, 200*time.Millisecond)
	if !m.PointerMove(400, 300) {
		t.Error("move after the timeout should be accepted")
	}
}

func TestManagerClickRipple(t *testing.T) {
	m, _, _ := newTestManager(t, func(c *Config) { c.TestMode = true })
	d := m.Drops()[0]
	if !m.PointerClick(400, 300) {
		t.Fatal("click on the drop should start a ripple")
	}
	if !m.Ripple().Active() || d.PulseType() != PulseSequential {
		t.Error("drop should carry a sequential pulse")
	}
	if m.PointerClick(1, 1) {
		t.Error("click on empty space should report false")
	}
	if m.Ripple().Active() || d.Running(AnimPulse) {
		t.Error("click on empty space should stop the ripple")
	}
}

func TestManagerUniformPulse(t *testing.T) {
	m, _, sched := newTestManager(t, func(c *Config) { c.Num = 4 })
	settle(t, m)
	m.StartPulse(PulseUniform)
	for _, d := range m.Drops() {
		if d.PulseType() != PulseUniform {
			t.Fatalf("drop %d not pulsing uniformly", d.ID)
		}
	}
	if m.AwakeCount() != 4 {
		t.Errorf("awake = %d, want 4", m.AwakeCount())
	}
	m.StopPulse()
	advance(sched, time.Second)
	m.Update()
	if n := m.AwakeCount(); n != 0 {
		t.Errorf("awake = %d after the period ended, want 0", n)
	}
	for _, d := range m.Drops() {
		if d.Glow != m.Config().BaseNode.GlowValue {
			t.Errorf("drop %d glow = %v, want restored", d.ID, d.Glow)
		}
	}
}

func TestManagerDefaultPulse(t *testing.T) {
	m, _, _ := newTestManager(t, func(c *Config) { c.Num = 6 })
	settle(t, m)
	m.StartPulse(PulseDefault)
	if n := m.AwakeCount(); n != 1 {
		t.Errorf("awake = %d, want a single pulsing drop", n)
	}
}

func TestManagerEmpty(t *testing.T) {
	m, _, _ := newTestManager(t, func(c *Config) { c.Num = 0 })
	settle(t, m)
	m.StartPulse(PulseDefault)
	m.StartPulse(PulseUniform)
	if m.StartRipple(PulseSequential) != nil {
		t.Error("ripple on an empty scene should have no start")
	}
	if m.DropAt(Vec2{400, 300}) != nil {
		t.Error("nothing to hit")
	}
}

func TestManagerRedrawsOnStep(t *testing.T) {
	m, surf, sched := newTestManager(t, func(c *Config) { c.TestMode = true })
	drew := 0
	m.Drew.Add(func(*Manager) { drew++ })

	sched.Update(tick)
	sched.Update(tick)
	m.Update()
	if m.Redraws() != 2 || drew != 1 {
		t.Errorf("redraws = %d drew = %d, want steps coalesced into one redraw", m.Redraws(), drew)
	}
	if surf.clears != 2 {
		t.Errorf("clears = %d, want 2", surf.clears)
	}
	m.Update()
	if m.Redraws() != 2 {
		t.Error("no step, no redraw")
	}
	if surf.saves != surf.restores {
		t.Errorf("saves %d != restores %d", surf.saves, surf.restores)
	}
}

func TestManagerRedrawsFinalSpinAngle(t *testing.T) {
	m, _, sched := newTestManager(t, func(c *Config) { c.TestMode = true })
	d := m.Drops()[0]
	advance(sched, 600*time.Millisecond)
	m.Update()
	if !d.IntroDone() {
		t.Fatal("intro should be done")
	}
	if !m.PointerMove(400, 300) {
		t.Fatal("move over the drop should wake it")
	}
	var drawnAng float64
	m.Drew.Add(func(*Manager) { drawnAng = d.Ang })

	for i := 0; d.Awake(); i++ {
		if i > 100 {
			t.Fatal("spin never finished")
		}
		sched.Update(tick)
		m.Update()
	}
	if drawnAng != d.Ang {
		t.Errorf("last drawn angle %v, want final %v", drawnAng, d.Ang)
	}
}

func TestManagerInjectedInput(t *testing.T) {
	m, _, _ := newTestManager(t, func(c *Config) {
		c.TestMode = true
		c.MouseMoveTimeout = 0
	})
	m.InjectSweep(0, 0, 400, 300, 3)
	if m.Pending() != 3 {
		t.Fatalf("pending = %d, want 3", m.Pending())
	}
	m.Update()
	m.Update()
	if m.Pending() != 1 || m.AwakeCount() != 0 {
		t.Error("one event per frame, none over the drop yet")
	}
	m.Update()
	if m.Pending() != 0 || m.AwakeCount() != 1 {
		t.Error("last sweep point should wake the drop")
	}
	m.InjectClick(400, 300)
	m.Update()
	if !m.Ripple().Active() {
		t.Error("injected click should start a ripple")
	}
}
