package drops

import (
	"testing"
	"time"
)

// tick is the frame delta used by tests.
const tick = 10 * time.Millisecond

type arcCall struct {
	cx, cy, r, angStart, angEnd, rotation float64
}

// recordSurface is a Canvas that records what was drawn.
type recordSurface struct {
	StyleStack
	w, h     float64
	dir      float64
	saves    int
	restores int
	maxDepth int
	clears   int
	begins   int
	arcs     []arcCall
	strokes  []Style
}

func newRecordSurface(w, h, dir float64) *recordSurface {
	return &recordSurface{StyleStack: NewStyleStack(DefaultStyle), w: w, h: h, dir: dir}
}

func (r *recordSurface) Save() {
	r.saves++
	r.StyleStack.Save()
	r.maxDepth = max(r.maxDepth, r.Depth())
}

func (r *recordSurface) Restore() {
	r.restores++
	r.StyleStack.Restore()
}

func (r *recordSurface) Width() float64         { return r.w }
func (r *recordSurface) Height() float64        { return r.h }
func (r *recordSurface) Center() Vec2           { return Vec2{r.w / 2, r.h / 2} }
func (r *recordSurface) AngDir() float64        { return r.dir }
func (r *recordSurface) SetLineWidth(w float64) { r.Current.LineWidth = w }
func (r *recordSurface) LineWidth() float64     { return r.Current.LineWidth }
func (r *recordSurface) SetStrokeColor(c Color) { r.Current.Stroke = c }
func (r *recordSurface) StrokeColor() Color     { return r.Current.Stroke }
func (r *recordSurface) BeginPath()             { r.begins++ }
func (r *recordSurface) Stroke()                { r.strokes = append(r.strokes, r.Current) }
func (r *recordSurface) Clear(Color)            { r.clears++ }
func (r *recordSurface) Arc(cx, cy, rad, a0, a1, rot float64) {
	r.arcs = append(r.arcs, arcCall{cx, cy, rad, a0, a1, rot})
}

// testEnv returns an environment on an 800x600 clockwise surface with a
// seeded generator and a fresh scheduler.
func testEnv(t *testing.T) (Env, *Scheduler) {
	t.Helper()
	cfg := DefaultConfig()
	sched := NewScheduler()
	return Env{
		Geometry: newRecordSurface(800, 600, 1),
		Animator: sched,
		Config:   &cfg,
		Rand:     NewRand(1),
	}, sched
}

// plainDrop creates a drop with no decoration and no intro.
func plainDrop(env Env, x, y, rad float64) *Drop {
	return NewDrop(DropParams{
		Pos:       Vec2{x, y},
		Rad:       rad,
		LineWidth: 2,
		AngStart:  0,
		AngEnd:    HalfPi,
		Luck:      0.99,
		FixedLuck: true,
	}, env)
}

// advance runs the scheduler for total in fixed ticks.
func advance(s *Scheduler, total time.Duration) {
	for el := time.Duration(0); el < total; el += tick {
		s.Update(tick)
	}
}
