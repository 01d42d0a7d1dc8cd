package drops

import (
	"math"
	"testing"
	"time"
)

func TestCircle(t *testing.T) {
	c := Circle{Center: Vec2{0, 0}, Radius: 10}
	if !c.Contains(Vec2{10, 0}) {
		t.Error("a point on the edge is contained")
	}
	if c.Contains(Vec2{10, 0.1}) {
		t.Error("a point outside is not contained")
	}
	tangent := Circle{Center: Vec2{20, 0}, Radius: 10}
	if c.Intersects(tangent) {
		t.Error("tangent circles do not intersect")
	}
	if c.Overlap(tangent) != 0 {
		t.Error("tangent circles have no overlap")
	}
	near := Circle{Center: Vec2{15, 0}, Radius: 10}
	if !c.Intersects(near) || c.Overlap(near) != 5 {
		t.Errorf("overlap = %v, want 5", c.Overlap(near))
	}
	if c.Inflate(5).Radius != 15 || c.Radius != 10 {
		t.Error("Inflate should return a grown copy")
	}
}

func TestVec2(t *testing.T) {
	a, b := Vec2{1, 2}, Vec2{4, 6}
	if a.Add(b) != (Vec2{5, 8}) || b.Sub(a) != (Vec2{3, 4}) || a.Scale(2) != (Vec2{2, 4}) {
		t.Error("vector arithmetic mismatch")
	}
	if b.Sub(a).Len() != 5 || a.Dist(b) != 5 {
		t.Error("length mismatch")
	}
}

func TestPulseTypeNames(t *testing.T) {
	for _, typ := range []PulseType{PulseDefault, PulseSequential, PulseUniform} {
		if got := ParsePulseType(typ.String()); got != typ {
			t.Errorf("ParsePulseType(%q) = %v", typ.String(), got)
		}
	}
	if ParsePulseType("ripple") != PulseSequential {
		t.Error("ripple should alias sequential")
	}
	if ParsePulseType("bogus") != PulseDefault {
		t.Error("unknown names map to default")
	}
}

func TestClamp(t *testing.T) {
	if clamp(5, 0, 3) != 3 || clamp(-1, 0, 3) != 0 || clamp(2, 0, 3) != 2 {
		t.Error("clamp mismatch")
	}
	if clamp(9, 10, 4) != 7 {
		t.Error("inverted range should give the midpoint")
	}
}

func TestStayInBounds(t *testing.T) {
	env, _ := testEnv(t)
	d := plainDrop(env, 790, 5, 20)
	d.StayInBounds(env.Geometry)
	m := 20 + 2*3.0
	if d.Pos.X != 800-m || d.Pos.Y != m {
		t.Errorf("Pos = %+v, want (%v, %v)", d.Pos, 800-m, m)
	}
}

func TestNewDropDefaults(t *testing.T) {
	env, _ := testEnv(t)
	d := NewDrop(DropParams{}, env)
	if d.Pos != env.Geometry.Center() {
		t.Errorf("Pos = %+v, want canvas center", d.Pos)
	}
	if d.RadFinal != env.Config.BaseNode.Rad || d.LineWidth != env.Config.BaseNode.LineWidth {
		t.Error("zero radius and line width should use the base defaults")
	}
	if d.AngEnd != TwoPi {
		t.Errorf("AngEnd = %v, want full turn", d.AngEnd)
	}
	if want := math.Pow(d.LineWidth, 4) + env.Config.BaseNode.GlowDistance; d.GlowDist != want {
		t.Errorf("GlowDist = %v, want %v", d.GlowDist, want)
	}
	if d.Luck < 0 || d.Luck >= 1 {
		t.Errorf("Luck = %v out of [0, 1)", d.Luck)
	}
	other := NewDrop(DropParams{}, env)
	if other.ID == d.ID {
		t.Error("drop IDs should be unique")
	}
}

func TestEaseInOutCubic(t *testing.T) {
	d := 100 * time.Millisecond
	if easeInOutCubic(0, 2, 3, d) != 2 {
		t.Error("start should be b")
	}
	if easeInOutCubic(d, 2, 3, d) != 5 || easeInOutCubic(2*d, 2, 3, d) != 5 {
		t.Error("end should be b+c")
	}
	if got := easeInOutCubic(d/2, 2, 3, d); math.Abs(got-3.5) > 1e-5 {
		t.Errorf("midpoint = %v, want 3.5", got)
	}
	if easeInOutCubic(time.Millisecond, 0, 1, 0) != 1 {
		t.Error("zero duration should jump to the end")
	}
}
