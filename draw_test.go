package drops

import (
	"math"
	"testing"
)

func TestDrawPairsSaveRestore(t *testing.T) {
	env, _ := testEnv(t)
	d := NewDrop(DropParams{Rad: 100, LineWidth: 2, FixedLuck: true}, env)
	s := newRecordSurface(800, 600, 1)
	s.SetLineWidth(7)

	d.Draw(s)
	if s.saves != s.restores {
		t.Errorf("saves = %d, restores = %d", s.saves, s.restores)
	}
	if s.Depth() != 0 {
		t.Errorf("style stack depth = %d after draw", s.Depth())
	}
	if s.LineWidth() != 7 || s.StrokeColor() != ColorTheme {
		t.Error("Draw should leave the surface style as it found it")
	}
	if s.maxDepth < 3 {
		t.Errorf("max depth = %d, want nested scopes for ring and glow", s.maxDepth)
	}
}

func TestDrawStrokeCount(t *testing.T) {
	env, _ := testEnv(t)
	d := NewDrop(DropParams{Rad: 100, LineWidth: 2, FixedLuck: true}, env)
	s := newRecordSurface(800, 600, 1)
	d.Draw(s)

	outer := int(math.Ceil(d.GlowDist)) * len(d.OuterSegments)
	inner := int(math.Ceil(d.GlowDist*env.Config.DropNode.InnerGlow)) * len(d.InnerSegments)
	if len(s.strokes) != outer+inner {
		t.Errorf("strokes = %d, want %d outer + %d inner", len(s.strokes), outer, inner)
	}
	if len(s.arcs) != len(s.strokes) || s.begins != len(s.strokes) {
		t.Errorf("arcs = %d, begins = %d, strokes = %d", len(s.arcs), s.begins, len(s.strokes))
	}
}

func TestDrawPlainRing(t *testing.T) {
	env, _ := testEnv(t)
	d := plainDrop(env, 120, 140, 30)
	d.Ang = 0.5
	d.Glow = 0.4
	s := newRecordSurface(800, 600, 1)
	d.Draw(s)

	layers := int(math.Ceil(d.GlowDist))
	if len(s.strokes) != layers {
		t.Fatalf("strokes = %d, want %d glow layers", len(s.strokes), layers)
	}
	a := s.arcs[0]
	if a.cx != 120 || a.cy != 140 || a.r != 30 || a.angStart != 0 || a.angEnd != HalfPi || a.rotation != 0.5 {
		t.Errorf("arc = %+v", a)
	}
	for i, st := range s.strokes {
		if st.Stroke.A != 0.4 {
			t.Errorf("stroke %d alpha = %v, want glow 0.4", i, st.Stroke.A)
		}
		if i > 0 && st.LineWidth <= s.strokes[i-1].LineWidth {
			t.Errorf("glow layer %d width %v did not grow", i, st.LineWidth)
		}
	}
	if s.strokes[0].LineWidth <= d.LineWidth {
		t.Error("first glow layer should be wider than the line width")
	}
}

func TestDrawSkipsZeroRadius(t *testing.T) {
	env, _ := testEnv(t)
	d := NewDrop(DropParams{Rad: 40, Intro: true}, env)
	s := newRecordSurface(800, 600, 1)
	d.Draw(s)
	if s.saves != 0 || len(s.strokes) != 0 {
		t.Error("a drop with zero radius should draw nothing")
	}
}
