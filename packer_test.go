package drops

import (
	"math"
	"testing"
)

func TestPackerSeparatesEqualDrops(t *testing.T) {
	env, _ := testEnv(t)
	ds := []*Drop{
		plainDrop(env, 380, 290, 40),
		plainDrop(env, 420, 300, 40),
		plainDrop(env, 400, 330, 40),
		plainDrop(env, 390, 310, 40),
		plainDrop(env, 410, 280, 40),
	}
	p := NewPacker(ds, Vec2{400, 300}, 35, PackerOptions{Bounds: env.Geometry})
	sockets, settled := 0, 0
	p.DrawingSocket.Add(func(int) { sockets++ })
	p.Settled.Add(func(n int) {
		settled++
		if n != 35 {
			t.Errorf("Settled pass count = %d, want 35", n)
		}
	})

	for i := 0; i < 35; i++ {
		if !p.Run() {
			t.Fatalf("pass %d did no work", i+1)
		}
	}
	if !p.IsSettled() || settled != 1 || sockets != 35 {
		t.Fatalf("settled = %v (%d signals), sockets = %d", p.IsSettled(), settled, sockets)
	}

	const tolerance = 1.0
	for i := range ds {
		for j := i + 1; j < len(ds); j++ {
			if d := ds[i].Pos.Dist(ds[j].Pos); d < 80-tolerance {
				t.Errorf("drops %d and %d overlap: distance %.2f", i, j, d)
			}
		}
	}
	if p.MaxOverlap() >= tolerance {
		t.Errorf("MaxOverlap = %v", p.MaxOverlap())
	}

	before := make([]Vec2, len(ds))
	for i, d := range ds {
		before[i] = d.Pos
	}
	if p.Run() {
		t.Error("Run after settling should be a no-op")
	}
	for i, d := range ds {
		if d.Pos != before[i] {
			t.Errorf("drop %d moved after settling", i)
		}
	}
	if settled != 1 || sockets != 35 {
		t.Errorf("extra notifications after settling: settled %d, sockets %d", settled, sockets)
	}
}

func TestPackerPullsTowardAttractor(t *testing.T) {
	env, _ := testEnv(t)
	d := plainDrop(env, 100, 100, 20)
	p := NewPacker([]*Drop{d}, Vec2{400, 300}, 20, PackerOptions{})
	start := d.Pos.Dist(p.Attractor())
	for p.Run() {
	}
	if got := d.Pos.Dist(p.Attractor()); got >= start/2 {
		t.Errorf("distance to attractor %v, started at %v", got, start)
	}
}

func TestPackerCoincidentCenters(t *testing.T) {
	env, _ := testEnv(t)
	a := plainDrop(env, 400, 300, 30)
	b := plainDrop(env, 400, 300, 30)
	p := NewPacker([]*Drop{a, b}, Vec2{400, 300}, 5, PackerOptions{})
	for p.Run() {
	}
	if d := a.Pos.Dist(b.Pos); d < 59 {
		t.Errorf("coincident drops still overlap: distance %v", d)
	}
	if math.IsNaN(a.Pos.X) || math.IsNaN(b.Pos.Y) {
		t.Error("positions went NaN")
	}
}

func TestPackerStaysInBounds(t *testing.T) {
	env, _ := testEnv(t)
	var ds []*Drop
	for i := 0; i < 6; i++ {
		ds = append(ds, plainDrop(env, 10, 10, 60))
	}
	p := NewPacker(ds, Vec2{0, 0}, 10, PackerOptions{Bounds: env.Geometry})
	for p.Run() {
	}
	for i, d := range ds {
		m := d.RadFinal + d.LineWidth*3
		if d.Pos.X < m-1e-9 || d.Pos.Y < m-1e-9 || d.Pos.X > 800-m+1e-9 || d.Pos.Y > 600-m+1e-9 {
			t.Errorf("drop %d out of bounds at %+v", i, d.Pos)
		}
	}
}

func TestPackerZeroPasses(t *testing.T) {
	env, _ := testEnv(t)
	d := plainDrop(env, 100, 100, 20)
	p := NewPacker([]*Drop{d}, Vec2{400, 300}, -3, PackerOptions{})
	settled := 0
	p.Settled.Add(func(int) { settled++ })
	if p.Run() {
		t.Error("a packer with no passes should do no work")
	}
	p.Run()
	if !p.IsSettled() || settled != 1 {
		t.Errorf("settled = %v with %d signals, want true with 1", p.IsSettled(), settled)
	}
	if d.Pos != (Vec2{100, 100}) {
		t.Error("no pass should move nothing")
	}
}
