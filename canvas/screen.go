package canvas

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/drops"
)

// maxArcSegments caps the polyline resolution of a single arc.
const maxArcSegments = 256

// Screen is a drops.Canvas that strokes onto an ebiten image. Arcs are
// flattened to polylines.
type Screen struct {
	drops.StyleStack

	img    *ebiten.Image
	angDir float64
	path   [][]drops.Vec2
}

var _ drops.Canvas = (*Screen)(nil)

// NewScreen wraps img. angDir is normalized to +1 or -1.
func NewScreen(img *ebiten.Image, angDir float64) *Screen {
	return &Screen{
		StyleStack: drops.NewStyleStack(drops.DefaultStyle),
		img:        img,
		angDir:     normDir(angDir),
	}
}

// Target returns the image being drawn onto.
func (s *Screen) Target() *ebiten.Image {
	return s.img
}

func (s *Screen) Width() float64  { return float64(s.img.Bounds().Dx()) }
func (s *Screen) Height() float64 { return float64(s.img.Bounds().Dy()) }
func (s *Screen) AngDir() float64 { return s.angDir }
func (s *Screen) Center() drops.Vec2 {
	return drops.Vec2{X: s.Width() / 2, Y: s.Height() / 2}
}

func (s *Screen) SetLineWidth(w float64)       { s.Current.LineWidth = w }
func (s *Screen) LineWidth() float64           { return s.Current.LineWidth }
func (s *Screen) SetStrokeColor(c drops.Color) { s.Current.Stroke = c }
func (s *Screen) StrokeColor() drops.Color     { return s.Current.Stroke }

func (s *Screen) BeginPath() {
	s.path = s.path[:0]
}

// Arc appends the arc as a separate polyline.
func (s *Screen) Arc(cx, cy, r, angStart, angEnd, rotation float64) {
	if r <= 0 {
		return
	}
	a0, a1 := normArc(angStart+rotation, angEnd+rotation)
	s.path = append(s.path, flattenArc(cx, cy, r, a0, a1))
}

// Stroke draws every polyline in the path with the current style and
// clears the path.
func (s *Screen) Stroke() {
	w := float32(s.Current.LineWidth)
	clr := toNRGBA(s.Current.Stroke)
	for _, line := range s.path {
		for i := 1; i < len(line); i++ {
			p, q := line[i-1], line[i]
			vector.StrokeLine(s.img, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), w, clr, true)
		}
	}
	s.path = s.path[:0]
}

func (s *Screen) Clear(c drops.Color) {
	s.path = s.path[:0]
	s.img.Fill(toNRGBA(c))
}

// flattenArc samples an increasing angle range at roughly four pixels per
// segment.
func flattenArc(cx, cy, r, a0, a1 float64) []drops.Vec2 {
	n := int(math.Ceil((a1 - a0) * r / 4))
	n = max(n, 8)
	n = min(n, maxArcSegments)
	pts := make([]drops.Vec2, n+1)
	step := (a1 - a0) / float64(n)
	for i := range pts {
		a := a0 + float64(i)*step
		pts[i] = drops.Vec2{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

func toNRGBA(c drops.Color) color.NRGBA {
	return color.NRGBA{
		R: unit8(c.R),
		G: unit8(c.G),
		B: unit8(c.B),
		A: unit8(c.A),
	}
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
