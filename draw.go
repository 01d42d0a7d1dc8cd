package drops

import "math"

// Draw strokes the drop onto s: the outer ring (whole or segmented) and the
// inner ring when present, each layered into a glow. The surface style is
// left exactly as it was found.
func (d *Drop) Draw(s Surface) {
	if d.Rad <= 0 {
		return
	}
	s.Save()
	defer s.Restore()
	s.SetStrokeColor(s.StrokeColor().WithAlpha(d.Glow))
	s.SetLineWidth(d.LineWidth)
	d.drawRing(s)
	if d.InnerRing != nil {
		d.drawInnerRing(s)
	}
}

func (d *Drop) drawRing(s Surface) {
	if len(d.OuterSegments) == 0 {
		d.addGlow(s, d.GlowDist, func() {
			d.strokeArc(s, d.Rad, d.AngStart, d.AngEnd)
		})
		return
	}
	for _, seg := range d.OuterSegments {
		d.addGlow(s, d.GlowDist, func() {
			d.strokeArc(s, d.Rad, seg.AngStart, seg.AngEnd)
		})
	}
}

func (d *Drop) drawInnerRing(s Surface) {
	ring := d.InnerRing
	glow := d.GlowDist * d.env.Config.DropNode.InnerGlow
	s.Save()
	defer s.Restore()
	s.SetLineWidth(ring.LineWidth)
	if len(d.InnerSegments) == 0 {
		d.addGlow(s, glow, func() {
			d.strokeArc(s, ring.Rad, ring.AngStart, ring.AngEnd)
		})
		return
	}
	for _, seg := range d.InnerSegments {
		d.addGlow(s, glow, func() {
			d.strokeArc(s, ring.Rad, seg.AngStart, seg.AngEnd)
		})
	}
}

// addGlow repeats draw with a line width that widens a little more on every
// layer, inside its own style scope.
func (d *Drop) addGlow(s Surface, glowDist float64, draw func()) {
	s.Save()
	defer s.Restore()
	if glowDist <= 0 {
		draw()
		return
	}
	layers := int(math.Ceil(glowDist))
	for i := 0; i < layers; i++ {
		k := float64(i) / glowDist
		s.SetLineWidth(s.LineWidth() + 1 + k*k)
		draw()
	}
}

func (d *Drop) strokeArc(s Surface, r, angStart, angEnd float64) {
	s.BeginPath()
	s.Arc(d.Pos.X, d.Pos.Y, r, angStart, angEnd, d.Ang)
	s.Stroke()
}
