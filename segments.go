package drops

import "math"

// HasInnerRing reports whether the drop is long and large enough to carry an
// inner ring.
func (d *Drop) HasInnerRing() bool {
	return d.InnerRing != nil ||
		(d.ArcLen() > math.Pi && d.RadFinal > d.env.Config.DropNode.RadWithInnerRing)
}

// HasOuterSegments reports whether the outer ring is broken into segments.
// Decided by luck.
func (d *Drop) HasOuterSegments() bool {
	return len(d.OuterSegments) > 0 || d.Luck <= d.env.Config.DropNode.OuterSegmentsChance
}

// HasInnerSegments reports whether the inner ring is broken into segments.
func (d *Drop) HasInnerSegments() bool {
	return d.InnerRing != nil &&
		(len(d.InnerSegments) > 0 || d.Luck <= d.env.Config.DropNode.InnerSegmentsChance)
}

// innerDeviation is how far the drop's radius is from the inner ring
// threshold; smaller drops get proportionally larger offsets.
func (d *Drop) innerDeviation() float64 {
	if d.RadFinal <= 0 {
		return 1
	}
	return math.Sqrt(d.env.Config.DropNode.RadWithInnerRing / d.RadFinal)
}

func (d *Drop) initInnerRing() {
	cfg := d.env.Config.DropNode
	dev := d.innerDeviation()
	r := d.env.Rand.Signed() * cfg.InnerBuffer
	dir := d.env.Geometry.AngDir()
	if !d.HasInnerRing() {
		return
	}
	d.InnerRing = &InnerRing{
		RadRatio:       cfg.InnerRad * dev,
		LineWidth:      math.Sqrt(d.LineWidth) * cfg.InnerLineWidth * dev,
		AngStart:       d.AngStart - dev + r*QuarterPi*dir,
		AngEnd:         d.AngEnd + dev + r*QuarterPi*dir,
		BridgeBend:     dev * d.env.Rand.Between(cfg.InnerBendMin, cfg.InnerBendMax),
		HasStartBridge: true,
		HasEndBridge:   true,
	}
}

// segmenter walks one ring laying out segments separated by short breaks.
type segmenter struct {
	d     *Drop
	outer bool
	dist  float64 // total ring length
	done  float64 // length consumed so far
	base  float64 // base segment length
	brk   float64 // break length
	cur   float64 // length of the candidate segment
	start float64
	dir   float64
	count int
	segs  []Segment
}

func (d *Drop) newSegmenter(outer bool, start, dist, max, brk float64) *segmenter {
	sg := &segmenter{
		d:     d,
		outer: outer,
		dist:  dist,
		start: start,
		dir:   d.env.Geometry.AngDir(),
		count: int(math.Ceil(d.env.Rand.Between(2, max))),
	}
	sg.base = dist / float64(sg.count)
	sg.brk = math.Sqrt(d.flux()) * brk * math.Max(d.LineWidth*d.LineWidth, 1)
	return sg
}

func (d *Drop) flux() float64 {
	cfg := d.env.Config.DropNode
	return d.env.Rand.Between(cfg.SegmentFluxMin, cfg.SegmentFluxMax)
}

// next rolls the next segment length and reports whether it still fits.
func (sg *segmenter) next() bool {
	if len(sg.segs) >= sg.count {
		return false
	}
	sg.cur = sg.d.flux()*sg.base - sg.brk
	if sg.outer {
		sg.cur = math.Max(sg.cur, HalfPi)
	}
	return sg.dist > sg.done+sg.cur+sg.brk
}

func (sg *segmenter) add() {
	t := sg.start + sg.done*sg.dir
	sg.done += sg.cur + sg.brk
	sg.segs = append(sg.segs, Segment{AngStart: t, AngEnd: t + sg.cur*sg.dir})
}

func (d *Drop) generateSegments() {
	cfg := d.env.Config.DropNode
	if d.HasOuterSegments() {
		sg := d.newSegmenter(true, d.AngStart, d.ArcLen(), cfg.OuterSegmentsMax, cfg.OuterSegmentBreak)
		for sg.next() {
			sg.add()
		}
		d.OuterSegments = sg.segs
	}
	if d.HasInnerSegments() {
		ring := d.InnerRing
		dist := math.Abs(ring.AngEnd - ring.AngStart)
		sg := d.newSegmenter(false, ring.AngStart, dist, cfg.InnerSegmentsMax, cfg.InnerSegmentBreak)
		for sg.next() {
			sg.add()
		}
		d.InnerSegments = sg.segs
		if math.Abs(dist-sg.done) > math.Pi/8 {
			ring.HasEndBridge = false
		}
	}
}
