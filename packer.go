package drops

import "math"

// goldenAngle spreads push directions for drops that share a center.
const goldenAngle = math.Pi * (3 - 2.23606797749979)

// PackerOptions tune a Packer. Zero values use the defaults from
// DefaultConfig.
type PackerOptions struct {
	// Attraction is the fraction of the distance to the attractor covered
	// per pass.
	Attraction float64
	// RelaxIterations caps the overlap sweeps within one pass.
	RelaxIterations int
	// Bounds, when set, keeps every drop inside the canvas.
	Bounds Geometry
}

// Packer separates overlapping drops while pulling them toward an attractor.
// Each Run performs exactly one pass; after the configured number of passes
// it emits Settled once and every later Run is a no-op.
type Packer struct {
	// DrawingSocket fires after every pass with the pass number (1-based).
	DrawingSocket Signal[int]
	// Settled fires exactly once, with the number of passes run.
	Settled Signal[int]

	drops      []*Drop
	attractor  Vec2
	passes     int
	pass       int
	settled    bool
	attraction float64
	relax      int
	bounds     Geometry
}

// NewPacker creates a packer over drops. The slice is shared: positions are
// updated in place. A negative pass count is treated as zero.
func NewPacker(drops []*Drop, attractor Vec2, passes int, opts PackerOptions) *Packer {
	def := DefaultConfig().CirclePacker
	if passes < 0 {
		passes = 0
	}
	if opts.Attraction <= 0 {
		opts.Attraction = def.Attraction
	}
	if opts.RelaxIterations <= 0 {
		opts.RelaxIterations = def.RelaxIterations
	}
	return &Packer{
		drops:      drops,
		attractor:  attractor,
		passes:     passes,
		attraction: opts.Attraction,
		relax:      opts.RelaxIterations,
		bounds:     opts.Bounds,
	}
}

// Attractor returns the point drops are pulled toward.
func (p *Packer) Attractor() Vec2 {
	return p.attractor
}

// Pass returns the number of passes run so far.
func (p *Packer) Pass() int {
	return p.pass
}

// Passes returns the total pass budget.
func (p *Packer) Passes() int {
	return p.passes
}

// IsSettled reports whether the pass budget is exhausted.
func (p *Packer) IsSettled() bool {
	return p.settled
}

// Run performs one pass and reports whether it did any work.
func (p *Packer) Run() bool {
	if p.settled {
		return false
	}
	if p.pass >= p.passes {
		p.settle()
		return false
	}
	p.step()
	p.pass++
	p.DrawingSocket.Emit(p.pass)
	if p.pass >= p.passes {
		p.settle()
	}
	return true
}

func (p *Packer) settle() {
	p.settled = true
	Logger().Info("circle packer settled", "passes", p.pass, "max_overlap", p.MaxOverlap())
	p.Settled.Emit(p.pass)
}

// step pulls every drop toward the attractor and then sweeps the pairs,
// pushing each overlapping pair apart by half the overlap each, until a
// sweep moves nothing or the relax budget runs out.
func (p *Packer) step() {
	for _, d := range p.drops {
		d.Pos = d.Pos.Add(p.attractor.Sub(d.Pos).Scale(p.attraction))
	}
	for it := 0; it < p.relax; it++ {
		moved := false
		for i := 0; i < len(p.drops); i++ {
			for j := i + 1; j < len(p.drops); j++ {
				if p.separate(i, j) {
					moved = true
				}
			}
		}
		p.clamp()
		if !moved {
			break
		}
	}
}

// separate pushes drops i and j apart when they overlap.
func (p *Packer) separate(i, j int) bool {
	a, b := p.drops[i], p.drops[j]
	overlap := a.Bounds().Overlap(b.Bounds())
	if overlap <= 0 {
		return false
	}
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Len()
	var dir Vec2
	if dist < 1e-9 {
		theta := float64(i+j+1) * goldenAngle
		dir = Vec2{math.Cos(theta), math.Sin(theta)}
	} else {
		dir = delta.Scale(1 / dist)
	}
	push := dir.Scale(overlap / 2)
	a.Pos = a.Pos.Sub(push)
	b.Pos = b.Pos.Add(push)
	return true
}

func (p *Packer) clamp() {
	if p.bounds == nil {
		return
	}
	for _, d := range p.drops {
		d.StayInBounds(p.bounds)
	}
}

// MaxOverlap returns the deepest pairwise penetration among the drops.
func (p *Packer) MaxOverlap() float64 {
	worst := 0.0
	for i := 0; i < len(p.drops); i++ {
		for j := i + 1; j < len(p.drops); j++ {
			worst = math.Max(worst, p.drops[i].Bounds().Overlap(p.drops[j].Bounds()))
		}
	}
	return worst
}
