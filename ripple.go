package drops

// Ripple carries a one-shot pulse outward across the adjacency relation. A
// drop is marked affected when the pulse is dispatched to it, so a drop that
// is mid-pulse can never be dispatched twice by the same ripple. When a
// drop's pulse completes, up to MaxNeighbors of its not yet affected
// neighbors are dispatched; neighbors past the cap are skipped and not
// retried from that drop.
type Ripple struct {
	// MaxNeighbors caps dispatches per completed drop.
	MaxNeighbors int
	// Affected fires each time a drop is added to the affected set.
	Affected Signal[*Drop]

	index    *Index
	rng      *Rand
	typ      PulseType
	active   bool
	affected map[uint32]bool
	order    []uint32
	pending  map[uint32]Listener
}

// NewRipple creates an idle ripple over index.
func NewRipple(index *Index, rng *Rand, maxNeighbors int) *Ripple {
	return &Ripple{
		MaxNeighbors: maxNeighbors,
		index:        index,
		rng:          rng,
	}
}

// Active reports whether a ripple is propagating.
func (r *Ripple) Active() bool {
	return r.active
}

// AffectedIDs returns the affected drop IDs in dispatch order.
func (r *Ripple) AffectedIDs() []uint32 {
	out := make([]uint32, len(r.order))
	copy(out, r.order)
	return out
}

// IsAffected reports whether the drop was reached by the current ripple.
func (r *Ripple) IsAffected(id uint32) bool {
	return r.affected[id]
}

// Start begins a ripple at a uniformly random drop. No-op on an empty
// collection.
func (r *Ripple) Start(typ PulseType) *Drop {
	n := r.index.Len()
	if n == 0 {
		return nil
	}
	start := r.index.Drops()[r.rng.IntN(n)]
	r.StartAt(start, typ)
	return start
}

// StartAt begins a ripple at start, replacing any ripple in flight.
func (r *Ripple) StartAt(start *Drop, typ PulseType) {
	if start == nil || r.index.Lookup(start.ID) != start {
		return
	}
	r.detach()
	r.typ = typ
	r.active = true
	r.affected = make(map[uint32]bool)
	r.order = r.order[:0]
	r.pending = make(map[uint32]Listener)
	Logger().Info("ripple started", "start", start.ID, "type", typ.String())
	r.affect(start)
}

// Stop force-stops the ripple's pulse on every awake drop and discards the
// ripple state.
func (r *Ripple) Stop() {
	if !r.active {
		return
	}
	typ := r.typ
	r.detach()
	r.active = false
	r.affected = nil
	r.order = r.order[:0]
	for _, d := range r.index.Drops() {
		if d.Awake() && d.PulseType() == typ {
			d.StopPulse(true)
		}
	}
	Logger().Info("ripple stopped")
}

// detach removes completion listeners still waiting on drops.
func (r *Ripple) detach() {
	for id, l := range r.pending {
		if d := r.index.Lookup(id); d != nil {
			d.RippleAffected.Remove(l)
		}
	}
	r.pending = nil
}

// affect marks d, listens once for its pulse completing, and starts the
// one-shot pulse.
func (r *Ripple) affect(d *Drop) {
	if r.affected[d.ID] {
		return
	}
	r.affected[d.ID] = true
	r.order = append(r.order, d.ID)
	r.Affected.Emit(d)
	Logger().Debug("ripple dispatch", "id", d.ID)

	r.pending[d.ID] = d.RippleAffected.Once(func(done *Drop) {
		delete(r.pending, done.ID)
		r.affectNeighbors(done)
	})
	// A drop already pulsing keeps its pulse; the ripple moves on when that
	// pulse ends on its own.
	d.StartPulse(PulseOptions{Type: r.typ, Repeat: 1})
}

// affectNeighbors dispatches to at most MaxNeighbors unaffected neighbors.
func (r *Ripple) affectNeighbors(d *Drop) {
	if !r.active {
		return
	}
	dispatched := 0
	for _, n := range r.index.Neighbors(d, false) {
		if dispatched >= r.MaxNeighbors {
			break
		}
		if r.affected[n.ID] {
			continue
		}
		r.affect(n)
		dispatched++
	}
}
