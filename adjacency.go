package drops

// DefaultNeighborBuffer is how far a drop's radius is inflated when looking
// for neighbors.
const DefaultNeighborBuffer = 5.0

// Index is the drop collection in insertion order plus a lookup by ID. It
// answers neighbor queries and memoizes the result on each drop.
type Index struct {
	drops  []*Drop
	byID   map[uint32]*Drop
	buffer float64
}

// NewIndex creates an index over drops using the given inflate buffer.
func NewIndex(drops []*Drop, buffer float64) *Index {
	idx := &Index{
		byID:   make(map[uint32]*Drop, len(drops)),
		buffer: buffer,
	}
	for _, d := range drops {
		idx.Add(d)
	}
	return idx
}

// Add appends d. Drops already present are ignored.
func (idx *Index) Add(d *Drop) {
	if _, ok := idx.byID[d.ID]; ok {
		return
	}
	idx.drops = append(idx.drops, d)
	idx.byID[d.ID] = d
}

// Drops returns the collection in insertion order. The returned slice MUST
// NOT be mutated.
func (idx *Index) Drops() []*Drop {
	return idx.drops
}

// Len returns the number of drops.
func (idx *Index) Len() int {
	return len(idx.drops)
}

// Lookup returns the drop with the given ID, or nil.
func (idx *Index) Lookup(id uint32) *Drop {
	return idx.byID[id]
}

// NeighborIDs returns the IDs of every other drop whose circle intersects
// d's circle inflated by the buffer, in collection order. The result is
// cached on d and reused until force is set. A drop outside the collection
// has no neighbors.
func (idx *Index) NeighborIDs(d *Drop, force bool) []uint32 {
	if d == nil || idx.byID[d.ID] != d {
		return nil
	}
	if d.neighborsCached && !force {
		return d.neighbors
	}
	probe := d.Bounds().Inflate(idx.buffer)
	ids := make([]uint32, 0, 8)
	for _, o := range idx.drops {
		if o.ID == d.ID {
			continue
		}
		if probe.Intersects(o.Bounds()) {
			ids = append(ids, o.ID)
		}
	}
	d.neighbors = ids
	d.neighborsCached = true
	return ids
}

// Neighbors is NeighborIDs resolved to drops.
func (idx *Index) Neighbors(d *Drop, force bool) []*Drop {
	ids := idx.NeighborIDs(d, force)
	out := make([]*Drop, 0, len(ids))
	for _, id := range ids {
		if n := idx.byID[id]; n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Invalidate drops every cached neighbor list. The packer calls this after
// moving drops.
func (idx *Index) Invalidate() {
	for _, d := range idx.drops {
		d.neighbors = nil
		d.neighborsCached = false
	}
}
