package drops

// DropAt returns the first drop, in creation order, containing p.
func (m *Manager) DropAt(p Vec2) *Drop {
	for _, d := range m.drops {
		if d.Contains(p) {
			return d
		}
	}
	return nil
}

// PointerMove wakes the drop under the pointer. Moves are ignored until the
// packer settles and, after a drop wakes, for MouseMoveTimeout on the
// animator clock. Reports whether a drop was woken.
func (m *Manager) PointerMove(x, y float64) bool {
	if !m.ready || m.throttled() {
		return false
	}
	d := m.DropAt(Vec2{x, y})
	if d == nil {
		return false
	}
	d.Wake()
	if m.clock != nil {
		m.throttleUntil = m.clock.Now() + m.cfg.MouseMoveTimeout
	}
	return true
}

// PointerClick starts a sequential ripple at the drop under the pointer.
// Clicking empty space stops a ripple in flight.
func (m *Manager) PointerClick(x, y float64) bool {
	if !m.ready {
		return false
	}
	d := m.DropAt(Vec2{x, y})
	if d == nil {
		m.ripple.Stop()
		return false
	}
	m.ripple.StartAt(d, PulseSequential)
	return true
}

func (m *Manager) throttled() bool {
	return m.clock != nil && m.clock.Now() < m.throttleUntil
}
