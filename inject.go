package drops

// pointerEvent is a single injected pointer event in canvas coordinates.
type pointerEvent struct {
	x, y  float64
	click bool
}

// InjectMove queues a pointer move at the given canvas coordinates. The
// event is consumed on the next Update, exactly like a real move.
func (m *Manager) InjectMove(x, y float64) {
	m.injectQueue = append(m.injectQueue, pointerEvent{x: x, y: y})
}

// InjectClick queues a click at the given canvas coordinates.
func (m *Manager) InjectClick(x, y float64) {
	m.injectQueue = append(m.injectQueue, pointerEvent{x: x, y: y, click: true})
}

// InjectSweep queues moves linearly interpolated from (fromX, fromY) to
// (toX, toY), one per frame. Minimum frames is 2.
func (m *Manager) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		m.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Pending returns the number of injected events not yet consumed.
func (m *Manager) Pending() int {
	return len(m.injectQueue)
}

// processInjected pops one event from the inject queue and dispatches it.
// Hosts with real pointer input check Pending before Update and skip their
// own input while events are queued.
func (m *Manager) processInjected() {
	if len(m.injectQueue) == 0 {
		return
	}
	evt := m.injectQueue[0]
	copy(m.injectQueue, m.injectQueue[1:])
	m.injectQueue = m.injectQueue[:len(m.injectQueue)-1]

	if evt.click {
		m.PointerClick(evt.x, evt.y)
	} else {
		m.PointerMove(evt.x, evt.y)
	}
}
