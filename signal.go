package drops

// Listener is a handle returned by Signal.Add and Signal.Once, used to
// remove the callback later. The zero value removes nothing.
type Listener struct {
	id uint32
}

type listenerEntry[T any] struct {
	id   uint32
	fn   func(T)
	once bool
}

// Signal is a typed, synchronous notification list. Emit delivers to every
// listener registered at the time of the call, in registration order, before
// returning. Listeners may add or remove listeners (including themselves)
// while being notified; additions take effect from the next Emit.
type Signal[T any] struct {
	entries []listenerEntry[T]
	nextID  uint32
}

// Add registers fn and returns a handle for Remove.
func (s *Signal[T]) Add(fn func(T)) Listener {
	return s.add(fn, false)
}

// Once registers fn to be called on the next Emit only.
func (s *Signal[T]) Once(fn func(T)) Listener {
	return s.add(fn, true)
}

func (s *Signal[T]) add(fn func(T), once bool) Listener {
	s.nextID++
	s.entries = append(s.entries, listenerEntry[T]{id: s.nextID, fn: fn, once: once})
	return Listener{id: s.nextID}
}

// Remove unregisters the listener. Removing an unknown or already removed
// handle is a no-op. Returns whether a listener was removed.
func (s *Signal[T]) Remove(l Listener) bool {
	if l.id == 0 {
		return false
	}
	for i, e := range s.entries {
		if e.id == l.id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered listeners.
func (s *Signal[T]) Len() int {
	return len(s.entries)
}

// Emit notifies all listeners with v.
func (s *Signal[T]) Emit(v T) {
	if len(s.entries) == 0 {
		return
	}
	snapshot := make([]listenerEntry[T], len(s.entries))
	copy(snapshot, s.entries)
	for _, e := range snapshot {
		if e.once {
			// Dropped before the call so a re-entrant Emit cannot fire it twice.
			if !s.Remove(Listener{id: e.id}) {
				continue
			}
		} else if !s.has(e.id) {
			continue
		}
		e.fn(v)
	}
}

func (s *Signal[T]) has(id uint32) bool {
	for _, e := range s.entries {
		if e.id == id {
			return true
		}
	}
	return false
}
