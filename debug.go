package drops

import (
	"fmt"
	"os"
	"time"
)

// debugLog prints redraw timing and animation counts to stderr.
func (m *Manager) debugLog(drawTime time.Duration) {
	running := 0
	for _, d := range m.drops {
		running += d.RunningCount()
	}
	pass, passes := 0, 0
	if m.packer != nil {
		pass, passes = m.packer.Pass(), m.packer.Passes()
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[drops] redraw #%d: %v | drops: %d | awake: %d | animations: %d | pack: %d/%d\n",
		m.redraws, drawTime, len(m.drops), m.AwakeCount(), running, pass, passes)
	if m.ripple.Active() {
		_, _ = fmt.Fprintf(os.Stderr, "[drops] ripple: %d affected\n", len(m.ripple.order))
	}
}
