package drops

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script sequences injected pointer events, pulse commands, and snapshots
// across frames. Attach to a Manager via SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses an input script. YAML and JSON are both accepted.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "move", "sweep", "click", "ripple", "uniform", "stop", "wait", "snapshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches a script. Its steps run from Manager.Update, one per
// frame, before injected input is processed.
func (m *Manager) SetScript(s *Script) {
	m.script = s
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Done reports whether every step has executed and its input drained.
func (s *Script) Done() bool {
	return s.done
}

func (s *Script) step(m *Manager) {
	if s.done {
		return
	}
	if len(m.injectQueue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "move":
		m.InjectMove(st.X, st.Y)
	case "sweep":
		m.InjectSweep(st.X, st.Y, st.ToX, st.ToY, st.Frames)
	case "click":
		m.InjectClick(st.X, st.Y)
	case "ripple":
		m.StartPulse(PulseSequential)
	case "uniform":
		m.StartPulse(PulseUniform)
	case "stop":
		m.StopPulse()
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1
		}
	case "snapshot":
		m.SnapshotRequested.Emit(st.Label)
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(m.injectQueue) == 0 {
		s.done = true
	}
}
