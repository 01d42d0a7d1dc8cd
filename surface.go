package drops

import "time"

// Surface is the immediate-mode drawing target a drop strokes itself onto.
// Save and Restore push and pop the style state (line width and stroke
// color); every Save must be paired with a Restore on all return paths.
type Surface interface {
	Save()
	Restore()
	SetLineWidth(w float64)
	LineWidth() float64
	SetStrokeColor(c Color)
	StrokeColor() Color
	// BeginPath discards any path that was not stroked.
	BeginPath()
	// Arc appends a circular arc centered on (cx, cy). Angles are in radians
	// and are offset by rotation. angEnd may be smaller than angStart when the
	// canvas angular direction is negative.
	Arc(cx, cy, r, angStart, angEnd, rotation float64)
	Stroke()
	// Clear fills the whole surface with c.
	Clear(c Color)
}

// Geometry answers size queries about the canvas.
type Geometry interface {
	Width() float64
	Height() float64
	Center() Vec2
	// AngDir is +1 when arcs run clockwise and -1 otherwise.
	AngDir() float64
}

// Canvas is a drawable surface with known geometry.
type Canvas interface {
	Surface
	Geometry
}

// Handle identifies a scheduled animation slot. The zero Handle is never
// issued.
type Handle uint32

// StepFunc receives the time elapsed since the animation (re)started. The
// final invocation of a non-looping animation has complete set and elapsed
// equal to the full duration.
type StepFunc func(elapsed time.Duration, complete bool)

// AnimateOptions tune how a slot is scheduled.
type AnimateOptions struct {
	// Loop wraps elapsed back to zero at each duration boundary instead of
	// completing. A looping slot only ends when paused.
	Loop bool
}

// Animator schedules repeated step callbacks. Passing an existing handle to
// Animate restarts that slot with the new callback and duration.
type Animator interface {
	Animate(opts AnimateOptions, step StepFunc, duration time.Duration, h Handle) Handle
	PauseAnimation(h Handle)
}

// Style is the mutable stroke state scoped by Save and Restore.
type Style struct {
	LineWidth float64
	Stroke    Color
}

// DefaultStyle is the style a fresh surface starts with.
var DefaultStyle = Style{LineWidth: 1, Stroke: ColorTheme}

// StyleStack implements the Save/Restore half of Surface for concrete
// canvases. Restore without a matching Save is ignored.
type StyleStack struct {
	Current Style
	saved   []Style
}

// NewStyleStack returns a stack whose current style is s.
func NewStyleStack(s Style) StyleStack {
	return StyleStack{Current: s}
}

// Save pushes the current style.
func (st *StyleStack) Save() {
	st.saved = append(st.saved, st.Current)
}

// Restore pops the last saved style into Current.
func (st *StyleStack) Restore() {
	if len(st.saved) == 0 {
		return
	}
	st.Current = st.saved[len(st.saved)-1]
	st.saved = st.saved[:len(st.saved)-1]
}

// Depth returns the number of unmatched Save calls.
func (st *StyleStack) Depth() int {
	return len(st.saved)
}
