package canvas

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/drops"
)

// Window runs a Manager in an ebiten window. It implements ebiten.Game.
type Window struct {
	// Title is shown in the window's title bar.
	Title string
	// SnapshotDir is where P-key and scripted snapshots are written.
	SnapshotDir string
	// ShowFPS prints FPS and TPS in the corner.
	ShowFPS bool

	cfg       drops.Config
	screen    *Screen
	sched     *drops.Scheduler
	manager   *drops.Manager
	snapshots []string
	reloads   chan drops.Config
	lastX     int
	lastY     int
}

// NewWindow populates a scene for cfg onto an offscreen image.
func NewWindow(cfg drops.Config) *Window {
	w := &Window{
		Title:       "Sakura Drops",
		SnapshotDir: "snapshots",
		reloads:     make(chan drops.Config, 1),
	}
	w.build(cfg)
	return w
}

// build replaces the scene with a fresh one for cfg.
func (w *Window) build(cfg drops.Config) {
	cfg.Normalize()
	if w.screen == nil || w.cfg.Canvas.Width != cfg.Canvas.Width || w.cfg.Canvas.Height != cfg.Canvas.Height {
		w.screen = NewScreen(ebiten.NewImage(cfg.Canvas.Width, cfg.Canvas.Height), cfg.Canvas.AngDir)
	} else {
		w.screen.angDir = normDir(cfg.Canvas.AngDir)
	}
	w.cfg = cfg
	w.sched = drops.NewScheduler()
	w.lastX, w.lastY = -1, -1
	w.manager = drops.NewManager(cfg, w.screen, w.sched)
	w.manager.SnapshotRequested.Add(w.Snapshot)
}

// Reload rebuilds the scene with cfg on the next Update. Safe to call from
// any goroutine; only the latest pending config is kept.
func (w *Window) Reload(cfg drops.Config) {
	for {
		select {
		case w.reloads <- cfg:
			return
		default:
		}
		select {
		case <-w.reloads:
		default:
		}
	}
}

// Manager returns the scene being run.
func (w *Window) Manager() *drops.Manager {
	return w.manager
}

// Snapshot queues a labeled capture of the next drawn frame.
func (w *Window) Snapshot(label string) {
	w.snapshots = append(w.snapshots, label)
}

// Update advances the animation clock by one tick, feeds real input unless
// injected input is pending, and runs the manager.
func (w *Window) Update() error {
	select {
	case cfg := <-w.reloads:
		w.build(cfg)
		ebiten.SetWindowSize(cfg.Canvas.Width, cfg.Canvas.Height)
		drops.Logger().Info("scene rebuilt", "num", cfg.Num)
	default:
	}
	w.sched.Update(time.Second / time.Duration(ebiten.TPS()))
	if w.manager.Pending() == 0 {
		w.processInput()
	}
	w.manager.Update()
	return nil
}

func (w *Window) processInput() {
	mx, my := ebiten.CursorPosition()
	if mx != w.lastX || my != w.lastY {
		w.lastX, w.lastY = mx, my
		w.manager.PointerMove(float64(mx), float64(my))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		w.manager.PointerClick(float64(mx), float64(my))
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		w.manager.StartPulse(drops.PulseSequential)
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		w.manager.StartPulse(drops.PulseUniform)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		w.manager.StopPulse()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		w.Snapshot("manual")
	}
}

// Draw copies the offscreen canvas to the screen and writes any queued
// snapshots.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.DrawImage(w.screen.Target(), nil)
	w.flushSnapshots()
	if w.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  TPS: %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS()), 4, 4)
	}
}

// Layout keeps the logical size fixed at the canvas size.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.cfg.Canvas.Width, w.cfg.Canvas.Height
}

func (w *Window) flushSnapshots() {
	if len(w.snapshots) == 0 {
		return
	}
	img := w.screen.Target()
	b := img.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	img.ReadPixels(pixels)
	out := unpremultiply(pixels, b.Dx(), b.Dy())

	for _, label := range w.snapshots {
		path, err := snapshotPath(w.SnapshotDir, label)
		if err == nil {
			err = writePNG(path, out)
		}
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[drops] snapshot: %v\n", err)
			continue
		}
		drops.Logger().Info("snapshot written", "path", path)
	}
	w.snapshots = w.snapshots[:0]
}

// Run opens a window for w and blocks until it is closed.
func Run(w *Window) error {
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.cfg.Canvas.Width, w.cfg.Canvas.Height)
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
