package canvas

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/phanxgames/drops"
)

// Image is a drops.Canvas backed by a gg raster context. It needs neither a
// window nor a GPU, so it serves headless renders and tests.
type Image struct {
	drops.StyleStack

	ctx     *gg.Context
	angDir  float64
	strokes int
	err     error
}

var _ drops.Canvas = (*Image)(nil)

// NewImage creates a width x height raster canvas. angDir is normalized to
// +1 or -1.
func NewImage(width, height int, angDir float64) *Image {
	ctx := gg.NewContext(width, height)
	ctx.SetLineCap(gg.LineCapRound)
	return &Image{
		StyleStack: drops.NewStyleStack(drops.DefaultStyle),
		ctx:        ctx,
		angDir:     normDir(angDir),
	}
}

// NewImageFor creates a raster canvas sized by the canvas section of cfg.
func NewImageFor(cfg drops.Config) *Image {
	return NewImage(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.AngDir)
}

func (c *Image) Width() float64  { return float64(c.ctx.Width()) }
func (c *Image) Height() float64 { return float64(c.ctx.Height()) }
func (c *Image) AngDir() float64 { return c.angDir }
func (c *Image) Center() drops.Vec2 {
	return drops.Vec2{X: c.Width() / 2, Y: c.Height() / 2}
}

func (c *Image) SetLineWidth(w float64)         { c.Current.LineWidth = w }
func (c *Image) LineWidth() float64             { return c.Current.LineWidth }
func (c *Image) SetStrokeColor(col drops.Color) { c.Current.Stroke = col }
func (c *Image) StrokeColor() drops.Color       { return c.Current.Stroke }

// BeginPath discards any path that was not stroked.
func (c *Image) BeginPath() {
	c.ctx.ClearPath()
}

// Arc appends an arc to the current path. gg only draws increasing angles,
// so a reversed range is swapped; the stroked pixels are the same.
func (c *Image) Arc(cx, cy, r, angStart, angEnd, rotation float64) {
	if r <= 0 {
		return
	}
	a0, a1 := normArc(angStart+rotation, angEnd+rotation)
	c.ctx.DrawArc(cx, cy, r, a0, a1)
}

// Stroke strokes the current path with the current style. The first
// rasterizer error is kept and reported by Err.
func (c *Image) Stroke() {
	col := c.Current.Stroke
	c.ctx.SetRGBA(col.R, col.G, col.B, col.A)
	c.ctx.SetLineWidth(c.Current.LineWidth)
	if err := c.ctx.Stroke(); err != nil && c.err == nil {
		c.err = fmt.Errorf("stroke: %w", err)
		drops.Logger().Warn("canvas stroke failed", "err", err)
	}
	c.strokes++
}

// Clear fills the whole canvas with col and drops any pending path.
func (c *Image) Clear(col drops.Color) {
	c.ctx.ClearPath()
	c.ctx.ClearWithColor(gg.RGBA{R: col.R, G: col.G, B: col.B, A: col.A})
}

// Strokes returns the number of Stroke calls so far.
func (c *Image) Strokes() int {
	return c.strokes
}

// Err returns the first stroke error, if any.
func (c *Image) Err() error {
	return c.err
}

// Context exposes the underlying gg context.
func (c *Image) Context() *gg.Context {
	return c.ctx
}

// Image returns the rendered pixels.
func (c *Image) Image() image.Image {
	return c.ctx.Image()
}

// SavePNG writes the canvas to path.
func (c *Image) SavePNG(path string) error {
	if err := c.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Snapshot writes the canvas to a timestamped, labeled PNG in dir and
// returns its path.
func (c *Image) Snapshot(dir, label string) (string, error) {
	path, err := snapshotPath(dir, label)
	if err != nil {
		return "", err
	}
	return path, c.SavePNG(path)
}

// Close releases the gg context.
func (c *Image) Close() error {
	return c.ctx.Close()
}

func normDir(d float64) float64 {
	if d < 0 {
		return -1
	}
	return 1
}

// normArc orders an angle range so the start is not after the end.
func normArc(a0, a1 float64) (float64, float64) {
	if a1 < a0 {
		return a1, a0
	}
	return a0, a1
}
