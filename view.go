package conway

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active recenter tweens for view X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// View is the user-facing camera over the grid. It composes a pan offset
// with the projection: points are shifted so (X, Y) lands at the center
// of the screen, then projected with the current zoom.
//
// The view clamps zoom to the configured limits and the host clamps the
// viewport, so the projection below never sees the inputs it rejects.
type View struct {
	// X and Y are the grid-space point at the center of the screen.
	X, Y float64

	// Viewport is the pixel size of the rendering surface, updated by
	// the host on resize.
	Viewport ViewportSize

	proj Projection
	cfg  ViewConfig

	zoom       float64
	zoomTarget float64
	zoomTween  *gween.Tween

	// Anchor for cursor-centered zooming: the cell under this screen
	// position holds still while the zoom tween runs.
	anchorX, anchorY float64
	anchored         bool

	scrollTween *scrollAnim
}

// NewView creates a view at the grid origin. Non-positive cfg fields fall
// back to the defaults, so a zero ViewConfig is usable.
func NewView(proj Projection, cfg ViewConfig) *View {
	def := DefaultConfig().View
	if cfg.Zoom <= 0 {
		cfg.Zoom = def.Zoom
	}
	if cfg.ZoomMin <= 0 {
		cfg.ZoomMin = def.ZoomMin
	}
	if cfg.ZoomMax <= 0 {
		cfg.ZoomMax = def.ZoomMax
	}
	if cfg.ZoomSpeed <= 0 {
		cfg.ZoomSpeed = def.ZoomSpeed
	}
	if cfg.TweenSeconds < 0 {
		cfg.TweenSeconds = def.TweenSeconds
	}

	v := &View{
		Viewport: ViewportSize{Width: RefPixelWidth, Height: RefPixelHeight},
		proj:     proj,
		cfg:      cfg,
	}
	v.zoom = v.clampZoom(cfg.Zoom)
	v.zoomTarget = v.zoom
	return v
}

// Projection returns the projection the view feeds.
func (v *View) Projection() Projection {
	return v.proj
}

// Zoom returns the current zoom factor, mid-tween values included.
func (v *View) Zoom() float64 {
	return v.zoom
}

func (v *View) clampZoom(z float64) float64 {
	return math.Max(v.cfg.ZoomMin, math.Min(v.cfg.ZoomMax, z))
}

// SetZoom snaps the zoom immediately, bypassing the tween.
func (v *View) SetZoom(z float64) {
	v.zoom = v.clampZoom(z)
	v.zoomTarget = v.zoom
	v.zoomTween = nil
	v.anchored = false
}

// ZoomBy applies wheel notches: positive notches zoom in (cells grow),
// each notch multiplying the zoom by 1+ZoomSpeed. The change eases in
// over TweenSeconds, holding the cell under (sx, sy) fixed on screen.
func (v *View) ZoomBy(notches, sx, sy float64) {
	if notches == 0 {
		return
	}
	// Larger zoom values show more of the grid, so zooming in divides.
	target := v.clampZoom(v.zoomTarget * math.Pow(1+v.cfg.ZoomSpeed, -notches))
	if target == v.zoomTarget && v.zoomTween == nil {
		return
	}
	v.zoomTarget = target
	v.anchorX, v.anchorY = sx, sy
	v.anchored = true
	if v.cfg.TweenSeconds <= 0 {
		v.applyZoom(target)
		v.zoomTween = nil
		v.anchored = false
		return
	}
	v.zoomTween = gween.New(float32(v.zoom), float32(target), float32(v.cfg.TweenSeconds), ease.OutQuad)
}

// applyZoom changes the zoom while keeping the anchored screen position
// over the same cell.
func (v *View) applyZoom(z float64) {
	if !v.anchored {
		v.zoom = z
		return
	}
	before, ok := v.ScreenToCell(v.anchorX, v.anchorY)
	v.zoom = z
	if !ok {
		return
	}
	after, ok := v.ScreenToCell(v.anchorX, v.anchorY)
	if !ok {
		return
	}
	v.X += before.X - after.X
	v.Y += before.Y - after.Y
}

// Pan shifts the view by a screen-pixel delta, as from a drag: the grid
// follows the cursor. Screen y grows downward while grid y grows upward,
// so the y delta flips sign.
func (v *View) Pan(dxPx, dyPx float64) {
	size := v.CellSizePixels()
	if size <= 0 {
		return
	}
	v.X -= dxPx / size
	v.Y += dyPx / size
	v.scrollTween = nil
}

// CenterOn eases the view center to a grid point over duration seconds.
// A duration of zero or less snaps immediately.
func (v *View) CenterOn(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		v.X, v.Y = x, y
		v.scrollTween = nil
		return
	}
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.Y), float32(y), duration, easeFn),
	}
}

// Update advances zoom and recenter tweens. Called once per tick.
func (v *View) Update(dt float32) {
	if v.zoomTween != nil {
		val, done := v.zoomTween.Update(dt)
		v.applyZoom(v.clampZoom(float64(val)))
		if done {
			v.zoomTween = nil
			v.anchored = false
		}
	}
	if v.scrollTween != nil {
		if !v.scrollTween.doneX {
			val, done := v.scrollTween.tweenX.Update(dt)
			v.X = float64(val)
			v.scrollTween.doneX = done
		}
		if !v.scrollTween.doneY {
			val, done := v.scrollTween.tweenY.Update(dt)
			v.Y = float64(val)
			v.scrollTween.doneY = done
		}
		if v.scrollTween.doneX && v.scrollTween.doneY {
			v.scrollTween = nil
		}
	}
}

// CellSizePixels returns the current on-screen cell edge in pixels.
func (v *View) CellSizePixels() float64 {
	size, err := v.proj.CellSizePixels(v.zoom)
	if err != nil {
		return 0
	}
	return size
}

// --- Coordinate conversion ---

// CellToScreen maps a grid-space point to pixels. ok is false when the
// viewport is degenerate.
func (v *View) CellToScreen(pt Point2D) (sx, sy float64, ok bool) {
	rel := Point2D{X: pt.X - v.X, Y: pt.Y - v.Y}
	vec, err := v.proj.Project(rel, v.Viewport, v.zoom)
	if err != nil {
		return 0, 0, false
	}
	nx, ny, _ := vec.NDC()
	sx, sy = NDCToScreen(nx, ny, v.Viewport)
	return sx, sy, true
}

// ScreenToCell maps a pixel position to grid-space.
func (v *View) ScreenToCell(sx, sy float64) (Point2D, bool) {
	nx, ny, err := ScreenToNDC(sx, sy, v.Viewport)
	if err != nil {
		return Point2D{}, false
	}
	q, err := v.proj.Unproject(nx, ny, v.Viewport, v.zoom)
	if err != nil {
		return Point2D{}, false
	}
	return Point2D{X: q.X + v.X, Y: q.Y + v.Y}, true
}

// CellAt returns the whole cell under a pixel position.
func (v *View) CellAt(sx, sy float64) (Point, bool) {
	pt, ok := v.ScreenToCell(sx, sy)
	if !ok {
		return Point{}, false
	}
	return Point{X: int(math.Floor(pt.X)), Y: int(math.Floor(pt.Y))}, true
}

// VisibleRegion returns the cells currently on screen, padded to whole
// cells, by unprojecting the four viewport corners.
func (v *View) VisibleRegion() (Region, bool) {
	w, h := float64(v.Viewport.Width), float64(v.Viewport.Height)
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		pt, ok := v.ScreenToCell(c[0], c[1])
		if !ok {
			return Region{}, false
		}
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return RegionOf(
		Point{X: int(math.Floor(minX)), Y: int(math.Floor(minY))},
		Point{X: int(math.Floor(maxX)), Y: int(math.Floor(maxY))},
	), true
}

// --- Session integration ---

// State captures the view for session persistence. An in-flight zoom
// tween saves its destination.
func (v *View) State() CameraState {
	return CameraState{X: v.X, Y: v.Y, Zoom: v.zoomTarget}
}

// Restore applies a saved camera. A non-positive zoom keeps the current
// one.
func (v *View) Restore(s CameraState) {
	v.X, v.Y = s.X, s.Y
	v.scrollTween = nil
	if s.Zoom > 0 {
		v.SetZoom(s.Zoom)
	}
}
