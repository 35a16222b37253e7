package conway

import (
	"errors"
	"fmt"
)

// Reference raster. A viewport of exactly RefPixelWidth x RefPixelHeight
// shows cells at their baseline size; the pixel-scale correction in
// ViewportScale is relative to these dimensions. In grid-normalized mode
// RefCellsWide x RefCellsHigh cells span one unit of clip space.
const (
	RefPixelWidth  = 600
	RefPixelHeight = 600
	RefCellsWide   = 20
	RefCellsHigh   = 20
)

// DefaultDepth is the z constant written by DefaultProjection.
const DefaultDepth = 0.5

// Projection failure modes. Both are precondition violations: hosts are
// expected to clamp the viewport to at least 1x1 and reject non-positive
// zoom at the input layer, before projecting.
var (
	// ErrViewportEmpty reports a viewport with a zero or negative dimension,
	// which would make the pixel-scale correction divide by zero.
	ErrViewportEmpty = errors.New("conway: viewport has no area")

	// ErrZoomNotPositive reports a zoom factor that is zero, negative, or
	// NaN, which would collapse or invert the homogeneous divide.
	ErrZoomNotPositive = errors.New("conway: zoom factor must be positive")
)

// Point2D is a position in grid-cell units. Fractional coordinates address
// positions within a cell: cell (cx, cy) spans [cx, cx+1) x [cy, cy+1).
type Point2D struct {
	X, Y float64
}

// ViewportSize is the pixel size of the rendering surface.
type ViewportSize struct {
	Width, Height int
}

// Vec4 is a homogeneous clip-space coordinate. Rasterization divides by W
// to reach normalized device coordinates.
type Vec4 struct {
	X, Y, Z, W float64
}

// NDC performs the homogeneous divide. Project never returns a Vec4 with
// W <= 0, so the divide is safe on its results.
func (v Vec4) NDC() (x, y, z float64) {
	return v.X / v.W, v.Y / v.W, v.Z / v.W
}

// ProjectionMode selects how grid coordinates reach clip space.
type ProjectionMode int

const (
	// ModeGridNormalized divides the point by the reference cell counts
	// before pixel-scale correction, so RefCellsWide cells span one clip
	// unit at the reference viewport.
	ModeGridNormalized ProjectionMode = iota

	// ModeRawScaled skips the normalization and scale-corrects the raw
	// coordinates, so one cell spans one clip unit at the reference
	// viewport.
	ModeRawScaled
)

func (m ProjectionMode) String() string {
	switch m {
	case ModeRawScaled:
		return "raw-scaled"
	default:
		return "grid-normalized"
	}
}

// ParseProjectionMode is the inverse of ProjectionMode.String.
func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch s {
	case "grid-normalized":
		return ModeGridNormalized, nil
	case "raw-scaled":
		return ModeRawScaled, nil
	}
	return 0, fmt.Errorf("conway: unknown projection mode %q", s)
}

// Projection maps points in grid-cell units into homogeneous clip space,
// correcting for viewport size and carrying zoom in the w component.
//
// For a point (x, y), viewport (W, H) and zoom z:
//
//	scaleX = RefPixelWidth / W        scaleY = RefPixelHeight / H
//	x' = x / RefCellsWide * scaleX    (ModeGridNormalized)
//	x' = x * scaleX                   (ModeRawScaled)
//	out = (x', y', Depth, z)
//
// The divide by w downstream scales the on-screen position by 1/zoom, so
// larger zoom values show more of the grid. The pixel-scale correction
// keeps the apparent cell size constant across window resizes: cells never
// stretch, a bigger viewport simply exposes more of them.
//
// The zero value is grid-normalized with a z constant of 0. Projections are
// immutable values and safe for concurrent use.
type Projection struct {
	// Mode selects grid-normalized or raw-scaled coordinates.
	Mode ProjectionMode

	// Depth is the constant written to the z component.
	Depth float64
}

// DefaultProjection returns the projection used by the shipped renderer:
// grid-normalized coordinates with z = DefaultDepth.
func DefaultProjection() Projection {
	return Projection{Mode: ModeGridNormalized, Depth: DefaultDepth}
}

// ViewportScale returns the per-axis pixel-scale correction for vp: the
// ratio of the reference resolution to the actual resolution. Both factors
// are exactly 1 at the reference viewport.
func ViewportScale(vp ViewportSize) (sx, sy float64, err error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrViewportEmpty, vp.Width, vp.Height)
	}
	return RefPixelWidth / float64(vp.Width), RefPixelHeight / float64(vp.Height), nil
}

// Project transforms pt into homogeneous clip space for the given viewport
// and zoom. It fails with ErrViewportEmpty when vp has a zero or negative
// dimension and with ErrZoomNotPositive when zoom is not positive, instead
// of letting a degenerate divide leak NaN or Inf into the pipeline. The x
// and y outputs are independent of zoom; zoom only sets w.
func (p Projection) Project(pt Point2D, vp ViewportSize, zoom float64) (Vec4, error) {
	sx, sy, err := ViewportScale(vp)
	if err != nil {
		return Vec4{}, err
	}
	if !(zoom > 0) { // also rejects NaN
		return Vec4{}, fmt.Errorf("%w: %g", ErrZoomNotPositive, zoom)
	}

	x, y := pt.X, pt.Y
	if p.Mode == ModeGridNormalized {
		x /= RefCellsWide
		y /= RefCellsHigh
	}
	return Vec4{X: x * sx, Y: y * sy, Z: p.Depth, W: zoom}, nil
}

// Unproject maps a normalized-device-coordinate position back to grid-cell
// units, inverting Project composed with the homogeneous divide. It shares
// Project's failure modes.
func (p Projection) Unproject(nx, ny float64, vp ViewportSize, zoom float64) (Point2D, error) {
	sx, sy, err := ViewportScale(vp)
	if err != nil {
		return Point2D{}, err
	}
	if !(zoom > 0) {
		return Point2D{}, fmt.Errorf("%w: %g", ErrZoomNotPositive, zoom)
	}

	x := nx * zoom / sx
	y := ny * zoom / sy
	if p.Mode == ModeGridNormalized {
		x *= RefCellsWide
		y *= RefCellsHigh
	}
	return Point2D{X: x, Y: y}, nil
}

// CellSizePixels returns the on-screen edge length of one grid cell, in
// pixels, at the given zoom. The pixel-scale correction cancels the
// viewport out of this quantity, so it depends on zoom alone; with the
// default projection it is RefPixelWidth / (2 * RefCellsWide * zoom).
func (p Projection) CellSizePixels(zoom float64) (float64, error) {
	if !(zoom > 0) {
		return 0, fmt.Errorf("%w: %g", ErrZoomNotPositive, zoom)
	}
	if p.Mode == ModeGridNormalized {
		return RefPixelWidth / (2 * RefCellsWide * zoom), nil
	}
	return RefPixelWidth / (2 * zoom), nil
}

// --- Screen mapping ---

// NDCToScreen maps a normalized-device-coordinate position to pixel
// coordinates with the origin at the top-left corner. Screen y grows
// downward while NDC y grows upward, so the y axis flips.
func NDCToScreen(nx, ny float64, vp ViewportSize) (x, y float64) {
	return (nx + 1) / 2 * float64(vp.Width), (1 - ny) / 2 * float64(vp.Height)
}

// ScreenToNDC inverts NDCToScreen. It fails with ErrViewportEmpty when vp
// has a zero or negative dimension.
func ScreenToNDC(x, y float64, vp ViewportSize) (nx, ny float64, err error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrViewportEmpty, vp.Width, vp.Height)
	}
	return 2*x/float64(vp.Width) - 1, 1 - 2*y/float64(vp.Height), nil
}
