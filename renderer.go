package conway

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxQuadsPerDraw is the maximum number of cell quads per DrawTriangles
// call. Limited by uint16 index buffer: 65535 / 4 vertices per quad = 16383.
const maxQuadsPerDraw = 16383

// --- White pixel singleton (no sync.Once, drawing stays on the game loop) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Cell quads are this image tinted by the theme color.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Renderer rasterizes world snapshots through a View: one solid quad per
// live cell inside the visible region, batched into as few DrawTriangles
// calls as the uint16 index space allows.
type Renderer struct {
	view  *View
	theme ThemeConfig

	// Geometry buffers, reused across frames. They grow to the largest
	// frame seen and never shrink.
	vertices  []ebiten.Vertex
	indices   []uint16
	quadCount int
}

func NewRenderer(view *View, theme ThemeConfig) *Renderer {
	return &Renderer{view: view, theme: theme}
}

// premultiply converts an 8-bit color to premultiplied vertex channels.
func premultiply(c ColorConfig) (r, g, b, a float32) {
	a = float32(c.A) / 255
	r = float32(c.R) / 255 * a
	g = float32(c.G) / 255 * a
	b = float32(c.B) / 255 * a
	return r, g, b, a
}

// ensureBuffer grows the geometry buffers to hold quads cells.
func (r *Renderer) ensureBuffer(quads int) {
	if quads*4 <= len(r.vertices) {
		return
	}
	r.vertices = make([]ebiten.Vertex, quads*4)

	// Index topology never changes, and each chunk passes its vertices
	// with a fresh base, so one chunk's worth of indices is enough.
	n := quads
	if n > maxQuadsPerDraw {
		n = maxQuadsPerDraw
	}
	if n*6 <= len(r.indices) {
		return
	}
	r.indices = make([]uint16, n*6)
	for i := 0; i < n; i++ {
		base := uint16(i * 4)
		off := i * 6
		r.indices[off+0] = base + 0
		r.indices[off+1] = base + 1
		r.indices[off+2] = base + 2
		r.indices[off+3] = base + 1
		r.indices[off+4] = base + 3
		r.indices[off+5] = base + 2
	}
}

// rebuild fills the vertex buffer with one quad per live cell inside the
// visible region and returns the quad count. Grid y grows upward while
// screen y grows downward, so a cell's top edge is its y+1 grid line.
func (r *Renderer) rebuild(w *World) int {
	r.quadCount = 0
	if w == nil {
		return 0
	}
	region, ok := r.view.VisibleRegion()
	if !ok {
		return 0
	}
	size := r.view.CellSizePixels()
	if size <= 0 {
		return 0
	}
	ox, oy, ok := r.view.CellToScreen(Point2D{})
	if !ok {
		return 0
	}

	r.ensureBuffer(w.Population())
	cr, cg, cb, ca := premultiply(r.theme.Cell)

	count := 0
	w.ForEachIn(region, func(p Point) {
		x0 := float32(ox + float64(p.X)*size)
		y0 := float32(oy - float64(p.Y+1)*size)
		x1 := float32(ox + float64(p.X+1)*size)
		y1 := float32(oy - float64(p.Y)*size)

		vi := count * 4
		// Vertex 0 = top-left, 1 = top-right, 2 = bottom-left, 3 = bottom-right.
		r.vertices[vi+0] = ebiten.Vertex{DstX: x0, DstY: y0, SrcX: 0.5, SrcY: 0.5, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca}
		r.vertices[vi+1] = ebiten.Vertex{DstX: x1, DstY: y0, SrcX: 0.5, SrcY: 0.5, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca}
		r.vertices[vi+2] = ebiten.Vertex{DstX: x0, DstY: y1, SrcX: 0.5, SrcY: 0.5, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca}
		r.vertices[vi+3] = ebiten.Vertex{DstX: x1, DstY: y1, SrcX: 0.5, SrcY: 0.5, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca}
		count++
	})
	r.quadCount = count
	return count
}

// Draw clears the screen to the background color and draws the world,
// splitting at maxQuadsPerDraw boundaries.
func (r *Renderer) Draw(screen *ebiten.Image, w *World) {
	screen.Fill(r.theme.Background.RGBA())

	total := r.rebuild(w)
	if total == 0 {
		return
	}

	src := ensureWhitePixel()
	var triOp ebiten.DrawTrianglesOptions
	for offset := 0; offset < total; offset += maxQuadsPerDraw {
		end := offset + maxQuadsPerDraw
		if end > total {
			end = total
		}
		batch := end - offset
		screen.DrawTriangles(r.vertices[offset*4:end*4], r.indices[:batch*6], src, &triOp)
	}
}
