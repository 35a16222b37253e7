package conway

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// minCellPixelsForGrid is the smallest on-screen cell size at which grid
// lines stay legible. Below this the overlay draws nothing.
const minCellPixelsForGrid = 4.0

// The overlay runs as a fullscreen Kage pass: a pixel within one line
// width of a cell boundary takes the line color, everything else stays
// transparent. Ebitengine blends premultiplied alpha, so LineColor
// arrives premultiplied.
const gridShaderSrc = `//kage:unit pixels
package main

var CellSize float
var Origin vec2
var LineColor vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	d := mod(dst.xy-Origin, CellSize)
	if d.x < 1 || d.y < 1 {
		return LineColor
	}
	return vec4(0)
}
`

// --- Lazy shader compilation (no sync.Once, drawing stays on the game loop) ---

var gridShader *ebiten.Shader

func ensureGridShader() *ebiten.Shader {
	if gridShader == nil {
		s, err := ebiten.NewShader([]byte(gridShaderSrc))
		if err != nil {
			panic("conway: failed to compile grid shader: " + err.Error())
		}
		gridShader = s
	}
	return gridShader
}

// originOffset reduces a screen coordinate of the grid origin to its
// remainder within one cell. Passing the raw coordinate would lose its
// fractional part to float32 after a long pan; the remainder stays small.
func originOffset(coord, size float64) float64 {
	m := math.Mod(coord, size)
	if m < 0 {
		m += size
	}
	return m
}

// GridOverlay draws cell boundary lines over the rendered world.
type GridOverlay struct {
	view *View
	line ColorConfig

	uniforms    map[string]any
	originF32   [2]float32 // persistent buffer to avoid per-frame slice escape
	originSlice []float32  // persistent slice header pointing into originF32
	colorF32    [4]float32
	colorSlice  []float32
	shaderOp    ebiten.DrawRectShaderOptions
}

func NewGridOverlay(view *View, line ColorConfig) *GridOverlay {
	o := &GridOverlay{
		view:     view,
		line:     line,
		uniforms: make(map[string]any, 3),
	}
	o.originSlice = o.originF32[:]
	o.uniforms["Origin"] = o.originSlice
	o.colorSlice = o.colorF32[:]
	o.uniforms["LineColor"] = o.colorSlice
	return o
}

// Draw overlays grid lines when cells are big enough to separate.
func (o *GridOverlay) Draw(screen *ebiten.Image) {
	size := o.view.CellSizePixels()
	if size < minCellPixelsForGrid {
		return
	}
	ox, oy, ok := o.view.CellToScreen(Point2D{})
	if !ok {
		return
	}

	o.originF32[0] = float32(originOffset(ox, size))
	o.originF32[1] = float32(originOffset(oy, size))
	cr, cg, cb, ca := premultiply(o.line)
	o.colorF32[0] = cr
	o.colorF32[1] = cg
	o.colorF32[2] = cb
	o.colorF32[3] = ca

	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	o.uniforms["CellSize"] = float32(size)

	bounds := screen.Bounds()
	o.shaderOp.Uniforms = o.uniforms
	screen.DrawRectShader(bounds.Dx(), bounds.Dy(), ensureGridShader(), &o.shaderOp)
}
