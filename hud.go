package conway

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const (
	// hudRefreshSeconds throttles HUD re-rasterization.
	hudRefreshSeconds = 0.5

	hudMargin    = 8
	hudPadding   = 4
	hudLineCount = 4
)

// LoadHUDFont loads a TrueType face for the HUD. An empty path or any
// load error falls back to the builtin bitmap face.
func LoadHUDFont(path string) font.Face {
	if path == "" {
		return basicfont.Face7x13
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("conway: hud font %s unreadable, using basic font: %v", path, err)
		return basicfont.Face7x13
	}
	f, err := opentype.Parse(data)
	if err != nil {
		log.Printf("conway: hud font %s: parse error, using basic font: %v", path, err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("conway: hud font %s: face error, using basic font: %v", path, err)
		return basicfont.Face7x13
	}
	return face
}

// formatHUD composes the status lines shown for a generation. Timing
// lines are appended at draw time.
func formatHUD(g Generation, zoom, cellPx, gensPerSec float64) string {
	pop := 0
	if g.World != nil {
		pop = g.World.Population()
	}
	status := "paused"
	if g.Running {
		status = "running"
	}
	return fmt.Sprintf("gen %d  pop %d\nzoom %.2f  cell %.1fpx\n%s  %s @ %g gen/s",
		g.Number, pop, zoom, cellPx, g.Rule.String(), status, gensPerSec)
}

// HUD is a status panel drawn in the top-left corner, redrawn at most
// twice a second onto its own image.
type HUD struct {
	Visible bool

	face       font.Face
	img        *ebiten.Image
	ascent     int
	lineHeight int

	elapsed float64
	dirty   bool

	op ebiten.DrawImageOptions
}

// NewHUD builds the panel image for face. Pass nil for the bitmap face.
func NewHUD(face font.Face) *HUD {
	if face == nil {
		face = basicfont.Face7x13
	}
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	lineHeight := ascent + m.Descent.Ceil() + 2

	// 280 wide fits the longest line ("zoom 100.00  cell 300.0px") with
	// room to spare at 14pt.
	img := ebiten.NewImage(280, hudLineCount*lineHeight+2*hudPadding)

	return &HUD{
		Visible:    true,
		face:       face,
		img:        img,
		ascent:     ascent,
		lineHeight: lineHeight,
		dirty:      true,
	}
}

// Update refreshes the panel text when the throttle interval has passed.
func (h *HUD) Update(dt float64, g Generation, zoom, cellPx, gensPerSec float64) {
	if !h.Visible {
		return
	}
	h.elapsed += dt
	if h.elapsed < hudRefreshSeconds && !h.dirty {
		return
	}
	h.elapsed = 0
	h.dirty = false

	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})

	body := formatHUD(g, zoom, cellPx, gensPerSec)
	body += fmt.Sprintf("\nFPS %.1f  TPS %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	for i, line := range strings.Split(body, "\n") {
		text.Draw(h.img, line, h.face, hudPadding, hudPadding+h.ascent+i*h.lineHeight, color.White)
	}
}

// Draw blits the panel. Toggling Visible costs nothing between frames.
func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.Visible {
		return
	}
	h.op.GeoM.Reset()
	h.op.GeoM.Translate(hudMargin, hudMargin)
	screen.DrawImage(h.img, &h.op)
}
