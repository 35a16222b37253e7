package conway

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// recenterSeconds is how long the camera glide back to the pattern takes.
const recenterSeconds = 0.4

// Stepping-rate clamps for the speed keys.
const (
	minGensPerSec = 0.5
	maxGensPerSec = 240
)

// Game is the ebiten host. Each tick it polls the updater for the newest
// generation, feeds input into the view and updater, and layers the cell
// pass, grid overlay, and HUD onto the screen.
type Game struct {
	cfg     Config
	view    *View
	updater *Updater
	input   *Input

	renderer *Renderer
	overlay  *GridOverlay
	hud      *HUD

	// latest is the newest generation received from the updater. Its
	// world is shared with the updater and never written here.
	latest Generation

	gensPerSec float64

	// SessionPath is where ctrl+S writes. Empty disables saving.
	SessionPath string

	screenshotRequested bool
}

// NewGame wires the interactive systems around an already-running
// updater.
func NewGame(cfg Config, view *View, updater *Updater) *Game {
	g := &Game{
		cfg:        cfg,
		view:       view,
		updater:    updater,
		renderer:   NewRenderer(view, cfg.Theme),
		overlay:    NewGridOverlay(view, cfg.Theme.GridLine),
		hud:        NewHUD(LoadHUDFont(cfg.FontPath)),
		gensPerSec: cfg.GensPerSec,
	}
	// NewUpdater publishes its seed synchronously, so the first poll
	// always lands.
	if gen, ok := updater.Poll(); ok {
		g.latest = gen
	}

	in := NewInput(view, updater)
	in.OnSave = g.saveSession
	in.OnScreenshot = func() { g.screenshotRequested = true }
	in.OnToggleHUD = func() { g.hud.Visible = !g.hud.Visible }
	in.OnRecenter = g.recenter
	in.OnSpeed = g.changeSpeed
	g.input = in
	return g
}

// Update advances one tick: newest generation first, so input and the
// HUD act on what this frame will draw.
func (g *Game) Update() error {
	if gen, ok := g.updater.Poll(); ok {
		g.latest = gen
	}
	if err := g.input.Update(); err != nil {
		return err
	}

	dt := float32(1.0 / float64(ebiten.TPS()))
	g.view.Update(dt)
	g.hud.Update(float64(dt), g.latest, g.view.Zoom(), g.view.CellSizePixels(), g.gensPerSec)
	return nil
}

// Draw renders the frame back to front.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.latest.World)
	g.overlay.Draw(screen)
	g.hud.Draw(screen)

	if g.screenshotRequested {
		g.screenshotRequested = false
		if path, err := captureScreenshot(screen); err != nil {
			log.Printf("conway: screenshot: %v", err)
		} else {
			log.Printf("conway: screenshot saved to %s", path)
		}
	}
}

// Layout feeds the window size to the view. A minimized window reports
// zero, and the projection needs at least one pixel per axis.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	g.view.Viewport = ViewportSize{Width: w, Height: h}
	return w, h
}

func (g *Game) saveSession() {
	if g.SessionPath == "" {
		return
	}
	s := Session{
		Camera:     g.view.State(),
		Running:    g.latest.Running,
		Generation: g.latest.Number,
		Rule:       g.latest.Rule.String(),
	}
	s.SetWorld(g.latest.World)
	if err := SaveSession(g.SessionPath, s); err != nil {
		log.Printf("%v", err)
		return
	}
	log.Printf("conway: session saved to %s", g.SessionPath)
}

func (g *Game) recenter() {
	r, ok := g.latest.World.Bounds()
	if !ok {
		g.view.CenterOn(0, 0, recenterSeconds, ease.OutQuad)
		return
	}
	c := r.Center()
	g.view.CenterOn(c.X, c.Y, recenterSeconds, ease.OutQuad)
}

func (g *Game) changeSpeed(factor float64) {
	rate := g.gensPerSec * factor
	if rate < minGensPerSec {
		rate = minGensPerSec
	}
	if rate > maxGensPerSec {
		rate = maxGensPerSec
	}
	g.gensPerSec = rate
	g.updater.SetRate(rate)
}
