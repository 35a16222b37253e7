package conway

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// dragDeadZonePixels is the movement needed before a held left button
// becomes a pan instead of a cell toggle.
const dragDeadZonePixels = 4.0

// keyboardZoomNotch is the wheel-equivalent applied per tick while a
// zoom key is held.
const keyboardZoomNotch = 0.1

// Input polls the mouse and keyboard once per tick and drives the view
// and updater directly. Host-level actions (saving, screenshots) fire
// through the On hooks; nil hooks are skipped.
//
//	wheel, +/-      zoom (wheel anchors at the cursor)
//	left drag       pan
//	left click      toggle cell
//	right drag      paint cells, erase while Shift is held
//	space           pause/resume
//	period          advance one generation
//	[ / ]           halve / double the stepping rate
//	C               clear the board
//	R               recenter
//	ctrl+S          save session
//	F1              screenshot
//	F3              toggle HUD
//	escape          quit
type Input struct {
	view    *View
	updater *Updater

	OnSave       func()
	OnScreenshot func()
	OnToggleHUD  func()
	OnRecenter   func()
	OnSpeed      func(factor float64)

	// Left button state
	leftDown       bool
	dragging       bool
	startX, startY int
	lastX, lastY   int

	// Right button paint state
	painting  bool
	erasing   bool
	lastPaint Point
}

func NewInput(view *View, updater *Updater) *Input {
	return &Input{view: view, updater: updater}
}

// Update processes one tick of input. It returns ebiten.Termination
// when the user asks to quit.
func (in *Input) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	in.handleKeys()
	in.handleZoom()
	in.handleLeftButton()
	in.handlePainting()
	return nil
}

func (in *Input) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		in.updater.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		in.updater.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeftBracket) && in.OnSpeed != nil {
		in.OnSpeed(0.5)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRightBracket) && in.OnSpeed != nil {
		in.OnSpeed(2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		in.updater.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && in.OnRecenter != nil {
		in.OnRecenter()
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyS) && in.OnSave != nil {
		in.OnSave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) && in.OnScreenshot != nil {
		in.OnScreenshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) && in.OnToggleHUD != nil {
		in.OnToggleHUD()
	}
}

func (in *Input) handleZoom() {
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		mx, my := ebiten.CursorPosition()
		in.view.ZoomBy(wheelY, float64(mx), float64(my))
	}

	// Keyboard zooming anchors at the screen center.
	kb := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyKPAdd) {
		kb += keyboardZoomNotch
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyKPSubtract) {
		kb -= keyboardZoomNotch
	}
	if kb != 0 {
		cx := float64(in.view.Viewport.Width) / 2
		cy := float64(in.view.Viewport.Height) / 2
		in.view.ZoomBy(kb, cx, cy)
	}
}

// handleLeftButton runs the press/drag/release machine: a press that
// never leaves the dead zone toggles the cell under the cursor, anything
// further pans the view.
func (in *Input) handleLeftButton() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !in.leftDown:
		in.leftDown = true
		in.dragging = false
		in.startX, in.startY = mx, my
		in.lastX, in.lastY = mx, my

	case pressed && in.leftDown:
		if !in.dragging {
			dx := float64(mx - in.startX)
			dy := float64(my - in.startY)
			if math.Sqrt(dx*dx+dy*dy) > dragDeadZonePixels {
				in.dragging = true
			}
		}
		if in.dragging && (mx != in.lastX || my != in.lastY) {
			in.view.Pan(float64(mx-in.lastX), float64(my-in.lastY))
		}
		in.lastX, in.lastY = mx, my

	case !pressed && in.leftDown:
		if !in.dragging {
			if cell, ok := in.view.CellAt(float64(mx), float64(my)); ok {
				in.updater.ToggleCell(cell)
			}
		}
		in.leftDown = false
		in.dragging = false
	}
}

// handlePainting paints while the right button is held. Shift at press
// time selects erase for the whole stroke.
func (in *Input) handlePainting() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		in.painting = false
		return
	}

	mx, my := ebiten.CursorPosition()
	cell, ok := in.view.CellAt(float64(mx), float64(my))
	if !ok {
		return
	}

	if !in.painting {
		in.painting = true
		in.erasing = ebiten.IsKeyPressed(ebiten.KeyShift)
		in.updater.SetCell(cell, !in.erasing)
	} else if cell != in.lastPaint {
		// Fill the gap when the cursor skipped cells between ticks.
		lineCells(in.lastPaint, cell, func(p Point) {
			in.updater.SetCell(p, !in.erasing)
		})
	}
	in.lastPaint = cell
}
