package conway

import (
	"path/filepath"
	"testing"
)

func TestGameLayoutFeedsViewport(t *testing.T) {
	g := &Game{view: snapView()}

	w, h := g.Layout(800, 450)
	if w != 800 || h != 450 {
		t.Fatalf("Layout(800, 450) = %dx%d", w, h)
	}
	if g.view.Viewport != (ViewportSize{Width: 800, Height: 450}) {
		t.Fatalf("viewport = %+v", g.view.Viewport)
	}

	// Minimized windows report zero or negative sizes.
	w, h = g.Layout(0, -3)
	if w != 1 || h != 1 {
		t.Fatalf("Layout(0, -3) = %dx%d, want 1x1", w, h)
	}
	if g.view.Viewport != (ViewportSize{Width: 1, Height: 1}) {
		t.Fatalf("viewport after minimize = %+v", g.view.Viewport)
	}
}

func TestGameChangeSpeedClamps(t *testing.T) {
	u := startUpdater(t, nil, false)
	g := &Game{updater: u, gensPerSec: 10}

	g.changeSpeed(2)
	if g.gensPerSec != 20 {
		t.Fatalf("after doubling: %g gens/sec, want 20", g.gensPerSec)
	}
	g.changeSpeed(0.5)
	if g.gensPerSec != 10 {
		t.Fatalf("after halving back: %g gens/sec, want 10", g.gensPerSec)
	}

	for i := 0; i < 10; i++ {
		g.changeSpeed(2)
	}
	if g.gensPerSec != maxGensPerSec {
		t.Fatalf("rate %g not clamped to max %d", g.gensPerSec, maxGensPerSec)
	}
	for i := 0; i < 20; i++ {
		g.changeSpeed(0.5)
	}
	if g.gensPerSec != minGensPerSec {
		t.Fatalf("rate %g not clamped to min %g", g.gensPerSec, minGensPerSec)
	}
}

func TestGameRecenterGlidesToPatternCenter(t *testing.T) {
	v := snapView()
	v.X, v.Y = -50, 80
	g := &Game{
		view:   v,
		latest: Generation{World: worldOf(Point{X: 10, Y: 10}, Point{X: 13, Y: 15})},
	}

	g.recenter()
	st := v.State()
	if st.X != -50 || st.Y != 80 {
		t.Fatalf("recenter moved the view before any update: (%g, %g)", st.X, st.Y)
	}

	v.Update(recenterSeconds + 0.1)
	st = v.State()
	if st.X != 12 || st.Y != 13 {
		t.Fatalf("recentered at (%g, %g), want bounding-box center (12, 13)", st.X, st.Y)
	}
}

func TestGameRecenterOnEmptyWorldReturnsToOrigin(t *testing.T) {
	v := snapView()
	v.X, v.Y = 31, -7
	g := &Game{view: v, latest: Generation{World: NewWorld()}}

	g.recenter()
	v.Update(recenterSeconds + 0.1)
	st := v.State()
	if st.X != 0 || st.Y != 0 {
		t.Fatalf("recentered at (%g, %g), want origin", st.X, st.Y)
	}
}

func TestGameSaveSessionRoundTrip(t *testing.T) {
	rule, err := ParseRule("B36/S23")
	if err != nil {
		t.Fatal(err)
	}
	v := snapView()
	v.X, v.Y = 4, -2
	v.SetZoom(2)

	g := &Game{
		view: v,
		latest: Generation{
			World:   worldOf(Point{X: 1, Y: 1}, Point{X: 2, Y: 1}, Point{X: 3, Y: 1}),
			Number:  42,
			Rule:    rule,
			Running: true,
		},
		SessionPath: filepath.Join(t.TempDir(), "session.yaml"),
	}
	g.saveSession()

	s, err := LoadSession(g.SessionPath)
	if err != nil {
		t.Fatal(err)
	}
	if s.Generation != 42 || !s.Running || s.Rule != "B36/S23" {
		t.Fatalf("session = %+v", s)
	}
	if s.Camera.X != 4 || s.Camera.Y != -2 || s.Camera.Zoom != 2 {
		t.Fatalf("camera = %+v", s.Camera)
	}

	w, err := s.World()
	if err != nil {
		t.Fatal(err)
	}
	assertCells(t, w, Point{X: 1, Y: 1}, Point{X: 2, Y: 1}, Point{X: 3, Y: 1})
}

func TestGameSaveSessionDisabledWithoutPath(t *testing.T) {
	g := &Game{}
	g.saveSession()
}
