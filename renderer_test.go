package conway

import (
	"math"
	"testing"
)

func testRenderer(theme ThemeConfig) (*Renderer, *View) {
	v := snapView()
	return NewRenderer(v, theme), v
}

func TestRendererRebuildCullsToVisibleRegion(t *testing.T) {
	r, _ := testRenderer(DefaultConfig().Theme)

	// The default view shows cells -200..200 on both axes.
	w := worldOf(
		Point{X: 0, Y: 0},
		Point{X: 199, Y: 199},
		Point{X: -200, Y: -200},
		Point{X: 500, Y: 0},
		Point{X: 0, Y: -500},
	)
	if got := r.rebuild(w); got != 3 {
		t.Fatalf("rebuild = %d quads, want 3", got)
	}
}

func TestRendererQuadGeometry(t *testing.T) {
	r, v := testRenderer(DefaultConfig().Theme)

	if got := r.rebuild(worldOf(Point{X: 0, Y: 0})); got != 1 {
		t.Fatalf("rebuild = %d quads, want 1", got)
	}

	size := v.CellSizePixels()
	assertNear(t, "cell size", size, 1.5)

	// Cell (0,0) spans grid [0,1)^2; its y=1 edge is the top on screen.
	wantX := [4]float64{300, 301.5, 300, 301.5}
	wantY := [4]float64{298.5, 298.5, 300, 300}
	for i := 0; i < 4; i++ {
		if math.Abs(float64(r.vertices[i].DstX)-wantX[i]) > 1e-4 {
			t.Errorf("vertex %d DstX = %v, want %v", i, r.vertices[i].DstX, wantX[i])
		}
		if math.Abs(float64(r.vertices[i].DstY)-wantY[i]) > 1e-4 {
			t.Errorf("vertex %d DstY = %v, want %v", i, r.vertices[i].DstY, wantY[i])
		}
		if r.vertices[i].SrcX != 0.5 || r.vertices[i].SrcY != 0.5 {
			t.Errorf("vertex %d Src = (%v, %v), want white pixel center", i, r.vertices[i].SrcX, r.vertices[i].SrcY)
		}
	}
}

func TestRendererHigherCellsDrawHigherOnScreen(t *testing.T) {
	r, _ := testRenderer(DefaultConfig().Theme)

	r.rebuild(worldOf(Point{X: 0, Y: 0}))
	atOrigin := r.vertices[0].DstY
	r.rebuild(worldOf(Point{X: 0, Y: 5}))
	above := r.vertices[0].DstY

	if above >= atOrigin {
		t.Fatalf("cell at y=5 drew at DstY=%v, cell at y=0 at DstY=%v; want above < origin", above, atOrigin)
	}
}

func TestRendererColorPremultiplied(t *testing.T) {
	theme := DefaultConfig().Theme
	theme.Cell = ColorConfig{R: 100, G: 200, B: 40, A: 128}
	r, _ := testRenderer(theme)

	r.rebuild(worldOf(Point{X: 0, Y: 0}))

	a := float64(128) / 255
	wantR := float64(100) / 255 * a
	wantG := float64(200) / 255 * a
	wantB := float64(40) / 255 * a
	v := r.vertices[0]
	if math.Abs(float64(v.ColorR)-wantR) > 1e-6 ||
		math.Abs(float64(v.ColorG)-wantG) > 1e-6 ||
		math.Abs(float64(v.ColorB)-wantB) > 1e-6 ||
		math.Abs(float64(v.ColorA)-a) > 1e-6 {
		t.Fatalf("vertex color = (%v %v %v %v), want premultiplied (%v %v %v %v)",
			v.ColorR, v.ColorG, v.ColorB, v.ColorA, wantR, wantG, wantB, a)
	}
}

func TestRendererIndexTopology(t *testing.T) {
	r, _ := testRenderer(DefaultConfig().Theme)
	r.ensureBuffer(2)

	want := []uint16{0, 1, 2, 1, 3, 2, 4, 5, 6, 5, 7, 6}
	if len(r.indices) != len(want) {
		t.Fatalf("len(indices) = %d, want %d", len(r.indices), len(want))
	}
	for i, w := range want {
		if r.indices[i] != w {
			t.Fatalf("indices[%d] = %d, want %d", i, r.indices[i], w)
		}
	}
}

func TestRendererBufferHighWaterMark(t *testing.T) {
	r, _ := testRenderer(DefaultConfig().Theme)

	big := NewWorld()
	for i := 0; i < 10; i++ {
		big.Set(Point{X: i, Y: 0})
	}
	if got := r.rebuild(big); got != 10 {
		t.Fatalf("rebuild = %d quads, want 10", got)
	}
	grown := len(r.vertices)

	if got := r.rebuild(worldOf(Point{X: 0, Y: 0})); got != 1 {
		t.Fatalf("rebuild = %d quads, want 1", got)
	}
	if len(r.vertices) != grown {
		t.Fatalf("vertex buffer shrank from %d to %d", grown, len(r.vertices))
	}
}

func TestRendererIndexBufferCapsAtOneChunk(t *testing.T) {
	r, _ := testRenderer(DefaultConfig().Theme)
	r.ensureBuffer(maxQuadsPerDraw + 5000)

	if len(r.vertices) != (maxQuadsPerDraw+5000)*4 {
		t.Fatalf("len(vertices) = %d, want %d", len(r.vertices), (maxQuadsPerDraw+5000)*4)
	}
	if len(r.indices) != maxQuadsPerDraw*6 {
		t.Fatalf("len(indices) = %d, want one chunk (%d)", len(r.indices), maxQuadsPerDraw*6)
	}
	// The largest index referenced must fit uint16.
	if last := r.indices[len(r.indices)-2]; last != maxQuadsPerDraw*4-1 {
		t.Fatalf("last quad's top index = %d, want %d", last, maxQuadsPerDraw*4-1)
	}
}

func TestRendererEmptyInputs(t *testing.T) {
	r, v := testRenderer(DefaultConfig().Theme)

	if got := r.rebuild(nil); got != 0 {
		t.Fatalf("rebuild(nil) = %d quads, want 0", got)
	}
	if got := r.rebuild(NewWorld()); got != 0 {
		t.Fatalf("rebuild(empty) = %d quads, want 0", got)
	}

	v.Viewport = ViewportSize{}
	if got := r.rebuild(worldOf(Point{X: 0, Y: 0})); got != 0 {
		t.Fatalf("rebuild with empty viewport = %d quads, want 0", got)
	}
}

func BenchmarkRendererRebuild(b *testing.B) {
	r, _ := testRenderer(DefaultConfig().Theme)
	w := NewWorld()
	// A 100x100 block, fully inside the default view.
	for y := -50; y < 50; y++ {
		for x := -50; x < 50; x++ {
			w.Set(Point{X: x, Y: y})
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		r.rebuild(w)
	}
}
