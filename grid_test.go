package conway

import (
	"math/rand"
	"testing"
)

// --- PointMinMax ---

func TestPointMinMax(t *testing.T) {
	// The two corners may arrive in any quadrant order.
	tests := []struct {
		name     string
		a, b     Point
		min, max Point
	}{
		{"a below-left of b", Point{1, 2}, Point{3, 4}, Point{1, 2}, Point{3, 4}},
		{"a above-right of b", Point{3, 4}, Point{1, 2}, Point{1, 2}, Point{3, 4}},
		{"a below-right of b", Point{3, 2}, Point{1, 4}, Point{1, 2}, Point{3, 4}},
		{"a above-left of b", Point{1, 4}, Point{3, 2}, Point{1, 2}, Point{3, 4}},
		{"equal", Point{5, 5}, Point{5, 5}, Point{5, 5}, Point{5, 5}},
		{"negative", Point{-3, 7}, Point{2, -9}, Point{-3, -9}, Point{2, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := PointMinMax(tt.a, tt.b)
			if min != tt.min || max != tt.max {
				t.Errorf("PointMinMax(%v, %v) = %v, %v, want %v, %v",
					tt.a, tt.b, min, max, tt.min, tt.max)
			}
		})
	}
}

// --- Region ---

func TestRegionOf(t *testing.T) {
	r := RegionOf(Point{4, -1}, Point{-2, 3})
	if r.Min != (Point{-2, -1}) || r.Max != (Point{4, 3}) {
		t.Errorf("RegionOf = %v, want {-2,-1}..{4,3}", r)
	}
	if r.Width() != 7 || r.Height() != 5 {
		t.Errorf("size = %dx%d, want 7x5", r.Width(), r.Height())
	}
}

func TestRegionContains(t *testing.T) {
	r := RegionOf(Point{0, 0}, Point{2, 2})
	for _, p := range []Point{{0, 0}, {2, 2}, {1, 1}, {0, 2}} {
		if !r.Contains(p) {
			t.Errorf("Contains(%v) = false, want true", p)
		}
	}
	for _, p := range []Point{{-1, 0}, {3, 0}, {0, -1}, {0, 3}} {
		if r.Contains(p) {
			t.Errorf("Contains(%v) = true, want false", p)
		}
	}
}

func TestRegionIntersects(t *testing.T) {
	r := RegionOf(Point{0, 0}, Point{4, 4})
	tests := []struct {
		name string
		s    Region
		want bool
	}{
		{"overlapping", RegionOf(Point{2, 2}, Point{6, 6}), true},
		{"touching corner", RegionOf(Point{4, 4}, Point{8, 8}), true},
		{"contained", RegionOf(Point{1, 1}, Point{2, 2}), true},
		{"disjoint right", RegionOf(Point{5, 0}, Point{8, 4}), false},
		{"disjoint above", RegionOf(Point{0, 5}, Point{4, 8}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Intersects(tt.s); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestRegionCenter(t *testing.T) {
	// A single cell's center sits at its midpoint in grid-space.
	c := RegionOf(Point{2, 2}, Point{2, 2}).Center()
	assertNear(t, "cx", c.X, 2.5)
	assertNear(t, "cy", c.Y, 2.5)

	c = RegionOf(Point{0, 0}, Point{3, 1}).Center()
	assertNear(t, "cx", c.X, 2)
	assertNear(t, "cy", c.Y, 1)
}

// --- World basics ---

func TestWorldSetAlive(t *testing.T) {
	w := NewWorld()
	if w.Alive(Point{0, 0}) {
		t.Error("empty world reports a live cell")
	}
	w.Set(Point{3, 4})
	if !w.Alive(Point{3, 4}) {
		t.Error("Alive(3,4) = false after Set")
	}
	if w.Alive(Point{4, 3}) {
		t.Error("Alive(4,3) = true, want false")
	}
	if w.Population() != 1 {
		t.Errorf("Population = %d, want 1", w.Population())
	}
}

func TestWorldSetDuplicate(t *testing.T) {
	w := NewWorld()
	w.Set(Point{1, 1})
	w.Set(Point{1, 1})
	if w.Population() != 1 {
		t.Errorf("Population = %d after duplicate Set, want 1", w.Population())
	}
}

func TestWorldUnset(t *testing.T) {
	w := NewWorld()
	w.Set(Point{1, 1})
	w.Set(Point{2, 2})
	w.Unset(Point{1, 1})
	if w.Alive(Point{1, 1}) {
		t.Error("cell still alive after Unset")
	}
	if w.Population() != 1 {
		t.Errorf("Population = %d, want 1", w.Population())
	}
	// Unset of a dead cell is a no-op.
	w.Unset(Point{9, 9})
	if w.Population() != 1 {
		t.Errorf("Population = %d after no-op Unset, want 1", w.Population())
	}
}

func TestWorldToggle(t *testing.T) {
	w := NewWorld()
	if got := w.Toggle(Point{5, 5}); !got {
		t.Error("Toggle on dead cell = false, want true")
	}
	if got := w.Toggle(Point{5, 5}); got {
		t.Error("Toggle on live cell = true, want false")
	}
	if w.Population() != 0 {
		t.Errorf("Population = %d after toggle pair, want 0", w.Population())
	}
}

func TestWorldReset(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 10; i++ {
		w.Set(Point{i, -i})
	}
	w.Reset()
	if w.Population() != 0 {
		t.Errorf("Population = %d after Reset, want 0", w.Population())
	}
	if w.Alive(Point{3, -3}) {
		t.Error("cell alive after Reset")
	}
	// The world remains usable.
	w.Set(Point{0, 0})
	if !w.Alive(Point{0, 0}) {
		t.Error("Set after Reset did not stick")
	}
}

// --- Tree growth ---

func TestWorldGrowsBeyondInitialRoot(t *testing.T) {
	w := NewWorld()
	pts := []Point{
		{0, 0},
		{1000, 0},
		{-1000, 0},
		{0, 100000},
		{-54321, -12345},
	}
	for _, p := range pts {
		w.Set(p)
	}
	for _, p := range pts {
		if !w.Alive(p) {
			t.Errorf("Alive(%v) = false after growth", p)
		}
	}
	if w.Population() != len(pts) {
		t.Errorf("Population = %d, want %d", w.Population(), len(pts))
	}
}

func TestWorldDenseBlock(t *testing.T) {
	// A 40x40 solid block forces several levels of leaf splitting.
	w := NewWorld()
	for y := -20; y < 20; y++ {
		for x := -20; x < 20; x++ {
			w.Set(Point{x, y})
		}
	}
	if w.Population() != 1600 {
		t.Fatalf("Population = %d, want 1600", w.Population())
	}
	for y := -20; y < 20; y++ {
		for x := -20; x < 20; x++ {
			if !w.Alive(Point{x, y}) {
				t.Fatalf("Alive(%d,%d) = false", x, y)
			}
		}
	}
	// Remove a checkerboard and re-verify.
	for y := -20; y < 20; y++ {
		for x := -20; x < 20; x++ {
			if (x+y)%2 == 0 {
				w.Unset(Point{x, y})
			}
		}
	}
	if w.Population() != 800 {
		t.Fatalf("Population = %d after removal, want 800", w.Population())
	}
	for y := -20; y < 20; y++ {
		for x := -20; x < 20; x++ {
			want := (x+y)%2 != 0
			if w.Alive(Point{x, y}) != want {
				t.Fatalf("Alive(%d,%d) = %v, want %v", x, y, !want, want)
			}
		}
	}
}

// --- Iteration ---

func TestWorldForEach(t *testing.T) {
	w := NewWorld()
	want := map[Point]bool{{0, 0}: true, {100, -7}: true, {-3, 42}: true}
	for p := range want {
		w.Set(p)
	}
	got := map[Point]bool{}
	w.ForEach(func(p Point) {
		if got[p] {
			t.Errorf("ForEach visited %v twice", p)
		}
		got[p] = true
	})
	if len(got) != len(want) {
		t.Fatalf("visited %d cells, want %d", len(got), len(want))
	}
	for p := range want {
		if !got[p] {
			t.Errorf("ForEach skipped %v", p)
		}
	}
}

func TestWorldForEachIn(t *testing.T) {
	w := NewWorld()
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			w.Set(Point{x, y})
		}
	}
	r := RegionOf(Point{2, 3}, Point{5, 6})
	count := 0
	w.ForEachIn(r, func(p Point) {
		if !r.Contains(p) {
			t.Errorf("ForEachIn yielded %v outside %v", p, r)
		}
		count++
	})
	if want := r.Width() * r.Height(); count != want {
		t.Errorf("ForEachIn count = %d, want %d", count, want)
	}
}

func TestWorldForEachInDisjoint(t *testing.T) {
	w := NewWorld()
	w.Set(Point{0, 0})
	w.ForEachIn(RegionOf(Point{100, 100}, Point{200, 200}), func(p Point) {
		t.Errorf("ForEachIn yielded %v from a disjoint region", p)
	})
}

func TestWorldPoints(t *testing.T) {
	w := NewWorld()
	if pts := w.Points(); pts != nil {
		t.Errorf("empty world Points = %v, want nil", pts)
	}
	w.Set(Point{1, 2})
	w.Set(Point{3, 4})
	pts := w.Points()
	if len(pts) != 2 {
		t.Fatalf("len(Points) = %d, want 2", len(pts))
	}
}

// --- Bounds ---

func TestWorldBounds(t *testing.T) {
	w := NewWorld()
	if _, ok := w.Bounds(); ok {
		t.Error("empty world reports bounds")
	}
	w.Set(Point{5, -3})
	w.Set(Point{-8, 12})
	w.Set(Point{0, 0})
	r, ok := w.Bounds()
	if !ok {
		t.Fatal("Bounds not ok")
	}
	if r.Min != (Point{-8, -3}) || r.Max != (Point{5, 12}) {
		t.Errorf("Bounds = %v, want {-8,-3}..{5,12}", r)
	}
}

func TestWorldBoundsShrinksAfterUnset(t *testing.T) {
	// Bounds are computed from the live cells, so they tighten when the
	// extremes die.
	w := NewWorld()
	w.Set(Point{0, 0})
	w.Set(Point{1000, 1000})
	w.Unset(Point{1000, 1000})
	r, ok := w.Bounds()
	if !ok {
		t.Fatal("Bounds not ok")
	}
	if r.Min != (Point{0, 0}) || r.Max != (Point{0, 0}) {
		t.Errorf("Bounds = %v, want {0,0}..{0,0}", r)
	}
}

// --- Snapshot ---

func TestWorldSnapshotIndependent(t *testing.T) {
	w := NewWorld()
	w.Set(Point{1, 1})
	w.Set(Point{2, 2})

	snap := w.Snapshot()
	w.Unset(Point{1, 1})
	w.Set(Point{9, 9})

	if !snap.Alive(Point{1, 1}) {
		t.Error("snapshot lost a cell after the original changed")
	}
	if snap.Alive(Point{9, 9}) {
		t.Error("snapshot gained a cell from the original")
	}
	if snap.Population() != 2 {
		t.Errorf("snapshot Population = %d, want 2", snap.Population())
	}
}

func TestWorldSnapshotEmpty(t *testing.T) {
	snap := NewWorld().Snapshot()
	if snap.Population() != 0 {
		t.Errorf("Population = %d, want 0", snap.Population())
	}
	// The snapshot is a working world, not a frozen husk.
	snap.Set(Point{1, 1})
	if !snap.Alive(Point{1, 1}) {
		t.Error("snapshot refused a Set")
	}
}

// --- Randomized cross-check against a plain set ---

func TestWorldMatchesMapModel(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := NewWorld()
	model := map[Point]bool{}
	for i := 0; i < 20000; i++ {
		p := Point{X: rng.Intn(200) - 100, Y: rng.Intn(200) - 100}
		switch rng.Intn(3) {
		case 0:
			w.Set(p)
			model[p] = true
		case 1:
			w.Unset(p)
			delete(model, p)
		case 2:
			if w.Alive(p) != model[p] {
				t.Fatalf("step %d: Alive(%v) = %v, model says %v", i, p, !model[p], model[p])
			}
		}
	}
	if w.Population() != len(model) {
		t.Fatalf("Population = %d, model has %d", w.Population(), len(model))
	}
	w.ForEach(func(p Point) {
		if !model[p] {
			t.Fatalf("ForEach yielded %v not in model", p)
		}
	})
}

// --- Benchmarks ---

func BenchmarkWorldSet(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	pts := make([]Point, 4096)
	for i := range pts {
		pts[i] = Point{X: rng.Intn(512) - 256, Y: rng.Intn(512) - 256}
	}
	b.ReportAllocs()
	for b.Loop() {
		w := NewWorld()
		for _, p := range pts {
			w.Set(p)
		}
	}
}

func BenchmarkWorldForEachIn(b *testing.B) {
	w := NewWorld()
	for x := -256; x < 256; x++ {
		for y := -256; y < 256; y++ {
			if (x*31+y*17)%5 == 0 {
				w.Set(Point{x, y})
			}
		}
	}
	r := RegionOf(Point{-64, -64}, Point{64, 64})
	b.ReportAllocs()
	for b.Loop() {
		n := 0
		w.ForEachIn(r, func(Point) { n++ })
	}
}
