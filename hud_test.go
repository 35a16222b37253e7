package conway

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestFormatHUD(t *testing.T) {
	g := Generation{
		World:   worldOf(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 2, Y: 0}),
		Number:  12,
		Rule:    DefaultRule(),
		Running: true,
	}
	got := formatHUD(g, 10, 1.5, 10)
	want := "gen 12  pop 3\nzoom 10.00  cell 1.5px\nB3/S23  running @ 10 gen/s"
	if got != want {
		t.Fatalf("formatHUD = %q, want %q", got, want)
	}
}

func TestFormatHUD_PausedWithoutWorld(t *testing.T) {
	g := Generation{Rule: DefaultRule()}
	got := formatHUD(g, 0.25, 60, 30)
	want := "gen 0  pop 0\nzoom 0.25  cell 60.0px\nB3/S23  paused @ 30 gen/s"
	if got != want {
		t.Fatalf("formatHUD = %q, want %q", got, want)
	}
}

func TestLoadHUDFontFallbacks(t *testing.T) {
	if LoadHUDFont("") != basicfont.Face7x13 {
		t.Error("empty path did not return the bitmap face")
	}
	if LoadHUDFont(filepath.Join(t.TempDir(), "missing.ttf")) != basicfont.Face7x13 {
		t.Error("missing file did not fall back to the bitmap face")
	}

	garbage := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(garbage, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if LoadHUDFont(garbage) != basicfont.Face7x13 {
		t.Error("unparseable file did not fall back to the bitmap face")
	}
}
