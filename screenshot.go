package conway

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// screenshotDir receives timestamped PNG captures.
const screenshotDir = "screenshots"

// captureScreenshot writes the rendered frame as a PNG and returns the
// path written. Call at the end of a Draw, after everything has been
// composited.
func captureScreenshot(screen *ebiten.Image) (string, error) {
	if err := os.MkdirAll(screenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", screenshotDir, err)
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	path := filepath.Join(screenshotDir, time.Now().Format("20060102_150405")+".png")
	if err := writePNG(path, unpremultiply(pixels, w, h)); err != nil {
		return "", err
	}
	return path, nil
}

// unpremultiply converts the premultiplied RGBA bytes ReadPixels returns
// into a straight-alpha NRGBA image, which is what PNG stores.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
