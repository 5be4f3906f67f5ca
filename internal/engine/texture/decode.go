package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// ErrUnsupported is returned for image data no registered decoder accepts.
var ErrUnsupported = errors.New("texture: unsupported image")

// Decode decodes encoded image bytes. name is only used as a format hint:
// TGA carries no magic number, so a ".tga" suffix selects the TGA decoder.
// Everything else goes through the registered decoders (PNG, JPEG, BMP,
// TIFF, WebP).
func Decode(data []byte, name string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
		}
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// ColorKey makes pixels close to an RGB value fully transparent.
type ColorKey struct {
	R, G, B   uint8
	Tolerance uint8
}

// Magenta is the classic 255,0,255 sprite key, tolerant of lossy encoders.
var Magenta = &ColorKey{R: 255, G: 0, B: 255, Tolerance: 5}

// Match reports whether r, g, b fall within the key's tolerance.
func (k *ColorKey) Match(r, g, b uint8) bool {
	return near(r, k.R, k.Tolerance) && near(g, k.G, k.Tolerance) && near(b, k.B, k.Tolerance)
}

func near(v, want, tol uint8) bool {
	if v > want {
		return v-want <= tol
	}
	return want-v <= tol
}

// Apply clears matching pixels of img in place. Cleared pixels become
// transparent black so filtering does not bleed the key color.
func (k *ColorKey) Apply(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			if k.Match(img.Pix[i], img.Pix[i+1], img.Pix[i+2]) {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
			}
		}
	}
}

// ToRGBA converts img to non-premultiplied 8-bit RGBA with its origin at
// 0,0. A nil key leaves colors untouched.
func ToRGBA(img image.Image, key *ColorKey) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	if key != nil {
		key.Apply(out)
	}
	return out
}
