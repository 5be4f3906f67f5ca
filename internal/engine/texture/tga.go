// Package texture decodes image files into RGBA pixels ready for upload.
package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

const tgaHeaderSize = 18

// DecodeTGA decodes an uncompressed or RLE compressed true-color TGA.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: TGA header truncated", ErrUnsupported)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped TGA", ErrUnsupported)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: TGA type %d", ErrUnsupported, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: TGA bit depth %d", ErrUnsupported, bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: empty TGA", ErrUnsupported)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: TGA id field truncated", ErrUnsupported)
	}
	pixelData := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bytesPerPixel := bpp / 8

	// Descriptor bit 5 set means rows are stored top to bottom.
	topToBottom := (descriptor & 0x20) != 0

	if imageType == TGATypeRLE {
		decodeTGARLE(img, pixelData, width, height, bytesPerPixel, topToBottom)
		return img, nil
	}

	if len(pixelData) < width*height*bytesPerPixel {
		return nil, fmt.Errorf("%w: TGA pixel data truncated", ErrUnsupported)
	}
	for y := 0; y < height; y++ {
		row := tgaRow(y, height, topToBottom)
		for x := 0; x < width; x++ {
			img.SetRGBA(x, row, bgra(pixelData[(y*width+x)*bytesPerPixel:], bytesPerPixel))
		}
	}
	return img, nil
}

func tgaRow(y, height int, topToBottom bool) int {
	if topToBottom {
		return y
	}
	return height - 1 - y
}

// bgra reads one TGA pixel, stored blue first.
func bgra(p []byte, bytesPerPixel int) color.RGBA {
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if bytesPerPixel == 4 {
		c.A = p[3]
	}
	return c
}

// decodeTGARLE expands run-length packets. A truncated stream leaves the
// remaining pixels transparent.
func decodeTGARLE(img *image.RGBA, data []byte, width, height, bytesPerPixel int, topToBottom bool) {
	total := width * height
	px, i := 0, 0
	put := func(c color.RGBA) {
		img.SetRGBA(px%width, tgaRow(px/width, height, topToBottom), c)
		px++
	}

	for px < total && i < len(data) {
		header := data[i]
		i++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			if i+bytesPerPixel > len(data) {
				return
			}
			c := bgra(data[i:], bytesPerPixel)
			i += bytesPerPixel
			for n := 0; n < count && px < total; n++ {
				put(c)
			}
			continue
		}

		for n := 0; n < count && px < total; n++ {
			if i+bytesPerPixel > len(data) {
				return
			}
			put(bgra(data[i:], bytesPerPixel))
			i += bytesPerPixel
		}
	}
}
