package raster

import (
	"image"
)

// Luminance converts an image to an 8-bit grayscale intensity raster using
// ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B).
//
// The result is normalized to a zero origin regardless of the source bounds,
// so callers can index it as [0,w) x [0,h). Grid detection treats low values
// as ink and high values as paper.
func Luminance(img image.Image) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gray := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// 16-bit channels scaled down to 8-bit before weighting.
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			gray.Pix[y*gray.Stride+x] = uint8(lum + 0.5)
		}
	}
	return gray
}
