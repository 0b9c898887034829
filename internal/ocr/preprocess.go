package ocr

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"

	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/raster"
)

// Label crops are taken with a margin that can include fragments of the
// table's vertical rule lines; a column counts as border when at least
// borderColumnRatio of its pixels are darker than borderInk.
const (
	borderInk         = 200
	borderColumnRatio = 0.3

	// binarizeLevel separates text ink from paper after border removal.
	binarizeLevel = 128

	// medianRadius smooths rasterization speckle without eroding glyphs.
	medianRadius = 1.0
)

// PrepareLabel cleans a label-region crop for recognition: the crop is
// converted to grayscale, vertical table borders on the left and right are
// trimmed, the remainder is binarized and median-denoised. The input is not
// modified.
func PrepareLabel(img image.Image) image.Image {
	gray := raster.Luminance(img)
	trimmed := trimVerticalBorders(gray)
	binary := segment.Threshold(trimmed, binarizeLevel)
	return effect.Median(binary, medianRadius)
}

// trimVerticalBorders removes runs of border columns from the left and
// right edges of a grayscale crop. When trimming would leave nothing, the
// crop is returned as is.
func trimVerticalBorders(gray *image.Gray) *image.Gray {
	w := gray.Bounds().Dx()
	h := gray.Bounds().Dy()

	left := 0
	for x := 0; x < w; x++ {
		if !isBorderColumn(gray, x, h) {
			break
		}
		left = x + 1
	}

	right := w
	for x := w - 1; x >= 0; x-- {
		if !isBorderColumn(gray, x, h) {
			break
		}
		right = x
	}

	if left >= right {
		return gray
	}
	return gray.SubImage(image.Rect(left, 0, right, h)).(*image.Gray)
}

func isBorderColumn(gray *image.Gray, x, height int) bool {
	dark := 0
	for y := 0; y < height; y++ {
		if gray.Pix[y*gray.Stride+x] < borderInk {
			dark++
		}
	}
	return float64(dark) > float64(height)*borderColumnRatio
}
