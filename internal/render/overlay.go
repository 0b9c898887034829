package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// BoxOverlay paints the given rectangles onto a copy of the page as outlines.
// colorHex is a CSS-style hex color like "#FF0000"; an empty string draws red.
func BoxOverlay(page image.Image, boxes []image.Rectangle, colorHex string) (*image.RGBA, error) {
	line := color.RGBA{R: 255, A: 255}
	if colorHex != "" {
		c, err := colorful.Hex(colorHex)
		if err != nil {
			return nil, fmt.Errorf("invalid overlay color %q: %w", colorHex, err)
		}
		r, g, b := c.RGB255()
		line = color.RGBA{R: r, G: g, B: b, A: 255}
	}

	bounds := page.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, page, bounds.Min, draw.Src)

	for _, box := range boxes {
		drawOutline(result, box.Intersect(bounds), line)
	}
	return result, nil
}

// outlineThickness is drawn inward so adjacent boxes stay distinguishable.
const outlineThickness = 2

func drawOutline(img *image.RGBA, box image.Rectangle, c color.RGBA) {
	if box.Empty() {
		return
	}
	for t := 0; t < outlineThickness; t++ {
		top := box.Min.Y + t
		bottom := box.Max.Y - 1 - t
		for x := box.Min.X; x < box.Max.X; x++ {
			if top < box.Max.Y {
				img.Set(x, top, c)
			}
			if bottom >= box.Min.Y && bottom != top {
				img.Set(x, bottom, c)
			}
		}
		left := box.Min.X + t
		right := box.Max.X - 1 - t
		for y := box.Min.Y; y < box.Max.Y; y++ {
			if left < box.Max.X {
				img.Set(left, y, c)
			}
			if right >= box.Min.X && right != left {
				img.Set(right, y, c)
			}
		}
	}
}
