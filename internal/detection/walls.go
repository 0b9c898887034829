package detection

import "image"

// IsWall reports whether (x, y) sits on a vertical grid line.
//
// The probe requires every pixel in the column x over the window
// [y-WallHeight, y+WallHeight] to be darker than IntensityThreshold; a
// single bright pixel disqualifies the position. Positions closer than
// WallHeight to the top or bottom border, or outside the raster, are
// never walls.
func IsWall(gray *image.Gray, x, y int, cfg Config) bool {
	w := gray.Bounds().Dx()
	h := gray.Bounds().Dy()

	if x < 0 || x >= w || y < cfg.WallHeight || y >= h-cfg.WallHeight {
		return false
	}

	for dy := -cfg.WallHeight; dy <= cfg.WallHeight; dy++ {
		if gray.Pix[(y+dy)*gray.Stride+x] >= cfg.IntensityThreshold {
			return false
		}
	}
	return true
}
