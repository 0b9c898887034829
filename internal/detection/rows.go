package detection

import "image"

// SeedColumn returns the x position of the scan column for a raster of the
// given width, clamped into the valid pixel range.
func SeedColumn(width int, cfg Config) int {
	x := int(float64(width) * cfg.SeedFraction)
	if x < 0 {
		x = 0
	}
	if x > width-1 {
		x = width - 1
	}
	return x
}

// RowCenters scans the seed column for dark pixels and merges nearby hits
// into one integer y estimate per table row.
//
// Consecutive hits whose gap is at most MergeThreshold belong to the same
// cluster; each cluster yields the integer-rounded mean of its members.
// A clean page produces one center per printed row boundary region; a blank
// column produces an empty slice. The scan is pure and recomputed per call.
func RowCenters(gray *image.Gray, cfg Config) []int {
	height := gray.Bounds().Dy()
	x := SeedColumn(gray.Bounds().Dx(), cfg)

	var centers []int
	sum, count := 0, 0
	lastY := -1

	flush := func() {
		if count > 0 {
			centers = append(centers, (sum+count/2)/count)
		}
		sum, count = 0, 0
	}

	for y := 0; y < height; y++ {
		if gray.Pix[y*gray.Stride+x] >= cfg.IntensityThreshold {
			continue
		}
		if count > 0 && y-lastY > cfg.MergeThreshold {
			flush()
		}
		sum += y
		count++
		lastY = y
	}
	flush()

	return centers
}
