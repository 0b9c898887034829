package dedupe

import "image"

// exactSimilarity accepts only images with identical dimensions and
// identical values in every channel of every pixel.
type exactSimilarity struct{}

func (exactSimilarity) Similar(a, b image.Image) (bool, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return false, nil
	}

	for dy := 0; dy < ab.Dy(); dy++ {
		for dx := 0; dx < ab.Dx(); dx++ {
			r1, g1, b1, a1 := a.At(ab.Min.X+dx, ab.Min.Y+dy).RGBA()
			r2, g2, b2, a2 := b.At(bb.Min.X+dx, bb.Min.Y+dy).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				return false, nil
			}
		}
	}
	return true, nil
}

// pixelSimilarity tolerates a bounded size mismatch and a bounded fraction
// of differing pixels.
//
// When the per-axis dimension difference is within maxSizeDiff the images
// are compared over their common minimum size; a larger mismatch means
// different crops and therefore different components. A pixel differs when
// any channel deviates by more than pixelThreshold (8-bit scale); the
// images match when the differing fraction stays at or below diffRatio.
type pixelSimilarity struct {
	maxSizeDiff    int
	pixelThreshold int
	diffRatio      float64
}

func (p pixelSimilarity) Similar(a, b image.Image) (bool, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if absInt(ab.Dx()-bb.Dx()) > p.maxSizeDiff || absInt(ab.Dy()-bb.Dy()) > p.maxSizeDiff {
		return false, nil
	}

	w := minInt(ab.Dx(), bb.Dx())
	h := minInt(ab.Dy(), bb.Dy())
	if w <= 0 || h <= 0 {
		return false, nil
	}

	differing := 0
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			r1, g1, b1, _ := a.At(ab.Min.X+dx, ab.Min.Y+dy).RGBA()
			r2, g2, b2, _ := b.At(bb.Min.X+dx, bb.Min.Y+dy).RGBA()

			dr := absInt(int(r1>>8) - int(r2>>8))
			dg := absInt(int(g1>>8) - int(g2>>8))
			db := absInt(int(b1>>8) - int(b2>>8))
			if dr > p.pixelThreshold || dg > p.pixelThreshold || db > p.pixelThreshold {
				differing++
			}
		}
	}

	ratio := float64(differing) / float64(w*h)
	return ratio <= p.diffRatio, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
