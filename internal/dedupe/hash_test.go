package dedupe

import (
	"image"
	"image/color"
	"testing"
)

// invertImage returns the per-channel negative of img.
func invertImage(img *image.RGBA) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			out.SetRGBA(x, y, color.RGBA{255 - c.R, 255 - c.G, 255 - c.B, 255})
		}
	}
	return out
}

func TestHashSimilarity_IdenticalImages(t *testing.T) {
	cmp := newHashSimilarity(5)
	a := patternImage(64, 64)
	b := patternImage(64, 64)

	same, err := cmp.Similar(a, b)
	if err != nil {
		t.Fatalf("Similar failed: %v", err)
	}
	if !same {
		t.Error("identical images should have hash distance 0")
	}
}

func TestHashSimilarity_InvertedImage(t *testing.T) {
	cmp := newHashSimilarity(5)
	a := patternImage(64, 64)

	same, err := cmp.Similar(a, invertImage(a))
	if err != nil {
		t.Fatalf("Similar failed: %v", err)
	}
	if same {
		t.Error("an image and its negative should be far apart in hash space")
	}
}

func TestHashSimilarity_CachesRepresentative(t *testing.T) {
	cmp := newHashSimilarity(5)
	rep := patternImage(64, 64)

	for i := 0; i < 3; i++ {
		if _, err := cmp.Similar(patternImage(64, 64), rep); err != nil {
			t.Fatalf("Similar failed: %v", err)
		}
	}

	if len(cmp.cache) != 1 {
		t.Errorf("cache holds %d entries, want 1 (the representative)", len(cmp.cache))
	}
	if _, ok := cmp.cache[image.Image(rep)]; !ok {
		t.Error("representative hash missing from cache")
	}
}
