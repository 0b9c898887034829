package dedupe

import (
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
)

// phashWidth and phashHeight give a 256-bit extended perceptual hash,
// coarse enough to absorb rendering noise between occurrences of the same
// component while keeping distinct breaker symbols far apart.
const (
	phashWidth  = 16
	phashHeight = 16
)

// hashSimilarity compares perceptual hashes by Hamming distance.
// Representative hashes are cached so each group representative is hashed
// once, keeping comparisons O(1) after the first.
type hashSimilarity struct {
	maxDistance int
	cache       map[image.Image]*goimagehash.ExtImageHash
}

func newHashSimilarity(maxDistance int) *hashSimilarity {
	return &hashSimilarity{
		maxDistance: maxDistance,
		cache:       make(map[image.Image]*goimagehash.ExtImageHash),
	}
}

func (h *hashSimilarity) Similar(a, b image.Image) (bool, error) {
	ha, err := goimagehash.ExtPerceptionHash(a, phashWidth, phashHeight)
	if err != nil {
		return false, fmt.Errorf("hashing cell image: %w", err)
	}

	hb, ok := h.cache[b]
	if !ok {
		hb, err = goimagehash.ExtPerceptionHash(b, phashWidth, phashHeight)
		if err != nil {
			return false, fmt.Errorf("hashing representative image: %w", err)
		}
		h.cache[b] = hb
	}

	distance, err := ha.Distance(hb)
	if err != nil {
		return false, fmt.Errorf("comparing hashes: %w", err)
	}
	return distance <= h.maxDistance, nil
}
