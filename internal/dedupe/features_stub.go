//go:build !cgo

package dedupe

import (
	"fmt"
	"image"
)

// featureSimilarity needs gocv (OpenCV via cgo); the stub keeps non-cgo
// builds (cross-compilation, CI without OpenCV) compiling.
type featureSimilarity struct {
	minMatchRatio float64
}

// Similar always fails in non-cgo builds.
func (featureSimilarity) Similar(image.Image, image.Image) (bool, error) {
	return false, fmt.Errorf("dedupe: built without cgo; feature matching is unavailable")
}
