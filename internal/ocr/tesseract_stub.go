//go:build !cgo

package ocr

import (
	"context"
	"fmt"
	"image"
)

// Tesseract is unavailable without cgo; the stub keeps non-cgo builds
// (cross-compilation, CI without Tesseract) compiling.
type Tesseract struct{}

// NewTesseract always fails in non-cgo builds.
func NewTesseract(Config) (*Tesseract, error) {
	return nil, fmt.Errorf("ocr: built without cgo; Tesseract label reading is unavailable")
}

// ReadLabel is never reachable: NewTesseract refuses to construct the reader.
func (*Tesseract) ReadLabel(context.Context, image.Image) (string, error) {
	return "", fmt.Errorf("ocr: built without cgo")
}
