package raster

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// CropCells extracts each box from the color page image, in the order the
// boxes are given (top-to-bottom document order). Boxes must be non-empty
// and pre-clipped to the page bounds, as produced by detection.CellBoxes.
//
// The crops are taken from the color raster, not the grayscale one used for
// detection, so downstream visual comparison sees the original pixels.
func CropCells(page image.Image, boxes []image.Rectangle) []image.Image {
	cells := make([]image.Image, 0, len(boxes))
	for _, box := range boxes {
		cells = append(cells, imaging.Crop(page, box))
	}
	return cells
}

// CellFilename builds the deterministic audit filename for a cell crop,
// encoding its index and page coordinates:
//
//	cell_03_l40_t100_r540_b150.png
//
// Coordinates are the half-open box bounds on the source page.
func CellFilename(prefix string, index int, box image.Rectangle) string {
	return fmt.Sprintf("%s_%02d_l%d_t%d_r%d_b%d.png",
		prefix, index, box.Min.X, box.Min.Y, box.Max.X, box.Max.Y)
}

// SaveCells writes the cell crops to dir with deterministic filenames.
// cells and boxes must be parallel slices as produced by CropCells over
// non-empty boxes. The directory is created if missing.
//
// Persistence is an audit aid only; the pipeline passes crops in memory and
// never reads these files back.
func SaveCells(dir, prefix string, cells []image.Image, boxes []image.Rectangle) ([]string, error) {
	if len(cells) != len(boxes) {
		return nil, fmt.Errorf("cell/box count mismatch: %d cells, %d boxes", len(cells), len(boxes))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cell directory: %w", err)
	}

	paths := make([]string, 0, len(cells))
	for i, cell := range cells {
		path := filepath.Join(dir, CellFilename(prefix, i, boxes[i]))
		if err := imgio.Save(path, cell, imgio.PNGEncoder()); err != nil {
			return nil, fmt.Errorf("failed to save cell %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
