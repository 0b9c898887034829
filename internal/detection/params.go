package detection

import "fmt"

// Config holds the grid detection parameters.
//
// The defaults are calibrated for the fixed switchboard diagram template
// rendered at 300 DPI. If the rendering resolution changes, the pixel-valued
// fields (MergeThreshold, WallHeight, WidthTolerance) must be rescaled by
// the caller; none of them is safe to hardcode elsewhere.
type Config struct {
	// IntensityThreshold separates ink from paper: pixels with a grayscale
	// value strictly below it count as dark. 250 deliberately sits just
	// under pure white so that anti-aliased rule lines still register.
	IntensityThreshold uint8

	// MergeThreshold is the largest vertical gap, in pixels, between two
	// dark hits on the scan column that still belong to the same row.
	MergeThreshold int

	// WallHeight is the half-window of the vertical wall probe: a position
	// is a wall only if every pixel within WallHeight above and below it
	// is dark.
	WallHeight int

	// WidthTolerance is the allowed deviation, in pixels, from the modal
	// cell width during width consensus.
	WidthTolerance int

	// SeedFraction is the horizontal position of the scan column as a
	// fraction of the page width. 0.2 lands inside the component column
	// of the template, clear of both the page margin and the label column.
	SeedFraction float64
}

// DefaultConfig returns the parameters calibrated for the switchboard
// template at 300 DPI.
func DefaultConfig() Config {
	return Config{
		IntensityThreshold: 250,
		MergeThreshold:     3,
		WallHeight:         10,
		WidthTolerance:     5,
		SeedFraction:       0.2,
	}
}

// Validate reports a configuration that cannot produce meaningful results.
func (c Config) Validate() error {
	if c.MergeThreshold < 0 {
		return fmt.Errorf("merge threshold must be >= 0, got %d", c.MergeThreshold)
	}
	if c.WallHeight < 1 {
		return fmt.Errorf("wall height must be >= 1, got %d", c.WallHeight)
	}
	if c.WidthTolerance < 0 {
		return fmt.Errorf("width tolerance must be >= 0, got %d", c.WidthTolerance)
	}
	if c.SeedFraction < 0 || c.SeedFraction >= 1 {
		return fmt.Errorf("seed fraction must be in [0, 1), got %g", c.SeedFraction)
	}
	return nil
}
