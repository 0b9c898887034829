package dedupe

import (
	"fmt"
	"image"
)

// Similarity decides whether two cell images show the same component.
// a is the incoming cell, b an existing group representative.
// Implementations may cache per-representative state keyed on b.
type Similarity interface {
	Similar(a, b image.Image) (bool, error)
}

// Strategy names accepted by Config.Strategy.
const (
	StrategyHash     = "hash"     // perceptual hash distance
	StrategyExact    = "exact"    // exact pixel equality
	StrategyPixel    = "pixel"    // tolerant pixel-diff ratio
	StrategyFeatures = "features" // ORB keypoint matching
)

// Config selects a similarity strategy and its thresholds. Exactly one
// strategy is active per run.
type Config struct {
	// Strategy is one of the Strategy* constants.
	Strategy string

	// MaxHashDistance is the largest Hamming distance between 16x16
	// perceptual hashes still considered the same component (hash).
	MaxHashDistance int

	// MaxSizeDiff is the largest per-axis dimension difference, in pixels,
	// tolerated before two crops are different outright (pixel). Within
	// the bound, both crops are compared over their common minimum size.
	MaxSizeDiff int

	// PixelThreshold is the per-channel difference above which a pixel
	// counts as differing (pixel).
	PixelThreshold int

	// DiffRatio is the largest tolerated fraction of differing pixels (pixel).
	DiffRatio float64

	// MinMatchRatio is the smallest accepted ratio of cross-checked
	// descriptor matches to the smaller keypoint set (features).
	MinMatchRatio float64
}

// DefaultConfig returns the hash strategy with the calibrated thresholds.
func DefaultConfig() Config {
	return Config{
		Strategy:        StrategyHash,
		MaxHashDistance: 5,
		MaxSizeDiff:     5,
		PixelThreshold:  5,
		DiffRatio:       0.01,
		MinMatchRatio:   0.5,
	}
}

// NewSimilarity builds the similarity test selected by cfg.
func NewSimilarity(cfg Config) (Similarity, error) {
	switch cfg.Strategy {
	case StrategyHash:
		return newHashSimilarity(cfg.MaxHashDistance), nil
	case StrategyExact:
		return exactSimilarity{}, nil
	case StrategyPixel:
		return pixelSimilarity{
			maxSizeDiff:    cfg.MaxSizeDiff,
			pixelThreshold: cfg.PixelThreshold,
			diffRatio:      cfg.DiffRatio,
		}, nil
	case StrategyFeatures:
		return featureSimilarity{minMatchRatio: cfg.MinMatchRatio}, nil
	default:
		return nil, fmt.Errorf("unknown similarity strategy %q", cfg.Strategy)
	}
}
