package ocr

import (
	"context"
	"image"
	"strings"
)

// LabelChars is the character set for component identifier codes.
// Lowercase is excluded to cut 0/O and 1/I confusion.
const LabelChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Reader recognizes the identifier label on a single cropped label region.
// Implementations must be safe for concurrent calls; the worker pool invokes
// one call per cell. A reader should honor ctx cancellation promptly.
type Reader interface {
	ReadLabel(ctx context.Context, img image.Image) (string, error)
}

// Config holds the recognition settings. Time budgets are not part of it:
// a Reader runs until its ctx is done, and the per-call deadline belongs to
// the worker pool (PoolConfig.Timeout).
type Config struct {
	// Language is the Tesseract language code.
	Language string

	// Whitelist restricts recognition to these characters.
	Whitelist string
}

// DefaultConfig returns settings calibrated for switchboard identifier codes.
func DefaultConfig() Config {
	return Config{
		Language:  "eng",
		Whitelist: LabelChars,
	}
}

// CleanLabel normalizes raw OCR output: spaces, newlines and carriage
// returns are stripped so "C 16\n" and "C16" compare equal as dedup keys.
func CleanLabel(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, raw)
}
