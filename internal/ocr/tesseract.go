//go:build cgo

package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract reads identifier labels with the system Tesseract installation
// through gosseract. Each call runs on its own client, so a Tesseract value
// is safe to share across the worker pool.
type Tesseract struct {
	cfg Config
}

// NewTesseract creates a label reader with the given settings.
func NewTesseract(cfg Config) (*Tesseract, error) {
	if cfg.Language == "" {
		return nil, fmt.Errorf("ocr language must not be empty")
	}
	return &Tesseract{cfg: cfg}, nil
}

// ReadLabel recognizes the identifier code on one label-region crop.
//
// The crop is preprocessed (border trim, binarize, denoise), written to a
// temporary PNG (Tesseract wants a file path) and recognized in single-line
// mode with the configured whitelist. Dictionary-based word correction is
// disabled: identifier codes are not English words and must not be
// "corrected" into them.
//
// Recognition runs in a goroutine so a hung Tesseract call cannot outlive
// ctx; on cancellation the context error is returned and the caller decides
// how to treat the missing label.
func (t *Tesseract) ReadLabel(ctx context.Context, img image.Image) (string, error) {
	prepared := PrepareLabel(img)

	tmpFile, err := os.CreateTemp("", "label-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, prepared); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to encode label image: %w", err)
	}
	tmpFile.Close()

	type recognition struct {
		text string
		err  error
	}
	done := make(chan recognition, 1)

	go func() {
		text, err := t.recognize(tmpPath)
		done <- recognition{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		return CleanLabel(r.text), nil
	}
}

func (t *Tesseract) recognize(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.cfg.Language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if t.cfg.Whitelist != "" {
		if err := client.SetWhitelist(t.cfg.Whitelist); err != nil {
			return "", fmt.Errorf("failed to set whitelist: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	// Identifier codes are not dictionary words.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	return text, nil
}
