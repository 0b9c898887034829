package render

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/raster"
)

// PDFOptions controls pdftoppm rasterization.
type PDFOptions struct {
	// DPI is the render resolution. Values at or below zero fall back to 300,
	// which keeps label glyphs large enough for recognition.
	DPI int

	// FirstPage and LastPage bound the rendered page range when positive;
	// zero renders from the first or to the last page respectively.
	FirstPage int
	LastPage  int

	// Timeout bounds the whole pdftoppm run. Zero means 10 minutes.
	Timeout time.Duration
}

func (o PDFOptions) withDefaults() PDFOptions {
	if o.DPI <= 0 {
		o.DPI = 300
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Minute
	}
	return o
}

// PDFPages rasterizes a PDF document into one image per page, in page order.
// It shells out to pdftoppm, so the binary must be on PATH.
func PDFPages(ctx context.Context, input []byte, opts PDFOptions) ([]image.Image, error) {
	opts = opts.withDefaults()

	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdftoppm not found in PATH: %w", err)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("nanoid: %w", err)
	}
	tmpDir := filepath.Join(os.TempDir(), "eisko-render-"+id)
	if err := os.MkdirAll(tmpDir, 0o700); err != nil {
		return nil, fmt.Errorf("mkdir tmp: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, input, 0o600); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	args := []string{"-png", "-r", strconv.Itoa(opts.DPI), "-q"}
	if opts.FirstPage > 0 {
		args = append(args, "-f", strconv.Itoa(opts.FirstPage))
	}
	if opts.LastPage > 0 {
		args = append(args, "-l", strconv.Itoa(opts.LastPage))
	}
	args = append(args, pdfPath, filepath.Join(tmpDir, "page"))

	cmd := exec.CommandContext(ctx, "pdftoppm", args...)
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("pdftoppm timed out")
	}
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	paths, err := raster.ListPages(tmpDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages")
	}

	cache := raster.NewPageCache()
	pages := make([]image.Image, len(paths))
	for i, p := range paths {
		img, err := cache.Load(p)
		if err != nil {
			return nil, err
		}
		pages[i] = img
	}
	return pages, nil
}

// PDFFilePages is PDFPages for a document on disk.
func PDFFilePages(ctx context.Context, path string, opts PDFOptions) ([]image.Image, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return PDFPages(ctx, input, opts)
}
