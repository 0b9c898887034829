package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/dedupe"
	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/detection"
	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/ocr"
	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/raster"
)

// ErrLabelCountMismatch reports a label list whose length differs from the
// cell list it describes. The ordering guarantees of the pipeline prevent
// this internally; hitting it means a precondition violation by the caller.
var ErrLabelCountMismatch = errors.New("label count does not match cell count")

// Config holds the document-level settings.
type Config struct {
	// Detection configures the grid geometry stages.
	Detection detection.Config

	// Dedupe selects and configures the visual similarity strategy.
	Dedupe dedupe.Config

	// LabelLeftFraction and LabelRightFraction bound the identifier column
	// as fractions of the page width. The label region of a cell is this
	// column restricted to the cell's vertical band; it is positioned by
	// the template rule, not detected.
	LabelLeftFraction  float64
	LabelRightFraction float64

	// MaxSpacingCV is the largest tolerated coefficient of variation of
	// row spacing before a page's detection is logged as irregular.
	MaxSpacingCV float64

	// PageWorkers bounds concurrent page extraction; zero or negative
	// means one per available CPU.
	PageWorkers int

	// OCRWorkers and OCRTimeout configure the per-page label reading pool.
	OCRWorkers int
	OCRTimeout time.Duration

	// TruncateOnMismatch restores the legacy behavior of silently
	// truncating to the shorter of the label and cell lists instead of
	// failing with ErrLabelCountMismatch. Off by default.
	TruncateOnMismatch bool

	// CellDir, when set, persists every cell crop there for auditing.
	CellDir string
}

// DefaultConfig returns the document-template calibration.
func DefaultConfig() Config {
	return Config{
		Detection:          detection.DefaultConfig(),
		Dedupe:             dedupe.DefaultConfig(),
		LabelLeftFraction:  0.695,
		LabelRightFraction: 0.76,
		MaxSpacingCV:       0.25,
		OCRTimeout:         15 * time.Second,
	}
}

// PageCells is the geometry result for one page: the surviving cell boxes,
// their color crops, and the matching label-region boxes, all index-aligned
// in top-to-bottom order. A page where detection found nothing has empty
// slices; that is a normal outcome, not an error.
type PageCells struct {
	Boxes      []image.Rectangle
	Cells      []image.Image
	LabelBoxes []image.Rectangle
	Spacing    detection.SpacingReport
}

// ExtractPage runs the geometry stages on one page: row location, wall
// search, width consensus and boundary synthesis on the grayscale raster,
// then cell and label-region cropping from the color page.
func ExtractPage(page image.Image, cfg Config) PageCells {
	gray := raster.Luminance(page)
	bounds := gray.Bounds()

	centers := detection.RowCenters(gray, cfg.Detection)
	if len(centers) == 0 {
		return PageCells{}
	}

	seedX := detection.SeedColumn(bounds.Dx(), cfg.Detection)
	walls := detection.FindWalls(gray, centers, seedX, cfg.Detection)
	cells := detection.Cells(centers, walls)
	kept := detection.FilterByWidth(cells, cfg.Detection.WidthTolerance)
	boxes := detection.CellBoxes(kept, bounds)
	if len(boxes) == 0 {
		return PageCells{}
	}

	spacing := detection.ValidateSpacing(centers, cfg.MaxSpacingCV)

	return PageCells{
		Boxes:      boxes,
		Cells:      raster.CropCells(page, boxes),
		LabelBoxes: labelBoxes(boxes, bounds, cfg),
		Spacing:    spacing,
	}
}

// labelBoxes positions the identifier region for each cell box: the fixed
// template column clipped to the cell's vertical band.
func labelBoxes(boxes []image.Rectangle, bounds image.Rectangle, cfg Config) []image.Rectangle {
	width := bounds.Dx()
	left := int(float64(width) * cfg.LabelLeftFraction)
	right := int(float64(width) * cfg.LabelRightFraction)

	regions := make([]image.Rectangle, len(boxes))
	for i, box := range boxes {
		regions[i] = image.Rect(left, box.Min.Y, right, box.Max.Y).Intersect(bounds)
	}
	return regions
}

// BuildRecords pairs a page's cell crops with their labels into dedup
// records. The two lists must be index-aligned and equally long; a length
// mismatch fails with ErrLabelCountMismatch unless cfg.TruncateOnMismatch
// explicitly opts into truncating to the shorter list.
func BuildRecords(page int, cells []image.Image, labels []string, cfg Config) ([]dedupe.Record, error) {
	n := len(cells)
	if len(labels) != n {
		if !cfg.TruncateOnMismatch {
			return nil, fmt.Errorf("page %d: %w: %d cells, %d labels",
				page, ErrLabelCountMismatch, len(cells), len(labels))
		}
		if len(labels) < n {
			n = len(labels)
		}
	}

	records := make([]dedupe.Record, n)
	for i := 0; i < n; i++ {
		records[i] = dedupe.Record{
			Image: cells[i],
			Label: labels[i],
			Page:  page,
			Index: i,
		}
	}
	return records, nil
}

// Result is the document inventory: every unique component with its
// occurrence count, plus the total number of cells that reached dedup.
type Result struct {
	TotalCells int
	Groups     []dedupe.Group
}

// Run processes the pages of one document and returns its component
// inventory.
//
// Pages are extracted and OCR'd by parallel workers; a page whose geometry
// fails simply contributes zero cells. Once all pages are done, the
// per-page records are concatenated in page order and clustered
// sequentially. Run stops early only when ctx is canceled or a similarity
// comparison fails.
func Run(ctx context.Context, pages []image.Image, reader ocr.Reader, cfg Config) (*Result, error) {
	similar, err := dedupe.NewSimilarity(cfg.Dedupe)
	if err != nil {
		return nil, err
	}

	workers := cfg.PageWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(pages) && len(pages) > 0 {
		workers = len(pages)
	}

	perPage := make([][]dedupe.Record, len(pages))
	errs := make([]error, len(pages))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				perPage[i], errs[i] = runPage(ctx, i, pages[i], reader, cfg)
			}
		}()
	}

scheduling:
	for i := range pages {
		select {
		case <-ctx.Done():
			break scheduling
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// Dedup is order-dependent: one sequential pass over the page-ordered
	// concatenation.
	engine := dedupe.NewEngine(similar)
	total := 0
	for _, records := range perPage {
		total += len(records)
		if err := engine.AddAll(records); err != nil {
			return nil, err
		}
	}

	return &Result{
		TotalCells: total,
		Groups:     engine.Groups(),
	}, nil
}

func runPage(ctx context.Context, page int, img image.Image, reader ocr.Reader, cfg Config) ([]dedupe.Record, error) {
	extracted := ExtractPage(img, cfg)
	if len(extracted.Cells) == 0 {
		log.Printf("pipeline: page %d: no qualifying cells", page)
		return nil, nil
	}
	if !extracted.Spacing.Regular {
		log.Printf("pipeline: page %d: irregular row spacing (mean %.1f, stddev %.1f); check calibration",
			page, extracted.Spacing.Mean, extracted.Spacing.StdDev)
	}

	if cfg.CellDir != "" {
		prefix := fmt.Sprintf("page%02d_cell", page)
		if _, err := raster.SaveCells(cfg.CellDir, prefix, extracted.Cells, extracted.Boxes); err != nil {
			return nil, err
		}
	}

	labelCrops := raster.CropCells(img, extracted.LabelBoxes)
	labels, err := ocr.ReadAll(ctx, reader, labelCrops, ocr.PoolConfig{
		Workers: cfg.OCRWorkers,
		Timeout: cfg.OCRTimeout,
	})
	if err != nil {
		return nil, err
	}

	return BuildRecords(page, extracted.Cells, labels, cfg)
}
