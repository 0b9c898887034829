package main

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/detection"
	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/pipeline"
	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/raster"
	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/render"
)

// geometryFlags holds the settings shared by every subcommand that runs
// the detection stages.
type geometryFlags struct {
	dpi                int
	intensityThreshold uint8
	mergeThreshold     int
	wallHeight         int
	widthTolerance     int
	seedFraction       float64
	pageWorkers        int
}

func (f *geometryFlags) register(cmd *cobra.Command) {
	d := detection.DefaultConfig()
	cmd.PersistentFlags().IntVar(&f.dpi, "dpi", 300, "render resolution for PDF input")
	cmd.PersistentFlags().Uint8Var(&f.intensityThreshold, "intensity-threshold", d.IntensityThreshold, "pixels brighter than this do not count as ink")
	cmd.PersistentFlags().IntVar(&f.mergeThreshold, "merge-threshold", d.MergeThreshold, "max gap between dark runs merged into one row")
	cmd.PersistentFlags().IntVar(&f.wallHeight, "wall-height", d.WallHeight, "half-height of the vertical run a wall must span")
	cmd.PersistentFlags().IntVar(&f.widthTolerance, "width-tolerance", d.WidthTolerance, "max deviation from the modal cell width")
	cmd.PersistentFlags().Float64Var(&f.seedFraction, "seed-fraction", d.SeedFraction, "horizontal position of the row probe column, as a page width fraction")
	cmd.PersistentFlags().IntVar(&f.pageWorkers, "page-workers", 0, "concurrent page workers (0 = one per CPU)")
}

func (f *geometryFlags) detectionConfig() (detection.Config, error) {
	cfg := detection.Config{
		IntensityThreshold: f.intensityThreshold,
		MergeThreshold:     f.mergeThreshold,
		WallHeight:         f.wallHeight,
		WidthTolerance:     f.widthTolerance,
		SeedFraction:       f.seedFraction,
	}
	if err := cfg.Validate(); err != nil {
		return detection.Config{}, err
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	flags := &geometryFlags{}

	root := &cobra.Command{
		Use:   "eisko",
		Short: "Component inventory extraction for switchboard diagram scans",
		Long: `eisko locates the component table rows on scanned switchboard diagram
pages, cuts out the component cells, reads their identifier labels, and
deduplicates visually identical components into a counted inventory.

Input is either a PDF document or a directory of page images named with
trailing page numbers (page_1.png, page_2.png, ...).`,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	flags.register(root)

	root.AddCommand(newScanCmd(flags))
	root.AddCommand(newCellsCmd(flags))
	root.AddCommand(newOverlayCmd(flags))
	root.AddCommand(newRenderCmd(flags))
	return root
}

// loadPages resolves the input argument into decoded page images: a .pdf
// file is rasterized with pdftoppm, anything else is treated as a directory
// of page image files.
func loadPages(ctx context.Context, input string, dpi int) ([]image.Image, error) {
	if strings.EqualFold(filepath.Ext(input), ".pdf") {
		return render.PDFFilePages(ctx, input, render.PDFOptions{
			DPI:     dpi,
			Timeout: 10 * time.Minute,
		})
	}

	paths, err := raster.ListPages(input)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no page images found in %s", input)
	}

	cache := raster.NewPageCache()
	pages := make([]image.Image, len(paths))
	for i, p := range paths {
		if pages[i], err = cache.Load(p); err != nil {
			return nil, err
		}
	}
	return pages, nil
}

func buildPipelineConfig(flags *geometryFlags, labelLeft, labelRight float64) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()

	det, err := flags.detectionConfig()
	if err != nil {
		return pipeline.Config{}, err
	}
	cfg.Detection = det
	cfg.PageWorkers = flags.pageWorkers

	if labelLeft <= 0 || labelRight <= labelLeft || labelRight > 1 {
		return pipeline.Config{}, fmt.Errorf("label fractions must satisfy 0 < left < right <= 1, got %g and %g", labelLeft, labelRight)
	}
	cfg.LabelLeftFraction = labelLeft
	cfg.LabelRightFraction = labelRight

	return cfg, nil
}
