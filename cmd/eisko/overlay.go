package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/spf13/cobra"

	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/pipeline"
	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/render"
)

func newOverlayCmd(flags *geometryFlags) *cobra.Command {
	var (
		outDir   string
		colorHex string
	)

	cmd := &cobra.Command{
		Use:   "overlay <input>",
		Short: "Draw the detected cell boundaries onto each page for inspection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			det, err := flags.detectionConfig()
			if err != nil {
				return err
			}
			cfg := pipeline.DefaultConfig()
			cfg.Detection = det

			pages, err := loadPages(cmd.Context(), args[0], flags.dpi)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			out := cmd.OutOrStdout()
			for i, page := range pages {
				extracted := pipeline.ExtractPage(page, cfg)
				overlaid, err := render.BoxOverlay(page, extracted.Boxes, colorHex)
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, fmt.Sprintf("page%02d_boxes.png", i))
				if err := imgio.Save(path, overlaid, imgio.PNGEncoder()); err != nil {
					return fmt.Errorf("save overlay %s: %w", path, err)
				}
				fmt.Fprintf(out, "page %d: %d boxes -> %s\n", i, len(extracted.Boxes), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "overlays", "directory for the annotated page images")
	cmd.Flags().StringVar(&colorHex, "color", "#FF0000", "outline color as a hex string")
	return cmd
}
