package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/pipeline"
	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/raster"
)

func newCellsCmd(flags *geometryFlags) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "cells <input>",
		Short: "Run cell detection only and save the cropped cells",
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
			total := 0
			for i, page := range pages {
				extracted := pipeline.ExtractPage(page, cfg)
				if len(extracted.Cells) == 0 {
					fmt.Fprintf(out, "page %d: no cells\n", i)
					continue
				}
				prefix := fmt.Sprintf("page%02d_cell", i)
				paths, err := raster.SaveCells(outDir, prefix, extracted.Cells, extracted.Boxes)
				if err != nil {
					return err
				}
				total += len(paths)
				fmt.Fprintf(out, "page %d: %d cells\n", i, len(paths))
				if !extracted.Spacing.Regular {
					fmt.Fprintf(out, "page %d: warning: irregular row spacing (mean %.1f, stddev %.1f)\n",
						i, extracted.Spacing.Mean, extracted.Spacing.StdDev)
				}
			}
			fmt.Fprintf(out, "%d cells saved to %s\n", total, outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "cells", "directory for the cropped cell images")
	return cmd
}
