package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/dedupe"
	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/ocr"
	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/pipeline"
	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/render"
)

func newScanCmd(flags *geometryFlags) *cobra.Command {
	var (
		strategy      string
		hashDistance  int
		maxSizeDiff   int
		pixelThresh   int
		diffRatio     float64
		minMatchRatio float64

		ocrWorkers  int
		ocrTimeout  time.Duration
		ocrLanguage string

		labelLeft  float64
		labelRight float64
		truncate   bool

		cellsDir   string
		reportPath string
	)

	ded := dedupe.DefaultConfig()
	ocrDefaults := ocr.DefaultConfig()
	pipeDefaults := pipeline.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "scan <input>",
		Short: "Extract, label and deduplicate component cells into an inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildPipelineConfig(flags, labelLeft, labelRight)
			if err != nil {
				return err
			}
			cfg.Dedupe = dedupe.Config{
				Strategy:        strategy,
				MaxHashDistance: hashDistance,
				MaxSizeDiff:     maxSizeDiff,
				PixelThreshold:  pixelThresh,
				DiffRatio:       diffRatio,
				MinMatchRatio:   minMatchRatio,
			}
			cfg.OCRWorkers = ocrWorkers
			cfg.OCRTimeout = ocrTimeout
			cfg.TruncateOnMismatch = truncate
			cfg.CellDir = cellsDir

			reader, err := ocr.NewTesseract(ocr.Config{
				Language:  ocrLanguage,
				Whitelist: ocr.LabelChars,
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pages, err := loadPages(ctx, args[0], flags.dpi)
			if err != nil {
				return err
			}

			result, err := pipeline.Run(ctx, pages, reader, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d pages, %d cells, %d unique components\n",
				len(pages), result.TotalCells, len(result.Groups))
			for _, g := range result.Groups {
				label := g.Label
				if label == "" {
					label = "(unlabeled)"
				}
				fmt.Fprintf(out, "  %-12s x%d  (first: page %d, cell %d)\n", label, g.Count, g.Page, g.Index)
			}

			if reportPath == "" {
				return nil
			}
			f, err := os.Create(reportPath)
			if err != nil {
				return fmt.Errorf("create report: %w", err)
			}
			defer f.Close()
			if err := render.WriteReport(f, result.Groups, result.TotalCells); err != nil {
				return err
			}
			fmt.Fprintf(out, "report written to %s\n", reportPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", ded.Strategy, "similarity strategy: hash, exact, pixel or features")
	cmd.Flags().IntVar(&hashDistance, "hash-distance", ded.MaxHashDistance, "max perceptual hash distance for a match")
	cmd.Flags().IntVar(&maxSizeDiff, "max-size-diff", ded.MaxSizeDiff, "max per-axis size difference for pixel comparison")
	cmd.Flags().IntVar(&pixelThresh, "pixel-threshold", ded.PixelThreshold, "per-channel difference above which a pixel counts as changed")
	cmd.Flags().Float64Var(&diffRatio, "diff-ratio", ded.DiffRatio, "max fraction of differing pixels for a match")
	cmd.Flags().Float64Var(&minMatchRatio, "min-match-ratio", ded.MinMatchRatio, "min fraction of matched features for a match")
	cmd.Flags().IntVar(&ocrWorkers, "ocr-workers", 0, "concurrent label readers per page (0 = one per CPU)")
	cmd.Flags().DurationVar(&ocrTimeout, "ocr-timeout", pipeDefaults.OCRTimeout, "per-label recognition timeout")
	cmd.Flags().StringVar(&ocrLanguage, "ocr-language", ocrDefaults.Language, "tesseract language")
	cmd.Flags().Float64Var(&labelLeft, "label-left", pipeDefaults.LabelLeftFraction, "left edge of the label column, as a page width fraction")
	cmd.Flags().Float64Var(&labelRight, "label-right", pipeDefaults.LabelRightFraction, "right edge of the label column, as a page width fraction")
	cmd.Flags().BoolVar(&truncate, "truncate-on-mismatch", false, "truncate instead of failing when label and cell counts differ")
	cmd.Flags().StringVar(&cellsDir, "cells-dir", "", "also save every cell crop into this directory")
	cmd.Flags().StringVar(&reportPath, "report", "", "write an HTML inventory report to this path")

	return cmd
}
