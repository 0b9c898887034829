package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/spf13/cobra"

	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/render"
)

func newRenderCmd(flags *geometryFlags) *cobra.Command {
	var (
		outDir    string
		firstPage int
		lastPage  int
	)

	cmd := &cobra.Command{
		Use:   "render <document.pdf>",
		Short: "Rasterize a PDF document into numbered page images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := render.PDFFilePages(cmd.Context(), args[0], render.PDFOptions{
				DPI:       flags.dpi,
				FirstPage: firstPage,
				LastPage:  lastPage,
			})
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			out := cmd.OutOrStdout()
			for i, page := range pages {
				path := filepath.Join(outDir, fmt.Sprintf("page_%d.png", i+1))
				if err := imgio.Save(path, page, imgio.PNGEncoder()); err != nil {
					return fmt.Errorf("save page %s: %w", path, err)
				}
				fmt.Fprintf(out, "%s\n", path)
			}
			fmt.Fprintf(out, "%d pages rendered at %d DPI\n", len(pages), flags.dpi)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "pages", "directory for the rendered page images")
	cmd.Flags().IntVar(&firstPage, "first-page", 0, "first page to render (0 = from the start)")
	cmd.Flags().IntVar(&lastPage, "last-page", 0, "last page to render (0 = to the end)")
	return cmd
}
