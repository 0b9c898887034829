package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/WilliamTuominiemi/Eisko-hackathon/internal/dedupe"
)

// tagReader resolves a label from the tag pixel planted at the top-left
// corner of each label region by the page builders below.
type tagReader struct {
	labels map[uint8]string
}

func (r tagReader) ReadLabel(_ context.Context, img image.Image) (string, error) {
	min := img.Bounds().Min
	c, _, _, _ := img.At(min.X, min.Y).RGBA()
	label, ok := r.labels[uint8(c>>8)]
	if !ok {
		return "", fmt.Errorf("unexpected tag pixel %d", c>>8)
	}
	return label, nil
}

const pageW = 600

// rowMark distinguishes one row's cell content: a short dash above the
// row line and a tag pixel at the label region corner. Rows with equal
// marks produce pixel-identical cell crops.
type rowMark struct {
	dashX int
	tag   uint8
}

// newTablePage draws a table page with one row per mark. Row i's line sits
// at center 100*(i+1), bounded by walls at x=40 and x=540, so detection
// yields the boxes (40, 100*i+50, 540, 100*i+150). Label regions start at
// x = 600*0.695 = 417.
func newTablePage(marks []rowMark) *image.RGBA {
	pageH := 100 * (len(marks) + 1)
	img := image.NewRGBA(image.Rect(0, 0, pageW, pageH))
	for y := 0; y < pageH; y++ {
		for x := 0; x < pageW; x++ {
			img.Set(x, y, color.White)
		}
	}

	for y := 40; y <= pageH-40; y++ {
		img.Set(40, y, color.Black)
		img.Set(540, y, color.Black)
	}

	for i, m := range marks {
		cy := 100 * (i + 1)
		for y := cy - 1; y <= cy+1; y++ {
			for x := 40; x <= 540; x++ {
				img.Set(x, y, color.Black)
			}
		}
		for x := m.dashX; x < m.dashX+10; x++ {
			img.Set(x, cy-20, color.Black)
		}
		img.Set(417, cy-50, color.NRGBA{R: m.tag, G: m.tag, B: m.tag, A: 255})
	}
	return img
}

// threeRowMarks gives rows 0 and 2 identical content.
func threeRowMarks() []rowMark {
	return []rowMark{
		{dashX: 200, tag: 10},
		{dashX: 300, tag: 20},
		{dashX: 200, tag: 10},
	}
}

func blankPage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pageW, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < pageW; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func solidCell(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestExtractPage(t *testing.T) {
	page := newTablePage(threeRowMarks())

	got := ExtractPage(page, DefaultConfig())

	wantBoxes := []image.Rectangle{
		image.Rect(40, 50, 540, 150),
		image.Rect(40, 150, 540, 250),
		image.Rect(40, 250, 540, 350),
	}
	if len(got.Boxes) != len(wantBoxes) {
		t.Fatalf("got %d boxes, want %d: %v", len(got.Boxes), len(wantBoxes), got.Boxes)
	}
	for i, want := range wantBoxes {
		if got.Boxes[i] != want {
			t.Errorf("box %d: got %v, want %v", i, got.Boxes[i], want)
		}
	}

	wantLabels := []image.Rectangle{
		image.Rect(417, 50, 456, 150),
		image.Rect(417, 150, 456, 250),
		image.Rect(417, 250, 456, 350),
	}
	for i, want := range wantLabels {
		if got.LabelBoxes[i] != want {
			t.Errorf("label box %d: got %v, want %v", i, got.LabelBoxes[i], want)
		}
	}

	if len(got.Cells) != 3 {
		t.Fatalf("got %d cells, want 3", len(got.Cells))
	}
	for i, cell := range got.Cells {
		b := cell.Bounds()
		if b.Dx() != 500 || b.Dy() != 100 {
			t.Errorf("cell %d: got %dx%d, want 500x100", i, b.Dx(), b.Dy())
		}
	}

	if !got.Spacing.Regular {
		t.Errorf("spacing reported irregular: %+v", got.Spacing)
	}
}

func TestExtractPageBlank(t *testing.T) {
	got := ExtractPage(blankPage(), DefaultConfig())
	if len(got.Boxes) != 0 || len(got.Cells) != 0 {
		t.Fatalf("blank page produced cells: %+v", got)
	}
}

func TestBuildRecords(t *testing.T) {
	cells := []image.Image{
		solidCell(4, 4, color.White),
		solidCell(4, 4, color.Black),
	}

	t.Run("aligned", func(t *testing.T) {
		records, err := BuildRecords(2, cells, []string{"K1", "K2"}, DefaultConfig())
		if err != nil {
			t.Fatalf("BuildRecords: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("got %d records, want 2", len(records))
		}
		if records[1].Label != "K2" || records[1].Page != 2 || records[1].Index != 1 {
			t.Errorf("record 1 = %+v", records[1])
		}
	})

	t.Run("mismatch fails", func(t *testing.T) {
		_, err := BuildRecords(0, cells, []string{"K1"}, DefaultConfig())
		if !errors.Is(err, ErrLabelCountMismatch) {
			t.Fatalf("got %v, want ErrLabelCountMismatch", err)
		}
	})

	t.Run("mismatch truncates when opted in", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TruncateOnMismatch = true
		records, err := BuildRecords(0, cells, []string{"K1"}, cfg)
		if err != nil {
			t.Fatalf("BuildRecords: %v", err)
		}
		if len(records) != 1 || records[0].Label != "K1" {
			t.Fatalf("got %+v, want single K1 record", records)
		}

		records, err = BuildRecords(0, cells[:1], []string{"K1", "K2"}, cfg)
		if err != nil {
			t.Fatalf("BuildRecords: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("got %d records, want 1", len(records))
		}
	})
}

func TestRun(t *testing.T) {
	// Ten rows where rows 3 and 7 (indexes 2 and 6) are visually identical
	// and share the label "C16"; everything else is unique. The inventory
	// must come out as 9 groups with the C16 group counting 2.
	marks := make([]rowMark, 10)
	labels := make(map[uint8]string, 10)
	for i := range marks {
		tag := uint8(10 * (i + 1))
		marks[i] = rowMark{dashX: 160 + 30*i, tag: tag}
		labels[tag] = fmt.Sprintf("K%d", i+1)
	}
	marks[6] = marks[2]
	labels[marks[2].tag] = "C16"
	reader := tagReader{labels: labels}

	cfg := DefaultConfig()
	cfg.Dedupe.Strategy = dedupe.StrategyExact

	result, err := Run(context.Background(), []image.Image{newTablePage(marks)}, reader, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.TotalCells != 10 {
		t.Errorf("TotalCells = %d, want 10", result.TotalCells)
	}
	if len(result.Groups) != 9 {
		t.Fatalf("got %d groups, want 9: %+v", len(result.Groups), result.Groups)
	}

	for i, g := range result.Groups {
		if g.Label == "C16" {
			if g.Count != 2 || g.Page != 0 || g.Index != 2 {
				t.Errorf("C16 group = {Count:%d Page:%d Index:%d}, want count 2 represented by page 0 cell 2",
					g.Count, g.Page, g.Index)
			}
			continue
		}
		if g.Count != 1 {
			t.Errorf("group %d (%s): Count = %d, want 1", i, g.Label, g.Count)
		}
	}

	// Groups keep discovery order, so the duplicate row's group sits at
	// its first occurrence.
	if result.Groups[2].Label != "C16" {
		t.Errorf("group 2 label = %q, want C16", result.Groups[2].Label)
	}
}

func TestRunAcrossPages(t *testing.T) {
	marks := threeRowMarks()
	pages := []image.Image{newTablePage(marks), newTablePage(marks)}
	reader := tagReader{labels: map[uint8]string{10: "C16", 20: "B2"}}

	cfg := DefaultConfig()
	cfg.Dedupe.Strategy = dedupe.StrategyExact
	cfg.PageWorkers = 2

	result, err := Run(context.Background(), pages, reader, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.TotalCells != 6 {
		t.Errorf("TotalCells = %d, want 6", result.TotalCells)
	}
	if len(result.Groups) != 2 {
		t.Fatalf("got %d groups, want 2: %+v", len(result.Groups), result.Groups)
	}
	if result.Groups[0].Count != 4 || result.Groups[0].Page != 0 {
		t.Errorf("group 0 = %+v, want count 4 represented by page 0", result.Groups[0])
	}
	if result.Groups[1].Count != 2 {
		t.Errorf("group 1 = %+v, want count 2", result.Groups[1])
	}
}

func TestRunBlankPages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dedupe.Strategy = dedupe.StrategyExact

	result, err := Run(context.Background(), []image.Image{blankPage()}, tagReader{}, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.TotalCells != 0 || len(result.Groups) != 0 {
		t.Fatalf("blank document produced inventory: %+v", result)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.Dedupe.Strategy = dedupe.StrategyExact

	pages := []image.Image{newTablePage(threeRowMarks())}
	_, err := Run(ctx, pages, tagReader{labels: map[uint8]string{10: "A", 20: "B"}}, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestRunBadStrategy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dedupe.Strategy = "quantum"
	if _, err := Run(context.Background(), nil, tagReader{}, cfg); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
