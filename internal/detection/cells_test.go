package detection

import (
	"testing"
)

func TestFindWalls_NearestWallWins(t *testing.T) {
	cfg := DefaultConfig()
	gray := newWhitePage(200, 100)

	// Two wall pairs around the seed: outer at x=20/180, inner at x=40/160.
	for _, x := range []int{20, 40, 160, 180} {
		drawVerticalRun(gray, x, 50-cfg.WallHeight, 50+cfg.WallHeight)
	}

	walls := FindWalls(gray, []int{50}, 100, cfg)
	if len(walls) != 1 {
		t.Fatalf("got %d wall entries, want 1", len(walls))
	}
	w := walls[0]
	if !w.Found {
		t.Fatal("walls not found")
	}
	if w.Left != 40 || w.Right != 160 {
		t.Errorf("got walls (%d, %d), want nearest pair (40, 160)", w.Left, w.Right)
	}
}

func TestFindWalls_MissingSideDiscardsRow(t *testing.T) {
	cfg := DefaultConfig()
	gray := newWhitePage(200, 100)

	// Only a left wall exists.
	drawVerticalRun(gray, 30, 50-cfg.WallHeight, 50+cfg.WallHeight)

	walls := FindWalls(gray, []int{50}, 100, cfg)
	if walls[0].Found {
		t.Errorf("got %+v, want not found when right search is exhausted", walls[0])
	}
}

func TestFindWalls_CenterTooCloseToBorder(t *testing.T) {
	cfg := DefaultConfig()
	gray := newWhitePage(200, 100)
	drawVerticalRun(gray, 30, 0, 99)
	drawVerticalRun(gray, 170, 0, 99)

	walls := FindWalls(gray, []int{cfg.WallHeight - 1, 99}, 100, cfg)
	for i, w := range walls {
		if w.Found {
			t.Errorf("row %d: found walls for border-adjacent center", i)
		}
	}
}

func TestFindWalls_SeedOnWall(t *testing.T) {
	cfg := DefaultConfig()
	gray := newWhitePage(200, 100)
	drawVerticalRun(gray, 100, 50-cfg.WallHeight, 50+cfg.WallHeight)

	// Both directional searches start at the seed inclusive, so a wall at
	// the seed column wins both directions.
	walls := FindWalls(gray, []int{50}, 100, cfg)
	if !walls[0].Found || walls[0].Left != 100 || walls[0].Right != 100 {
		t.Errorf("got %+v, want walls (100, 100)", walls[0])
	}
}

func TestCells_DropsNotFound(t *testing.T) {
	centers := []int{10, 20, 30}
	walls := []Walls{
		{Left: 5, Right: 55, Found: true},
		{},
		{Left: 6, Right: 58, Found: true},
	}

	cells := Cells(centers, walls)
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	if cells[0].Center != 10 || cells[0].Width != 50 {
		t.Errorf("cell 0: got center %d width %d, want 10/50", cells[0].Center, cells[0].Width)
	}
	if cells[1].Center != 30 || cells[1].Width != 52 {
		t.Errorf("cell 1: got center %d width %d, want 30/52", cells[1].Center, cells[1].Width)
	}
}

func cellsWithWidths(widths ...int) []Cell {
	cells := make([]Cell, len(widths))
	for i, w := range widths {
		cells[i] = Cell{Center: (i + 1) * 100, Left: 10, Right: 10 + w, Width: w}
	}
	return cells
}

func TestFilterByWidth(t *testing.T) {
	tests := []struct {
		name      string
		widths    []int
		tolerance int
		want      []int
	}{
		{
			"majority keeps near-modal widths",
			[]int{50, 50, 50, 48, 90},
			5,
			[]int{50, 50, 50, 48},
		},
		{
			"tie resolves to first encountered",
			[]int{60, 80, 60, 80},
			0,
			[]int{60, 60},
		},
		{
			"zero tolerance keeps exact matches only",
			[]int{50, 50, 51},
			0,
			[]int{50, 50},
		},
		{
			"all within tolerance",
			[]int{50, 52, 48},
			5,
			[]int{50, 52, 48},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept := FilterByWidth(cellsWithWidths(tt.widths...), tt.tolerance)
			if len(kept) != len(tt.want) {
				t.Fatalf("kept %d cells, want %d", len(kept), len(tt.want))
			}
			for i, c := range kept {
				if c.Width != tt.want[i] {
					t.Errorf("kept[%d].Width = %d, want %d", i, c.Width, tt.want[i])
				}
			}
		})
	}
}

func TestFilterByWidth_Empty(t *testing.T) {
	if kept := FilterByWidth(nil, 5); kept != nil {
		t.Errorf("got %v, want nil for empty input", kept)
	}
}
