package detection

import "image"

// Walls is the candidate left/right wall pair for one row center.
// Found is false when either directional search was exhausted; such rows
// are excluded from all downstream stages.
type Walls struct {
	Left  int
	Right int
	Found bool
}

// FindWalls searches outward from the seed column for the nearest wall on
// each side of every row center.
//
// Both searches start at seedX (inclusive) and move one pixel at a time,
// left toward 0 and right toward the last column; the first IsWall hit wins
// in each direction. Row centers too close to the top or bottom border for
// the wall probe are reported as not found without searching.
//
// The result is index-aligned with centers.
func FindWalls(gray *image.Gray, centers []int, seedX int, cfg Config) []Walls {
	w := gray.Bounds().Dx()
	h := gray.Bounds().Dy()

	walls := make([]Walls, len(centers))
	for i, y := range centers {
		if y < cfg.WallHeight || y >= h-cfg.WallHeight {
			continue
		}

		left, right := -1, -1
		for x := seedX; x >= 0; x-- {
			if IsWall(gray, x, y, cfg) {
				left = x
				break
			}
		}
		for x := seedX; x < w; x++ {
			if IsWall(gray, x, y, cfg) {
				right = x
				break
			}
		}

		if left >= 0 && right >= 0 {
			walls[i] = Walls{Left: left, Right: right, Found: true}
		}
	}
	return walls
}

// Cell is a row that survived wall search: its center y, wall x positions
// and wall-to-wall width.
type Cell struct {
	Center int
	Left   int
	Right  int
	Width  int
}

// Cells pairs each row center with its walls, dropping rows whose walls
// were not found. centers and walls must be index-aligned as produced by
// FindWalls.
func Cells(centers []int, walls []Walls) []Cell {
	cells := make([]Cell, 0, len(centers))
	for i, wl := range walls {
		if !wl.Found {
			continue
		}
		cells = append(cells, Cell{
			Center: centers[i],
			Left:   wl.Left,
			Right:  wl.Right,
			Width:  wl.Right - wl.Left,
		})
	}
	return cells
}

// FilterByWidth keeps only the cells whose width is within tolerance of the
// modal width.
//
// Partial or broken wall detections produce widths far from the true cell
// width; the majority vote rejects them without knowing the schema. Ties
// between equally common widths resolve to the width encountered first in
// document order, so results do not depend on map iteration.
func FilterByWidth(cells []Cell, tolerance int) []Cell {
	if len(cells) == 0 {
		return nil
	}

	counts := make(map[int]int, len(cells))
	for _, c := range cells {
		counts[c.Width]++
	}

	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	mode := 0
	for _, c := range cells {
		if counts[c.Width] == best {
			mode = c.Width
			break
		}
	}

	kept := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if abs(c.Width-mode) <= tolerance {
			kept = append(kept, c)
		}
	}
	return kept
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
