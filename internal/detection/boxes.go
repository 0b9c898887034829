package detection

import "image"

// CellBoxes converts the filtered cells into non-overlapping rectangles,
// one per row, inferring top and bottom edges from the vertical spacing of
// neighboring row centers rather than from detected rule lines.
//
// For row i with center cur:
//
//   - both neighbors: top = midpoint(prev, cur), bottom = midpoint(cur, next)
//   - first row: top = max(0, cur - (next-cur)/2), bottom = midpoint(cur, next)
//   - last row: top = midpoint(prev, cur), bottom = min(h-1, cur + (cur-prev)/2)
//   - single row: half = max(1, width/2), top = cur - half, bottom = cur + half
//
// Boxes are half-open (Max exclusive), clipped to bounds, and degenerate
// boxes are dropped silently. cells must be ordered by center y.
func CellBoxes(cells []Cell, bounds image.Rectangle) []image.Rectangle {
	if len(cells) == 0 {
		return nil
	}

	height := bounds.Dy()
	width := bounds.Dx()

	boxes := make([]image.Rectangle, 0, len(cells))
	for i, c := range cells {
		hasPrev := i > 0
		hasNext := i < len(cells)-1

		var top, bottom int
		switch {
		case hasPrev && hasNext:
			top = (cells[i-1].Center + c.Center) / 2
			bottom = (c.Center + cells[i+1].Center) / 2
		case hasNext:
			next := cells[i+1].Center
			top = c.Center - (next-c.Center)/2
			if top < 0 {
				top = 0
			}
			bottom = (c.Center + next) / 2
		case hasPrev:
			prev := cells[i-1].Center
			top = (prev + c.Center) / 2
			bottom = c.Center + (c.Center-prev)/2
			if bottom > height-1 {
				bottom = height - 1
			}
		default:
			half := c.Width / 2
			if half < 1 {
				half = 1
			}
			top = c.Center - half
			bottom = c.Center + half
		}

		left := c.Left
		if left < 0 {
			left = 0
		}
		right := c.Right
		if right > width {
			right = width
		}

		box := image.Rect(left, top, right, bottom).Intersect(image.Rect(0, 0, width, height))
		if box.Dx() <= 0 || box.Dy() <= 0 {
			continue
		}
		boxes = append(boxes, box)
	}
	return boxes
}
