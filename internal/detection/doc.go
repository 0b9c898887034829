// Package detection locates the row grid of a tabular switchboard diagram
// on a rasterized page, without any prior knowledge of the table schema.
//
// The diagrams place one electrical component per table row. Rows are
// separated by printed rule lines, but rendering noise, broken rules and
// header/footer clutter make naive line detection unreliable. Detection
// proceeds in five stages, each tolerant of the previous stage's noise:
//
//  1. Row location: a single column at a fixed fraction of the page width
//     is scanned for dark pixels; nearby hits merge into one row-center
//     estimate per table row (RowCenters).
//  2. Wall probing: IsWall tests whether a pixel sits on a vertical grid
//     line by requiring an unbroken dark run above and below it.
//  3. Wall search: from each row center, FindWalls searches left and right
//     for the nearest wall, giving a candidate cell span per row.
//  4. Width consensus: FilterByWidth keeps only rows whose span width
//     matches the majority width, rejecting partial or broken detections
//     by majority vote instead of a known schema.
//  5. Boundary synthesis: CellBoxes converts the surviving row centers into
//     non-overlapping cell rectangles using neighbor midpoints. Horizontal
//     boundaries are inferred from vertical spacing rather than detected,
//     trading a little precision for robustness against broken rules.
//
// No stage failure is fatal: a page where nothing qualifies simply yields
// zero cells. Individual rows that fail wall search or consensus are
// dropped silently and show up only as a lower aggregate count.
//
// All thresholds are calibrated to one document template rendered at a
// fixed DPI and live in Config; nothing is hardcoded at call sites.
package detection
