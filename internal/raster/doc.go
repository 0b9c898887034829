// Package raster handles page images for the component extraction pipeline.
//
// It covers three concerns:
//
//   - Loading and caching decoded page images from disk (PNG, JPEG, GIF).
//   - Converting a color page to a grayscale intensity raster, which is what
//     the grid detection in internal/detection operates on.
//   - Cropping detected cell boxes out of the original color page and,
//     optionally, persisting the crops to disk for auditing.
//
// All coordinates are 0-based with the origin at the top-left corner.
// Rectangles follow the standard Go convention: Min is inclusive, Max is
// exclusive.
//
// A page raster is treated as immutable for the duration of one page's
// processing. Functions in this package never retain or alias the pixel
// data of their inputs.
package raster
