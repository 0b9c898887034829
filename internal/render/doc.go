// Package render covers the document I/O around the analysis core:
// rasterizing PDF documents to page images via pdftoppm, painting detected
// cell boundaries onto pages for visual inspection, and emitting the final
// component inventory as an HTML report.
package render
