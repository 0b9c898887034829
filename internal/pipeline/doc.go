// Package pipeline wires grid detection, cell cropping, label OCR and
// deduplication into the document-level component inventory run.
//
// Pages are independent: geometry and OCR run per page with no shared
// mutable state, so pages are processed by a bounded pool of parallel
// workers. Deduplication, by contrast, is inherently sequential (counts
// and representative selection depend on input order), so the per-page
// records are concatenated in page order and fed to the engine in a single
// sequential pass at the end.
package pipeline
