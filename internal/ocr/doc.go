// Package ocr reads component identifier labels from cell crops.
//
// Labels are short uppercase alphanumeric codes (C16, F2, Q10) printed in a
// dedicated identifier column next to each component cell. Recognition uses
// Tesseract through gosseract in single-line mode with a restricted
// character whitelist and dictionary correction disabled, since the codes
// are not words.
//
// The gosseract binding requires cgo and an installed Tesseract; the
// Tesseract reader therefore lives behind a cgo build tag with a stub that
// returns an error in non-cgo builds. Everything else in the package,
// including preprocessing and the worker pool, is pure Go so the pipeline
// can be tested with a fake Reader.
//
// A failed, empty or timed-out read is not an error to the pipeline: it
// surfaces as an empty label, which the deduplication engine treats as an
// ordinary value.
package ocr
