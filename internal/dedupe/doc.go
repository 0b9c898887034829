// Package dedupe clusters extracted component cells into unique components.
//
// The input is the document-ordered sequence of (cell image, label) records
// produced by the extraction pipeline. Clustering is greedy, single-pass and
// online: each record either joins the first existing group whose label
// matches and whose representative image it resembles, or founds a new group.
// The first record of a group stays its representative forever, so results
// are strictly order-dependent and the engine must be fed sequentially in
// document order. Label equality is a mandatory pre-filter: two records with
// different labels never merge, no matter how similar they look. Empty
// labels (failed OCR reads) are ordinary values and cluster with each other.
//
// Visual similarity is pluggable via the Similarity interface; the four
// implementations (perceptual hash, exact pixels, tolerant pixel diff, ORB
// feature matching) are mutually exclusive per run and selected through
// Config.
//
// Cost is O(n*k) comparisons for n cells and k groups found so far. k stays
// in the tens for real documents, so the quadratic worst case is acceptable.
package dedupe
