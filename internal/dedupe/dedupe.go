package dedupe

import (
	"fmt"
	"image"
)

// Record is one extracted component occurrence: the cropped cell image and
// the label read from its identifier region. Page and Index locate the cell
// in the document and exist for logging; they play no part in clustering.
type Record struct {
	Image image.Image
	Label string
	Page  int
	Index int
}

// Group is an accumulated cluster of occurrences considered the same
// component. Image is the representative: the first occurrence seen, never
// replaced. Count only grows.
type Group struct {
	Image image.Image
	Label string
	Count int
	Page  int
	Index int
}

// Engine performs greedy single-pass online clustering of component records.
//
// Groups are held in creation order and scanned in that order on every Add,
// so first match wins and results are deterministic for a given input order.
// Engine is not safe for concurrent use; the clustering semantics are
// inherently sequential.
type Engine struct {
	similar Similarity
	groups  []Group
}

// NewEngine creates an engine using the given visual similarity test.
func NewEngine(similar Similarity) *Engine {
	return &Engine{similar: similar}
}

// Add clusters one record, either incrementing the count of the first
// matching group or creating a new one.
//
// Existing groups are scanned in creation order. A group is a match when
// its label equals the record's label and the similarity test accepts the
// record's image against the group's representative; the label check runs
// first so mismatched labels never reach the image comparison.
func (e *Engine) Add(rec Record) error {
	for i := range e.groups {
		g := &e.groups[i]
		if g.Label != rec.Label {
			continue
		}
		same, err := e.similar.Similar(rec.Image, g.Image)
		if err != nil {
			return fmt.Errorf("comparing cell p%d/#%d to group %d: %w", rec.Page, rec.Index, i, err)
		}
		if same {
			g.Count++
			return nil
		}
	}

	e.groups = append(e.groups, Group{
		Image: rec.Image,
		Label: rec.Label,
		Count: 1,
		Page:  rec.Page,
		Index: rec.Index,
	})
	return nil
}

// AddAll clusters the records in the order given.
func (e *Engine) AddAll(records []Record) error {
	for _, rec := range records {
		if err := e.Add(rec); err != nil {
			return err
		}
	}
	return nil
}

// Groups returns the unique groups in creation order. The returned slice is
// a copy; mutating it does not affect the engine.
func (e *Engine) Groups() []Group {
	out := make([]Group, len(e.groups))
	copy(out, e.groups)
	return out
}

// Len returns the number of unique groups found so far.
func (e *Engine) Len() int {
	return len(e.groups)
}
