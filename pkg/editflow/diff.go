package editflow

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// Segment is one run of the display diff between committed and proposed text.
// The diff is render-only: the commit payload is always the full proposed
// text, never a patch.
type Segment struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// Diff computes the display diff with semantic cleanup so word boundaries
// survive instead of single-character noise.
func Diff(committed, proposed string) []Segment {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(committed, proposed, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	segments := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		default:
			op = OpEqual
		}
		segments = append(segments, Segment{Op: op, Text: d.Text})
	}
	return segments
}
