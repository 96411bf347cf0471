// Package srcrange provides source positions, ranges, and the coordinate
// arithmetic used to map offsets and nested fragments back to their files.
package srcrange

import (
	"cmp"
	"fmt"
)

// SourcePosition is a 0-based line and column within a file's text.
// Columns count bytes from the start of the line.
type SourcePosition struct {
	Line   int `json:"line" msgpack:"line"`
	Column int `json:"column" msgpack:"column"`
}

// Compare orders positions by line, then column.
// It returns -1, 0, or +1.
func (p SourcePosition) Compare(other SourcePosition) int {
	if c := cmp.Compare(p.Line, other.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, other.Column)
}

// Before reports whether p sorts strictly before other.
func (p SourcePosition) Before(other SourcePosition) bool {
	return p.Compare(other) < 0
}

// IsValid returns true if both line and column are non-negative.
func (p SourcePosition) IsValid() bool {
	return p.Line >= 0 && p.Column >= 0
}

// String renders the position 1-based, as editors display it.
func (p SourcePosition) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// SourceRange is the half-open region [Start, End) of the file named by File.
// File is always a resolvable document URL, which is not necessarily the URL
// of the fragment that produced the range.
type SourceRange struct {
	File  string         `json:"file" msgpack:"file"`
	Start SourcePosition `json:"start" msgpack:"start"`
	End   SourcePosition `json:"end" msgpack:"end"`
}

// IsEmpty returns true if the range covers no text.
func (r SourceRange) IsEmpty() bool {
	return r.Start.Compare(r.End) >= 0
}

// Contains returns true if pos lies within [Start, End).
func (r SourceRange) Contains(pos SourcePosition) bool {
	return r.Start.Compare(pos) <= 0 && pos.Compare(r.End) < 0
}

// ContainsRange returns true if other lies entirely within r and names the same file.
func (r SourceRange) ContainsRange(other SourceRange) bool {
	return r.File == other.File &&
		r.Start.Compare(other.Start) <= 0 &&
		other.End.Compare(r.End) <= 0
}

// String renders the range as file:L:C-L:C using 1-based numbers.
func (r SourceRange) String() string {
	return fmt.Sprintf("%s:%s-%s", r.File, r.Start, r.End)
}
