package srcrange

import (
	"sort"
	"strings"
)

// NewlineIndex holds the 0-based byte offsets of every '\n' in a text, in
// strictly increasing order. It is the basis for all offset and position
// conversions over that text.
type NewlineIndex []int

// BuildNewlineIndex scans contents once and records every newline offset.
func BuildNewlineIndex(contents string) NewlineIndex {
	index := make(NewlineIndex, 0, strings.Count(contents, "\n"))
	for offset := 0; offset < len(contents); {
		next := strings.IndexByte(contents[offset:], '\n')
		if next < 0 {
			break
		}
		index = append(index, offset+next)
		offset += next + 1
	}
	return index
}

// Position converts a byte offset into a line and column.
//
// The offset of a newline belongs to the line that newline terminates, so its
// column equals the length of that line. The offset one past the end of the
// text is valid and yields the end-of-file position. Negative offsets clamp to 0.
func (ix NewlineIndex) Position(offset int) SourcePosition {
	if offset < 0 {
		offset = 0
	}

	// Number of newlines strictly before offset.
	line := sort.SearchInts(ix, offset)
	if line == 0 {
		return SourcePosition{Line: 0, Column: offset}
	}
	return SourcePosition{Line: line, Column: offset - (ix[line-1] + 1)}
}

// LineStart returns the offset of the first byte of line.
func (ix NewlineIndex) LineStart(line int) (int, bool) {
	if line < 0 || line > len(ix) {
		return 0, false
	}
	if line == 0 {
		return 0, true
	}
	return ix[line-1] + 1, true
}

// Offset converts a position back into a byte offset within a text of the
// given length. It reports false for positions that do not name a line of the
// text; positions that land beyond the text are clamped to length and also
// report false.
func (ix NewlineIndex) Offset(pos SourcePosition, length int) (int, bool) {
	if !pos.IsValid() {
		return 0, false
	}
	start, ok := ix.LineStart(pos.Line)
	if !ok {
		return 0, false
	}
	offset := start + pos.Column
	if offset > length {
		return length, false
	}
	return offset, true
}

// End returns the position just past the last byte of a text of the given length.
func (ix NewlineIndex) End(length int) SourcePosition {
	if len(ix) == 0 {
		return SourcePosition{Line: 0, Column: length}
	}
	return SourcePosition{Line: len(ix), Column: length - (ix[len(ix)-1] + 1)}
}
