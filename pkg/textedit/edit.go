// Package textedit applies byte-range replacements to text and renders the
// result as a unified diff.
package textedit

import (
	"fmt"
	"slices"
	"strings"
)

// Edit replaces the bytes [Start, End) of a text with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Replace returns an edit that replaces [start, end) with text.
func Replace(start, end int, text string) Edit {
	return Edit{Start: start, End: end, Text: text}
}

// Insert returns an edit that inserts text at offset.
func Insert(offset int, text string) Edit {
	return Edit{Start: offset, End: offset, Text: text}
}

// RangeError reports an edit that does not fit the text it applies to.
type RangeError struct {
	Edit    Edit
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError reports two edits whose ranges overlap. First starts
// no later than Second.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Prepare checks edits against a text of length n and returns a sorted
// copy. Two insertions at the same offset are allowed and keep their order.
func Prepare(edits []Edit, n int) ([]Edit, error) {
	for _, e := range edits {
		switch {
		case e.Start < 0:
			return nil, &RangeError{Edit: e, Message: "start is negative"}
		case e.End < e.Start:
			return nil, &RangeError{Edit: e, Message: "end is before start"}
		case e.End > n:
			return nil, &RangeError{Edit: e, Message: fmt.Sprintf("end exceeds length %d", n)}
		}
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			return nil, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}

// Apply returns text with edits applied. Edits may be given in any order.
func Apply(text string, edits []Edit) (string, error) {
	sorted, err := Prepare(edits, len(text))
	if err != nil {
		return "", err
	}
	if len(sorted) == 0 {
		return text, nil
	}

	size := len(text)
	for _, e := range sorted {
		size += len(e.Text) - (e.End - e.Start)
	}

	var out strings.Builder
	out.Grow(size)
	cursor := 0
	for _, e := range sorted {
		out.WriteString(text[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.WriteString(text[cursor:])
	return out.String(), nil
}
