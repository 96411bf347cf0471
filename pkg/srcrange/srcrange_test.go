package srcrange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docmodel/pkg/srcrange"
)

func pos(line, column int) srcrange.SourcePosition {
	return srcrange.SourcePosition{Line: line, Column: column}
}

func TestBuildNewlineIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
		want     srcrange.NewlineIndex
	}{
		{name: "empty", contents: "", want: srcrange.NewlineIndex{}},
		{name: "no newline", contents: "abc", want: srcrange.NewlineIndex{}},
		{name: "three lines", contents: "a\nbb\nccc", want: srcrange.NewlineIndex{1, 4}},
		{name: "leading newline", contents: "\nabc", want: srcrange.NewlineIndex{0}},
		{name: "trailing newline", contents: "abc\n", want: srcrange.NewlineIndex{3}},
		{name: "blank lines", contents: "\n\n\n", want: srcrange.NewlineIndex{0, 1, 2}},
		{name: "crlf", contents: "a\r\nb", want: srcrange.NewlineIndex{2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, srcrange.BuildNewlineIndex(tc.contents))
		})
	}
}

func TestNewlineIndex_Position(t *testing.T) {
	t.Parallel()

	contents := "a\nbb\nccc"
	index := srcrange.BuildNewlineIndex(contents)

	tests := []struct {
		offset int
		want   srcrange.SourcePosition
	}{
		{offset: 0, want: pos(0, 0)},
		{offset: 1, want: pos(0, 1)}, // the newline terminating line 0
		{offset: 2, want: pos(1, 0)},
		{offset: 4, want: pos(1, 2)},
		{offset: 5, want: pos(2, 0)},
		{offset: 6, want: pos(2, 1)},
		{offset: 8, want: pos(2, 3)}, // end of file
		{offset: -3, want: pos(0, 0)},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, index.Position(tc.offset), "offset %d", tc.offset)
	}
}

func TestNewlineIndex_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"x",
		"\n",
		"a\nbb\nccc",
		"first line\n\n  third\n",
		"\r\nwindows\r\nline endings",
		"unicode: héllo\nwörld",
	}

	for _, contents := range inputs {
		index := srcrange.BuildNewlineIndex(contents)
		for offset := 0; offset <= len(contents); offset++ {
			got, ok := index.Offset(index.Position(offset), len(contents))
			require.True(t, ok, "contents %q offset %d", contents, offset)
			assert.Equal(t, offset, got, "contents %q", contents)
		}
	}
}

func TestNewlineIndex_Offset(t *testing.T) {
	t.Parallel()

	contents := "a\nbb\nccc"
	index := srcrange.BuildNewlineIndex(contents)

	tests := []struct {
		name   string
		pos    srcrange.SourcePosition
		want   int
		wantOK bool
	}{
		{name: "origin", pos: pos(0, 0), want: 0, wantOK: true},
		{name: "second line", pos: pos(1, 1), want: 3, wantOK: true},
		{name: "end of file", pos: pos(2, 3), want: 8, wantOK: true},
		{name: "past end clamps", pos: pos(2, 10), want: 8, wantOK: false},
		{name: "line beyond text", pos: pos(3, 0), want: 0, wantOK: false},
		{name: "negative column", pos: pos(0, -1), want: 0, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := index.Offset(tc.pos, len(contents))
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewlineIndex_End(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pos(0, 0), srcrange.BuildNewlineIndex("").End(0))
	assert.Equal(t, pos(2, 3), srcrange.BuildNewlineIndex("a\nbb\nccc").End(8))
	assert.Equal(t, pos(1, 0), srcrange.BuildNewlineIndex("abc\n").End(4))
	assert.Equal(t, pos(1, 3), srcrange.BuildNewlineIndex("\nabc").End(4))
}

func TestCorrect(t *testing.T) {
	t.Parallel()

	local := srcrange.SourceRange{File: "page.md", Start: pos(0, 2), End: pos(1, 0)}

	t.Run("line zero column shift only", func(t *testing.T) {
		t.Parallel()
		got := srcrange.Correct(local, &srcrange.LocationOffset{Line: 3, Col: 5})
		assert.Equal(t, srcrange.SourceRange{File: "page.md", Start: pos(3, 7), End: pos(4, 0)}, got)
	})

	t.Run("nil offset is identity", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, local, srcrange.Correct(local, nil))
	})

	t.Run("filename override", func(t *testing.T) {
		t.Parallel()
		got := srcrange.Correct(local, &srcrange.LocationOffset{Line: 1, Filename: "other.html"})
		assert.Equal(t, "other.html", got.File)
		assert.Equal(t, pos(1, 2), got.Start)
	})

	t.Run("input unchanged", func(t *testing.T) {
		t.Parallel()
		before := local
		srcrange.Correct(local, &srcrange.LocationOffset{Line: 9, Col: 9})
		assert.Equal(t, before, local)
	})
}

func TestUncorrect_InvertsCorrect(t *testing.T) {
	t.Parallel()

	offsets := []*srcrange.LocationOffset{
		nil,
		{Line: 0, Col: 0},
		{Line: 3, Col: 5},
		{Line: 12, Col: 40, Filename: "outer.md"},
	}
	ranges := []srcrange.SourceRange{
		{File: "inner.js", Start: pos(0, 0), End: pos(0, 0)},
		{File: "inner.js", Start: pos(0, 2), End: pos(1, 0)},
		{File: "inner.js", Start: pos(2, 4), End: pos(7, 1)},
		{File: "inner.js", Start: pos(0, 9), End: pos(0, 15)},
	}

	for _, offset := range offsets {
		for _, r := range ranges {
			got := srcrange.Uncorrect(srcrange.Correct(r, offset), offset, "inner.js")
			assert.Equal(t, r, got)
		}
	}
}

func TestSourceRange_Contains(t *testing.T) {
	t.Parallel()

	r := srcrange.SourceRange{File: "f", Start: pos(1, 2), End: pos(3, 0)}

	assert.True(t, r.Contains(pos(1, 2)))
	assert.True(t, r.Contains(pos(2, 99)))
	assert.False(t, r.Contains(pos(3, 0)))
	assert.False(t, r.Contains(pos(1, 1)))
	assert.False(t, r.IsEmpty())
	assert.True(t, srcrange.SourceRange{Start: pos(4, 4), End: pos(4, 4)}.IsEmpty())

	inner := srcrange.SourceRange{File: "f", Start: pos(2, 0), End: pos(2, 5)}
	assert.True(t, r.ContainsRange(inner))
	inner.File = "g"
	assert.False(t, r.ContainsRange(inner))
}

func TestSourceRange_String(t *testing.T) {
	t.Parallel()

	r := srcrange.SourceRange{File: "doc.md", Start: pos(0, 0), End: pos(2, 4)}
	assert.Equal(t, "doc.md:1:1-3:5", r.String())
}
