package textedit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docmodel/pkg/textedit"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		edits []textedit.Edit
		want  string
	}{
		{"no edits", "abc", nil, "abc"},
		{"replace", "hello world", []textedit.Edit{textedit.Replace(6, 11, "there")}, "hello there"},
		{"insert", "ac", []textedit.Edit{textedit.Insert(1, "b")}, "abc"},
		{"delete", "abbc", []textedit.Edit{textedit.Replace(1, 2, "")}, "abc"},
		{
			name: "unordered",
			text: "one two three",
			edits: []textedit.Edit{
				textedit.Replace(8, 13, "3"),
				textedit.Replace(0, 3, "1"),
				textedit.Replace(4, 7, "2"),
			},
			want: "1 2 3",
		},
		{
			name:  "adjacent",
			text:  "aabb",
			edits: []textedit.Edit{textedit.Replace(2, 4, "B"), textedit.Replace(0, 2, "A")},
			want:  "AB",
		},
		{
			name:  "inserts at one offset keep order",
			text:  "x",
			edits: []textedit.Edit{textedit.Insert(1, "1"), textedit.Insert(1, "2")},
			want:  "x12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := textedit.Apply(tt.text, tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	t.Run("range", func(t *testing.T) {
		t.Parallel()

		for _, e := range []textedit.Edit{
			{Start: -1, End: 0},
			{Start: 2, End: 1},
			{Start: 0, End: 4},
		} {
			_, err := textedit.Apply("abc", []textedit.Edit{e})
			var rerr *textedit.RangeError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, e, rerr.Edit)
		}
	})

	t.Run("conflict", func(t *testing.T) {
		t.Parallel()

		_, err := textedit.Apply("abcdef", []textedit.Edit{
			textedit.Replace(2, 5, "x"),
			textedit.Replace(0, 3, "y"),
		})
		var cerr *textedit.ConflictError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, 0, cerr.First.Start)
		assert.Equal(t, 2, cerr.Second.Start)
		assert.Contains(t, err.Error(), "[0:3] and [2:5]")
	})
}

func TestPrepare_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	edits := []textedit.Edit{textedit.Insert(3, "b"), textedit.Insert(0, "a")}
	sorted, err := textedit.Prepare(edits, 3)
	require.NoError(t, err)

	assert.Equal(t, 0, sorted[0].Start)
	assert.Equal(t, 3, edits[0].Start)
}

func TestUnified(t *testing.T) {
	t.Parallel()

	same, err := textedit.Unified("a.md", "x\n", "x\n")
	require.NoError(t, err)
	assert.Empty(t, same)

	diff, err := textedit.Unified("a.md", "one\ntwo\nthree\n", "one\n2\nthree\n")
	require.NoError(t, err)

	lines := strings.Split(diff, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[0], "--- a/a.md"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "+++ b/a.md"), lines[1])
	assert.Contains(t, diff, "-two\n")
	assert.Contains(t, diff, "+2\n")
}
