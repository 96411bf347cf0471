package jsdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docmodel/pkg/jsdoc"
)

func TestParse_DescriptionAndTags(t *testing.T) {
	t.Parallel()

	ann := jsdoc.Parse(`/**
	 * Adds two numbers.
	 *
	 * Works on integers.
	 * @param {number} a the first
	 * @param {number} b - the second
	 *   continued
	 * @returns {number} the sum
	 */`)

	assert.Equal(t, "Adds two numbers.\n\nWorks on integers.", ann.Description)
	require.Len(t, ann.Tags, 3)

	assert.Equal(t, jsdoc.Tag{Title: "param", Type: "number", Name: "a", Description: "the first"}, ann.Tags[0])
	assert.Equal(t, jsdoc.Tag{Title: "param", Type: "number", Name: "b", Description: "the second\ncontinued"}, ann.Tags[1])
	assert.Equal(t, jsdoc.Tag{Title: "returns", Type: "number", Description: "the sum"}, ann.Tags[2])
}

func TestParse_TagForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		comment string
		want    jsdoc.Tag
	}{
		{
			name:    "balanced braces in type",
			comment: "/** @param {{a: number, b: {c: string}}} opts options */",
			want:    jsdoc.Tag{Title: "param", Type: "{a: number, b: {c: string}}", Name: "opts", Description: "options"},
		},
		{
			name:    "optional with default",
			comment: "/** @param {string} [mode=fast] how */",
			want: jsdoc.Tag{
				Title: "param", Type: "string", Name: "mode", Default: "fast",
				Optional: true, Description: "how",
			},
		},
		{
			name:    "no type",
			comment: "/** @param value */",
			want:    jsdoc.Tag{Title: "param", Name: "value"},
		},
		{
			name:    "no name",
			comment: "/** @param {string} */",
			want:    jsdoc.Tag{Title: "param", Type: "string"},
		},
		{
			name:    "untyped tag keeps braces",
			comment: "/** @customElement {x-foo} */",
			want:    jsdoc.Tag{Title: "customElement", Description: "{x-foo}"},
		},
		{
			name:    "type tag",
			comment: "/** @type {!Array<string>} */",
			want:    jsdoc.Tag{Title: "type", Type: "!Array<string>"},
		},
		{
			name:    "unbalanced type",
			comment: "/** @param {string name */",
			want:    jsdoc.Tag{Title: "param", Name: "{string", Description: "name"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ann := jsdoc.Parse(tc.comment)
			require.Len(t, ann.Tags, 1)
			assert.Equal(t, tc.want, ann.Tags[0])
		})
	}
}

func TestAnnotation_Helpers(t *testing.T) {
	t.Parallel()

	ann := jsdoc.Parse(`/**
 * Element.
 * @summary A short one.
 * @protected
 * @property {string} a
 * @prop {number} b
 */`)

	assert.True(t, ann.Has("protected"))
	assert.False(t, ann.Has("private"))
	assert.Equal(t, "A short one.", ann.Summary())

	privacy, ok := ann.Privacy()
	assert.True(t, ok)
	assert.Equal(t, "protected", privacy)

	props := ann.TagsNamed("property", "prop")
	require.Len(t, props, 2)
	assert.Equal(t, "a", props[0].Name)
	assert.Equal(t, "b", props[1].Name)

	require.NotNil(t, ann.Tag("prop"))
	assert.Nil(t, ann.Tag("missing"))
}

func TestAnnotation_AccessTag(t *testing.T) {
	t.Parallel()

	privacy, ok := jsdoc.Parse("/** @access private */").Privacy()
	assert.True(t, ok)
	assert.Equal(t, "private", privacy)

	_, ok = jsdoc.Parse("/** @access nobody */").Privacy()
	assert.False(t, ok)
}

func TestAnnotation_Nil(t *testing.T) {
	t.Parallel()

	var ann *jsdoc.Annotation
	assert.Nil(t, ann.Tag("x"))
	assert.Nil(t, ann.TagsNamed("x"))
	assert.False(t, ann.Has("x"))
	assert.Empty(t, ann.Summary())
	_, ok := ann.Privacy()
	assert.False(t, ok)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	ann := jsdoc.Parse("/** */")
	assert.Empty(t, ann.Description)
	assert.Empty(t, ann.Tags)
}
