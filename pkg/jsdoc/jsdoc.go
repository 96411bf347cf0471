// Package jsdoc parses /** */ documentation comments into a description and
// a list of block tags.
package jsdoc

import (
	"strings"
)

// Annotation is a parsed doc comment.
type Annotation struct {
	Description string
	Tags        []Tag
}

// Tag is a single block tag such as "@param {string} name the name".
type Tag struct {
	Title       string
	Type        string
	Name        string
	Default     string
	Optional    bool
	Description string
}

//nolint:gochecknoglobals // read-only tables
var (
	typedTags = map[string]bool{
		"param": true, "arg": true, "argument": true,
		"property": true, "prop": true,
		"return": true, "returns": true,
		"type": true, "typedef": true,
	}
	namedTags = map[string]bool{
		"param": true, "arg": true, "argument": true,
		"property": true, "prop": true,
	}
	privacyTags = []string{"public", "protected", "private"}
)

// Parse parses comment. The /** and */ delimiters and the leading asterisk
// of each line are optional.
func Parse(comment string) *Annotation {
	lines := commentLines(comment)

	ann := &Annotation{}
	var description []string
	var current *tagBuilder

	flush := func() {
		if current != nil {
			ann.Tags = append(ann.Tags, current.build())
			current = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") && len(trimmed) > 1 {
			flush()
			current = newTagBuilder(trimmed[1:])
			continue
		}
		if current != nil {
			current.body = append(current.body, trimmed)
			continue
		}
		description = append(description, trimmed)
	}
	flush()

	ann.Description = joinLines(description)
	return ann
}

// commentLines strips the comment delimiters and line prefixes.
func commentLines(comment string) []string {
	text := strings.TrimSpace(comment)
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")

	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimLeft(line, " \t")
		if strings.HasPrefix(line, "*") {
			line = strings.TrimPrefix(line[1:], " ")
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return out
}

// joinLines joins lines with newlines, dropping leading and trailing blanks.
func joinLines(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

type tagBuilder struct {
	tag  Tag
	body []string
}

func newTagBuilder(text string) *tagBuilder {
	title, rest, _ := strings.Cut(text, " ")
	if i := strings.IndexAny(title, "\t{"); i >= 0 {
		title, rest = title[:i], title[i:]+" "+rest
	}
	b := &tagBuilder{tag: Tag{Title: title}}
	rest = strings.TrimSpace(rest)

	if typedTags[title] && strings.HasPrefix(rest, "{") {
		if typ, after, ok := cutType(rest); ok {
			b.tag.Type = typ
			rest = strings.TrimSpace(after)
		}
	}
	if namedTags[title] {
		rest = b.parseName(rest)
	}

	b.body = append(b.body, rest)
	return b
}

// cutType splits a leading balanced {type} expression off s.
func cutType(s string) (string, string, bool) {
	depth := 0
	for i := range len(s) {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[1:i]), s[i+1:], true
			}
		}
	}
	return "", s, false
}

// parseName reads "name" or "[name=default]" off rest and returns what is
// left, with an optional leading "-" separator removed.
func (b *tagBuilder) parseName(rest string) string {
	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return rest
		}
		name, def, _ := strings.Cut(rest[1:end], "=")
		b.tag.Name = strings.TrimSpace(name)
		b.tag.Default = strings.TrimSpace(def)
		b.tag.Optional = true
		rest = rest[end+1:]
	} else {
		name, after, _ := strings.Cut(rest, " ")
		b.tag.Name = name
		rest = after
	}

	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, "- ")
	return strings.TrimSpace(rest)
}

func (b *tagBuilder) build() Tag {
	b.tag.Description = joinLines(b.body)
	return b.tag
}

// Tag returns the first tag with title, or nil.
func (a *Annotation) Tag(title string) *Tag {
	if a == nil {
		return nil
	}
	for i := range a.Tags {
		if a.Tags[i].Title == title {
			return &a.Tags[i]
		}
	}
	return nil
}

// TagsNamed returns every tag with one of titles, in comment order.
func (a *Annotation) TagsNamed(titles ...string) []Tag {
	if a == nil {
		return nil
	}
	var out []Tag
	for _, tag := range a.Tags {
		for _, title := range titles {
			if tag.Title == title {
				out = append(out, tag)
				break
			}
		}
	}
	return out
}

// Has reports whether a tag with title is present.
func (a *Annotation) Has(title string) bool {
	return a.Tag(title) != nil
}

// Privacy returns the privacy declared by @public, @protected, @private,
// or @access.
func (a *Annotation) Privacy() (string, bool) {
	if a == nil {
		return "", false
	}
	for _, tag := range a.Tags {
		for _, p := range privacyTags {
			if tag.Title == p {
				return p, true
			}
		}
		if tag.Title == "access" {
			level, _, _ := strings.Cut(tag.Description, " ")
			for _, p := range privacyTags {
				if level == p {
					return p, true
				}
			}
		}
	}
	return "", false
}

// Summary returns the text of the @summary tag.
func (a *Annotation) Summary() string {
	if tag := a.Tag("summary"); tag != nil {
		return tag.Description
	}
	return ""
}
