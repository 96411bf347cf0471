package feature

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/jsdoc"
	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// Warning codes produced when resolving functions.
const (
	CodeMalformedParam  = "malformed-param"
	CodeUnknownParam    = "unknown-param"
	CodeUnnamedFunction = "unnamed-function"
)

// Param is a function parameter. Rest parameters keep their "..." prefix.
type Param struct {
	Name        string `json:"name" msgpack:"name"`
	Type        string `json:"type,omitempty" msgpack:"type,omitempty"`
	Description string `json:"description,omitempty" msgpack:"description,omitempty"`
}

// Return describes a function's return value.
type Return struct {
	Type        string `json:"type,omitempty" msgpack:"type,omitempty"`
	Description string `json:"desc" msgpack:"desc"`
}

// ScannedFunction is a function found by a scanner. Params come from the
// signature; JSDoc holds the documentation they are checked against.
type ScannedFunction struct {
	Name        string
	Description string
	Summary     string
	JSDoc       *jsdoc.Annotation
	SourceRange srcrange.SourceRange
	ASTNode     any
	Warnings    []Warning
	Params      []Param
	Return      *Return
	Privacy     Privacy
}

// Kind returns KindFunction.
func (s *ScannedFunction) Kind() Kind { return KindFunction }

// Resolve produces the Function for s.
func (s *ScannedFunction) Resolve(doc document.Document) Feature {
	r := resolveRange(s.SourceRange, doc)
	warnings := slices.Clone(s.Warnings)

	if s.Name == "" {
		warnings = append(warnings, warning(CodeUnnamedFunction, "function has no name", r))
	}

	known := make(map[string]bool, len(s.Params))
	for _, p := range s.Params {
		known[strings.TrimPrefix(p.Name, "...")] = true
	}
	for _, tag := range s.JSDoc.TagsNamed("param", "arg", "argument") {
		if tag.Name == "" {
			warnings = append(warnings, warning(CodeMalformedParam,
				fmt.Sprintf("@%s tag has no parameter name", tag.Title), r))
			continue
		}
		root, _, _ := strings.Cut(tag.Name, ".")
		if !known[root] {
			warnings = append(warnings, warning(CodeUnknownParam,
				fmt.Sprintf("@%s %s does not match any parameter of %s", tag.Title, tag.Name, s.displayName()), r))
		}
	}

	privacy := s.Privacy
	if privacy == "" {
		privacy = PrivacyFromName(s.Name)
	}

	fn := &Function{
		base: base{
			name:        s.Name,
			kinds:       NewSet(string(KindFunction)),
			identifiers: NewSet(s.Name),
			sourceRange: r,
			astNode:     s.ASTNode,
			warnings:    warnings,
		},
		description: s.Description,
		summary:     s.Summary,
		privacy:     privacy,
		params:      slices.Clone(s.Params),
	}
	if s.Return != nil {
		ret := *s.Return
		fn.ret = &ret
	}
	return fn
}

func (s *ScannedFunction) displayName() string {
	if s.Name == "" {
		return "anonymous function"
	}
	return s.Name
}

// Function is a resolved function.
type Function struct {
	base

	description string
	summary     string
	privacy     Privacy
	params      []Param
	ret         *Return
}

// Kind returns KindFunction.
func (f *Function) Kind() Kind { return KindFunction }

func (f *Function) Description() string { return f.description }
func (f *Function) Summary() string     { return f.summary }
func (f *Function) Privacy() Privacy    { return f.privacy }

// Params returns a copy of the parameters.
func (f *Function) Params() []Param { return slices.Clone(f.params) }

// Return returns the documented return value.
func (f *Function) Return() (Return, bool) {
	if f.ret == nil {
		return Return{}, false
	}
	return *f.ret, true
}

func (f *Function) String() string {
	names := make([]string, len(f.params))
	for i, p := range f.params {
		names[i] = p.Name
	}
	return fmt.Sprintf("function %s(%s)", f.name, strings.Join(names, ", "))
}
