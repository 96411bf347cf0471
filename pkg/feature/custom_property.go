package feature

import (
	"slices"

	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// ScannedCustomProperty is a CSS custom property declaration.
type ScannedCustomProperty struct {
	Name        string
	Value       string
	SourceRange srcrange.SourceRange
	ASTNode     any
	Warnings    []Warning
}

// Kind returns KindCustomProperty.
func (s *ScannedCustomProperty) Kind() Kind { return KindCustomProperty }

// Resolve produces the CustomProperty for s.
func (s *ScannedCustomProperty) Resolve(doc document.Document) Feature {
	return &CustomProperty{
		base: base{
			name:        s.Name,
			kinds:       NewSet(string(KindCustomProperty)),
			identifiers: NewSet(s.Name),
			sourceRange: resolveRange(s.SourceRange, doc),
			astNode:     s.ASTNode,
			warnings:    slices.Clone(s.Warnings),
		},
		value: s.Value,
	}
}

// CustomProperty is a resolved CSS custom property.
type CustomProperty struct {
	base

	value string
}

// Kind returns KindCustomProperty.
func (c *CustomProperty) Kind() Kind { return KindCustomProperty }

// Value returns the declared value text.
func (c *CustomProperty) Value() string { return c.value }

func (c *CustomProperty) String() string {
	return "css-custom-property " + c.name + ": " + c.value
}
