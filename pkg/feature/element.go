package feature

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/jsdoc"
	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// Warning codes produced when resolving properties and elements.
const (
	CodeInvalidPropertyType = "invalid-property-type"
	CodeInvalidElementName  = "invalid-element-name"
	CodeMissingTagName      = "missing-tag-name"
)

// KindPolymerProperty and KindPolymerElement are the extra kinds of
// features declared through framework configuration.
const (
	KindPolymerProperty = "polymer-property"
	KindPolymerElement  = "polymer-element"
)

// propertyTypes are the declared property types that resolve cleanly. The
// empty type means undeclared.
//
//nolint:gochecknoglobals // read-only table
var propertyTypes = map[string]bool{
	"":         true,
	"String":   true,
	"Number":   true,
	"Boolean":  true,
	"Array":    true,
	"Object":   true,
	"Date":     true,
	"Function": true,
	"string":   true,
	"number":   true,
	"boolean":  true,
	"Element":  true,
}

// ScannedProperty is a property found by a scanner.
type ScannedProperty struct {
	Name               string
	Type               string
	Description        string
	Privacy            Privacy
	Default            string
	ReadOnly           bool
	Notify             bool
	ReflectToAttribute bool
	Observer           string
	Computed           string

	// Polymer marks properties declared in a framework properties config.
	Polymer bool

	JSDoc       *jsdoc.Annotation
	SourceRange srcrange.SourceRange
	ASTNode     any
	Warnings    []Warning
}

// Kind returns KindProperty.
func (s *ScannedProperty) Kind() Kind { return KindProperty }

// Resolve produces the Property for s.
func (s *ScannedProperty) Resolve(doc document.Document) Feature {
	return s.resolve(doc)
}

func (s *ScannedProperty) resolve(doc document.Document) *Property {
	r := resolveRange(s.SourceRange, doc)
	warnings := slices.Clone(s.Warnings)

	if !validPropertyType(s.Type) {
		warnings = append(warnings, warning(CodeInvalidPropertyType,
			fmt.Sprintf("property %s has unrecognized type %q", s.Name, s.Type), r))
	}

	kinds := []string{string(KindProperty)}
	if s.Polymer {
		kinds = append(kinds, KindPolymerProperty)
	}
	privacy := s.Privacy
	if privacy == "" {
		privacy = PrivacyFromName(s.Name)
	}

	return &Property{
		base: base{
			name:        s.Name,
			kinds:       NewSet(kinds...),
			identifiers: NewSet(s.Name),
			sourceRange: r,
			astNode:     s.ASTNode,
			warnings:    warnings,
		},
		typ:                s.Type,
		description:        s.Description,
		privacy:            privacy,
		defaultValue:       s.Default,
		readOnly:           s.ReadOnly,
		notify:             s.Notify,
		reflectToAttribute: s.ReflectToAttribute,
		observer:           s.Observer,
		computed:           s.Computed,
	}
}

// validPropertyType accepts the known types, their array forms such as
// "Array<string>" or "string[]", and nullable or non-null markers.
func validPropertyType(typ string) bool {
	typ = strings.TrimLeft(typ, "!?")
	if propertyTypes[typ] {
		return true
	}
	if strings.HasSuffix(typ, "[]") {
		return validPropertyType(strings.TrimSuffix(typ, "[]"))
	}
	if inner, ok := strings.CutPrefix(typ, "Array<"); ok && strings.HasSuffix(inner, ">") {
		return validPropertyType(strings.TrimSuffix(inner, ">"))
	}
	return false
}

// Property is a resolved property.
type Property struct {
	base

	typ                string
	description        string
	privacy            Privacy
	defaultValue       string
	readOnly           bool
	notify             bool
	reflectToAttribute bool
	observer           string
	computed           string
}

// Kind returns KindProperty.
func (p *Property) Kind() Kind { return KindProperty }

func (p *Property) Type() string             { return p.typ }
func (p *Property) Description() string      { return p.description }
func (p *Property) Privacy() Privacy         { return p.privacy }
func (p *Property) Default() string          { return p.defaultValue }
func (p *Property) ReadOnly() bool           { return p.readOnly }
func (p *Property) Notify() bool             { return p.notify }
func (p *Property) ReflectToAttribute() bool { return p.reflectToAttribute }
func (p *Property) Observer() string         { return p.observer }
func (p *Property) Computed() string         { return p.computed }

func (p *Property) String() string {
	if p.typ == "" {
		return "property " + p.name
	}
	return fmt.Sprintf("property %s: %s", p.name, p.typ)
}

// ScannedElement is a custom element class found by a scanner.
type ScannedElement struct {
	TagName     string
	ClassName   string
	Description string
	Summary     string
	Privacy     Privacy
	Properties  []ScannedProperty
	JSDoc       *jsdoc.Annotation
	SourceRange srcrange.SourceRange
	ASTNode     any
	Warnings    []Warning
}

// Kind returns KindElement.
func (s *ScannedElement) Kind() Kind { return KindElement }

// Resolve produces the Element for s. Its properties resolve against the
// same document.
func (s *ScannedElement) Resolve(doc document.Document) Feature {
	r := resolveRange(s.SourceRange, doc)
	warnings := slices.Clone(s.Warnings)

	switch {
	case s.TagName == "":
		warnings = append(warnings, warning(CodeMissingTagName,
			fmt.Sprintf("element %s does not declare a tag name", s.displayName()), r))
	case !strings.Contains(s.TagName, "-"):
		warnings = append(warnings, warning(CodeInvalidElementName,
			fmt.Sprintf("tag name %q must contain a hyphen", s.TagName), r))
	}

	props := make([]*Property, len(s.Properties))
	for i := range s.Properties {
		props[i] = s.Properties[i].resolve(doc)
	}

	privacy := s.Privacy
	if privacy == "" {
		privacy = PrivacyFromName(s.ClassName)
	}

	return &Element{
		base: base{
			name:        s.displayName(),
			kinds:       NewSet(string(KindElement), KindPolymerElement),
			identifiers: NewSet(s.TagName, s.ClassName),
			sourceRange: r,
			astNode:     s.ASTNode,
			warnings:    warnings,
		},
		tagName:     s.TagName,
		className:   s.ClassName,
		description: s.Description,
		summary:     s.Summary,
		privacy:     privacy,
		properties:  props,
	}
}

func (s *ScannedElement) displayName() string {
	if s.TagName != "" {
		return s.TagName
	}
	return s.ClassName
}

// Element is a resolved custom element.
type Element struct {
	base

	tagName     string
	className   string
	description string
	summary     string
	privacy     Privacy
	properties  []*Property
}

// Kind returns KindElement.
func (e *Element) Kind() Kind { return KindElement }

func (e *Element) TagName() string     { return e.tagName }
func (e *Element) ClassName() string   { return e.className }
func (e *Element) Description() string { return e.description }
func (e *Element) Summary() string     { return e.summary }
func (e *Element) Privacy() Privacy    { return e.privacy }

// Properties returns the element's resolved properties.
func (e *Element) Properties() []*Property { return slices.Clone(e.properties) }

func (e *Element) String() string {
	switch {
	case e.tagName != "" && e.className != "":
		return fmt.Sprintf("element <%s> (%s)", e.tagName, e.className)
	case e.tagName != "":
		return fmt.Sprintf("element <%s>", e.tagName)
	default:
		return "element " + e.className
	}
}
