// Package polymer recognizes the Polymer element patterns in JavaScript
// syntax trees: static getters on element classes and the properties
// configuration object.
package polymer

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/docmodel/internal/tsnode"
	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/jsdoc"
	"github.com/yaklabco/docmodel/pkg/script"
)

// Warning codes for malformed properties configuration.
const (
	CodeInvalidPropertyKey    = "invalid-property-key"
	CodeInvalidPropertyConfig = "invalid-property-config"
)

// IsClass reports whether node is a class declaration or expression.
func IsClass(node *sitter.Node) bool {
	if node == nil || node.IsNull() {
		return false
	}
	switch node.Type() {
	case "class_declaration", "class":
		return true
	default:
		return false
	}
}

// GetStaticGetterValue returns the expression returned by
// "static get <name>() { return <expr>; }" in the body of class, or the
// initializer of "static <name> = <expr>". It returns nil when the class
// declares neither. Member names are read from doc.
func GetStaticGetterValue(class *sitter.Node, name string, doc *script.Document) *sitter.Node {
	if !IsClass(class) {
		return nil
	}
	body := class.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	for _, member := range tsnode.NamedChildren(body) {
		switch member.Type() {
		case "method_definition":
			// "static get" followed by a newline lexes as one token.
			combined := hasToken(member, "static get")
			if !combined && (!hasToken(member, "static") || !hasToken(member, "get")) {
				continue
			}
			if !memberNamed(member.ChildByFieldName("name"), name, doc) {
				continue
			}
			return returnedExpression(member.ChildByFieldName("body"))
		case "field_definition":
			if !hasToken(member, "static") {
				continue
			}
			if !memberNamed(member.ChildByFieldName("property"), name, doc) {
				continue
			}
			return member.ChildByFieldName("value")
		}
	}
	return nil
}

// GetIsValue returns the tag name declared by the static "is" getter of
// class.
func GetIsValue(class *sitter.Node, doc *script.Document) (string, bool) {
	return doc.StringValue(GetStaticGetterValue(class, "is", doc))
}

// GetProperties returns the properties declared in a properties
// configuration object literal. Entries that cannot be understood still
// produce a property, carrying a warning. A nil or non-object node yields
// an empty slice.
func GetProperties(node *sitter.Node, doc *script.Document) []feature.ScannedProperty {
	props := []feature.ScannedProperty{}
	if node == nil || node.IsNull() || node.Type() != "object" {
		return props
	}

	for _, entry := range tsnode.NamedChildren(node) {
		switch entry.Type() {
		case "pair":
			props = append(props, propertyFromPair(entry, doc))
		case "shorthand_property_identifier":
			prop := newProperty(doc.NodeText(entry), entry, doc)
			prop.Warnings = append(prop.Warnings, warn(CodeInvalidPropertyConfig,
				fmt.Sprintf("property %s has no configuration", prop.Name), entry, doc))
			props = append(props, prop)
		}
	}
	return props
}

func propertyFromPair(pair *sitter.Node, doc *script.Document) feature.ScannedProperty {
	key := pair.ChildByFieldName("key")
	name, ok := propertyKey(key, doc)
	prop := newProperty(name, pair, doc)
	if !ok {
		prop.Name = doc.NodeText(key)
		prop.Warnings = append(prop.Warnings, warn(CodeInvalidPropertyKey,
			fmt.Sprintf("cannot determine property name from %s", doc.NodeText(key)), key, doc))
		return prop
	}

	value := pair.ChildByFieldName("value")
	switch {
	case value == nil:
	case value.Type() == "identifier":
		prop.Type = doc.NodeText(value)
	case value.Type() == "object":
		applyConfig(&prop, value, doc)
	default:
		prop.Warnings = append(prop.Warnings, warn(CodeInvalidPropertyConfig,
			fmt.Sprintf("property %s must be configured with a type or an object", name), value, doc))
	}

	if prop.Type == "" && prop.JSDoc != nil {
		if tag := prop.JSDoc.Tag("type"); tag != nil {
			prop.Type = tag.Type
		}
	}
	return prop
}

// newProperty starts a property for the entry at node, applying its doc
// comment.
func newProperty(name string, node *sitter.Node, doc *script.Document) feature.ScannedProperty {
	prop := feature.ScannedProperty{
		Name:    name,
		Polymer: true,
		ASTNode: node,
	}
	if r, ok := doc.SourceRangeForNode(node); ok {
		prop.SourceRange = r
	}

	if comment := doc.LeadingComment(node); comment != "" {
		ann := jsdoc.Parse(comment)
		prop.JSDoc = ann
		prop.Description = ann.Description
		if level, ok := ann.Privacy(); ok {
			prop.Privacy, _ = feature.ParsePrivacy(level)
		}
	}
	if prop.Privacy == "" {
		prop.Privacy = feature.PrivacyFromName(name)
	}
	return prop
}

// applyConfig reads a { type, value, readOnly, ... } configuration object.
func applyConfig(prop *feature.ScannedProperty, config *sitter.Node, doc *script.Document) {
	for _, entry := range tsnode.NamedChildren(config) {
		if entry.Type() != "pair" {
			continue
		}
		key, ok := propertyKey(entry.ChildByFieldName("key"), doc)
		value := entry.ChildByFieldName("value")
		if !ok || value == nil {
			continue
		}

		switch key {
		case "type":
			if value.Type() == "identifier" {
				prop.Type = doc.NodeText(value)
			} else {
				prop.Warnings = append(prop.Warnings, warn(CodeInvalidPropertyConfig,
					fmt.Sprintf("type of property %s must be a constructor name", prop.Name), value, doc))
			}
		case "value":
			prop.Default = doc.NodeText(value)
		case "readOnly":
			prop.ReadOnly = boolValue(prop, key, value, doc)
		case "notify":
			prop.Notify = boolValue(prop, key, value, doc)
		case "reflectToAttribute":
			prop.ReflectToAttribute = boolValue(prop, key, value, doc)
		case "observer":
			prop.Observer = stringOrText(value, doc)
		case "computed":
			prop.Computed = stringOrText(value, doc)
		}
	}
}

func boolValue(prop *feature.ScannedProperty, key string, value *sitter.Node, doc *script.Document) bool {
	switch value.Type() {
	case "true":
		return true
	case "false":
		return false
	default:
		prop.Warnings = append(prop.Warnings, warn(CodeInvalidPropertyConfig,
			fmt.Sprintf("%s of property %s must be true or false", key, prop.Name), value, doc))
		return false
	}
}

func stringOrText(node *sitter.Node, doc *script.Document) string {
	if s, ok := doc.StringValue(node); ok {
		return s
	}
	return doc.NodeText(node)
}

// propertyKey returns the name of an object key. Computed keys have none.
func propertyKey(key *sitter.Node, doc *script.Document) (string, bool) {
	if key == nil || key.IsNull() {
		return "", false
	}
	switch key.Type() {
	case "property_identifier", "number":
		return doc.NodeText(key), true
	case "string":
		return doc.StringValue(key)
	default:
		return "", false
	}
}

// memberNamed reports whether a class member name node spells name.
func memberNamed(nameNode *sitter.Node, name string, doc *script.Document) bool {
	if nameNode == nil || nameNode.IsNull() {
		return false
	}
	switch nameNode.Type() {
	case "property_identifier":
		return doc.NodeText(nameNode) == name
	case "string":
		s, ok := doc.StringValue(nameNode)
		return ok && s == name
	default:
		return false
	}
}

// hasToken reports whether node has an anonymous child token of type tok.
func hasToken(node *sitter.Node, tok string) bool {
	for i := range tsnode.Int(node.ChildCount()) {
		child := node.Child(i)
		if !child.IsNamed() && child.Type() == tok {
			return true
		}
	}
	return false
}

// returnedExpression returns the expression of the first top-level return
// statement in a statement block.
func returnedExpression(block *sitter.Node) *sitter.Node {
	if block == nil || block.IsNull() {
		return nil
	}
	for _, stmt := range tsnode.NamedChildren(block) {
		if stmt.Type() != "return_statement" {
			continue
		}
		for _, child := range tsnode.NamedChildren(stmt) {
			if child.Type() != "comment" {
				return unwrapParens(child)
			}
		}
		return nil
	}
	return nil
}

func unwrapParens(node *sitter.Node) *sitter.Node {
	for node != nil && node.Type() == "parenthesized_expression" && node.NamedChildCount() == 1 {
		node = node.NamedChild(0)
	}
	return node
}

func warn(code, message string, node *sitter.Node, doc *script.Document) feature.Warning {
	w := feature.Warning{Code: code, Message: message, Severity: feature.SeverityWarning}
	if r, ok := doc.SourceRangeForNode(node); ok {
		w.SourceRange = r
	}
	return w
}
