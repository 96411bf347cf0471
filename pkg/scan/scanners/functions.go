package scanners

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/docmodel/internal/tsnode"
	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/jsdoc"
	"github.com/yaklabco/docmodel/pkg/scan"
	"github.com/yaklabco/docmodel/pkg/script"
)

// FunctionsScanner finds named functions: declarations, and function or
// arrow expressions bound to a variable or assigned to a target.
type FunctionsScanner struct {
	scan.BaseScanner
}

// NewFunctionsScanner creates SCN001.
func NewFunctionsScanner() *FunctionsScanner {
	return &FunctionsScanner{
		BaseScanner: scan.NewBaseScanner(
			"SCN001",
			"functions",
			"Function declarations and named function expressions, with their JSDoc parameters and return value.",
			script.Type,
		),
	}
}

// Scan implements scan.Scanner.
//
// Options:
//   - include_private (bool, default true): report functions whose resolved
//     privacy is private.
//   - nested (bool, default false): also report functions declared inside
//     other functions.
func (s *FunctionsScanner) Scan(ctx *scan.Context) ([]feature.Scanned, error) {
	doc, ok := ctx.Document.(*script.Document)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedDocument, ctx.Document)
	}
	includePrivate := ctx.OptionBool("include_private", true)
	nested := ctx.OptionBool("nested", false)

	var found []feature.Scanned
	err := doc.Visit(document.VisitorFuncs[*sitter.Node]{EnterFunc: func(node *sitter.Node) error {
		if ctx.Cancelled() {
			return ctx.Ctx.Err()
		}
		if !isFunction(node) {
			return nil
		}

		if fn := scanFunction(node, doc); fn != nil {
			if includePrivate || fn.Privacy != feature.PrivacyPrivate {
				found = append(found, fn)
			}
		}
		if !nested {
			return document.ErrSkipChildren
		}
		return nil
	}})
	if err != nil {
		return nil, fmt.Errorf("scan functions: %w", err)
	}
	return found, nil
}

//nolint:gochecknoglobals // read-only table
var functionTypes = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"function":                       true,
	"function_expression":            true,
	"generator_function":             true,
	"arrow_function":                 true,
	"method_definition":              true,
}

func isFunction(node *sitter.Node) bool {
	return functionTypes[node.Type()]
}

// scanFunction returns the candidate for a function node, or nil when the
// function is neither declared nor bound to a name. Methods are not
// reported.
func scanFunction(node *sitter.Node, doc *script.Document) *feature.ScannedFunction {
	name, anchor := functionName(node, doc)
	if anchor == nil {
		return nil
	}

	fn := &feature.ScannedFunction{
		Name:    name,
		ASTNode: node,
		Params:  functionParams(node, doc),
	}
	if r, ok := doc.SourceRangeForNode(anchor); ok {
		fn.SourceRange = r
	}

	if comment := doc.LeadingComment(anchor); comment != "" {
		ann := jsdoc.Parse(comment)
		fn.JSDoc = ann
		fn.Description = ann.Description
		fn.Summary = ann.Summary()
		if level, ok := ann.Privacy(); ok {
			fn.Privacy, _ = feature.ParsePrivacy(level)
		}
		applyParamDocs(fn.Params, ann)
		if tag := returnTag(ann); tag != nil {
			fn.Return = &feature.Return{Type: tag.Type, Description: tag.Description}
		}
	}
	if fn.Privacy == "" {
		fn.Privacy = feature.PrivacyFromName(lastSegment(name))
	}
	return fn
}

// functionName returns the function's name and the node that carries its
// doc comment and range: the declaration itself, or the declarator or
// assignment binding an expression.
func functionName(node *sitter.Node, doc *script.Document) (string, *sitter.Node) {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		return doc.NodeText(node.ChildByFieldName("name")), node
	case "method_definition":
		return "", nil
	}

	parent := node.Parent()
	if parent == nil {
		return "", nil
	}
	switch parent.Type() {
	case "variable_declarator":
		if sameNode(parent.ChildByFieldName("value"), node) {
			return doc.NodeText(parent.ChildByFieldName("name")), parent
		}
	case "assignment_expression":
		if sameNode(parent.ChildByFieldName("right"), node) {
			return doc.NodeText(parent.ChildByFieldName("left")), parent
		}
	}

	// A named function expression used as a value elsewhere.
	if name := node.ChildByFieldName("name"); name != nil {
		return doc.NodeText(name), node
	}
	return "", nil
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.Equal(b)
}

// functionParams reads the signature's parameters.
func functionParams(node *sitter.Node, doc *script.Document) []feature.Param {
	if single := node.ChildByFieldName("parameter"); single != nil {
		return []feature.Param{{Name: doc.NodeText(single)}}
	}
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	var out []feature.Param
	for _, p := range tsnode.NamedChildren(params) {
		switch p.Type() {
		case "comment":
			continue
		case "assignment_pattern":
			out = append(out, feature.Param{Name: doc.NodeText(p.ChildByFieldName("left"))})
		case "rest_pattern":
			out = append(out, feature.Param{Name: "..." + strings.TrimPrefix(doc.NodeText(p), "...")})
		default:
			out = append(out, feature.Param{Name: doc.NodeText(p)})
		}
	}
	return out
}

// applyParamDocs fills parameter types and descriptions from @param tags.
func applyParamDocs(params []feature.Param, ann *jsdoc.Annotation) {
	tags := ann.TagsNamed("param", "arg", "argument")
	for i := range params {
		name := strings.TrimPrefix(params[i].Name, "...")
		for _, tag := range tags {
			if tag.Name == name {
				params[i].Type = tag.Type
				params[i].Description = tag.Description
				break
			}
		}
	}
}

func returnTag(ann *jsdoc.Annotation) *jsdoc.Tag {
	if tag := ann.Tag("returns"); tag != nil {
		return tag
	}
	return ann.Tag("return")
}

// lastSegment returns the part of a dotted name after the last dot.
func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
