package scanners

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/jsdoc"
	"github.com/yaklabco/docmodel/pkg/polymer"
	"github.com/yaklabco/docmodel/pkg/scan"
	"github.com/yaklabco/docmodel/pkg/script"
)

// ElementsScanner finds custom element classes: classes with a static "is"
// getter or a @customElement doc tag.
type ElementsScanner struct {
	scan.BaseScanner
}

// NewElementsScanner creates SCN002.
func NewElementsScanner() *ElementsScanner {
	return &ElementsScanner{
		BaseScanner: scan.NewBaseScanner(
			"SCN002",
			"elements",
			"Custom element classes, with their tag name and declared properties.",
			script.Type,
		),
	}
}

// Scan implements scan.Scanner.
func (s *ElementsScanner) Scan(ctx *scan.Context) ([]feature.Scanned, error) {
	doc, ok := ctx.Document.(*script.Document)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedDocument, ctx.Document)
	}

	var found []feature.Scanned
	err := doc.Visit(document.VisitorFuncs[*sitter.Node]{EnterFunc: func(node *sitter.Node) error {
		if ctx.Cancelled() {
			return ctx.Ctx.Err()
		}
		if !polymer.IsClass(node) {
			return nil
		}
		if el := scanElement(node, doc); el != nil {
			found = append(found, el)
		}
		return nil
	}})
	if err != nil {
		return nil, fmt.Errorf("scan elements: %w", err)
	}
	return found, nil
}

func scanElement(class *sitter.Node, doc *script.Document) *feature.ScannedElement {
	name, anchor := className(class, doc)

	var ann *jsdoc.Annotation
	if comment := doc.LeadingComment(anchor); comment != "" {
		ann = jsdoc.Parse(comment)
	}

	tag, declared := polymer.GetIsValue(class, doc)
	if !declared {
		custom := ann.Tag("customElement")
		if custom == nil {
			return nil
		}
		tag = strings.TrimSpace(custom.Description)
	}

	el := &feature.ScannedElement{
		TagName:    tag,
		ClassName:  name,
		ASTNode:    class,
		Properties: polymer.GetProperties(polymer.GetStaticGetterValue(class, "properties", doc), doc),
	}
	if r, ok := doc.SourceRangeForNode(anchor); ok {
		el.SourceRange = r
	}
	if ann != nil {
		el.JSDoc = ann
		el.Description = ann.Description
		el.Summary = ann.Summary()
		if level, ok := ann.Privacy(); ok {
			el.Privacy, _ = feature.ParsePrivacy(level)
		}
	}
	return el
}

// className returns the class name and the node that carries its doc
// comment. Anonymous class expressions take the name they are bound to.
func className(class *sitter.Node, doc *script.Document) (string, *sitter.Node) {
	if parent := class.Parent(); parent != nil {
		switch parent.Type() {
		case "variable_declarator":
			if sameNode(parent.ChildByFieldName("value"), class) {
				return doc.NodeText(parent.ChildByFieldName("name")), parent
			}
		case "assignment_expression":
			if sameNode(parent.ChildByFieldName("right"), class) {
				return doc.NodeText(parent.ChildByFieldName("left")), parent
			}
		}
	}
	if name := class.ChildByFieldName("name"); name != nil {
		return doc.NodeText(name), class
	}
	return "", class
}
