package scanners

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/scan"
	"github.com/yaklabco/docmodel/pkg/style"
)

// declarationQuery captures every declaration with its property name.
const declarationQuery = `(declaration (property_name) @name) @declaration`

// CustomPropertiesScanner finds CSS custom property declarations.
type CustomPropertiesScanner struct {
	scan.BaseScanner
}

// NewCustomPropertiesScanner creates SCN003.
func NewCustomPropertiesScanner() *CustomPropertiesScanner {
	return &CustomPropertiesScanner{
		BaseScanner: scan.NewBaseScanner(
			"SCN003",
			"custom-properties",
			"CSS custom property declarations (--name: value).",
			style.Type,
		),
	}
}

// Scan implements scan.Scanner.
func (s *CustomPropertiesScanner) Scan(ctx *scan.Context) ([]feature.Scanned, error) {
	doc, ok := ctx.Document.(*style.Document)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedDocument, ctx.Document)
	}

	query, err := sitter.NewQuery([]byte(declarationQuery), style.Language())
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, doc.AST())

	var found []feature.Scanned
	for {
		if ctx.Cancelled() {
			return nil, fmt.Errorf("scan custom properties: %w", ctx.Ctx.Err())
		}
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}

		var name, decl *sitter.Node
		for _, capture := range match.Captures {
			switch query.CaptureNameForId(capture.Index) {
			case "name":
				name = capture.Node
			case "declaration":
				decl = capture.Node
			}
		}
		if name == nil || decl == nil {
			continue
		}

		propName := doc.NodeText(name)
		if !strings.HasPrefix(propName, "--") {
			continue
		}

		prop := &feature.ScannedCustomProperty{
			Name:    propName,
			Value:   declarationValue(doc.NodeText(decl), propName),
			ASTNode: decl,
		}
		if r, ok := doc.SourceRangeForNode(decl); ok {
			prop.SourceRange = r
		}
		found = append(found, prop)
	}
	return found, nil
}

// declarationValue returns the text between the colon and the optional
// trailing semicolon of a declaration.
func declarationValue(text, name string) string {
	value := strings.TrimSpace(strings.TrimPrefix(text, name))
	value = strings.TrimPrefix(value, ":")
	value = strings.TrimSuffix(strings.TrimSpace(value), ";")
	return strings.TrimSpace(value)
}
