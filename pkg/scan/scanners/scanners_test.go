package scanners_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docmodel/pkg/config"
	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/scan"
	"github.com/yaklabco/docmodel/pkg/scan/scanners"
	"github.com/yaklabco/docmodel/pkg/script"
	"github.com/yaklabco/docmodel/pkg/srcrange"
	"github.com/yaklabco/docmodel/pkg/style"
)

var functionSource = strings.Join([]string{
	"/**",
	" * Adds numbers.",
	" * @param {number} a First.",
	" * @param {number} b",
	" * @returns {number} The sum.",
	" */",
	"function add(a, b = 1, ...rest) { return a + b; }",
	"const mul = (x) => x * 2;",
	"export const _helper = function () { function inner() {} };",
	"obj.run = function* run() {};",
	"/** @private */",
	"function hidden() {}",
	"[1].map(function () {});",
	"const inc = n => n + 1;",
	"",
}, "\n")

func parseScript(t *testing.T, src string) *script.Document {
	t.Helper()

	doc, err := script.Parse(context.Background(), document.Source{URL: "a.js", Contents: src})
	require.NoError(t, err)
	t.Cleanup(doc.Close)
	return doc
}

func parseStyle(t *testing.T, src string) *style.Document {
	t.Helper()

	doc, err := style.Parse(context.Background(), document.Source{URL: "a.css", Contents: src})
	require.NoError(t, err)
	t.Cleanup(doc.Close)
	return doc
}

func scanWith(t *testing.T, s scan.Scanner, doc document.Document, options map[string]any) []feature.Scanned {
	t.Helper()

	var scannerCfg *config.ScannerConfig
	if options != nil {
		scannerCfg = &config.ScannerConfig{Options: options}
	}
	found, err := s.Scan(scan.NewContext(context.Background(), doc, config.NewConfig(), scannerCfg))
	require.NoError(t, err)
	return found
}

func functionsByName(t *testing.T, found []feature.Scanned) map[string]*feature.ScannedFunction {
	t.Helper()

	out := make(map[string]*feature.ScannedFunction, len(found))
	for _, f := range found {
		fn, ok := f.(*feature.ScannedFunction)
		require.True(t, ok, "unexpected candidate %T", f)
		out[fn.Name] = fn
	}
	return out
}

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := scan.NewRegistry()
	scanners.RegisterAll(registry)

	assert.Equal(t, []string{"SCN001", "SCN002", "SCN003"}, registry.IDs())

	s, ok := registry.GetByName("custom-properties")
	require.True(t, ok)
	assert.Equal(t, "SCN003", s.ID())
	assert.Equal(t, style.Type, s.DocumentType())

	assert.Len(t, registry.ForType(script.Type), 2)
	assert.Len(t, scan.DefaultRegistry.ForType(script.Type), 2)
}

func TestScannersRejectOtherDocuments(t *testing.T) {
	t.Parallel()

	js := parseScript(t, "const a = 1;")
	css := parseStyle(t, "a { color: red; }")

	tests := []struct {
		name    string
		scanner scan.Scanner
		doc     document.Document
	}{
		{"functions on css", scanners.NewFunctionsScanner(), css},
		{"elements on css", scanners.NewElementsScanner(), css},
		{"custom properties on js", scanners.NewCustomPropertiesScanner(), js},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.scanner.Scan(scan.NewContext(context.Background(), tt.doc, nil, nil))
			require.ErrorIs(t, err, scanners.ErrUnexpectedDocument)
		})
	}
}

func TestFunctionsScanner(t *testing.T) {
	t.Parallel()

	doc := parseScript(t, functionSource)
	fns := functionsByName(t, scanWith(t, scanners.NewFunctionsScanner(), doc, nil))

	assert.ElementsMatch(t,
		[]string{"add", "mul", "_helper", "obj.run", "hidden", "inc"},
		keys(fns))

	t.Run("declaration with jsdoc", func(t *testing.T) {
		t.Parallel()

		add := fns["add"]
		assert.Equal(t, "Adds numbers.", add.Description)
		assert.Equal(t, feature.PrivacyPublic, add.Privacy)
		assert.Equal(t, []feature.Param{
			{Name: "a", Type: "number", Description: "First."},
			{Name: "b", Type: "number"},
			{Name: "...rest"},
		}, add.Params)
		require.NotNil(t, add.Return)
		assert.Equal(t, feature.Return{Type: "number", Description: "The sum."}, *add.Return)
		assert.Equal(t, srcrange.SourcePosition{Line: 6, Column: 0}, add.SourceRange.Start)
		assert.Equal(t, "a.js", add.SourceRange.File)
	})

	t.Run("bound expressions", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []feature.Param{{Name: "x"}}, fns["mul"].Params)
		assert.Equal(t, []feature.Param{{Name: "n"}}, fns["inc"].Params)
		assert.Equal(t, srcrange.SourcePosition{Line: 7, Column: 6}, fns["mul"].SourceRange.Start)
		assert.Equal(t, feature.PrivacyProtected, fns["_helper"].Privacy)
		assert.Equal(t, feature.PrivacyPublic, fns["obj.run"].Privacy)
		assert.Nil(t, fns["mul"].Return)
	})

	t.Run("privacy tag", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, feature.PrivacyPrivate, fns["hidden"].Privacy)
	})
}

func TestFunctionsScannerOptions(t *testing.T) {
	t.Parallel()

	doc := parseScript(t, functionSource)

	nested := functionsByName(t, scanWith(t, scanners.NewFunctionsScanner(), doc,
		map[string]any{"nested": true}))
	assert.Contains(t, nested, "inner")

	public := functionsByName(t, scanWith(t, scanners.NewFunctionsScanner(), doc,
		map[string]any{"include_private": false}))
	assert.NotContains(t, public, "hidden")
	assert.Contains(t, public, "_helper")
}

func TestFunctionsResolve(t *testing.T) {
	t.Parallel()

	doc := parseScript(t, functionSource)
	fns := functionsByName(t, scanWith(t, scanners.NewFunctionsScanner(), doc, nil))

	resolved := fns["add"].Resolve(doc)
	assert.Equal(t, feature.KindFunction, resolved.Kind())
	assert.Empty(t, resolved.Warnings())
	assert.Equal(t, "function add(a, b, ...rest)", resolved.String())
}

const elementsSource = `/**
 * A fancy button.
 * @summary Button.
 */
class FancyButton extends PolymerElement {
  static get is() { return 'fancy-button'; }
  static get properties() {
    return {
      label: String,
      pressed: { type: Boolean, notify: true },
    };
  }
}

/** @customElement lit-card */
export class LitCard extends LitElement {}

const Anon = class extends PolymerElement {
  static get is() { return 'badname'; }
};

/** @customElement */
class Untagged extends HTMLElement {}

class NotAnElement {}
`

func TestElementsScanner(t *testing.T) {
	t.Parallel()

	doc := parseScript(t, elementsSource)
	found := scanWith(t, scanners.NewElementsScanner(), doc, nil)

	els := make(map[string]*feature.ScannedElement)
	for _, f := range found {
		el, ok := f.(*feature.ScannedElement)
		require.True(t, ok)
		els[el.ClassName] = el
	}
	require.ElementsMatch(t, []string{"FancyButton", "LitCard", "Anon", "Untagged"}, keys(els))

	fancy := els["FancyButton"]
	assert.Equal(t, "fancy-button", fancy.TagName)
	assert.Equal(t, "A fancy button.", fancy.Description)
	assert.Equal(t, "Button.", fancy.Summary)
	assert.Equal(t, srcrange.SourcePosition{Line: 4, Column: 0}, fancy.SourceRange.Start)
	require.Len(t, fancy.Properties, 2)
	assert.Equal(t, "label", fancy.Properties[0].Name)
	assert.Equal(t, "String", fancy.Properties[0].Type)
	assert.True(t, fancy.Properties[1].Notify)

	assert.Equal(t, "lit-card", els["LitCard"].TagName)
	assert.Empty(t, els["LitCard"].Properties)
	assert.Equal(t, "badname", els["Anon"].TagName)
	assert.Empty(t, els["Untagged"].TagName)

	t.Run("resolve", func(t *testing.T) {
		t.Parallel()

		el := fancy.Resolve(doc)
		assert.Empty(t, el.Warnings())
		assert.True(t, el.Identifiers().Has("fancy-button"))
		assert.True(t, el.Identifiers().Has("FancyButton"))

		assert.Equal(t, feature.CodeInvalidElementName, els["Anon"].Resolve(doc).Warnings()[0].Code)
		assert.Equal(t, feature.CodeMissingTagName, els["Untagged"].Resolve(doc).Warnings()[0].Code)
	})
}

func TestCustomPropertiesScanner(t *testing.T) {
	t.Parallel()

	doc := parseStyle(t, strings.Join([]string{
		":root {",
		"  --brand-color: #336699;",
		"  color: red;",
		"  --spacing: 4px 8px",
		"}",
		".card { --shadow: 0 1px 2px rgba(0, 0, 0, 0.2) !important; }",
		"",
	}, "\n"))

	found := scanWith(t, scanners.NewCustomPropertiesScanner(), doc, nil)
	require.Len(t, found, 3)

	got := make(map[string]string)
	for _, f := range found {
		prop, ok := f.(*feature.ScannedCustomProperty)
		require.True(t, ok)
		got[prop.Name] = prop.Value
	}
	assert.Equal(t, map[string]string{
		"--brand-color": "#336699",
		"--spacing":     "4px 8px",
		"--shadow":      "0 1px 2px rgba(0, 0, 0, 0.2) !important",
	}, got)

	first, ok := found[0].(*feature.ScannedCustomProperty)
	require.True(t, ok)
	assert.Equal(t, srcrange.SourcePosition{Line: 1, Column: 2}, first.SourceRange.Start)

	resolved := first.Resolve(doc)
	assert.Equal(t, feature.KindCustomProperty, resolved.Kind())
	assert.Equal(t, "css-custom-property --brand-color: #336699", resolved.String())
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
