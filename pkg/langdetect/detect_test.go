package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/docmodel/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "empty", content: "", expected: ""},
		{name: "whitespace", content: " \n\t", expected: ""},
		{name: "node shebang", content: "#!/usr/bin/env node\nrun();", expected: langdetect.JavaScript},
		{name: "bash shebang", content: "#!/bin/bash\necho hello", expected: ""},
		{name: "arrow function", content: "const x = () => { return 42; };\nconsole.log(x());", expected: langdetect.JavaScript},
		{name: "custom element", content: "customElements.define('x-a', XA);", expected: langdetect.JavaScript},
		{name: "css rule", content: "a {\n  color: red;\n}", expected: langdetect.CSS},
		{name: "css custom property", content: "--brand-color: #336699;", expected: langdetect.CSS},
		{name: "css var usage", content: ":host {\n  background: var(--bg);\n}", expected: langdetect.CSS},
		{name: "media query", content: "@media (min-width: 10px) { a { b: c } }", expected: langdetect.CSS},
		{name: "json is not css", content: `{"key": "value"}`, expected: ""},
		{name: "html is not script", content: "<!DOCTYPE html>\n<html></html>", expected: ""},
		{name: "if block is not css", content: "if (a) {\n  let b = c;\n}", expected: langdetect.JavaScript},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, langdetect.Detect([]byte(tc.content)))
		})
	}
}

func TestFromInfo(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"js":              langdetect.JavaScript,
		"JavaScript":      langdetect.JavaScript,
		"mjs":             langdetect.JavaScript,
		"jsx title=x.jsx": langdetect.JavaScript,
		"css":             langdetect.CSS,
		".css":            langdetect.CSS,
		"css{.numbered}":  langdetect.CSS,
		"  js  ":          langdetect.JavaScript,
		"ts":              "",
		"html":            "",
		"":                "",
	}

	for info, want := range tests {
		assert.Equal(t, want, langdetect.FromInfo(info), info)
	}
}

func TestFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, langdetect.JavaScript, langdetect.FromPath("src/app.js"))
	assert.Equal(t, langdetect.CSS, langdetect.FromPath("/tmp/theme.css"))
	assert.Empty(t, langdetect.FromPath("main.go"))
}

func BenchmarkDetect(b *testing.B) {
	code := []byte("class XFoo extends HTMLElement {\n  static get is() { return 'x-foo'; }\n}\n")
	for range b.N {
		langdetect.Detect(code)
	}
}
