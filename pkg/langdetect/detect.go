// Package langdetect decides which document type a piece of code belongs to.
// It maps fence info strings and file names directly and falls back to
// go-enry for unlabeled snippets.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Document types recognized by the detector.
const (
	Markdown   = "markdown"
	JavaScript = "javascript"
	CSS        = "css"
)

// classifierCandidates keeps the classifier choosing among languages that
// plausibly appear in unlabeled fences, so non-script code is not forced
// into one of ours.
//
//nolint:gochecknoglobals // read-only table
var classifierCandidates = []string{
	"JavaScript", "TypeScript", "CSS", "SCSS", "HTML", "JSON",
	"Markdown", "Go", "Python", "Shell", "YAML",
}

// fenceAliases maps lower-cased fence languages to document types.
//
//nolint:gochecknoglobals // read-only table
var fenceAliases = map[string]string{
	"js":         JavaScript,
	"javascript": JavaScript,
	"mjs":        JavaScript,
	"cjs":        JavaScript,
	"jsx":        JavaScript,
	"es6":        JavaScript,
	"node":       JavaScript,
	"css":        CSS,
}

// FromInfo maps a fence info string to a document type, or "".
func FromInfo(info string) string {
	lang, _, _ := strings.Cut(strings.TrimSpace(info), " ")
	lang = strings.TrimPrefix(lang, ".")
	lang, _, _ = strings.Cut(lang, "{")
	return fenceAliases[strings.ToLower(lang)]
}

// FromPath maps a file name to a document type using its extension, or "".
func FromPath(path string) string {
	lang, _ := enry.GetLanguageByExtension(filepath.Base(path))
	return fromEnry(lang)
}

// Detect returns the document type of an unlabeled snippet, or "" when it is
// neither JavaScript nor CSS or confidence is low.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return ""
	}

	// Strategy 1: shebang.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fromEnry(lang)
	}

	// Strategy 2: patterns that are highly indicative.
	if looksLikeJSON(trimmed) || looksLikeHTML(trimmed) {
		return ""
	}
	if looksLikeCSS(trimmed) {
		return CSS
	}
	if looksLikeJavaScript(string(content)) {
		return JavaScript
	}

	// Strategy 3: classifier, only when it is confident.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe {
		return fromEnry(lang)
	}
	return ""
}

func fromEnry(lang string) string {
	switch lang {
	case "JavaScript":
		return JavaScript
	case "CSS":
		return CSS
	case "Markdown":
		return Markdown
	default:
		return ""
	}
}

func looksLikeJSON(trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

func looksLikeHTML(trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	return bytes.HasPrefix(lower, []byte("<!doctype html")) ||
		bytes.HasPrefix(lower, []byte("<html")) ||
		bytes.HasPrefix(lower, []byte("<template")) ||
		bytes.HasPrefix(lower, []byte("<dom-module"))
}

// looksLikeCSS matches a rule block whose body is made of declarations, or a
// custom property declaration.
func looksLikeCSS(trimmed []byte) bool {
	if bytes.HasPrefix(trimmed, []byte("--")) && bytes.Contains(trimmed, []byte(":")) {
		return true
	}
	if bytes.HasPrefix(trimmed, []byte("@media")) || bytes.HasPrefix(trimmed, []byte("@import")) {
		return true
	}

	open := bytes.IndexByte(trimmed, '{')
	if open <= 0 || !bytes.HasSuffix(trimmed, []byte("}")) {
		return false
	}
	selector := trimmed[:open]
	if bytes.ContainsAny(selector, "=();") ||
		bytes.HasPrefix(selector, []byte("class ")) || bytes.HasPrefix(selector, []byte("function")) {
		return false
	}
	body := bytes.TrimSpace(trimmed[open+1 : len(trimmed)-1])
	return len(body) == 0 || (bytes.Contains(body, []byte(":")) && !bytes.Contains(body, []byte("(")) ||
		bytes.Contains(body, []byte("var(--")))
}

func looksLikeJavaScript(contentStr string) bool {
	return strings.Contains(contentStr, "=>") ||
		strings.Contains(contentStr, "const ") ||
		strings.Contains(contentStr, "let ") ||
		strings.Contains(contentStr, "function ") ||
		strings.Contains(contentStr, "console.log") ||
		strings.Contains(contentStr, "customElements.define")
}
