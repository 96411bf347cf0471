package markup

import (
	"strings"

	"github.com/yaklabco/docmodel/pkg/document"
	"github.com/yaklabco/docmodel/pkg/langdetect"
	"github.com/yaklabco/docmodel/pkg/mdast"
	"github.com/yaklabco/docmodel/pkg/srcrange"
)

// fragment is a candidate embedding: a byte span of the contents owned by
// node. Type is empty when the fragment's language is not one we parse.
type fragment struct {
	node       *mdast.Node
	start, end int
	docType    string
}

// Embedded returns the inline documents found in d, in document order:
// fenced code blocks labeled (or detected as) JavaScript or CSS, and the
// bodies of <script> and <style> elements in HTML blocks.
//
// Each fragment's contents are the raw slice of d's contents it occupies,
// and its location offset is the slice start in absolute coordinates.
func (d *Document) Embedded() []document.Embedded {
	var out []document.Embedded
	d.ForEachNode(func(node *mdast.Node) {
		for _, frag := range d.fragments(node) {
			if frag.docType == "" {
				continue
			}
			out = append(out, document.Embedded{Type: frag.docType, Source: d.inlineSource(frag)})
		}
	})
	return out
}

func (d *Document) inlineSource(frag fragment) document.Source {
	pos := d.OffsetToSourcePosition(frag.start)
	abs := d.RelativeToAbsoluteSourceRange(srcrange.SourceRange{File: d.URL(), Start: pos, End: pos})

	offset := &srcrange.LocationOffset{Line: abs.Start.Line, Col: abs.Start.Column}
	if parent, ok := d.LocationOffset(); ok {
		offset.Filename = parent.Filename
	}

	return document.Source{
		URL:            d.URL(),
		BaseURL:        d.BaseURL(),
		Contents:       d.Contents()[frag.start:frag.end],
		LocationOffset: offset,
		ASTNode:        frag.node,
		IsInline:       true,
	}
}

// fragments lists every span of node that could hold an inline document.
func (d *Document) fragments(node *mdast.Node) []fragment {
	switch node.Kind {
	case mdast.NodeCodeBlock:
		attrs := node.Block.CodeBlock
		if attrs == nil || attrs.Indented || attrs.ContentStart < 0 {
			return nil
		}
		frag := fragment{node: node, start: attrs.ContentStart, end: attrs.ContentEnd}
		frag.docType = langdetect.FromInfo(attrs.Info)
		if frag.docType == "" && strings.TrimSpace(attrs.Info) == "" && d.detectLanguage {
			frag.docType = langdetect.Detect([]byte(d.Contents()[frag.start:frag.end]))
		}
		return []fragment{frag}

	case mdast.NodeHTMLBlock:
		if !node.HasRange() {
			return nil
		}
		return htmlFragments(node, d.Contents())

	default:
		return nil
	}
}

// htmlFragments finds <script> and <style> element bodies in an HTML block.
// An element left open runs to the end of the block.
func htmlFragments(node *mdast.Node, contents string) []fragment {
	block := node.Source(contents)
	lower := asciiLower(block)

	var out []fragment
	for pos := 0; pos < len(lower); {
		tag, open := nextElement(lower, pos)
		if open < 0 {
			break
		}
		gt := strings.IndexByte(lower[open:], '>')
		if gt < 0 {
			break
		}
		attrs := block[open+1+len(tag) : open+gt]
		bodyStart := open + gt + 1
		bodyEnd := len(block)
		if closeIdx := strings.Index(lower[bodyStart:], "</"+tag); closeIdx >= 0 {
			bodyEnd = bodyStart + closeIdx
		}
		pos = bodyEnd

		docType := langdetect.CSS
		if tag == "script" {
			docType = ""
			if isScriptType(attrs) {
				docType = langdetect.JavaScript
			}
		}
		out = append(out, fragment{
			node:    node,
			start:   node.Start + bodyStart,
			end:     node.Start + bodyEnd,
			docType: docType,
		})
	}
	return out
}

// nextElement returns the earliest <script or <style opening tag at or after
// pos.
func nextElement(lower string, pos int) (string, int) {
	bestTag, best := "", -1
	for _, tag := range []string{"script", "style"} {
		for from := pos; from < len(lower); {
			idx := strings.Index(lower[from:], "<"+tag)
			if idx < 0 {
				break
			}
			at := from + idx
			next := at + 1 + len(tag)
			if next >= len(lower) || strings.IndexByte(" \t\r\n/>", lower[next]) >= 0 {
				if best < 0 || at < best {
					bestTag, best = tag, at
				}
				break
			}
			from = next
		}
	}
	return bestTag, best
}

// isScriptType reports whether a script tag's attributes denote JavaScript.
func isScriptType(attrs string) bool {
	lower := strings.ToLower(attrs)
	idx := strings.Index(lower, "type=")
	if idx < 0 {
		return true
	}
	value := strings.TrimLeft(lower[idx+len("type="):], " ")
	if value != "" && (value[0] == '"' || value[0] == '\'') {
		quote := value[0]
		value = value[1:]
		if end := strings.IndexByte(value, quote); end >= 0 {
			value = value[:end]
		}
	} else if end := strings.IndexAny(value, " \t\r\n/"); end >= 0 {
		value = value[:end]
	}

	switch strings.TrimSpace(value) {
	case "", "module", "text/javascript", "application/javascript", "text/ecmascript":
		return true
	default:
		return false
	}
}

// asciiLower lower-cases ASCII letters only, keeping byte offsets aligned
// with the input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
