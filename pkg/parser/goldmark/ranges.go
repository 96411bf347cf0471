package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/docmodel/pkg/mdast"
)

const minFenceLength = 3

// linesRange returns the span of a block's line segments, without the final
// line terminator. Inline nodes have no lines and must not be passed here.
func (m *mapper) linesRange(block ast.Node) (int, int, bool) {
	lines := block.Lines()
	if lines == nil || lines.Len() == 0 {
		return -1, -1, false
	}
	start := lines.At(0).Start
	end := trimEOL(m.content, start, lines.At(lines.Len()-1).Stop)
	return start, end, true
}

func (m *mapper) setLinesRange(node *mdast.Node, block ast.Node) {
	if start, end, ok := m.linesRange(block); ok {
		node.SetRange(start, end)
	}
}

// mapFencedCodeBlock records the fence style, the body span, and a node span
// running from the opening fence through the closing fence when present.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	attrs := &mdast.CodeBlockAttrs{
		FenceChar:    '`',
		FenceLength:  minFenceLength,
		ContentStart: -1,
		ContentEnd:   -1,
	}
	node.Block = &mdast.BlockAttrs{CodeBlock: attrs}

	if codeBlock.Info != nil {
		attrs.Info = string(codeBlock.Info.Segment.Value(m.content))
	}

	openStart, openEnd := -1, -1
	lines := codeBlock.Lines()
	switch {
	case lines.Len() > 0:
		attrs.ContentStart = lines.At(0).Start
		attrs.ContentEnd = lines.At(lines.Len() - 1).Stop
		if ls := lineStart(m.content, attrs.ContentStart); ls > 0 {
			openEnd = ls - 1
			openStart = lineStart(m.content, openEnd)
		}
	case codeBlock.Info != nil:
		openStart = lineStart(m.content, codeBlock.Info.Segment.Start)
		openEnd = lineEnd(m.content, codeBlock.Info.Segment.Start)
		body := min(openEnd+1, len(m.content))
		attrs.ContentStart, attrs.ContentEnd = body, body
	}
	if openStart < 0 {
		return node
	}

	fenceStart, fenceChar, fenceLength := findFence(m.content[openStart:openEnd])
	if fenceStart < 0 {
		return node
	}
	attrs.FenceChar = fenceChar
	attrs.FenceLength = fenceLength

	end := trimEOL(m.content, openStart, attrs.ContentEnd)
	if attrs.ContentEnd < len(m.content) {
		closeEnd := lineEnd(m.content, attrs.ContentEnd)
		closing := m.content[attrs.ContentEnd:closeEnd]
		if bytes.Contains(closing, bytes.Repeat([]byte{fenceChar}, fenceLength)) {
			end = attrs.ContentEnd + len(bytes.TrimRight(closing, " \t\r"))
		}
	}
	node.SetRange(openStart+fenceStart, end)
	return node
}

func (m *mapper) mapIndentedCodeBlock(codeBlock *ast.CodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	attrs := &mdast.CodeBlockAttrs{Indented: true, ContentStart: -1, ContentEnd: -1}
	node.Block = &mdast.BlockAttrs{CodeBlock: attrs}

	lines := codeBlock.Lines()
	if lines.Len() > 0 {
		attrs.ContentStart = lines.At(0).Start
		attrs.ContentEnd = lines.At(lines.Len() - 1).Stop
		node.SetRange(attrs.ContentStart, trimEOL(m.content, attrs.ContentStart, attrs.ContentEnd))
	}
	return node
}

// findFence locates the first run of fence characters in line.
func findFence(line []byte) (int, byte, int) {
	idx := bytes.IndexAny(line, "`~")
	if idx < 0 {
		return -1, 0, 0
	}
	char := line[idx]
	n := 0
	for idx+n < len(line) && line[idx+n] == char {
		n++
	}
	return idx, char, max(n, minFenceLength)
}

// spanChildren gives a container the union of its children's spans.
func spanChildren(node *mdast.Node) {
	start, end := -1, -1
	for child := node.FirstChild; child != nil; child = child.Next {
		if !child.HasRange() {
			continue
		}
		if start < 0 || child.Start < start {
			start = child.Start
		}
		if child.End > end {
			end = child.End
		}
	}
	if start >= 0 {
		node.SetRange(start, end)
	}
}

// lineStart returns the offset of the first byte of the line holding off.
func lineStart(content []byte, off int) int {
	off = min(off, len(content))
	return bytes.LastIndexByte(content[:off], '\n') + 1
}

// lineEnd returns the offset of the newline ending the line holding off, or
// len(content) for the last line.
func lineEnd(content []byte, off int) int {
	if off >= len(content) {
		return len(content)
	}
	if idx := bytes.IndexByte(content[off:], '\n'); idx >= 0 {
		return off + idx
	}
	return len(content)
}

// trimEOL backs end off any trailing line terminators, never past start.
func trimEOL(content []byte, start, end int) int {
	end = min(end, len(content))
	for end > start && (content[end-1] == '\n' || content[end-1] == '\r') {
		end--
	}
	return end
}
