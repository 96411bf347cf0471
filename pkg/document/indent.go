package document

import "strings"

// Reindent strips the indentation common to all non-blank lines of text and
// prefixes each non-blank line with indent spaces. An indent of zero or less
// returns text unchanged.
func Reindent(text string, indent int) string {
	if indent <= 0 || text == "" {
		return text
	}

	lines := strings.SplitAfter(text, "\n")
	common := -1
	for _, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(body) == "" {
			continue
		}
		width := len(body) - len(strings.TrimLeft(body, " \t"))
		if common < 0 || width < common {
			common = width
		}
	}
	if common < 0 {
		return text
	}

	prefix := strings.Repeat(" ", indent)
	var out strings.Builder
	out.Grow(len(text) + len(lines)*indent)
	for _, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(body) == "" {
			out.WriteString(line)
			continue
		}
		out.WriteString(prefix)
		out.WriteString(line[common:])
	}
	return out.String()
}
