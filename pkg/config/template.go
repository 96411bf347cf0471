package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every scanner with its documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string

	// Scanners describes the scanners to document in a full template.
	Scanners []ScannerInfo
}

// ScannerInfo contains scanner metadata for template generation.
type ScannerInfo struct {
	ID           string
	Name         string
	Description  string
	DocumentType string
	Enabled      bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml", "yml":
		return generateYAMLTemplate(opts), nil
	case "toml":
		return generateTOMLTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader() + `

# Markdown flavor: commonmark or gfm
flavor: gfm

# Detect the language of code blocks without an info string
detect_language: true

# Lowest warning severity to report: info, warning, or error
min_severity: info

# File patterns to ignore (glob patterns)
# ignore:
#   - "node_modules/**"
#   - "dist/**"

# Extra file extensions and their document types
# extensions:
#   .mdx: markdown
`)

	if !opts.Full {
		buf.WriteString(`
# Scanner-specific configuration
# scanners:
#   SCN001:
#     enabled: true
`)
		return buf.Bytes()
	}

	buf.WriteString("\n# Scanner-specific configuration\nscanners:\n")
	for _, s := range sortedScanners(opts.Scanners) {
		fmt.Fprintf(&buf, "\n  # %s: %s (%s)\n", s.ID, s.Name, s.DocumentType)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(s.Description, commentWrapWidth, "  # "))
		fmt.Fprintf(&buf, "  %s:\n", s.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", s.Enabled)
		buf.WriteString("    # options:\n")
		buf.WriteString("    #   key: value\n")
	}
	return buf.Bytes()
}

func generateTOMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader() + `

# Markdown flavor: commonmark or gfm
flavor = "gfm"

# Detect the language of code blocks without an info string
detect_language = true

# Lowest warning severity to report: info, warning, or error
min_severity = "info"

# File patterns to ignore (glob patterns)
# ignore = ["node_modules/**", "dist/**"]
`)

	if !opts.Full {
		buf.WriteString(`
# Scanner-specific configuration
# [scanners.SCN001]
# enabled = true
`)
		return buf.Bytes()
	}

	for _, s := range sortedScanners(opts.Scanners) {
		fmt.Fprintf(&buf, "\n# %s: %s (%s)\n", s.ID, s.Name, s.DocumentType)
		fmt.Fprintf(&buf, "# %s\n", wrapComment(s.Description, commentWrapWidth, "# "))
		fmt.Fprintf(&buf, "[scanners.%s]\n", s.ID)
		fmt.Fprintf(&buf, "enabled = %t\n", s.Enabled)
	}
	return buf.Bytes()
}

func sortedScanners(scanners []ScannerInfo) []ScannerInfo {
	out := slices.Clone(scanners)
	slices.SortFunc(out, func(a, b ScannerInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// wrapComment wraps a comment to fit within maxWidth characters, starting
// continuation lines with prefix.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+prefix)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# docmodel configuration
# See: https://github.com/yaklabco/docmodel`
}
