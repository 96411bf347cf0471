package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/docmodel/pkg/feature"
)

// FormatFeature formats one feature line: location, kind and description,
// followed by the scanner label if any.
func (s *Styles) FormatFeature(f feature.Feature, label string) string {
	line := fmt.Sprintf("  %s  %s  %s",
		s.Location.Render(f.SourceRange().Start.String()),
		s.Kind.Render(string(f.Kind())),
		s.Name.Render(describe(f)),
	)
	if label != "" {
		line += "  " + s.Code.Render("["+label+"]")
	}
	return line + "\n"
}

// describe drops the kind prefix of a feature's String form.
func describe(f feature.Feature) string {
	str := f.String()
	if rest, ok := strings.CutPrefix(str, string(f.Kind())+" "); ok {
		return rest
	}
	return str
}

// FormatWarning formats a warning nested under its feature. A non-empty
// sourceLine adds the source context with a caret under the start column.
func (s *Styles) FormatWarning(w feature.Warning, sourceLine string) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "    %s  %s  %s  %s\n",
		s.Location.Render(w.SourceRange.Start.String()),
		s.FormatSeverity(w.Severity),
		s.Message.Render(w.Message),
		s.Code.Render("("+w.Code+")"),
	)
	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, w.SourceRange.Start.Column+1))
	}
	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev feature.Severity) string {
	switch sev {
	case feature.SeverityError:
		return s.Error.Render("error")
	case feature.SeverityWarning:
		return s.Warning.Render("warning")
	case feature.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker at the
// 1-based column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, featureCount int) string {
	header := s.FilePath.Render(path)
	switch featureCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 feature)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d features)", featureCount))
	}
	return header
}
