package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/docmodel/pkg/feature"
	"github.com/yaklabco/docmodel/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 features in 3 files, 2 warnings (1 error, 1 warning)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{fmt.Sprintf("%d %s in %d %s",
		stats.Features, plural(stats.Features, "feature", "features"),
		stats.FilesScanned, plural(stats.FilesScanned, wordFile, wordFiles))}

	if stats.Warnings == 0 {
		parts = append(parts, s.Success.Render("no warnings"))
	} else {
		parts = append(parts, fmt.Sprintf("%d %s (%s)",
			stats.Warnings, plural(stats.Warnings, "warning", "warnings"),
			strings.Join(s.severityParts(stats), ", ")))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}
	return strings.Join(parts, ", ") + "\n"
}

func (s *Styles) severityParts(stats runner.Stats) []string {
	var parts []string
	if n := stats.WarningsBySeverity[feature.SeverityError]; n > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
	}
	if n := stats.WarningsBySeverity[feature.SeverityWarning]; n > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
	}
	if n := stats.WarningsBySeverity[feature.SeverityInfo]; n > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return parts
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	line := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	line("Files scanned", s.SummaryValue.Render(strconv.Itoa(stats.FilesScanned)))
	if stats.FilesErrored > 0 {
		line("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	line("Documents", s.SummaryValue.Render(fmt.Sprintf("%d (%d inline)", stats.Documents, stats.InlineDocuments)))
	builder.WriteString("\n")

	line("Features", s.SummaryValue.Render(strconv.Itoa(stats.Features)))
	for _, kind := range slices.Sorted(maps.Keys(stats.FeaturesByKind)) {
		line("  "+kind, s.Kind.Render(strconv.Itoa(stats.FeaturesByKind[kind])))
	}
	builder.WriteString("\n")

	line("Warnings", s.SummaryValue.Render(strconv.Itoa(stats.Warnings)))
	if parts := s.severityParts(stats); len(parts) > 0 {
		line("  by severity", strings.Join(parts, ", "))
	}
	if stats.ScannerErrors > 0 {
		line("Scanner errors", s.Failure.Render(strconv.Itoa(stats.ScannerErrors)))
	}

	return builder.String()
}
