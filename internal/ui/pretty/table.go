package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minColumnWidth   = 4
	heavySeparator   = "="
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableFormatter formats rows as an aligned, width-limited table. The last
// column absorbs the space left by the others and is truncated to fit.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Format renders headers and rows. Rows shorter than headers are padded.
func (t *TableFormatter) Format(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := t.columnWidths(headers, rows)

	var builder strings.Builder
	builder.WriteString(t.formatRow(headers, widths, t.styles.TableHeader))
	builder.WriteString(t.formatSeparator(widths))
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths, lipgloss.NewStyle()))
	}
	return builder.String()
}

func (t *TableFormatter) columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	last := len(widths) - 1
	used := 0
	for _, w := range widths[:last] {
		used += w + tablePadding
	}
	widths[last] = max(minColumnWidth, min(widths[last], t.termWidth-used))
	return widths
}

func (t *TableFormatter) formatRow(row []string, widths []int, style lipgloss.Style) string {
	cells := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(row) {
			cell = truncate(row[i], width)
		}
		if i < len(widths)-1 {
			cell += strings.Repeat(" ", width-lipgloss.Width(cell))
		}
		cells[i] = style.Render(cell)
	}
	return strings.TrimRight(strings.Join(cells, strings.Repeat(" ", tablePadding)), " ") + "\n"
}

func (t *TableFormatter) formatSeparator(widths []int) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	total += tablePadding * (len(widths) - 1)
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n"
}

// truncate shortens s to width display cells, marking the cut.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= len(ellipsis) {
		return string(runes[:min(width, len(runes))])
	}
	for lipgloss.Width(string(runes))+len(ellipsis) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}
