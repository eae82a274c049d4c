package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-trim-cli/tui/styles"
)

// Responsive layout constants.
const (
	MinTerminalWidth = 40  // below this the slider is unusable
	SplitThreshold   = 100 // at or above this width the bottom panels sit side by side
)

// ComputeColumnWidths splits termWidth between the selection and exports
// panels. Below SplitThreshold the panels stack and both get the full width.
func ComputeColumnWidths(termWidth int) (left, right int, split bool) {
	if termWidth < SplitThreshold {
		return termWidth, termWidth, false
	}
	// one border character between the panels
	usable := termWidth - 1
	left = usable * 2 / 5
	right = usable - left
	return left, right, true
}

// Column is one pre-rendered panel and the width it occupies.
type Column struct {
	Content string
	Width   int
}

// JoinColumns places columns side by side with a purple separator. The row
// count is that of the tallest column; shorter ones are padded with blanks.
func JoinColumns(cols ...Column) string {
	sep := lipgloss.NewStyle().Foreground(styles.Purple).Render("│")

	height := 0
	split := make([][]string, len(cols))
	for i, col := range cols {
		split[i] = strings.Split(col.Content, "\n")
		height = max(height, len(split[i]))
	}
	for i := range split {
		split[i] = NormalizeLines(split[i], height)
	}

	rows := make([]string, height)
	for r := range rows {
		parts := make([]string, len(cols))
		for i, col := range cols {
			parts[i] = PadToWidth(split[i][r], col.Width)
		}
		rows[r] = strings.Join(parts, sep)
	}
	return strings.Join(rows, "\n")
}
