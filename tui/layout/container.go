package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/user/video-trim-cli/tui/styles"
)

// Container fits content into an exact Width x Height box. When the content
// is too tall, lines above the last Footer lines are cut and an indicator
// reports how many were hidden, so the controls bar stays on screen.
type Container struct {
	Width  int
	Height int
	Footer int
}

// Render returns content as exactly Height lines of Width columns.
func (c Container) Render(content string) string {
	if c.Width <= 0 || c.Height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")

	if len(lines) > c.Height {
		footer := min(max(c.Footer, 0), c.Height-1)
		keep := c.Height - footer - 1
		hidden := len(lines) - keep - footer
		indicator := lipgloss.NewStyle().
			Foreground(styles.Purple).
			Render(fmt.Sprintf("↓ %d more", hidden))

		fitted := make([]string, 0, c.Height)
		fitted = append(fitted, lines[:keep]...)
		fitted = append(fitted, indicator)
		fitted = append(fitted, lines[len(lines)-footer:]...)
		lines = fitted
	}

	lines = NormalizeLines(lines, c.Height)
	for i, line := range lines {
		lines[i] = PadToWidth(line, c.Width)
	}
	return strings.Join(lines, "\n")
}

// PadToWidth pads or truncates s to exactly width cells. Truncation is ANSI
// aware and never splits a wide rune.
func PadToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := lipgloss.Width(s); w > width {
		s = ansi.Truncate(s, width, "")
	}
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// NormalizeLines returns exactly height lines, cutting or padding with blanks.
// The input slice is not modified.
func NormalizeLines(lines []string, height int) []string {
	height = max(height, 0)
	out := make([]string, height)
	copy(out, lines)
	return out
}
