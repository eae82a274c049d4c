package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-trim-cli/tui/styles"
)

// RenderInfoBox renders a bordered box with a tab-style header and content
// lines. Content lines are rendered as-is (caller handles styling and width).
//
//	╭─ Title ────╮
//	│content     │
//	╰────────────╯
func RenderInfoBox(title string, contentLines []string, width int) string {
	if width < 4 {
		return ""
	}

	innerWidth := width - 2

	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)

	headerText := headerStyle.Render(" " + title + " ")
	fillWidth := innerWidth - 1 - lipgloss.Width(headerText)
	if fillWidth < 0 {
		fillWidth = 0
	}
	topLine := borderStyle.Render("╭─") + headerText + borderStyle.Render(strings.Repeat("─", fillWidth)+"╮")

	lines := make([]string, 0, len(contentLines)+2)
	lines = append(lines, topLine)
	for _, line := range contentLines {
		pad := innerWidth - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, borderStyle.Render("│")+line+strings.Repeat(" ", pad)+borderStyle.Render("│"))
	}
	lines = append(lines, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))

	return strings.Join(lines, "\n")
}
