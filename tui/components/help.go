package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-trim-cli/tui/styles"
)

// Binding is a single key and what it does.
type Binding struct {
	Key  string
	Desc string
}

// BindingGroup is a titled set of bindings shown together in the help overlay.
type BindingGroup struct {
	Title    string
	Bindings []Binding
}

// HelpOverlay renders the help overlay showing the given keybinding groups,
// centred in a width x height area.
func HelpOverlay(groups []BindingGroup, width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Padding(0, 1)

	groupHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender)

	var lines []string
	lines = append(lines, titleStyle.Render("Keybindings"))
	lines = append(lines, "")

	for _, group := range groups {
		lines = append(lines, groupHeaderStyle.Render(group.Title))
		for _, b := range group.Bindings {
			lines = append(lines, "  "+keyStyle.Render(b.Key)+descStyle.Render(b.Desc))
		}
	}

	lines = append(lines, "")
	footerStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Italic(true)
	lines = append(lines, footerStyle.Render("Press any key to close"))

	content := strings.Join(lines, "\n")

	contentLines := strings.Split(content, "\n")
	contentWidth := 0
	for _, line := range contentLines {
		contentWidth = max(contentWidth, lipgloss.Width(line))
	}

	// Border plus padding
	paddedWidth := contentWidth + 6
	paddedHeight := len(contentLines) + 4

	marginLeft := max((width-paddedWidth)/2, 0)
	marginTop := max((height-paddedHeight)/2, 0)

	panel := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2).
		Render(content)

	return lipgloss.NewStyle().
		MarginLeft(marginLeft).
		MarginTop(marginTop).
		Render(panel)
}
