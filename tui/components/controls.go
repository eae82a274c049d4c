package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/user/video-trim-cli/tui/styles"
)

// ControlsDisplay renders the short bindings as a single centred hint bar in
// Name [Shortcut] form. The bar is truncated when wider than width.
func ControlsDisplay(bindings []Binding, width int) string {
	shortcutStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	nameStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender)

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, nameStyle.Render(b.Desc)+" "+shortcutStyle.Render("["+b.Key+"]"))
	}
	all := strings.Join(parts, "  ")

	if lipgloss.Width(all) > width {
		all = ansi.Truncate(all, width, "…")
	}
	padding := max((width-lipgloss.Width(all))/2, 0)

	return lipgloss.NewStyle().
		Background(styles.DeepPurple).
		Width(max(width, 1)).
		Render(strings.Repeat(" ", padding) + all)
}
