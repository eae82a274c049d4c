package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-trim-cli/tui/styles"
)

// Theme returns the huh theme for the export and quit forms. Only the note,
// input and confirm fields are styled; the forms use nothing else.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	f := &t.Focused
	f.Base = f.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.BrightPurple).
		PaddingLeft(1)
	f.Title = lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	f.NoteTitle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	f.Description = lipgloss.NewStyle().Foreground(styles.Lavender)
	f.ErrorIndicator = lipgloss.NewStyle().Foreground(styles.Red).Bold(true)
	f.ErrorMessage = lipgloss.NewStyle().Foreground(styles.Red)

	f.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Cyan)
	f.TextInput.Cursor = lipgloss.NewStyle().Foreground(styles.Cyan)
	f.TextInput.Text = lipgloss.NewStyle().Foreground(styles.LightLavender)
	f.TextInput.Placeholder = lipgloss.NewStyle().Foreground(styles.Purple)

	f.FocusedButton = button(styles.BrightPurple, styles.LightLavender).Bold(true)
	f.BlurredButton = button(styles.Purple, styles.Lavender)
	f.Next = f.FocusedButton

	// Blurred fields keep the layout but drop the accent colours.
	b := &t.Blurred
	*b = *f
	b.Base = b.Base.BorderStyle(lipgloss.HiddenBorder())
	b.Title = lipgloss.NewStyle().Foreground(styles.Lavender)
	b.NoteTitle = lipgloss.NewStyle().Foreground(styles.Lavender)
	b.Description = lipgloss.NewStyle().Foreground(styles.Purple)
	b.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Purple)
	b.TextInput.Cursor = lipgloss.NewStyle().Foreground(styles.Purple)
	b.TextInput.Text = lipgloss.NewStyle().Foreground(styles.Lavender)
	b.FocusedButton = button(styles.Purple, styles.Lavender)
	b.BlurredButton = button(styles.DeepPurple, styles.Purple)
	b.Next = b.FocusedButton

	return t
}

func button(bg, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(fg).Padding(0, 1)
}
