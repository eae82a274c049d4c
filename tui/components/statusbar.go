// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-trim-cli/pkg/timeutil"
	"github.com/user/video-trim-cli/tui/styles"
)

// StatusBarState holds the current playback and trim state for the status bar.
type StatusBarState struct {
	// Paused indicates if playback is paused
	Paused bool
	// Loop indicates the A-B loop over the trimmed range is on
	Loop bool
	// TimePos is the current playback position in seconds
	TimePos float64
	// Duration is the total video duration in seconds
	Duration float64
	// Start and End bound the trimmed range in seconds
	Start float64
	End   float64
	// Selected is the name of the handle the arrow keys move
	Selected string
	// Title is the video file name
	Title string
}

// StatusBar renders the status bar component: play/pause icon, position,
// trimmed range and span on the left, selected handle and loop flag on the
// right.
func StatusBar(state StatusBarState, width int) string {
	playIcon := "▶"
	if state.Paused {
		playIcon = "⏸"
	}

	loopIcon := ""
	if state.Loop {
		loopIcon = " ⟲"
	}

	leftContent := fmt.Sprintf(" %s %s / %s  ✂ %s – %s (%s)",
		playIcon,
		timeutil.FormatSeconds(state.TimePos),
		timeutil.FormatSeconds(state.Duration),
		timeutil.FormatSeconds(state.Start),
		timeutil.FormatSeconds(state.End),
		timeutil.FormatSeconds(state.End-state.Start))
	rightContent := fmt.Sprintf("%s  ◆ %s%s ", state.Title, state.Selected, loopIcon)

	padding := width - lipgloss.Width(leftContent) - lipgloss.Width(rightContent)
	if padding < 1 {
		padding = 1
	}
	content := leftContent + fmt.Sprintf("%*s", padding, "") + rightContent

	statusBarStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		MaxWidth(max(width, 1))

	return statusBarStyle.Render(content)
}
