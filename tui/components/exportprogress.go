package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/user/video-trim-cli/db"
	"github.com/user/video-trim-cli/pkg/timeutil"
	"github.com/user/video-trim-cli/tui/styles"
)

// ExportsState holds the state for the exports panel.
type ExportsState struct {
	// Exports are the most recent exports, newest first.
	Exports []db.Export
	// Progress maps a processing export ID to its completed fraction.
	Progress map[string]float64
}

// ExportProgress renders a bordered info box listing recent exports. A
// processing export shows a progress bar with its percentage. Returns an
// empty string when there is nothing to show.
func ExportProgress(state ExportsState, width int) string {
	if len(state.Exports) == 0 || width < 10 {
		return ""
	}

	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	// Box border = 2, plus 1 space padding each side
	innerW := max(width-4, 6)

	var contentLines []string
	for _, e := range state.Exports {
		if e.Status == db.StatusProcessing {
			contentLines = append(contentLines, " "+progressBar(state.Progress[e.ID], innerW))
		}
		line := fmt.Sprintf("%s %s  %s–%s",
			statusIcon(e.Status),
			filepath.Base(e.OutputPath),
			timeutil.FormatSeconds(e.Start),
			timeutil.FormatSeconds(e.End))
		if e.Status == db.StatusError && e.Error != "" {
			line += "  " + e.Error
		}
		if lipgloss.Width(line) > innerW {
			line = ansi.Truncate(line, innerW, "...")
		}
		contentLines = append(contentLines, " "+textStyle.Render(line))
	}

	return RenderInfoBox("Exports", contentLines, width)
}

func statusIcon(status string) string {
	switch status {
	case db.StatusComplete:
		return lipgloss.NewStyle().Foreground(styles.Green).Render("✓")
	case db.StatusError:
		return lipgloss.NewStyle().Foreground(styles.Red).Render("✗")
	case db.StatusProcessing:
		return lipgloss.NewStyle().Foreground(styles.Amber).Render("●")
	default:
		return lipgloss.NewStyle().Foreground(styles.Lavender).Render("○")
	}
}

// progressBar renders a bar with a trailing percentage label in width cells.
func progressBar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)

	// " XXX%" label plus 1 space padding
	barWidth := max(width-6, 4)
	filled := min(int(float64(barWidth)*fraction), barWidth)
	empty := barWidth - filled

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	bar := greenStyle.Render(strings.Repeat("█", filled)) + amberStyle.Render(strings.Repeat("░", empty))
	return bar + textStyle.Render(fmt.Sprintf(" %3d%%", int(fraction*100)))
}
