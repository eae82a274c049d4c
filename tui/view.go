package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-trim-cli/pkg/timeutil"
	"github.com/user/video-trim-cli/slider"
	"github.com/user/video-trim-cli/tui/components"
	"github.com/user/video-trim-cli/tui/layout"
	"github.com/user/video-trim-cli/tui/styles"
)

// View renders the current state of the model as a string.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.focus == FocusHelp {
		return components.HelpOverlay(m.keys.helpGroups(), m.width, m.height)
	}

	if m.width > 0 && m.width < layout.MinTerminalWidth {
		warningStyle := lipgloss.NewStyle().
			Foreground(styles.Pink).
			Bold(true)
		hintStyle := lipgloss.NewStyle().
			Foreground(styles.Lavender).
			Italic(true)
		return warningStyle.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			hintStyle.Render(fmt.Sprintf("Minimum width: %d columns", layout.MinTerminalWidth)) + "\n" +
			hintStyle.Render("Please resize your terminal.")
	}

	sections := []string{
		components.StatusBar(m.statusBarState(), m.width),
		components.Timeline(m.timelineState(), m.width),
	}

	switch m.focus {
	case FocusExportForm:
		sections = append(sections, components.RenderInfoBox("Export", m.formLines(m.exportForm.View()), m.width))
	case FocusConfirmQuit:
		sections = append(sections, components.RenderInfoBox("Quit", m.formLines(m.quitForm.View()), m.width))
	default:
		if panels := m.renderPanels(); panels != "" {
			sections = append(sections, panels)
		}
	}

	footer := 1
	sections = append(sections, components.ControlsDisplay(toBindings(m.keys.ShortHelp()), m.width))
	if m.result != "" {
		footer++
		style := styles.Success
		if m.resultErr {
			style = styles.Warning
		}
		sections = append(sections, style.Render(" "+m.result))
	}

	content := strings.Join(sections, "\n")
	if m.height <= 0 {
		return content
	}
	return layout.Container{Width: m.width, Height: m.height, Footer: footer}.Render(content)
}

func (m *Model) statusBarState() components.StatusBarState {
	return components.StatusBarState{
		Paused:   m.paused,
		Loop:     m.loop,
		TimePos:  m.timePos,
		Duration: m.slider.Duration(),
		Start:    m.slider.Start(),
		End:      m.slider.End(),
		Selected: m.selected.String(),
		Title:    m.title(),
	}
}

func (m *Model) timelineState() components.TimelineState {
	state := components.TimelineState{
		Layout:     m.slider.Layout(float64(m.labelWidth())),
		Thumbnails: m.thumbs,
		FilmRows:   m.filmRows,
		Selected:   m.selected,
	}
	if _, ok := m.slider.Dragging(); ok {
		state.Dragging = true
	}
	if m.thumbsLoading {
		state.Spinner = m.spinner.View()
	}
	return state
}

// formLines pads a form view by one column inside its box.
func (m *Model) formLines(view string) []string {
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	for i, l := range lines {
		lines[i] = " " + l
	}
	return lines
}

// renderPanels renders the selection and exports panels, side by side on
// wide terminals and stacked otherwise.
func (m *Model) renderPanels() string {
	left, right, split := layout.ComputeColumnWidths(m.width)
	selection := m.renderSelection(left)
	exports := components.ExportProgress(components.ExportsState{
		Exports:  m.exports,
		Progress: m.progress,
	}, right)

	if exports == "" {
		return selection
	}
	if !split {
		return selection + "\n" + exports
	}
	return layout.JoinColumns(
		layout.Column{Content: selection, Width: left},
		layout.Column{Content: exports, Width: right},
	)
}

// renderSelection renders the trimmed range and active constraints.
func (m *Model) renderSelection(width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Width(10)
	valueStyle := styles.PrimaryText

	cfg := m.slider.Config()
	maxSpan := "none"
	if cfg.MaxSpan > 0 {
		maxSpan = timeutil.FormatTime(cfg.MaxSpan)
	}

	row := func(label, value string) string {
		return " " + labelStyle.Render(label) + valueStyle.Render(value)
	}
	lines := []string{
		row("Start", timeutil.FormatTime(m.slider.Start())),
		row("End", timeutil.FormatTime(m.slider.End())),
		row("Span", timeutil.FormatTime(m.slider.Span())),
		row("Limits", fmt.Sprintf("min %s, max %s", timeutil.FormatTime(cfg.MinSpan), maxSpan)),
	}
	if h, ok := m.slider.Dragging(); ok {
		lines = append(lines, " "+styles.SecondaryText.Render("dragging "+h.String()))
	} else if m.selected == slider.HandleWholeRange {
		lines = append(lines, " "+styles.SecondaryText.Render("←/→ move the whole range"))
	}
	return components.RenderInfoBox("Selection", lines, width)
}
