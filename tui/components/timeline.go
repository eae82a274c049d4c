package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-trim-cli/slider"
	"github.com/user/video-trim-cli/tui/styles"
)

// Timeline box geometry. The track starts TimelineTrackColumn cells in from
// the left edge of the box (border plus one space of padding).
const (
	TimelineTrackColumn = 2
	timelineChrome      = 4
)

// TimelineTrackWidth returns the number of track cells for a box of width.
func TimelineTrackWidth(width int) int {
	return max(width-timelineChrome, 0)
}

// TimelineTrackRow returns the box row holding the track, counted from the
// top border.
func TimelineTrackRow(filmRows int) int {
	return 1 + filmRows
}

// TimelineHeight returns the total height of the rendered box.
func TimelineHeight(filmRows int) int {
	return filmRows + 4
}

// TimelineState holds everything the trim timeline needs to draw itself.
type TimelineState struct {
	Layout     slider.Layout
	Thumbnails []slider.Thumbnail
	FilmRows   int
	Selected   slider.Handle
	Dragging   bool
	// Spinner is shown in the header while thumbnails load.
	Spinner string
}

// Timeline renders the trim slider in a bordered box: the filmstrip, the
// track with start/end handles and progress, and the time labels.
//
//	╭─ Trim ──────────────────────╮
//	│ ▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀ │
//	│ ───[━━━━━━┃━━━━━━━]──────── │
//	│  00:12             00:47    │
//	╰─────────────────────────────╯
func Timeline(state TimelineState, width int) string {
	trackWidth := TimelineTrackWidth(width)
	if trackWidth < 2 {
		return ""
	}

	title := "Trim"
	if state.Dragging {
		title += " · dragging"
	}
	if state.Spinner != "" {
		title += " " + state.Spinner
	}

	var lines []string
	for _, row := range Filmstrip(state.Thumbnails, trackWidth, state.FilmRows) {
		lines = append(lines, " "+row+" ")
	}
	lines = append(lines, " "+Track(state, trackWidth)+" ")
	lines = append(lines, " "+Labels(state.Layout, trackWidth)+" ")

	return RenderInfoBox(title, lines, width)
}

// cellOf maps a track position to the cell drawing it.
func cellOf(x float64, width int) int {
	if math.IsNaN(x) {
		return 0
	}
	return min(max(int(math.Floor(x)), 0), width-1)
}

// Track renders the slider track line of width cells.
func Track(state TimelineState, width int) string {
	l := state.Layout
	sx := cellOf(l.StartX, width)
	ex := cellOf(l.EndX, width)
	px := cellOf(l.ProgressX, width)

	outside := styles.TrackOutside
	inside := styles.TrackInside
	if state.Selected == slider.HandleWholeRange {
		inside = inside.Foreground(styles.Cyan)
	}
	handle := styles.TrimHandle
	progress := styles.ProgressMark
	selected := styles.Highlight

	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == sx && i == ex:
			b.WriteString(handleStyle(state, slider.HandleStart, handle, selected).Render("|"))
		case i == sx:
			b.WriteString(handleStyle(state, slider.HandleStart, handle, selected).Render("["))
		case i == ex:
			b.WriteString(handleStyle(state, slider.HandleEnd, handle, selected).Render("]"))
		case i == px:
			b.WriteString(handleStyle(state, slider.HandleProgress, progress, selected).Render("┃"))
		case i > sx && i < ex:
			b.WriteString(inside.Render("━"))
		default:
			b.WriteString(outside.Render("─"))
		}
	}
	return b.String()
}

func handleStyle(state TimelineState, h slider.Handle, normal, selected lipgloss.Style) lipgloss.Style {
	if state.Selected == h {
		return selected
	}
	return normal
}

// Labels renders the start and end time labels at their layout positions.
// The end label wins where the two overlap.
func Labels(l slider.Layout, width int) string {
	buf := []rune(strings.Repeat(" ", width))
	put := func(x float64, label string) {
		start := max(int(math.Round(x)), 0)
		for i, r := range []rune(label) {
			if start+i < width {
				buf[start+i] = r
			}
		}
	}
	put(l.StartLabelX, l.StartLabel)
	put(l.EndLabelX, l.EndLabel)
	return lipgloss.NewStyle().Foreground(styles.LightLavender).Render(string(buf))
}
