// Package styles holds the Ciapre palette and the shared Lipgloss styles of
// the trim TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Ciapre palette (Gogh). Names describe the role a colour plays on screen
// rather than its hue.
const (
	DeepPurple    = lipgloss.Color("#191C27") // background, hint bar
	DarkPurple    = lipgloss.Color("#181818") // status bar, empty filmstrip cells
	Purple        = lipgloss.Color("#5C4F4B") // borders, track outside the range
	BrightPurple  = lipgloss.Color("#724D7C") // focus and selection
	Lavender      = lipgloss.Color("#AEA47A") // secondary text, track inside the range
	LightLavender = lipgloss.Color("#F3DBB2") // primary text
	Pink          = lipgloss.Color("#D33061") // box titles, progress indicator
	Cyan          = lipgloss.Color("#3097C6") // trim handles, key hints
	Amber         = lipgloss.Color("#CC8B3F") // running exports
	Red           = lipgloss.Color("#AC3835") // errors
	Green         = lipgloss.Color("#A6A75D") // finished exports
)

// Track styles.
var (
	TrackOutside = lipgloss.NewStyle().Foreground(Purple)
	TrackInside  = lipgloss.NewStyle().Foreground(Lavender)
	TrimHandle   = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	ProgressMark = lipgloss.NewStyle().Foreground(Pink).Bold(true)
)

// Highlight marks the handle the arrow keys move.
var Highlight = lipgloss.NewStyle().
	Background(BrightPurple).
	Foreground(LightLavender).
	Bold(true)

var (
	PrimaryText   = lipgloss.NewStyle().Foreground(LightLavender)
	SecondaryText = lipgloss.NewStyle().Foreground(Lavender)
)

// Result line styles.
var (
	Warning = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Success = lipgloss.NewStyle().Foreground(Green).Bold(true)
)
