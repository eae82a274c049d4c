package tui

// FocusTarget represents what currently receives key input.
type FocusTarget int

const (
	// FocusSlider routes keys to the trim slider.
	FocusSlider FocusTarget = iota
	// FocusExportForm routes keys to the export form.
	FocusExportForm
	// FocusConfirmQuit routes keys to the quit confirmation.
	FocusConfirmQuit
	// FocusHelp shows the help overlay; any key closes it.
	FocusHelp
)

// formActive reports whether a huh form owns the input.
func (f FocusTarget) formActive() bool {
	return f == FocusExportForm || f == FocusConfirmQuit
}
