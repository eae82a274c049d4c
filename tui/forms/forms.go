// Package forms provides huh-based form components for the TUI.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// NewConfirmQuitForm creates a huh confirm form asking whether to quit while
// exports are still running. The result pointer is bound to the confirm
// field value.
func NewConfirmQuitForm(running int, quit *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Quit now?").
				Description(fmt.Sprintf("%d export(s) still running. They resume on the next start.", running)).
				Affirmative("Yes, quit").
				Negative("No, go back").
				Value(quit),
		),
	).WithTheme(Theme())
}
