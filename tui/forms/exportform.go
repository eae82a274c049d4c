package forms

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/user/video-trim-cli/pkg/timeutil"
)

// ExportFormResult holds the data returned by a completed export form.
type ExportFormResult struct {
	OutputPath string
	Reencode   bool
	Confirm    bool
}

// NewExportForm creates a huh form for exporting the trimmed range of
// videoPath. The result pointer is bound to the form fields; OutputPath and
// Reencode should be prefilled by the caller.
func NewExportForm(videoPath string, start, end float64, result *ExportFormResult) *huh.Form {
	header := fmt.Sprintf("Export %s – %s (%s)",
		timeutil.FormatTime(start),
		timeutil.FormatTime(end),
		timeutil.FormatSeconds(end-start))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(header).Description(filepath.Base(videoPath)),

			huh.NewInput().
				Title("Output").
				Description("Destination file").
				Value(&result.OutputPath).
				Validate(func(s string) error {
					return validateOutputPath(videoPath, s)
				}),

			huh.NewConfirm().
				Title("Re-encode?").
				Description("Frame-accurate cut, slower than stream copy").
				Affirmative("Re-encode").
				Negative("Stream copy").
				Value(&result.Reencode),

			huh.NewConfirm().
				Title("Start export?").
				Affirmative("Export").
				Negative("Cancel").
				Value(&result.Confirm),
		),
	).WithTheme(Theme())
}

func validateOutputPath(videoPath, out string) error {
	out = strings.TrimSpace(out)
	if out == "" {
		return errors.New("output path is required")
	}
	if filepath.Clean(out) == filepath.Clean(videoPath) {
		return errors.New("output must differ from the source video")
	}
	return nil
}
