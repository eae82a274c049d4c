package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	Binary     string
	InstallURL string
}

func (e *DependencyError) Error() string {
	if e.Binary != "" && e.Binary != e.Name {
		return fmt.Sprintf("%s not found at %s. Install from: %s", e.Name, e.Binary, e.InstallURL)
	}
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Tool is an external program the CLI shells out to.
type Tool struct {
	Name       string
	Binary     string // name on PATH or an absolute path
	InstallURL string
}

// Status is the result of looking a tool up.
type Status struct {
	Tool Tool
	Path string
	Err  error
}

// Tools lists mpv, ffmpeg and ffprobe. Empty binaries fall back to the
// tool name.
func Tools(ffmpegPath, ffprobePath string) []Tool {
	return []Tool{
		{Name: "mpv", Binary: "mpv", InstallURL: MpvInstallURL},
		{Name: "ffmpeg", Binary: orDefault(ffmpegPath, "ffmpeg"), InstallURL: FfmpegInstallURL},
		{Name: "ffprobe", Binary: orDefault(ffprobePath, "ffprobe"), InstallURL: FfmpegInstallURL},
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Check resolves the tool binary.
func Check(t Tool) Status {
	path, err := exec.LookPath(t.Binary)
	if err != nil {
		return Status{Tool: t, Err: &DependencyError{Name: t.Name, Binary: t.Binary, InstallURL: t.InstallURL}}
	}
	return Status{Tool: t, Path: path}
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error {
	return Check(Tool{Name: "mpv", Binary: "mpv", InstallURL: MpvInstallURL}).Err
}

// CheckFfmpeg checks the ffmpeg binary (PATH lookup when binary is empty).
func CheckFfmpeg(binary string) error {
	return Check(Tool{Name: "ffmpeg", Binary: orDefault(binary, "ffmpeg"), InstallURL: FfmpegInstallURL}).Err
}

// CheckFfprobe checks the ffprobe binary (PATH lookup when binary is empty).
func CheckFfprobe(binary string) error {
	return Check(Tool{Name: "ffprobe", Binary: orDefault(binary, "ffprobe"), InstallURL: FfmpegInstallURL}).Err
}

// CheckAll checks all dependencies and returns the status of each.
func CheckAll(ffmpegPath, ffprobePath string) []Status {
	tools := Tools(ffmpegPath, ffprobePath)
	statuses := make([]Status, 0, len(tools))
	for _, t := range tools {
		statuses = append(statuses, Check(t))
	}
	return statuses
}

// Missing returns the errors of the tools that could not be found.
func Missing(statuses []Status) []error {
	var errs []error
	for _, s := range statuses {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errs
}
