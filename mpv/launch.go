package mpv

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/user/video-trim-cli/deps"
)

// LaunchOptions controls how mpv is started.
type LaunchOptions struct {
	SocketPath string
	// StartPaused opens the video paused on the first frame.
	StartPaused bool
	// Start is the initial position in seconds.
	Start float64
}

// Args builds the mpv command line for videoPath.
func (o LaunchOptions) Args(videoPath string) []string {
	args := []string{
		"--input-ipc-server=" + o.SocketPath,
		"--keep-open=yes",
		"--force-window=yes",
		"--osd-level=1",
	}
	if o.StartPaused {
		args = append(args, "--pause")
	}
	if o.Start > 0 {
		args = append(args, fmt.Sprintf("--start=%.3f", o.Start))
	}
	return append(args, videoPath)
}

// Launch starts mpv with the IPC socket enabled. A stale socket file from a
// previous run is removed first. Returns the running process for cleanup.
func Launch(videoPath string, opts LaunchOptions) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}
	if opts.SocketPath == "" {
		return nil, fmt.Errorf("mpv socket path is empty")
	}
	if err := os.Remove(opts.SocketPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale mpv socket: %w", err)
	}

	cmd := exec.Command("mpv", opts.Args(videoPath)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start mpv: %w", err)
	}
	return cmd, nil
}
