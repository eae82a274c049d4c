package clip

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/video-trim-cli/deps"
	"github.com/user/video-trim-cli/pkg/timeutil"
)

// Job is one trimmed-range export.
type Job struct {
	VideoPath  string
	Start      float64
	End        float64
	OutputPath string
	Reencode   bool
}

// Duration returns the trimmed length in seconds.
func (j Job) Duration() float64 {
	return j.End - j.Start
}

// Validate checks the range and paths before ffmpeg is started.
func (j Job) Validate() error {
	if j.VideoPath == "" {
		return fmt.Errorf("export: no input video")
	}
	if j.OutputPath == "" {
		return fmt.Errorf("export: no output path")
	}
	if j.Start < 0 {
		return fmt.Errorf("export: start %.3f is negative", j.Start)
	}
	if j.End <= j.Start {
		return fmt.Errorf("export: end %s is not after start %s", timeutil.FormatTime(j.End), timeutil.FormatTime(j.Start))
	}
	if filepath.Clean(j.VideoPath) == filepath.Clean(j.OutputPath) {
		return fmt.Errorf("export: output would overwrite the input video")
	}
	return nil
}

// Args builds the ffmpeg arguments. Seeking before -i is fast; with stream
// copy the cut snaps to the previous keyframe, re-encoding is frame exact.
// Progress is written as key=value lines to stdout.
func (j Job) Args() []string {
	args := []string{
		"-y",
		"-v", "error",
		"-nostats",
		"-progress", "pipe:1",
		"-ss", timeutil.FormatFFmpeg(j.Start),
		"-i", j.VideoPath,
		"-t", timeutil.FormatFFmpeg(j.Duration()),
	}
	if j.Reencode {
		args = append(args,
			"-c:v", "libx264",
			"-preset", "fast",
			"-c:a", "aac",
		)
	} else {
		args = append(args,
			"-c", "copy",
			"-avoid_negative_ts", "make_zero",
		)
	}
	return append(args, j.OutputPath)
}

// ProgressFunc receives the completed fraction in [0,1].
type ProgressFunc func(fraction float64)

// Export runs ffmpeg for job and returns the size of the written file.
// onProgress may be nil.
func Export(ctx context.Context, ffmpegPath string, job Job, onProgress ProgressFunc) (int64, error) {
	if err := job.Validate(); err != nil {
		return 0, err
	}
	if err := deps.CheckFfmpeg(ffmpegPath); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, job.Args()...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	readProgress(stdout, job.Duration(), onProgress)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("ffmpeg failed: %w\n%s", err, strings.TrimSpace(stderr.String()))
	}

	info, err := os.Stat(job.OutputPath)
	if err != nil {
		return 0, fmt.Errorf("stat output: %w", err)
	}
	if onProgress != nil {
		onProgress(1)
	}
	return info.Size(), nil
}

// readProgress consumes ffmpeg -progress output until EOF.
func readProgress(r io.Reader, duration float64, onProgress ProgressFunc) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if onProgress == nil {
			continue
		}
		if f, ok := parseProgressLine(scanner.Text(), duration); ok {
			onProgress(f)
		}
	}
}

// parseProgressLine maps an out_time_us line (microseconds, despite the
// out_time_ms alias printing the same value) to a fraction of duration.
func parseProgressLine(line string, duration float64) (float64, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok || duration <= 0 {
		return 0, false
	}
	switch key {
	case "out_time_us", "out_time_ms":
		us, err := strconv.ParseInt(value, 10, 64)
		if err != nil || us < 0 {
			return 0, false
		}
		f := float64(us) / 1e6 / duration
		if f > 1 {
			f = 1
		}
		return f, true
	case "progress":
		if value == "end" {
			return 1, true
		}
	}
	return 0, false
}
