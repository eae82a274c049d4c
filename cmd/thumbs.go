package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/video-trim-cli/deps"
	"github.com/user/video-trim-cli/logger"
	"github.com/user/video-trim-cli/pkg/timeutil"
	"github.com/user/video-trim-cli/slider"
	"github.com/user/video-trim-cli/thumbs"
	"github.com/user/video-trim-cli/tui/components"
)

var thumbsCmd = &cobra.Command{
	Use:   "thumbs <video-file>",
	Short: "Print the thumbnail filmstrip of a video",
	Long: `Generate the same filmstrip the trim TUI shows and print it to the terminal.
Useful to check that ffmpeg frame extraction works for a file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		absPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		width, _ := cmd.Flags().GetInt("width")
		if width < 8 {
			return fmt.Errorf("--width must be at least 8, got %d", width)
		}
		if err := deps.CheckFfmpeg(cfg.FFmpegPath); err != nil {
			return err
		}

		duration, err := thumbs.ProbeDuration(cmd.Context(), cfg.FFprobePath, absPath)
		if err != nil {
			return fmt.Errorf("failed to read duration: %w", err)
		}

		gen := thumbs.NewGenerator(cfg.FFmpegPath, cfg.Thumbnails.Width, cfg.Thumbnails.Workers, logger.L())
		strip, err := thumbs.Collect(cmd.Context(), gen, slider.ThumbnailRequest{
			Asset:      absPath,
			Duration:   duration,
			TrackWidth: float64(width),
			Generation: 1,
		})
		if err != nil {
			return err
		}

		for _, line := range components.Filmstrip(strip, width, gen.Rows) {
			fmt.Println(line)
		}
		fmt.Println(ruler(strip, width))
		fmt.Printf("%d/%d frames, duration %s\n",
			len(strip), len(thumbs.Plan(duration, float64(width), gen.CellWidth)), timeutil.FormatSeconds(duration))
		return nil
	},
}

// ruler labels the start of each thumbnail with its timestamp where it fits.
func ruler(strip []slider.Thumbnail, width int) string {
	buf := []rune(strings.Repeat(" ", width))
	next := 0
	for _, th := range strip {
		at := int(th.OffsetPixels)
		label := []rune("|" + timeutil.FormatSeconds(th.Seconds))
		if at < next || at+len(label) > width {
			continue
		}
		copy(buf[at:], label)
		next = at + len(label) + 1
	}
	return string(buf)
}

func init() {
	thumbsCmd.Flags().Int("width", 76, "filmstrip width in cells")
	rootCmd.AddCommand(thumbsCmd)
}
