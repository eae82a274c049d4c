package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/video-trim-cli/clip"
	"github.com/user/video-trim-cli/db"
	"github.com/user/video-trim-cli/logger"
	"github.com/user/video-trim-cli/pkg/timeutil"
	"github.com/user/video-trim-cli/thumbs"
)

var exportCmd = &cobra.Command{
	Use:   "export <video-file>",
	Short: "Export a trimmed range without the TUI",
	Long: `Export the range between --start and --end with ffmpeg. The export is
recorded in the history like exports started from the TUI.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		absPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}

		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		output, _ := cmd.Flags().GetString("output")
		reencode, _ := cmd.Flags().GetBool("reencode")
		if !cmd.Flags().Changed("reencode") {
			reencode = cfg.Export.Reencode
		}

		start, err := timeutil.ParseTimeToSeconds(startStr)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}

		duration, err := thumbs.ProbeDuration(cmd.Context(), cfg.FFprobePath, absPath)
		if err != nil {
			return fmt.Errorf("failed to read duration: %w", err)
		}

		end := duration
		if endStr != "" {
			if end, err = timeutil.ParseTimeToSeconds(endStr); err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
		}
		if end > duration {
			end = duration
		}
		if span := end - start; span < cfg.Slider.MinSpan {
			return fmt.Errorf("range %s is shorter than the minimum span %s",
				timeutil.FormatTime(span), timeutil.FormatTime(cfg.Slider.MinSpan))
		}
		if cfg.Slider.MaxSpan > 0 && end-start > cfg.Slider.MaxSpan {
			return fmt.Errorf("range %s is longer than the maximum span %s",
				timeutil.FormatTime(end-start), timeutil.FormatTime(cfg.Slider.MaxSpan))
		}

		if output == "" {
			output = clip.OutputPath(absPath, cfg.Export.OutputDir, start, end, reencode)
		}

		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		processor := &clip.Processor{
			DB:         database,
			FFmpegPath: cfg.FFmpegPath,
			Log:        logger.L(),
			OnProgress: func(_ string, f float64) {
				fmt.Fprintf(os.Stderr, "\rExporting... %3d%%", int(f*100))
			},
		}

		id, err := processor.Enqueue(clip.Job{
			VideoPath:  absPath,
			Start:      start,
			End:        end,
			OutputPath: output,
			Reencode:   reencode,
		})
		if err != nil {
			return err
		}
		e, err := db.SelectExportByID(database, id)
		if err != nil {
			return err
		}

		err = processor.Process(cmd.Context(), e)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			logger.Error("export failed", zap.String("id", id), zap.Error(err))
			return fmt.Errorf("export failed: %w", err)
		}

		done, err := db.SelectExportByID(database, id)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %s – %s to %s (%s)\n",
			timeutil.FormatTime(start),
			timeutil.FormatTime(end),
			shortPath(output),
			humanize.Bytes(uint64(done.Filesize)))
		return nil
	},
}

// shortPath shows paths under the working directory relative to it.
func shortPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func init() {
	exportCmd.Flags().String("start", "0", "trim start (e.g. 1:30 or 90)")
	exportCmd.Flags().String("end", "", "trim end (default: end of video)")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: <name>_trim_<start>_<end><ext>)")
	exportCmd.Flags().Bool("reencode", false, "re-encode for a frame-accurate cut")
	rootCmd.AddCommand(exportCmd)
}
