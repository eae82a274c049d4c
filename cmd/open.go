package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/video-trim-cli/clip"
	"github.com/user/video-trim-cli/db"
	"github.com/user/video-trim-cli/logger"
	"github.com/user/video-trim-cli/mpv"
	"github.com/user/video-trim-cli/pkg/timeutil"
	"github.com/user/video-trim-cli/thumbs"
	"github.com/user/video-trim-cli/tui"
)

// connectTimeout bounds how long open waits for the mpv socket.
const connectTimeout = 5 * time.Second

var openCmd = &cobra.Command{
	Use:   "open <video-file>",
	Short: "Open a video file for trimming",
	Long: `Open a video file in mpv and start the trim TUI. Drag the start and end
handles to choose the range, then press e to export it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		absPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}

		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		noThumbs, _ := cmd.Flags().GetBool("no-thumbnails")

		opts := tui.Options{
			VideoPath:  absPath,
			Config:     cfg,
			ConfigPath: cfgPath,
			Log:        logger.L(),
		}
		if startStr != "" {
			s, err := timeutil.ParseTimeToSeconds(startStr)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			opts.Start = &s
		}
		if endStr != "" {
			e, err := timeutil.ParseTimeToSeconds(endStr)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			opts.End = &e
		}

		launchOpts := mpv.LaunchOptions{SocketPath: cfg.MPV.SocketPath, StartPaused: true}
		if opts.Start != nil {
			launchOpts.Start = *opts.Start
		}
		process, err := mpv.Launch(absPath, launchOpts)
		if err != nil {
			return fmt.Errorf("failed to launch mpv: %w", err)
		}
		defer func() {
			if process.Process != nil {
				_ = process.Process.Kill()
				_ = process.Wait()
			}
		}()

		client := mpv.NewClient(cfg.MPV.SocketPath)
		ctx, cancel := context.WithTimeout(cmd.Context(), connectTimeout)
		defer cancel()
		if err := client.ConnectWithRetry(ctx, 100*time.Millisecond); err != nil {
			return fmt.Errorf("failed to connect to mpv: %w", err)
		}
		defer func() {
			_ = client.Quit()
			_ = client.Close()
		}()
		opts.Player = client

		if duration, err := client.GetDuration(); err == nil {
			opts.Duration = duration
		}

		database, err := db.Open()
		if err != nil {
			logger.Warn("export history unavailable", zap.Error(err))
		} else {
			defer database.Close()
			opts.DB = database
		}

		if !noThumbs {
			gen := thumbs.NewGenerator(cfg.FFmpegPath, cfg.Thumbnails.Width, cfg.Thumbnails.Workers, logger.L())
			opts.Thumbnails = gen
			opts.FilmRows = gen.Rows
		}

		logger.Info("session started",
			zap.String("video", absPath),
			zap.Float64("duration", opts.Duration))
		return tui.Run(opts)
	},
}

// resolveVideo makes path absolute and checks it names a video file.
func resolveVideo(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("video file not found: %s", absPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access video file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a video file: %s", absPath)
	}
	if !clip.IsVideoFile(absPath) {
		return "", fmt.Errorf("not a recognised video file: %s (expected %s)", filepath.Base(absPath), clip.VideoPattern)
	}
	return absPath, nil
}

func init() {
	openCmd.Flags().String("start", "", "initial trim start (e.g. 1:30 or 90)")
	openCmd.Flags().String("end", "", "initial trim end (e.g. 2:45)")
	openCmd.Flags().Bool("no-thumbnails", false, "disable the filmstrip")
	rootCmd.AddCommand(openCmd)
}
