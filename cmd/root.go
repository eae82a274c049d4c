package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/video-trim-cli/config"
	"github.com/user/video-trim-cli/deps"
	"github.com/user/video-trim-cli/logger"
)

var Version = "0.1.0"

var (
	// cfgFile overrides the default config location.
	cfgFile string
	// logLevel overrides the configured log level.
	logLevel string
	// cfg is the configuration loaded before every command.
	cfg *config.Config
	// cfgPath is the file cfg was loaded from.
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "video-trim-cli",
	Short: "Trim video files from the terminal",
	Long: `video-trim-cli opens a video in mpv and lets you pick a trimmed range
with a terminal range slider, then exports it with ffmpeg.

Features:
  - Drag start/end handles with the mouse or keyboard
  - Filmstrip thumbnails along the slider
  - Play or loop the trimmed range in mpv
  - Background exports with a history kept in SQLite`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("video-trim-cli version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that all required system dependencies (mpv, ffmpeg, ffprobe) are installed and available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		statuses := deps.CheckAll(cfg.FFmpegPath, cfg.FFprobePath)
		for _, s := range statuses {
			if s.Err != nil {
				fmt.Printf("✗ %s: NOT FOUND\n", s.Tool.Name)
				fmt.Printf("  Install from: %s\n", s.Tool.InstallURL)
				continue
			}
			fmt.Printf("✓ %s: OK (%s)\n", s.Tool.Name, s.Path)
		}

		fmt.Println()
		if missing := deps.Missing(statuses); len(missing) > 0 {
			fmt.Println("Some dependencies are missing. Please install them to use all features.")
			return fmt.Errorf("%d dependencies missing", len(missing))
		}
		fmt.Println("All dependencies are installed!")
		return nil
	},
}

// setup loads the configuration, then starts the file logger.
func setup() error {
	loaded, path, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	cfg, cfgPath = loaded, path

	logPath := cfg.Log.File
	if logPath == "" {
		if logPath, err = logger.DefaultPath(); err != nil {
			return err
		}
	}
	if err := logger.Init(logger.Config{Level: cfg.Log.Level, OutputPath: logPath}); err != nil {
		// Logging is best effort; commands still work without it.
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		return nil
	}
	logger.Debug("config loaded", zap.String("path", cfgPath))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/video-trim-cli/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
