// Package config loads video-trim-cli settings from
// ~/.config/video-trim-cli/config.yaml with .env and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/user/video-trim-cli/slider"
)

const (
	// DefaultSocketPath is the mpv IPC socket used when none is configured.
	DefaultSocketPath = "/tmp/video-trim-cli-mpv.sock"

	EnvFFmpegPath  = "TRIM_FFMPEG_PATH"
	EnvFFprobePath = "TRIM_FFPROBE_PATH"
	EnvMpvSocket   = "TRIM_MPV_SOCKET"
	EnvLogLevel    = "TRIM_LOG_LEVEL"
)

// Config is the application configuration.
type Config struct {
	Slider     slider.Config `yaml:"slider"`
	Thumbnails struct {
		Width   int `yaml:"width"`   // cells per thumbnail
		Workers int `yaml:"workers"` // parallel ffmpeg processes
	} `yaml:"thumbnails"`
	Export struct {
		OutputDir string `yaml:"output_dir"` // empty means next to the source video
		Reencode  bool   `yaml:"reencode"`
	} `yaml:"export"`
	MPV struct {
		SocketPath string `yaml:"socket_path"`
	} `yaml:"mpv"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`

	// Tool paths only come from the environment.
	FFmpegPath  string `yaml:"-"`
	FFprobePath string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{Slider: slider.DefaultConfig()}
	cfg.Thumbnails.Width = 8
	cfg.Thumbnails.Workers = 4
	cfg.MPV.SocketPath = DefaultSocketPath
	cfg.Log.Level = "info"
	cfg.FFmpegPath = "ffmpeg"
	cfg.FFprobePath = "ffprobe"
	return cfg
}

// DefaultPath returns ~/.config/video-trim-cli/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "video-trim-cli", "config.yaml"), nil
}

// Load reads .env from the working directory (if present), then the config
// file at path, or at the default location when path is empty. It returns
// the path that was used.
func Load(path string) (*Config, string, error) {
	// A missing .env is normal; existing environment variables win.
	_ = godotenv.Load()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve config path: %w", err)
		}
		path = p
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadFile loads the config file at path over the defaults and applies
// environment overrides. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		// Unmarshal over the defaults so unset keys keep them.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := getEnv(EnvFFmpegPath); v != "" {
		c.FFmpegPath = v
	}
	if v := getEnv(EnvFFprobePath); v != "" {
		c.FFprobePath = v
	}
	if v := getEnv(EnvMpvSocket); v != "" {
		c.MPV.SocketPath = v
	}
	if v := getEnv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Slider.MinSpan < 0 {
		return fmt.Errorf("slider.min_span must not be negative, got %v", c.Slider.MinSpan)
	}
	if c.Slider.MaxSpan < 0 {
		return fmt.Errorf("slider.max_span must not be negative, got %v", c.Slider.MaxSpan)
	}
	if c.Slider.MaxSpan > 0 && c.Slider.MaxSpan < c.Slider.MinSpan {
		return fmt.Errorf("slider.max_span (%v) is smaller than slider.min_span (%v)", c.Slider.MaxSpan, c.Slider.MinSpan)
	}
	if c.Thumbnails.Width < 1 {
		return fmt.Errorf("thumbnails.width must be at least 1, got %d", c.Thumbnails.Width)
	}
	if c.Thumbnails.Workers < 1 {
		return fmt.Errorf("thumbnails.workers must be at least 1, got %d", c.Thumbnails.Workers)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
