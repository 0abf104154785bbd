package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings capture reads from config.toml.
type Config struct {
	APIBase             string
	ContentFile         string // optional YAML catalog override
	DataDir             string
	LogFile             string
	HeroInterval        time.Duration
	TestimonialInterval time.Duration
	SwipeThreshold      int // pixels
	CellWidth           int // pixels per terminal column
	FlushInterval       time.Duration
}

const (
	defaultConfigPath          = "~/.config/capture/config.toml"
	defaultAPIBase             = "http://127.0.0.1:5000"
	defaultHeroIntervalMS      = 5000
	defaultTestimonialInterval = 6000
	defaultSwipeThreshold      = 40
	defaultCellWidth           = 8
	defaultFlushIntervalS      = 30
	appDir                     = "capture"
)

type rawConfig struct {
	APIBase               string `toml:"api_base"`
	ContentFile           string `toml:"content_file"`
	DataDir               string `toml:"data_dir"`
	LogFile               string `toml:"log_file"`
	HeroIntervalMS        int    `toml:"hero_interval_ms"`
	TestimonialIntervalMS int    `toml:"testimonial_interval_ms"`
	SwipeThresholdPX      int    `toml:"swipe_threshold_px"`
	CellWidthPX           int    `toml:"cell_width_px"`
	FlushIntervalS        int    `toml:"flush_interval_s"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg, _ := fromRaw(rawConfig{})
	return cfg
}

// Load locates and parses the capture config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return fromRaw(raw)
}

func fromRaw(raw rawConfig) (Config, error) {
	cfg := Config{
		APIBase:             strings.TrimSpace(raw.APIBase),
		HeroInterval:        millis(raw.HeroIntervalMS, defaultHeroIntervalMS),
		TestimonialInterval: millis(raw.TestimonialIntervalMS, defaultTestimonialInterval),
		SwipeThreshold:      positive(raw.SwipeThresholdPX, defaultSwipeThreshold),
		CellWidth:           positive(raw.CellWidthPX, defaultCellWidth),
		FlushInterval:       time.Duration(positive(raw.FlushIntervalS, defaultFlushIntervalS)) * time.Second,
	}
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}

	if content := strings.TrimSpace(raw.ContentFile); content != "" {
		expanded, err := expandPath(content)
		if err != nil {
			return Config{}, fmt.Errorf("content_file: %w", err)
		}
		cfg.ContentFile = expanded
	}

	cfg.DataDir = mustExpand(strings.TrimSpace(raw.DataDir))
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(xdg.DataHome, appDir)
	}

	cfg.LogFile = mustExpand(strings.TrimSpace(raw.LogFile))
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(xdg.StateHome, appDir, "capture.log")
	}
	return cfg, nil
}

// DatabasePath returns the SQLite file holding drafts and the outbox.
func (c Config) DatabasePath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return filepath.Join(xdg.DataHome, appDir, "capture.db")
	}
	return filepath.Join(c.DataDir, "capture.db")
}

func millis(v, def int) time.Duration {
	return time.Duration(positive(v, def)) * time.Millisecond
}

func positive(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	if path == "" {
		return ""
	}
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
