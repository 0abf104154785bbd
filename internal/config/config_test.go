package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.HeroInterval != 5*time.Second {
		t.Fatalf("HeroInterval = %v, want 5s", cfg.HeroInterval)
	}
	if cfg.TestimonialInterval != 6*time.Second {
		t.Fatalf("TestimonialInterval = %v, want 6s", cfg.TestimonialInterval)
	}
	if cfg.SwipeThreshold != 40 || cfg.CellWidth != 8 {
		t.Fatalf("SwipeThreshold/CellWidth = %d/%d, want 40/8", cfg.SwipeThreshold, cfg.CellWidth)
	}
	if cfg.FlushInterval != 30*time.Second {
		t.Fatalf("FlushInterval = %v, want 30s", cfg.FlushInterval)
	}
	if cfg.DataDir != filepath.Join(xdg.DataHome, "capture") {
		t.Fatalf("DataDir = %q, want under xdg data home", cfg.DataDir)
	}
	if cfg.LogFile != filepath.Join(xdg.StateHome, "capture", "capture.log") {
		t.Fatalf("LogFile = %q, want under xdg state home", cfg.LogFile)
	}
	if cfg.ContentFile != "" {
		t.Fatalf("ContentFile = %q, want empty", cfg.ContentFile)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "  10.0.0.5:9999  "
content_file = " ~/site.yaml "
data_dir = "  ~/.capture  "
log_file = "~/logs/capture.log"
hero_interval_ms = 2500
testimonial_interval_ms = 7000
swipe_threshold_px = 60
cell_width_px = 10
flush_interval_s = 5
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "10.0.0.5:9999" {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, "10.0.0.5:9999")
	}
	if cfg.ContentFile != filepath.Join(home, "site.yaml") {
		t.Fatalf("ContentFile = %q, want it under HOME", cfg.ContentFile)
	}
	if cfg.DataDir != filepath.Join(home, ".capture") {
		t.Fatalf("DataDir = %q, want it under HOME %q", cfg.DataDir, home)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.HeroInterval != 2500*time.Millisecond || cfg.TestimonialInterval != 7*time.Second {
		t.Fatalf("intervals = %v/%v, want 2.5s/7s", cfg.HeroInterval, cfg.TestimonialInterval)
	}
	if cfg.SwipeThreshold != 60 || cfg.CellWidth != 10 {
		t.Fatalf("SwipeThreshold/CellWidth = %d/%d, want 60/10", cfg.SwipeThreshold, cfg.CellWidth)
	}
	if cfg.FlushInterval != 5*time.Second {
		t.Fatalf("FlushInterval = %v, want 5s", cfg.FlushInterval)
	}
	if cfg.DatabasePath() != filepath.Join(home, ".capture", "capture.db") {
		t.Fatalf("DatabasePath = %q", cfg.DatabasePath())
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "   "
data_dir = ""
hero_interval_ms = 0
swipe_threshold_px = -3
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.HeroInterval != 5*time.Second {
		t.Fatalf("HeroInterval = %v, want default 5s", cfg.HeroInterval)
	}
	if cfg.SwipeThreshold != defaultSwipeThreshold {
		t.Fatalf("SwipeThreshold = %d, want %d", cfg.SwipeThreshold, defaultSwipeThreshold)
	}
	if cfg.DataDir != filepath.Join(xdg.DataHome, "capture") {
		t.Fatalf("DataDir = %q, want xdg default", cfg.DataDir)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestDatabasePath_DefaultsWhenDataDirEmpty(t *testing.T) {
	var cfg Config
	got := cfg.DatabasePath()
	if got != filepath.Join(xdg.DataHome, "capture", "capture.db") {
		t.Fatalf("DatabasePath = %q, want xdg default", got)
	}
}
