// Package prefs persists the few settings a user changes from inside the
// TUI. They live in ~/.config/capture/prefs.toml, apart from config.toml,
// so the program never rewrites a file the user edits by hand.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"

	"github.com/five82/capture/internal/config"
)

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

const (
	defaultPrefsPath = "~/.config/capture/prefs.toml"
	defaultTheme     = ThemeDark
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
}

// ToggleTheme switches between the dark and light themes.
func (p Prefs) ToggleTheme() Prefs {
	if p.Theme == ThemeLight {
		p.Theme = ThemeDark
	} else {
		p.Theme = ThemeLight
	}
	return p
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path, or the default path when empty. A
// missing, unreadable or malformed file yields defaults; preferences are
// never worth failing startup over, so the error result is always nil.
func Load(path string) (Prefs, error) {
	defaults := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		logrus.WithError(err).Debug("prefs path unresolved; using defaults")
		return defaults, nil
	}
	raw, err := os.ReadFile(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logrus.WithError(err).WithField("path", resolved).Warn("read prefs failed; using defaults")
		}
		return defaults, nil
	}

	var p Prefs
	if err := toml.Unmarshal(raw, &p); err != nil {
		logrus.WithError(err).WithField("path", resolved).Warn("parse prefs failed; using defaults")
		return defaults, nil
	}
	p.Theme = normalizeTheme(p.Theme)
	return p, nil
}

// Save writes p to path, creating parent directories.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	p.Theme = normalizeTheme(p.Theme)
	encoded, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, encoded, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func normalizeTheme(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return defaultTheme
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
