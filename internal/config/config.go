// Package config holds the user preferences persisted as YAML in the user scope.
// Environment variables are read-only overrides applied at load time.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// JawColor is an opaque RGB colour
type JawColor struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// RGBA converts the jaw colour to an opaque color.RGBA
func (c JawColor) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// JawColorFrom converts any colour, dropping alpha
func JawColorFrom(c color.Color) JawColor {
	r, g, b, _ := c.RGBA()
	return JawColor{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type Preferences struct {
	ConfigVersion int           `yaml:"config_version"`
	Theme         string        `yaml:"theme"`
	ThemesDir     string        `yaml:"themes_dir"`
	JawColor      *JawColor     `yaml:"jaw_color,omitempty"`
	Logging       LoggingConfig `yaml:"logging"`
}

// DefaultTheme is the name of the built-in theme
const DefaultTheme = "caliper"

// Defaults returns the application defaults
func Defaults() Preferences {
	return Preferences{
		ConfigVersion: 1,
		Theme:         DefaultTheme,
		JawColor:      &JawColor{R: 150, G: 0, B: 0},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides
const (
	EnvTheme     = "GCALIPER_THEME"
	EnvThemesDir = "GCALIPER_THEMES_DIR"
	EnvLogLevel  = "GCALIPER_LOG_LEVEL"
	EnvLogFormat = "GCALIPER_LOG_FORMAT"
	EnvLogSource = "GCALIPER_LOG_SOURCE"
	EnvLogFile   = "GCALIPER_LOG_FILE"
)

// Dir returns the per-user configuration directory
func Dir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "gcaliper")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "gcaliper")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "gcaliper")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "gcaliper")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// Path returns the per-user config file path
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultThemesDir is <config dir>/themes
func DefaultThemesDir() string {
	dir, err := Dir()
	if err != nil {
		return "themes"
	}
	return filepath.Join(dir, "themes")
}

// Load reads the config file at path (a missing file is not an error),
// merges it over the defaults and applies environment overrides.
func Load(path string) (Preferences, error) {
	prefs := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return prefs, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		var filePrefs Preferences
		if err := yaml.Unmarshal(data, &filePrefs); err != nil {
			applyEnvOverrides(&prefs)
			return prefs, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		mergeInto(&prefs, &filePrefs)
	}
	applyEnvOverrides(&prefs)
	return prefs, nil
}

// Save writes prefs to path through a temp file and rename
func Save(path string, prefs Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

func mergeInto(dst *Preferences, src *Preferences) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.Theme); v != "" {
		dst.Theme = v
	}
	if v := strings.TrimSpace(src.ThemesDir); v != "" {
		dst.ThemesDir = v
	}
	if src.JawColor != nil {
		c := *src.JawColor
		dst.JawColor = &c
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func applyEnvOverrides(prefs *Preferences) {
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		prefs.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvThemesDir)); v != "" {
		prefs.ThemesDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		prefs.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		prefs.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		prefs.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		prefs.Logging.File = v
	}
}

// EffectiveThemesDir returns ThemesDir or the per-user default
func (p Preferences) EffectiveThemesDir() string {
	if p.ThemesDir != "" {
		return p.ThemesDir
	}
	return DefaultThemesDir()
}
