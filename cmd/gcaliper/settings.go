package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/philipparndt/gcaliper/internal/caliper"
	"github.com/philipparndt/gcaliper/internal/config"
	"github.com/philipparndt/gcaliper/internal/log"
	"github.com/philipparndt/gcaliper/internal/theme"
	"github.com/philipparndt/gcaliper/pkg/geometry"
	"github.com/spf13/cobra"
)

// settings are the preferences and theme a command runs with
type settings struct {
	configPath string
	stored     config.Preferences // as loaded; what gets saved back
	prefs      config.Preferences // with command line overrides
	theme      *theme.Theme
	debug      bool
	logger     *slog.Logger
}

// loadSettings reads the preferences, initializes logging and resolves the theme
func loadSettings(cmd *cobra.Command) (*settings, error) {
	path := configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		path = p
	}

	prefs := config.Defaults()
	var loadErr error
	if path != "" {
		prefs, loadErr = config.Load(path)
	}
	stored := prefs

	if cmd.Flags().Changed("theme") {
		prefs.Theme = themeName
	}
	if cmd.Flags().Changed("themes-dir") {
		prefs.ThemesDir = themesDir
	}

	logOpts := log.Options{
		Level:     prefs.Logging.Level,
		Format:    prefs.Logging.Format,
		AddSource: prefs.Logging.Source,
		File:      prefs.Logging.File,
	}
	if debug {
		logOpts.Level = "debug"
	}
	log.Init(logOpts)
	logger := log.WithComponent("cli")
	if loadErr != nil {
		logger.Warn("using default preferences", slog.String("path", path), slog.Any("err", loadErr))
	}

	t, err := theme.Resolve(prefs.EffectiveThemesDir(), prefs.Theme)
	if err != nil {
		return nil, err
	}
	logger.Debug("settings loaded",
		slog.String("config", path),
		slog.String("theme", t.Name),
		slog.String("themes_dir", prefs.EffectiveThemesDir()))

	return &settings{
		configPath: path,
		stored:     stored,
		prefs:      prefs,
		theme:      t,
		debug:      debug,
		logger:     log.WithComponent("desktop"),
	}, nil
}

// caliperOptions builds the caliper options for an initial distance and angle in degrees
func (s *settings) caliperOptions(dist int, deg float64) caliper.Options {
	tuning := caliper.DefaultTuning()
	tuning.InitialDistance = dist
	tuning.InitialAngle = geometry.DegToRad(deg)

	var jaw color.Color
	if s.prefs.JawColor != nil {
		jaw = s.prefs.JawColor.RGBA()
	}

	return caliper.Options{
		Theme:    s.theme,
		JawColor: jaw,
		Tuning:   tuning,
		Debug:    s.debug,
		Logger:   log.WithComponent("caliper"),
	}
}
