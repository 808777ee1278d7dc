// Package desktop hosts the caliper in a fyne window. The window content
// stands in for the screen: an optional screenshot backdrop with the caliper
// moved over it as a shaped top-level surface.
package desktop

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/philipparndt/gcaliper/internal/caliper"
	"github.com/philipparndt/gcaliper/internal/config"
	"github.com/philipparndt/gcaliper/pkg/watcher"
)

const appID = "io.github.philipparndt.gcaliper"

var backdropColor = color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}

// Options configures the desktop run
type Options struct {
	Caliper    caliper.Options
	Background string // optional image shown behind the caliper
	ConfigPath string // preferences file to persist to and watch; empty disables both
	Prefs      config.Preferences
	Logger     *slog.Logger
}

// Run opens the window and blocks until the application quits
func Run(opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := app.NewWithID(appID)
	w := a.NewWindow("gcaliper")
	w.SetPadded(false)

	backdrop, windowSize, err := newBackdrop(opts.Background)
	if err != nil {
		return err
	}

	host := newHost(a, w, backdrop, image.Pt(100, 100), logger)

	prefs := opts.Prefs
	calOpts := opts.Caliper
	calOpts.Logger = logger
	if opts.ConfigPath != "" {
		report := calOpts.OnJawColorChanged
		calOpts.OnJawColorChanged = func(col color.Color) {
			jc := config.JawColorFrom(col)
			prefs.JawColor = &jc
			if err := config.Save(opts.ConfigPath, prefs); err != nil {
				logger.Error("failed to save preferences", slog.Any("err", err))
			}
			if report != nil {
				report(col)
			}
		}
	}

	c, err := caliper.New(host, host, calOpts)
	if err != nil {
		return fmt.Errorf("failed to create caliper: %w", err)
	}
	host.screen.handler = c

	bindKeys(w, host.screen, c)

	if opts.ConfigPath != "" {
		stop, err := watchPreferences(opts.ConfigPath, c, logger)
		if err != nil {
			logger.Warn("preferences are not watched", slog.Any("err", err))
		} else {
			defer stop()
		}
	}

	a.Lifecycle().SetOnStarted(func() {
		c.HandleEvent(caliper.ConfigureEvent{Position: host.Position()})
	})

	w.SetContent(host.screen)
	w.Resize(windowSize)
	w.ShowAndRun()
	return nil
}

// newBackdrop loads the background image, or a plain surface when path is empty
func newBackdrop(path string) (fyne.CanvasObject, fyne.Size, error) {
	if path == "" {
		return canvas.NewRectangle(backdropColor), fyne.NewSize(1200, 800), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fyne.Size{}, fmt.Errorf("failed to open background: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fyne.Size{}, fmt.Errorf("failed to decode background %s: %w", path, err)
	}

	bg := canvas.NewImageFromImage(img)
	bg.FillMode = canvas.ImageFillStretch
	bg.ScaleMode = canvas.ImageScalePixels
	b := img.Bounds()
	return bg, fyne.NewSize(float32(b.Dx()), float32(b.Dy())), nil
}

func bindKeys(w fyne.Window, s *screen, handler caliper.EventHandler) {
	dc, ok := w.Canvas().(desktop.Canvas)
	if !ok {
		return
	}
	dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
		if s.mods.update(ev.Name, true) {
			return
		}
		if k, ok := translateKey(ev.Name); ok {
			handler.HandleEvent(caliper.KeyEvent{Key: k, Mods: s.mods.mods()})
		}
	})
	dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
		s.mods.update(ev.Name, false)
	})
}

// watchPreferences re-applies the jaw colour when the preferences file changes
func watchPreferences(path string, c *caliper.Caliper, logger *slog.Logger) (func(), error) {
	fw, err := watcher.NewFileWatcher(300*time.Millisecond, logger)
	if err != nil {
		return nil, err
	}
	err = fw.Watch([]string{path}, func(string) {
		prefs, err := config.Load(path)
		if err != nil {
			logger.Warn("failed to reload preferences", slog.Any("err", err))
			return
		}
		if prefs.JawColor == nil {
			return
		}
		col := prefs.JawColor.RGBA()
		fyne.Do(func() {
			c.SetJawColor(col)
		})
	})
	if err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	fw.Start(ctx)
	return func() {
		cancel()
		fw.Close()
	}, nil
}
