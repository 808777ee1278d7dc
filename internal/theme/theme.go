// Package theme loads caliper themes: a descriptor with pivot and offset
// values plus one bitmap per part. A built-in theme is always available.
package theme

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/philipparndt/gcaliper/internal/log"
)

// ErrThemeNotFound is returned when a theme directory does not exist
var ErrThemeNotFound = errors.New("theme not found")

// BuiltinName names the theme compiled into the binary
const BuiltinName = "caliper"

// PartName identifies a bitmap within a theme
type PartName string

const (
	Head    PartName = "head"
	Bottom  PartName = "bottom"
	Scale   PartName = "scale"
	Display PartName = "display"
)

// PartNames lists all parts in load order
var PartNames = []PartName{Head, Bottom, Scale, Display}

// Theme is a loaded theme
type Theme struct {
	Name       string
	Dir        string // empty for the built-in theme
	Descriptor Descriptor
	Bitmaps    map[PartName]Bitmap
}

// Bitmap returns the bitmap of a part
func (t *Theme) Bitmap(name PartName) Bitmap {
	return t.Bitmaps[name]
}

// Load reads the theme stored in dir. Missing part bitmaps are taken from the
// built-in theme so the caliper is always complete.
func Load(dir string) (*Theme, error) {
	logger := log.WithComponent("theme")

	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access theme %s: %w", dir, err)
	}

	desc, err := LoadDescriptor(dir, logger)
	if err != nil {
		return nil, err
	}

	t := &Theme{
		Name:       filepath.Base(dir),
		Dir:        dir,
		Descriptor: desc,
		Bitmaps:    make(map[PartName]Bitmap, len(PartNames)),
	}

	var builtin *Theme
	for _, name := range PartNames {
		bm, err := loadBitmap(dir, name)
		if err == nil {
			t.Bitmaps[name] = bm
			continue
		}
		logger.Warn("theme bitmap unavailable, using built-in", slog.String("part", string(name)), slog.Any("err", err))
		if builtin == nil {
			if builtin, err = Default(); err != nil {
				return nil, err
			}
		}
		t.Bitmaps[name] = builtin.Bitmap(name)
	}

	logger.Debug("theme loaded", slog.String("name", t.Name), slog.Any("descriptor", desc))
	return t, nil
}

// Resolve loads the named theme from themesDir, falling back to the built-in theme
func Resolve(themesDir, name string) (*Theme, error) {
	if name != "" && name != BuiltinName && themesDir != "" {
		t, err := Load(filepath.Join(themesDir, name))
		if err == nil {
			return t, nil
		}
		log.WithComponent("theme").Warn("using built-in theme", slog.String("requested", name), slog.Any("err", err))
	} else if name == BuiltinName && themesDir != "" {
		// a user theme may shadow the built-in one
		if t, err := Load(filepath.Join(themesDir, name)); err == nil {
			return t, nil
		}
	}
	return Default()
}

// List returns the names of the themes found in themesDir, sorted, always
// including the built-in theme.
func List(themesDir string) ([]string, error) {
	names := map[string]bool{BuiltinName: true}

	entries, err := os.ReadDir(themesDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read themes dir %s: %w", themesDir, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		for _, f := range []string{ConfFile, YAMLFile} {
			if _, err := os.Stat(filepath.Join(themesDir, e.Name(), f)); err == nil {
				names[e.Name()] = true
				break
			}
		}
	}

	res := make([]string, 0, len(names))
	for n := range names {
		res = append(res, n)
	}
	sort.Strings(res)
	return res, nil
}

func loadBitmap(dir string, name PartName) (Bitmap, error) {
	img, err := decodePNG(filepath.Join(dir, string(name)+".png"))
	if err != nil {
		return Bitmap{}, err
	}
	bm := Bitmap{Image: toRGBA(img)}

	jawPath := filepath.Join(dir, string(name)+"_jaw.png")
	if _, err := os.Stat(jawPath); err == nil {
		jaw, err := decodePNG(jawPath)
		if err != nil {
			return Bitmap{}, err
		}
		bm.Jaw = alphaOf(jaw)
	}
	return bm, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}
