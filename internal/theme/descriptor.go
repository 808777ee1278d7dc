package theme

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// Descriptor file names, checked in order
const (
	ConfFile = "theme.conf"
	YAMLFile = "theme.yaml"
)

// Descriptor holds the integer offsets a theme defines for its bitmaps
type Descriptor struct {
	RotationCenterX    int
	RotationCenterY    int
	DisplayCenterX     int
	DisplayCenterY     int
	ScaleOffsetX       int
	ScaleOffsetY       int
	ZeroDistanceOffset int
}

// RotationCenter is the pivot in unrotated image space
func (d Descriptor) RotationCenter() geometry.Point {
	return geometry.Pt(float64(d.RotationCenterX), float64(d.RotationCenterY))
}

// DisplayCenter is the display centre relative to the bottom jaw origin
func (d Descriptor) DisplayCenter() geometry.Point {
	return geometry.Pt(float64(d.DisplayCenterX), float64(d.DisplayCenterY))
}

// ScaleOffset is the location of the scale bar
func (d Descriptor) ScaleOffset() image.Point {
	return image.Pt(d.ScaleOffsetX, d.ScaleOffsetY)
}

// fields maps file keys to descriptor fields
func (d *Descriptor) fields() map[string]*int {
	return map[string]*int{
		"rotationCenterX":    &d.RotationCenterX,
		"rotationCenterY":    &d.RotationCenterY,
		"displayCenterX":     &d.DisplayCenterX,
		"displayCenterY":     &d.DisplayCenterY,
		"scaleOffsetX":       &d.ScaleOffsetX,
		"scaleOffsetY":       &d.ScaleOffsetY,
		"zeroDistanceOffset": &d.ZeroDistanceOffset,
	}
}

// LoadDescriptor reads theme.conf (TOML, INI compatible) or theme.yaml from dir.
// Missing or malformed values are 0; only an unreadable directory is an error.
func LoadDescriptor(dir string, logger *slog.Logger) (Descriptor, error) {
	var d Descriptor
	for _, name := range []string{ConfFile, YAMLFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return d, fmt.Errorf("failed to read %s: %w", path, err)
		}

		raw, err := decodeDescriptor(name, data)
		if err != nil {
			logger.Warn("malformed theme descriptor, using zero offsets", slog.String("path", path), slog.Any("err", err))
			return d, nil
		}
		d.apply(raw, logger.With(slog.String("path", path)))
		return d, nil
	}
	logger.Warn("theme descriptor missing, using zero offsets", slog.String("dir", dir))
	return d, nil
}

func decodeDescriptor(name string, data []byte) (map[string]any, error) {
	var doc map[string]any
	switch name {
	case ConfFile:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			// INI files with ';' comments or bare strings are not TOML
			ini, iniErr := decodeINI(data)
			if iniErr != nil {
				return nil, fmt.Errorf("%w (as ini: %v)", err, iniErr)
			}
			doc = ini
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	section, ok := doc["theme"].(map[string]any)
	if !ok {
		return nil, errors.New("missing [theme] section")
	}
	return section, nil
}

func (d *Descriptor) apply(raw map[string]any, logger *slog.Logger) {
	for key, field := range d.fields() {
		v, ok := raw[key]
		if !ok {
			continue
		}
		n, ok := toInt(v)
		if !ok {
			logger.Warn("invalid theme value, using 0", slog.String("key", key), slog.Any("value", v))
			continue
		}
		*field = n
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

// decodeINI reads "[section]" headers and "key = value" lines. Lines starting
// with ';' or '#' are comments. Numbers become int or float64, anything else
// stays a string.
func decodeINI(data []byte) (map[string]any, error) {
	doc := map[string]any{}
	section := map[string]any{}
	doc[""] = section
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("line %d: unterminated section header", i+1)
			}
			name := strings.TrimSpace(line[1 : len(line)-1])
			section = map[string]any{}
			doc[name] = section
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key = value", i+1)
		}
		section[strings.TrimSpace(key)] = iniValue(value)
	}
	return doc, nil
}

func iniValue(raw string) any {
	if idx := strings.IndexAny(raw, ";#"); idx >= 0 {
		raw = raw[:idx]
	}
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
