package surface

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/gcaliper/internal/log"
	"github.com/philipparndt/gcaliper/pkg/geometry"
)

var (
	fontOnce  sync.Once
	regular   *opentype.Font
	facesMu   sync.Mutex
	faceCache = map[float64]font.Face{}
)

// faceFor returns a Go Regular face at size points (72 DPI, so points == pixels).
// Falls back to basicfont when the embedded font cannot be parsed.
func faceFor(size float64) font.Face {
	fontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.WithComponent("surface").Warn("failed to parse embedded font", "err", err)
			return
		}
		regular = f
	})
	if regular == nil {
		return basicfont.Face7x13
	}

	facesMu.Lock()
	defer facesMu.Unlock()
	if face, ok := faceCache[size]; ok {
		return face
	}
	face, err := opentype.NewFace(regular, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.WithComponent("surface").Warn("failed to create font face", "size", size, "err", err)
		return basicfont.Face7x13
	}
	faceCache[size] = face
	return face
}

func drawString(dst *image.RGBA, s string, dot geometry.Point, size float64, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: faceFor(size),
		Dot:  fixed.Point26_6{X: fixed.Int26_6(dot.X * 64), Y: fixed.Int26_6(dot.Y * 64)},
	}
	d.DrawString(s)
}
