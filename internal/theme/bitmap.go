package theme

import (
	"image"
	"image/color"
	"image/draw"
)

// Bitmap is a part image with an optional jaw mask marking the pixels
// recoloured by the jaw contrast colour.
type Bitmap struct {
	Image *image.RGBA
	Jaw   *image.Alpha
}

// Size returns the bitmap dimensions
func (b Bitmap) Size() image.Point {
	if b.Image == nil {
		return image.Point{}
	}
	return b.Image.Bounds().Size()
}

// Tinted returns a copy of the image with the jaw area painted in c
func (b Bitmap) Tinted(c color.Color) *image.RGBA {
	if b.Image == nil {
		return nil
	}
	out := image.NewRGBA(b.Image.Bounds())
	draw.Draw(out, out.Bounds(), b.Image, b.Image.Bounds().Min, draw.Src)
	if b.Jaw == nil || c == nil {
		return out
	}
	draw.DrawMask(out, out.Bounds(), image.NewUniform(c), image.Point{}, b.Jaw, b.Jaw.Bounds().Min, draw.Over)
	return out
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func alphaOf(img image.Image) *image.Alpha {
	b := img.Bounds()
	out := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.SetAlpha(x, y, color.Alpha{A: uint8(a >> 8)})
		}
	}
	return out
}
