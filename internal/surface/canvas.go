// Package surface is the 2D drawing backend used by the render pipeline.
// It offers transparent canvases, affine painting of source images,
// filled rectangles, stroked arcs and text.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// Canvas is a drawing target
type Canvas interface {
	Bounds() image.Rectangle
	// Paint composites src over the canvas; m maps src pixel space to canvas space.
	Paint(src image.Image, m f64.Aff3)
	// FillRect composites c over r, clipped to the canvas.
	FillRect(r image.Rectangle, c color.Color)
	StrokeArc(center geometry.Point, radius, angle1, angle2, lineWidth float64, c color.Color) error
	// DrawText draws s with its baseline starting at dot.
	DrawText(s string, dot geometry.Point, size float64, c color.Color)
	Image() *image.RGBA
}

// ImageCanvas is a CPU canvas backed by an *image.RGBA
type ImageCanvas struct {
	img *image.RGBA
}

var _ Canvas = (*ImageCanvas)(nil)

// NewImageCanvas allocates a transparent canvas of the given size
func NewImageCanvas(w, h int) *ImageCanvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &ImageCanvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (c *ImageCanvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Image returns the backing image
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// Translate returns the affine transform for a pure translation
func Translate(dx, dy float64) f64.Aff3 {
	return f64.Aff3{1, 0, dx, 0, 1, dy}
}

// Rotate returns the affine transform rotating about the origin
func Rotate(angle float64) f64.Aff3 {
	cos, sin := geometry.CosSin(angle)
	return f64.Aff3{cos, -sin, 0, sin, cos, 0}
}

// Mul returns a·b (b applied first)
func Mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// Apply maps p through m
func Apply(m f64.Aff3, p geometry.Point) geometry.Point {
	return geometry.Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

func (c *ImageCanvas) Paint(src image.Image, m f64.Aff3) {
	if src == nil || src.Bounds().Empty() || c.img.Bounds().Empty() {
		return
	}
	// Integer translations are copied directly to keep pixels crisp.
	if m[0] == 1 && m[1] == 0 && m[3] == 0 && m[4] == 1 && isInt(m[2]) && isInt(m[5]) {
		sb := src.Bounds()
		dst := sb.Add(image.Pt(int(m[2]), int(m[5])))
		draw.Draw(c.img, dst, src, sb.Min, draw.Over)
		return
	}
	xdraw.BiLinear.Transform(c.img, m, src, src.Bounds(), xdraw.Over, nil)
}

func (c *ImageCanvas) FillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

// StrokeArc strokes an arc on a small gg context and composites it over the canvas
func (c *ImageCanvas) StrokeArc(center geometry.Point, radius, angle1, angle2, lineWidth float64, col color.Color) error {
	pad := radius + lineWidth + 2
	size := int(2*pad) + 1
	origin := image.Pt(int(center.X-pad), int(center.Y-pad))

	dc := gg.NewContext(size, size)
	defer dc.Close()
	dc.SetColor(col)
	dc.SetLineWidth(lineWidth)
	dc.DrawArc(center.X-float64(origin.X), center.Y-float64(origin.Y), radius, angle1, angle2)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("failed to stroke arc: %w", err)
	}

	arc := dc.Image()
	draw.Draw(c.img, arc.Bounds().Add(origin), arc, arc.Bounds().Min, draw.Over)
	return nil
}

func (c *ImageCanvas) DrawText(s string, dot geometry.Point, size float64, col color.Color) {
	drawString(c.img, s, dot, size, col)
}

// ShapeMask derives the opaque region of img: every pixel with non-zero alpha
func ShapeMask(img *image.RGBA) *image.Alpha {
	b := img.Bounds()
	mask := image.NewAlpha(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return mask
}

func isInt(v float64) bool {
	return v == float64(int(v))
}
