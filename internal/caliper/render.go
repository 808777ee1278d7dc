package caliper

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/philipparndt/gcaliper/internal/surface"
	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// ErrCanvasTooLarge is returned when a render pass would allocate more pixels than allowed
var ErrCanvasTooLarge = errors.New("canvas too large")

var (
	debugBackground = color.RGBA{G: 229, A: 255}
	debugMarker     = color.RGBA{R: 255, A: 255}
	debugTextColor  = color.RGBA{G: 255, A: 255}
	labelColor      = color.Black
)

const (
	labelSize     = 10
	debugTextSize = 20
)

var (
	distanceLabelOffset = geometry.Pt(12, 27.2)
	angleLabelOffset    = geometry.Pt(14, 40.2)
	debugTextPos        = geometry.Pt(20, 20)
)

// RenderInput is the state read by a render pass
type RenderInput struct {
	Layout     *PartLayout
	Geometry   *GeometryState
	Debug      bool
	DebugPoint geometry.Point // unrotated image space
	DebugText  string
}

// Frame is the result of a successful render pass
type Frame struct {
	Image     *image.RGBA
	Mask      *image.Alpha
	Unrotated geometry.Rect
	Rotated   geometry.Rect
	Display   geometry.Rect // rotated canvas space
}

// RenderPipeline composes the parts in two passes: the rotating parts onto
// an unrotated canvas, then that canvas rotated about the zero point with
// the overlays painted upright on top.
type RenderPipeline struct {
	maxPixels int
	newCanvas func(w, h int) surface.Canvas
}

// NewRenderPipeline creates a pipeline; maxPixels <= 0 disables the size check
func NewRenderPipeline(maxPixels int) *RenderPipeline {
	return &RenderPipeline{
		maxPixels: maxPixels,
		newCanvas: func(w, h int) surface.Canvas { return surface.NewImageCanvas(w, h) },
	}
}

// Render runs both passes. On error the geometry rects are left as they were.
func (r *RenderPipeline) Render(in RenderInput) (frame Frame, err error) {
	g := in.Geometry
	prevUnrotated, prevRotated := g.Unrotated(), g.Rotated()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("render failed: %v", rec)
		}
		if err != nil {
			g.SetRects(prevUnrotated, prevRotated)
		}
	}()

	unrotated := in.Layout.BoundingRectOfRotatingParts()
	if err := r.checkSize(unrotated); err != nil {
		return Frame{}, err
	}
	rotated := geometry.RotateRect(unrotated, g.RotationCenterZero(), g.Angle())
	if err := r.checkSize(rotated); err != nil {
		return Frame{}, err
	}
	g.SetRects(unrotated, rotated)

	pass1, err := r.composeUnrotated(in, unrotated)
	if err != nil {
		return Frame{}, err
	}

	pass2 := r.newCanvas(rotated.W, rotated.H)
	// pass-1 pixel -> image space -> rotated about zero -> rotated canvas
	zero := g.RotationCenterZero()
	m := surface.Mul(
		surface.Translate(-float64(rotated.X), -float64(rotated.Y)),
		surface.Mul(
			surface.Translate(zero.X, zero.Y),
			surface.Mul(
				surface.Rotate(g.Angle()),
				surface.Translate(float64(unrotated.X)-zero.X, float64(unrotated.Y)-zero.Y),
			),
		),
	)
	pass2.Paint(pass1.Image(), m)

	if in.Debug && in.DebugText != "" {
		pass2.DrawText(in.DebugText, debugTextPos, debugTextSize, debugTextColor)
	}

	var display geometry.Rect
	for _, part := range in.Layout.Overlays() {
		display = in.Layout.PlaceDisplay(g)
		pass2.Paint(part.Bitmap(), surface.Translate(float64(display.X), float64(display.Y)))

		origin := display.Origin()
		pass2.DrawText(strconv.Itoa(in.Layout.Distance()), origin.Add(distanceLabelOffset), labelSize, labelColor)
		if label, ok := angleLabel(g.Angle()); ok {
			pass2.DrawText(label, origin.Add(angleLabelOffset), labelSize, labelColor)
		}
	}

	img := pass2.Image()
	return Frame{
		Image:     img,
		Mask:      surface.ShapeMask(img),
		Unrotated: unrotated,
		Rotated:   rotated,
		Display:   display,
	}, nil
}

func (r *RenderPipeline) composeUnrotated(in RenderInput, unrotated geometry.Rect) (surface.Canvas, error) {
	c := r.newCanvas(unrotated.W, unrotated.H)
	if in.Debug {
		c.FillRect(c.Bounds(), debugBackground)
	}
	toCanvas := surface.Translate(-float64(unrotated.X), -float64(unrotated.Y))
	for _, part := range in.Layout.RotatingParts() {
		at := surface.Apply(toCanvas, part.Rect().Origin())
		c.Paint(part.Bitmap(), surface.Translate(at.X, at.Y))
	}
	if in.Debug {
		at := surface.Apply(toCanvas, in.DebugPoint)
		if err := c.StrokeArc(at, 2, 0, 2*math.Pi, 5, debugMarker); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (r *RenderPipeline) checkSize(rect geometry.Rect) error {
	if r.maxPixels <= 0 {
		return nil
	}
	if rect.W < 0 || rect.H < 0 || rect.W*rect.H > r.maxPixels {
		return fmt.Errorf("%w: %dx%d", ErrCanvasTooLarge, rect.W, rect.H)
	}
	return nil
}

// angleLabel formats the angle in whole degrees; multiples of 45° are not labelled
func angleLabel(angle float64) (string, bool) {
	deg := int(math.Round(geometry.RadToDeg(angle)))
	if deg%45 == 0 {
		return "", false
	}
	return strconv.Itoa(deg) + "°", true
}
