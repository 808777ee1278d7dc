package geometry

import (
	"image"
	"math"
)

// Rect is an integer rectangle given by its origin and size
type Rect struct {
	X, Y, W, H int
}

// NewRect creates a new rectangle
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromImage converts an image.Rectangle
func RectFromImage(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Origin returns the top-left corner
func (r Rect) Origin() Point {
	return Point{X: float64(r.X), Y: float64(r.Y)}
}

// Location returns the top-left corner as an integer point
func (r Rect) Location() image.Point {
	return image.Point{X: r.X, Y: r.Y}
}

// Image converts the rectangle to an image.Rectangle
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= float64(r.X) && p.X < float64(r.X+r.W) &&
		p.Y >= float64(r.Y) && p.Y < float64(r.Y+r.H)
}

// Union returns the smallest rectangle containing both rectangles.
// Empty rectangles do not contribute.
func (r Rect) Union(other Rect) Rect {
	if other.Empty() {
		return r
	}
	if r.Empty() {
		return other
	}
	return RectFromImage(r.Image().Union(other.Image()))
}

// Corners returns the four corners in clockwise order starting top-left
func (r Rect) Corners() [4]Point {
	x0, y0 := float64(r.X), float64(r.Y)
	x1, y1 := float64(r.X+r.W), float64(r.Y+r.H)
	return [4]Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// RotateRect returns the axis-aligned bounding box of r rotated about center.
// Fractional edges are widened outwards so no rotated pixel is cut off.
func RotateRect(r Rect, center Point, angle float64) Rect {
	if angle == 0 {
		return r
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range r.Corners() {
		p := RotatePoint(c, center, angle)
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	x0 := int(math.Floor(snap(minX)))
	y0 := int(math.Floor(snap(minY)))
	x1 := int(math.Ceil(snap(maxX)))
	y1 := int(math.Ceil(snap(maxY)))
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// snap removes floating noise so that exact quarter turns keep integer bounds
func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		return r
	}
	return v
}
