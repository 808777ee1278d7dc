package geometry

import (
	"image"
	"math"
)

// Point represents a 2D position or offset
type Point struct {
	X, Y float64
}

// Pt creates a new point
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// FromImagePoint converts an integer image point
func FromImagePoint(p image.Point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// Add returns the sum of two points
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference between two points
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Mul multiplies the point by a scalar
func (p Point) Mul(scalar float64) Point {
	return Point{X: p.X * scalar, Y: p.Y * scalar}
}

// Dot returns the dot product of two vectors
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Length returns the magnitude of the vector
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Length()
}

// Round returns the nearest integer point
func (p Point) Round() image.Point {
	return image.Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// ApproxEqual reports whether both coordinates differ by at most eps
func (p Point) ApproxEqual(other Point, eps float64) bool {
	return math.Abs(p.X-other.X) <= eps && math.Abs(p.Y-other.Y) <= eps
}

// RotatePoint rotates p about center by angle radians.
// Positive angles turn clockwise on screen, where Y grows downwards.
func RotatePoint(p, center Point, angle float64) Point {
	if angle == 0 {
		return p
	}
	cos, sin := CosSin(angle)
	d := p.Sub(center)
	return Point{
		X: center.X + d.X*cos - d.Y*sin,
		Y: center.Y + d.X*sin + d.Y*cos,
	}
}

// AngleBetween returns the angle of the line from a to b in (-π, π]
func AngleBetween(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}
