package caliper

import (
	"image"

	"github.com/philipparndt/gcaliper/internal/theme"
	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// GeometryState holds the angle, the rotation anchors and the cached
// bounding rectangles, and converts between the coordinate spaces:
//
//   - unrotated image space: part rects, pivot at rotationCenterImage
//   - rotated canvas space: the presented image, origin at rotated.Min
//   - window space: rotated canvas space (the window origin is the canvas origin)
//   - root space: screen coordinates; rotationCenterRoot is the fixed pivot
type GeometryState struct {
	angle               float64
	rotationCenterImage geometry.Point
	rotationCenterZero  geometry.Point
	rotationCenterRoot  geometry.Point
	displayCenterOffset geometry.Point
	scaleOffset         image.Point
	zeroDistanceOffset  int

	unrotated geometry.Rect
	rotated   geometry.Rect
}

// NewGeometryState creates the state for a theme descriptor at angle 0
func NewGeometryState(d theme.Descriptor) *GeometryState {
	return &GeometryState{
		rotationCenterImage: d.RotationCenter(),
		displayCenterOffset: d.DisplayCenter(),
		scaleOffset:         d.ScaleOffset(),
		zeroDistanceOffset:  d.ZeroDistanceOffset,
	}
}

// Angle returns the current angle in (-π, π]
func (g *GeometryState) Angle() float64 {
	return g.angle
}

// SetAngle normalizes and stores the angle, reporting whether it changed.
// The root pivot is kept; the window follows on the next recompute.
func (g *GeometryState) SetAngle(a float64) bool {
	a = geometry.NormalizeAngle(a)
	if a == g.angle {
		return false
	}
	g.angle = a
	return true
}

func (g *GeometryState) RotationCenterImage() geometry.Point { return g.rotationCenterImage }
func (g *GeometryState) RotationCenterZero() geometry.Point  { return g.rotationCenterZero }
func (g *GeometryState) RotationCenterRoot() geometry.Point  { return g.rotationCenterRoot }
func (g *GeometryState) DisplayCenterOffset() geometry.Point { return g.displayCenterOffset }
func (g *GeometryState) ScaleOffset() image.Point            { return g.scaleOffset }
func (g *GeometryState) ZeroDistanceOffset() int             { return g.zeroDistanceOffset }

// Unrotated returns the bounding rect of the rotating parts of the last render
func (g *GeometryState) Unrotated() geometry.Rect { return g.unrotated }

// Rotated returns the rotated bounding rect of the last render
func (g *GeometryState) Rotated() geometry.Rect { return g.rotated }

// SetRects stores the rectangles of a render pass
func (g *GeometryState) SetRects(unrotated, rotated geometry.Rect) {
	g.unrotated = unrotated
	g.rotated = rotated
}

// ImageToRotated maps an unrotated image point to rotated canvas space
func (g *GeometryState) ImageToRotated(p geometry.Point) geometry.Point {
	return geometry.RotatePoint(p, g.rotationCenterZero, g.angle).Sub(g.rotated.Origin())
}

// ScreenToUnrotatedImage maps a window-local point back to unrotated image space
func (g *GeometryState) ScreenToUnrotatedImage(p geometry.Point) geometry.Point {
	return geometry.RotatePoint(p.Add(g.rotated.Origin()), g.rotationCenterZero, -g.angle)
}

// rotatedPivot is the image pivot after rotation about the zero point
func (g *GeometryState) rotatedPivot() geometry.Point {
	return geometry.RotatePoint(g.rotationCenterImage, g.rotationCenterZero, g.angle)
}

// UpdateRotationCenterFromWindow derives the root pivot from the window origin
func (g *GeometryState) UpdateRotationCenterFromWindow(win image.Point) {
	g.rotationCenterRoot = geometry.FromImagePoint(win).Sub(g.rotated.Origin()).Add(g.rotatedPivot())
}

// SetRotationCenterRoot places the root pivot directly
func (g *GeometryState) SetRotationCenterRoot(p geometry.Point) {
	g.rotationCenterRoot = p
}

// WindowOrigin is the window position that puts the rotated pivot onto the root pivot
func (g *GeometryState) WindowOrigin() image.Point {
	return g.rotationCenterRoot.Sub(g.rotatedPivot()).Add(g.rotated.Origin()).Round()
}

// AxialOffset is the distance from the root pivot to root, measured along the
// caliper axis. It equals the pointer's unrotated x minus the image pivot x.
func (g *GeometryState) AxialOffset(root geometry.Point) float64 {
	cos, sin := geometry.CosSin(g.angle)
	return root.Sub(g.rotationCenterRoot).Dot(geometry.Pt(cos, sin))
}
