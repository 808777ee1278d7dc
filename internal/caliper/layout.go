package caliper

import (
	"image/color"

	"github.com/philipparndt/gcaliper/internal/theme"
	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// PartLayout owns the caliper parts and keeps the bottom jaw and scale bar
// consistent with the distance.
type PartLayout struct {
	head    *RotatingPart
	bottom  *RotatingPart
	scale   *RotatingPart
	display *OverlayPart

	zeroDistanceOffset  int
	displayCenterOffset geometry.Point
}

// NewPartLayout builds the parts from theme bitmaps at distance 0
func NewPartLayout(t *theme.Theme, zeroDistanceOffset int) *PartLayout {
	l := &PartLayout{
		head:                &RotatingPart{newPartBase(PartHead, t.Bitmap(theme.Head))},
		bottom:              &RotatingPart{newPartBase(PartBottom, t.Bitmap(theme.Bottom))},
		scale:               &RotatingPart{newPartBase(PartScale, t.Bitmap(theme.Scale))},
		display:             &OverlayPart{newPartBase(PartDisplay, t.Bitmap(theme.Display))},
		zeroDistanceOffset:  zeroDistanceOffset,
		displayCenterOffset: t.Descriptor.DisplayCenter(),
	}
	l.bottom.rect.X = zeroDistanceOffset
	so := t.Descriptor.ScaleOffset()
	l.scale.rect.X, l.scale.rect.Y = so.X, so.Y
	l.scale.rect.W = 0
	return l
}

func (l *PartLayout) Head() *RotatingPart   { return l.head }
func (l *PartLayout) Bottom() *RotatingPart { return l.bottom }
func (l *PartLayout) Scale() *RotatingPart  { return l.scale }
func (l *PartLayout) Display() *OverlayPart { return l.display }

// RotatingParts returns the parts of pass 1 in paint order
func (l *PartLayout) RotatingParts() []*RotatingPart {
	return []*RotatingPart{l.bottom, l.head, l.scale}
}

// Overlays returns the upright parts of pass 2
func (l *PartLayout) Overlays() []*OverlayPart {
	return []*OverlayPart{l.display}
}

// Parts returns every part, rotating ones first
func (l *PartLayout) Parts() []Part {
	return []Part{l.bottom, l.head, l.scale, l.display}
}

// BoundingRectOfRotatingParts is the union of all rotating part rects
func (l *PartLayout) BoundingRectOfRotatingParts() geometry.Rect {
	var r geometry.Rect
	for _, p := range l.RotatingParts() {
		r = r.Union(p.rect)
	}
	return r
}

// Distance is the gap between the jaws in pixels
func (l *PartLayout) Distance() int {
	return l.bottom.rect.X - l.zeroDistanceOffset
}

// SetDistance clamps d to >= 0 and moves the bottom jaw and scale bar.
// It reports false without touching the layout when d equals the current distance.
func (l *PartLayout) SetDistance(d int) bool {
	d = max(d, 0)
	if d == l.Distance() {
		return false
	}
	l.bottom.rect.X = d + l.zeroDistanceOffset
	l.scale.rect.W = d
	return true
}

// HitTest returns the rotating part containing p; the bottom jaw wins over head and scale
func (l *PartLayout) HitTest(p geometry.Point) (Part, bool) {
	for _, part := range []*RotatingPart{l.bottom, l.head, l.scale} {
		if part.Contains(p) {
			return part, true
		}
	}
	return nil, false
}

// DisplayCenter is the display centre in unrotated image space
func (l *PartLayout) DisplayCenter() geometry.Point {
	return l.bottom.rect.Origin().Add(l.displayCenterOffset)
}

// PlaceDisplay positions the display upright, centred on the rotated image
// of DisplayCenter, and returns its rect in rotated canvas space.
func (l *PartLayout) PlaceDisplay(g *GeometryState) geometry.Rect {
	c := g.ImageToRotated(l.DisplayCenter()).Round()
	r := l.display.rect
	r.X = c.X - r.W/2
	r.Y = c.Y - r.H/2
	l.display.rect = r
	return r
}

// ApplyContrast recolours the jaw areas of all parts
func (l *PartLayout) ApplyContrast(c color.Color) {
	l.head.applyContrast(c)
	l.bottom.applyContrast(c)
	l.scale.applyContrast(c)
	l.display.applyContrast(c)
}
