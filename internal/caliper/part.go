package caliper

import (
	"image"
	"image/color"

	"github.com/philipparndt/gcaliper/internal/theme"
	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// PartID names a caliper part
type PartID int

const (
	PartHead PartID = iota
	PartBottom
	PartScale
	PartDisplay
)

func (id PartID) String() string {
	switch id {
	case PartHead:
		return "head"
	case PartBottom:
		return "bottom"
	case PartScale:
		return "scale"
	case PartDisplay:
		return "display"
	default:
		return "unknown"
	}
}

// Part is a rectangle of the caliper with its bitmap.
// Rects are in unrotated image space.
type Part interface {
	ID() PartID
	Rect() geometry.Rect
	Bitmap() image.Image
}

type partBase struct {
	id     PartID
	rect   geometry.Rect
	source theme.Bitmap
	image  *image.RGBA
}

func newPartBase(id PartID, bm theme.Bitmap) partBase {
	size := bm.Size()
	return partBase{
		id:     id,
		rect:   geometry.NewRect(0, 0, size.X, size.Y),
		source: bm,
		image:  bm.Image,
	}
}

func (p *partBase) ID() PartID          { return p.id }
func (p *partBase) Rect() geometry.Rect { return p.rect }

// Bitmap returns the bitmap cropped to the part's rect size
func (p *partBase) Bitmap() image.Image {
	if p.image == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	b := p.image.Bounds()
	w := min(p.rect.W, b.Dx())
	h := min(p.rect.H, b.Dy())
	return p.image.SubImage(image.Rect(b.Min.X, b.Min.Y, b.Min.X+max(w, 0), b.Min.Y+max(h, 0)))
}

func (p *partBase) applyContrast(c color.Color) {
	if p.source.Jaw == nil {
		return
	}
	p.image = p.source.Tinted(c)
}

// RotatingPart is composed onto the unrotated canvas and turns with the caliper
type RotatingPart struct {
	partBase
}

// OverlayPart is painted upright at a screen-fixed position on the rotated canvas
type OverlayPart struct {
	partBase
}

func (p *RotatingPart) Contains(pt geometry.Point) bool {
	return p.rect.Contains(pt)
}
