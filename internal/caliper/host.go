package caliper

import (
	"image"
	"image/color"

	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// HostWindow is the top-level surface presenting the caliper
type HostWindow interface {
	Move(x, y int)
	Resize(w, h int)
	// SetShapeMask restricts input and visibility to the opaque mask pixels.
	SetShapeMask(mask *image.Alpha)
	Position() image.Point
	Iconify()
	// MonitorGeometry returns the monitor showing the window.
	MonitorGeometry() geometry.Rect
	Present(img *image.RGBA)
	Quit()
}

// MenuItem is an entry of the context menu
type MenuItem struct {
	Label  string
	Action func()
}

// Dialogs are the modal collaborators of the caliper
type Dialogs interface {
	ShowError(err error)
	// ChooseColor asks for a colour; done receives ok=false on cancel.
	ChooseColor(initial color.Color, done func(c color.Color, ok bool))
	ShowContextMenu(at geometry.Point, items []MenuItem)
}
