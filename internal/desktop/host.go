package desktop

import (
	"image"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gcaliper/internal/caliper"
	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// Host presents the caliper inside a fyne window. The window content plays
// the role of the screen and the caliper image is moved over it like a
// top-level window. One fyne unit is treated as one pixel.
type Host struct {
	app    fyne.App
	window fyne.Window
	screen *screen
	log    *slog.Logger

	position  image.Point
	size      image.Point
	mask      *image.Alpha
	iconified bool
}

func newHost(a fyne.App, w fyne.Window, backdrop fyne.CanvasObject, start image.Point, logger *slog.Logger) *Host {
	h := &Host{app: a, window: w, log: logger, position: start}
	h.screen = newScreen(h, backdrop)
	h.screen.overlay.Move(toPos(start))
	return h
}

func (h *Host) Move(x, y int) {
	h.position = image.Pt(x, y)
	h.screen.overlay.Move(toPos(h.position))
}

// Resize records the requested window size. The window is wider than the
// caliper, so the overlay keeps the size of the presented frame.
func (h *Host) Resize(w, hh int) {
	h.size = image.Pt(w, hh)
}

func (h *Host) SetShapeMask(mask *image.Alpha) {
	h.mask = mask
}

func (h *Host) Position() image.Point {
	return h.position
}

// Iconify hides the caliper until the backdrop is clicked
func (h *Host) Iconify() {
	h.iconified = true
	h.screen.overlay.Hide()
	h.log.Debug("caliper minimized")
}

func (h *Host) restore() {
	h.iconified = false
	h.screen.overlay.Show()
}

func (h *Host) MonitorGeometry() geometry.Rect {
	size := h.screen.Size()
	if size.IsZero() {
		size = h.window.Canvas().Size()
	}
	return geometry.NewRect(0, 0, int(size.Width), int(size.Height))
}

// Present shows img at its pixel size
func (h *Host) Present(img *image.RGBA) {
	b := img.Bounds()
	h.screen.overlay.Image = img
	h.screen.overlay.Resize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	h.screen.overlay.Refresh()
}

// WindowSize returns the last requested window size
func (h *Host) WindowSize() image.Point {
	return h.size
}

func (h *Host) Quit() {
	h.app.Quit()
}

// hits reports whether root lies on an opaque pixel of the caliper
func (h *Host) hits(root geometry.Point) bool {
	if h.iconified || h.mask == nil {
		return false
	}
	p := root.Round().Sub(h.position)
	return h.mask.AlphaAt(p.X, p.Y).A != 0
}

func (h *Host) ShowError(err error) {
	dialog.ShowError(err, h.window)
}

func (h *Host) ChooseColor(initial color.Color, done func(color.Color, bool)) {
	picked := false
	picker := dialog.NewColorPicker("Jaw color", "Select the jaw contrast color", func(c color.Color) {
		picked = true
		done(c, true)
	}, h.window)
	picker.Advanced = true
	picker.SetColor(initial)
	// The picker hides itself before reporting the chosen colour.
	picker.SetOnClosed(func() {
		go fyne.Do(func() {
			if !picked {
				done(nil, false)
			}
		})
	})
	picker.Show()
}

func (h *Host) ShowContextMenu(at geometry.Point, items []caliper.MenuItem) {
	menuItems := make([]*fyne.MenuItem, 0, len(items))
	for _, item := range items {
		menuItems = append(menuItems, fyne.NewMenuItem(item.Label, item.Action))
	}
	menu := fyne.NewMenu("", menuItems...)
	widget.ShowPopUpMenuAtPosition(menu, h.window.Canvas(), fyne.NewPos(float32(at.X), float32(at.Y)))
}

func toPos(p image.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

var (
	_ caliper.HostWindow = (*Host)(nil)
	_ caliper.Dialogs    = (*Host)(nil)
)
