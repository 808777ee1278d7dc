// Package headless implements the caliper host and dialogs without a display.
// It records every request so renders can be exported and behaviour inspected.
package headless

import (
	"image"
	"image/color"
	"sync"

	"github.com/philipparndt/gcaliper/internal/caliper"
	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// Host is an off-screen HostWindow
type Host struct {
	mu sync.Mutex

	Monitor   geometry.Rect
	position  image.Point
	size      image.Point
	mask      *image.Alpha
	presented *image.RGBA

	Moves      []image.Point
	Resizes    []image.Point
	Presents   int
	Iconified  bool
	QuitCalled bool
}

// NewHost creates a host on a monitor of the given size
func NewHost(monitorW, monitorH int) *Host {
	return &Host{Monitor: geometry.NewRect(0, 0, monitorW, monitorH)}
}

func (h *Host) Move(x, y int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.position = image.Pt(x, y)
	h.Moves = append(h.Moves, h.position)
}

func (h *Host) Resize(w, hh int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.size = image.Pt(w, hh)
	h.Resizes = append(h.Resizes, h.size)
}

func (h *Host) SetShapeMask(mask *image.Alpha) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mask = mask
}

func (h *Host) Position() image.Point {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.position
}

// SetPosition places the window without recording a move, like a window manager would
func (h *Host) SetPosition(p image.Point) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.position = p
}

func (h *Host) Iconify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Iconified = true
}

func (h *Host) MonitorGeometry() geometry.Rect {
	return h.Monitor
}

func (h *Host) Present(img *image.RGBA) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.presented = img
	h.Presents++
}

func (h *Host) Quit() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.QuitCalled = true
}

// Size returns the last requested window size
func (h *Host) Size() image.Point {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// Mask returns the last shape mask
func (h *Host) Mask() *image.Alpha {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mask
}

// Presented returns the last presented image
func (h *Host) Presented() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presented
}

// Dialogs records dialog requests. ChooseColor answers immediately with
// NextColor, or cancels when NextColor is nil.
type Dialogs struct {
	Errors    []error
	NextColor color.Color
	MenuAt    geometry.Point
	Menu      []caliper.MenuItem
}

func (d *Dialogs) ShowError(err error) {
	d.Errors = append(d.Errors, err)
}

func (d *Dialogs) ChooseColor(_ color.Color, done func(color.Color, bool)) {
	done(d.NextColor, d.NextColor != nil)
}

func (d *Dialogs) ShowContextMenu(at geometry.Point, items []caliper.MenuItem) {
	d.MenuAt = at
	d.Menu = items
}

// Select runs the action of the context menu item with the given label
func (d *Dialogs) Select(label string) bool {
	for _, item := range d.Menu {
		if item.Label == label {
			item.Action()
			return true
		}
	}
	return false
}

var (
	_ caliper.HostWindow = (*Host)(nil)
	_ caliper.Dialogs    = (*Dialogs)(nil)
)
