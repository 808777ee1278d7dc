package caliper

import (
	"image"
	"log/slog"

	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// WindowSync keeps the host window placed so the rotated pivot stays on the
// root pivot, and sizes and shapes the window after each render.
type WindowSync struct {
	host   HostWindow
	geo    *GeometryState
	margin int
	log    *slog.Logger

	// issued is the last position this sync moved the window to. Configure
	// events reporting it do not re-derive the pivot, so rounding of the
	// window origin never accumulates into pivot drift.
	issued    image.Point
	hasIssued bool
}

// NewWindowSync creates a sync for host
func NewWindowSync(host HostWindow, geo *GeometryState, margin int, logger *slog.Logger) *WindowSync {
	return &WindowSync{host: host, geo: geo, margin: margin, log: logger}
}

// Recompute moves the window to the origin required by the current angle and
// rotated rect. It returns the new origin.
func (w *WindowSync) Recompute() image.Point {
	origin := w.geo.WindowOrigin()
	if origin != w.host.Position() {
		w.issue(origin)
	}
	return origin
}

// RequiredWindowSize is at least a monitor width plus margin wide so the
// window manager always has to honour positioning requests.
func (w *WindowSync) RequiredWindowSize(rotated geometry.Rect) image.Point {
	monitor := w.host.MonitorGeometry()
	return image.Pt(max(rotated.W, monitor.W+w.margin), rotated.H)
}

// ApplyShapeMask pushes the opaque silhouette to the host
func (w *WindowSync) ApplyShapeMask(mask *image.Alpha) {
	w.host.SetShapeMask(mask)
}

// MoveTo moves the window by user request and re-anchors the pivot
func (w *WindowSync) MoveTo(p image.Point) {
	w.issue(p)
	w.geo.UpdateRotationCenterFromWindow(p)
}

// Configure handles a position reported by the system
func (w *WindowSync) Configure(p image.Point) {
	if w.hasIssued && p == w.issued {
		return
	}
	w.log.Debug("window configured", slog.Int("x", p.X), slog.Int("y", p.Y))
	w.geo.UpdateRotationCenterFromWindow(p)
}

func (w *WindowSync) issue(p image.Point) {
	w.issued, w.hasIssued = p, true
	w.host.Move(p.X, p.Y)
}
