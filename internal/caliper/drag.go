package caliper

import (
	"image"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// DragMode is the state of the drag state machine
type DragMode int

const (
	Idle DragMode = iota
	Resizing
	Moving
)

func (m DragMode) String() string {
	switch m {
	case Resizing:
		return "resizing"
	case Moving:
		return "moving"
	default:
		return "idle"
	}
}

// DragSession is the state recorded at pointer press
type DragSession struct {
	ID                 uuid.UUID
	Mode               DragMode
	StartRootPointer   geometry.Point
	StartRectPos       image.Point
	StartWindowPos     image.Point
	MoveAngleOffset    float64
	MoveDistanceOffset float64
}

var (
	normalMarkers = []float64{0, math.Pi / 2, math.Pi, -math.Pi, -math.Pi / 2}
	fineMarkers   = []float64{
		0,
		math.Pi / 4,
		math.Pi / 2,
		math.Pi,
		math.Pi - math.Pi/4,
		-(math.Pi - math.Pi/4),
		-math.Pi / 2,
		-math.Pi / 4,
	}
)

// DragController turns pointer drags into distance, angle and window changes
type DragController struct {
	geo     *GeometryState
	layout  *PartLayout
	sync    *WindowSync
	tuning  Tuning
	log     *slog.Logger
	session *DragSession
}

// NewDragController creates an idle controller
func NewDragController(geo *GeometryState, layout *PartLayout, sync *WindowSync, tuning Tuning, logger *slog.Logger) *DragController {
	return &DragController{geo: geo, layout: layout, sync: sync, tuning: tuning, log: logger}
}

// Mode returns the current drag mode
func (d *DragController) Mode() DragMode {
	if d.session == nil {
		return Idle
	}
	return d.session.Mode
}

// Session returns the active session or nil when idle
func (d *DragController) Session() *DragSession {
	return d.session
}

// Press starts a session when the primary button goes down over the bottom
// jaw (resize) or the head or scale (move).
func (d *DragController) Press(root, local geometry.Point, window image.Point) DragMode {
	p := d.geo.ScreenToUnrotatedImage(local)
	part, ok := d.layout.HitTest(p)
	if !ok {
		return Idle
	}

	s := &DragSession{
		ID:               uuid.New(),
		StartRootPointer: root,
		StartRectPos:     d.layout.Bottom().Rect().Location(),
		StartWindowPos:   window,
	}
	switch part.ID() {
	case PartBottom:
		s.Mode = Resizing
		s.MoveDistanceOffset = d.geo.AxialOffset(root) - float64(d.layout.Bottom().Rect().X)
		s.MoveAngleOffset = geometry.AngleBetween(d.geo.RotationCenterRoot(), root) - d.geo.Angle()
	default:
		s.Mode = Moving
	}
	d.session = s

	d.log.Debug("drag started",
		slog.String("session", s.ID.String()),
		slog.String("mode", s.Mode.String()),
		slog.String("part", part.ID().String()))
	return s.Mode
}

// Move applies a pointer move and reports whether the caliper needs a redraw
func (d *DragController) Move(root geometry.Point, mods Modifier) bool {
	if d.session == nil {
		return false
	}
	switch d.session.Mode {
	case Resizing:
		return d.resize(root, mods)
	case Moving:
		delta := root.Sub(d.session.StartRootPointer).Round()
		d.sync.MoveTo(d.session.StartWindowPos.Add(delta))
	}
	return false
}

func (d *DragController) resize(root geometry.Point, mods Modifier) bool {
	rel := root.Sub(d.session.StartRootPointer)
	if math.Abs(rel.X) <= d.tuning.Deadzone && math.Abs(rel.Y) <= d.tuning.Deadzone {
		return false
	}

	zdo := d.layout.zeroDistanceOffset
	x := max(int(math.Round(d.geo.AxialOffset(root)-d.session.MoveDistanceOffset)), zdo)
	changed := d.layout.SetDistance(x - zdo)

	if d.layout.Distance() > d.tuning.MinDistanceForRotation {
		candidate := geometry.NormalizeAngle(geometry.AngleBetween(d.geo.RotationCenterRoot(), root) - d.session.MoveAngleOffset)
		if a, ok := d.SnapAngle(candidate, mods); ok && d.geo.SetAngle(a) {
			changed = true
		}
	}
	return changed
}

// SnapAngle applies the angle policy to a candidate angle. With Ctrl and
// without Shift the candidate is used as is. Otherwise the first marker whose
// closed tolerance interval contains the candidate wins; Shift selects the
// 45° markers at half tolerance. ok is false when nothing matches.
func (d *DragController) SnapAngle(candidate float64, mods Modifier) (float64, bool) {
	if mods.Has(ModCtrl) && !mods.Has(ModShift) {
		return candidate, true
	}

	markers, tol := normalMarkers, d.tuning.SnapAngle
	if mods.Has(ModShift) {
		markers, tol = fineMarkers, tol/2
	}
	for _, m := range markers {
		if candidate >= m-tol && candidate <= m+tol {
			d.log.Debug("angle snapped", slog.Float64("candidate", candidate), slog.Float64("marker", m))
			return m, true
		}
	}
	return 0, false
}

// Release ends any session
func (d *DragController) Release() {
	if d.session == nil {
		return
	}
	d.log.Debug("drag stopped",
		slog.String("session", d.session.ID.String()),
		slog.String("mode", d.session.Mode.String()),
		slog.Int("distance", d.layout.Distance()),
		slog.Float64("angle", d.geo.Angle()))
	d.session = nil
}
