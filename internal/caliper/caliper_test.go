package caliper_test

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/philipparndt/gcaliper/internal/caliper"
	"github.com/philipparndt/gcaliper/internal/headless"
	"github.com/philipparndt/gcaliper/internal/log"
	"github.com/philipparndt/gcaliper/pkg/geometry"
)

var start = image.Pt(100, 200)

type fixture struct {
	c       *caliper.Caliper
	host    *headless.Host
	dialogs *headless.Dialogs
}

func newFixture(t *testing.T, opts caliper.Options) *fixture {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	host := headless.NewHost(1920, 1080)
	host.SetPosition(start)
	dialogs := &headless.Dialogs{}
	c, err := caliper.New(host, dialogs, opts)
	if err != nil {
		t.Fatalf("failed to create caliper: %v", err)
	}
	return &fixture{c: c, host: host, dialogs: dialogs}
}

func newPositioned(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t, caliper.Options{})
	f.c.HandleEvent(caliper.ConfigureEvent{Position: start})
	return f
}

// pointer builds an event at an unrotated image point of the caliper
func (f *fixture) pointer(action caliper.PointerAction, imagePoint geometry.Point, mods caliper.Modifier) caliper.PointerEvent {
	local := f.c.Geometry().ImageToRotated(imagePoint)
	return caliper.PointerEvent{
		Action: action,
		Button: caliper.ButtonPrimary,
		Root:   geometry.FromImagePoint(f.host.Position()).Add(local),
		Local:  local,
		Mods:   mods,
	}
}

func moveTo(root geometry.Point, mods caliper.Modifier) caliper.PointerEvent {
	return caliper.PointerEvent{Action: caliper.PointerMove, Root: root, Mods: mods}
}

func (f *fixture) pivotError() float64 {
	g := f.c.Geometry()
	onScreen := geometry.FromImagePoint(f.host.Position()).Add(g.ImageToRotated(g.RotationCenterImage()))
	return onScreen.Distance(g.RotationCenterRoot())
}

func TestNothingRenderedBeforeConfigure(t *testing.T) {
	f := newFixture(t, caliper.Options{})
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyRight, Mods: caliper.ModCtrl})

	if f.c.Distance() != 101 {
		t.Errorf("expected distance 101, got %d", f.c.Distance())
	}
	if f.c.Frame() != nil || f.host.Presents != 0 {
		t.Error("expected no render before the window is positioned")
	}
}

func TestFirstConfigureRendersInPlace(t *testing.T) {
	f := newPositioned(t)

	if !f.c.Positioned() || f.c.Frame() == nil {
		t.Fatal("expected a frame after the first configure event")
	}
	if f.c.Distance() != 100 {
		t.Errorf("expected initial distance 100, got %d", f.c.Distance())
	}
	if len(f.host.Moves) != 0 {
		t.Errorf("window should not move at angle 0, got moves %v", f.host.Moves)
	}
	if got := f.host.Size(); got != image.Pt(1930, 130) {
		t.Errorf("expected window size 1930x130, got %v", got)
	}
	if f.host.Mask() == nil || f.host.Presented() != f.c.Frame().Image {
		t.Error("expected mask and presented frame")
	}
	if got := f.c.Geometry().RotationCenterRoot(); got != geometry.Pt(115, 265) {
		t.Errorf("expected root pivot (115,265), got %v", got)
	}
}

func TestResizeDeadzone(t *testing.T) {
	f := newPositioned(t)
	press := f.pointer(caliper.PointerPress, geometry.Pt(150, 65), 0)
	f.c.HandleEvent(press)
	if f.c.Mode() != caliper.Resizing {
		t.Fatalf("expected resizing, got %v", f.c.Mode())
	}

	f.c.HandleEvent(moveTo(press.Root.Add(geometry.Pt(5, 5)), 0))
	if f.c.Distance() != 100 || f.c.Angle() != 0 {
		t.Errorf("movement inside the deadzone changed the caliper: %d %v", f.c.Distance(), f.c.Angle())
	}

	f.c.HandleEvent(moveTo(press.Root.Add(geometry.Pt(11, 0)), 0))
	if f.c.Distance() != 111 {
		t.Errorf("expected distance 111 after leaving the deadzone, got %d", f.c.Distance())
	}

	f.c.HandleEvent(caliper.PointerEvent{Action: caliper.PointerRelease, Button: caliper.ButtonPrimary})
	if f.c.Mode() != caliper.Idle {
		t.Errorf("expected idle after release, got %v", f.c.Mode())
	}
}

func TestResizeDistanceClampedAtZero(t *testing.T) {
	f := newPositioned(t)
	press := f.pointer(caliper.PointerPress, geometry.Pt(150, 65), 0)
	f.c.HandleEvent(press)
	f.c.HandleEvent(moveTo(press.Root.Add(geometry.Pt(-400, 0)), 0))

	if f.c.Distance() != 0 {
		t.Errorf("expected distance clamped to 0, got %d", f.c.Distance())
	}
	if f.c.Angle() != 0 {
		t.Errorf("no rotation expected at distance 0, got %v", f.c.Angle())
	}
}

// rootAt returns the screen point at the given radius and angle around the root pivot
func rootAt(f *fixture, radius, angle float64) geometry.Point {
	return f.c.Geometry().RotationCenterRoot().Add(geometry.Pt(radius*math.Cos(angle), radius*math.Sin(angle)))
}

func TestResizeSnapsAngle(t *testing.T) {
	f := newPositioned(t)
	press := f.pointer(caliper.PointerPress, geometry.Pt(150, 65), 0)
	f.c.HandleEvent(press)

	// the jaw follows the pointer's projection onto the current axis
	f.c.HandleEvent(moveTo(rootAt(f, 135, 1.2), 0))
	if f.c.Angle() != math.Pi/2 {
		t.Fatalf("expected snap to π/2, got %v", f.c.Angle())
	}

	f.c.HandleEvent(moveTo(rootAt(f, 135, 1.6), 0))
	if f.c.Angle() != math.Pi/2 {
		t.Errorf("expected angle to stay at π/2, got %v", f.c.Angle())
	}
	if f.c.Distance() != 100 {
		t.Errorf("expected distance 100, got %d", f.c.Distance())
	}
	if e := f.pivotError(); e > 0.75 {
		t.Errorf("pivot moved by %v after rotation", e)
	}
}

func TestResizeWithoutMatchingMarkerKeepsAngle(t *testing.T) {
	f := newPositioned(t)
	f.c.HandleEvent(f.pointer(caliper.PointerPress, geometry.Pt(150, 65), 0))

	f.c.HandleEvent(moveTo(rootAt(f, 135, 0.9), 0))
	if f.c.Angle() != 0 {
		t.Errorf("expected unchanged angle, got %v", f.c.Angle())
	}
	// 135·cos(0.9) - 20 - 15
	if f.c.Distance() != 49 {
		t.Errorf("expected projected distance 49, got %d", f.c.Distance())
	}
}

func TestResizePreciseRotation(t *testing.T) {
	f := newPositioned(t)
	f.c.HandleEvent(f.pointer(caliper.PointerPress, geometry.Pt(150, 65), 0))

	f.c.HandleEvent(moveTo(rootAt(f, 135, 0.9), caliper.ModCtrl))
	if math.Abs(f.c.Angle()-0.9) > 1e-9 {
		t.Errorf("expected raw angle 0.9, got %v", f.c.Angle())
	}
	if e := f.pivotError(); e > 0.75 {
		t.Errorf("pivot moved by %v after rotation", e)
	}
}

func TestResizeFineSnap(t *testing.T) {
	f := newPositioned(t)
	f.c.HandleEvent(f.pointer(caliper.PointerPress, geometry.Pt(150, 65), 0))

	f.c.HandleEvent(moveTo(rootAt(f, 135, 0.8), caliper.ModShift))
	if math.Abs(f.c.Angle()-math.Pi/4) > 1e-12 {
		t.Errorf("expected snap to π/4, got %v", f.c.Angle())
	}
}

func TestResizeAlongRotatedAxis(t *testing.T) {
	f := newPositioned(t)
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyV})
	if f.c.Angle() != math.Pi/2 {
		t.Fatalf("expected vertical caliper, got %v", f.c.Angle())
	}

	press := f.pointer(caliper.PointerPress, geometry.Pt(150, 65), 0)
	f.c.HandleEvent(press)
	if f.c.Mode() != caliper.Resizing {
		t.Fatalf("expected resizing at rotated bottom jaw, got %v", f.c.Mode())
	}
	f.c.HandleEvent(moveTo(press.Root.Add(geometry.Pt(0, 20)), 0))

	if f.c.Distance() != 120 {
		t.Errorf("expected distance 120, got %d", f.c.Distance())
	}
	if f.c.Angle() != math.Pi/2 {
		t.Errorf("expected angle to stay π/2, got %v", f.c.Angle())
	}
}

func TestMoveDrag(t *testing.T) {
	f := newPositioned(t)
	press := f.pointer(caliper.PointerPress, geometry.Pt(5, 20), 0)
	f.c.HandleEvent(press)
	if f.c.Mode() != caliper.Moving {
		t.Fatalf("expected moving, got %v", f.c.Mode())
	}

	f.c.HandleEvent(moveTo(press.Root.Add(geometry.Pt(30, 10)), 0))
	if got := f.host.Position(); got != image.Pt(130, 210) {
		t.Errorf("expected window at (130,210), got %v", got)
	}
	if got := f.c.Geometry().RotationCenterRoot(); got != geometry.Pt(145, 275) {
		t.Errorf("expected root pivot (145,275), got %v", got)
	}
	if f.c.Distance() != 100 {
		t.Errorf("moving must not change the distance, got %d", f.c.Distance())
	}
}

func TestPressOutsidePartsStaysIdle(t *testing.T) {
	f := newPositioned(t)
	f.c.HandleEvent(f.pointer(caliper.PointerPress, geometry.Pt(60, 10), 0))
	if f.c.Mode() != caliper.Idle {
		t.Errorf("expected idle, got %v", f.c.Mode())
	}
}

func TestPivotDoesNotDriftUnderRepeatedRotation(t *testing.T) {
	f := newPositioned(t)
	pivot := f.c.Geometry().RotationCenterRoot()

	for i := 0; i < 50; i++ {
		f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyT, Mods: caliper.ModCtrl})
		// the window manager reports the position we asked for
		f.c.HandleEvent(caliper.ConfigureEvent{Position: f.host.Position()})
	}

	if math.Abs(f.c.Angle()-50*geometry.DEG1) > 1e-9 {
		t.Errorf("expected 50°, got %v", geometry.RadToDeg(f.c.Angle()))
	}
	if got := f.c.Geometry().RotationCenterRoot(); got != pivot {
		t.Errorf("root pivot drifted from %v to %v", pivot, got)
	}
	if e := f.pivotError(); e > 0.75 {
		t.Errorf("pivot off by %v", e)
	}
}

func TestExternalMoveReanchorsPivot(t *testing.T) {
	f := newPositioned(t)
	f.host.SetPosition(image.Pt(400, 400))
	f.c.HandleEvent(caliper.ConfigureEvent{Position: image.Pt(400, 400)})

	if got := f.c.Geometry().RotationCenterRoot(); got != geometry.Pt(415, 465) {
		t.Errorf("expected root pivot (415,465), got %v", got)
	}
}

func TestArrowKeys(t *testing.T) {
	f := newPositioned(t)

	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyRight, Mods: caliper.ModCtrl})
	if f.c.Distance() != 101 {
		t.Errorf("ctrl+right: expected 101, got %d", f.c.Distance())
	}
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyUp, Mods: caliper.ModCtrl | caliper.ModShift})
	if f.c.Distance() != 81 {
		t.Errorf("ctrl+shift+up: expected 81, got %d", f.c.Distance())
	}

	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyUp})
	if got := f.host.Position(); got != image.Pt(100, 199) {
		t.Errorf("up: expected (100,199), got %v", got)
	}
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyRight, Mods: caliper.ModShift})
	if got := f.host.Position(); got != image.Pt(120, 199) {
		t.Errorf("shift+right: expected (120,199), got %v", got)
	}
	if got := f.c.Geometry().RotationCenterRoot(); got != geometry.Pt(135, 264) {
		t.Errorf("expected root pivot to follow the window, got %v", got)
	}
}

func TestRotationKeys(t *testing.T) {
	tests := []struct {
		key      caliper.Key
		mods     caliper.Modifier
		expected float64
	}{
		{caliper.KeyR, 0, -math.Pi / 2},
		{caliper.KeyT, 0, math.Pi / 2},
		{caliper.KeyR, caliper.ModShift, -math.Pi / 4},
		{caliper.KeyT, caliper.ModShift, math.Pi / 4},
		{caliper.KeyR, caliper.ModCtrl, -geometry.DEG1},
		{caliper.KeyV, 0, math.Pi / 2},
		{caliper.KeyH, 0, 0},
	}
	for _, tt := range tests {
		f := newPositioned(t)
		f.c.HandleEvent(caliper.KeyEvent{Key: tt.key, Mods: tt.mods})
		if math.Abs(f.c.Angle()-tt.expected) > 1e-12 {
			t.Errorf("%s mods=%d: expected %v, got %v", tt.key, tt.mods, tt.expected, f.c.Angle())
		}
	}
}

func TestRotateHalfTurnStaysInRange(t *testing.T) {
	f := newPositioned(t)
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyT})
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyT})
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyT})

	if math.Abs(f.c.Angle()+math.Pi/2) > 1e-12 {
		t.Errorf("expected -π/2 after three quarter turns, got %v", f.c.Angle())
	}
}

func TestHomeAndEndKeys(t *testing.T) {
	f := newPositioned(t)

	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyHome})
	if f.c.Distance() != 0 {
		t.Errorf("home: expected 0, got %d", f.c.Distance())
	}

	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyEnd})
	if f.c.Distance() != 1720 {
		t.Errorf("end at angle 0: expected 1720, got %d", f.c.Distance())
	}

	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyV})
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyEnd})
	if f.c.Distance() != 880 {
		t.Errorf("end at angle π/2: expected 880, got %d", f.c.Distance())
	}
}

func TestIconifyAndQuitKeys(t *testing.T) {
	f := newPositioned(t)

	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyN})
	if !f.host.Iconified {
		t.Error("expected iconify")
	}

	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyQ})
	if f.host.QuitCalled {
		t.Error("q without ctrl must not quit")
	}
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyW, Mods: caliper.ModCtrl})
	if !f.host.QuitCalled {
		t.Error("expected ctrl+w to quit")
	}
}

func TestColorChooserPersistsChoice(t *testing.T) {
	var reported color.Color
	f := newFixture(t, caliper.Options{OnJawColorChanged: func(c color.Color) { reported = c }})
	f.c.HandleEvent(caliper.ConfigureEvent{Position: start})

	blue := color.RGBA{B: 200, A: 255}
	f.dialogs.NextColor = blue
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyC})

	if f.c.JawColor() != blue || reported != blue {
		t.Errorf("expected jaw colour %v reported, got %v / %v", blue, f.c.JawColor(), reported)
	}
}

func TestColorChooserCancel(t *testing.T) {
	called := false
	f := newFixture(t, caliper.Options{OnJawColorChanged: func(color.Color) { called = true }})
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyC})

	if called || f.c.JawColor() != caliper.DefaultJawColor {
		t.Error("cancelled chooser must not change the colour")
	}
}

func TestSetJawColorDoesNotReport(t *testing.T) {
	called := false
	f := newFixture(t, caliper.Options{OnJawColorChanged: func(color.Color) { called = true }})
	f.c.SetJawColor(color.White)

	if called {
		t.Error("SetJawColor must not report the change")
	}
	if f.c.JawColor() != color.White {
		t.Errorf("expected white jaws, got %v", f.c.JawColor())
	}
}

func TestContextMenu(t *testing.T) {
	f := newPositioned(t)
	f.c.HandleEvent(caliper.PointerEvent{Action: caliper.PointerPress, Button: caliper.ButtonSecondary, Root: geometry.Pt(120, 230)})

	if len(f.dialogs.Menu) != 5 || f.dialogs.MenuAt != geometry.Pt(120, 230) {
		t.Fatalf("expected context menu at (120,230), got %d items at %v", len(f.dialogs.Menu), f.dialogs.MenuAt)
	}
	if !f.dialogs.Select("Vertical") || f.c.Angle() != math.Pi/2 {
		t.Errorf("expected vertical caliper, got %v", f.c.Angle())
	}
	if !f.dialogs.Select("Quit") || !f.host.QuitCalled {
		t.Error("expected quit from menu")
	}
}

func TestRenderFailureKeepsPreviousFrame(t *testing.T) {
	tuning := caliper.DefaultTuning()
	tuning.MaxCanvasPixels = 185 * 130 * 2
	f := newFixture(t, caliper.Options{Tuning: tuning})
	f.c.HandleEvent(caliper.ConfigureEvent{Position: start})

	frame := f.c.Frame()
	if frame == nil {
		t.Fatal("expected initial frame")
	}

	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyEnd})

	if len(f.dialogs.Errors) != 1 || !errors.Is(f.dialogs.Errors[0], caliper.ErrCanvasTooLarge) {
		t.Fatalf("expected one ErrCanvasTooLarge, got %v", f.dialogs.Errors)
	}
	if f.c.Frame() != frame || f.host.Presented() != frame.Image {
		t.Error("previous frame must stay presented")
	}

	// a later successful render replaces it
	f.c.HandleEvent(caliper.KeyEvent{Key: caliper.KeyHome})
	if f.c.Frame() == frame {
		t.Error("expected a new frame after recovering")
	}
}

func TestDebugPointerTracking(t *testing.T) {
	f := newFixture(t, caliper.Options{Debug: true})
	f.c.HandleEvent(caliper.ConfigureEvent{Position: start})

	ev := f.pointer(caliper.PointerMove, geometry.Pt(150, 65), 0)
	f.c.HandleEvent(ev)

	if f.c.Frame() == nil {
		t.Fatal("expected frame")
	}
	if got := f.c.Frame().Image.RGBAAt(60, 100); got.G == 0 || got.R != 0 {
		t.Errorf("expected green debug background, got %v", got)
	}
}

func TestInitialAngleFromTuning(t *testing.T) {
	tuning := caliper.DefaultTuning()
	tuning.InitialAngle = 3 * math.Pi / 2
	tuning.InitialDistance = 30
	f := newFixture(t, caliper.Options{Tuning: tuning})

	if math.Abs(f.c.Angle()+math.Pi/2) > 1e-12 || f.c.Distance() != 30 {
		t.Errorf("unexpected initial state %v %d", f.c.Angle(), f.c.Distance())
	}
}
