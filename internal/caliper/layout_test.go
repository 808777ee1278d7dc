package caliper

import (
	"image/color"
	"testing"

	"github.com/philipparndt/gcaliper/internal/theme"
	"github.com/philipparndt/gcaliper/pkg/geometry"
)

func defaultTheme(t *testing.T) *theme.Theme {
	t.Helper()
	th, err := theme.Default()
	if err != nil {
		t.Fatalf("failed to build default theme: %v", err)
	}
	return th
}

func newTestLayout(t *testing.T) *PartLayout {
	th := defaultTheme(t)
	return NewPartLayout(th, th.Descriptor.ZeroDistanceOffset)
}

func TestSetDistanceMovesBottomAndScale(t *testing.T) {
	l := newTestLayout(t)
	if !l.SetDistance(100) {
		t.Fatal("expected change")
	}
	if got := l.Bottom().Rect().X; got != 115 {
		t.Errorf("expected bottom jaw x 115, got %d", got)
	}
	if got := l.Scale().Rect().W; got != 100 {
		t.Errorf("expected scale width 100, got %d", got)
	}
	if got := l.Distance(); got != 100 {
		t.Errorf("expected distance 100, got %d", got)
	}
}

func TestSetDistanceClampsAndSkipsNoOp(t *testing.T) {
	l := newTestLayout(t)
	l.SetDistance(40)

	if !l.SetDistance(-5) {
		t.Fatal("expected change when clamping to 0")
	}
	if l.Distance() != 0 || l.Bottom().Rect().X != 15 {
		t.Errorf("expected distance 0 at x 15, got %d at x %d", l.Distance(), l.Bottom().Rect().X)
	}

	l.scale.rect.W = 7 // sentinel: a no-op must not touch the scale bar
	if l.SetDistance(0) {
		t.Error("setting the current distance should report no change")
	}
	if l.SetDistance(-1) {
		t.Error("a value clamping to the current distance should report no change")
	}
	if l.Scale().Rect().W != 7 {
		t.Errorf("scale width recomputed on no-op: %d", l.Scale().Rect().W)
	}
}

func TestBoundingRectOfRotatingParts(t *testing.T) {
	l := newTestLayout(t)
	l.SetDistance(100)
	if got := l.BoundingRectOfRotatingParts(); got != geometry.NewRect(0, 0, 185, 130) {
		t.Errorf("expected (0,0,185,130), got %+v", got)
	}

	l.SetDistance(0)
	if got := l.BoundingRectOfRotatingParts(); got != geometry.NewRect(0, 0, 85, 130) {
		t.Errorf("expected (0,0,85,130), got %+v", got)
	}
}

func TestHitTest(t *testing.T) {
	l := newTestLayout(t)
	l.SetDistance(100)

	tests := []struct {
		p        geometry.Point
		expected PartID
		hit      bool
	}{
		{geometry.Pt(150, 65), PartBottom, true},
		{geometry.Pt(115, 0), PartBottom, true},
		{geometry.Pt(5, 10), PartHead, true},
		{geometry.Pt(60, 60), PartScale, true},
		{geometry.Pt(60, 10), 0, false},
		{geometry.Pt(-1, 10), 0, false},
	}
	for _, tt := range tests {
		part, ok := l.HitTest(tt.p)
		if ok != tt.hit {
			t.Errorf("HitTest(%v): expected hit=%v, got %v", tt.p, tt.hit, ok)
			continue
		}
		if ok && part.ID() != tt.expected {
			t.Errorf("HitTest(%v): expected %v, got %v", tt.p, tt.expected, part.ID())
		}
	}
}

func TestPlaceDisplay(t *testing.T) {
	l := newTestLayout(t)
	l.SetDistance(100)
	g := NewGeometryState(defaultTheme(t).Descriptor)
	u := l.BoundingRectOfRotatingParts()
	g.SetRects(u, u)

	// centre (115+45, 68) minus half of the 50x46 display
	if got := l.PlaceDisplay(g); got != geometry.NewRect(135, 45, 50, 46) {
		t.Errorf("expected (135,45,50,46), got %+v", got)
	}
}

func TestScaleBitmapCroppedToDistance(t *testing.T) {
	l := newTestLayout(t)
	l.SetDistance(42)
	if got := l.Scale().Bitmap().Bounds().Dx(); got != 42 {
		t.Errorf("expected scale bitmap width 42, got %d", got)
	}
}

func TestApplyContrastTintsJawOnly(t *testing.T) {
	l := newTestLayout(t)
	jawColor := color.RGBA{G: 200, A: 255}
	l.ApplyContrast(jawColor)

	head := l.Head()
	img := head.image
	// inside the head tooth (x 0..15, y 73..104 fully covered)
	if got := img.RGBAAt(10, 90); got != jawColor {
		t.Errorf("expected jaw colour in tooth, got %v", got)
	}
	if got := img.RGBAAt(5, 10); got == jawColor {
		t.Error("head body must keep its colour")
	}
	if head.source.Image.RGBAAt(10, 90) == jawColor {
		t.Error("theme bitmap must not be modified")
	}
}
