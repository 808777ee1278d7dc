package theme

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gcaliper/internal/log"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDescriptorConf(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfFile), `[theme]
rotationCenterX=20
rotationCenterY = 65
displayCenterX = 45
displayCenterY = 68
scaleOffsetX = 15
scaleOffsetY = 57
zeroDistanceOffset = 15
`)
	d, err := LoadDescriptor(dir, log.Discard())
	if err != nil {
		t.Fatalf("LoadDescriptor failed: %v", err)
	}
	expected := Descriptor{20, 65, 45, 68, 15, 57, 15}
	if d != expected {
		t.Errorf("expected %+v, got %+v", expected, d)
	}
}

func TestLoadDescriptorINIComments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfFile), `; caliper theme
[info]
name = Steel caliper

[theme]
rotationCenterX = 15 ; pivot
rotationCenterY=65
# display
displayCenterX = 45
zeroDistanceOffset = 15
`)
	d, err := LoadDescriptor(dir, log.Discard())
	if err != nil {
		t.Fatal(err)
	}
	want := Descriptor{RotationCenterX: 15, RotationCenterY: 65, DisplayCenterX: 45, ZeroDistanceOffset: 15}
	if d != want {
		t.Errorf("descriptor = %+v, want %+v", d, want)
	}
}

func TestLoadDescriptorYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, YAMLFile), "theme:\n  rotationCenterX: 7\n  zeroDistanceOffset: 3\n")
	d, err := LoadDescriptor(dir, log.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if d.RotationCenterX != 7 || d.ZeroDistanceOffset != 3 || d.RotationCenterY != 0 {
		t.Errorf("unexpected descriptor %+v", d)
	}
}

func TestMalformedValuesFallBackToZero(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfFile), "[theme]\nrotationCenterX = \"abc\"\nrotationCenterY = 1.5\nscaleOffsetX = 4\n")
	d, err := LoadDescriptor(dir, log.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if d.RotationCenterX != 0 || d.RotationCenterY != 0 || d.ScaleOffsetX != 4 {
		t.Errorf("unexpected descriptor %+v", d)
	}
}

func TestUnparsableDescriptorIsZero(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfFile), "[theme\nthis is not toml")
	d, err := LoadDescriptor(dir, log.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if d != (Descriptor{}) {
		t.Errorf("expected zero descriptor, got %+v", d)
	}
}

func TestLoadMissingTheme(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("expected ErrThemeNotFound, got %v", err)
	}
}

func TestLoadUsesBuiltinForMissingBitmaps(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "brass")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, ConfFile), "[theme]\nzeroDistanceOffset = 9\n")
	writePNG(t, filepath.Join(dir, "head.png"), 9, 40, color.RGBA{R: 200, A: 255})
	writePNG(t, filepath.Join(dir, "head_jaw.png"), 9, 40, color.RGBA{A: 255})

	th, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if th.Name != "brass" || th.Descriptor.ZeroDistanceOffset != 9 {
		t.Errorf("unexpected theme %q %+v", th.Name, th.Descriptor)
	}
	if got := th.Bitmap(Head).Size(); got != image.Pt(9, 40) {
		t.Errorf("expected custom head 9x40, got %v", got)
	}
	if th.Bitmap(Head).Jaw == nil {
		t.Error("expected head jaw mask")
	}

	def, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if th.Bitmap(Bottom).Image != def.Bitmap(Bottom).Image {
		t.Error("expected built-in bottom bitmap")
	}
}

func TestDefaultTheme(t *testing.T) {
	th, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if th.Descriptor.ZeroDistanceOffset != 15 {
		t.Errorf("expected zero distance offset 15, got %d", th.Descriptor.ZeroDistanceOffset)
	}
	for _, name := range PartNames {
		bm := th.Bitmap(name)
		if bm.Image == nil || bm.Image.Bounds().Empty() {
			t.Errorf("built-in %s bitmap missing", name)
		}
	}
	if th.Bitmap(Head).Jaw == nil || th.Bitmap(Bottom).Jaw == nil {
		t.Error("expected jaw masks on head and bottom")
	}
	if got := th.Bitmap(Head).Image.RGBAAt(5, 10); got.A == 0 {
		t.Error("expected opaque head body")
	}
}

func TestTinted(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	jaw := image.NewAlpha(img.Bounds())
	jaw.SetAlpha(1, 0, color.Alpha{A: 255})

	bm := Bitmap{Image: img, Jaw: jaw}
	out := bm.Tinted(color.RGBA{R: 150, A: 255})

	if got := out.RGBAAt(1, 0); got != (color.RGBA{R: 150, A: 255}) {
		t.Errorf("expected tinted jaw pixel, got %v", got)
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{R: 10, G: 10, B: 10, A: 255}) {
		t.Errorf("expected untouched body pixel, got %v", got)
	}
	if img.RGBAAt(1, 0).R != 10 {
		t.Error("Tinted must not modify the source image")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zinc", "brass", "empty"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	writeFile(t, filepath.Join(dir, "zinc", ConfFile), "[theme]\n")
	writeFile(t, filepath.Join(dir, "brass", YAMLFile), "theme: {}\n")

	names, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"brass", BuiltinName, "zinc"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, names)
		}
	}

	names, err = List(filepath.Join(dir, "missing"))
	if err != nil || len(names) != 1 || names[0] != BuiltinName {
		t.Errorf("expected only built-in theme, got %v (%v)", names, err)
	}
}

func TestResolveFallsBack(t *testing.T) {
	th, err := Resolve(t.TempDir(), "unknown")
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != BuiltinName {
		t.Errorf("expected built-in fallback, got %q", th.Name)
	}
}
