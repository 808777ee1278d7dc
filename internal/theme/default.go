package theme

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gg"
)

// Built-in theme geometry. The head measuring edge sits at x=15; the bottom
// jaw measuring edge is its left border, so distance is bottom.X - 15.
var builtinDescriptor = Descriptor{
	RotationCenterX:    15,
	RotationCenterY:    65,
	DisplayCenterX:     45,
	DisplayCenterY:     68,
	ScaleOffsetX:       15,
	ScaleOffsetY:       57,
	ZeroDistanceOffset: 15,
}

const (
	partHeight   = 130
	headWidth    = 15
	bottomWidth  = 70
	scaleLength  = 4096
	scaleHeight  = 16
	displayWidth = 50
	displayHeight = 46
)

var (
	defaultOnce  sync.Once
	defaultTheme *Theme
	defaultErr   error
)

// Default returns the built-in theme. Its bitmaps are shared; callers must
// not modify them.
func Default() (*Theme, error) {
	defaultOnce.Do(func() {
		defaultTheme, defaultErr = buildDefault()
	})
	return defaultTheme, defaultErr
}

func buildDefault() (*Theme, error) {
	t := &Theme{
		Name:       BuiltinName,
		Descriptor: builtinDescriptor,
		Bitmaps:    make(map[PartName]Bitmap, len(PartNames)),
	}

	builders := map[PartName]func() (Bitmap, error){
		Head:    drawHead,
		Bottom:  drawBottom,
		Scale:   drawScale,
		Display: drawDisplay,
	}
	for _, name := range PartNames {
		bm, err := builders[name]()
		if err != nil {
			return nil, fmt.Errorf("failed to draw built-in %s: %w", name, err)
		}
		t.Bitmaps[name] = bm
	}
	return t, nil
}

type painter func(dc *gg.Context) error

func paint(w, h int, p painter) (*image.RGBA, error) {
	dc := gg.NewContext(w, h)
	defer dc.Close()
	if err := p(dc); err != nil {
		return nil, err
	}
	return toRGBA(dc.Image()), nil
}

// polygon fills a closed path through pts
func polygon(dc *gg.Context, pts ...[2]float64) error {
	dc.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		dc.LineTo(p[0], p[1])
	}
	dc.ClosePath()
	return dc.Fill()
}

func steel(dc *gg.Context) { dc.SetRGB(0.74, 0.76, 0.79) }

var (
	headTooth   = [][2]float64{{0, 73}, {15, 73}, {15, 130}, {9, 130}, {0, 104}}
	bottomUpper = [][2]float64{{0, 0}, {6, 0}, {12, 20}, {0, 20}}
	bottomLower = [][2]float64{{0, 110}, {15, 110}, {6, 130}, {0, 130}}
)

func drawHead() (Bitmap, error) {
	img, err := paint(headWidth, partHeight, func(dc *gg.Context) error {
		steel(dc)
		dc.DrawRectangle(0, 0, headWidth, 73)
		if err := dc.Fill(); err != nil {
			return err
		}
		if err := polygon(dc, headTooth...); err != nil {
			return err
		}
		dc.SetRGB(0.25, 0.25, 0.28)
		dc.SetLineWidth(1)
		dc.DrawLine(headWidth-0.5, 0, headWidth-0.5, partHeight)
		return dc.Stroke()
	})
	if err != nil {
		return Bitmap{}, err
	}
	jaw, err := paint(headWidth, partHeight, func(dc *gg.Context) error {
		dc.SetRGB(1, 1, 1)
		return polygon(dc, headTooth...)
	})
	if err != nil {
		return Bitmap{}, err
	}
	return Bitmap{Image: img, Jaw: alphaOf(jaw)}, nil
}

func drawBottom() (Bitmap, error) {
	img, err := paint(bottomWidth, partHeight, func(dc *gg.Context) error {
		steel(dc)
		dc.DrawRoundedRectangle(0, 20, bottomWidth, 90, 4)
		if err := dc.Fill(); err != nil {
			return err
		}
		if err := polygon(dc, bottomUpper...); err != nil {
			return err
		}
		if err := polygon(dc, bottomLower...); err != nil {
			return err
		}
		dc.SetRGB(0.25, 0.25, 0.28)
		dc.SetLineWidth(1)
		dc.DrawLine(0.5, 0, 0.5, partHeight)
		return dc.Stroke()
	})
	if err != nil {
		return Bitmap{}, err
	}
	jaw, err := paint(bottomWidth, partHeight, func(dc *gg.Context) error {
		dc.SetRGB(1, 1, 1)
		if err := polygon(dc, bottomUpper...); err != nil {
			return err
		}
		return polygon(dc, bottomLower...)
	})
	if err != nil {
		return Bitmap{}, err
	}
	return Bitmap{Image: img, Jaw: alphaOf(jaw)}, nil
}

func drawScale() (Bitmap, error) {
	img, err := paint(scaleLength, scaleHeight, func(dc *gg.Context) error {
		dc.SetRGB(0.96, 0.92, 0.70)
		dc.DrawRectangle(0, 0, scaleLength, scaleHeight)
		if err := dc.Fill(); err != nil {
			return err
		}
		dc.SetRGB(0.15, 0.15, 0.15)
		dc.SetLineWidth(1)
		for x := 0; x < scaleLength; x += 5 {
			length := 4.0
			switch {
			case x%100 == 0:
				length = scaleHeight - 2
			case x%50 == 0:
				length = 10
			case x%10 == 0:
				length = 7
			}
			dc.DrawLine(float64(x)+0.5, 0, float64(x)+0.5, length)
		}
		return dc.Stroke()
	})
	if err != nil {
		return Bitmap{}, err
	}
	return Bitmap{Image: img}, nil
}

func drawDisplay() (Bitmap, error) {
	img, err := paint(displayWidth, displayHeight, func(dc *gg.Context) error {
		dc.SetRGB(0.98, 0.98, 0.96)
		dc.DrawRoundedRectangle(0.5, 0.5, displayWidth-1, displayHeight-1, 5)
		if err := dc.Fill(); err != nil {
			return err
		}
		dc.SetRGB(0.3, 0.3, 0.32)
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(0.5, 0.5, displayWidth-1, displayHeight-1, 5)
		return dc.Stroke()
	})
	if err != nil {
		return Bitmap{}, err
	}
	return Bitmap{Image: img}, nil
}
