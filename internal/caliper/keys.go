package caliper

import (
	"image"
	"math"

	"github.com/philipparndt/gcaliper/pkg/geometry"
)

const (
	nudgeStep     = 1
	fastNudgeStep = 20
)

func (c *Caliper) handleKey(e KeyEvent) {
	switch e.Key {
	case KeyLeft, KeyRight, KeyUp, KeyDown:
		c.nudge(e)

	case KeyR, KeyT:
		step := math.Pi / 2
		if e.Mods.Has(ModShift) {
			step = math.Pi / 4
		}
		if e.Mods.Has(ModCtrl) {
			step = geometry.DEG1
		}
		if e.Key == KeyT {
			step = -step
		}
		c.setAngle(c.geo.Angle() - step)

	case KeyV:
		c.setAngle(math.Pi / 2)
	case KeyH:
		c.setAngle(0)

	case KeyN:
		c.host.Iconify()

	case KeyHome:
		c.setDistance(0)
	case KeyEnd:
		mon := c.host.MonitorGeometry()
		if c.geo.Angle() == 0 {
			c.setDistance(mon.W - c.opts.Tuning.EndMargin)
		} else {
			c.setDistance(mon.H - c.opts.Tuning.EndMargin)
		}

	case KeyC:
		c.chooseColor()

	case KeyQ, KeyW:
		if e.Mods.Has(ModCtrl) {
			c.log.Info("quit requested")
			c.host.Quit()
		}
	}
}

// nudge moves the window by 1px (20px with Shift); with Ctrl the step is
// added to the distance instead, Left and Up counting negative.
func (c *Caliper) nudge(e KeyEvent) {
	step := nudgeStep
	if e.Mods.Has(ModShift) {
		step = fastNudgeStep
	}
	if e.Key == KeyLeft || e.Key == KeyUp {
		step = -step
	}

	if e.Mods.Has(ModCtrl) {
		c.setDistance(c.layout.Distance() + step)
		return
	}

	delta := image.Pt(step, 0)
	if e.Key == KeyUp || e.Key == KeyDown {
		delta = image.Pt(0, step)
	}
	c.sync.MoveTo(c.host.Position().Add(delta))
}

func (c *Caliper) setAngle(a float64) {
	if c.geo.SetAngle(a) {
		c.needsRedraw = true
	}
}

func (c *Caliper) setDistance(d int) {
	if c.layout.SetDistance(d) {
		c.needsRedraw = true
	}
}
