// Package caliper is the interaction and transform engine of the on-screen
// caliper: coordinate spaces, drag handling with angle snapping, window
// placement around a fixed pivot, and the two-pass render.
package caliper

import (
	"fmt"
	"image/color"
	"log/slog"
	"strconv"

	"github.com/philipparndt/gcaliper/internal/theme"
	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// DefaultJawColor is the jaw contrast colour used when none is configured
var DefaultJawColor = color.RGBA{R: 150, A: 255}

// Options configures a Caliper
type Options struct {
	Theme    *theme.Theme // nil selects the built-in theme
	JawColor color.Color  // nil selects DefaultJawColor
	Tuning   Tuning
	Debug    bool
	Logger   *slog.Logger
	// OnJawColorChanged is called when the user picks a new jaw colour.
	OnJawColorChanged func(color.Color)
}

// Caliper assembles geometry, layout, drag handling, window sync and rendering.
// All state changes are made through HandleEvent on a single goroutine.
type Caliper struct {
	opts     Options
	host     HostWindow
	dialogs  Dialogs
	log      *slog.Logger
	geo      *GeometryState
	layout   *PartLayout
	drag     *DragController
	sync     *WindowSync
	pipeline *RenderPipeline

	frame       *Frame
	positioned  bool
	needsRedraw bool
	jawColor    color.Color

	debugPoint geometry.Point
	debugText  string
}

// New creates a caliper presented through host. Nothing is drawn until the
// first ConfigureEvent marks the window as positioned.
func New(host HostWindow, dialogs Dialogs, opts Options) (*Caliper, error) {
	if opts.Theme == nil {
		t, err := theme.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in theme: %w", err)
		}
		opts.Theme = t
	}
	if opts.JawColor == nil {
		opts.JawColor = DefaultJawColor
	}
	if opts.Tuning == (Tuning{}) {
		opts.Tuning = DefaultTuning()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	desc := opts.Theme.Descriptor
	c := &Caliper{
		opts:     opts,
		host:     host,
		dialogs:  dialogs,
		log:      opts.Logger,
		geo:      NewGeometryState(desc),
		layout:   NewPartLayout(opts.Theme, desc.ZeroDistanceOffset),
		pipeline: NewRenderPipeline(opts.Tuning.MaxCanvasPixels),
	}
	c.sync = NewWindowSync(host, c.geo, opts.Tuning.WindowMargin, c.log)
	c.drag = NewDragController(c.geo, c.layout, c.sync, opts.Tuning, c.log)

	c.layout.SetDistance(opts.Tuning.InitialDistance)
	c.geo.SetAngle(opts.Tuning.InitialAngle)
	c.setJawColor(opts.JawColor)

	c.log.Debug("caliper created",
		slog.String("theme", opts.Theme.Name),
		slog.Int("distance", c.layout.Distance()),
		slog.Bool("debug", opts.Debug))
	return c, nil
}

// HandleEvent dispatches one event and redraws if it changed the caliper
func (c *Caliper) HandleEvent(ev Event) {
	switch e := ev.(type) {
	case PointerEvent:
		c.handlePointer(e)
	case KeyEvent:
		c.handleKey(e)
	case ConfigureEvent:
		c.handleConfigure(e)
	case JawColorEvent:
		c.handleJawColor(e)
	}
	if c.needsRedraw {
		c.Redraw()
	}
}

// Invalidate schedules a redraw at the end of the current event
func (c *Caliper) Invalidate() {
	c.needsRedraw = true
}

// Redraw renders a new frame and synchronizes the window with it. Before the
// window is positioned it only re-presents the previous frame. A failed render
// keeps the previous frame and is reported through Dialogs.ShowError.
func (c *Caliper) Redraw() {
	if !c.positioned {
		if c.frame != nil {
			c.host.Present(c.frame.Image)
		}
		return
	}
	c.needsRedraw = false

	frame, err := c.pipeline.Render(RenderInput{
		Layout:     c.layout,
		Geometry:   c.geo,
		Debug:      c.opts.Debug,
		DebugPoint: c.debugPoint,
		DebugText:  c.debugText,
	})
	if err != nil {
		c.log.Error("render failed", slog.Any("err", err))
		if c.dialogs != nil {
			c.dialogs.ShowError(err)
		}
		return
	}
	c.frame = &frame

	size := c.sync.RequiredWindowSize(frame.Rotated)
	c.host.Resize(size.X, size.Y)
	c.sync.ApplyShapeMask(frame.Mask)
	c.host.Present(frame.Image)
	c.sync.Recompute()
}

func (c *Caliper) handleConfigure(e ConfigureEvent) {
	c.sync.Configure(e.Position)
	if !c.positioned {
		c.positioned = true
		c.needsRedraw = true
	}
}

func (c *Caliper) handlePointer(e PointerEvent) {
	switch e.Action {
	case PointerPress:
		switch e.Button {
		case ButtonPrimary:
			c.drag.Press(e.Root, e.Local, c.host.Position())
		case ButtonSecondary:
			if c.dialogs != nil {
				c.dialogs.ShowContextMenu(e.Root, c.contextMenu())
			}
		}
	case PointerMove:
		if c.opts.Debug {
			p := c.geo.ScreenToUnrotatedImage(e.Local)
			c.debugText = strconv.FormatBool(c.layout.Bottom().Contains(p))
			c.debugPoint = p
			c.needsRedraw = true
		}
		if c.drag.Move(e.Root, e.Mods) {
			c.needsRedraw = true
		}
	case PointerRelease:
		if e.Button == ButtonPrimary {
			c.drag.Release()
		}
	}
}

// contextMenu items dispatch the matching key events
func (c *Caliper) contextMenu() []MenuItem {
	key := func(k Key, mods Modifier) func() {
		return func() { c.HandleEvent(KeyEvent{Key: k, Mods: mods}) }
	}
	return []MenuItem{
		{Label: "Color", Action: key(KeyC, 0)},
		{Label: "Horizontal", Action: key(KeyH, 0)},
		{Label: "Vertical", Action: key(KeyV, 0)},
		{Label: "Minimize", Action: key(KeyN, 0)},
		{Label: "Quit", Action: key(KeyQ, ModCtrl)},
	}
}

func (c *Caliper) handleJawColor(e JawColorEvent) {
	c.setJawColor(e.Color)
	if e.Persist && c.opts.OnJawColorChanged != nil {
		c.opts.OnJawColorChanged(e.Color)
	}
}

func (c *Caliper) setJawColor(col color.Color) {
	c.jawColor = col
	c.layout.ApplyContrast(col)
	c.needsRedraw = true
}

func (c *Caliper) chooseColor() {
	if c.dialogs == nil {
		return
	}
	c.dialogs.ChooseColor(c.jawColor, func(col color.Color, ok bool) {
		if ok {
			c.HandleEvent(JawColorEvent{Color: col, Persist: true})
		}
	})
}

// SetJawColor recolours the jaws without reporting the change
func (c *Caliper) SetJawColor(col color.Color) {
	c.HandleEvent(JawColorEvent{Color: col})
}

func (c *Caliper) Angle() float64           { return c.geo.Angle() }
func (c *Caliper) Distance() int            { return c.layout.Distance() }
func (c *Caliper) Mode() DragMode           { return c.drag.Mode() }
func (c *Caliper) Positioned() bool         { return c.positioned }
func (c *Caliper) JawColor() color.Color    { return c.jawColor }
func (c *Caliper) Geometry() *GeometryState { return c.geo }
func (c *Caliper) Layout() *PartLayout      { return c.layout }
func (c *Caliper) Drag() *DragController    { return c.drag }
func (c *Caliper) WindowSync() *WindowSync  { return c.sync }
func (c *Caliper) Theme() *theme.Theme      { return c.opts.Theme }

// Frame returns the last successfully rendered frame or nil
func (c *Caliper) Frame() *Frame {
	return c.frame
}
