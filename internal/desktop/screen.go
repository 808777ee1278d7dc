package desktop

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gcaliper/internal/caliper"
	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// screen is the full-window widget holding the backdrop and the caliper
// image. It translates pointer input into caliper events.
type screen struct {
	widget.BaseWidget
	host     *Host
	backdrop fyne.CanvasObject
	overlay  *canvas.Image
	handler  caliper.EventHandler
	mods     modifierState

	pressed bool
	button  caliper.Button
}

func newScreen(h *Host, backdrop fyne.CanvasObject) *screen {
	overlay := canvas.NewImageFromImage(nil)
	overlay.FillMode = canvas.ImageFillOriginal
	overlay.ScaleMode = canvas.ImageScalePixels

	s := &screen{host: h, backdrop: backdrop, overlay: overlay}
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer creates the renderer for the widget
func (s *screen) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(s.backdrop, container.NewWithoutLayout(s.overlay)))
}

func (s *screen) pointer(action caliper.PointerAction, button caliper.Button, pos fyne.Position, km fyne.KeyModifier) caliper.PointerEvent {
	root := geometry.Pt(float64(pos.X), float64(pos.Y))
	return caliper.PointerEvent{
		Action: action,
		Button: button,
		Root:   root,
		Local:  root.Sub(geometry.FromImagePoint(s.host.position)),
		Mods:   s.mods.merge(km),
	}
}

func (s *screen) dispatch(ev caliper.Event) {
	if s.handler != nil {
		s.handler.HandleEvent(ev)
	}
}

// MouseDown starts a press when it lands on an opaque caliper pixel
func (s *screen) MouseDown(ev *desktop.MouseEvent) {
	root := geometry.Pt(float64(ev.Position.X), float64(ev.Position.Y))
	if !s.host.hits(root) {
		if s.host.iconified && ev.Button == desktop.MouseButtonPrimary {
			s.host.restore()
		}
		return
	}
	s.pressed = true
	s.button = translateButton(ev.Button)
	s.dispatch(s.pointer(caliper.PointerPress, s.button, ev.Position, ev.Modifier))
}

func (s *screen) MouseUp(ev *desktop.MouseEvent) {
	s.release(ev.Position, ev.Modifier)
}

func (s *screen) MouseIn(*desktop.MouseEvent) {}

func (s *screen) MouseMoved(ev *desktop.MouseEvent) {
	s.dispatch(s.pointer(caliper.PointerMove, caliper.ButtonNone, ev.Position, ev.Modifier))
}

func (s *screen) MouseOut() {}

// Dragged forwards motion while a button is held
func (s *screen) Dragged(ev *fyne.DragEvent) {
	s.dispatch(s.pointer(caliper.PointerMove, caliper.ButtonNone, ev.Position, 0))
}

// DragEnd releases a press whose MouseUp was not delivered
func (s *screen) DragEnd() {
	if s.pressed {
		s.release(fyne.Position{}, 0)
	}
}

func (s *screen) release(pos fyne.Position, km fyne.KeyModifier) {
	if !s.pressed {
		return
	}
	s.pressed = false
	s.dispatch(s.pointer(caliper.PointerRelease, s.button, pos, km))
}

var (
	_ desktop.Mouseable = (*screen)(nil)
	_ desktop.Hoverable = (*screen)(nil)
	_ fyne.Draggable    = (*screen)(nil)
)
