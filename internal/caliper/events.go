package caliper

import (
	"image"
	"image/color"

	"github.com/philipparndt/gcaliper/pkg/geometry"
)

// Modifier is a bitmask of held modifier keys
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether all bits of o are set
func (m Modifier) Has(o Modifier) bool {
	return m&o == o
}

// Button identifies a pointer button
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonTertiary
)

// PointerAction is the kind of pointer event
type PointerAction int

const (
	PointerPress PointerAction = iota
	PointerMove
	PointerRelease
)

// Key names a keyboard key. Letter keys use their upper-case letter.
type Key string

const (
	KeyLeft  Key = "Left"
	KeyRight Key = "Right"
	KeyUp    Key = "Up"
	KeyDown  Key = "Down"
	KeyHome  Key = "Home"
	KeyEnd   Key = "End"
	KeyR     Key = "R"
	KeyT     Key = "T"
	KeyV     Key = "V"
	KeyH     Key = "H"
	KeyN     Key = "N"
	KeyC     Key = "C"
	KeyQ     Key = "Q"
	KeyW     Key = "W"
)

// Event is one of PointerEvent, KeyEvent, ConfigureEvent or JawColorEvent
type Event interface {
	event()
}

// EventHandler consumes events on the UI thread
type EventHandler interface {
	HandleEvent(Event)
}

// PointerEvent carries a pointer press, move or release.
// Root is in screen space, Local relative to the window origin.
type PointerEvent struct {
	Action PointerAction
	Button Button
	Root   geometry.Point
	Local  geometry.Point
	Mods   Modifier
}

// KeyEvent is a key press
type KeyEvent struct {
	Key  Key
	Mods Modifier
}

// ConfigureEvent reports the window position and size set by the system
type ConfigureEvent struct {
	Position image.Point
	Size     image.Point
}

// JawColorEvent changes the jaw contrast colour. Persist marks a user choice
// that should be reported through Options.OnJawColorChanged.
type JawColorEvent struct {
	Color   color.Color
	Persist bool
}

func (PointerEvent) event()   {}
func (KeyEvent) event()       {}
func (ConfigureEvent) event() {}
func (JawColorEvent) event()  {}
