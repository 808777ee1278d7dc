package desktop

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/philipparndt/gcaliper/internal/caliper"
)

var keyMap = map[fyne.KeyName]caliper.Key{
	fyne.KeyLeft:  caliper.KeyLeft,
	fyne.KeyRight: caliper.KeyRight,
	fyne.KeyUp:    caliper.KeyUp,
	fyne.KeyDown:  caliper.KeyDown,
	fyne.KeyHome:  caliper.KeyHome,
	fyne.KeyEnd:   caliper.KeyEnd,
	fyne.KeyR:     caliper.KeyR,
	fyne.KeyT:     caliper.KeyT,
	fyne.KeyV:     caliper.KeyV,
	fyne.KeyH:     caliper.KeyH,
	fyne.KeyN:     caliper.KeyN,
	fyne.KeyC:     caliper.KeyC,
	fyne.KeyQ:     caliper.KeyQ,
	fyne.KeyW:     caliper.KeyW,
}

// translateKey maps a fyne key to a caliper key
func translateKey(name fyne.KeyName) (caliper.Key, bool) {
	k, ok := keyMap[name]
	return k, ok
}

// modifierState tracks held modifier keys from key down/up events. Drag
// events carry no modifiers, so the state is kept here.
type modifierState struct {
	shiftLeft, shiftRight bool
	ctrlLeft, ctrlRight   bool
	altLeft, altRight     bool
}

// update records a key transition and reports whether it was a modifier
func (m *modifierState) update(name fyne.KeyName, down bool) bool {
	switch name {
	case desktop.KeyShiftLeft:
		m.shiftLeft = down
	case desktop.KeyShiftRight:
		m.shiftRight = down
	case desktop.KeyControlLeft:
		m.ctrlLeft = down
	case desktop.KeyControlRight:
		m.ctrlRight = down
	case desktop.KeyAltLeft:
		m.altLeft = down
	case desktop.KeyAltRight:
		m.altRight = down
	default:
		return false
	}
	return true
}

func (m *modifierState) mods() caliper.Modifier {
	var mods caliper.Modifier
	if m.shiftLeft || m.shiftRight {
		mods |= caliper.ModShift
	}
	if m.ctrlLeft || m.ctrlRight {
		mods |= caliper.ModCtrl
	}
	if m.altLeft || m.altRight {
		mods |= caliper.ModAlt
	}
	return mods
}

// merge combines tracked modifiers with the ones reported by a mouse event
func (m *modifierState) merge(km fyne.KeyModifier) caliper.Modifier {
	mods := m.mods()
	if km&fyne.KeyModifierShift != 0 {
		mods |= caliper.ModShift
	}
	if km&fyne.KeyModifierControl != 0 {
		mods |= caliper.ModCtrl
	}
	if km&fyne.KeyModifierAlt != 0 {
		mods |= caliper.ModAlt
	}
	return mods
}

func translateButton(b desktop.MouseButton) caliper.Button {
	switch b {
	case desktop.MouseButtonPrimary:
		return caliper.ButtonPrimary
	case desktop.MouseButtonSecondary:
		return caliper.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return caliper.ButtonTertiary
	}
	return caliper.ButtonNone
}
