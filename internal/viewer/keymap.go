package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/surfacelab/internal/controls"
)

// keyAction maps a key press to a viewer action. Shift reverses the
// direction of parameter and scale keys.
func keyAction(key sdl.Scancode, shift bool) controls.Action {
	switch key {
	case sdl.SCANCODE_A:
		return pick(shift, controls.ActionDecreaseA, controls.ActionIncreaseA)
	case sdl.SCANCODE_C:
		return pick(shift, controls.ActionDecreaseC, controls.ActionIncreaseC)
	case sdl.SCANCODE_P:
		return pick(shift, controls.ActionDecreasePhi, controls.ActionIncreasePhi)
	case sdl.SCANCODE_U:
		return pick(shift, controls.ActionDecreaseScaleU, controls.ActionIncreaseScaleU)
	case sdl.SCANCODE_V:
		return pick(shift, controls.ActionDecreaseScaleV, controls.ActionIncreaseScaleV)
	case sdl.SCANCODE_TAB:
		return controls.ActionNextVariant
	case sdl.SCANCODE_O:
		return controls.ActionToggleOverlay
	case sdl.SCANCODE_R:
		return controls.ActionResetView
	case sdl.SCANCODE_BACKSPACE:
		return controls.ActionResetParams
	case sdl.SCANCODE_F11:
		return controls.ActionToggleFullscreen
	case sdl.SCANCODE_F5:
		return controls.ActionSave
	case sdl.SCANCODE_F12:
		return controls.ActionScreenshot
	case sdl.SCANCODE_ESCAPE:
		return controls.ActionQuit
	}
	return controls.ActionNone
}

func pick(shift bool, withShift, without controls.Action) controls.Action {
	if shift {
		return withShift
	}
	return without
}

// repeatable reports whether holding the key should repeat the action.
func repeatable(a controls.Action) bool {
	switch a {
	case controls.ActionIncreaseA, controls.ActionDecreaseA,
		controls.ActionIncreaseC, controls.ActionDecreaseC,
		controls.ActionIncreasePhi, controls.ActionDecreasePhi,
		controls.ActionIncreaseScaleU, controls.ActionDecreaseScaleU,
		controls.ActionIncreaseScaleV, controls.ActionDecreaseScaleV:
		return true
	}
	return false
}
